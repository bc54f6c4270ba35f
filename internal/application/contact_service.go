package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/streamchat-api/internal/domain/entity"
	repo "github.com/oksasatya/streamchat-api/internal/domain/repository"
)

// ContactService orchestrates a user's contact list. It trusts the ownerID
// argument: verifying that the caller is the owner is the transport layer's
// responsibility.
type ContactService struct {
	Contacts repo.ContactRepository
	Users    repo.UserRepository
	Logger   *logrus.Logger
}

func NewContactService(contacts repo.ContactRepository, users repo.UserRepository, logger *logrus.Logger) *ContactService {
	return &ContactService{Contacts: contacts, Users: users, Logger: logger}
}

// ContactView is one entry of a contact list: the target user's public
// fields plus when the edge was created.
type ContactView struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number"`
	ProfilePhoto string    `json:"profile_photo,omitempty"`
	AddedAt      time.Time `json:"added_at"`
}

// GetContacts returns the owner's contacts in insertion order.
func (s *ContactService) GetContacts(ctx context.Context, ownerID string) ([]ContactView, error) {
	listings, err := s.Contacts.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]ContactView, 0, len(listings))
	for _, l := range listings {
		out = append(out, ContactView{
			ID:           l.ContactID,
			Name:         l.Name,
			Email:        l.Email,
			PhoneNumber:  l.PhoneNumber,
			ProfilePhoto: l.ProfilePhoto,
			AddedAt:      l.AddedAt,
		})
	}
	return out, nil
}

// AddContact resolves contactEmail to a user and links it into ownerID's
// list. Each step short-circuits: unknown email, then self-add, then the
// duplicate pre-check. The pre-check is only a fast path for a better error;
// the unique index on (owner_id, contact_id) is the authority, so a
// duplicate insert racing past the check still comes back as ErrContactExists.
func (s *ContactService) AddContact(ctx context.Context, ownerID, contactEmail string) (*PublicUser, error) {
	target, err := s.Users.GetByEmail(ctx, contactEmail)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if target.ID == ownerID {
		return nil, ErrSelfContact
	}

	exists, err := s.Contacts.Exists(ctx, ownerID, target.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrContactExists
	}

	edge := &entity.Contact{OwnerID: ownerID, ContactID: target.ID}
	if err := s.Contacts.Create(ctx, edge); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrContactExists
		}
		return nil, err
	}

	pu := publicUser(target)
	return &pu, nil
}

// DeleteContact removes the edge (ownerID, contactID). A missing edge is an
// error, not a no-op.
func (s *ContactService) DeleteContact(ctx context.Context, ownerID, contactID string) error {
	if err := s.Contacts.Delete(ctx, ownerID, contactID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrContactNotFound
		}
		return err
	}
	return nil
}
