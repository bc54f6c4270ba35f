package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oksasatya/streamchat-api/internal/domain/entity"
	"github.com/oksasatya/streamchat-api/internal/domain/repository"
)

// In-memory repository fakes mimicking the store's uniqueness constraints:
// users are unique by email, contact edges by (owner, contact) pair.

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*entity.User // by id
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) UpdateProfilePhoto(_ context.Context, id, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ProfilePhoto = url
	u.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

type fakeContactRepo struct {
	mu     sync.Mutex
	edges  []entity.Contact
	users  *fakeUserRepo
	nextID int

	// When set, Exists always reports false, simulating a concurrent add
	// racing past the pre-check; the Create uniqueness check still fires.
	existsAlwaysFalse bool
}

func newFakeContactRepo(users *fakeUserRepo) *fakeContactRepo {
	return &fakeContactRepo{users: users}
}

func (r *fakeContactRepo) Create(_ context.Context, c *entity.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.edges {
		if e.OwnerID == c.OwnerID && e.ContactID == c.ContactID {
			return repository.ErrDuplicate
		}
	}
	r.nextID++
	c.ID = fmt.Sprintf("edge-%d", r.nextID)
	c.AddedAt = time.Now()
	r.edges = append(r.edges, *c)
	return nil
}

func (r *fakeContactRepo) Exists(_ context.Context, ownerID, contactID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existsAlwaysFalse {
		return false, nil
	}
	for _, e := range r.edges {
		if e.OwnerID == ownerID && e.ContactID == contactID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeContactRepo) ListByOwner(ctx context.Context, ownerID string) ([]entity.ContactListing, error) {
	r.mu.Lock()
	edges := make([]entity.Contact, 0)
	for _, e := range r.edges {
		if e.OwnerID == ownerID {
			edges = append(edges, e)
		}
	}
	r.mu.Unlock()

	out := make([]entity.ContactListing, 0, len(edges))
	for _, e := range edges {
		u, err := r.users.GetByID(ctx, e.ContactID)
		if err != nil {
			return nil, err
		}
		out = append(out, entity.ContactListing{
			ContactID:    u.ID,
			Name:         u.Name,
			Email:        u.Email,
			PhoneNumber:  u.PhoneNumber,
			ProfilePhoto: u.ProfilePhoto,
			AddedAt:      e.AddedAt,
		})
	}
	return out, nil
}

func (r *fakeContactRepo) Delete(_ context.Context, ownerID, contactID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.edges {
		if e.OwnerID == ownerID && e.ContactID == contactID {
			r.edges = append(r.edges[:i], r.edges[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeContactRepo) countPair(ownerID, contactID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.edges {
		if e.OwnerID == ownerID && e.ContactID == contactID {
			n++
		}
	}
	return n
}

var (
	_ repository.UserRepository    = (*fakeUserRepo)(nil)
	_ repository.ContactRepository = (*fakeContactRepo)(nil)
)
