package repository

import (
	"context"

	"github.com/oksasatya/streamchat-api/internal/domain/entity"
)

// ContactRepository defines the interface for contact-edge persistence.
type ContactRepository interface {
	// Create inserts a new edge and fills in the generated ID and AddedAt.
	// Returns ErrDuplicate when the (owner, contact) pair already exists.
	Create(ctx context.Context, c *entity.Contact) error
	// Exists reports whether an edge (ownerID, contactID) is present.
	Exists(ctx context.Context, ownerID, contactID string) (bool, error)
	// ListByOwner returns the owner's edges joined with the target users'
	// public fields, in insertion order.
	ListByOwner(ctx context.Context, ownerID string) ([]entity.ContactListing, error)
	// Delete removes the edge (ownerID, contactID). Returns ErrNotFound when
	// no such edge exists; deleting is deliberately not idempotent.
	Delete(ctx context.Context, ownerID, contactID string) error
}
