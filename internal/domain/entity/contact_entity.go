package entity

import (
	"time"
)

// Contact is a directed edge in a user's contact list: OwnerID added
// ContactID. Edges are immutable; they are created and deleted, never updated.
// The (OwnerID, ContactID) pair is unique and OwnerID never equals ContactID.
type Contact struct {
	ID        string
	OwnerID   string
	ContactID string
	AddedAt   time.Time
}

// ContactListing is a contact edge joined with the target user's public
// identity fields, as returned by the contact list query.
type ContactListing struct {
	ContactID    string
	Name         string
	Email        string
	PhoneNumber  string
	ProfilePhoto string
	AddedAt      time.Time
}
