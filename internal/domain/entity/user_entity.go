package entity

import (
	"time"
)

// User is the aggregate root for the identity domain.
// Passwords are stored as bcrypt hashes in PasswordHash and must never be
// serialized outward; handlers expose only the public fields.
type User struct {
	ID           string
	Name         string
	Email        string
	PhoneNumber  string
	PasswordHash string
	ProfilePhoto string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
