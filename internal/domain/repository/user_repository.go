package repository

import (
	"context"

	"github.com/oksasatya/streamchat-api/internal/domain/entity"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	// Create inserts a new user and fills in the generated ID and
	// timestamps. Returns ErrDuplicate when the email is already taken.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateProfilePhoto(ctx context.Context, id, url string) error
}
