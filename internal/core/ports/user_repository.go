package ports

import (
	"context"

	"github.com/uwgen/media-api/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrEmailExists when the
	// email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdateFields applies every field in one atomic write; either all
	// entries persist or none do.
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
}
