package ports

import (
	"context"

	"github.com/uwgen/media-api/internal/core/domain"
)

type AuthService interface {
	Signup(ctx context.Context, email, password string) (*domain.User, error)
	// Signin returns a signed bearer token on success and updates the
	// user's last-login timestamp.
	Signin(ctx context.Context, email, password string) (string, *domain.User, error)
}
