package service

import (
	"context"
	"errors"
	"time"

	"github.com/uwgen/media-api/internal/core/domain"
	"github.com/uwgen/media-api/internal/core/ports"
	"github.com/uwgen/media-api/internal/pkg/password"
	"github.com/uwgen/media-api/internal/pkg/token"
)

// AuthService implements signup and signin.
type AuthService struct {
	repo   ports.UserRepository
	issuer *token.Issuer
}

func NewAuthService(repo ports.UserRepository, issuer *token.Issuer) *AuthService {
	return &AuthService{repo: repo, issuer: issuer}
}

// Signup creates a new account. The email must be unused; the password is
// stored only as a bcrypt hash.
func (s *AuthService) Signup(ctx context.Context, email, pass string) (*domain.User, error) {
	if email == "" || pass == "" {
		return nil, domain.ErrInvalidRequest
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := password.Hash(pass)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.repo.Create(ctx, user)
}

// Signin verifies credentials and issues a bearer token carrying the user id
// as subject. A missing user and a wrong password are indistinguishable to
// the caller.
func (s *AuthService) Signin(ctx context.Context, email, pass string) (string, *domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !password.Verify(pass, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, domain.ErrInactiveAccount
	}

	signed, err := s.issuer.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateFields(ctx, user.ID, map[string]any{"last_login_at": now}); err != nil {
		return "", nil, err
	}
	user.LastLoginAt = now

	return signed, user, nil
}
