package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/uwgen/media-api/internal/core/domain"
	"github.com/uwgen/media-api/internal/pkg/token"
)

// stubUserRepo is an in-memory user repository shared by the service tests.
type stubUserRepo struct {
	users   map[string]*domain.User
	updates []map[string]any
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
	}
	stored := *user
	stored.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	r.users[stored.ID] = &stored
	return &stored, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateFields(_ context.Context, id string, fields map[string]any) error {
	user, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	r.updates = append(r.updates, fields)
	if ts, ok := fields["last_login_at"].(time.Time); ok {
		user.LastLoginAt = ts
	}
	if v, ok := fields["gemini_api_key_encrypted"].(string); ok {
		user.GeminiAPIKeyEncrypted = v
	}
	if v, ok := fields["uwgen_api_key_encrypted"].(string); ok {
		user.UwgenAPIKeyEncrypted = v
	}
	return nil
}

func newAuthFixture(t *testing.T) (*AuthService, *stubUserRepo, *token.Issuer) {
	t.Helper()
	issuer, err := token.NewIssuer("test-secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer returned error: %v", err)
	}
	repo := newStubUserRepo()
	return NewAuthService(repo, issuer), repo, issuer
}

func TestSignup(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	user, err := svc.Signup(context.Background(), "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned user id")
	}
	if !user.IsActive {
		t.Fatalf("new account should be active")
	}
	if user.PasswordHash == "password123" || user.PasswordHash == "" {
		t.Fatalf("password stored without hashing")
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	if _, err := svc.Signup(context.Background(), "alice@example.com", "password123"); err != nil {
		t.Fatalf("first Signup returned error: %v", err)
	}
	if _, err := svc.Signup(context.Background(), "alice@example.com", "different-pass"); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestSignup_EmptyFields(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	if _, err := svc.Signup(context.Background(), "", "password123"); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for empty email, got %v", err)
	}
	if _, err := svc.Signup(context.Background(), "alice@example.com", ""); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for empty password, got %v", err)
	}
}

func TestSignin(t *testing.T) {
	svc, repo, issuer := newAuthFixture(t)

	created, err := svc.Signup(context.Background(), "bob@example.com", "password123")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	signed, user, err := svc.Signin(context.Background(), "bob@example.com", "password123")
	if err != nil {
		t.Fatalf("Signin returned error: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("signed-in user mismatch: %s vs %s", user.ID, created.ID)
	}

	subject, err := issuer.Verify(signed)
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if subject != created.ID {
		t.Fatalf("token subject %q does not match user id %q", subject, created.ID)
	}

	stored, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if stored.LastLoginAt.IsZero() {
		t.Fatalf("last login timestamp not recorded")
	}
}

func TestSignin_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	if _, err := svc.Signup(context.Background(), "bob@example.com", "password123"); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if _, _, err := svc.Signin(context.Background(), "bob@example.com", "wrong-password"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignin_UnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	if _, _, err := svc.Signin(context.Background(), "ghost@example.com", "password123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestSignin_InactiveAccount(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)

	created, err := svc.Signup(context.Background(), "carol@example.com", "password123")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	repo.users[created.ID].IsActive = false

	if _, _, err := svc.Signin(context.Background(), "carol@example.com", "password123"); !errors.Is(err, domain.ErrInactiveAccount) {
		t.Fatalf("expected ErrInactiveAccount, got %v", err)
	}
}
