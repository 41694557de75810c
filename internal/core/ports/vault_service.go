package ports

import (
	"context"

	"github.com/uwgen/media-api/internal/core/domain"
)

// VaultService stores and reads per-user secrets. Plaintext secrets exist
// only in memory; everything persisted goes through the credential cipher.
type VaultService interface {
	// GenerateIssuedKey mints a new URL-safe service API key for the user.
	// It does not persist anything; the caller decides when the key is
	// committed via UpdateSettings.
	GenerateIssuedKey(ctx context.Context, userID string) (string, error)
	// UpdateSettings applies a partial update. Only allow-listed fields are
	// touched; unknown keys are ignored. Each applied field is encrypted
	// under its declared purpose and its companion timestamp is refreshed.
	// All writes commit atomically.
	UpdateSettings(ctx context.Context, userID string, updates map[string]string) error
	// ReadProviderKey decrypts the user's stored model-provider API key.
	ReadProviderKey(ctx context.Context, user *domain.User) (string, error)
}
