package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/uwgen/media-api/internal/core/domain"
	"github.com/uwgen/media-api/internal/core/ports"
	"github.com/uwgen/media-api/internal/pkg/secrets"
)

// issuedKeyBytes gives 256 bits of entropy per generated API key.
const issuedKeyBytes = 32

// settingsField describes one mutable user field: where it is stored, whether
// it must be encrypted and under which purpose, and which timestamp tracks it.
type settingsField struct {
	storageField   string
	encrypted      bool
	purpose        secrets.Purpose
	timestampField string
}

// settingsAllowList is the closed set of fields a settings update may touch.
// Built once; iterated generically so adding a field never means new update
// code. Keys outside this table are ignored, not rejected, which tolerates
// forward-compatible clients.
var settingsAllowList = map[string]settingsField{
	"gemini_api_key": {
		storageField:   "gemini_api_key_encrypted",
		encrypted:      true,
		purpose:        secrets.PurposeGemini,
		timestampField: "gemini_api_key_updated_at",
	},
	"uwgen_api_key": {
		storageField:   "uwgen_api_key_encrypted",
		encrypted:      true,
		purpose:        secrets.PurposeUwgen,
		timestampField: "uwgen_api_key_updated_at",
	},
}

// VaultService combines the credential cipher with the user record to store
// and read per-user secrets.
type VaultService struct {
	repo   ports.UserRepository
	cipher *secrets.Cipher
}

func NewVaultService(repo ports.UserRepository, cipher *secrets.Cipher) *VaultService {
	return &VaultService{repo: repo, cipher: cipher}
}

// GenerateIssuedKey mints a URL-safe 256-bit API key for the user. Nothing
// is persisted here; the caller commits the key through UpdateSettings so it
// controls the transactional boundary.
func (s *VaultService) GenerateIssuedKey(ctx context.Context, userID string) (string, error) {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return "", err
	}

	raw := make([]byte, issuedKeyBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// UpdateSettings applies a partial update restricted to the allow-list. A
// present allow-listed key counts as changed: its value is encrypted under
// the field's purpose and its timestamp refreshed. Every ciphertext is
// materialized before storage is touched, and the repository applies the
// whole set atomically, so a failure anywhere leaves the record unchanged.
func (s *VaultService) UpdateSettings(ctx context.Context, userID string, updates map[string]string) error {
	fields := make(map[string]any)
	now := time.Now().UTC()

	for name, value := range updates {
		field, ok := settingsAllowList[name]
		if !ok {
			continue
		}

		stored := value
		if field.encrypted {
			ciphertext, err := s.cipher.Encrypt(value, field.purpose)
			if err != nil {
				return err
			}
			stored = ciphertext
		}
		fields[field.storageField] = stored
		fields[field.timestampField] = now
	}

	if len(fields) == 0 {
		return nil
	}
	return s.repo.UpdateFields(ctx, userID, fields)
}

// ReadProviderKey decrypts the user's stored Gemini API key.
func (s *VaultService) ReadProviderKey(ctx context.Context, user *domain.User) (string, error) {
	if user.GeminiAPIKeyEncrypted == "" {
		return "", domain.ErrProviderKeyNotSet
	}
	return s.cipher.Decrypt(user.GeminiAPIKeyEncrypted, secrets.PurposeGemini)
}
