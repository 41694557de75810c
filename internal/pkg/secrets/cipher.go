// Package secrets provides purpose-scoped authenticated encryption for
// stored credentials. Each purpose owns its own AES-256-GCM key, so a blob
// encrypted for one purpose can never be read under another.
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/uwgen/media-api/internal/core/domain"
)

// Purpose names the key a secret is encrypted under.
type Purpose string

const (
	// PurposeGemini protects user-supplied model-provider API keys.
	PurposeGemini Purpose = "gemini"
	// PurposeUwgen protects API keys issued by this service.
	PurposeUwgen Purpose = "uwgen"
)

const keySize = 32

// Cipher encrypts and decrypts secret strings. Read-only after construction
// and safe for concurrent use.
type Cipher struct {
	aeads map[Purpose]cipher.AEAD
}

// NewCipher builds a Cipher from raw 32-byte keys, one per purpose. A
// missing or short key for any configured purpose is a startup error.
func NewCipher(keys map[Purpose][]byte) (*Cipher, error) {
	aeads := make(map[Purpose]cipher.AEAD, len(keys))
	for purpose, key := range keys {
		if len(key) != keySize {
			return nil, fmt.Errorf("secrets: key for purpose %q must be %d bytes, got %d", purpose, keySize, len(key))
		}
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("secrets: cipher for purpose %q: %w", purpose, err)
		}
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("secrets: gcm for purpose %q: %w", purpose, err)
		}
		aeads[purpose] = aead
	}
	return &Cipher{aeads: aeads}, nil
}

// Encrypt seals plaintext under the purpose's key. The returned blob is
// base64url(nonce || ciphertext) and opaque to callers.
func (c *Cipher) Encrypt(plaintext string, purpose Purpose) (string, error) {
	aead, ok := c.aeads[purpose]
	if !ok {
		return "", fmt.Errorf("secrets: no key configured for purpose %q", purpose)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("secrets: nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a blob produced by Encrypt. Tampered blobs and blobs sealed
// under a different purpose's key fail with domain.ErrDecryptionFailed;
// garbage plaintext is never returned.
func (c *Cipher) Decrypt(blob string, purpose Purpose) (string, error) {
	aead, ok := c.aeads[purpose]
	if !ok {
		return "", fmt.Errorf("secrets: no key configured for purpose %q", purpose)
	}

	raw, err := base64.RawURLEncoding.DecodeString(blob)
	if err != nil || len(raw) < aead.NonceSize() {
		return "", domain.ErrDecryptionFailed
	}

	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", domain.ErrDecryptionFailed
	}
	return string(plaintext), nil
}
