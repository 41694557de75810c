package domain

import "time"

// User models an account holder. Encrypted fields hold opaque ciphertext
// blobs; the purpose of each blob is fixed by the field it lives in, never
// embedded in the ciphertext.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastLoginAt  time.Time `json:"last_login_at,omitempty"`

	// Gemini API key supplied by the user, encrypted under the gemini purpose.
	GeminiAPIKeyEncrypted string    `json:"-"`
	GeminiAPIKeyUpdatedAt time.Time `json:"-"`

	// API key issued by this service, encrypted under the uwgen purpose.
	UwgenAPIKeyEncrypted string    `json:"-"`
	UwgenAPIKeyUpdatedAt time.Time `json:"-"`
}

// Session is the server-held identity associated with a session cookie.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
