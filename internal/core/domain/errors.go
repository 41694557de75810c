package domain

import "errors"

// The closed set of expected failure kinds. Handlers translate these to HTTP
// codes; everything else is an infrastructure fault and surfaces as a 500.
var (
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInactiveAccount       = errors.New("inactive account")
	ErrEmailExists           = errors.New("email already registered")
	ErrDecryptionFailed      = errors.New("decryption failed")
	ErrFileNotFound          = errors.New("file not found")
	ErrPathTraversalDetected = errors.New("path traversal detected")
	ErrInvalidRequest        = errors.New("invalid request")
	ErrProviderKeyNotSet     = errors.New("provider api key not set")
)

// messages binds error kinds to client-facing text. Kept outside the error
// values themselves so the message set can vary without touching the kinds.
var messages = map[error]string{
	ErrUnauthenticated:       "Authentication required.",
	ErrUserNotFound:          "User not found.",
	ErrInvalidCredentials:    "Invalid email or password.",
	ErrInactiveAccount:       "Account is inactive.",
	ErrEmailExists:           "This email is already registered.",
	ErrDecryptionFailed:      "Internal server error.",
	ErrFileNotFound:          "File not found.",
	ErrPathTraversalDetected: "Access forbidden.",
	ErrInvalidRequest:        "The request payload is invalid.",
	ErrProviderKeyNotSet:     "No model provider API key is configured for this account.",
}

// Message returns the client-facing message for a known error kind, or a
// generic fallback for anything outside the closed set.
func Message(err error) string {
	for kind, msg := range messages {
		if errors.Is(err, kind) {
			return msg
		}
	}
	return "Internal server error."
}
