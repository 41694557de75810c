// Package password wraps bcrypt hashing and verification. The salt is
// generated per call and embedded in the hash output, so nothing beyond the
// hash string needs to be stored.
package password

import "golang.org/x/crypto/bcrypt"

// Hash produces a salted bcrypt hash of the given password.
func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. Malformed hashes are treated
// as a mismatch, never an error.
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
