// Package token issues and verifies the service's stateless bearer tokens.
// A token carries {sub, exp} signed with a single symmetric secret; there is
// no refresh mechanism and no revocation list.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired means the signature checked out but the token is past its
	// expiry.
	ErrExpired = errors.New("token expired")
	// ErrInvalid covers bad signatures, malformed tokens, and unsupported
	// algorithms.
	ErrInvalid = errors.New("token invalid")
)

// Issuer signs and verifies access tokens. Safe for concurrent use.
type Issuer struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewIssuer builds an Issuer for the given signing algorithm name (e.g.
// "HS256"). Unknown algorithms are a configuration error.
func NewIssuer(secret string, algorithm string, ttl time.Duration) (*Issuer, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("token: unsupported signing algorithm %q", algorithm)
	}
	return &Issuer{secret: []byte(secret), method: method, ttl: ttl}, nil
}

// Issue signs a token for the given subject expiring at now (UTC) + TTL.
func (i *Issuer) Issue(subject string) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().UTC().Add(i.ttl).Unix(),
	}
	return jwt.NewWithClaims(i.method, claims).SignedString(i.secret)
}

// Verify checks signature and expiry and returns the subject claim.
// Failures are ErrExpired (valid signature, past expiry) or ErrInvalid
// (everything else); both mean "unauthenticated", never a server fault.
func (i *Issuer) Verify(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != i.method.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrInvalid
	}
	if !parsed.Valid {
		return "", ErrInvalid
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalid
	}
	return sub, nil
}
