package ports

import (
	"context"

	"github.com/uwgen/media-api/internal/core/domain"
)

// SessionStore holds server-side sessions keyed by an opaque cookie value.
type SessionStore interface {
	Put(ctx context.Context, sid string, session *domain.Session) error
	// Get returns (nil, nil) when no session exists for sid.
	Get(ctx context.Context, sid string) (*domain.Session, error)
	Delete(ctx context.Context, sid string) error
}
