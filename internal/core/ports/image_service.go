package ports

import (
	"context"

	"github.com/uwgen/media-api/internal/core/domain"
)

// ImageService generates or edits images for a user and persists the
// results, returning public gallery references.
type ImageService interface {
	Generate(ctx context.Context, user *domain.User, params GenerateParams) ([]string, error)
	Edit(ctx context.Context, user *domain.User, params EditParams, source []byte) ([]string, error)
}
