package ports

import (
	"context"

	"github.com/uwgen/media-api/internal/core/domain"
)

// GalleryPage is one page of a user's artifact listing. Total counts the
// full result set before pagination.
type GalleryPage struct {
	Images []domain.Artifact `json:"images"`
	Total  int               `json:"total"`
}

type GalleryService interface {
	ListImages(ctx context.Context, userID, filterType, sortOrder string, offset, limit int) (*GalleryPage, error)
}
