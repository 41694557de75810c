package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/uwgen/media-api/internal/core/domain"
	"github.com/uwgen/media-api/internal/core/ports"
)

// GalleryService lists a user's stored artifacts with filtering, sorting,
// and offset pagination.
type GalleryService struct {
	store ports.ArtifactStore
}

func NewGalleryService(store ports.ArtifactStore) *GalleryService {
	return &GalleryService{store: store}
}

// ListImages walks every category selected by filterType, merges the
// results, sorts by (date, modification time), and slices out one page.
// Total is the size of the full result set, computed before pagination.
// Categories with no artifacts contribute nothing rather than failing.
func (s *GalleryService) ListImages(ctx context.Context, userID, filterType, sortOrder string, offset, limit int) (*ports.GalleryPage, error) {
	if offset < 0 || limit <= 0 {
		return nil, domain.ErrInvalidRequest
	}

	var categories []domain.Category
	if filterType == domain.FilterAll || filterType == domain.FilterGenerated {
		categories = append(categories, domain.CategoryGenerated)
	}
	if filterType == domain.FilterAll || filterType == domain.FilterEdited {
		categories = append(categories, domain.CategoryEdited)
	}
	if len(categories) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	var results []domain.Artifact
	for _, category := range categories {
		files, err := s.store.List(category, userID)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			results = append(results, domain.Artifact{
				Path:    publicImagePath(category, file.Date, file.Name),
				Type:    category,
				Date:    file.Date,
				ModTime: file.ModTime,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Date != results[j].Date {
			return results[i].Date < results[j].Date
		}
		return results[i].ModTime.Before(results[j].ModTime)
	})
	if sortOrder == domain.SortNewest {
		for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
			results[i], results[j] = results[j], results[i]
		}
	}

	total := len(results)
	if offset >= total {
		return &ports.GalleryPage{Images: []domain.Artifact{}, Total: total}, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return &ports.GalleryPage{Images: results[offset:end], Total: total}, nil
}

// publicImagePath builds the reference the image-serving endpoint accepts.
func publicImagePath(category domain.Category, date, name string) string {
	return fmt.Sprintf("/api/v1/images/%s/%s/%s", category, date, name)
}
