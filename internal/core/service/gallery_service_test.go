package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/uwgen/media-api/internal/core/domain"
	"github.com/uwgen/media-api/internal/core/ports"
)

type stubArtifactStore struct {
	files map[domain.Category][]ports.ArtifactFile
}

func (s *stubArtifactStore) ResolveOutputDir(domain.Category, string) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubArtifactStore) Write(domain.Category, string, []byte) (string, string, error) {
	return "", "", errors.New("not implemented")
}

func (s *stubArtifactStore) ResolveServePath(domain.Category, string, string, string) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubArtifactStore) List(category domain.Category, _ string) ([]ports.ArtifactFile, error) {
	return s.files[category], nil
}

func galleryFixture() *stubArtifactStore {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &stubArtifactStore{files: map[domain.Category][]ports.ArtifactFile{
		domain.CategoryGenerated: {
			{Name: "a.png", Date: "2024-03-01", ModTime: base},
			{Name: "b.png", Date: "2024-03-01", ModTime: base.Add(time.Minute)},
			{Name: "c.png", Date: "2024-03-03", ModTime: base.Add(48 * time.Hour)},
		},
		domain.CategoryEdited: {
			{Name: "d.png", Date: "2024-03-02", ModTime: base.Add(24 * time.Hour)},
		},
	}}
}

func TestListImages_NewestFirst(t *testing.T) {
	svc := NewGalleryService(galleryFixture())

	page, err := svc.ListImages(context.Background(), "u1", domain.FilterAll, domain.SortNewest, 0, 10)
	if err != nil {
		t.Fatalf("ListImages returned error: %v", err)
	}
	if page.Total != 4 {
		t.Fatalf("expected total 4, got %d", page.Total)
	}

	want := []string{
		"/api/v1/images/gen/2024-03-03/c.png",
		"/api/v1/images/edit/2024-03-02/d.png",
		"/api/v1/images/gen/2024-03-01/b.png",
		"/api/v1/images/gen/2024-03-01/a.png",
	}
	if len(page.Images) != len(want) {
		t.Fatalf("expected %d images, got %d", len(want), len(page.Images))
	}
	for i, img := range page.Images {
		if img.Path != want[i] {
			t.Fatalf("image %d: got %s want %s", i, img.Path, want[i])
		}
	}
}

func TestListImages_OldestIsReverseOfNewest(t *testing.T) {
	svc := NewGalleryService(galleryFixture())

	newest, err := svc.ListImages(context.Background(), "u1", domain.FilterAll, domain.SortNewest, 0, 10)
	if err != nil {
		t.Fatalf("ListImages newest returned error: %v", err)
	}
	oldest, err := svc.ListImages(context.Background(), "u1", domain.FilterAll, domain.SortOldest, 0, 10)
	if err != nil {
		t.Fatalf("ListImages oldest returned error: %v", err)
	}

	n := len(newest.Images)
	if n != len(oldest.Images) {
		t.Fatalf("orders disagree on size: %d vs %d", n, len(oldest.Images))
	}
	for i := 0; i < n; i++ {
		if newest.Images[i].Path != oldest.Images[n-1-i].Path {
			t.Fatalf("position %d: newest %s is not the mirror of oldest %s", i, newest.Images[i].Path, oldest.Images[n-1-i].Path)
		}
	}
}

func TestListImages_Filter(t *testing.T) {
	svc := NewGalleryService(galleryFixture())

	page, err := svc.ListImages(context.Background(), "u1", domain.FilterEdited, domain.SortNewest, 0, 10)
	if err != nil {
		t.Fatalf("ListImages returned error: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("expected total 1, got %d", page.Total)
	}
	for _, img := range page.Images {
		if img.Type != domain.CategoryEdited {
			t.Fatalf("filter leaked category %s", img.Type)
		}
	}
}

// Total reflects the full result set no matter which page is requested.
func TestListImages_TotalStableAcrossPages(t *testing.T) {
	svc := NewGalleryService(galleryFixture())

	var collected []string
	for offset := 0; ; offset += 2 {
		page, err := svc.ListImages(context.Background(), "u1", domain.FilterAll, domain.SortNewest, offset, 2)
		if err != nil {
			t.Fatalf("offset %d: ListImages returned error: %v", offset, err)
		}
		if page.Total != 4 {
			t.Fatalf("offset %d: expected total 4, got %d", offset, page.Total)
		}
		if len(page.Images) == 0 {
			break
		}
		for _, img := range page.Images {
			collected = append(collected, img.Path)
		}
	}
	if len(collected) != 4 {
		t.Fatalf("pages did not cover the full set: got %d entries", len(collected))
	}
}

func TestListImages_OffsetBeyondTotal(t *testing.T) {
	svc := NewGalleryService(galleryFixture())

	page, err := svc.ListImages(context.Background(), "u1", domain.FilterAll, domain.SortNewest, 100, 10)
	if err != nil {
		t.Fatalf("ListImages returned error: %v", err)
	}
	if page.Total != 4 {
		t.Fatalf("expected total 4, got %d", page.Total)
	}
	if len(page.Images) != 0 {
		t.Fatalf("expected empty page, got %d images", len(page.Images))
	}
}

func TestListImages_EmptyStore(t *testing.T) {
	svc := NewGalleryService(&stubArtifactStore{files: map[domain.Category][]ports.ArtifactFile{}})

	page, err := svc.ListImages(context.Background(), "u1", domain.FilterAll, domain.SortNewest, 0, 10)
	if err != nil {
		t.Fatalf("ListImages returned error: %v", err)
	}
	if page.Total != 0 || len(page.Images) != 0 {
		t.Fatalf("expected empty result, got total %d with %d images", page.Total, len(page.Images))
	}
}

func TestListImages_InvalidParams(t *testing.T) {
	svc := NewGalleryService(galleryFixture())

	cases := []struct {
		name          string
		filter, order string
		offset, limit int
	}{
		{"negative offset", domain.FilterAll, domain.SortNewest, -1, 10},
		{"zero limit", domain.FilterAll, domain.SortNewest, 0, 0},
		{"unknown filter", "thumbnails", domain.SortNewest, 0, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.ListImages(context.Background(), "u1", tc.filter, tc.order, tc.offset, tc.limit); !errors.Is(err, domain.ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}
