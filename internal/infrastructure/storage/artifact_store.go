// Package storage implements the per-user artifact tree backing generated
// and edited images. Files live at root/<user>/<category>/<date>/<filename>
// and are immutable once written.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/uwgen/media-api/internal/core/domain"
	"github.com/uwgen/media-api/internal/core/ports"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "20060102T150405Z"
)

// Store is a filesystem-backed artifact store rooted at a single media
// directory. Safe for concurrent use: directory creation is idempotent and
// filenames carry a random component, so writers never collide.
type Store struct {
	root string
}

// NewStore creates a Store rooted at mediaRoot. The root is resolved to an
// absolute path once so later containment checks compare stable prefixes.
func NewStore(mediaRoot string) (*Store, error) {
	root, err := filepath.Abs(mediaRoot)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve media root: %w", err)
	}
	return &Store{root: root}, nil
}

// ResolveOutputDir returns root/<user>/<category>/<today UTC>, creating the
// chain on first use.
func (s *Store) ResolveOutputDir(category domain.Category, userID string) (string, error) {
	dir := filepath.Join(s.root, userID, string(category), time.Now().UTC().Format(dateLayout))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: create output dir: %w", err)
	}
	return dir, nil
}

// Write persists data under a generated name
// <UTC second timestamp>_<128-bit hex>.png. The random component guarantees
// uniqueness even for same-second concurrent writes.
func (s *Store) Write(category domain.Category, userID string, data []byte) (string, string, error) {
	dir, err := s.ResolveOutputDir(category, userID)
	if err != nil {
		return "", "", err
	}

	suffix := make([]byte, 16)
	if _, err := rand.Read(suffix); err != nil {
		return "", "", fmt.Errorf("storage: random filename: %w", err)
	}
	name := fmt.Sprintf("%s_%s.png", time.Now().UTC().Format(timestampLayout), hex.EncodeToString(suffix))

	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", "", fmt.Errorf("storage: write artifact: %w", err)
	}
	return filepath.Base(dir), name, nil
}

// ResolveServePath maps request segments to an absolute file path. The
// directory-missing case is checked before any traversal verdict so both
// probes fail identically with ErrFileNotFound, leaking nothing about what
// exists. A candidate whose resolved path leaves the date directory —
// ".." segments, absolute filenames, or symlink escapes — fails with
// ErrPathTraversalDetected.
func (s *Store) ResolveServePath(category domain.Category, dateSegment, filename, userID string) (string, error) {
	dir, err := filepath.EvalSymlinks(filepath.Join(s.root, userID, string(category), dateSegment))
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.ErrFileNotFound
		}
		return "", fmt.Errorf("storage: resolve serve dir: %w", err)
	}

	if filepath.IsAbs(filename) {
		return "", domain.ErrPathTraversalDetected
	}

	candidate := filepath.Join(dir, filename)
	if !within(dir, candidate) {
		return "", domain.ErrPathTraversalDetected
	}

	resolved, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.ErrFileNotFound
		}
		return "", fmt.Errorf("storage: resolve artifact: %w", err)
	}
	if !within(dir, resolved) {
		return "", domain.ErrPathTraversalDetected
	}

	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return "", domain.ErrFileNotFound
	}
	return resolved, nil
}

// List enumerates every regular file under root/<user>/<category>, grouped
// by date directory. A tree that does not exist contributes nothing.
func (s *Store) List(category domain.Category, userID string) ([]ports.ArtifactFile, error) {
	categoryDir := filepath.Join(s.root, userID, string(category))

	dateDirs, err := os.ReadDir(categoryDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: list category: %w", err)
	}

	var files []ports.ArtifactFile
	for _, dateDir := range dateDirs {
		if !dateDir.IsDir() {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(categoryDir, dateDir.Name()))
		if err != nil {
			return nil, fmt.Errorf("storage: list date dir: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				return nil, fmt.Errorf("storage: stat artifact: %w", err)
			}
			files = append(files, ports.ArtifactFile{
				Name:    entry.Name(),
				Date:    dateDir.Name(),
				ModTime: info.ModTime(),
			})
		}
	}
	return files, nil
}

// within reports whether path stays inside dir. The dir itself does not
// count as inside.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
