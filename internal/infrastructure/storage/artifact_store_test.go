package storage

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/uwgen/media-api/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	return store
}

func TestWrite_NameFormatAndContent(t *testing.T) {
	store := newTestStore(t)

	date, name, err := store.Write(domain.CategoryGenerated, "user-1", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	if !regexp.MustCompile(`^\d{8}T\d{6}Z_[0-9a-f]{32}\.png$`).MatchString(name) {
		t.Fatalf("unexpected filename format: %s", name)
	}
	if !regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`).MatchString(date) {
		t.Fatalf("unexpected date segment: %s", date)
	}

	data, err := os.ReadFile(filepath.Join(store.root, "user-1", "gen", date, name))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("stored content mismatch")
	}
}

func TestWrite_UniqueNames(t *testing.T) {
	store := newTestStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		_, name, err := store.Write(domain.CategoryGenerated, "user-1", []byte("x"))
		if err != nil {
			t.Fatalf("Write returned error: %v", err)
		}
		if seen[name] {
			t.Fatalf("duplicate filename generated: %s", name)
		}
		seen[name] = true
	}
}

func TestResolveServePath_Success(t *testing.T) {
	store := newTestStore(t)

	date, name, err := store.Write(domain.CategoryGenerated, "user-1", []byte("img"))
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	path, err := store.ResolveServePath(domain.CategoryGenerated, date, name, "user-1")
	if err != nil {
		t.Fatalf("ResolveServePath returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("resolved path not readable: %v", err)
	}
}

func TestResolveServePath_Traversal(t *testing.T) {
	store := newTestStore(t)

	date, _, err := store.Write(domain.CategoryGenerated, "user-1", []byte("img"))
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	for _, filename := range []string{
		"../../etc/passwd",
		"../../../../../../etc/passwd",
		"..",
		"/etc/passwd",
		"../2000-01-01/whatever.png",
	} {
		_, err := store.ResolveServePath(domain.CategoryGenerated, date, filename, "user-1")
		if !errors.Is(err, domain.ErrPathTraversalDetected) {
			t.Fatalf("filename %q: expected ErrPathTraversalDetected, got %v", filename, err)
		}
	}
}

func TestResolveServePath_SymlinkEscape(t *testing.T) {
	store := newTestStore(t)

	date, _, err := store.Write(domain.CategoryGenerated, "user-1", []byte("img"))
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	outside := filepath.Join(t.TempDir(), "outside.png")
	if err := os.WriteFile(outside, []byte("secret"), 0o644); err != nil {
		t.Fatalf("write outside file: %v", err)
	}
	link := filepath.Join(store.root, "user-1", "gen", date, "link.png")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	if _, err := store.ResolveServePath(domain.CategoryGenerated, date, "link.png", "user-1"); !errors.Is(err, domain.ErrPathTraversalDetected) {
		t.Fatalf("expected ErrPathTraversalDetected for symlink escape, got %v", err)
	}
}

func TestResolveServePath_MissingUserDir(t *testing.T) {
	store := newTestStore(t)

	// The directory-missing probe fires before any traversal verdict so a
	// crafted filename against an absent user looks identical to a missing
	// file.
	for _, filename := range []string{"whatever.png", "../../etc/passwd"} {
		_, err := store.ResolveServePath(domain.CategoryGenerated, "2024-01-01", filename, "ghost")
		if !errors.Is(err, domain.ErrFileNotFound) {
			t.Fatalf("filename %q: expected ErrFileNotFound, got %v", filename, err)
		}
	}
}

func TestResolveServePath_MissingFile(t *testing.T) {
	store := newTestStore(t)

	date, _, err := store.Write(domain.CategoryGenerated, "user-1", []byte("img"))
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	_, err = store.ResolveServePath(domain.CategoryGenerated, date, "nope.png", "user-1")
	if !errors.Is(err, domain.ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestResolveOutputDir_Idempotent(t *testing.T) {
	store := newTestStore(t)

	dir1, err := store.ResolveOutputDir(domain.CategoryEdited, "user-2")
	if err != nil {
		t.Fatalf("ResolveOutputDir returned error: %v", err)
	}
	dir2, err := store.ResolveOutputDir(domain.CategoryEdited, "user-2")
	if err != nil {
		t.Fatalf("second ResolveOutputDir returned error: %v", err)
	}
	if dir1 != dir2 {
		t.Fatalf("output dir not deterministic: %s vs %s", dir1, dir2)
	}
	if !strings.Contains(dir1, filepath.Join("user-2", "edit")) {
		t.Fatalf("unexpected layout: %s", dir1)
	}
}

func TestList(t *testing.T) {
	store := newTestStore(t)

	if files, err := store.List(domain.CategoryGenerated, "nobody"); err != nil || len(files) != 0 {
		t.Fatalf("expected empty listing for absent tree, got %d files, err %v", len(files), err)
	}

	for i := 0; i < 3; i++ {
		if _, _, err := store.Write(domain.CategoryGenerated, "user-3", []byte("x")); err != nil {
			t.Fatalf("Write returned error: %v", err)
		}
	}

	files, err := store.List(domain.CategoryGenerated, "user-3")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(files))
	}
	for _, f := range files {
		if f.Name == "" || f.Date == "" || f.ModTime.IsZero() {
			t.Fatalf("incomplete artifact file entry: %+v", f)
		}
	}
}
