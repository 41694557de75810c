package ports

import (
	"time"

	"github.com/uwgen/media-api/internal/core/domain"
)

// ArtifactFile is one stored file as enumerated from the media tree.
type ArtifactFile struct {
	Name    string
	Date    string
	ModTime time.Time
}

// ArtifactStore manages the per-user media tree
// root/<user>/<category>/<date>/<filename>.
type ArtifactStore interface {
	// ResolveOutputDir returns today's output directory for the user and
	// category, creating it if needed. Creation is idempotent.
	ResolveOutputDir(category domain.Category, userID string) (string, error)
	// Write persists data under a unique generated filename and returns
	// the date segment it was stored under together with that filename.
	Write(category domain.Category, userID string, data []byte) (date, filename string, err error)
	// ResolveServePath maps request path segments to an absolute file path,
	// rejecting anything that escapes the user's tree with
	// domain.ErrPathTraversalDetected. Missing directories or files yield
	// domain.ErrFileNotFound.
	ResolveServePath(category domain.Category, dateSegment, filename, userID string) (string, error)
	// List enumerates every regular file under the user's category tree.
	// A missing tree yields an empty slice, not an error.
	List(category domain.Category, userID string) ([]ArtifactFile, error)
}
