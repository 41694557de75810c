package domain

import "time"

// Category is the kind of artifact tree an image lives under.
type Category string

const (
	CategoryGenerated Category = "gen"
	CategoryEdited    Category = "edit"
)

// Valid reports whether c names a known artifact category.
func (c Category) Valid() bool {
	return c == CategoryGenerated || c == CategoryEdited
}

// Artifact describes one stored image as the gallery presents it.
type Artifact struct {
	Path    string    `json:"path"`
	Type    Category  `json:"type"`
	Date    string    `json:"date"`
	ModTime time.Time `json:"-"`
}

// Gallery filter and sort vocabulary, matching the public query parameters.
const (
	FilterAll       = "all"
	FilterGenerated = string(CategoryGenerated)
	FilterEdited    = string(CategoryEdited)

	SortNewest = "newest"
	SortOldest = "oldest"
)
