package discovery

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound is returned when the target path does not exist.
	ErrNotFound = errors.New("path not found")

	// ErrUnsupportedFile is returned when a file target is not Go source.
	ErrUnsupportedFile = errors.New("not a Go source file")

	// ErrNoFiles is returned when a directory holds no Go source files.
	ErrNoFiles = errors.New("no Go files found")
)

// GoExt is the extension of analysed source files.
const GoExt = ".go"

// DefaultTestPattern matches Go test files.
const DefaultTestPattern = "*_test.go"

// Target is a resolved analysis target.
type Target struct {
	// Path is the path as given by the user.
	Path string
	// IsDir is true when Path is a directory.
	IsDir bool
	// Dir is Path for directories and the parent for files.
	Dir string
}

// Packages returns the go tool package pattern for the target:
// "./..." for a directory and "." for a single file.
func (t *Target) Packages() string {
	if t.IsDir {
		return "./..."
	}
	return "."
}

// IsGoFile reports whether name has the .go extension.
func IsGoFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), GoExt)
}
