package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gramcli/gram/internal/core"
)

// skipDirs are directory names never descended into.
var skipDirs = []string{"vendor", "testdata", "node_modules"}

// Service enumerates Go source files.
type Service struct {
	fs       core.FileSystem
	excludes []string
}

// NewService creates a new discovery Service. excludes are extra glob
// patterns matched against entry names and paths.
func NewService(fs core.FileSystem, excludes ...string) *Service {
	return &Service{fs: fs, excludes: excludes}
}

// Resolve checks that path exists and classifies it. A file target must be
// a .go file.
func (s *Service) Resolve(ctx context.Context, path string) (*Target, error) {
	info, err := s.fs.Stat(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %q: %w", path, err)
	}

	if info.IsDir() {
		return &Target{Path: path, IsDir: true, Dir: path}, nil
	}
	if !IsGoFile(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
	return &Target{Path: path, Dir: filepath.Dir(path)}, nil
}

// GoFiles returns the Go files of the target in sorted order.
// A directory with no Go files yields ErrNoFiles.
func (s *Service) GoFiles(ctx context.Context, t *Target) ([]string, error) {
	if !t.IsDir {
		return []string{t.Path}, nil
	}
	files, err := s.collect(ctx, t.Path, func(name string) bool { return IsGoFile(name) })
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, t.Path)
	}
	return files, nil
}

// TestFiles returns files under the target directory whose names match
// pattern (DefaultTestPattern when empty). For a file target only the
// target's own directory is scanned, without recursion.
func (s *Service) TestFiles(ctx context.Context, t *Target, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultTestPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid test pattern %q: %w", pattern, err)
	}
	match := func(name string) bool {
		ok, _ := filepath.Match(pattern, name)
		return ok
	}

	if t.IsDir {
		return s.collect(ctx, t.Path, match)
	}

	entries, err := s.fs.ReadDir(ctx, t.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", t.Dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && match(e.Name()) {
			files = append(files, filepath.Join(t.Dir, e.Name()))
		}
	}
	return files, nil
}

func (s *Service) collect(ctx context.Context, root string, match func(string) bool) ([]string, error) {
	var files []string
	err := s.walkDirectory(ctx, root, func(path string) {
		if match(filepath.Base(path)) {
			files = append(files, path)
		}
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// walkDirectory walks the tree rooted at dir calling fn for each file.
func (s *Service) walkDirectory(ctx context.Context, dir string, fn func(string)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := s.fs.ReadDir(ctx, dir)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		if entry.IsDir() {
			if s.shouldSkipDir(name, path) {
				continue
			}
			if err := s.walkDirectory(ctx, path, fn); err != nil {
				return err
			}
			continue
		}
		if s.isExcluded(name, path) {
			continue
		}
		fn(path)
	}
	return nil
}

func (s *Service) shouldSkipDir(name, path string) bool {
	if strings.HasPrefix(name, ".") && name != "." && name != ".." {
		return true
	}
	if slices.Contains(skipDirs, name) {
		return true
	}
	return s.isExcluded(name, path)
}

func (s *Service) isExcluded(name, path string) bool {
	for _, pattern := range s.excludes {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
	}
	return false
}
