package stats

import (
	"cmp"
	"context"
	"path/filepath"
	"slices"

	logger "github.com/sirupsen/logrus"
)

// FileError records a file that could not be analysed.
type FileError struct {
	Path string `json:"path"`
	Err  string `json:"error"`
}

// DirReport aggregates statistics over a directory.
type DirReport struct {
	Root     string      `json:"root"`
	Files    []FileStats `json:"files"`
	Failures []FileError `json:"failures,omitempty"`
	Totals   FileStats   `json:"totals"`
}

// AnalyzeFiles analyses files in order. Files that fail to read or parse
// are recorded in Failures and skipped. progress, when non-nil, is called
// once per file after it has been processed.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, root string, files []string, progress func(path string)) (*DirReport, error) {
	r := &DirReport{Root: root, Files: make([]FileStats, 0, len(files))}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s, err := a.AnalyzeFile(ctx, path)
		if progress != nil {
			progress(path)
		}
		if err != nil {
			logger.WithError(err).WithField("file", path).Debug("skipping file")
			r.Failures = append(r.Failures, FileError{Path: path, Err: err.Error()})
			continue
		}

		if rel, err := filepath.Rel(root, path); err == nil {
			s.Path = rel
		}
		r.Files = append(r.Files, *s)
		r.add(s)
	}

	slices.SortFunc(r.Files, func(a, b FileStats) int { return cmp.Compare(a.Path, b.Path) })
	return r, nil
}

func (r *DirReport) add(s *FileStats) {
	t := &r.Totals
	t.Lines += s.Lines
	t.Functions += s.Functions
	t.Types += s.Types
	t.Imports += s.Imports
	t.Comments += s.Comments
	t.DocComments += s.DocComments
	t.Concurrent += s.Concurrent
	t.Size += s.Size
}

// TopBySize returns up to n files ordered by size, largest first.
// Ties are broken by path so the order is stable.
func (r *DirReport) TopBySize(n int) []FileStats {
	sorted := slices.Clone(r.Files)
	slices.SortFunc(sorted, func(a, b FileStats) int {
		if c := cmp.Compare(b.Size, a.Size); c != 0 {
			return c
		}
		return cmp.Compare(a.Path, b.Path)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
