package stats

import (
	"bytes"
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"

	"github.com/gramcli/gram/internal/core"
)

// FileStats holds the counts for one Go source file.
type FileStats struct {
	Path        string `json:"path"`
	Lines       int    `json:"lines"`
	Functions   int    `json:"functions"`
	Types       int    `json:"types"`
	Imports     int    `json:"imports"`
	Comments    int    `json:"comment_lines"`
	DocComments int    `json:"doc_comments"`
	Concurrent  int    `json:"concurrent_functions"`
	Size        int64  `json:"size_bytes"`
}

// CommentRatio returns comment lines per line of code, 0 for empty input.
func (s *FileStats) CommentRatio() float64 {
	if s.Lines == 0 {
		return 0
	}
	return float64(s.Comments) / float64(s.Lines)
}

// Analyzer computes statistics for files on a core.FileSystem.
type Analyzer struct {
	fs core.FileSystem
}

// NewAnalyzer creates an Analyzer reading from fs.
func NewAnalyzer(fs core.FileSystem) *Analyzer {
	return &Analyzer{fs: fs}
}

// AnalyzeFile reads and analyses a single file.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*FileStats, error) {
	src, err := a.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	return AnalyzeSource(path, src)
}

// AnalyzeSource parses src and counts its metrics. path is used for
// positions and is recorded in the result.
func AnalyzeSource(path string, src []byte) (*FileStats, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}

	s := &FileStats{
		Path:    path,
		Lines:   countLines(src),
		Imports: len(file.Imports),
		Size:    int64(len(src)),
	}

	for _, group := range file.Comments {
		for _, c := range group.List {
			start := fset.Position(c.Slash).Line
			end := fset.Position(c.End()).Line
			s.Comments += end - start + 1
		}
	}

	if file.Doc != nil {
		s.DocComments++
	}

	ast.Inspect(file, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.FuncDecl:
			s.Functions++
			if node.Doc != nil {
				s.DocComments++
			}
			if node.Body != nil && startsGoroutine(node.Body) {
				s.Concurrent++
			}
		case *ast.GenDecl:
			if node.Tok != token.TYPE {
				return true
			}
			for _, spec := range node.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				s.Types++
				if ts.Doc != nil || (node.Doc != nil && len(node.Specs) == 1) {
					s.DocComments++
				}
			}
			return false
		}
		return true
	})

	return s, nil
}

func startsGoroutine(body *ast.BlockStmt) bool {
	found := false
	ast.Inspect(body, func(n ast.Node) bool {
		if _, ok := n.(*ast.GoStmt); ok {
			found = true
		}
		return !found
	})
	return found
}

// countLines counts lines the way a line splitter does: a trailing
// newline does not start a new line.
func countLines(src []byte) int {
	if len(src) == 0 {
		return 0
	}
	n := bytes.Count(src, []byte{'\n'})
	if src[len(src)-1] != '\n' {
		n++
	}
	return n
}
