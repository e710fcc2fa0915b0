package stats

import (
	"context"
	"testing"

	"github.com/gramcli/gram/internal/core"
)

const sample = `// Package sample is a fixture.
package sample

import (
	"fmt"
	"sync"
)

// Worker does work.
type Worker struct {
	mu sync.Mutex
}

type (
	// ID identifies a worker.
	ID   int
	Name string
)

/*
Run starts the worker.
It spans three comment lines.
*/
func (w *Worker) Run() {
	go func() { fmt.Println("bg") }()
}

func helper() int { return 1 } // trailing

func nested() {
	f := func() {
		go helper()
	}
	f()
}
`

func TestAnalyzeSource(t *testing.T) {
	s, err := AnalyzeSource("sample.go", []byte(sample))
	if err != nil {
		t.Fatalf("AnalyzeSource: %v", err)
	}

	checks := []struct {
		name string
		got  int
		want int
	}{
		{"Lines", s.Lines, 35},
		{"Functions", s.Functions, 3},
		{"Types", s.Types, 3},
		{"Imports", s.Imports, 2},
		{"Comments", s.Comments, 8},
		{"DocComments", s.DocComments, 4},
		{"Concurrent", s.Concurrent, 2},
		{"Size", int(s.Size), len(sample)},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}
}

func TestAnalyzeSource_SyntaxError(t *testing.T) {
	if _, err := AnalyzeSource("bad.go", []byte("package x\nfunc {")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestAnalyzeFile_Deterministic(t *testing.T) {
	ctx := context.Background()
	fs := core.NewMockFileSystem()
	fs.SetFile("/src/sample.go", []byte(sample))
	a := NewAnalyzer(fs)

	first, err := a.AnalyzeFile(ctx, "/src/sample.go")
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := a.AnalyzeFile(ctx, "/src/sample.go")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if *first != *second {
		t.Errorf("runs differ: %+v vs %+v", first, second)
	}
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"a\n", 1},
		{"a\nb", 2},
		{"a\n\n", 2},
	}
	for _, tt := range tests {
		if got := countLines([]byte(tt.in)); got != tt.want {
			t.Errorf("countLines(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCommentRatio_Empty(t *testing.T) {
	s := &FileStats{}
	if s.CommentRatio() != 0 {
		t.Errorf("CommentRatio() = %v, want 0", s.CommentRatio())
	}
}
