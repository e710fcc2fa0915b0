package tui

import (
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
)

// Progress is a per-item progress bar drawn on stderr. The zero value and
// a nil *Progress are no-ops, so callers need not check for a terminal.
type Progress struct {
	bar *progressbar.ProgressBar
}

// NewProgress returns a bar for total items, or a no-op Progress when
// stderr is not a terminal or total is below two.
func NewProgress(total int, description string) *Progress {
	if total < 2 || !IsStderrTTY() || InCI() {
		return &Progress{}
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
	return &Progress{bar: bar}
}

// Step advances the bar by one and shows the base name of path.
func (p *Progress) Step(path string) {
	if p == nil || p.bar == nil {
		return
	}
	p.bar.Describe(filepath.Base(path))
	_ = p.bar.Add(1)
}

// Done completes and clears the bar.
func (p *Progress) Done() {
	if p == nil || p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}
