// Package info implements "gram --info": static statistics for a Go file
// or a directory of Go files.
package info

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gramcli/gram/internal/app"
	"github.com/gramcli/gram/internal/discovery"
	"github.com/gramcli/gram/internal/printer"
	"github.com/gramcli/gram/internal/stats"
	"github.com/gramcli/gram/internal/tui"
	"github.com/urfave/cli/v3"
)

// TopFiles is how many of the largest files a directory report lists.
const TopFiles = 10

// fileReport is the JSON form of a single-file report.
type fileReport struct {
	Kind    string           `json:"kind"`
	Stats   *stats.FileStats `json:"stats"`
	Metrics []stats.Metric   `json:"metrics"`
	Score   stats.Score      `json:"score"`
	Label   string           `json:"label"`
}

// dirReport is the JSON form of a directory report.
type dirReport struct {
	Kind string `json:"kind"`
	*stats.DirReport
	Score stats.Score `json:"score"`
	Label string      `json:"label"`
}

// Run analyses path and prints the report.
func Run(ctx context.Context, d app.Deps, opts app.Options, path string) error {
	svc := discovery.NewService(d.FS)
	target, err := svc.Resolve(ctx, path)
	if err != nil {
		return reportTargetError(d, opts, path, err)
	}

	analyzer := stats.NewAnalyzer(d.FS)
	if !target.IsDir {
		s, err := analyzer.AnalyzeFile(ctx, target.Path)
		if err != nil {
			d.Console.Panel("Analysis failed", err.Error(), printer.ToneError)
			return strictExit(opts)
		}
		if opts.JSON() {
			return d.Console.JSON(fileReport{
				Kind: "file", Stats: s, Metrics: s.Metrics(), Score: s.Score(), Label: s.Score().Label(),
			})
		}
		printFile(d.Console, s)
		return nil
	}

	files, err := svc.GoFiles(ctx, target)
	if err != nil {
		return reportTargetError(d, opts, path, err)
	}

	var progress *tui.Progress
	if !opts.JSON() {
		progress = tui.NewProgress(len(files), "analysing")
	}
	report, err := analyzer.AnalyzeFiles(ctx, target.Path, files, progress.Step)
	progress.Done()
	if err != nil {
		return err
	}

	if opts.JSON() {
		return d.Console.JSON(dirReport{Kind: "directory", DirReport: report, Score: report.Score(), Label: report.Score().Label()})
	}
	printDirectory(d.Console, report)
	return nil
}

func reportTargetError(d app.Deps, opts app.Options, path string, err error) error {
	if opts.JSON() {
		if jerr := d.Console.JSON(map[string]string{"target": path, "error": err.Error()}); jerr != nil {
			return jerr
		}
		if errors.Is(err, discovery.ErrNoFiles) {
			return nil
		}
		return strictExit(opts)
	}
	switch {
	case errors.Is(err, discovery.ErrNoFiles):
		d.Console.Panel("No files", fmt.Sprintf("No Go files found in %s.", path), printer.ToneWarning)
		return nil
	case errors.Is(err, discovery.ErrNotFound):
		d.Console.Panel("Not found", fmt.Sprintf("Path %s does not exist.", path), printer.ToneError)
	case errors.Is(err, discovery.ErrUnsupportedFile):
		d.Console.Panel("Unsupported file", fmt.Sprintf("%s is not a Go source file.", path), printer.ToneWarning)
	default:
		return err
	}
	return strictExit(opts)
}

func strictExit(opts app.Options) error {
	if opts.Strict {
		return cli.Exit("", 1)
	}
	return nil
}

func printFile(c *printer.Console, s *stats.FileStats) {
	rows := make([][]string, 0, 7)
	for _, m := range s.Metrics() {
		rows = append(rows, []string{m.Name, strconv.Itoa(m.Value), styleLevel(m.Evaluation.Level, m.Evaluation.Label)})
	}
	c.Table("Statistics: "+s.Path, []string{"Metric", "Value", "Evaluation"}, rows)

	c.Panel("Details", fmt.Sprintf(
		"Size:             %.1f KB\nComment density:  %.1f%%\nFunctions:types:  %s",
		float64(s.Size)/1024, s.CommentRatio()*100, ratio(s.Functions, s.Types),
	), printer.ToneInfo)

	printScore(c, "File score", s.Score())
}

func printDirectory(c *printer.Console, r *stats.DirReport) {
	if len(r.Failures) > 0 {
		body := ""
		for i, f := range r.Failures {
			if i > 0 {
				body += "\n"
			}
			body += fmt.Sprintf("%s: %s", f.Path, f.Err)
		}
		c.Panel(fmt.Sprintf("Skipped %d file(s)", len(r.Failures)), body, printer.ToneWarning)
	}

	t := r.Totals
	n := len(r.Files)
	c.Table("Project: "+r.Root, []string{"Metric", "Total", "Per file"}, [][]string{
		{"Files", strconv.Itoa(n), ""},
		{"Lines", strconv.Itoa(t.Lines), perFile(t.Lines, n)},
		{"Functions", strconv.Itoa(t.Functions), perFile(t.Functions, n)},
		{"Types", strconv.Itoa(t.Types), perFile(t.Types, n)},
		{"Imports", strconv.Itoa(t.Imports), perFile(t.Imports, n)},
		{"Comment lines", strconv.Itoa(t.Comments), fmt.Sprintf("%.1f%%", t.CommentRatio()*100)},
		{"Doc comments", strconv.Itoa(t.DocComments), perFile(t.DocComments, n)},
		{"Concurrent functions", strconv.Itoa(t.Concurrent), perFile(t.Concurrent, n)},
		{"Size", fmt.Sprintf("%.1f KB", float64(t.Size)/1024), ""},
	})

	top := r.TopBySize(TopFiles)
	rows := make([][]string, 0, len(top))
	for _, f := range top {
		rows = append(rows, []string{f.Path, strconv.Itoa(f.Lines), strconv.Itoa(f.Functions), fmt.Sprintf("%.1f KB", float64(f.Size)/1024)})
	}
	c.Table(fmt.Sprintf("Largest files (top %d)", len(top)), []string{"File", "Lines", "Functions", "Size"}, rows)

	printScore(c, "Project score", r.Score())
}

func printScore(c *printer.Console, title string, s stats.Score) {
	tone := printer.ToneSuccess
	switch s.Level() {
	case stats.LevelFair:
		tone = printer.ToneWarning
	case stats.LevelPoor:
		tone = printer.ToneError
	}
	c.Panel(title, fmt.Sprintf("%d/%d  %s", s, stats.MaxScore, s.Label()), tone)
}

func styleLevel(l stats.Level, label string) string {
	switch l {
	case stats.LevelGood:
		return printer.Success(label)
	case stats.LevelFair:
		return printer.Warning(label)
	case stats.LevelPoor:
		return printer.Error(label)
	case stats.LevelNotable:
		return printer.Accent(label)
	default:
		return printer.Faint(label)
	}
}

func perFile(total, files int) string {
	if files == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", float64(total)/float64(files))
}

func ratio(funcs, types int) string {
	if types == 0 {
		return fmt.Sprintf("%d:0", funcs)
	}
	return fmt.Sprintf("%.1f:1", float64(funcs)/float64(types))
}
