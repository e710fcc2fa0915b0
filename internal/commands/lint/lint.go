// Package lint implements "gram --lint": a syntax check of every Go file
// followed by the configured external quality tools.
package lint

import (
	"context"
	"errors"
	"fmt"

	"github.com/gramcli/gram/internal/app"
	"github.com/gramcli/gram/internal/discovery"
	"github.com/gramcli/gram/internal/printer"
	"github.com/gramcli/gram/internal/quality"
	"github.com/urfave/cli/v3"
)

// Run checks path and prints the report. With opts.Strict the returned
// error carries exit code 1 when syntax errors or findings were reported.
func Run(ctx context.Context, d app.Deps, opts app.Options, path string) error {
	tools, err := quality.ToolsFromConfig(d.Config.Lint.Tools)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid lint configuration: %v", err), 2)
	}
	agg := quality.NewAggregator(d.FS, d.Runner, tools, d.Config.Lint.TestPattern)

	var rep reporter
	if opts.JSON() {
		rep = &jsonReporter{}
	} else {
		rep = newTextReporter(d.Console)
	}

	report, err := agg.Run(ctx, path, rep)
	if err != nil {
		if isTargetError(err) {
			return reportTargetError(d, opts, path, err)
		}
		return err
	}
	rep.Finish(report)

	if opts.JSON() {
		if err := d.Console.JSON(report); err != nil {
			return err
		}
	}
	if opts.Strict && report.HasFindings() {
		return cli.Exit("", 1)
	}
	return nil
}

func isTargetError(err error) bool {
	return errors.Is(err, discovery.ErrNotFound) ||
		errors.Is(err, discovery.ErrUnsupportedFile) ||
		errors.Is(err, discovery.ErrNoFiles)
}

// reportTargetError prints a panel for an unusable target. A missing or
// non-Go target fails the run in strict mode; an empty directory does not.
func reportTargetError(d app.Deps, opts app.Options, path string, err error) error {
	if opts.JSON() {
		if jerr := d.Console.JSON(map[string]string{"target": path, "error": err.Error()}); jerr != nil {
			return jerr
		}
	} else {
		switch {
		case errors.Is(err, discovery.ErrNotFound):
			d.Console.Panel("Not found", fmt.Sprintf("Path %s does not exist.", path), printer.ToneError)
		case errors.Is(err, discovery.ErrUnsupportedFile):
			d.Console.Panel("Unsupported file", fmt.Sprintf("%s is not a Go source file.", path), printer.ToneWarning)
		default:
			d.Console.Panel("No files", fmt.Sprintf("No Go files found in %s. Nothing to check.", path), printer.ToneWarning)
		}
	}
	if opts.Strict && !errors.Is(err, discovery.ErrNoFiles) {
		return cli.Exit("", 1)
	}
	return nil
}
