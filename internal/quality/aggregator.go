package quality

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gramcli/gram/internal/core"
	"github.com/gramcli/gram/internal/discovery"
	logger "github.com/sirupsen/logrus"
)

// Reporter receives pipeline events as they happen.
type Reporter interface {
	// Files is called once the target has been resolved and enumerated.
	Files(target *discovery.Target, files []string)
	// FileChecked is called after each file has been parsed.
	FileChecked(res SyntaxResult)
	// ToolStarted is called before a tool is invoked.
	ToolStarted(spec ToolSpec)
	// ToolFinished is called with every classified outcome.
	ToolFinished(o Outcome)
}

// Report is the full result of a pipeline run.
type Report struct {
	Target   string         `json:"target"`
	Files    int            `json:"files"`
	Syntax   []SyntaxResult `json:"syntax"`
	Outcomes []Outcome      `json:"tools"`
}

// SyntaxErrors returns the number of files that did not parse cleanly.
func (r *Report) SyntaxErrors() int {
	n := 0
	for _, s := range r.Syntax {
		if s.Status != SyntaxOK {
			n++
		}
	}
	return n
}

// HasFindings reports whether the run found syntax errors or any tool
// reported issues. NotInstalled, TimedOut and Skipped do not count.
func (r *Report) HasFindings() bool {
	if r.SyntaxErrors() > 0 {
		return true
	}
	for _, o := range r.Outcomes {
		if o.Status == StatusFoundIssues {
			return true
		}
	}
	return false
}

// Aggregator runs the quality pipeline.
type Aggregator struct {
	fs          core.FileSystem
	runner      core.Runner
	discovery   *discovery.Service
	tools       []ToolSpec
	testPattern string
	now         func() time.Time
}

// NewAggregator creates an Aggregator. An empty tools list selects
// DefaultTools.
func NewAggregator(fs core.FileSystem, runner core.Runner, tools []ToolSpec, testPattern string) *Aggregator {
	if len(tools) == 0 {
		tools = DefaultTools()
	}
	return &Aggregator{
		fs:          fs,
		runner:      runner,
		discovery:   discovery.NewService(fs),
		tools:       tools,
		testPattern: testPattern,
		now:         time.Now,
	}
}

// Run checks path. It returns discovery.ErrNotFound, ErrUnsupportedFile or
// ErrNoFiles (wrapped) before anything runs when the target is unusable;
// every other problem is captured in the Report.
func (a *Aggregator) Run(ctx context.Context, path string, rep Reporter) (*Report, error) {
	target, err := a.discovery.Resolve(ctx, path)
	if err != nil {
		return nil, err
	}
	files, err := a.discovery.GoFiles(ctx, target)
	if err != nil {
		return nil, err
	}
	rep.Files(target, files)

	report := &Report{Target: path, Files: len(files)}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		src, readErr := a.fs.ReadFile(ctx, f)
		res := CheckSyntax(f, src, readErr)
		report.Syntax = append(report.Syntax, res)
		rep.FileChecked(res)
	}

	for _, spec := range a.tools {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		rep.ToolStarted(spec)
		o := a.runTool(ctx, spec, target)
		logger.WithFields(logger.Fields{
			"tool":     spec.Name,
			"status":   o.Status.String(),
			"duration": o.Duration,
		}).Debug("tool finished")
		report.Outcomes = append(report.Outcomes, o)
		rep.ToolFinished(o)
	}

	return report, nil
}

func (a *Aggregator) runTool(ctx context.Context, spec ToolSpec, target *discovery.Target) Outcome {
	base := Outcome{Tool: spec.Name, Kind: spec.Kind}

	if spec.Kind == KindTests {
		tests, err := a.discovery.TestFiles(ctx, target, a.testPattern)
		if err != nil {
			base.Status = StatusFailed
			base.Reason = err.Error()
			return base
		}
		if len(tests) == 0 {
			base.Status = StatusSkipped
			base.Reason = "no tests"
			return base
		}
	}

	cmd := spec.CommandFor(target)
	logger.WithField("cmd", cmd.String()).Debug("running tool")

	start := a.now()
	res, err := a.runner.Run(ctx, cmd)
	o := classify(spec, res, err)
	o.Duration = a.now().Sub(start)
	return o
}

// classify maps a finished invocation onto exactly one Outcome.
func classify(spec ToolSpec, res *core.Result, err error) Outcome {
	o := Outcome{Tool: spec.Name, Kind: spec.Kind}

	switch {
	case errors.Is(err, core.ErrCommandNotFound):
		o.Status = StatusNotInstalled
		o.Install = spec.Install
		return o
	case errors.Is(err, core.ErrCommandTimeout), errors.Is(err, context.DeadlineExceeded):
		o.Status = StatusTimedOut
		o.Reason = fmt.Sprintf("no result within %v", spec.Timeout)
		return o
	case err != nil:
		o.Status = StatusFailed
		o.Reason = err.Error()
		return o
	case res == nil:
		o.Status = StatusFailed
		o.Reason = "no result"
		return o
	}

	output := res.Stdout
	if res.Stderr != "" {
		output += "\n" + res.Stderr
	}

	found := res.ExitCode != 0
	if spec.Findings == FindingsOutput && len(splitLines(res.Stdout)) > 0 {
		found = true
	}
	if !found {
		o.Status = StatusPassed
		return o
	}

	o.Status = StatusFoundIssues
	if spec.Kind == KindTests {
		o.Tests = summarizeTests(output)
		o.Findings = o.Tests.Failures
		if len(o.Findings) == 0 {
			o.Findings = lastLines(splitLines(output), MaxShownFindings)
		}
		return o
	}

	o.Findings = splitLines(output)
	if len(o.Findings) == 0 {
		o.Findings = []string{fmt.Sprintf("exit status %d", res.ExitCode)}
	}
	return o
}

func lastLines(lines []string, n int) []string {
	if len(lines) > n {
		return lines[len(lines)-n:]
	}
	return lines
}
