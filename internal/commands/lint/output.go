package lint

import (
	"fmt"
	"strings"
	"time"

	"github.com/gramcli/gram/internal/discovery"
	"github.com/gramcli/gram/internal/printer"
	"github.com/gramcli/gram/internal/quality"
	"github.com/gramcli/gram/internal/tui"
)

type reporter interface {
	quality.Reporter
	Finish(r *quality.Report)
}

// jsonReporter prints nothing while the pipeline runs.
type jsonReporter struct{}

func (*jsonReporter) Files(*discovery.Target, []string) {}
func (*jsonReporter) FileChecked(quality.SyntaxResult)  {}
func (*jsonReporter) ToolStarted(quality.ToolSpec)      {}
func (*jsonReporter) ToolFinished(quality.Outcome)      {}
func (*jsonReporter) Finish(*quality.Report)            {}

// textReporter renders panels as events arrive. Syntax results are
// collected and printed as one panel before the first tool starts.
type textReporter struct {
	console  *printer.Console
	progress *tui.Progress
	syntax   []quality.SyntaxResult
	flushed  bool
}

func newTextReporter(c *printer.Console) *textReporter {
	return &textReporter{console: c}
}

func (r *textReporter) Files(target *discovery.Target, files []string) {
	kind := "file"
	if target.IsDir {
		kind = "directory"
	}
	r.console.Panel("Quality check", fmt.Sprintf("Target:  %s (%s)\nFiles:   %d", target.Path, kind, len(files)), printer.ToneInfo)
	if target.IsDir {
		r.progress = tui.NewProgress(len(files), "parsing")
	}
}

func (r *textReporter) FileChecked(res quality.SyntaxResult) {
	r.syntax = append(r.syntax, res)
	r.progress.Step(res.Path)
}

func (r *textReporter) ToolStarted(spec quality.ToolSpec) {
	r.flushSyntax()
	r.console.Println(printer.Faint(fmt.Sprintf("→ running %s (%s)", spec.Name, spec.Kind)))
}

func (r *textReporter) ToolFinished(o quality.Outcome) {
	title := fmt.Sprintf("%s · %s", o.Tool, o.Kind)
	switch o.Status {
	case quality.StatusPassed:
		r.console.Panel(title, printer.Check(true, "passed")+" "+printer.Faint(duration(o.Duration)), printer.ToneSuccess)
	case quality.StatusFoundIssues:
		r.console.Panel(title, findingsBody(o), printer.ToneWarning)
	case quality.StatusNotInstalled:
		body := printer.Faint("not installed, skipped")
		if o.Install != "" {
			body += "\n" + printer.Faint("install: "+o.Install)
		}
		r.console.Panel(title, body, printer.ToneNeutral)
	case quality.StatusTimedOut:
		r.console.Panel(title, printer.Warning("timed out: "+o.Reason), printer.ToneWarning)
	case quality.StatusSkipped:
		r.console.Panel(title, printer.Faint("skipped: "+o.Reason), printer.ToneNeutral)
	default:
		r.console.Panel(title, printer.Error("failed: "+o.Reason), printer.ToneError)
	}
}

func (r *textReporter) Finish(report *quality.Report) {
	r.flushSyntax()

	rows := make([][]string, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		rows = append(rows, []string{o.Tool, string(o.Kind), statusText(o.Status), duration(o.Duration)})
	}
	if len(rows) > 0 {
		r.console.Table("Summary", []string{"Tool", "Kind", "Status", "Time"}, rows)
	}

	if report.HasFindings() {
		r.console.Panel("Result", fmt.Sprintf("%d syntax error(s), %d tool(s) with findings",
			report.SyntaxErrors(), countStatus(report, quality.StatusFoundIssues)), printer.ToneWarning)
		return
	}
	r.console.Panel("Result", "No issues found.", printer.ToneSuccess)
}

func (r *textReporter) flushSyntax() {
	if r.flushed {
		return
	}
	r.flushed = true
	r.progress.Done()

	var problems []string
	for _, s := range r.syntax {
		switch s.Status {
		case quality.SyntaxError:
			problems = append(problems, printer.Check(false, fmt.Sprintf("%s:%d:%d: %s", s.Path, s.Line, s.Column, s.Message)))
		case quality.SyntaxUnreadable:
			problems = append(problems, printer.Check(false, fmt.Sprintf("%s: unreadable (%s)", s.Path, s.Message)))
		}
	}
	if len(problems) == 0 {
		msg := "file parses cleanly"
		if len(r.syntax) != 1 {
			msg = fmt.Sprintf("all %d files parse cleanly", len(r.syntax))
		}
		r.console.Panel("Syntax", printer.Check(true, msg), printer.ToneSuccess)
		return
	}
	r.console.Panel(fmt.Sprintf("Syntax · %d problem(s)", len(problems)), strings.Join(problems, "\n"), printer.ToneError)
}

func findingsBody(o quality.Outcome) string {
	var sb strings.Builder
	if o.Tests != nil {
		fmt.Fprintf(&sb, "%s\n", printer.Warning(fmt.Sprintf("%d failed, %d passed", o.Tests.Failed, o.Tests.Passed)))
	} else {
		fmt.Fprintf(&sb, "%s\n", printer.Warning(fmt.Sprintf("found %d issue(s)", len(o.Findings))))
	}
	shown, more := o.ShownFindings()
	for _, f := range shown {
		sb.WriteString("  " + f + "\n")
	}
	if more > 0 {
		sb.WriteString(printer.Faint(fmt.Sprintf("  ... and %d more", more)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func statusText(s quality.Status) string {
	switch s {
	case quality.StatusPassed:
		return printer.Success("passed")
	case quality.StatusFoundIssues:
		return printer.Warning("issues")
	case quality.StatusNotInstalled:
		return printer.Faint("not installed")
	case quality.StatusTimedOut:
		return printer.Warning("timed out")
	case quality.StatusSkipped:
		return printer.Faint("skipped")
	default:
		return printer.Error("failed")
	}
}

func countStatus(r *quality.Report, s quality.Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

func duration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	return d.Round(10 * time.Millisecond).String()
}
