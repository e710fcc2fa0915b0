// Package pc implements "gram --pc": a system information report.
package pc

import (
	"context"
	"fmt"
	"time"

	"github.com/gramcli/gram/internal/app"
	"github.com/gramcli/gram/internal/printer"
	"github.com/gramcli/gram/internal/sysinfo"
	"github.com/gramcli/gram/internal/tui"
)

// Run gathers host facts with inspector and prints them. A nil inspector
// probes the local machine.
func Run(ctx context.Context, d app.Deps, opts app.Options, inspector *sysinfo.Inspector) error {
	if inspector == nil {
		inspector = sysinfo.NewInspector()
	}

	var report *sysinfo.Report
	if err := tui.Spin(ctx, "Inspecting system...", func(ctx context.Context) {
		report = inspector.Collect(ctx)
	}); err != nil {
		return err
	}

	if opts.JSON() {
		return d.Console.JSON(report)
	}

	rows := make([][]string, 0, 24)
	failed := 0
	for _, s := range report.Sections {
		if !s.OK() {
			failed++
			rows = append(rows, []string{printer.Bold(s.Name), "", printer.Error("error")})
			continue
		}
		for i, r := range s.Rows {
			section := ""
			if i == 0 {
				section = printer.Bold(s.Name)
			}
			rows = append(rows, []string{section, r.Label, r.Value})
		}
	}
	d.Console.Table("System information", []string{"Section", "Parameter", "Value"}, rows)

	summary := fmt.Sprintf("Collected %d section(s) in %s", len(report.Sections)-failed, report.Took.Round(time.Millisecond))
	if failed > 0 {
		summary += printer.Warning(fmt.Sprintf(", %d unavailable", failed))
	}
	d.Console.Println(printer.Faint(summary))
	return nil
}
