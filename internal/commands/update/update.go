// Package update implements "gram --update": check the published version
// and reinstall gram when a newer one exists.
package update

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gramcli/gram/internal/app"
	"github.com/gramcli/gram/internal/printer"
	"github.com/gramcli/gram/internal/tui"
	"github.com/gramcli/gram/internal/updater"
	"github.com/gramcli/gram/internal/version"
	"github.com/urfave/cli/v3"
)

// maxOutputLines caps the install output shown on failure.
const maxOutputLines = 10

// Run checks for a newer release and, once confirmed, installs it. A nil
// u is built from the configuration.
func Run(ctx context.Context, d app.Deps, opts app.Options, u *updater.Updater) error {
	if u == nil {
		u = updater.New(d.HTTP, d.Runner, d.Config.Update)
	}
	current := version.GetVersion()

	var check *updater.Check
	var checkErr error
	if err := tui.Spin(ctx, "Checking for updates...", func(ctx context.Context) {
		check, checkErr = u.Check(ctx, current)
	}); err != nil {
		return err
	}

	if opts.JSON() {
		if checkErr != nil {
			return d.Console.JSON(checkFailure(current, check, checkErr))
		}
		return d.Console.JSON(check)
	}

	switch {
	case errors.Is(checkErr, updater.ErrCannotCompare):
		d.Console.Panel("Cannot compare versions",
			fmt.Sprintf("Installed %q and published %q are not dotted version numbers.", check.Current, check.Latest),
			printer.ToneWarning)
		return nil
	case checkErr != nil:
		d.Console.Panel("Update check failed", checkErr.Error(), printer.ToneError)
		return nil
	}

	status := printer.Success("up to date")
	if check.Available {
		status = printer.Warning("update available")
	}
	d.Console.Table("Version check", []string{"Installed", "Latest", "Status"}, [][]string{
		{check.Current, check.Latest, status},
	})

	if !check.Available {
		d.Console.Panel("Up to date", fmt.Sprintf("gram %s is the latest version.", check.Current), printer.ToneSuccess)
		return nil
	}

	ok, err := confirm(d, opts, check)
	if err != nil {
		return err
	}
	if !ok {
		d.Console.Println(printer.Faint("Update skipped. Run gram --update --yes to install without a prompt."))
		return nil
	}

	var applyErr error
	if err := tui.Spin(ctx, "Installing gram "+check.Latest+"...", func(ctx context.Context) {
		applyErr = u.Apply(ctx)
	}); err != nil {
		return err
	}
	if applyErr != nil {
		d.Console.Panel("Update failed", failureBody(applyErr, u.ManualHint()), printer.ToneError)
		return cli.Exit("", 1)
	}

	d.Console.Panel("Updated", fmt.Sprintf("gram %s installed. Restart your shell if the old version is still picked up.", check.Latest), printer.ToneSuccess)
	return nil
}

// failedCheck is the JSON form of a check that produced no verdict.
type failedCheck struct {
	Current string `json:"current"`
	Latest  string `json:"latest,omitempty"`
	Error   string `json:"error"`
}

func checkFailure(current string, check *updater.Check, err error) failedCheck {
	f := failedCheck{Current: current, Error: err.Error()}
	if check != nil {
		f.Latest = check.Latest
	}
	return f
}

func confirm(d app.Deps, opts app.Options, check *updater.Check) (bool, error) {
	if opts.Yes {
		return true, nil
	}
	if !opts.Interactive {
		return false, nil
	}
	ok, err := d.Prompter.Confirm(fmt.Sprintf("Update gram %s → %s?", check.Current, check.Latest), "The new version is built from source with the Go toolchain.")
	if errors.Is(err, tui.ErrAborted) {
		return false, nil
	}
	return ok, err
}

func failureBody(err error, hint string) string {
	var sb strings.Builder
	sb.WriteString(err.Error())

	var installErr *updater.InstallError
	if errors.As(err, &installErr) && installErr.Output != "" {
		lines := strings.Split(strings.TrimSpace(installErr.Output), "\n")
		if len(lines) > maxOutputLines {
			lines = lines[len(lines)-maxOutputLines:]
		}
		sb.WriteString("\n\n" + printer.Faint(strings.Join(lines, "\n")))
	}
	sb.WriteString("\n\nUpdate manually with:\n  " + hint)
	return sb.String()
}
