// Package versioncmd implements "gram --version".
package versioncmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/gramcli/gram/internal/app"
	"github.com/gramcli/gram/internal/printer"
	"github.com/gramcli/gram/internal/version"
)

// License is the license gram is distributed under.
const License = "MIT"

// Info is the JSON form of the version report.
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Module    string `json:"module"`
	GoVersion string `json:"go_version"`
	License   string `json:"license"`
}

// Current returns the version report of the running binary.
func Current() Info {
	return Info{
		Name:      "gram",
		Version:   version.GetVersion(),
		Commit:    version.GetCommit(),
		Module:    version.ModulePath,
		GoVersion: version.GoVersion(),
		License:   License,
	}
}

// Run prints the version report.
func Run(_ context.Context, d app.Deps, opts app.Options) error {
	info := Current()
	if opts.JSON() {
		return d.Console.JSON(info)
	}

	v := info.Version
	if info.Commit != "" {
		v += printer.Faint(" (" + info.Commit + ")")
	}
	lines := []string{
		row("Version", v),
		row("Package", info.Module),
		row("Go", info.GoVersion),
		row("License", info.License),
	}
	d.Console.Panel("gram", strings.Join(lines, "\n"), printer.ToneInfo)
	d.Console.Println(printer.Faint("Run gram --update to check for a newer release."))
	return nil
}

func row(label, value string) string {
	return printer.Bold(fmt.Sprintf("%-8s", label)) + " " + value
}
