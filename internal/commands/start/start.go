// Package start implements "gram --start <template>": project scaffolding.
package start

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gramcli/gram/internal/app"
	"github.com/gramcli/gram/internal/printer"
	"github.com/gramcli/gram/internal/scaffold"
	"github.com/urfave/cli/v3"
)

// Run generates a project from template in the working directory.
func Run(ctx context.Context, d app.Deps, opts app.Options, template string) error {
	res, err := scaffold.New(d.FS).Create(ctx, scaffold.Options{
		Template: strings.ToLower(strings.TrimSpace(template)),
		Name:     opts.Name,
	})
	if err != nil {
		var unknown *scaffold.UnknownTemplateError
		switch {
		case errors.As(err, &unknown):
			d.Console.Panel("Unknown template", fmt.Sprintf("There is no %q template.", unknown.Name), printer.ToneError)
			printTemplates(d.Console)
		case errors.Is(err, scaffold.ErrExists):
			d.Console.Panel("Cannot create project", err.Error()+"\nChoose another name with --name.", printer.ToneError)
		default:
			d.Console.Panel("Cannot create project", err.Error(), printer.ToneError)
		}
		return cli.Exit("", 1)
	}

	if opts.JSON() {
		return d.Console.JSON(res)
	}

	var files strings.Builder
	for _, f := range res.Files {
		files.WriteString("  " + filepath.ToSlash(filepath.Join(res.Name, f)) + "\n")
	}
	d.Console.Panel(fmt.Sprintf("Created %s (%s, v%s)", res.Name, res.Template, res.Version), strings.TrimRight(files.String(), "\n"), printer.ToneSuccess)

	steps := []string{"cd " + res.Name, "go mod tidy", "go test ./..."}
	if res.Template != "lib" {
		steps = append(steps, "go run ./cmd/"+res.Name)
	}
	d.Console.Panel("Next steps", "  "+strings.Join(steps, "\n  "), printer.ToneInfo)
	return nil
}

func printTemplates(c *printer.Console) {
	rows := make([][]string, 0, 3)
	for _, t := range scaffold.AllTemplates() {
		rows = append(rows, []string{t.Name, t.Description, "gram --start " + t.Name})
	}
	c.Table("Available templates", []string{"Template", "Description", "Usage"}, rows)
}
