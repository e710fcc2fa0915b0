// Package cli builds the gram root command and dispatches the selected
// action flag to its handler.
package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/gramcli/gram/internal/app"
	"github.com/gramcli/gram/internal/banner"
	"github.com/gramcli/gram/internal/commands/fiat"
	"github.com/gramcli/gram/internal/commands/gpt"
	"github.com/gramcli/gram/internal/commands/help"
	"github.com/gramcli/gram/internal/commands/info"
	"github.com/gramcli/gram/internal/commands/lint"
	"github.com/gramcli/gram/internal/commands/pc"
	"github.com/gramcli/gram/internal/commands/start"
	"github.com/gramcli/gram/internal/commands/update"
	"github.com/gramcli/gram/internal/commands/versioncmd"
	"github.com/gramcli/gram/internal/config"
	"github.com/gramcli/gram/internal/core"
	"github.com/gramcli/gram/internal/printer"
	"github.com/gramcli/gram/internal/tui"
	logger "github.com/sirupsen/logrus"
	urfavecli "github.com/urfave/cli/v3"
)

// EnvDebug enables debug logging when set to "true" or "1".
const EnvDebug = "GRAM_DEBUG"

// action is one mutually exclusive command flag.
type action struct {
	flag string
	run  func(ctx context.Context, cmd *urfavecli.Command, d app.Deps, opts app.Options) error
}

// actions are listed in dispatch precedence order.
var actions = []action{
	{"start", func(ctx context.Context, cmd *urfavecli.Command, d app.Deps, opts app.Options) error {
		return start.Run(ctx, d, opts, cmd.String("start"))
	}},
	{"info", func(ctx context.Context, cmd *urfavecli.Command, d app.Deps, opts app.Options) error {
		return info.Run(ctx, d, opts, cmd.String("info"))
	}},
	{"lint", func(ctx context.Context, cmd *urfavecli.Command, d app.Deps, opts app.Options) error {
		return lint.Run(ctx, d, opts, cmd.String("lint"))
	}},
	{"gpt", func(ctx context.Context, _ *urfavecli.Command, d app.Deps, opts app.Options) error {
		return gpt.Run(ctx, d, opts)
	}},
	{"pc", func(ctx context.Context, _ *urfavecli.Command, d app.Deps, opts app.Options) error {
		return pc.Run(ctx, d, opts, nil)
	}},
	{"fiat", func(ctx context.Context, _ *urfavecli.Command, d app.Deps, opts app.Options) error {
		return fiat.Run(ctx, d, opts)
	}},
	{"version", func(ctx context.Context, _ *urfavecli.Command, d app.Deps, opts app.Options) error {
		return versioncmd.Run(ctx, d, opts)
	}},
	{"update", func(ctx context.Context, _ *urfavecli.Command, d app.Deps, opts app.Options) error {
		return update.Run(ctx, d, opts, nil)
	}},
}

// New builds the root command writing to streams.
func New(streams app.Streams) *urfavecli.Command {
	return &urfavecli.Command{
		Name:        "gram",
		Usage:       "Personal assistant for Go projects",
		HideHelp:    true,
		HideVersion: true,
		Reader:      streams.In,
		Writer:      streams.Out,
		ErrWriter:   streams.Err,
		Flags:       flags(),
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(cmd.Bool("no-color") || os.Getenv("NO_COLOR") != "")
			if cmd.Bool("verbose") || debugEnv() {
				logger.SetLevel(logger.DebugLevel)
			}
			if f := cmd.String("format"); f != app.FormatText && f != app.FormatJSON {
				return ctx, urfavecli.Exit(fmt.Sprintf("invalid --format %q: use text or json", f), 2)
			}
			return ctx, nil
		},
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			return dispatch(ctx, cmd, streams)
		},
		OnUsageError: func(_ context.Context, _ *urfavecli.Command, err error, _ bool) error {
			return urfavecli.Exit(err.Error()+"\nRun gram --help for usage.", 2)
		},
		// Exit codes are handled by the caller.
		ExitErrHandler: func(context.Context, *urfavecli.Command, error) {},
	}
}

func flags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.BoolFlag{Name: "help", Aliases: []string{"h"}, Usage: "Show quick help"},
		&urfavecli.BoolFlag{Name: "help-commands", Usage: "Show the detailed command reference"},
		&urfavecli.StringFlag{Name: "start", Usage: "Create a project from `TEMPLATE`"},
		&urfavecli.StringFlag{Name: "info", Usage: "Analyse the Go file or directory at `PATH`"},
		&urfavecli.StringFlag{Name: "lint", Usage: "Run quality checks on `PATH`"},
		&urfavecli.BoolFlag{Name: "gpt", Usage: "Start a chat session"},
		&urfavecli.BoolFlag{Name: "pc", Usage: "Show system information"},
		&urfavecli.BoolFlag{Name: "fiat", Usage: "Show exchange rates"},
		&urfavecli.BoolFlag{Name: "version", Aliases: []string{"v"}, Usage: "Show the installed version"},
		&urfavecli.BoolFlag{Name: "update", Usage: "Install the latest version"},

		&urfavecli.StringFlag{Name: "config", Usage: "Read configuration from `FILE`"},
		&urfavecli.BoolFlag{Name: "no-color", Usage: "Disable colored output"},
		&urfavecli.BoolFlag{Name: "no-banner", Usage: "Do not print the banner"},
		&urfavecli.BoolFlag{Name: "verbose", Usage: "Print debug logs"},
		&urfavecli.StringFlag{Name: "format", Value: app.FormatText, Usage: "Output `FORMAT`: text or json"},
		&urfavecli.BoolFlag{Name: "strict", Usage: "Exit non-zero when checks find problems"},
		&urfavecli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Assume yes for confirmations"},
		&urfavecli.StringFlag{Name: "name", Usage: "Project directory `NAME` for --start"},
	}
}

func dispatch(ctx context.Context, cmd *urfavecli.Command, streams app.Streams) error {
	console := printer.NewConsole(streams.Out, streams.Err)

	if cmd.Bool("help-commands") {
		help.Detailed(console)
		return nil
	}
	if cmd.Bool("help") {
		help.Quick(console)
		return nil
	}

	idx := slices.IndexFunc(actions, func(a action) bool { return cmd.IsSet(a.flag) && selected(cmd, a.flag) })
	if idx < 0 {
		if cmd.Args().Len() > 0 {
			logger.WithField("args", strings.Join(cmd.Args().Slice(), " ")).Debug("ignoring positional arguments")
		}
		help.Quick(console)
		return nil
	}
	act := actions[idx]
	logger.WithField("command", act.flag).Debug("dispatching")

	cfg, err := config.Load(ctx, core.NewOSFileSystem(), cmd.String("config"))
	if err != nil {
		console.Panel("Configuration error", err.Error(), printer.ToneError)
		return urfavecli.Exit("", 1)
	}
	tui.SetTheme(cfg.Theme)

	d, err := app.Resolve(streams, cfg)
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}

	opts := app.Options{
		Format:      cmd.String("format"),
		Strict:      cmd.Bool("strict"),
		Yes:         cmd.Bool("yes"),
		Name:        cmd.String("name"),
		Verbose:     cmd.Bool("verbose"),
		Interactive: tui.IsInteractive(),
	}

	if cfg.Banner && !cmd.Bool("no-banner") && !opts.JSON() {
		banner.New(d.Console).Print(ctx)
	}
	return act.run(ctx, cmd, d, opts)
}

// selected reports whether a set flag actually asks for its action;
// "--pc=false" is set but not selected.
func selected(cmd *urfavecli.Command, name string) bool {
	switch name {
	case "start", "info", "lint":
		return true
	default:
		return cmd.Bool(name)
	}
}

func debugEnv() bool {
	v := strings.ToLower(os.Getenv(EnvDebug))
	return v == "true" || v == "1"
}
