// Package app wires the services every command handler depends on.
package app

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/gramcli/gram/internal/chat"
	"github.com/gramcli/gram/internal/config"
	"github.com/gramcli/gram/internal/core"
	"github.com/gramcli/gram/internal/printer"
	"github.com/gramcli/gram/internal/tui"
	"go.uber.org/dig"
)

// Format values accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options are the modifier flags shared by all handlers.
type Options struct {
	Format      string
	Strict      bool
	Yes         bool
	Name        string
	Verbose     bool
	Interactive bool
}

// JSON reports whether machine-readable output was requested.
func (o Options) JSON() bool {
	return o.Format == FormatJSON
}

// Deps are the services passed into handlers.
type Deps struct {
	dig.In

	Console      *printer.Console
	Config       *config.Config
	FS           core.FileSystem
	Runner       core.Runner
	HTTP         *http.Client
	Prompter     tui.Prompter
	NewGenerator chat.GeneratorFactory
}

// Streams are the process standard streams.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns os.Stdin, os.Stdout and os.Stderr.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// RegisterProviders registers the service constructors with container.
func RegisterProviders(container *dig.Container, streams Streams, cfg *config.Config) error {
	providers := []any{
		func() *config.Config { return cfg },
		func() *printer.Console { return printer.NewConsole(streams.Out, streams.Err) },
		func() core.FileSystem { return core.NewOSFileSystem() },
		func() core.Runner { return core.NewOSRunner() },
		func() *http.Client { return &http.Client{Timeout: core.TimeoutHTTP} },
		func() tui.Prompter { return tui.DefaultPrompter(streams.In, streams.Out) },
		func() chat.GeneratorFactory {
			return func(ctx context.Context, key string) (chat.Generator, error) {
				return chat.NewGenAI(ctx, key)
			}
		},
	}
	for _, p := range providers {
		if err := container.Provide(p); err != nil {
			return err
		}
	}
	return nil
}

// Resolve builds a container for cfg and returns the populated Deps.
func Resolve(streams Streams, cfg *config.Config) (Deps, error) {
	container := dig.New()
	if err := RegisterProviders(container, streams, cfg); err != nil {
		return Deps{}, err
	}
	var deps Deps
	err := container.Invoke(func(d Deps) { deps = d })
	return deps, err
}
