// Package testutil builds handler dependencies for tests.
package testutil

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/gramcli/gram/internal/app"
	"github.com/gramcli/gram/internal/chat"
	"github.com/gramcli/gram/internal/config"
	"github.com/gramcli/gram/internal/core"
	"github.com/gramcli/gram/internal/printer"
	"github.com/gramcli/gram/internal/tui"
)

// ErrNoGenerator is returned by the default test generator factory.
var ErrNoGenerator = errors.New("no generator in tests")

// Deps returns dependencies writing to a buffer, with plain-text styling,
// a line prompter reading input and a runner that reports every command
// as missing. Fields can be replaced before use.
func Deps(t *testing.T, fs core.FileSystem, input string) (app.Deps, *bytes.Buffer) {
	t.Helper()
	printer.SetNoColor(true)

	if fs == nil {
		fs = core.NewOSFileSystem()
	}
	var out bytes.Buffer
	return app.Deps{
		Console:  printer.NewConsole(&out, &out),
		Config:   config.Default(),
		FS:       fs,
		Runner:   MissingRunner{},
		HTTP:     http.DefaultClient,
		Prompter: tui.NewLinePrompter(strings.NewReader(input), &out),
		NewGenerator: func(context.Context, string) (chat.Generator, error) {
			return nil, ErrNoGenerator
		},
	}, &out
}

// MissingRunner fails every command with core.ErrCommandNotFound.
type MissingRunner struct{}

func (MissingRunner) Run(_ context.Context, c core.Command) (*core.Result, error) {
	return nil, errors.Join(core.ErrCommandNotFound, errors.New(c.Name))
}
