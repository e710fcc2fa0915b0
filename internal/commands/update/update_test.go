package update

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gramcli/gram/internal/app"
	"github.com/gramcli/gram/internal/core"
	"github.com/gramcli/gram/internal/testutil"
	"github.com/gramcli/gram/internal/updater"
	"github.com/gramcli/gram/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

type stubCloner struct {
	calls int
}

func (s *stubCloner) Clone(context.Context, string, string, string) error {
	s.calls++
	return nil
}

type stubRunner struct {
	exitCode int
}

func (r stubRunner) Run(context.Context, core.Command) (*core.Result, error) {
	return &core.Result{ExitCode: r.exitCode, Stderr: "compile error"}, nil
}

type fixture struct {
	deps    app.Deps
	out     *bytes.Buffer
	cloner  *stubCloner
	updater *updater.Updater
}

func setup(t *testing.T, remote string, runner core.Runner, input string) fixture {
	t.Helper()
	orig := version.Version
	version.Version = "1.2.0"
	t.Cleanup(func() { version.Version = orig })

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("[project]\nversion = \"" + remote + "\"\n"))
	}))
	t.Cleanup(srv.Close)

	d, out := testutil.Deps(t, nil, input)
	d.Config.Update.Manifest.URL = srv.URL
	cloner := &stubCloner{}
	u := updater.New(srv.Client(), runner, d.Config.Update,
		updater.WithCloner(cloner),
		updater.WithTempDir(func() (string, error) { return t.TempDir(), nil }),
	)
	return fixture{deps: d, out: out, cloner: cloner, updater: u}
}

func TestRun_UpToDate(t *testing.T) {
	f := setup(t, "1.2.0", stubRunner{}, "")

	require.NoError(t, Run(context.Background(), f.deps, app.Options{}, f.updater))

	assert.Contains(t, f.out.String(), "is the latest version")
	assert.Zero(t, f.cloner.calls)
}

func TestRun_NewerWithYes(t *testing.T) {
	f := setup(t, "1.10.0", stubRunner{}, "")

	require.NoError(t, Run(context.Background(), f.deps, app.Options{Yes: true}, f.updater))

	assert.Contains(t, f.out.String(), "update available")
	assert.Contains(t, f.out.String(), "gram 1.10.0 installed")
	assert.Equal(t, 1, f.cloner.calls)
}

func TestRun_NonInteractiveDeclines(t *testing.T) {
	f := setup(t, "2.0.0", stubRunner{}, "y\n")

	require.NoError(t, Run(context.Background(), f.deps, app.Options{}, f.updater))

	assert.Contains(t, f.out.String(), "Update skipped")
	assert.Zero(t, f.cloner.calls)
}

func TestRun_InteractiveConfirm(t *testing.T) {
	f := setup(t, "2.0.0", stubRunner{}, "yes\n")

	require.NoError(t, Run(context.Background(), f.deps, app.Options{Interactive: true}, f.updater))

	assert.Equal(t, 1, f.cloner.calls)
}

func TestRun_InstallFailureExitsOne(t *testing.T) {
	f := setup(t, "2.0.0", stubRunner{exitCode: 2}, "")

	err := Run(context.Background(), f.deps, app.Options{Yes: true}, f.updater)

	var exit cli.ExitCoder
	require.True(t, errors.As(err, &exit))
	assert.Equal(t, 1, exit.ExitCode())
	assert.Contains(t, f.out.String(), "Update failed")
	assert.Contains(t, f.out.String(), "compile error")
	assert.Contains(t, f.out.String(), "go install github.com/gramcli/gram/cmd/gram@latest")
}

func TestRun_CannotCompare(t *testing.T) {
	f := setup(t, "next", stubRunner{}, "")

	require.NoError(t, Run(context.Background(), f.deps, app.Options{Yes: true}, f.updater))

	assert.Contains(t, f.out.String(), "Cannot compare versions")
	assert.Zero(t, f.cloner.calls)
}

func TestRun_JSON(t *testing.T) {
	f := setup(t, "1.3", stubRunner{}, "")

	require.NoError(t, Run(context.Background(), f.deps, app.Options{Format: app.FormatJSON}, f.updater))

	assert.JSONEq(t, `{"current":"1.2.0","latest":"1.3","update_available":true}`, f.out.String())
	assert.Zero(t, f.cloner.calls)
}

func TestRun_JSONCannotCompare(t *testing.T) {
	f := setup(t, "1.x", stubRunner{}, "")

	require.NoError(t, Run(context.Background(), f.deps, app.Options{Format: app.FormatJSON}, f.updater))

	var got map[string]string
	require.NoError(t, json.Unmarshal(f.out.Bytes(), &got), "output must be JSON only: %s", f.out.String())
	assert.Equal(t, "1.2.0", got["current"])
	assert.Equal(t, "1.x", got["latest"])
	assert.Contains(t, got["error"], "cannot compare")
	assert.Zero(t, f.cloner.calls)
}
