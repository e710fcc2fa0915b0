package updater

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/gramcli/gram/internal/config"
	"github.com/gramcli/gram/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	calls  []core.Command
	result *core.Result
	err    error
}

func (r *recordingRunner) Run(_ context.Context, c core.Command) (*core.Result, error) {
	r.calls = append(r.calls, c)
	if r.err != nil {
		return nil, r.err
	}
	if r.result == nil {
		return &core.Result{}, nil
	}
	return r.result, nil
}

type fakeCloner struct {
	err   error
	calls int
	url   string
	ref   string
	dir   string
}

func (f *fakeCloner) Clone(_ context.Context, url, branch, dir string) error {
	f.calls++
	f.url, f.ref, f.dir = url, branch, dir
	return f.err
}

func manifestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(url string) config.UpdateConfig {
	cfg := config.Default().Update
	cfg.Manifest.URL = url
	return cfg
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		body      string
		available bool
	}{
		{"newer minor", "1.2.0", "[project]\nversion = \"1.10.0\"\n", true},
		{"same", "1.10.0", "[project]\nversion = \"1.10.0\"\n", false},
		{"older remote", "2.0", "[project]\nversion = \"1.9.9\"\n", false},
		{"dev build", "0.0.0-dev", "[project]\nversion = \"1.0.0\"\n", true},
		{"pseudo-version", "0.0.0-20261017120000-abcdef123456", "[project]\nversion = \"1.0.0\"\n", true},
		{"dirty build", "v1.2.0+dirty", "[project]\nversion = \"1.0.0\"\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := manifestServer(t, http.StatusOK, tt.body)
			u := New(srv.Client(), &recordingRunner{}, testConfig(srv.URL))

			check, err := u.Check(context.Background(), tt.current)
			require.NoError(t, err)
			assert.Equal(t, tt.current, check.Current)
			assert.Equal(t, tt.available, check.Available)
		})
	}
}

func TestCheck_JSONManifest(t *testing.T) {
	srv := manifestServer(t, http.StatusOK, `{"name":"gram","version":"0.4.1"}`)
	cfg := testConfig(srv.URL)
	cfg.Manifest.Format = "json"
	cfg.Manifest.Field = "version"

	check, err := New(srv.Client(), &recordingRunner{}, cfg).Check(context.Background(), "0.4.0")
	require.NoError(t, err)
	assert.Equal(t, "0.4.1", check.Latest)
	assert.True(t, check.Available)
}

func TestCheck_CannotCompare(t *testing.T) {
	srv := manifestServer(t, http.StatusOK, "[project]\nversion = \"1.x\"\n")
	u := New(srv.Client(), &recordingRunner{}, testConfig(srv.URL))

	check, err := u.Check(context.Background(), "1.0.0")
	require.ErrorIs(t, err, ErrCannotCompare)
	assert.Equal(t, "1.x", check.Latest)
	assert.False(t, check.Available)
}

func TestCheck_HTTPFailure(t *testing.T) {
	srv := manifestServer(t, http.StatusNotFound, "nope")
	u := New(srv.Client(), &recordingRunner{}, testConfig(srv.URL))

	_, err := u.Check(context.Background(), "1.0.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestApply_ClonesAndInstalls(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "clone")
	require.NoError(t, os.Mkdir(dir, 0o755))

	runner := &recordingRunner{}
	cloner := &fakeCloner{}
	u := New(nil, runner, config.Default().Update,
		WithCloner(cloner),
		WithTempDir(func() (string, error) { return dir, nil }),
	)

	require.NoError(t, u.Apply(context.Background()))

	assert.Equal(t, 1, cloner.calls)
	assert.Equal(t, "https://github.com/gramcli/gram.git", cloner.url)
	assert.Equal(t, "main", cloner.ref)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "go install ./cmd/gram", runner.calls[0].String())
	assert.Equal(t, dir, runner.calls[0].Dir)
	assert.Equal(t, core.TimeoutInstall, runner.calls[0].Timeout)

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "clone directory should be removed")
}

func TestApply_CloneFailureSkipsInstall(t *testing.T) {
	runner := &recordingRunner{}
	u := New(nil, runner, config.Default().Update,
		WithCloner(&fakeCloner{err: transport.ErrRepositoryNotFound}),
		WithTempDir(func() (string, error) { return t.TempDir(), nil }),
	)

	err := u.Apply(context.Background())

	var cloneErr *CloneError
	require.ErrorAs(t, err, &cloneErr)
	assert.Equal(t, "repository_not_found", cloneErr.Info.Category)
	assert.ErrorIs(t, err, transport.ErrRepositoryNotFound)
	assert.Empty(t, runner.calls)
}

func TestApply_InstallFailure(t *testing.T) {
	runner := &recordingRunner{result: &core.Result{ExitCode: 1, Stderr: "build failed"}}
	u := New(nil, runner, config.Default().Update,
		WithCloner(&fakeCloner{}),
		WithTempDir(func() (string, error) { return t.TempDir(), nil }),
	)

	err := u.Apply(context.Background())

	var installErr *InstallError
	require.ErrorAs(t, err, &installErr)
	assert.Equal(t, 1, installErr.ExitCode)
	assert.Equal(t, "build failed", installErr.Output)
}

func TestApply_MissingGo(t *testing.T) {
	runner := &recordingRunner{err: core.ErrCommandNotFound}
	u := New(nil, runner, config.Default().Update,
		WithCloner(&fakeCloner{}),
		WithTempDir(func() (string, error) { return t.TempDir(), nil }),
	)

	err := u.Apply(context.Background())
	assert.ErrorIs(t, err, core.ErrCommandNotFound)
}

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"https://github.com/gramcli/gram", "https://github.com/gramcli/gram.git", false},
		{"github.com/gramcli/gram.git", "https://github.com/gramcli/gram.git", false},
		{"https://gitlab.com/me/tool/", "https://gitlab.com/me/tool.git", false},
		{"", "", true},
		{"https://github.com/onlyowner", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, err := ParseRepoURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.CloneURL())
		})
	}
}

func TestFormatCloneError(t *testing.T) {
	repo := &RepoURL{Host: "github.com", Owner: "gramcli", Repo: "gram"}

	tests := []struct {
		err      error
		category string
	}{
		{transport.ErrAuthenticationRequired, "auth_required"},
		{errors.New("dial tcp: lookup github.com: no such host"), "network_error"},
		{errors.New("couldn't find remote ref refs/heads/dev"), "ref_not_found"},
		{errors.New("x509: certificate signed by unknown authority"), "ssl_error"},
		{context.DeadlineExceeded, "network_timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			var cloneErr *CloneError
			require.ErrorAs(t, FormatCloneError(tt.err, repo), &cloneErr)
			assert.Equal(t, tt.category, cloneErr.Info.Category)
		})
	}

	unknown := FormatCloneError(errors.New("disk full"), repo)
	var cloneErr *CloneError
	assert.False(t, errors.As(unknown, &cloneErr))
	assert.Contains(t, unknown.Error(), "gramcli/gram")
	assert.NoError(t, FormatCloneError(nil, repo))
}

func TestManualHint(t *testing.T) {
	u := New(nil, &recordingRunner{}, config.Default().Update)
	assert.Equal(t, "go install github.com/gramcli/gram/cmd/gram@latest", u.ManualHint())
}
