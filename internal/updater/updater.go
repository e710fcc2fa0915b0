// Package updater checks a remote manifest for a newer gram release and
// reinstalls gram from a fresh clone of its repository.
package updater

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gramcli/gram/internal/config"
	"github.com/gramcli/gram/internal/core"
	"github.com/gramcli/gram/internal/dotver"
	"github.com/gramcli/gram/internal/manifest"
	logger "github.com/sirupsen/logrus"
)

// ErrCannotCompare is returned when either version is not a dotted number.
var ErrCannotCompare = errors.New("cannot compare versions")

// maxManifest caps the size of the downloaded manifest.
const maxManifest = 1 << 20

// Check is the outcome of a version comparison.
type Check struct {
	Current   string `json:"current"`
	Latest    string `json:"latest"`
	Available bool   `json:"update_available"`
}

// InstallError reports a reinstall command that ran but did not succeed.
type InstallError struct {
	Command  string
	ExitCode int
	Output   string
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
}

// Updater fetches the remote manifest and performs the reinstall.
type Updater struct {
	http    *http.Client
	runner  core.Runner
	cloner  Cloner
	cfg     config.UpdateConfig
	timeout time.Duration
	tempDir func() (string, error)
}

// Option configures an Updater.
type Option func(*Updater)

// WithCloner replaces the go-git cloner.
func WithCloner(c Cloner) Option {
	return func(u *Updater) { u.cloner = c }
}

// WithTempDir replaces the function that creates the clone directory.
func WithTempDir(fn func() (string, error)) Option {
	return func(u *Updater) { u.tempDir = fn }
}

// New creates an Updater. A nil httpClient selects http.DefaultClient.
func New(httpClient *http.Client, runner core.Runner, cfg config.UpdateConfig, opts ...Option) *Updater {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	u := &Updater{
		http:    httpClient,
		runner:  runner,
		cloner:  GitCloner{},
		cfg:     cfg,
		timeout: core.TimeoutHTTP,
		tempDir: func() (string, error) { return os.MkdirTemp("", "gram-update-*") },
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Latest downloads the manifest and extracts the published version.
func (u *Updater) Latest(ctx context.Context) (string, error) {
	data, err := u.fetch(ctx, u.cfg.Manifest.URL)
	if err != nil {
		return "", err
	}
	src := manifest.Source{
		Format:  manifest.Format(u.cfg.Manifest.Format),
		Field:   u.cfg.Manifest.Field,
		Pattern: u.cfg.Manifest.Pattern,
	}
	if src.Format == "" {
		src.Format = manifest.FormatForFile(u.cfg.Manifest.URL)
	}
	v, err := manifest.Extract(data, src)
	if err != nil {
		return "", fmt.Errorf("read version from %s: %w", u.cfg.Manifest.URL, err)
	}
	return v, nil
}

// Check compares current with the published version.
func (u *Updater) Check(ctx context.Context, current string) (*Check, error) {
	latest, err := u.Latest(ctx)
	if err != nil {
		return nil, err
	}
	c := &Check{Current: current, Latest: latest}
	newer, err := dotver.IsNewer(releaseCore(current), latest)
	if err != nil {
		return c, fmt.Errorf("%w: %w", ErrCannotCompare, err)
	}
	c.Available = newer
	return c, nil
}

// releaseCore drops a pre-release or build suffix from the installed
// version: "0.0.0-dev", pseudo-versions and "+dirty" builds compare by
// their numeric part.
func releaseCore(v string) string {
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		return v[:i]
	}
	return v
}

// Apply clones the repository into a temporary directory and runs the
// install command inside it. The directory is removed afterwards.
func (u *Updater) Apply(ctx context.Context) error {
	if len(u.cfg.Install) == 0 {
		return errors.New("no install command configured")
	}
	repo, err := ParseRepoURL(u.cfg.Repo)
	if err != nil {
		return fmt.Errorf("invalid update repository: %w", err)
	}

	dir, err := u.tempDir()
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			logger.WithError(err).WithField("dir", dir).Warn("failed to remove clone directory")
		}
	}()

	logger.WithFields(logger.Fields{"repo": repo.String(), "branch": u.cfg.Branch, "dir": dir}).Debug("cloning")
	cloneCtx, cancel := context.WithTimeout(ctx, core.TimeoutGit)
	defer cancel()
	if err := u.cloner.Clone(cloneCtx, repo.CloneURL(), u.cfg.Branch, dir); err != nil {
		return FormatCloneError(err, repo)
	}

	cmd := core.Command{
		Name:    u.cfg.Install[0],
		Args:    u.cfg.Install[1:],
		Dir:     dir,
		Timeout: core.TimeoutInstall,
	}
	logger.WithField("command", cmd.String()).Debug("installing")
	res, err := u.runner.Run(ctx, cmd)
	if err != nil {
		return fmt.Errorf("install: %w", err)
	}
	if res.ExitCode != 0 {
		out := res.Stderr
		if out == "" {
			out = res.Stdout
		}
		return &InstallError{Command: cmd.String(), ExitCode: res.ExitCode, Output: out}
	}
	return nil
}

// ManualHint is the command a user can run to update by hand.
func (u *Updater) ManualHint() string {
	repo, err := ParseRepoURL(u.cfg.Repo)
	if err != nil {
		return "go install <module>/cmd/gram@latest"
	}
	return fmt.Sprintf("go install %s/%s/%s/cmd/gram@latest", repo.Host, repo.Owner, repo.Repo)
}

func (u *Updater) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if rawURL == "" {
		return nil, errors.New("no manifest URL configured")
	}
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := u.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %d", rawURL, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxManifest))
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", rawURL, err)
	}
	return body, nil
}
