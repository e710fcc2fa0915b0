package updater

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// RepoURL is a parsed repository location.
type RepoURL struct {
	Host  string // github.com, gitlab.com, etc.
	Owner string
	Repo  string
	Raw   string
}

// ParseRepoURL accepts "https://host/owner/repo(.git)" and "host/owner/repo".
func ParseRepoURL(urlStr string) (*RepoURL, error) {
	urlStr = strings.TrimSpace(urlStr)
	if urlStr == "" {
		return nil, fmt.Errorf("empty URL")
	}
	if !strings.HasPrefix(urlStr, "http://") && !strings.HasPrefix(urlStr, "https://") {
		urlStr = "https://" + urlStr
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid URL: missing host")
	}

	path := strings.Trim(parsed.Path, "/")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid repository URL format: expected owner/repo")
	}

	return &RepoURL{
		Host:  parsed.Host,
		Owner: parts[0],
		Repo:  strings.TrimSuffix(parts[1], ".git"),
		Raw:   urlStr,
	}, nil
}

// CloneURL returns the HTTPS clone URL.
func (r *RepoURL) CloneURL() string {
	return fmt.Sprintf("https://%s/%s/%s.git", r.Host, r.Owner, r.Repo)
}

func (r *RepoURL) String() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Repo)
}

// Cloner fetches a repository into dir.
type Cloner interface {
	Clone(ctx context.Context, url, branch, dir string) error
}

// GitCloner clones with go-git, so no git binary is required.
type GitCloner struct{}

// Clone makes a shallow single-branch clone.
func (GitCloner) Clone(ctx context.Context, url, branch, dir string) error {
	opts := &git.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
	}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}
	_, err := git.PlainCloneContext(ctx, dir, false, opts)
	return err
}
