package updater

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
)

// CloneErrorInfo is a user-facing explanation of a clone failure.
type CloneErrorInfo struct {
	Category    string
	Message     string
	Suggestions []string
}

type cloneErrorPattern struct {
	pattern *regexp.Regexp
	info    CloneErrorInfo
}

// More specific patterns come first.
var cloneErrorPatterns = []cloneErrorPattern{
	{
		pattern: regexp.MustCompile(`(?i)repository not found`),
		info: CloneErrorInfo{
			Category: "repository_not_found",
			Message:  "Repository not found",
			Suggestions: []string{
				"Check update.repo in your gram config",
				"Ensure the repository is public",
			},
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)x509|certificate`),
		info: CloneErrorInfo{
			Category: "ssl_error",
			Message:  "SSL certificate verification failed",
			Suggestions: []string{
				"Check your system's SSL certificates are up to date",
				"Check if a proxy is interfering with SSL connections",
			},
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)couldn't find remote ref|reference not found`),
		info: CloneErrorInfo{
			Category: "ref_not_found",
			Message:  "Branch not found",
			Suggestions: []string{
				"Check update.branch in your gram config",
			},
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)authentication required|authorization failed`),
		info: CloneErrorInfo{
			Category: "auth_required",
			Message:  "Authentication required",
			Suggestions: []string{
				"The update repository must be readable without credentials",
			},
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)i/o timeout|deadline exceeded|connection timed out`),
		info: CloneErrorInfo{
			Category: "network_timeout",
			Message:  "Connection timed out",
			Suggestions: []string{
				"Check your network connection",
				"Try again in a few moments",
			},
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)no such host|name resolution|connection refused`),
		info: CloneErrorInfo{
			Category: "network_error",
			Message:  "Unable to reach the repository host",
			Suggestions: []string{
				"Check your network connection",
				"Check your DNS and proxy settings",
			},
		},
	},
}

func classifyCloneError(err error) *CloneErrorInfo {
	switch {
	case errors.Is(err, transport.ErrRepositoryNotFound):
		return &cloneErrorPatterns[0].info
	case errors.Is(err, transport.ErrAuthenticationRequired), errors.Is(err, transport.ErrAuthorizationFailed):
		return &cloneErrorPatterns[3].info
	case errors.Is(err, context.DeadlineExceeded):
		return &cloneErrorPatterns[4].info
	}
	msg := err.Error()
	for i := range cloneErrorPatterns {
		if cloneErrorPatterns[i].pattern.MatchString(msg) {
			return &cloneErrorPatterns[i].info
		}
	}
	return nil
}

// CloneError is a clone failure with a known cause.
type CloneError struct {
	Repo *RepoURL
	Info *CloneErrorInfo
	Err  error
}

func (e *CloneError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "failed to clone %s: %s", e.Repo, e.Info.Message)
	for _, s := range e.Info.Suggestions {
		fmt.Fprintf(&sb, "\n  - %s", s)
	}
	return sb.String()
}

func (e *CloneError) Unwrap() error {
	return e.Err
}

// FormatCloneError wraps err in a CloneError when its cause is recognised.
func FormatCloneError(err error, repo *RepoURL) error {
	if err == nil {
		return nil
	}
	if info := classifyCloneError(err); info != nil {
		return &CloneError{Repo: repo, Info: info, Err: err}
	}
	return fmt.Errorf("clone %s: %w", repo, err)
}
