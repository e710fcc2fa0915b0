package tui

import (
	"os"

	"golang.org/x/term"
)

// ciEnvs are environment variables set by common CI/CD systems.
var ciEnvs = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"CIRCLECI",
	"TRAVIS",
	"JENKINS_HOME",
	"BUILDKITE",
	"DRONE",
	"TF_BUILD",
}

// IsInteractive reports whether prompts and spinners may be shown:
// both stdin and stdout must be terminals and no CI variable may be set.
func IsInteractive() bool {
	if !IsTTY() || !term.IsTerminal(int(os.Stdin.Fd())) { //nolint:gosec // G115: fd is a small value
		return false
	}
	return !InCI()
}

// InCI reports whether a known CI environment variable is set.
func InCI() bool {
	for _, env := range ciEnvs {
		if os.Getenv(env) != "" {
			return true
		}
	}
	return false
}

// IsTTY checks if stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // G115: fd is a small value
}

// IsStderrTTY checks if stderr is a terminal. Progress bars draw there.
func IsStderrTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd())) //nolint:gosec // G115: fd is a small value
}
