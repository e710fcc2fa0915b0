package quality

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gramcli/gram/internal/config"
	"github.com/gramcli/gram/internal/core"
	"github.com/gramcli/gram/internal/discovery"
)

// Kind classifies a tool by the role it plays in the pipeline.
type Kind string

const (
	KindStyle    Kind = "style"
	KindLint     Kind = "lint"
	KindSecurity Kind = "security"
	KindTypes    Kind = "types"
	KindFormat   Kind = "format"
	KindTests    Kind = "tests"
)

// FindingsMode tells how a tool signals findings.
type FindingsMode string

const (
	// FindingsExit means a non-zero exit status signals findings.
	FindingsExit FindingsMode = "exit"
	// FindingsOutput means any output on stdout signals findings.
	FindingsOutput FindingsMode = "output"
)

// Argument placeholders expanded per target.
const (
	PlaceholderTarget   = "{target}"
	PlaceholderPackages = "{packages}"
)

// ToolSpec describes one external tool invocation.
type ToolSpec struct {
	Name     string
	Kind     Kind
	Command  string
	Args     []string
	Timeout  time.Duration
	Findings FindingsMode
	// Install is shown when the binary is missing.
	Install string
}

// DefaultTools returns the built-in Go toolchain pipeline.
func DefaultTools() []ToolSpec {
	return []ToolSpec{
		{
			Name:     "revive",
			Kind:     KindStyle,
			Command:  "revive",
			Args:     []string{"-set_exit_status", PlaceholderPackages},
			Timeout:  core.TimeoutTool,
			Findings: FindingsExit,
			Install:  "go install github.com/mgechev/revive@latest",
		},
		{
			Name:     "staticcheck",
			Kind:     KindLint,
			Command:  "staticcheck",
			Args:     []string{PlaceholderPackages},
			Timeout:  core.TimeoutToolLong,
			Findings: FindingsExit,
			Install:  "go install honnef.co/go/tools/cmd/staticcheck@latest",
		},
		{
			Name:     "gosec",
			Kind:     KindSecurity,
			Command:  "gosec",
			Args:     []string{"-quiet", PlaceholderPackages},
			Timeout:  core.TimeoutTool,
			Findings: FindingsExit,
			Install:  "go install github.com/securego/gosec/v2/cmd/gosec@latest",
		},
		{
			Name:     "go vet",
			Kind:     KindTypes,
			Command:  "go",
			Args:     []string{"vet", PlaceholderPackages},
			Timeout:  core.TimeoutTool,
			Findings: FindingsExit,
			Install:  "https://go.dev/doc/install",
		},
		{
			Name:     "gofmt",
			Kind:     KindFormat,
			Command:  "gofmt",
			Args:     []string{"-l", PlaceholderTarget},
			Timeout:  core.TimeoutTool,
			Findings: FindingsOutput,
			Install:  "https://go.dev/doc/install",
		},
		{
			Name:     "go test",
			Kind:     KindTests,
			Command:  "go",
			Args:     []string{"test", "-v", PlaceholderPackages},
			Timeout:  core.TimeoutToolLong,
			Findings: FindingsExit,
			Install:  "https://go.dev/doc/install",
		},
	}
}

// ToolsFromConfig converts configured tools into specs. An empty list
// selects DefaultTools.
func ToolsFromConfig(tools []config.ToolConfig) ([]ToolSpec, error) {
	if len(tools) == 0 {
		return DefaultTools(), nil
	}

	specs := make([]ToolSpec, 0, len(tools))
	for _, t := range tools {
		fallback := core.TimeoutTool
		if Kind(t.Kind) == KindTests || Kind(t.Kind) == KindLint {
			fallback = core.TimeoutToolLong
		}
		timeout, err := t.TimeoutDuration(fallback)
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", t.Name, err)
		}
		findings := FindingsMode(t.Findings)
		if findings == "" {
			findings = FindingsExit
		}
		specs = append(specs, ToolSpec{
			Name:     t.Name,
			Kind:     Kind(t.Kind),
			Command:  t.Command,
			Args:     t.Args,
			Timeout:  timeout,
			Findings: findings,
		})
	}
	return specs, nil
}

// CommandFor builds the invocation of spec for target. {target} becomes the
// absolute target path and {packages} the go package pattern; the working
// directory is the target directory.
func (s ToolSpec) CommandFor(t *discovery.Target) core.Command {
	abs, err := filepath.Abs(t.Path)
	if err != nil {
		abs = t.Path
	}
	args := make([]string, len(s.Args))
	for i, a := range s.Args {
		a = strings.ReplaceAll(a, PlaceholderTarget, abs)
		args[i] = strings.ReplaceAll(a, PlaceholderPackages, t.Packages())
	}
	return core.Command{
		Name:    s.Command,
		Args:    args,
		Dir:     t.Dir,
		Timeout: s.Timeout,
	}
}
