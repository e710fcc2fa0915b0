package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

var (
	// ErrCommandNotFound is returned when the executable is not on PATH.
	ErrCommandNotFound = errors.New("command not found")

	// ErrCommandTimeout is returned when the command outlives its timeout.
	ErrCommandTimeout = errors.New("command timed out")
)

// Command describes a subprocess invocation.
type Command struct {
	Name    string
	Args    []string
	Dir     string
	Env     []string
	Timeout time.Duration
}

// String renders the command line for display.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result holds the captured output of a finished subprocess.
// A non-zero ExitCode is not an error: callers decide what it means.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner executes subprocesses.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// OSRunner runs commands with os/exec.
type OSRunner struct {
	execCommand func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// NewOSRunner creates an OSRunner using exec.CommandContext.
func NewOSRunner() *OSRunner {
	return &OSRunner{execCommand: exec.CommandContext}
}

var _ Runner = (*OSRunner)(nil)

// Run starts the command and waits for it. The returned error wraps
// ErrCommandNotFound or ErrCommandTimeout for those two conditions.
func (r *OSRunner) Run(ctx context.Context, c Command) (*Result, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := r.execCommand(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.WaitDelay = KillGrace
	setProcessGroup(cmd)
	if len(c.Env) > 0 {
		cmd.Env = append(cmd.Environ(), c.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err == nil {
		return res, nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrCommandNotFound, c.Name)
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return res, fmt.Errorf("%w after %v: %s", ErrCommandTimeout, c.Timeout, c.Name)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return nil, fmt.Errorf("%s failed: %w", c.Name, err)
}
