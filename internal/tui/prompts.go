package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user cancels a prompt (Ctrl+C, Esc or EOF).
var ErrAborted = errors.New("prompt aborted")

// Prompter abstracts interactive prompts for testability.
type Prompter interface {
	Confirm(title, description string) (bool, error)
	Input(title, placeholder string) (string, error)
}

// TUIPrompter implements Prompter with huh forms.
type TUIPrompter struct{}

// NewPrompter creates a TUIPrompter.
func NewPrompter() *TUIPrompter {
	return &TUIPrompter{}
}

// Confirm shows a yes/no confirmation prompt.
func (p *TUIPrompter) Confirm(title, description string) (bool, error) {
	var confirmed bool
	field := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)
	if err := runField(field); err != nil {
		return false, err
	}
	return confirmed, nil
}

// Input shows a single-line text prompt.
func (p *TUIPrompter) Input(title, placeholder string) (string, error) {
	var value string
	field := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Prompt("➤ ").
		Value(&value)
	if err := runField(field); err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func runField(field huh.Field) error {
	err := huh.NewForm(huh.NewGroup(field)).
		WithTheme(currentThemeOrDefault()).
		WithKeyMap(keyMap()).
		WithShowHelp(false).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

// LinePrompter implements Prompter over plain line-oriented streams.
// It is used when stdin is not a terminal, e.g. piped input.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter reads answers from in and writes prompts to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Confirm accepts y, yes, д and да (case-insensitive) as affirmative.
func (p *LinePrompter) Confirm(title, _ string) (bool, error) {
	fmt.Fprintf(p.out, "%s (y/N): ", title)
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes", "д", "да":
		return true, nil
	default:
		return false, nil
	}
}

// Input prints the title and reads one line.
func (p *LinePrompter) Input(title, _ string) (string, error) {
	fmt.Fprintf(p.out, "%s\n➤ ", title)
	return p.readLine()
}

func (p *LinePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", ErrAborted
			}
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// DefaultPrompter picks the huh prompter for interactive sessions and the
// line prompter otherwise.
func DefaultPrompter(in io.Reader, out io.Writer) Prompter {
	if IsInteractive() {
		return NewPrompter()
	}
	return NewLinePrompter(in, out)
}
