package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gramcli/gram/internal/core"
	"github.com/gramcli/gram/internal/printer"
	"github.com/gramcli/gram/internal/tui"
	logger "github.com/sirupsen/logrus"
)

// ExitWord ends the session.
const ExitWord = "exit"

// PartSize is the longest answer printed in one panel.
const PartSize = 500

// ErrAllModelsFailed is returned by Ask when every model failed.
var ErrAllModelsFailed = errors.New("all models failed")

// Session is one chat loop.
type Session struct {
	gen      Generator
	models   []string
	timeout  time.Duration
	prompter tui.Prompter
	console  *printer.Console
}

// NewSession creates a Session. An empty model list is an error; a zero
// timeout selects core.TimeoutChat.
func NewSession(gen Generator, models []string, timeout time.Duration, prompter tui.Prompter, console *printer.Console) (*Session, error) {
	if len(models) == 0 {
		return nil, errors.New("no chat models configured")
	}
	if timeout <= 0 {
		timeout = core.TimeoutChat
	}
	return &Session{gen: gen, models: models, timeout: timeout, prompter: prompter, console: console}, nil
}

// Ask tries each model in order and returns the first answer.
func (s *Session) Ask(ctx context.Context, prompt string) (answer, model string, err error) {
	var errs []error
	for _, m := range s.models {
		answer, err := s.ask(ctx, m, prompt)
		if err == nil {
			return answer, m, nil
		}
		logger.WithError(err).WithField("model", m).Debug("model failed")
		errs = append(errs, fmt.Errorf("%s: %w", m, err))
		if ctx.Err() != nil {
			break
		}
	}
	return "", "", fmt.Errorf("%w: %w", ErrAllModelsFailed, errors.Join(errs...))
}

func (s *Session) ask(ctx context.Context, model, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.gen.Generate(ctx, model, prompt)
}

// Run reads questions until the user types the exit word, aborts the
// prompt or ctx is cancelled. It returns the number of answered questions.
func (s *Session) Run(ctx context.Context) int {
	answered := 0
	for {
		if ctx.Err() != nil {
			return answered
		}
		line, err := s.prompter.Input("You", "ask anything, or type "+ExitWord+" to quit")
		if err != nil {
			if !errors.Is(err, tui.ErrAborted) {
				logger.WithError(err).Debug("chat input failed")
			}
			return answered
		}
		line = strings.TrimSpace(line)
		switch {
		case strings.EqualFold(line, ExitWord):
			return answered
		case line == "":
			s.console.Println(printer.Warning("Please enter a question."))
			continue
		}

		var answer, model string
		spinErr := tui.Spin(ctx, "Thinking...", func(ctx context.Context) {
			answer, model, err = s.Ask(ctx, line)
		})
		if spinErr != nil && err == nil {
			err = spinErr
		}
		if err != nil {
			s.console.Panel("Error", err.Error(), printer.ToneError)
			continue
		}
		s.printAnswer(model, answer)
		answered++
	}
}

func (s *Session) printAnswer(model, answer string) {
	parts := Split(answer, PartSize)
	if len(parts) == 1 {
		s.console.Panel(model, answer, printer.ToneAccent)
		return
	}
	for i, p := range parts {
		s.console.Panel(fmt.Sprintf("%s (part %d/%d)", model, i+1, len(parts)), p, printer.ToneAccent)
	}
}

// Split cuts text into chunks of at most size runes, preferring to break
// at whitespace.
func Split(text string, size int) []string {
	if size <= 0 || utf8.RuneCountInString(text) <= size {
		return []string{text}
	}
	var parts []string
	runes := []rune(text)
	for len(runes) > size {
		cut := size
		for i := size; i > size/2; i-- {
			if runes[i] == ' ' || runes[i] == '\n' {
				cut = i
				break
			}
		}
		parts = append(parts, strings.TrimSpace(string(runes[:cut])))
		runes = runes[cut:]
	}
	if rest := strings.TrimSpace(string(runes)); rest != "" {
		parts = append(parts, rest)
	}
	return parts
}
