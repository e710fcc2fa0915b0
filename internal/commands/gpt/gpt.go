// Package gpt implements "gram --gpt": an interactive chat session.
package gpt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gramcli/gram/internal/app"
	"github.com/gramcli/gram/internal/chat"
	"github.com/gramcli/gram/internal/core"
	"github.com/gramcli/gram/internal/printer"
	logger "github.com/sirupsen/logrus"
)

// Run starts a chat session and returns when the user leaves it.
func Run(ctx context.Context, d app.Deps, _ app.Options) error {
	cfg := d.Config.Chat
	key := chat.APIKey(cfg)
	if key == "" {
		d.Console.Panel("Chat unavailable",
			fmt.Sprintf("No API key found. Set %s or chat.api_key in your config.", strings.Join(chat.APIKeyEnv, " or ")),
			printer.ToneError)
		return nil
	}

	timeout := core.TimeoutChat
	if cfg.Timeout != "" {
		t, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return fmt.Errorf("invalid chat.timeout %q: %w", cfg.Timeout, err)
		}
		timeout = t
	}

	gen, err := d.NewGenerator(ctx, key)
	if err != nil {
		d.Console.Panel("Chat unavailable", "Could not start the chat client: "+err.Error(), printer.ToneError)
		return nil
	}

	session, err := chat.NewSession(gen, cfg.Models, timeout, d.Prompter, d.Console)
	if err != nil {
		return err
	}

	d.Console.Panel("Chat",
		fmt.Sprintf("Models: %s\nType your question and press Enter. Type %q or press Ctrl+C to leave.",
			strings.Join(cfg.Models, ", "), chat.ExitWord),
		printer.ToneAccent)

	answered := session.Run(ctx)
	logger.WithField("answered", answered).Debug("chat session ended")
	d.Console.Println(printer.Faint(fmt.Sprintf("Chat closed after %d answer(s).", answered)))
	return nil
}
