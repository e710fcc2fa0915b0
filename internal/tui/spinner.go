package tui

import (
	"context"

	"github.com/charmbracelet/huh/spinner"
)

// Spin runs action under a spinner titled title. In non-interactive
// sessions the action runs directly with no animation.
func Spin(ctx context.Context, title string, action func(ctx context.Context)) error {
	if !IsInteractive() {
		action(ctx)
		return nil
	}
	return spinner.New().
		Type(spinner.Dots).
		Title(" " + title).
		Context(ctx).
		Action(func() { action(ctx) }).
		Run()
}
