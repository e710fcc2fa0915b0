package printer

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Style definitions for consistent console output across the application.
var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // Red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // Yellow
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // Cyan
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5")) // Magenta
)

// SetNoColor switches every renderer to plain ASCII output when disabled is true.
func SetNoColor(disabled bool) {
	if disabled {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// Render functions return styled strings without printing.

// Faint returns text with faint styling.
func Faint(text string) string {
	return faintStyle.Render(text)
}

// Bold returns text with bold styling.
func Bold(text string) string {
	return boldStyle.Render(text)
}

// Success returns text with success (green) styling.
func Success(text string) string {
	return successStyle.Render(text)
}

// Error returns text with error (red) styling.
func Error(text string) string {
	return errorStyle.Render(text)
}

// Warning returns text with warning (yellow) styling.
func Warning(text string) string {
	return warningStyle.Render(text)
}

// Info returns text with info (cyan) styling.
func Info(text string) string {
	return infoStyle.Render(text)
}

// Accent returns text with accent (magenta) styling.
func Accent(text string) string {
	return accentStyle.Render(text)
}

// Change renders a signed percentage, green when pct is zero or above
// and red below.
func Change(pct float64) string {
	text := fmt.Sprintf("%+.2f%%", pct)
	if pct >= 0 {
		return Success(text)
	}
	return Error(text)
}

// Check renders a pass/fail mark followed by label.
func Check(ok bool, label string) string {
	if ok {
		return Success("✓ " + label)
	}
	return Error("✗ " + label)
}
