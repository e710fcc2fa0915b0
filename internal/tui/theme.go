package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// currentTheme holds the configured theme; nil means the gram theme.
var currentTheme *huh.Theme

// SetTheme sets the current theme by name.
// Unknown or empty names fall back to the gram theme.
func SetTheme(name string) {
	currentTheme = GetTheme(name)
}

func currentThemeOrDefault() *huh.Theme {
	if currentTheme == nil {
		return gramTheme()
	}
	return currentTheme
}

// resetTheme is used by tests.
func resetTheme() {
	currentTheme = nil
}

var (
	gramGold    = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#fbbf24"}
	gramCyan    = lipgloss.AdaptiveColor{Light: "#0e7490", Dark: "#22d3ee"}
	gramText    = lipgloss.AdaptiveColor{Light: "#1f2937", Dark: "#f3f4f6"}
	gramMuted   = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	gramButton  = lipgloss.AdaptiveColor{Light: "#0e7490", Dark: "#0891b2"}
	gramBlurred = lipgloss.AdaptiveColor{Light: "#e5e7eb", Dark: "#374151"}
)

func gramTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderStyle(lipgloss.RoundedBorder()).BorderForeground(gramCyan)
	t.Focused.Title = t.Focused.Title.Foreground(gramGold).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(gramMuted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(gramGold)
	t.Focused.TextInput.Text = t.Focused.TextInput.Text.Foreground(gramText)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(gramMuted)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(lipgloss.Color("#ffffff")).Background(gramButton).Bold(true).Padding(0, 1)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(gramMuted).Background(gramBlurred).Padding(0, 1)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	return t
}
