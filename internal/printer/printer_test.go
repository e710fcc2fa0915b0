package printer

import (
	"strings"
	"testing"
)

// TestRenderFunctions verifies that all render functions return non-empty styled strings.
func TestRenderFunctions(t *testing.T) {
	tests := []struct {
		name     string
		function func(string) string
		input    string
	}{
		{"Faint", Faint, "test text"},
		{"Bold", Bold, "test text"},
		{"Success", Success, "test text"},
		{"Error", Error, "test text"},
		{"Warning", Warning, "test text"},
		{"Info", Info, "test text"},
		{"Accent", Accent, "test text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.function(tt.input)

			if result == "" {
				t.Errorf("%s() returned empty string", tt.name)
			}

			// Styled output may or may not contain ANSI codes depending on
			// terminal detection, but it always contains the original text.
			if !strings.Contains(result, tt.input) {
				t.Errorf("%s() result does not contain input text. got %q, want to contain %q", tt.name, result, tt.input)
			}
		})
	}
}

func TestChange(t *testing.T) {
	SetNoColor(true)

	tests := []struct {
		pct  float64
		want string
	}{
		{2.5, "+2.50%"},
		{0, "+0.00%"},
		{-1.234, "-1.23%"},
	}
	for _, tt := range tests {
		if got := Change(tt.pct); got != tt.want {
			t.Errorf("Change(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestCheck(t *testing.T) {
	SetNoColor(true)

	if got := Check(true, "ok"); got != "✓ ok" {
		t.Errorf("Check(true) = %q", got)
	}
	if got := Check(false, "bad"); got != "✗ bad" {
		t.Errorf("Check(false) = %q", got)
	}
}
