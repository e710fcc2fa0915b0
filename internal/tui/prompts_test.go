package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLinePrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"да\n", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			p := NewLinePrompter(strings.NewReader(tt.input), &out)
			got, err := p.Confirm("Update now?", "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !strings.Contains(out.String(), "Update now?") {
				t.Errorf("prompt not written, got %q", out.String())
			}
		})
	}
}

func TestLinePrompter_Input(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("  hello there  \nsecond"), &bytes.Buffer{})

	first, err := p.Input("Message", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != "hello there" {
		t.Errorf("first = %q, want %q", first, "hello there")
	}

	second, err := p.Input("Message", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != "second" {
		t.Errorf("second = %q, want %q", second, "second")
	}

	if _, err := p.Input("Message", ""); !errors.Is(err, ErrAborted) {
		t.Errorf("expected ErrAborted at EOF, got %v", err)
	}
}

func TestProgress_NoopWithoutTerminal(t *testing.T) {
	var nilProgress *Progress
	nilProgress.Step("a.go")
	nilProgress.Done()

	p := NewProgress(1, "scanning")
	if p.bar != nil {
		t.Error("NewProgress(1) should not draw a bar")
	}
	p.Step("a.go")
	p.Done()
}
