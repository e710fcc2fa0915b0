package printer

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsole_Panel(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, &bytes.Buffer{})

	c.Panel("Syntax", "file parses cleanly", ToneSuccess)

	got := out.String()
	for _, want := range []string{"Syntax", "file parses cleanly", "╭", "╯"} {
		if !strings.Contains(got, want) {
			t.Errorf("panel output missing %q:\n%s", want, got)
		}
	}
}

func TestConsole_Table(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, nil)

	c.Table("Stats", []string{"Metric", "Value"}, [][]string{
		{"Lines", "42"},
		{"Functions", "3"},
	})

	got := out.String()
	for _, want := range []string{"Stats", "Metric", "Value", "Lines", "42", "Functions", "3"} {
		if !strings.Contains(got, want) {
			t.Errorf("table output missing %q:\n%s", want, got)
		}
	}
}

func TestRenderPanel_EmptyTitle(t *testing.T) {
	got := RenderPanel("", "body only", ToneNeutral)
	if !strings.Contains(got, "body only") {
		t.Errorf("RenderPanel() = %q, want body", got)
	}
}

func TestConsole_Printf(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, nil)
	c.Printf("%d files", 3)
	c.Blank()
	c.Println("done")
	if got := out.String(); got != "3 files\ndone\n" {
		t.Errorf("output = %q", got)
	}
}

func TestConsole_JSON(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, nil)
	if err := c.JSON(map[string]int{"files": 2}); err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	if got := out.String(); got != "{\n  \"files\": 2\n}\n" {
		t.Errorf("output = %q", got)
	}
	if err := c.JSON(make(chan int)); err == nil {
		t.Error("JSON() should fail for unsupported values")
	}
}
