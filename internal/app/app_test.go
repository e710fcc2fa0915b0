package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gramcli/gram/internal/config"
)

func TestResolve(t *testing.T) {
	var out bytes.Buffer
	cfg := config.Default()

	deps, err := Resolve(Streams{In: strings.NewReader(""), Out: &out, Err: &out}, cfg)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if deps.Config != cfg {
		t.Error("Config not wired")
	}
	if deps.Console == nil || deps.FS == nil || deps.Runner == nil || deps.HTTP == nil || deps.Prompter == nil || deps.NewGenerator == nil {
		t.Fatalf("missing dependency: %+v", deps)
	}

	deps.Console.Println("hello")
	if out.String() != "hello\n" {
		t.Errorf("console writes to %q", out.String())
	}
}

func TestOptions_JSON(t *testing.T) {
	if (Options{Format: FormatText}).JSON() {
		t.Error("text format reported as JSON")
	}
	if !(Options{Format: FormatJSON}).JSON() {
		t.Error("json format not detected")
	}
}
