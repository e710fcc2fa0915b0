package manifest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gramcli/gram/internal/core"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		src     Source
		want    string
		wantErr bool
	}{
		{"toml nested", "[project]\nname = \"gram\"\nversion = \"1.4.2\"\n", Source{Format: FormatTOML, Field: "project.version"}, "1.4.2", false},
		{"json top level", `{"name":"x","version":"0.1.0"}`, Source{Format: FormatJSON, Field: "version"}, "0.1.0", false},
		{"json nested", `{"meta":{"version":"2.0"}}`, Source{Format: FormatJSON, Field: "meta.version"}, "2.0", false},
		{"yaml", "app:\n  version: 3.1.0\n", Source{Format: FormatYAML, Field: "app.version"}, "3.1.0", false},
		{"raw", "  1.2.3\n", Source{Format: FormatRaw}, "1.2.3", false},
		{"regex", "const Version = \"0.9.1\"\n", Source{Format: FormatRegex, Pattern: `Version = "([^"]+)"`}, "0.9.1", false},
		{"raw empty", "\n", Source{Format: FormatRaw}, "", true},
		{"toml missing field", "[project]\nname = \"gram\"\n", Source{Format: FormatTOML, Field: "project.version"}, "", true},
		{"json not a string", `{"version":1}`, Source{Format: FormatJSON, Field: "version"}, "", true},
		{"json invalid", `{"version":`, Source{Format: FormatJSON, Field: "version"}, "", true},
		{"toml invalid", "[project\n", Source{Format: FormatTOML, Field: "project.version"}, "", true},
		{"regex no group", "v1", Source{Format: FormatRegex, Pattern: `v\d`}, "", true},
		{"regex no match", "nothing", Source{Format: FormatRegex, Pattern: `v(\d+)`}, "", true},
		{"missing field path", `{}`, Source{Format: FormatJSON}, "", true},
		{"unknown format", "", Source{Format: "ini"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract([]byte(tt.data), tt.src)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Extract() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtract_ErrorTypes(t *testing.T) {
	_, err := Extract([]byte("[project]\n"), Source{Format: FormatTOML, Field: "project.version"})
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected *FieldError, got %T", err)
	}
	if !errors.Is(err, ErrFieldNotFound) {
		t.Error("expected errors.Is(err, ErrFieldNotFound)")
	}

	_, err = Extract([]byte("= broken"), Source{Format: FormatTOML, Field: "project.version"})
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if parseErr.Unwrap() == nil {
		t.Error("ParseError should wrap the decoder error")
	}
}

func TestStamp_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data string
		src  Source
	}{
		{"toml", "[project]\nname = \"demo\"\nversion = \"0.0.0\"\n", Source{Format: FormatTOML, Field: "project.version"}},
		{"json", "{\n  \"name\": \"demo\",\n  \"version\": \"0.0.0\"\n}", Source{Format: FormatJSON, Field: "version"}},
		{"yaml", "name: demo\nversion: 0.0.0\n", Source{Format: FormatYAML, Field: "version"}},
		{"regex", "VERSION=0.0.0\n", Source{Format: FormatRegex, Pattern: `VERSION=(\S+)`}},
		{"raw", "0.0.0\n", Source{Format: FormatRaw}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Stamp([]byte(tt.data), tt.src, "0.1.0")
			if err != nil {
				t.Fatalf("Stamp() error: %v", err)
			}
			got, err := Extract(out, tt.src)
			if err != nil {
				t.Fatalf("Extract() after stamp: %v", err)
			}
			if got != "0.1.0" {
				t.Errorf("version after stamp = %q, want 0.1.0", got)
			}
		})
	}
}

func TestStamp_JSONPreservesOrder(t *testing.T) {
	in := "{\n  \"name\": \"demo\",\n  \"version\": \"0.0.0\",\n  \"private\": true\n}"
	out, err := Stamp([]byte(in), Source{Format: FormatJSON, Field: "version"}, "0.1.0")
	if err != nil {
		t.Fatalf("Stamp() error: %v", err)
	}
	s := string(out)
	if strings.Index(s, "name") > strings.Index(s, "version") || strings.Index(s, "version") > strings.Index(s, "private") {
		t.Errorf("key order changed: %s", s)
	}
	if !strings.HasSuffix(s, "\n") {
		t.Error("expected trailing newline")
	}
}

func TestStamp_CreatesMissingTable(t *testing.T) {
	out, err := Stamp([]byte("title = \"x\"\n"), Source{Format: FormatTOML, Field: "project.version"}, "0.1.0")
	if err != nil {
		t.Fatalf("Stamp() error: %v", err)
	}
	p, err := DecodeProject(out)
	if err != nil {
		t.Fatalf("DecodeProject() error: %v", err)
	}
	if p.Project.Version != "0.1.0" {
		t.Errorf("Project.Version = %q", p.Project.Version)
	}
}

func TestStamp_ScalarInPath(t *testing.T) {
	_, err := Stamp([]byte("project = \"flat\"\n"), Source{Format: FormatTOML, Field: "project.version"}, "0.1.0")
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected *FieldError, got %v", err)
	}
}

func TestFileHelpers(t *testing.T) {
	ctx := context.Background()
	fs := core.NewMockFileSystem()
	src := Source{Format: FormatTOML, Field: "project.version"}
	fs.SetFile("/app/"+FileName, []byte("[project]\nname = \"app\"\nversion = \"0.0.0\"\n"))

	if err := StampFile(ctx, fs, "/app/"+FileName, src, "0.1.0"); err != nil {
		t.Fatalf("StampFile() error: %v", err)
	}
	got, err := ReadFile(ctx, fs, "/app/"+FileName, src)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if got != "0.1.0" {
		t.Errorf("ReadFile() = %q, want 0.1.0", got)
	}

	if _, err := ReadFile(ctx, fs, "/missing.toml", src); err == nil {
		t.Error("expected error for missing manifest")
	}

	fs.WriteErr = errors.New("disk full")
	if err := StampFile(ctx, fs, "/app/"+FileName, src, "0.2.0"); err == nil {
		t.Error("expected write error")
	}
}

func TestFormatForFile(t *testing.T) {
	tests := map[string]Format{
		"meta.json":           FormatJSON,
		"Chart.YAML":          FormatYAML,
		"x.yml":               FormatYAML,
		".gram-manifest.toml": FormatTOML,
		"VERSION":             FormatRaw,
	}
	for name, want := range tests {
		if got := FormatForFile(name); got != want {
			t.Errorf("FormatForFile(%q) = %q, want %q", name, got, want)
		}
	}
}
