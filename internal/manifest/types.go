package manifest

import (
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Format represents the supported manifest formats.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
	FormatRaw   Format = "raw"
	FormatRegex Format = "regex"
)

// FileName is the manifest written into every gram project.
const FileName = ".gram-manifest.toml"

// IsValid returns true if the format is a known format.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTOML, FormatRaw, FormatRegex:
		return true
	default:
		return false
	}
}

// FormatForFile detects the format from the file extension.
func FormatForFile(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatRaw
	}
}

// Source describes where the version lives inside a manifest.
type Source struct {
	Format Format
	// Field is the dot-notation path for JSON, YAML and TOML.
	Field string
	// Pattern must contain one capturing group; used by FormatRegex.
	Pattern string
}

// Project is the typed view of .gram-manifest.toml.
type Project struct {
	Project struct {
		Name        string `toml:"name"`
		Version     string `toml:"version"`
		Description string `toml:"description,omitempty"`
		Template    string `toml:"template,omitempty"`
	} `toml:"project"`
}

// DecodeProject decodes a .gram-manifest.toml document.
func DecodeProject(data []byte) (*Project, error) {
	var p Project
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, &ParseError{Format: FormatTOML, Err: err}
	}
	return &p, nil
}
