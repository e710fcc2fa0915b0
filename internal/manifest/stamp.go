package manifest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/gramcli/gram/internal/core"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/sjson"
)

// Stamp returns data with the version field set to version.
// JSON is edited in place with sjson so key order and formatting survive;
// YAML and TOML are decoded, updated and re-encoded.
func Stamp(data []byte, src Source, version string) ([]byte, error) {
	if !src.Format.IsValid() {
		return nil, fmt.Errorf("invalid format: %q", src.Format)
	}

	switch src.Format {
	case FormatJSON:
		if src.Field == "" {
			return nil, errors.New("field is required for JSON format")
		}
		updated, err := sjson.SetBytes(data, src.Field, version)
		if err != nil {
			return nil, &FieldError{Field: src.Field, Err: err}
		}
		return withNewline(updated), nil
	case FormatYAML:
		return stampDecoded(data, src, version, yaml.Unmarshal, yaml.Marshal)
	case FormatTOML:
		return stampDecoded(data, src, version, toml.Unmarshal, toml.Marshal)
	case FormatRegex:
		return stampRegex(data, src.Pattern, version)
	default:
		return withNewline([]byte(version)), nil
	}
}

// StampFile rewrites the version field of the manifest at path.
func StampFile(ctx context.Context, fs core.FileSystem, path string, src Source, version string) error {
	var data []byte
	if src.Format != FormatRaw {
		var err error
		data, err = fs.ReadFile(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to read manifest %q: %w", path, err)
		}
	}

	updated, err := Stamp(data, src, version)
	if err != nil {
		return fmt.Errorf("in %q: %w", path, err)
	}
	if err := fs.WriteFile(ctx, path, updated, core.PermFile); err != nil {
		return fmt.Errorf("failed to write manifest %q: %w", path, err)
	}
	return nil
}

func stampDecoded(
	data []byte,
	src Source,
	version string,
	unmarshal func([]byte, any) error,
	marshal func(any) ([]byte, error),
) ([]byte, error) {
	if src.Field == "" {
		return nil, fmt.Errorf("field is required for %s format", src.Format)
	}

	obj := map[string]any{}
	if err := unmarshal(data, &obj); err != nil {
		return nil, &ParseError{Format: src.Format, Err: err}
	}
	if obj == nil {
		obj = map[string]any{}
	}
	if err := setNestedValue(obj, src.Field, version); err != nil {
		return nil, &FieldError{Field: src.Field, Err: err}
	}

	updated, err := marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s manifest: %w", src.Format, err)
	}
	return updated, nil
}

func stampRegex(data []byte, pattern, version string) ([]byte, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}
	loc := re.FindSubmatchIndex(data)
	if loc == nil || loc[2] < 0 {
		return nil, fmt.Errorf("pattern %q does not match", pattern)
	}

	out := make([]byte, 0, len(data)+len(version))
	out = append(out, data[:loc[2]]...)
	out = append(out, version...)
	out = append(out, data[loc[3]:]...)
	return out, nil
}

// setNestedValue sets a value in a nested map using dot notation,
// creating intermediate maps as needed.
func setNestedValue(obj map[string]any, field string, value any) error {
	parts := strings.Split(field, ".")
	current := obj

	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		next, exists := current[part]
		if !exists {
			newMap := make(map[string]any)
			current[part] = newMap
			current = newMap
			continue
		}
		nextMap, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("%q is not an object", strings.Join(parts[:i+1], "."))
		}
		current = nextMap
	}

	current[parts[len(parts)-1]] = value
	return nil
}

func withNewline(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] != '\n' {
		b = append(b, '\n')
	}
	return b
}
