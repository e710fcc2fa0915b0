package manifest

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/gramcli/gram/internal/core"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
)

// Extract returns the version stored in data according to src.
func Extract(data []byte, src Source) (string, error) {
	if !src.Format.IsValid() {
		return "", fmt.Errorf("invalid format: %q", src.Format)
	}

	switch src.Format {
	case FormatJSON:
		return extractJSON(data, src.Field)
	case FormatYAML:
		return extractDecoded(data, src, yaml.Unmarshal)
	case FormatTOML:
		return extractDecoded(data, src, toml.Unmarshal)
	case FormatRegex:
		return extractRegex(data, src.Pattern)
	default:
		v := strings.TrimSpace(string(data))
		if v == "" {
			return "", errors.New("manifest is empty")
		}
		return v, nil
	}
}

// ReadFile reads the manifest at path and extracts its version.
func ReadFile(ctx context.Context, fs core.FileSystem, path string, src Source) (string, error) {
	data, err := fs.ReadFile(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to read manifest %q: %w", path, err)
	}
	v, err := Extract(data, src)
	if err != nil {
		return "", fmt.Errorf("in %q: %w", path, err)
	}
	return v, nil
}

func extractJSON(data []byte, field string) (string, error) {
	if field == "" {
		return "", errors.New("field is required for JSON format")
	}
	if !gjson.ValidBytes(data) {
		return "", &ParseError{Format: FormatJSON, Err: errors.New("invalid JSON")}
	}
	res := gjson.GetBytes(data, field)
	if !res.Exists() {
		return "", &FieldError{Field: field, Err: ErrFieldNotFound}
	}
	if res.Type != gjson.String {
		return "", &FieldError{Field: field, Err: errors.New("not a string")}
	}
	return res.String(), nil
}

func extractDecoded(data []byte, src Source, unmarshal func([]byte, any) error) (string, error) {
	if src.Field == "" {
		return "", fmt.Errorf("field is required for %s format", src.Format)
	}

	var obj map[string]any
	if err := unmarshal(data, &obj); err != nil {
		return "", &ParseError{Format: src.Format, Err: err}
	}

	value, err := getNestedValue(obj, src.Field)
	if err != nil {
		return "", &FieldError{Field: src.Field, Err: err}
	}
	version, ok := value.(string)
	if !ok {
		return "", &FieldError{Field: src.Field, Err: errors.New("not a string")}
	}
	return version, nil
}

func extractRegex(data []byte, pattern string) (string, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return "", err
	}
	matches := re.FindSubmatch(data)
	if len(matches) < 2 {
		return "", fmt.Errorf("no version match found (pattern %q must have a capturing group)", pattern)
	}
	return string(matches[1]), nil
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, errors.New("pattern is required for regex format")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("regex pattern %q has no capturing group", pattern)
	}
	return re, nil
}

// getNestedValue retrieves a value from a nested map using dot notation.
// Example: "project.version" accesses obj["project"]["version"]
func getNestedValue(obj map[string]any, field string) (any, error) {
	parts := strings.Split(field, ".")
	current := any(obj)

	for i, part := range parts {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%q is not an object", strings.Join(parts[:i], "."))
		}
		value, exists := currentMap[part]
		if !exists {
			return nil, ErrFieldNotFound
		}
		current = value
	}
	return current, nil
}
