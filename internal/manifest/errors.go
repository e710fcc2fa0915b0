package manifest

import (
	"errors"
	"fmt"
)

// ErrFieldNotFound is returned when the field path does not exist.
var ErrFieldNotFound = errors.New("field not found")

// ParseError indicates a manifest that could not be decoded.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s manifest: %v", e.Format, e.Err)
}

// Unwrap returns the underlying error
func (e *ParseError) Unwrap() error {
	return e.Err
}

// FieldError indicates that the version field is missing or not a string.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error
func (e *FieldError) Unwrap() error {
	return e.Err
}
