// Package dotver parses and orders plain dotted version strings such as
// "1.10.0". Fields are compared numerically, left to right, with missing
// trailing fields treated as zero. There is no pre-release or build handling.
package dotver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidVersion is returned when a version string has a field that is
// not a non-negative integer.
var ErrInvalidVersion = errors.New("invalid version format")

// maxVersionLength is the maximum allowed length for a version string.
const maxVersionLength = 128

// Version is a dotted version as a list of numeric fields.
type Version []int

// String joins the fields with dots.
func (v Version) String() string {
	var sb strings.Builder
	for i, f := range v {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(f))
	}
	return sb.String()
}

// Parse parses s into a Version. Surrounding whitespace and a leading "v"
// are ignored.
func Parse(s string) (Version, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "v")
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty version", ErrInvalidVersion)
	}
	if len(trimmed) > maxVersionLength {
		return nil, fmt.Errorf("%w: version string exceeds maximum length of %d", ErrInvalidVersion, maxVersionLength)
	}

	parts := strings.Split(trimmed, ".")
	v := make(Version, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: field %d of %q is not a number", ErrInvalidVersion, i+1, s)
		}
		v[i] = n
	}
	return v, nil
}

// Compare returns -1 if a < b, 0 if a == b and +1 if a > b.
func Compare(a, b Version) int {
	n := max(len(a), len(b))
	for i := range n {
		if c := compareInt(field(a, i), field(b, i)); c != 0 {
			return c
		}
	}
	return 0
}

// CompareStrings parses both strings and compares them.
func CompareStrings(a, b string) (int, error) {
	va, err := Parse(a)
	if err != nil {
		return 0, err
	}
	vb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return Compare(va, vb), nil
}

// IsNewer reports whether latest is strictly greater than current.
// Unparseable input returns an error; callers treat that as "cannot compare".
func IsNewer(current, latest string) (bool, error) {
	c, err := CompareStrings(latest, current)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

func field(v Version, i int) int {
	if i < len(v) {
		return v[i]
	}
	return 0
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
