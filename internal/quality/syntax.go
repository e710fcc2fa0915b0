package quality

import (
	"errors"
	"go/parser"
	"go/scanner"
	"go/token"
	"unicode/utf8"
)

// SyntaxStatus is the result of parsing one file.
type SyntaxStatus int

const (
	SyntaxOK SyntaxStatus = iota
	SyntaxError
	SyntaxUnreadable
)

func (s SyntaxStatus) String() string {
	switch s {
	case SyntaxOK:
		return "ok"
	case SyntaxError:
		return "syntax_error"
	default:
		return "unreadable"
	}
}

// MarshalText renders the status by name in JSON output.
func (s SyntaxStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SyntaxResult is the parse outcome of one file.
type SyntaxResult struct {
	Path    string       `json:"path"`
	Status  SyntaxStatus `json:"status"`
	Line    int          `json:"line,omitempty"`
	Column  int          `json:"column,omitempty"`
	Message string       `json:"message,omitempty"`
}

// CheckSyntax parses src as Go. readErr is the error from reading the
// file, if any; it and invalid UTF-8 make the file unreadable.
func CheckSyntax(path string, src []byte, readErr error) SyntaxResult {
	res := SyntaxResult{Path: path}
	if readErr != nil {
		res.Status = SyntaxUnreadable
		res.Message = readErr.Error()
		return res
	}
	if !utf8.Valid(src) {
		res.Status = SyntaxUnreadable
		res.Message = "invalid UTF-8 encoding"
		return res
	}

	_, err := parser.ParseFile(token.NewFileSet(), path, src, parser.AllErrors)
	if err == nil {
		return res
	}

	res.Status = SyntaxError
	var list scanner.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		res.Line = list[0].Pos.Line
		res.Column = list[0].Pos.Column
		res.Message = list[0].Msg
		return res
	}
	res.Message = err.Error()
	return res
}
