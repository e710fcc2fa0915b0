// Package quality runs the gram quality pipeline over a Go file or
// directory: a parse check of every file followed by external tools (style
// checker, deep linter, security scanner, type checker, formatter and test
// runner) invoked one after another. Each tool invocation is classified into
// exactly one Outcome; a finding in one step never stops the next.
package quality
