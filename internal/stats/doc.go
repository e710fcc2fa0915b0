// Package stats computes static statistics for Go source files: line,
// function, type, import and comment counts, doc coverage and the number of
// functions that start goroutines. Each file is parsed once with go/parser.
//
// Metrics are graded into evaluation bands and rolled into a 0..6 score for
// a single file or a whole directory.
package stats
