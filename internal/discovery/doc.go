// Package discovery resolves a user-supplied path into the set of Go source
// files gram analyses. It skips hidden directories, vendor trees and
// testdata, and always returns files in sorted order.
package discovery
