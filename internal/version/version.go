// Package version reports the gram build version.
package version

import (
	"runtime/debug"
	"strings"
)

// Version and Commit are set at build time via -ldflags.
//
//	go build -ldflags "-X github.com/gramcli/gram/internal/version.Version=0.4.0
//	  -X github.com/gramcli/gram/internal/version.Commit=48cae1d"
var (
	Version = ""
	Commit  = ""
)

// DevVersion is reported when no version information is available.
const DevVersion = "0.0.0-dev"

// ModulePath is the module path of the gram binary.
const ModulePath = "github.com/gramcli/gram"

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the ldflags version, else the main module version from
// the embedded build info, else DevVersion. A leading "v" is stripped.
func GetVersion() string {
	if Version != "" {
		return strings.TrimPrefix(Version, "v")
	}
	if info, ok := readBuildInfo(); ok {
		v := info.Main.Version
		if v != "" && v != "(devel)" {
			return strings.TrimPrefix(v, "v")
		}
	}
	return DevVersion
}

// GetCommit returns the short commit hash, or "" when unknown.
func GetCommit() string {
	c := Commit
	if c == "" {
		if info, ok := readBuildInfo(); ok {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					c = s.Value
					break
				}
			}
		}
	}
	if len(c) > 7 {
		return c[:7]
	}
	return c
}

// GoVersion returns the Go toolchain version the binary was built with.
func GoVersion() string {
	if info, ok := readBuildInfo(); ok && info.GoVersion != "" {
		return info.GoVersion
	}
	return "unknown"
}
