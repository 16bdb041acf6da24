// Package version holds the build version of cmdarg.
package version

import (
	"runtime/debug"
	"strings"
)

// Set using -ldflags "-X go.minekube.com/cmdarg/pkg/version.version=v1.2.3"
var version = "unknown"

// String returns the build version. A binary built by "go install"
// falls back to its module version.
func String() string {
	if version != "unknown" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}

// UserAgent identifies cmdarg and its version, e.g. Minekube-Cmdarg/v1.2.3.
func UserAgent() string {
	s := strings.Builder{}
	s.WriteString("Minekube-Cmdarg/")
	s.WriteString(String())
	return s.String()
}
