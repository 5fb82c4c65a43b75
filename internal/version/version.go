// Package version reports the dbcalls build.
package version

import (
	"runtime"
	"runtime/debug"
	"strings"
)

// Set with -ldflags "-X dbcalls/internal/version.Version=... -X dbcalls/internal/version.Commit=...".
var (
	Version   = "0.3.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// revision returns Commit, or the VCS revision stamped by `go build` when
// no ldflags were given.
func revision() string {
	if Commit != "unknown" && Commit != "" {
		return Commit
	}
	info, ok := readBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			return s.Value
		}
	}
	return "unknown"
}

// Info is the short form used by --version: the version plus a 7 character
// commit when one is known.
func Info() string {
	rev := revision()
	if len(rev) <= 7 || rev == "unknown" {
		return Version
	}
	return Version + " (" + rev[:7] + ")"
}

// Full is the multi-line form printed by `dbcalls version`.
func Full() string {
	var b strings.Builder
	b.WriteString("dbcalls version " + Version + "\n")
	b.WriteString("Commit: " + revision() + "\n")
	b.WriteString("Built: " + BuildDate + "\n")
	b.WriteString("Go: " + runtime.Version())
	return b.String()
}
