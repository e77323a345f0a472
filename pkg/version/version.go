// Package version exposes build identification for the diffscope binary.
package version

import "runtime/debug"

// Set at build time via -ldflags.
var (
	// Version is the release version of the binary.
	Version = "dev"
	// Commit is the Git hash the binary was built from.
	Commit = "<unknown>"
	// Date is the build timestamp.
	Date = "<unknown>"
)

func init() {
	if Commit != "<unknown>" {
		return
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			Commit = setting.Value
		case "vcs.time":
			Date = setting.Value
		}
	}
}
