// Package version exposes build-time version metadata for the codegauge binary.
package version

import "runtime/debug"

// Build metadata, overridable via -ldflags at release time.
var (
	// Version is the semantic version of the binary.
	Version = "dev"

	// Commit is the VCS revision the binary was built from.
	Commit = "<unknown>"

	// Date is the build timestamp.
	Date = "<unknown>"
)

// InitBinaryVersion fills in Commit from embedded build info when it was not
// set through ldflags.
func InitBinaryVersion() {
	if Commit != "<unknown>" {
		return
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			Commit = setting.Value

			return
		}
	}
}
