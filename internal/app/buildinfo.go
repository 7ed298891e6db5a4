package app

import "fmt"

// Build information populated via -ldflags at release time. The defaults
// identify ad-hoc developer builds.
var (
	// BuildVersion is the semantic version of the built binary.
	BuildVersion = "0.0.0-dev"
	// BuildCommit is the VCS commit SHA associated with the build.
	BuildCommit = "unknown"
	// BuildDate is the ISO-8601 timestamp of the build.
	BuildDate = "unknown"
)

// VersionString renders the line the -version flag prints.
func VersionString() string {
	return fmt.Sprintf("ccsearch %s (commit %s, built %s)", BuildVersion, BuildCommit, BuildDate)
}
