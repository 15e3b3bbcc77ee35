// Package build provides version and build information for tinychange.
// This package intentionally has no dependencies on other internal packages
// to avoid import cycles.
package build

import "fmt"

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// String returns a one-line version description.
func String() string {
	if IsDevBuild() {
		return fmt.Sprintf("%s (commit %s)", Version, Commit)
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate)
}
