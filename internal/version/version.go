// Package version reports the build identity of the ciboard binary.
package version

import "fmt"

// These variables are populated by the Go linker (LDFLAGS) at build time.
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String returns a one-line build description.
func String() string {
	return fmt.Sprintf("ciboard %s (commit %s, built %s)", Version, CommitHash, BuildDate)
}
