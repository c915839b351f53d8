package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/logpeek/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/logpeek/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/logpeek/internal/version.Date={{.Date}}
)

// String formats the build information for `logpeek version`
func String() string {
	return fmt.Sprintf("logpeek %s (commit %s, built %s)", Version, Commit, Date)
}
