package version

import "fmt"

// Set at build time via -ldflags.
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "development"
)

func String() string {
	return fmt.Sprintf("v%s", Version)
}

// Get returns version metadata for the health endpoint.
func Get() map[string]string {
	return map[string]string{
		"version":    Version,
		"git_commit": GitCommit,
		"build_time": BuildTime,
	}
}
