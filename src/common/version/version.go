// Package version holds build metadata for staffd and staffctl.
package version

import (
	"fmt"
	"runtime"
)

// Info holds version information, normally injected through -ldflags.
type Info struct {
	// Version is the display string, e.g. "staffdb v1.2.0-4f9f297"
	Version string `json:"version"`

	// ReleaseVersion is the semantic version (e.g., "1.2.0")
	ReleaseVersion string `json:"release_version"`

	// BuildDate is the ISO 8601 build timestamp
	BuildDate string `json:"build_date"`

	// GitCommit is the short git commit hash
	GitCommit string `json:"git_commit"`
}

// Values overridden at link time
var (
	DefaultVersion        = "dev"
	DefaultReleaseVersion = "0.0.0"
	DefaultBuildDate      = "unknown"
	DefaultGitCommit      = "unknown"
)

// New creates an Info from the link-time defaults
func New() *Info {
	return &Info{
		Version:        DefaultVersion,
		ReleaseVersion: DefaultReleaseVersion,
		BuildDate:      DefaultBuildDate,
		GitCommit:      DefaultGitCommit,
	}
}

// GoVersion returns the Go runtime version
func GoVersion() string {
	return runtime.Version()
}

func (i *Info) String() string {
	return i.Version
}

// Full returns a detailed multi-line version string
func (i *Info) Full() string {
	return fmt.Sprintf(`%s
  Version:    %s
  Build Date: %s
  Git Commit: %s
  Go Version: %s`,
		i.Version,
		i.ReleaseVersion,
		i.BuildDate,
		i.GitCommit,
		GoVersion(),
	)
}

// Map returns version info as a map for JSON responses
func (i *Info) Map() map[string]string {
	return map[string]string{
		"version":         i.Version,
		"release_version": i.ReleaseVersion,
		"build_date":      i.BuildDate,
		"git_commit":      i.GitCommit,
		"go_version":      GoVersion(),
	}
}
