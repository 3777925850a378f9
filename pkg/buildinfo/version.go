// Package buildinfo carries the version stamp release builds inject.
//
// A release build overrides the defaults with ldflags:
//
//	go build -ldflags "\
//	    -X github.com/pplot/pplot/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/pplot/pplot/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/pplot/pplot/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Untagged builds report "dev" so a figure rendered from a working tree
// is never mistaken for a release artifact.
package buildinfo

import "fmt"

// Stamp values, overridden at link time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the stamp for plain output.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template, so `pplot --version`
// prints the full stamp instead of the bare version string.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
