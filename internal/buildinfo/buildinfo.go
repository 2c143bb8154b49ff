// SPDX-License-Identifier: EPL-2.0

// Package buildinfo holds version information set at link time:
//
//	go build -ldflags "-X github.com/victorzappi/ar-audioengine/internal/buildinfo.Version=v0.1.0 \
//	    -X github.com/victorzappi/ar-audioengine/internal/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/victorzappi/ar-audioengine/internal/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
