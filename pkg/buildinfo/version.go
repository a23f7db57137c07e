// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/memlayout/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/memlayout/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/memlayout/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/memlayout
package buildinfo

import (
	"fmt"

	"github.com/matzehuels/memlayout/pkg/rcnet"
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// FileFormat renders the container version this build writes, e.g. "1.1".
func FileFormat() string {
	return fmt.Sprintf("%d.%d", rcnet.FileVersion>>16, rcnet.FileVersion&0xFFFF)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\nfile format: %s\n",
		Version, Commit, Date, FileFormat())
}
