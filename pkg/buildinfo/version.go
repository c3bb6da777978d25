// Package buildinfo exposes version metadata injected at build time.
package buildinfo

// Build metadata, overridden via ldflags:
//
//	go build -ldflags "-X github.com/jmbeek/cdt3d/pkg/buildinfo.Version=v1.2.3"
var (
	// Version is the semantic version of the binary.
	Version = "dev"
	// Commit is the git commit SHA the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)
