// Package version carries build metadata injected via -ldflags.
package version

var (
	// Version is the release tag.
	Version = "0.2.0"
	// Commit is the short git hash of the build.
	Commit = ""
	// Date is the build date.
	Date = ""
)
