// Package buildinfo exposes mossim's own build identity, set at link time
// via -ldflags. Not a spec.md module; ambient tooling for cmd/mossim's
// --version flag and `version` subcommand.
package buildinfo

// Version is set at build time via -ldflags (e.g.
// `-X mos/internal/buildinfo.Version=v0.3.0`).
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Date is set at build time via -ldflags.
var Date = "unknown"

// Short returns a compact build identifier for mossim's --version flag.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Full returns Short() plus the commit and build date when either is known,
// for mossim's `version` subcommand.
func Full() string {
	s := Short()
	if Commit != "unknown" || Date != "unknown" {
		s += " (" + Commit + ", " + Date + ")"
	}
	return s
}
