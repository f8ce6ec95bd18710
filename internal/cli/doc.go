// Package cli is the external-collaborator CLI surface described in
// §6: parses flags with [kong], configures the global logger, and
// drives the build engine's pkgbuild/pkgrecipe/pkgimage/pkgstate
// packages from a handful of subcommands.
//
// Flags accepted at the root:
//
//	-q, --quiet     Suppress informational output.
//	-v, --verbose   Enable verbose output.
//	-d, --debug     Enable debug output.
//	-r, --runtime   Override the container runtime socket URI.
//
// Subcommands: build, list, clean-cache, new, edit, version.
package cli
