// Package pkgcfg holds ambient, build-time and process-wide configuration:
// linker-injected version metadata and the quiet/debug/verbose toggles
// that gate logging verbosity across the engine, mirroring how the
// teacher daemon threads the same three flags from its CLI into its
// logger.
package pkgcfg
