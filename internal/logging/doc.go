// Package logging is the build engine's Output Collector (C3): a
// thread-safe [log/slog] sink with scopes and levels, where every
// long-running operation (an image build, a fetch, a script phase, a
// packaging run, a signing step) is handed its own scoped logger.
//
// [Handler] wraps a pluggable [Formatter] and an output stream behind a
// mutex, both of which may be swapped after construction once CLI flags
// are parsed — mirroring the reconfigure-after-parse pattern used by the
// rest of the pack for its own logging setup.
package logging
