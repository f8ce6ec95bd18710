package pkgbuild

import "errors"

var (
	// ErrBuild wraps any stage failure; the orchestrator annotates it with
	// the stage name at each boundary.
	ErrBuild = errors.New("build error")
	// ErrCancelled is returned when a stage boundary observes the
	// cancellation handle cleared.
	ErrCancelled = errors.New("build cancelled")
)
