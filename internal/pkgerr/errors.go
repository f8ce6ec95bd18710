// Package pkgerr provides sentinel-error wrapping used throughout the
// engine so every failure can be traced back to a stage boundary via
// errors.Is while still carrying the underlying cause.
package pkgerr

import "fmt"

// Wrap annotates cause with sentinel, preserving both in the error chain.
func Wrap(sentinel, cause error) error {
	if cause == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}

// Wrapf annotates a formatted message with sentinel.
func Wrapf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
