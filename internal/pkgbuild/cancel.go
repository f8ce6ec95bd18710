package pkgbuild

import "sync/atomic"

// Cancel is the single process-wide cancellation flag a SIGINT handler
// clears. Orchestrators check it at every stage boundary; it is not
// itself a context.Context because long-running streams are not
// interrupted mid-chunk, only at the next boundary check.
type Cancel struct {
	ok atomic.Bool
}

// NewCancel returns a handle that is initially not cancelled.
func NewCancel() *Cancel {
	c := &Cancel{}
	c.ok.Store(true)
	return c
}

// Clear marks the handle cancelled.
func (c *Cancel) Clear() {
	c.ok.Store(false)
}

// Cancelled reports whether the handle has been cleared.
func (c *Cancel) Cancelled() bool {
	return !c.ok.Load()
}
