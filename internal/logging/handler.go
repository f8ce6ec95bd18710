package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// Formatter renders a single log record to bytes.
//
// Implementations must be safe to swap at runtime; Handler never calls a
// Formatter concurrently with itself changing.
type Formatter interface {
	Format(r slog.Record, groups []string, attrs []slog.Attr) []byte
}

// Handler is a [slog.Handler] whose level, formatter, and output stream can
// be reconfigured after construction. The CLI parses flags after the
// default logger already exists, so the handler itself is created once in
// main and tuned once flags are known.
type Handler struct {
	mu        *sync.Mutex
	level     *atomic.Int64
	formatter *atomicValue[Formatter]
	stream    *atomicValue[io.Writer]
	groups    []string
	attrs     []slog.Attr
}

type atomicValue[T any] struct {
	mu sync.Mutex
	v  T
}

func newAtomicValue[T any](v T) *atomicValue[T] {
	return &atomicValue[T]{v: v}
}

func (a *atomicValue[T]) Load() T {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.v
}

func (a *atomicValue[T]) Store(v T) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.v = v
}

// New creates a Handler at slog.LevelInfo, writing plain text to stderr.
func New() *Handler {
	h := &Handler{
		mu:        &sync.Mutex{},
		level:     &atomic.Int64{},
		formatter: newAtomicValue[Formatter](NewTextFormatter(false)),
		stream:    newAtomicValue[io.Writer](io.Writer(os.Stderr)),
	}
	h.level.Store(int64(slog.LevelInfo))
	return h
}

// SetLevel changes the minimum level of records that are emitted.
func (h *Handler) SetLevel(level slog.Level) {
	h.level.Store(int64(level))
}

// SetFormatter swaps the formatter used to render records.
func (h *Handler) SetFormatter(f Formatter) {
	h.formatter.Store(f)
}

// SetStream redirects output to w.
func (h *Handler) SetStream(w io.Writer) {
	h.stream.Store(w)
}

// Flush is a no-op hook kept for symmetry with buffered formatters; the
// text formatter writes synchronously so there is nothing to drain.
func (h *Handler) Flush() {}

// Enabled reports whether level is at or above the handler's current level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return int64(level) >= h.level.Load()
}

// Handle renders and writes a single record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	attrs := make([]slog.Attr, 0, r.NumAttrs()+len(h.attrs))
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})

	line := h.formatter.Load().Format(r, h.groups, attrs)

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.stream.Load().Write(line)
	return err
}

// WithAttrs returns a handler that prepends fixed attrs to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

// WithGroup returns a handler scoped under the named group, e.g. one handed
// out per image build or per packaging run.
func (h *Handler) WithGroup(name string) slog.Handler {
	next := *h
	next.groups = append(append([]string{}, h.groups...), name)
	return &next
}
