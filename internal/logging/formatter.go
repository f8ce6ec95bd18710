package logging

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"
)

// TextFormatter renders records as "time level [groups] msg key=value...",
// with ANSI color applied to the level token when color is enabled.
type TextFormatter struct {
	color   bool
	verbose bool
}

// NewTextFormatter creates a formatter. color controls whether level
// tokens are wrapped in ANSI escapes; callers typically gate this on
// whether the destination stream is an interactive terminal.
func NewTextFormatter(color bool) *TextFormatter {
	return &TextFormatter{color: color}
}

// SetVerbose toggles inclusion of the record's source location.
func (f *TextFormatter) SetVerbose(v bool) {
	f.verbose = v
}

var levelColor = map[slog.Level]string{
	slog.LevelDebug: "\x1b[36m",
	slog.LevelInfo:  "\x1b[32m",
	slog.LevelWarn:  "\x1b[33m",
	slog.LevelError: "\x1b[31m",
}

func (f *TextFormatter) Format(r slog.Record, groups []string, attrs []slog.Attr) []byte {
	var b strings.Builder

	b.WriteString(r.Time.Format(time.RFC3339))
	b.WriteByte(' ')

	level := r.Level.String()
	if f.color {
		if c, ok := levelColor[r.Level]; ok {
			level = c + level + "\x1b[0m"
		}
	}
	b.WriteString(level)
	b.WriteByte(' ')

	if len(groups) > 0 {
		b.WriteByte('[')
		b.WriteString(strings.Join(groups, "."))
		b.WriteString("] ")
	}

	b.WriteString(r.Message)

	for _, a := range attrs {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value.Any())
	}

	if f.verbose && r.PC != 0 {
		fr, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		fmt.Fprintf(&b, " src=%s:%d", fr.File, fr.Line)
	}

	b.WriteByte('\n')
	return []byte(b.String())
}
