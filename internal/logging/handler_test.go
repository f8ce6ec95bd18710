package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestHandlerEnabledRespectsLevel(t *testing.T) {
	h := New()
	h.SetLevel(slog.LevelWarn)

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("info should not be enabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("error should be enabled at warn level")
	}
}

func TestHandlerWritesToConfiguredStream(t *testing.T) {
	h := New()
	var buf bytes.Buffer
	h.SetStream(&buf)

	logger := slog.New(h)
	logger.Info("build started", "image", "debian12")

	out := buf.String()
	if !strings.Contains(out, "build started") {
		t.Fatalf("output %q missing message", out)
	}
	if !strings.Contains(out, "image=debian12") {
		t.Fatalf("output %q missing attr", out)
	}
}

func TestHandlerWithGroupScopesOutput(t *testing.T) {
	h := New()
	var buf bytes.Buffer
	h.SetStream(&buf)

	logger := slog.New(h.WithGroup("build").WithGroup("rpm"))
	logger.Info("staging")

	out := buf.String()
	if !strings.Contains(out, "[build.rpm]") {
		t.Fatalf("output %q missing scoped group prefix", out)
	}
}

func TestHandlerWithAttrsPrependsFixedAttrs(t *testing.T) {
	h := New()
	var buf bytes.Buffer
	h.SetStream(&buf)

	logger := slog.New(h.WithAttrs([]slog.Attr{slog.String("pid", "123")}))
	logger.Info("started")

	out := buf.String()
	if !strings.Contains(out, "pid=123") {
		t.Fatalf("output %q missing fixed attr", out)
	}
}

func TestTextFormatterColorWrapsLevel(t *testing.T) {
	f := NewTextFormatter(true)
	r := slog.Record{Level: slog.LevelError, Message: "boom"}
	out := string(f.Format(r, nil, nil))
	if !strings.Contains(out, "\x1b[31m") {
		t.Fatalf("colored formatter output %q missing ANSI escape", out)
	}
}

func TestTextFormatterNoColorOmitsEscapes(t *testing.T) {
	f := NewTextFormatter(false)
	r := slog.Record{Level: slog.LevelInfo, Message: "ok"}
	out := string(f.Format(r, nil, nil))
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("uncolored formatter output %q should not contain ANSI escapes", out)
	}
}
