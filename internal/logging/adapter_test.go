package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewSlogAdapterNilUsesDefault(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	if adapter == nil || adapter.Logger() == nil {
		t.Fatal("NewSlogAdapter(nil) must fall back to slog.Default()")
	}
}

func TestSlogAdapterWritesThrough(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	adapter := NewSlogAdapter(logger)

	adapter.Debug("debug msg", "k", "v")
	adapter.Info("info msg", "k", "v")
	adapter.Warn("warn msg", "k", "v")
	adapter.Error("error msg", "k", "v")

	out := buf.String()
	for _, want := range []string{"debug msg", "info msg", "warn msg", "error msg", "k=v"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestDefaultLogger(t *testing.T) {
	if DefaultLogger() == nil {
		t.Error("DefaultLogger returned nil")
	}
}
