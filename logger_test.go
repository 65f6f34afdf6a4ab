package overlay

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestLoggerDefaultIsSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() = nil")
	}
	if l.Enabled(nil, slog.LevelError) {
		t.Error("default logger enabled at error level, want silent")
	}
}

func TestSetLoggerPropagatesToDrivers(t *testing.T) {
	drv := newStubDriver("logger-test")
	RegisterDriver(drv)
	t.Cleanup(func() {
		UnregisterDriver("logger-test")
		SetLogger(nil)
	})

	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	SetLogger(l)

	if Logger() != l {
		t.Error("Logger() does not return the configured logger")
	}
	if drv.logger != l {
		t.Error("logger not propagated to registered driver")
	}
}

func TestSetLoggerNilRestoresSilence(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	SetLogger(nil)
	if Logger().Enabled(nil, slog.LevelError) {
		t.Error("logger still enabled after SetLogger(nil)")
	}
}

func TestRegisterDriverReceivesCurrentLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	SetLogger(l)
	t.Cleanup(func() { SetLogger(nil) })

	drv := newStubDriver("logger-late")
	RegisterDriver(drv)
	t.Cleanup(func() { UnregisterDriver("logger-late") })

	if drv.logger != l {
		t.Error("driver registered after SetLogger did not receive the logger")
	}
}
