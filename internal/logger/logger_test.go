package logger

import (
	"log/slog"
	"testing"
)

func TestInit_SetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	Init(Options{IsDev: true})
	if Log == nil || slog.Default() != Log {
		t.Fatal("default logger not installed")
	}
	if !Log.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("development logger should log debug")
	}

	Init(Options{IsDev: false})
	if Log.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("production logger should not log debug")
	}
	Flush()
}
