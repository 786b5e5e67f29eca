package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/worktimer/internal/config"
	"github.com/xolan/worktimer/internal/service"
	"github.com/xolan/worktimer/internal/storage"
)

func newTestServices(t *testing.T) *service.Services {
	t.Helper()
	dir := t.TempDir()
	logger := NewLogger(&bytes.Buffer{}, slog.LevelError)
	store := storage.NewJSONLStore(filepath.Join(dir, storage.DataFile), logger)
	return service.NewServicesWithStore(store, filepath.Join(dir, config.ConfigFile), config.DefaultConfig(), logger)
}

func TestNewDeps(t *testing.T) {
	cfg := config.DefaultConfig()
	services := newTestServices(t)

	deps := NewDeps(services, cfg)
	if deps == nil {
		t.Fatal("expected non-nil deps")
	}
	if deps.Services != services {
		t.Error("expected services to match")
	}
	if deps.Stdout == nil {
		t.Error("expected non-nil Stdout")
	}
	if deps.Stderr == nil {
		t.Error("expected non-nil Stderr")
	}
	if deps.Stdin == nil {
		t.Error("expected non-nil Stdin")
	}
	if deps.Exit == nil {
		t.Error("expected non-nil Exit")
	}
	if deps.Logger != services.Logger {
		t.Error("expected logger to come from services")
	}
}

func TestDeps_Context(t *testing.T) {
	deps := &Deps{}
	if deps.Context() == nil {
		t.Fatal("expected a background context when Ctx is nil")
	}

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	deps.Ctx = ctx
	if deps.Context() != ctx {
		t.Error("expected Context() to return Ctx")
	}
}

func TestDeps_Ready(t *testing.T) {
	stderr := &bytes.Buffer{}
	exitCode := 0
	deps := &Deps{
		Stderr:  stderr,
		Exit:    func(code int) { exitCode = code },
		InitErr: errors.New("unknown storage backend 'mongo'"),
	}

	if deps.Ready() {
		t.Fatal("expected Ready() to be false without services")
	}
	if exitCode != 1 {
		t.Errorf("exit code = %d, want 1", exitCode)
	}
	if !strings.Contains(stderr.String(), "Failed to open data store") {
		t.Errorf("expected error message, got %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "mongo") {
		t.Errorf("expected details, got %q", stderr.String())
	}

	deps.Services = newTestServices(t)
	if !deps.Ready() {
		t.Error("expected Ready() to be true with services")
	}
}

func TestSetDeps(t *testing.T) {
	original := deps
	defer SetDeps(original)

	newDeps := NewDeps(newTestServices(t), config.DefaultConfig())
	SetDeps(newDeps)

	if GetDeps() != newDeps {
		t.Error("expected GetDeps to return the set deps")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Errorf("expected warn message, got %q", out)
	}
}

func TestNewLogger_LevelVar(t *testing.T) {
	var buf bytes.Buffer
	level := new(slog.LevelVar)
	level.Set(slog.LevelError)
	logger := NewLogger(&buf, level)

	logger.Debug("before")
	level.Set(slog.LevelDebug)
	logger.Debug("after")

	if strings.Contains(buf.String(), "before") || !strings.Contains(buf.String(), "after") {
		t.Errorf("expected only the message logged after lowering the level, got %q", buf.String())
	}
}
