package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/xolan/worktimer/internal/config"
	"github.com/xolan/worktimer/internal/service"
)

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	// Services is nil when they could not be created; InitErr says why.
	Services *service.Services
	InitErr  error

	Config config.Config
	Logger *slog.Logger
	Ctx    context.Context
}

// DefaultDeps creates a new Deps with default values
func DefaultDeps() *Deps {
	cfg := config.DefaultConfig()
	configPath, err := config.GetConfigPath()
	if err == nil {
		if loadedCfg, err := config.LoadOrDefault(configPath); err == nil {
			cfg = loadedCfg
		}
	}

	LogLevel.Set(cfg.SlogLevel())
	logger := NewLogger(os.Stderr, LogLevel)
	services, err := service.NewServicesWithConfig(configPath, cfg, logger)

	d := NewDeps(services, cfg)
	d.Logger = logger
	d.InitErr = err
	return d
}

// NewDeps creates a new Deps with the given services
func NewDeps(services *service.Services, cfg config.Config) *Deps {
	logger := slog.Default()
	if services != nil && services.Logger != nil {
		logger = services.Logger
	}
	return &Deps{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Stdin:    os.Stdin,
		Exit:     os.Exit,
		Services: services,
		Config:   cfg,
		Logger:   logger,
		Ctx:      context.Background(),
	}
}

// Context returns the context for service calls.
func (d *Deps) Context() context.Context {
	if d.Ctx == nil {
		return context.Background()
	}
	return d.Ctx
}

// Ready reports whether services are available, printing the reason and
// exiting with status 1 when they are not.
func (d *Deps) Ready() bool {
	if d.Services != nil {
		return true
	}
	_, _ = fmt.Fprintln(d.Stderr, "Error: Failed to open data store")
	if d.InitErr != nil {
		_, _ = fmt.Fprintf(d.Stderr, "Details: %v\n", d.InitErr)
	}
	_, _ = fmt.Fprintln(d.Stderr, "Hint: Check storage_backend and data_dir with 'worktimer config'")
	d.Exit(1)
	return false
}

// LogLevel is the level of the default logger. The --verbose flag lowers
// it to debug after the config has been read.
var LogLevel = new(slog.LevelVar)

// NewLogger returns a text logger writing to w at the given level.
func NewLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Global deps instance for CLI
var deps *Deps

// SetDeps sets the global deps (for testing)
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets to default deps
func ResetDeps() {
	deps = DefaultDeps()
}

// GetDeps returns the current deps, creating the defaults on first use.
func GetDeps() *Deps {
	if deps == nil {
		deps = DefaultDeps()
	}
	return deps
}
