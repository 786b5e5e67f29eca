package handlers

import (
	"fmt"

	"github.com/xolan/worktimer/internal/cli"
)

// ShowConfig displays the current configuration
func ShowConfig(deps *cli.Deps) {
	if !deps.Ready() {
		return
	}

	cfg := deps.Services.Config.Get()
	path := deps.Services.Config.GetPath()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration:")
	_, _ = fmt.Fprintln(deps.Stdout, rule("="))
	_, _ = fmt.Fprintf(deps.Stdout, "Config file: %s\n", path)
	if deps.Services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: File exists")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Using defaults (no config file)")
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Storage: %s\n", deps.Services.Storage.Describe())
	_, _ = fmt.Fprintln(deps.Stdout, rule("-"))
	_, _ = fmt.Fprintf(deps.Stdout, "storage_backend: %s\n", cfg.StorageBackend)
	if cfg.DataDir == "" {
		_, _ = fmt.Fprintln(deps.Stdout, "data_dir:        (config directory)")
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "data_dir:        %s\n", cfg.DataDir)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "hour_format:     %s\n", cfg.HourFormat)
	_, _ = fmt.Fprintf(deps.Stdout, "theme:           %s\n", cfg.Theme)
	_, _ = fmt.Fprintf(deps.Stdout, "log_level:       %s\n", cfg.LogLevel)
}

// InitConfig creates a sample config file
func InitConfig(deps *cli.Deps) {
	if !deps.Ready() {
		return
	}

	err := deps.Services.Config.Init()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	path := deps.Services.Config.GetPath()
	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", path)
	_, _ = fmt.Fprintln(deps.Stdout, "Edit this file to customize your settings.")
}
