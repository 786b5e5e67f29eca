package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/worktimer/internal/cli"
	"github.com/xolan/worktimer/internal/cli/handlers"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for worktimer.

worktimer works without a configuration file. All settings have defaults:
  - storage_backend: jsonl (or sqlite)
  - data_dir: the config directory
  - hour_format: 24h (or 12h)
  - theme: dracula
  - log_level: error

Configuration file location:
  ~/.config/worktimer/config.toml    Linux/macOS
  %APPDATA%\worktimer\config.toml    Windows

Work hour settings (breaks, standard time, weekend cap) are stored with
your data; change them with 'worktimer settings'.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowConfig(cli.GetDeps())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sample config file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.InitConfig(cli.GetDeps())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}
