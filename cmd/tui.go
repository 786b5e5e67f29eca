package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/worktimer/internal/cli"
	"github.com/xolan/worktimer/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	Long: `Launch the interactive Terminal User Interface for worktimer.

The TUI shows today's countdown live and lets you clock in and out, browse
months and mark day types without leaving the terminal.

Views available:
  - Today: Countdown to the end of work, clock in/out, edit today's entry
  - Month: Dashboard and day-by-day list, change day types
  - Settings: Standard work time, breaks and the weekend cap
  - Config: Config file, storage and color theme

Keyboard shortcuts:
  - Tab/Shift+Tab: Navigate between views
  - 1-4: Jump to specific view
  - j/k or arrows: Navigate within lists
  - ?: Show help
  - q: Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI(cli.GetDeps())
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	// --tui on the root command is a shortcut for "worktimer tui"
	rootCmd.PersistentFlags().Bool("tui", false, "Launch interactive terminal UI")
}

// runTUI runs the TUI application on the shared services
func runTUI(deps *cli.Deps) {
	if !deps.Ready() {
		return
	}
	defer func() {
		if err := deps.Services.Close(); err != nil {
			deps.Logger.Warn("failed to close store", "error", err)
		}
	}()

	if err := tui.Run(deps.Services); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to run TUI")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
	}
}

// CheckTUIFlag checks if the --tui flag is set and runs the TUI if so.
// Returns true if the TUI was launched, false otherwise.
func CheckTUIFlag(cmd *cobra.Command) bool {
	tuiFlag, _ := cmd.Root().PersistentFlags().GetBool("tui")
	if tuiFlag {
		runTUI(cli.GetDeps())
		return true
	}
	return false
}
