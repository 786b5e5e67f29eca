package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/worktimer/internal/cli"
	"github.com/xolan/worktimer/internal/cli/handlers"
)

var historyFlag bool

// monthCmd represents the month command
var monthCmd = &cobra.Command{
	Use:   "month [yyyy-mm]",
	Short: "Show the dashboard for a month",
	Long: `Show workday and weekend hours, the daily average, overtime and any
deficit against the 8 hour daily target for a month, compared with the
month before. The month defaults to the current one.

Examples:
  worktimer month                  Current month
  worktimer month last             Previous month
  worktimer month 2024-01 --history`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		month := ""
		if len(args) > 0 {
			month = args[0]
		}
		handlers.ShowMonth(cli.GetDeps(), month, historyFlag)
	},
}

// monthsCmd represents the months command
var monthsCmd = &cobra.Command{
	Use:   "months",
	Short: "List the months that have recorded data",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ListMonths(cli.GetDeps())
	},
}

// countdownCmd represents the countdown command
var countdownCmd = &cobra.Command{
	Use:   "countdown",
	Short: "Show when today's work ends",
	Long: `Show the projected end of today's work and the time left. When the
current month is behind the daily target, the standard end time is pushed
back by the outstanding hours.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowCountdown(cli.GetDeps())
	},
}

func init() {
	rootCmd.AddCommand(monthCmd)
	rootCmd.AddCommand(monthsCmd)
	rootCmd.AddCommand(countdownCmd)

	monthCmd.Flags().BoolVar(&historyFlag, "history", false, "List every recorded day of the month")
}
