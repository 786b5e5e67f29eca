package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/worktimer/internal/cli"
	"github.com/xolan/worktimer/internal/cli/handlers"
	"github.com/xolan/worktimer/internal/entry"
)

var forceFlag bool

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set [date] <start> [end]",
	Short: "Record the start and end of a work day",
	Long: `Record when a work day started and ended. The date defaults to today.
An existing entry for the date is replaced.

Examples:
  worktimer set 09:00 17:30               Today
  worktimer set 09:00                     Today, end not known yet
  worktimer set yesterday 8:45 5:15pm     Yesterday, mixing 24h and 12h input
  worktimer set 2024-01-15 09:00 18:00    A specific date
  worktimer set 2024-01-15 22:00 02:00    A shift ending after midnight`,
	Args: cobra.RangeArgs(1, 3),
	Run: func(cmd *cobra.Command, args []string) {
		date, start, end := splitSetArgs(args)
		handlers.SetEntry(cli.GetDeps(), date, start, end)
	},
}

// splitSetArgs maps "start", "start end", "date start" and
// "date start end". With two arguments the first is a date unless it
// reads as a time.
func splitSetArgs(args []string) (date, start, end string) {
	switch len(args) {
	case 1:
		return "", args[0], ""
	case 2:
		if _, err := entry.ParseClock(args[0]); err != nil {
			return args[0], args[1], ""
		}
		return "", args[0], args[1]
	}
	return args[0], args[1], args[2]
}

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear <date>",
	Short: "Remove the entry for a date",
	Long: `Remove the recorded start and end of a date. Day type overrides are kept.

Examples:
  worktimer clear today
  worktimer clear 2024-01-15`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ClearEntry(cli.GetDeps(), args[0])
	},
}

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [date]",
	Short: "Show the entry and hours of a date",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		date := ""
		if len(args) > 0 {
			date = args[0]
		}
		handlers.ShowDay(cli.GetDeps(), date)
	},
}

// inCmd represents the in command
var inCmd = &cobra.Command{
	Use:   "in",
	Short: "Clock in now",
	Long: `Record the current time as the start of today's work.
Use --force to start over when today already has a start time.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ClockIn(cli.GetDeps(), forceFlag)
	},
}

// outCmd represents the out command
var outCmd = &cobra.Command{
	Use:   "out",
	Short: "Clock out now",
	Long: `Record the current time as the end of today's work. Shortly after
midnight, an entry left open yesterday is closed instead.
Use --force to overwrite an end time that is already recorded.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ClockOut(cli.GetDeps(), forceFlag)
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(inCmd)
	rootCmd.AddCommand(outCmd)

	inCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Replace today's entry")
	outCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Overwrite the recorded end time")
}
