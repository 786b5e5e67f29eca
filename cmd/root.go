package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/xolan/worktimer/internal/cli"
	"github.com/xolan/worktimer/internal/cli/handlers"
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "worktimer",
	Short: "Track daily work hours against a monthly target",
	Long: `worktimer records when your work day starts and ends and turns it into
effective hours: breaks are subtracted, weekend work is capped and every
month is compared against an 8 hour daily target. When the month is behind,
today's end of work is pushed back to make up the deficit.

Usage:
  worktimer                                  Show today and the current month
  worktimer in / out                         Clock in or out now
  worktimer set [date] <start> <end>         Record a day (e.g., set 09:00 17:30)
  worktimer show [date]                      Show one day
  worktimer clear <date>                     Remove a day's entry
  worktimer month [yyyy-mm] --history        Monthly dashboard
  worktimer countdown                        Time left until the end of work
  worktimer daytype set <type> <date>...     Mark holidays and compensated workdays
  worktimer settings                         Standard hours, breaks, weekend cap
  worktimer export / import                  Back up or move your data (JSON, YAML)
  worktimer tui                              Interactive terminal UI

Dates: YYYY-MM-DD, DD/MM/YYYY, today, yesterday
Times: HH:mm (09:00) or 12-hour (1:30pm)`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			cli.LogLevel.Set(slog.LevelDebug)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if CheckTUIFlag(cmd) {
			return
		}
		handlers.ShowSummary(cli.GetDeps())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log debug output to stderr")
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"worktimer version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
