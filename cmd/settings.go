package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/worktimer/internal/cli"
	"github.com/xolan/worktimer/internal/cli/handlers"
)

var (
	standardFlag        string
	workdayBreaksFlag   []string
	weekendBreaksFlag   []string
	maxWeekendHoursFlag float64
)

// settingsCmd represents the settings command
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the work hour settings",
	Long: `Show the standard work time, the breaks subtracted on workdays and
weekends, and the daily cap on weekend hours.

Examples:
  worktimer settings
  worktimer settings set --standard 08:30-17:00
  worktimer settings set --workday-break 12:00-13:00 --workday-break 17:00-17:30
  worktimer settings set --weekend-break ""           Remove all weekend breaks
  worktimer settings set --max-weekend-hours 6
  worktimer settings reset`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowSettings(cli.GetDeps())
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change work hour settings",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.UpdateSettings(cli.GetDeps(), settingsChanges(cmd))
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default work hour settings",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ResetSettings(cli.GetDeps())
	},
}

// settingsChanges collects only the flags that were given.
func settingsChanges(cmd *cobra.Command) handlers.SettingsChanges {
	var c handlers.SettingsChanges
	flags := cmd.Flags()
	if flags.Changed("standard") {
		c.Standard = standardFlag
	}
	if flags.Changed("workday-break") {
		c.WorkdayBreaks = append([]string{}, workdayBreaksFlag...)
	}
	if flags.Changed("weekend-break") {
		c.WeekendBreaks = append([]string{}, weekendBreaksFlag...)
	}
	if flags.Changed("max-weekend-hours") {
		v := maxWeekendHoursFlag
		c.MaxWeekendHours = &v
	}
	return c
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)

	settingsSetCmd.Flags().StringVar(&standardFlag, "standard", "", "Standard work time (HH:mm-HH:mm)")
	settingsSetCmd.Flags().StringArrayVar(&workdayBreaksFlag, "workday-break", nil, "Workday break (HH:mm-HH:mm), repeatable; replaces all workday breaks")
	settingsSetCmd.Flags().StringArrayVar(&weekendBreaksFlag, "weekend-break", nil, "Weekend break (HH:mm-HH:mm), repeatable; replaces all weekend breaks")
	settingsSetCmd.Flags().Float64Var(&maxWeekendHoursFlag, "max-weekend-hours", 0, "Cap on effective hours per weekend day")
}
