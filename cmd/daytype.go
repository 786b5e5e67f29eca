package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/worktimer/internal/cli"
	"github.com/xolan/worktimer/internal/cli/handlers"
)

// daytypeCmd represents the daytype command
var daytypeCmd = &cobra.Command{
	Use:   "daytype",
	Short: "Manage holidays and compensated workdays",
	Long: `Override how dates are classified. By default Monday to Friday are
workdays and Saturday and Sunday are weekends.

Day types:
  workday        Counts toward the daily target
  weekend        Hours are capped and count as overtime
  holiday        Like a weekend, on a weekday
  restday-work   A weekend day worked as a regular workday

Examples:
  worktimer daytype set holiday 2024-01-01
  worktimer daytype set restday-work 2024-02-04 2024-02-18
  worktimer daytype list 2024-02
  worktimer daytype reset 2024-01-01`,
}

var daytypeSetCmd = &cobra.Command{
	Use:   "set <type> [date...]",
	Short: "Set the day type of one or more dates (default: today)",
	Args:  cobra.MinimumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return []string{"workday", "weekend", "holiday", "restday-work"}, cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		handlers.SetDayType(cli.GetDeps(), args[0], args[1:])
	},
}

var daytypeListCmd = &cobra.Command{
	Use:   "list [yyyy-mm]",
	Short: "List the day type overrides of a month",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		month := ""
		if len(args) > 0 {
			month = args[0]
		}
		handlers.ListDayTypes(cli.GetDeps(), month)
	},
}

var daytypeResetCmd = &cobra.Command{
	Use:   "reset [date...]",
	Short: "Remove day type overrides (default: today)",
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ResetDayTypes(cli.GetDeps(), args)
	},
}

func init() {
	rootCmd.AddCommand(daytypeCmd)
	daytypeCmd.AddCommand(daytypeSetCmd)
	daytypeCmd.AddCommand(daytypeListCmd)
	daytypeCmd.AddCommand(daytypeResetCmd)
}
