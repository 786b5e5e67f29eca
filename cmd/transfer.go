package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/worktimer/internal/cli"
	"github.com/xolan/worktimer/internal/cli/handlers"
)

var (
	formatFlag string
	outputFlag string
	yesFlag    bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data to JSON or YAML",
	Long: `Export every time entry, day type override and the work hour settings.
Without --output the file is written to the current directory as
worktimer-data-YYYYMMDD.json (or .yaml). Use --output - for stdout.

Examples:
  worktimer export
  worktimer export --format yaml
  worktimer export --output backup.json
  worktimer export --output - | jq .`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ExportData(cli.GetDeps(), outputFlag, formatFlag)
	},
}

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all data with an export",
	Long: `Import a file written by 'worktimer export'. All entries, day types and
settings are replaced; the previous data is kept as a backup and can be
brought back with 'worktimer restore'. The format is taken from the file
extension unless --format is given.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ImportData(cli.GetDeps(), args[0], formatFlag, yesFlag)
	},
}

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all data and restore default settings",
	Long: `Delete every time entry and day type override and restore the default
work hour settings. The previous data is kept as a backup.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ResetData(cli.GetDeps(), yesFlag)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)

	exportCmd.Flags().StringVar(&formatFlag, "format", "", "Output format: json or yaml")
	exportCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file, or - for stdout")
	importCmd.Flags().StringVar(&formatFlag, "format", "", "Input format: json or yaml")
	importCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Skip confirmation prompt")
	resetCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Skip confirmation prompt")
}
