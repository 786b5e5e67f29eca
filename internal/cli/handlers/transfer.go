package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/worktimer/internal/cli"
	"github.com/xolan/worktimer/internal/snapshot"
)

// ExportData writes every entry, override and the settings to a file, or
// to stdout when path is "-".
func ExportData(deps *cli.Deps, path, formatInput string) {
	if !deps.Ready() {
		return
	}

	format, err := exportFormat(path, formatInput)
	if err != nil {
		fail(deps, err)
		return
	}

	if path == "-" {
		if err := deps.Services.Transfer.Export(deps.Context(), deps.Stdout, format); err != nil {
			fail(deps, err)
		}
		return
	}

	written, err := deps.Services.Transfer.ExportFile(deps.Context(), path, format)
	if err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Exported data to %s\n", written)
}

func exportFormat(path, input string) (snapshot.Format, error) {
	if input == "" && path != "" && path != "-" {
		return snapshot.FormatFromPath(path), nil
	}
	return snapshot.ParseFormat(input)
}

// ImportData replaces all data with the document at path after asking for
// confirmation. The replaced data stays available as a backup.
func ImportData(deps *cli.Deps, path, formatInput string, yes bool) {
	if !deps.Ready() {
		return
	}

	if !yes && !confirm(deps, "Importing replaces all entries, day types and settings. Continue?") {
		_, _ = fmt.Fprintln(deps.Stdout, "Import cancelled")
		return
	}

	result, err := deps.Services.Transfer.ImportFile(deps.Context(), path, formatInput)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to import %s\n", path)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		if hint := hintFor(err); hint != "" {
			_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
		}
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Imported %d %s and %d day type %s\n",
		result.Entries, cli.Pluralize("entry", result.Entries),
		result.Overrides, cli.Pluralize("override", result.Overrides))
	if len(result.Months) > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "Months: %s\n", strings.Join(result.Months, ", "))
	}
	_, _ = fmt.Fprintln(deps.Stdout, "Previous data was backed up; undo with 'worktimer restore'")
}

// ResetData deletes all entries and day types and restores the default
// settings after asking for confirmation.
func ResetData(deps *cli.Deps, yes bool) {
	if !deps.Ready() {
		return
	}

	if !yes && !confirm(deps, "Delete all entries and day types and reset settings?") {
		_, _ = fmt.Fprintln(deps.Stdout, "Reset cancelled")
		return
	}

	if err := deps.Services.Transfer.Reset(deps.Context()); err != nil {
		fail(deps, err)
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, "All data reset")
	_, _ = fmt.Fprintln(deps.Stdout, "Previous data was backed up; undo with 'worktimer restore'")
}
