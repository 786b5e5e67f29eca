package handlers

import (
	"fmt"
	"strconv"

	"github.com/xolan/worktimer/internal/cli"
	"github.com/xolan/worktimer/internal/storage"
)

// ValidateStorage reports on the health of the data file.
func ValidateStorage(deps *cli.Deps) {
	if !deps.Ready() {
		return
	}

	health, err := deps.Services.Storage.Validate(deps.Context())
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to validate storage: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Storage: %s\n", deps.Services.Storage.Describe())
	_, _ = fmt.Fprintln(deps.Stdout, rule("="))
	_, _ = fmt.Fprintf(deps.Stdout, "Total records:     %d\n", health.TotalLines)
	_, _ = fmt.Fprintf(deps.Stdout, "Valid records:     %d\n", health.ValidRecords)
	_, _ = fmt.Fprintf(deps.Stdout, "Corrupted records: %d\n", health.CorruptedRecords)

	if len(health.Warnings) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout, rule("="))
		_, _ = fmt.Fprintln(deps.Stdout, "Corrupted records:")
		for _, warning := range health.Warnings {
			_, _ = fmt.Fprintln(deps.Stdout, cli.FormatCorruptionWarning(warning))
		}
	}

	_, _ = fmt.Fprintln(deps.Stdout, rule("="))
	if health.CorruptedRecords == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: ✓ Storage is healthy")
	} else {
		_, _ = fmt.Fprintf(deps.Stderr, "Status: ⚠ Storage has %d corrupted record(s)\n", health.CorruptedRecords)
	}
}

// RestoreBackup lists the backups and restores the one named in args,
// the most recent by default.
func RestoreBackup(deps *cli.Deps, args []string) {
	if !deps.Ready() {
		return
	}

	backups, err := deps.Services.Storage.ListBackups()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to list backups: %v\n", err)
		deps.Exit(1)
		return
	}

	if len(backups) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No backups available")
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Available backups:")
	for _, backup := range backups {
		if backup.Number == 1 {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s (most recent)\n", backup.Number, backup.Path)
		} else {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s\n", backup.Number, backup.Path)
		}
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	backupNum := 1
	if len(args) > 0 {
		num, err := strconv.Atoi(args[0])
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid backup number '%s'\n", args[0])
			deps.Exit(1)
			return
		}
		if num < 1 || num > storage.MaxBackupCount {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup number must be between 1 and %d (got %d)\n", storage.MaxBackupCount, num)
			deps.Exit(1)
			return
		}
		backupNum = num
	}

	backupExists := false
	for _, backup := range backups {
		if backup.Number == backupNum {
			backupExists = true
			break
		}
	}
	if !backupExists {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup %d does not exist\n", backupNum)
		deps.Exit(1)
		return
	}

	if err := deps.Services.Storage.Restore(deps.Context(), backupNum); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to restore backup: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Successfully restored from backup %d\n", backupNum)
}
