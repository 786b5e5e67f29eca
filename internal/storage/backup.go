package storage

import (
	"fmt"
	"io"
	"os"
)

const (
	// BackupSuffix is the file extension for backup files
	BackupSuffix = ".bak"
	// MaxBackupCount is the maximum number of backup files to keep
	MaxBackupCount = 3
)

// GetBackupPath returns the path to a backup of storagePath with the given
// rotation number. Lower numbers are more recent (.bak.1 is the latest).
func GetBackupPath(storagePath string, n int) string {
	return fmt.Sprintf("%s%s.%d", storagePath, BackupSuffix, n)
}

// rotateBackups shifts existing backup files to make room for a new backup.
// It deletes the oldest backup, then renames .bak.2 -> .bak.3 and
// .bak.1 -> .bak.2. Missing files are skipped.
func rotateBackups(storagePath string) error {
	oldestPath := GetBackupPath(storagePath, MaxBackupCount)
	if err := os.Remove(oldestPath); err != nil && !os.IsNotExist(err) {
		return err
	}

	for i := MaxBackupCount - 1; i >= 1; i-- {
		currentPath := GetBackupPath(storagePath, i)
		nextPath := GetBackupPath(storagePath, i+1)
		if err := os.Rename(currentPath, nextPath); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

// CreateBackup rotates existing backups and copies the storage file to .bak.1.
// If the storage file doesn't exist, no backup is created and no error is returned.
func CreateBackup(storagePath string) error {
	if _, err := os.Stat(storagePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := rotateBackups(storagePath); err != nil {
		return err
	}

	return copyFile(storagePath, GetBackupPath(storagePath, 1))
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = sourceFile.Close() }()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		_ = destFile.Close()
		return err
	}
	return destFile.Close()
}

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Number int    // The backup number (1 is the most recent)
	Path   string // The full path to the backup file
	Size   int64  // Size in bytes
}

// ListBackups returns the existing backups of storagePath, most recent first.
func ListBackups(storagePath string) ([]BackupInfo, error) {
	backups := []BackupInfo{}

	for i := 1; i <= MaxBackupCount; i++ {
		backupPath := GetBackupPath(storagePath, i)
		info, err := os.Stat(backupPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		backups = append(backups, BackupInfo{
			Number: i,
			Path:   backupPath,
			Size:   info.Size(),
		})
	}

	return backups, nil
}

// RestoreBackup copies backup backupNum over storagePath. The current state
// is backed up first, so a restore can itself be undone by restoring .bak.1.
func RestoreBackup(storagePath string, backupNum int) error {
	if backupNum < 1 || backupNum > MaxBackupCount {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", backupNum, MaxBackupCount)
	}

	backupPath := GetBackupPath(storagePath, backupNum)
	if _, err := os.Stat(backupPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup %d does not exist", backupNum)
		}
		return err
	}

	// Keep the chosen backup's content before rotation moves it.
	tmpPath := storagePath + ".restore"
	if err := copyFile(backupPath, tmpPath); err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmpPath) }()

	if err := CreateBackup(storagePath); err != nil {
		return err
	}

	return copyFile(tmpPath, storagePath)
}
