package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const backupsDir = "backups"

// backupManifest describes one snapshot directory.
type backupManifest struct {
	ID        string   `json:"id"`
	CreatedAt string   `json:"created_at"`
	Tables    []string `json:"tables"`
}

// maybeBackup runs the one-time construction check: when auto-backup is
// enabled and the configured interval has elapsed since the last recorded
// backup (or none exists), snapshot all four tables. An unparseable
// last-backup date is treated as absent.
func (l *Ledger) maybeBackup() error {
	if !l.settings.AutoBackup {
		return nil
	}
	if l.settings.LastBackup != "" {
		last, err := time.Parse(DateLayout, l.settings.LastBackup)
		if err == nil {
			today, _ := time.Parse(DateLayout, l.today())
			elapsed := int(today.Sub(last).Hours() / 24)
			if elapsed < l.settings.BackupIntervalDays {
				return nil
			}
		}
	}
	_, err := l.Backup()
	return err
}

// Backup snapshots all four table documents into a dated directory under
// backups/, writes a manifest alongside them and records today as the last
// backup date. It returns the snapshot directory path. The copies are
// verbatim file copies; tables are flushed first so every document exists.
func (l *Ledger) Backup() (string, error) {
	for _, save := range []func() error{l.saveStudents, l.saveAttendance, l.saveReports, l.saveSettings} {
		if err := save(); err != nil {
			return "", err
		}
	}

	dir := filepath.Join(l.dir, backupsDir, l.today())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	tables := []string{studentsFile, attendanceFile, reportsFile, settingsFile}
	for _, file := range tables {
		data, err := os.ReadFile(filepath.Join(l.dir, file))
		if err != nil {
			return "", fmt.Errorf("failed to read %s for backup: %w", file, err)
		}
		if err := os.WriteFile(filepath.Join(dir, file), data, 0644); err != nil {
			return "", fmt.Errorf("failed to copy %s into backup: %w", file, err)
		}
	}

	manifest := backupManifest{
		ID:        uuid.NewString(),
		CreatedAt: l.timestamp(),
		Tables:    tables,
	}
	if err := saveDocument(filepath.Join(dir, "manifest.json"), manifest); err != nil {
		return "", err
	}

	l.settings.LastBackup = l.today()
	if err := l.saveSettings(); err != nil {
		return "", err
	}
	l.log.Info("backup created", zap.String("dir", dir), zap.String("id", manifest.ID))
	return dir, nil
}
