package todonext

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ncruces/go-strftime"
)

// ErrBackupExists is returned when the backup file exists and overwriting was
// not requested.
var ErrBackupExists = errors.New("backup file already exists")

// BackupPath returns the destination of a backup. An empty name selects a
// timestamped copy of the todo file name.
func (a *App) BackupPath(name string) string {
	if name == "" {
		name = strftime.Format("%Y-%m-%d_%H%M_", a.Now()) + filepath.Base(a.Store.Path())
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.Config.BackupPath(), name)
}

// Backup copies the todo file to dst.
func (a *App) Backup(dst string, overwrite bool) error {
	if _, err := os.Stat(dst); err == nil && !overwrite {
		return fmt.Errorf("%w: %s", ErrBackupExists, dst)
	}

	data, err := os.ReadFile(a.Store.Path())
	if err != nil {
		return fmt.Errorf("read todo file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}

	a.log.Info().Str("path", dst).Msg("todo file backed up")
	return nil
}
