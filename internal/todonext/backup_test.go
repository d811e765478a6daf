package todonext

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackup(t *testing.T) {
	env := newTestApp(t, "a\nb\n")

	dst := env.app.BackupPath("")
	assert.Equal(t, filepath.Join(env.dir, "backup", "2026-10-17_1030_todo.txt"), dst)

	require.NoError(t, env.app.Backup(dst, false))
	assert.Equal(t, "a\nb\n", readFile(t, dst))

	err := env.app.Backup(dst, false)
	require.ErrorIs(t, err, ErrBackupExists)

	writeFile(t, env.app.Store.Path(), "c\n")
	require.NoError(t, env.app.Backup(dst, true))
	assert.Equal(t, "c\n", readFile(t, dst))
}

func TestBackupPath_Named(t *testing.T) {
	env := newTestApp(t, "")

	assert.Equal(t, filepath.Join(env.dir, "backup", "mine.txt"), env.app.BackupPath("mine.txt"))

	abs := filepath.Join(t.TempDir(), "abs.txt")
	assert.Equal(t, abs, env.app.BackupPath(abs))
}
