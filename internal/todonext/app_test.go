package todonext

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/todonext/internal/core/config"
	"github.com/colonyops/todonext/internal/core/todolist"
	"github.com/colonyops/todonext/pkg/executil"
)

var fixedNow = time.Date(2026, 10, 17, 10, 30, 0, 0, time.Local)

type testEnv struct {
	app  *App
	dir  string
	exec *executil.RecordingExecutor
}

func newTestApp(t *testing.T, content string, mutate ...func(*config.Config)) testEnv {
	t.Helper()

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.DataDir = dir
	cfg.TodoFile = filepath.Join(dir, "todo.txt")
	cfg.IDSupport = false
	cfg.Editor = "myeditor --wait"
	cfg.Archive.FilenameScheme = "%Y/%m.txt"
	cfg.Archive.UnsortedFilename = "unsorted.txt"
	for _, m := range mutate {
		m(&cfg)
	}

	if content != "" {
		writeFile(t, cfg.TodoFile, content)
	}

	rec := &executil.RecordingExecutor{}
	app := New(&cfg, zerolog.Nop(),
		WithClock(func() time.Time { return fixedNow }),
		WithExecutor(rec),
	)
	return testEnv{app: app, dir: dir, exec: rec}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWithList_WritesChanges(t *testing.T) {
	env := newTestApp(t, "")

	err := env.app.WithList(context.Background(), func(l *todolist.List) error {
		_, err := l.Add("Buy milk @store")
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, "Buy milk @store created:2026-10-17_10:30\n", readFile(t, env.app.Store.Path()))
}

func TestWithList_ErrorSuppressesWrite(t *testing.T) {
	env := newTestApp(t, "keep me\n")
	boom := errors.New("boom")

	err := env.app.WithList(context.Background(), func(l *todolist.List) error {
		_, err := l.Add("never written")
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.Equal(t, "keep me\n", readFile(t, env.app.Store.Path()))
}

func TestWithList_UnchangedListNotWritten(t *testing.T) {
	env := newTestApp(t, "b\na\n")

	err := env.app.WithList(context.Background(), func(l *todolist.List) error {
		_, ok := l.Get("0")
		assert.True(t, ok)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, "b\na\n", readFile(t, env.app.Store.Path()))
}

func TestListOptions(t *testing.T) {
	env := newTestApp(t, "", func(c *config.Config) {
		c.IDSupport = true
		c.Sort = false
	})

	opts := env.app.ListOptions()
	assert.True(t, opts.Item.IDSupport)
	assert.False(t, opts.Sort)
	assert.Equal(t, env.dir, opts.Item.BaseDir)
	assert.Equal(t, fixedNow, opts.Item.Dates.Now())

	archive := env.app.archiveOptions()
	assert.False(t, archive.Item.IDSupport)
	assert.False(t, archive.Sort)
}

func TestDoctorService_RunChecks(t *testing.T) {
	env := newTestApp(t, "task\n")

	results := env.app.Doctor.RunChecks(context.Background(), "", false)

	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"Configuration", "Todo List", "Archive", "Tools"}, names)
}
