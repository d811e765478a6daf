package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/todonext/internal/core/config"
	"github.com/colonyops/todonext/internal/todonext"
	"github.com/colonyops/todonext/pkg/executil"
)

var fixedNow = time.Date(2026, 10, 17, 10, 30, 0, 0, time.Local)

type harness struct {
	dir   string
	cfg   *config.Config
	exec  *executil.RecordingExecutor
	flags *Flags
	stdin io.Reader
}

func newHarness(t *testing.T, content string) *harness {
	t.Helper()

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.DataDir = dir
	cfg.TodoFile = filepath.Join(dir, "todo.txt")
	cfg.IDSupport = false
	cfg.Editor = "myeditor"
	cfg.Archive.FilenameScheme = "%Y/%m.txt"
	cfg.Archive.UnsortedFilename = "unsorted.txt"

	if content != "" {
		require.NoError(t, os.WriteFile(cfg.TodoFile, []byte(content), 0o644))
	}

	return &harness{
		dir:   dir,
		cfg:   &cfg,
		exec:  &executil.RecordingExecutor{},
		flags: &Flags{NoColor: true, Config: &cfg},
	}
}

// run executes the todo command line args against a fresh command tree and
// returns everything written to the output.
func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	app := todonext.New(h.cfg, zerolog.Nop(),
		todonext.WithClock(func() time.Time { return fixedNow }),
		todonext.WithExecutor(h.exec),
	)

	var buf bytes.Buffer
	root := &cli.Command{Name: "todo", Writer: &buf, ErrWriter: &buf}
	root = NewAddCmd(h.flags, app).Register(root)
	root = NewLsCmd(h.flags, app).Register(root)
	root = NewDoneCmd(h.flags, app).Register(root)
	root = NewPrioCmd(h.flags, app).Register(root)
	root = NewDelayCmd(h.flags, app).Register(root)
	root = NewTrackCmd(h.flags, app).Register(root)
	root = NewAttachCmd(h.flags, app).Register(root)
	root = NewViewsCmd(h.flags, app).Register(root)
	root = NewSearchCmd(h.flags, app).Register(root)
	root = NewReportCmd(h.flags, app).Register(root)
	root = NewArchiveCmd(h.flags, app).Register(root)
	root = NewBackupCmd(h.flags, app).Register(root)

	batch := NewBatchCmd(h.flags, app)
	batch.fr.Stdin = h.stdin
	root = batch.Register(root)

	err := root.Run(context.Background(), append([]string{"todo"}, args...))
	return buf.String(), err
}

func (h *harness) todoFile(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(h.cfg.TodoFile)
	require.NoError(t, err)
	return string(data)
}

func TestAddCmd(t *testing.T) {
	h := newHarness(t, "")

	out, err := h.run(t, "add", "buy", "milk", "@store")
	require.NoError(t, err)

	assert.Contains(t, out, "buy milk @store")
	assert.Equal(t, "buy milk @store created:2026-10-17_10:30\n", h.todoFile(t))
}

func TestAddCmd_Empty(t *testing.T) {
	h := newHarness(t, "")
	h.exec.OnRun = func(cmd string, args []string) error {
		return os.WriteFile(args[len(args)-1], []byte("  \n"), 0o644)
	}

	_, err := h.run(t, "add")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty todo item")
}

func TestLsCmd(t *testing.T) {
	h := newHarness(t, "write report @work\nx paid rent done:2026-10-01\ncall bob @phone\n")

	out, err := h.run(t, "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "write report @work")
	assert.Contains(t, out, "call bob @phone")
	assert.NotContains(t, out, "paid rent")
	assert.Contains(t, out, "2 todo items displayed.")

	out, err = h.run(t, "ls", "@phone")
	require.NoError(t, err)
	assert.NotContains(t, out, "write report")
	assert.Contains(t, out, "1 todo items displayed.")

	out, err = h.run(t, "lsa")
	require.NoError(t, err)
	assert.Contains(t, out, "paid rent")
}

func TestLsCmd_JSON(t *testing.T) {
	h := newHarness(t, "(A) file taxes due:2026-10-16\n")

	out, err := h.run(t, "ls", "--json")
	require.NoError(t, err)

	var info itemInfo
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &info))
	assert.Equal(t, "A", info.Priority)
	assert.Equal(t, "2026-10-16", info.Due)
	assert.True(t, info.Overdue)
}

func TestDoneCmd(t *testing.T) {
	h := newHarness(t, "write report\ncall bob\n")

	_, err := h.run(t, "done", "0")
	require.NoError(t, err)

	content := h.todoFile(t)
	assert.Contains(t, content, "x call bob done:2026-10-17_10:30")
	assert.Contains(t, content, "write report\n")
}

func TestDoneCmd_UnknownItemWritesNothing(t *testing.T) {
	h := newHarness(t, "write report\n")

	_, err := h.run(t, "done", "0", "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `could not find item "7"`)
	assert.Equal(t, "write report\n", h.todoFile(t))
}

func TestRemoveCmd(t *testing.T) {
	h := newHarness(t, "write report\ncall bob\n")

	out, err := h.run(t, "rm", "--yes", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "1 todo items have been removed.")
	assert.Equal(t, "call bob\n", h.todoFile(t))
}

func TestRemoveCmd_DeclinedWritesNothing(t *testing.T) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		t.Skip("stdin is a terminal")
	}
	// loading heals the dangling blockedby, which must not reach the file
	content := "write report id:aaa blockedby:zzz\ncall bob id:bbb\n"
	h := newHarness(t, content)
	h.cfg.IDSupport = true

	out, err := h.run(t, "rm", "bbb")
	require.NoError(t, err)
	assert.Contains(t, out, "Removing aborted")
	assert.NotContains(t, out, "removed")
	assert.Equal(t, content, h.todoFile(t))
}

func TestPrioCmd(t *testing.T) {
	h := newHarness(t, "write report\n")

	_, err := h.run(t, "prio", "0", "b")
	require.NoError(t, err)
	assert.Equal(t, "(B) write report\n", h.todoFile(t))
}

func TestDelayCmd(t *testing.T) {
	h := newHarness(t, "write report due:2026-10-20\n")

	_, err := h.run(t, "delay", "--yes", "0", "+2d")
	require.NoError(t, err)
	assert.Equal(t, "write report due:2026-10-22\n", h.todoFile(t))
}

func TestDelayCmd_DeclinedWritesNothing(t *testing.T) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		t.Skip("stdin is a terminal")
	}
	h := newHarness(t, "write report due:2026-10-20\n")

	// without a terminal the confirmation is declined
	out, err := h.run(t, "delay", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Delay aborted")
	assert.Equal(t, "write report due:2026-10-20\n", h.todoFile(t))
}

func TestStartCmd_ListsStarted(t *testing.T) {
	h := newHarness(t, "write report started:2026-10-17_09:00\ncall bob\n")

	out, err := h.run(t, "start")
	require.NoError(t, err)
	assert.Contains(t, out, "write report")
	assert.NotContains(t, out, "call bob")
}

func TestAttachCmd(t *testing.T) {
	h := newHarness(t, "write report\n")
	notes := filepath.Join(h.dir, "docs", "notes.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(notes), 0o755))
	require.NoError(t, os.WriteFile(notes, []byte("notes"), 0o644))

	_, err := h.run(t, "attach", "0", "https://example.com/plan")
	require.NoError(t, err)
	_, err = h.run(t, "attach", "0", notes)
	require.NoError(t, err)

	assert.Equal(t, "write report https://example.com/plan file:docs/notes.md\n", h.todoFile(t))

	_, err = h.run(t, "attach", "0", filepath.Join(h.dir, "missing.md"))
	assert.Error(t, err)
}

func TestCallCmd(t *testing.T) {
	h := newHarness(t, "write report https://example.com/plan\n")

	_, err := h.run(t, "call", "0")
	require.NoError(t, err)

	require.Len(t, h.exec.Commands, 1)
	assert.Equal(t, executil.OpenCommand(), h.exec.Commands[0].Cmd)
	assert.Equal(t, []string{"https://example.com/plan"}, h.exec.Commands[0].Args)
}

func TestDetachCmd_SingleAttachment(t *testing.T) {
	h := newHarness(t, "write report mailto:bob@example.com\n")

	_, err := h.run(t, "detach", "0")
	require.NoError(t, err)
	assert.Equal(t, "write report\n", h.todoFile(t))
}

func TestContextCmd(t *testing.T) {
	h := newHarness(t, "write report @work\ncall bob @phone @work\n")

	out, err := h.run(t, "context", "phone")
	require.NoError(t, err)
	assert.Contains(t, out, "@phone")
	assert.NotContains(t, out, "write report")
}

func TestStatsCmd_JSON(t *testing.T) {
	h := newHarness(t, "write report due:2026-10-16\nx paid rent\n* reviewed docs done:2026-10-15\n")

	out, err := h.run(t, "stats", "--json")
	require.NoError(t, err)

	var s todonext.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Open)
	assert.Equal(t, 1, s.Done)
	assert.Equal(t, 1, s.Reports)
	assert.Equal(t, 1, s.Overdue)
}

func TestArchiveAndSearchCmd(t *testing.T) {
	h := newHarness(t, "write report\nx paid rent done:2023-06-15\n")

	out, err := h.run(t, "archive")
	require.NoError(t, err)
	assert.Contains(t, out, "1 todo items archived.")
	assert.Equal(t, "write report\n", h.todoFile(t))

	archived, err := os.ReadFile(filepath.Join(h.dir, "2023", "06.txt"))
	require.NoError(t, err)
	assert.Equal(t, "x paid rent done:2023-06-15\n", string(archived))

	out, err = h.run(t, "search", "rent")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(h.dir, "2023", "06.txt"))
	assert.Contains(t, out, "1 matching todo items found.")
}

func TestReportCmd(t *testing.T) {
	h := newHarness(t, "x paid rent done:2026-10-16\n* reviewed docs done:2026-10-16\nwrite report\n")

	out, err := h.run(t, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "## Report for Friday, 2026-10-16")
	assert.Contains(t, out, "paid rent")
	assert.Contains(t, out, "reviewed docs")
	assert.NotContains(t, out, "write report")
}

func TestBackupCmd(t *testing.T) {
	h := newHarness(t, "write report\n")

	_, err := h.run(t, "backup", "copy.txt")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(h.cfg.BackupPath(), "copy.txt"))
	require.NoError(t, err)
	assert.Equal(t, "write report\n", string(data))
}

func TestBatchCmd(t *testing.T) {
	h := newHarness(t, "")
	h.stdin = strings.NewReader(`{"items":["call bob @phone","(B) file taxes due:2026-10-20"]}`)

	out, err := h.run(t, "batch")
	require.NoError(t, err)

	var got struct {
		Added []BatchResult `json:"added"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Added, 2)
	assert.Equal(t, "call bob @phone created:2026-10-17_10:30", got.Added[0].Text)

	assert.Equal(t,
		"(B) file taxes due:2026-10-20 created:2026-10-17_10:30\ncall bob @phone created:2026-10-17_10:30\n",
		h.todoFile(t))
}
