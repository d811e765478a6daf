package doctor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/todonext/internal/core/dates"
	"github.com/colonyops/todonext/internal/core/todo"
	"github.com/colonyops/todonext/internal/core/todolist"
	"github.com/colonyops/todonext/internal/store/textfile"
)

func listOptions(ids bool) todolist.Options {
	now := time.Date(2026, 10, 17, 10, 30, 0, 0, time.Local)
	return todolist.Options{
		Item: todo.Options{
			IDSupport: ids,
			Dates:     dates.NewParser(dates.WithClock(func() time.Time { return now })),
		},
		Sort: true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestListCheck_MissingFile(t *testing.T) {
	store := textfile.New(filepath.Join(t.TempDir(), "todo.txt"), listOptions(true), zerolog.Nop())

	result := NewListCheck(store, false).Run(context.Background())

	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusWarn, result.Items[0].Status)
}

func TestListCheck_Warnings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.txt")
	writeFile(t, path, "call bob due:notadate id:aaa\nsecond id:aaa\n")
	store := textfile.New(path, listOptions(true), zerolog.Nop())

	result := NewListCheck(store, false).Run(context.Background())

	require.NotEmpty(t, result.Items)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, "2 items", result.Items[0].Detail)

	var details []string
	for _, it := range result.Items[1:] {
		assert.Equal(t, StatusWarn, it.Status)
		details = append(details, it.Detail)
	}
	assert.Contains(t, details, "property due:?notadate is not a valid date")
	assert.Contains(t, details, `item has duplicate id "aaa"`)
}

func TestListCheck_StaleDependencies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.txt")
	writeFile(t, path, "build id:bbb blockedby:zzz\n")

	t.Run("report only", func(t *testing.T) {
		store := textfile.New(path, listOptions(true), zerolog.Nop())
		result := NewListCheck(store, false).Run(context.Background())

		last := result.Items[len(result.Items)-1]
		assert.Equal(t, "dependencies", last.Label)
		assert.Equal(t, StatusWarn, last.Status)
		assert.True(t, last.Fixable)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "blockedby:zzz")
	})

	t.Run("autofix", func(t *testing.T) {
		store := textfile.New(path, listOptions(true), zerolog.Nop())
		result := NewListCheck(store, true).Run(context.Background())

		last := result.Items[len(result.Items)-1]
		assert.Equal(t, StatusPass, last.Status)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "build id:bbb\n", string(data))
	})
}

func TestArchiveCheck(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "2023", "06.txt"), "x done item done:2023-06-15\n")
	writeFile(t, filepath.Join(dir, "2023", "07.txt"), "x done item done:2023-07-01\nstill open\n")

	archive := textfile.Archive{Dir: dir, Scheme: "%Y/%m.txt", Unsorted: "unsorted.txt"}
	load := func(path string) (*todolist.List, error) {
		return textfile.New(path, listOptions(false), zerolog.Nop()).Load()
	}

	result := NewArchiveCheck(archive.Files, load).Run(context.Background())

	require.Len(t, result.Items, 2)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, StatusWarn, result.Items[1].Status)
	assert.Equal(t, "2 items, 1 still open", result.Items[1].Detail)
}

func TestItemLabel(t *testing.T) {
	it, err := todo.New("with id id:abc", todo.Options{IDSupport: true})
	require.NoError(t, err)
	assert.Equal(t, "id abc", ItemLabel(it))

	it, err = todo.New("plain", todo.Options{})
	require.NoError(t, err)
	it.Line = 4
	assert.Equal(t, "line 4", ItemLabel(it))
}
