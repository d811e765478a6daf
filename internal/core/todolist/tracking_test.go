package todolist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/todonext/internal/core/todo"
)

func TestStartStop(t *testing.T) {
	opts, c := testOptions(false)
	l := mustParse(t, "write docs\n", opts)
	it := mustGet(t, l, "0")

	require.NoError(t, l.Start(it))
	assert.ErrorIs(t, l.Start(it), ErrAlreadyStarted)

	started, ok := it.DateProp(todo.KeyStarted)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 17, 10, 30, 0, 0, time.Local), started)

	c.now = c.now.Add(45 * time.Minute)
	minutes, err := l.Stop(it)
	require.NoError(t, err)
	assert.Equal(t, 45, minutes)
	assert.Equal(t, 45, it.Duration())
	assert.False(t, it.HasProp(todo.KeyStarted))

	require.NoError(t, l.Start(it))
	c.now = c.now.Add(15 * time.Minute)
	_, err = l.Stop(it)
	require.NoError(t, err)
	assert.Equal(t, 60, it.Duration())
	assert.Equal(t, "write docs duration:60", it.Text())

	_, err = l.Stop(it)
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestStart_InactiveItem(t *testing.T) {
	opts, _ := testOptions(false)
	l := mustParse(t, "x finished\n", opts)

	assert.ErrorIs(t, l.Start(mustGet(t, l, "0")), todo.ErrInactiveItem)
}

func TestSetToDone_StopsStartedItem(t *testing.T) {
	opts, c := testOptions(false)
	l := mustParse(t, "write docs\n", opts)
	it := mustGet(t, l, "0")

	require.NoError(t, l.Start(it))
	c.now = c.now.Add(30 * time.Minute)
	l.SetToDone(it)

	assert.True(t, it.Done)
	assert.Equal(t, 30, it.Duration())
	assert.False(t, it.HasProp(todo.KeyStarted))
}

func TestDelay(t *testing.T) {
	tests := []struct {
		name string
		text string
		expr string
		want time.Time
	}{
		{"relative to due date", "task due:2026-10-20", "+3d", time.Date(2026, 10, 23, 0, 0, 0, 0, time.Local)},
		{"relative to today without due date", "task", "1w", time.Date(2026, 10, 24, 0, 0, 0, 0, time.Local)},
		{"absolute date", "task due:2026-10-20", "2026-12-01", time.Date(2026, 12, 1, 0, 0, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, _ := testOptions(false)
			l := mustParse(t, tt.text+"\n", opts)
			it := mustGet(t, l, "0")

			require.NoError(t, l.Delay(it, tt.expr))

			due, ok := it.DueDate()
			require.True(t, ok)
			assert.Equal(t, tt.want, due)
			assert.True(t, l.Dirty())
		})
	}
}

func TestDelay_InvalidExpression(t *testing.T) {
	opts, _ := testOptions(false)
	l := mustParse(t, "task due:2026-10-20\n", opts)
	it := mustGet(t, l, "0")

	err := l.Delay(it, "whenever")
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Equal(t, "task due:2026-10-20", it.Text())
	assert.False(t, l.Dirty())
}

func TestRepeat(t *testing.T) {
	opts, _ := testOptions(true)
	l := mustParse(t, "water plants @home id:abc due:2026-10-17 duration:5\n", opts)
	it := mustGet(t, l, "abc")

	next, err := l.Repeat(it, "+1w")
	require.NoError(t, err)

	assert.True(t, it.Done)
	assert.False(t, next.Done)
	assert.NotEqual(t, "abc", next.ID)
	assert.Len(t, next.ID, IDLength)
	assert.Equal(t, []string{"@home"}, next.Contexts)
	assert.False(t, next.HasProp(todo.KeyDuration))

	due, ok := next.DueDate()
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 24, 0, 0, 0, 0, time.Local), due)
	assert.Equal(t, 2, l.Len())
}

func TestBlockUnblock(t *testing.T) {
	opts, _ := testOptions(true)
	l := mustParse(t, "design id:aaa\nbuild\n", opts)
	design := mustGet(t, l, "aaa")
	build := mustGet(t, l, "0")

	require.NoError(t, l.Block(design, build))
	assert.NotEmpty(t, build.ID)
	assert.Equal(t, []string{"aaa"}, build.Props(todo.KeyBlockedBy))
	assert.True(t, l.IsBlocked(build))
	assert.Equal(t, []*todo.Item{design}, l.Blockers(build))

	require.NoError(t, l.Block(design, build))
	assert.Equal(t, []string{"aaa"}, build.Props(todo.KeyBlockedBy), "blocking twice is a no-op")

	require.NoError(t, l.Unblock(design, build))
	assert.Empty(t, build.Props(todo.KeyBlockedBy))
	assert.False(t, l.IsBlocked(build))

	assert.ErrorIs(t, l.Block(design, design), ErrSelfBlock)
}

func TestBlock_RequiresIDSupport(t *testing.T) {
	opts, _ := testOptions(false)
	l := mustParse(t, "a\nb\n", opts)

	assert.ErrorIs(t, l.Block(mustGet(t, l, "0"), mustGet(t, l, "1")), ErrIDSupportDisabled)
}

func TestReopen_DropsFinishedBlockers(t *testing.T) {
	opts, _ := testOptions(true)
	l := mustParse(t, "x write report id:aaa blockedby:bbb\ncollect numbers id:bbb\n", opts)

	a, ok := l.Get("aaa")
	require.True(t, ok)
	b, ok := l.Get("bbb")
	require.True(t, ok)

	l.SetToDone(b)
	assert.Equal(t, []string{"bbb"}, a.Props(todo.KeyBlockedBy), "done items keep their blockers")

	l.Reopen(a)
	assert.False(t, a.Done)
	assert.False(t, l.IsBlocked(a))
	assert.Empty(t, a.Props(todo.KeyBlockedBy))
	assert.NotContains(t, a.Text(), "blockedby:")
}
