package todonext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/todonext/internal/core/todo"
	"github.com/colonyops/todonext/internal/core/todolist"
)

func loadList(t *testing.T, env testEnv) *todolist.List {
	t.Helper()
	l, err := env.app.Load()
	require.NoError(t, err)
	return l
}

func texts(items []*todo.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Text()
	}
	return out
}

func TestGroupBy_Contexts(t *testing.T) {
	env := newTestApp(t, "call mom @phone @phone\nbuy milk @store\nx done call @phone\nemail @office @phone\n")
	l := loadList(t, env)

	groups := GroupBy(l, false, Contexts, nil)
	require.Len(t, groups, 3)
	assert.Equal(t, "@office", groups[0].Name)
	assert.Equal(t, "@phone", groups[1].Name)
	assert.Len(t, groups[1].Items, 2, "duplicate tokens count once and done items are skipped")
	assert.Equal(t, "@store", groups[2].Name)

	all := GroupBy(l, true, Contexts, func(name string) bool { return name == "@phone" })
	require.Len(t, all, 1)
	assert.Len(t, all[0].Items, 3)
}

func TestGroupBy_Delegates(t *testing.T) {
	env := newTestApp(t, "review >>Bob\nreport <<alice\nping >>bob\n")
	l := loadList(t, env)

	to := GroupBy(l, false, DelegatedTo, nil)
	require.Len(t, to, 1)
	assert.Equal(t, "bob", to[0].Name)
	assert.Len(t, to[0].Items, 2)

	from := GroupBy(l, false, DelegatedFrom, nil)
	require.Len(t, from, 1)
	assert.Equal(t, "alice", from[0].Name)
}

func TestAgenda(t *testing.T) {
	env := newTestApp(t, "x paid rent due:2026-10-17\nstandup due:2026-10-17_09:00\nfuture due:2026-10-20\nno due\n")
	l := loadList(t, env)

	today := Agenda(l, day(2026, 10, 17))
	require.Len(t, today, 1)
	assert.Equal(t, "2026-10-17", today[0].Name)
	assert.Equal(t, []string{"standup due:2026-10-17_09:00", "x paid rent due:2026-10-17"}, texts(today[0].Items))

	all := Agenda(l, time.Time{})
	require.Len(t, all, 2)
	assert.Equal(t, "2026-10-20", all[1].Name)
}

func TestOverdueAndStarted(t *testing.T) {
	env := newTestApp(t, "late due:2026-10-01\ntoday due:2026-10-17\nx late done due:2026-10-01\nworking started:2026-10-17_09:00\n")
	l := loadList(t, env)

	assert.Equal(t, []string{"late due:2026-10-01"}, texts(Overdue(l, fixedNow)))
	assert.Equal(t, []string{"working started:2026-10-17_09:00"}, texts(Started(l)))
}

func TestComputeStats(t *testing.T) {
	env := newTestApp(t, "(A) urgent due:2026-10-01 >>bob\ntoday due:2026-10-17 <<alice\nx finished\n* report done:2026-10-16\nworking started:2026-10-17_09:00\n")
	l := loadList(t, env)

	s := ComputeStats(l, fixedNow)
	assert.Equal(t, Stats{
		Total:       5,
		Open:        3,
		Done:        1,
		Reports:     1,
		Prioritized: 1,
		Overdue:     1,
		DueToday:    1,
		Started:     1,
		Delegates:   2,
	}, s)
}

func TestByAge(t *testing.T) {
	env := newTestApp(t, "newer created:2026-10-10\nolder created:2026-01-01\nno date\nx done created:2025-01-01\n")
	l := loadList(t, env)

	assert.Equal(t, []string{"older created:2026-01-01", "newer created:2026-10-10"}, texts(ByAge(l, false, false)))
	assert.Equal(t, []string{"newer created:2026-10-10", "older created:2026-01-01", "x done created:2025-01-01"}, texts(ByAge(l, true, true)))
}
