package todonext

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/colonyops/todonext/internal/core/dates"
	"github.com/colonyops/todonext/internal/core/todo"
	"github.com/colonyops/todonext/internal/core/todolist"
)

// Group is a named set of items in canonical order.
type Group struct {
	Name  string
	Items []*todo.Item
}

// GroupBy buckets items under every key returned by keys. Groups are sorted
// by name and only groups accepted by match are returned. Inactive items are
// skipped unless all is set.
func GroupBy(l *todolist.List, all bool, keys func(*todo.Item) []string, match func(name string) bool) []Group {
	var names []string
	buckets := map[string][]*todo.Item{}

	for it := range l.Filter(func(it *todo.Item) bool { return all || it.IsActive() }) {
		ks := slices.Clone(keys(it))
		slices.Sort(ks)
		for _, k := range slices.Compact(ks) {
			if _, ok := buckets[k]; !ok {
				names = append(names, k)
			}
			buckets[k] = append(buckets[k], it)
		}
	}

	slices.Sort(names)
	groups := make([]Group, 0, len(names))
	for _, n := range names {
		if match != nil && !match(n) {
			continue
		}
		groups = append(groups, Group{Name: n, Items: buckets[n]})
	}
	return groups
}

// Contexts returns the contexts of an item.
func Contexts(it *todo.Item) []string { return it.Contexts }

// Projects returns the projects of an item.
func Projects(it *todo.Item) []string { return it.Projects }

// Markers returns the markers of an item.
func Markers(it *todo.Item) []string { return it.Markers }

// DelegatedTo returns the lower cased delegates of an item.
func DelegatedTo(it *todo.Item) []string { return lowerAll(it.DelegatedTo) }

// DelegatedFrom returns the lower cased initiators of an item.
func DelegatedFrom(it *todo.Item) []string { return lowerAll(it.DelegatedFrom) }

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

// Agenda groups items due on day by due date, open items first within a
// day. A zero day selects every item with a due date.
func Agenda(l *todolist.List, day time.Time) []Group {
	items := slices.Collect(l.Filter(func(it *todo.Item) bool {
		due, ok := it.DueDate()
		return ok && (day.IsZero() || dates.SameDay(due, day))
	}))

	slices.SortStableFunc(items, func(x, y *todo.Item) int {
		if c := compareDone(x.Done, y.Done); c != 0 {
			return c
		}
		dx, _ := x.DueDate()
		dy, _ := y.DueDate()
		return dx.Compare(dy)
	})

	var groups []Group
	for _, it := range items {
		due, _ := it.DueDate()
		name := due.Format(dates.LayoutDate)
		if i := slices.IndexFunc(groups, func(g Group) bool { return g.Name == name }); i >= 0 {
			groups[i].Items = append(groups[i].Items, it)
			continue
		}
		groups = append(groups, Group{Name: name, Items: []*todo.Item{it}})
	}
	slices.SortStableFunc(groups, func(x, y Group) int { return cmp.Compare(x.Name, y.Name) })
	return groups
}

func compareDone(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

// Overdue returns the open items whose due date has passed.
func Overdue(l *todolist.List, now time.Time) []*todo.Item {
	return slices.Collect(l.Filter(func(it *todo.Item) bool {
		return !it.Done && it.IsOverdue(now)
	}))
}

// Started returns the active items currently being tracked.
func Started(l *todolist.List) []*todo.Item {
	return slices.Collect(l.Filter(func(it *todo.Item) bool {
		return it.IsActive() && it.HasProp(todo.KeyStarted)
	}))
}

// Stats summarizes a list.
type Stats struct {
	Total       int `json:"total"`
	Open        int `json:"open"`
	Done        int `json:"done"`
	Reports     int `json:"reports"`
	Prioritized int `json:"prioritized"`
	Overdue     int `json:"overdue"`
	DueToday    int `json:"due_today"`
	Blocked     int `json:"blocked"`
	Started     int `json:"started"`
	Delegates   int `json:"delegates"`
}

// ComputeStats counts the items of l by status.
func ComputeStats(l *todolist.List, now time.Time) Stats {
	var s Stats
	delegates := map[string]struct{}{}

	for it := range l.Items() {
		s.Total++
		switch {
		case it.IsReport:
			s.Reports++
		case it.Done:
			s.Done++
		default:
			s.Open++
			if it.IsOverdue(now) {
				s.Overdue++
			}
			if it.IsDueToday(now) {
				s.DueToday++
			}
			if l.IsBlocked(it) {
				s.Blocked++
			}
			if it.HasProp(todo.KeyStarted) {
				s.Started++
			}
		}
		if it.Priority != "" {
			s.Prioritized++
		}
		for _, d := range slices.Concat(DelegatedTo(it), DelegatedFrom(it)) {
			delegates[d] = struct{}{}
		}
	}

	s.Delegates = len(delegates)
	return s
}

// ByAge returns the items with a created date, oldest first or newest first
// with desc. Inactive items are skipped unless all is set.
func ByAge(l *todolist.List, all, desc bool) []*todo.Item {
	items := slices.Collect(l.Filter(func(it *todo.Item) bool {
		_, ok := it.DateProp(todo.KeyCreated)
		return ok && (all || it.IsActive())
	}))

	slices.SortStableFunc(items, func(x, y *todo.Item) int {
		cx, _ := x.DateProp(todo.KeyCreated)
		cy, _ := y.DateProp(todo.KeyCreated)
		if desc {
			return cy.Compare(cx)
		}
		return cx.Compare(cy)
	})
	return items
}
