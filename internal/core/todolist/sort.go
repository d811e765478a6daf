package todolist

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/colonyops/todonext/internal/core/todo"
)

// noPriority sorts after every real priority.
const noPriority = "ZZ"

var epoch = time.Unix(0, 0)

// sortKey is the canonical ordering of an item: active before inactive, then
// priority ascending, done date descending, due date descending and text.
type sortKey struct {
	inactive bool
	priority string
	done     time.Time
	due      time.Time
	text     string
}

func keyOf(it *todo.Item) sortKey {
	k := sortKey{
		inactive: !it.IsActive(),
		priority: cmp.Or(it.Priority, noPriority),
		done:     epoch,
		due:      epoch,
		text:     strings.ToLower(it.Text()),
	}
	if t, ok := it.DoneDate(); ok {
		k.done = t
	}
	if t, ok := it.DueDate(); ok {
		k.due = t
	}
	return k
}

func compareKeys(a, b sortKey) int {
	return cmp.Or(
		compareBool(a.inactive, b.inactive),
		cmp.Compare(a.priority, b.priority),
		b.done.Compare(a.done),
		b.due.Compare(a.due),
		cmp.Compare(a.text, b.text),
	)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

// sort orders the items canonically unless they already are.
func (l *List) sort() {
	if l.sorted {
		return
	}

	type keyed struct {
		key  sortKey
		item *todo.Item
	}
	ks := make([]keyed, len(l.items))
	for i, it := range l.items {
		ks[i] = keyed{key: keyOf(it), item: it}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		return compareKeys(a.key, b.key)
	})
	for i, k := range ks {
		l.items[i] = k.item
	}
	l.sorted = true
}

// Sort forces a full canonical sort.
func (l *List) Sort() {
	l.sorted = false
	l.sort()
}
