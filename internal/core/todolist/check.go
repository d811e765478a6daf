package todolist

import (
	"fmt"
	"iter"

	"github.com/colonyops/todonext/internal/core/todo"
)

// CheckAll yields every item with warnings, in canonical order. With ID
// support enabled, every member of a group of items sharing an ID is yielded
// afterwards with a duplicate warning.
func (l *List) CheckAll() iter.Seq2[*todo.Item, []string] {
	return func(yield func(*todo.Item, []string) bool) {
		var order []string
		groups := map[string][]*todo.Item{}

		for it := range l.Items() {
			if it.ID != "" {
				if _, ok := groups[it.ID]; !ok {
					order = append(order, it.ID)
				}
				groups[it.ID] = append(groups[it.ID], it)
			}
			if warnings := it.Check(); len(warnings) > 0 {
				if !yield(it, warnings) {
					return
				}
			}
		}

		if !l.opts.Item.IDSupport {
			return
		}
		for _, id := range order {
			group := groups[id]
			if len(group) < 2 {
				continue
			}
			for _, it := range group {
				if !yield(it, []string{fmt.Sprintf("item has duplicate id %q", id)}) {
					return
				}
			}
		}
	}
}
