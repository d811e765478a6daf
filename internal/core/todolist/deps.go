package todolist

import (
	"errors"
	"slices"

	"github.com/colonyops/todonext/internal/core/todo"
)

// ErrSelfBlock is returned when an item would block itself.
var ErrSelfBlock = errors.New("item cannot block itself")

// CleanDependencies removes the ID of justCompleted, if given, from every
// blockedby list. Afterwards every edge pointing at a missing or inactive
// item is dropped from the blocked item.
func (l *List) CleanDependencies(justCompleted *todo.Item) {
	changed := false

	if justCompleted != nil && justCompleted.ID != "" {
		for blockedID, blockers := range l.deps {
			if !slices.Contains(blockers, justCompleted.ID) {
				continue
			}
			if blocked, ok := l.ids[blockedID]; ok {
				blocked.RemoveProperty(todo.KeyBlockedBy, justCompleted.ID)
				changed = true
			}
		}
	}

	for blockedID, blockers := range l.deps {
		blocked, ok := l.ids[blockedID]
		if !ok {
			continue
		}
		for _, id := range blockers {
			blocker, ok := l.ids[id]
			if ok && blocker.IsActive() {
				continue
			}
			if !slices.Contains(blocked.Props(todo.KeyBlockedBy), id) {
				continue
			}
			l.log.Debug().Str("item", blockedID).Str("blocker", id).Msg("dropping stale dependency")
			blocked.RemoveProperty(todo.KeyBlockedBy, id)
			changed = true
		}
	}

	if changed {
		l.reindex(false)
		l.dirty = true
		l.sorted = false
	}
}

// Blockers returns the items blocking it.
func (l *List) Blockers(it *todo.Item) []*todo.Item {
	if it.ID == "" {
		return nil
	}
	var out []*todo.Item
	for _, id := range l.deps[it.ID] {
		if b, ok := l.ids[id]; ok {
			out = append(out, b)
		}
	}
	return out
}

// IsBlocked reports whether an active item blocks it.
func (l *List) IsBlocked(it *todo.Item) bool {
	return len(l.Blockers(it)) > 0
}

// Block records that blocker must be finished before blocked. Items without
// an ID receive one.
func (l *List) Block(blocker, blocked *todo.Item) error {
	if !l.opts.Item.IDSupport {
		return ErrIDSupportDisabled
	}
	if blocker == blocked {
		return ErrSelfBlock
	}
	for _, it := range []*todo.Item{blocker, blocked} {
		if l.indexOf(it) < 0 {
			return ErrNotInList
		}
		if it.ID == "" {
			it.ReplaceOrAddProperty(todo.KeyID, todo.StringValue(l.CreateStableID(it)))
			l.reindex(false)
		}
	}
	if slices.Contains(blocked.Props(todo.KeyBlockedBy), blocker.ID) {
		return nil
	}
	l.ReplaceOrAddProperty(blocked, todo.KeyBlockedBy, todo.StringValue(blocker.ID))
	return nil
}

// Unblock removes blocker from the blockedby list of blocked.
func (l *List) Unblock(blocker, blocked *todo.Item) error {
	if !l.opts.Item.IDSupport {
		return ErrIDSupportDisabled
	}
	if blocker.ID == "" || !slices.Contains(blocked.Props(todo.KeyBlockedBy), blocker.ID) {
		return nil
	}
	l.RemoveProperty(blocked, todo.KeyBlockedBy, blocker.ID)
	return nil
}
