package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/colonyops/todonext/internal/core/todo"
	"github.com/colonyops/todonext/internal/core/todolist"
)

// ListStore loads and saves a todo list.
type ListStore interface {
	Path() string
	Load() (*todolist.List, error)
	Save(l *todolist.List) error
}

// ListCheck parses the todo file and reports item warnings. Stale
// dependencies are healed while loading; with autofix the healed list is
// written back.
type ListCheck struct {
	store   ListStore
	autofix bool
}

// NewListCheck creates a check for the todo file behind store.
func NewListCheck(store ListStore, autofix bool) *ListCheck {
	return &ListCheck{store: store, autofix: autofix}
}

func (c *ListCheck) Name() string {
	return "Todo List"
}

func (c *ListCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if _, err := os.Stat(c.store.Path()); errors.Is(err, os.ErrNotExist) {
		result.Items = append(result.Items, CheckItem{
			Label:  c.store.Path(),
			Status: StatusWarn,
			Detail: "file does not exist yet",
		})
		return result
	}

	l, err := c.store.Load()
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  c.store.Path(),
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	result.Items = append(result.Items, CheckItem{
		Label:  c.store.Path(),
		Status: StatusPass,
		Detail: fmt.Sprintf("%d items", l.Len()),
	})

	for it, warnings := range l.CheckAll() {
		for _, w := range warnings {
			result.Items = append(result.Items, CheckItem{
				Label:  ItemLabel(it),
				Status: StatusWarn,
				Detail: w,
			})
		}
	}

	// loading drops blockedby references to missing or finished items
	if l.Dirty() {
		item := CheckItem{
			Label:   "dependencies",
			Status:  StatusWarn,
			Detail:  "stale blockedby references",
			Fixable: true,
		}
		if c.autofix {
			if err := c.store.Save(l); err != nil {
				item.Status = StatusFail
				item.Detail = fmt.Sprintf("removing stale references: %v", err)
			} else {
				item.Status = StatusPass
				item.Detail = "stale blockedby references removed"
			}
		}
		result.Items = append(result.Items, item)
	}

	return result
}

// ItemLabel identifies an item by its ID or, without one, its line.
func ItemLabel(it *todo.Item) string {
	if it.ID != "" {
		return "id " + it.ID
	}
	return "line " + strconv.Itoa(it.Line)
}
