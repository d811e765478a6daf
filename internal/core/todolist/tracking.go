package todolist

import (
	"fmt"
	"strconv"
	"time"

	"github.com/colonyops/todonext/internal/core/todo"
)

// Start stamps it with the current time as its started date.
func (l *List) Start(it *todo.Item) error {
	if !it.IsActive() {
		return todo.ErrInactiveItem
	}
	if it.HasProp(todo.KeyStarted) {
		return ErrAlreadyStarted
	}
	l.ReplaceOrAddProperty(it, todo.KeyStarted, todo.DateValue(l.opts.Item.Dates.Now()))
	return nil
}

// Stop adds the minutes since it was started to its duration and clears the
// started date. It returns the minutes added.
func (l *List) Stop(it *todo.Item) (int, error) {
	started, ok := it.DateProp(todo.KeyStarted)
	if !ok {
		return 0, ErrNotStarted
	}

	minutes := max(int(l.opts.Item.Dates.Now().Sub(started)/time.Minute), 0)
	total := it.Duration() + minutes

	it.ReplaceOrAddProperty(todo.KeyDuration, todo.StringValue(strconv.Itoa(total)))
	it.RemoveProperty(todo.KeyStarted, "")
	l.touch()
	return minutes, nil
}

// Delay moves the due date of it. The expression is evaluated relative to the
// current due date, or today if it has none.
func (l *List) Delay(it *todo.Item, expr string) error {
	ref, ok := it.DueDate()
	if !ok {
		ref = l.opts.Item.Dates.Today()
	}

	d := l.opts.Item.Dates.Parse(expr, ref, false)
	if !d.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDate, expr)
	}

	l.ReplaceOrAddProperty(it, todo.KeyDue, todo.Value{Text: d.String(), Date: d})
	return nil
}

// Repeat completes it and adds a fresh copy due at dueExpr. The copy drops
// the tracking and identity properties of the original.
func (l *List) Repeat(it *todo.Item, dueExpr string) (*todo.Item, error) {
	if it.IsReport {
		return nil, todo.ErrInactiveItem
	}
	d := l.opts.Item.Dates.Parse(dueExpr, time.Time{}, false)
	if !d.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, dueExpr)
	}

	cp, err := todo.New(it.Text(), l.opts.Item)
	if err != nil {
		return nil, err
	}
	cp.Reopen()
	for _, key := range []string{todo.KeyID, todo.KeyCreated, todo.KeyStarted, todo.KeyDuration} {
		cp.RemoveProperty(key, "")
	}
	cp.ReplaceOrAddProperty(todo.KeyDue, todo.Value{Text: d.String(), Date: d})

	next, err := l.Add(cp.Text())
	if err != nil {
		return nil, err
	}
	if !it.Done {
		l.SetToDone(it)
	}
	return next, nil
}
