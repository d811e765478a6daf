// Package todolist owns an ordered collection of todo items: canonical
// ordering, positional and stable-ID addressing, blocking dependencies and
// serialization.
package todolist

import (
	"bufio"
	"cmp"
	"errors"
	"fmt"
	"io"
	"iter"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/colonyops/todonext/internal/core/todo"
	"github.com/colonyops/todonext/pkg/randid"
)

// IDLength is the length of generated stable IDs.
const IDLength = 3

var (
	// ErrIDSupportDisabled is returned by operations that need stable IDs.
	ErrIDSupportDisabled = errors.New("id support is disabled")
	// ErrNotStarted is returned when stopping an item that is not being tracked.
	ErrNotStarted = errors.New("item has not been started")
	// ErrAlreadyStarted is returned when starting an item twice.
	ErrAlreadyStarted = errors.New("item has already been started")
	// ErrNotInList is returned when an item does not belong to the list.
	ErrNotInList = errors.New("item is not in the list")
	// ErrInvalidDate is returned when a date expression cannot be parsed.
	ErrInvalidDate = errors.New("invalid date expression")
)

// Options configures a List.
type Options struct {
	Item todo.Options
	// Sort writes items in canonical order instead of file order.
	Sort bool
}

// List is an in-memory todo list. It is not safe for concurrent use.
type List struct {
	items []*todo.Item
	ids   map[string]*todo.Item
	// deps maps a blocked item's ID to the IDs blocking it.
	deps map[string][]string

	opts   Options
	log    zerolog.Logger
	dirty  bool
	sorted bool
}

// New creates an empty List.
func New(opts Options, log zerolog.Logger) *List {
	opts.Item = opts.Item.WithDefaults()
	return &List{
		ids:    map[string]*todo.Item{},
		deps:   map[string][]string{},
		opts:   opts,
		log:    log,
		sorted: true,
	}
}

// Parse reads one item per non-blank line from r. Line numbers count every
// physical line, starting at 1.
func Parse(r io.Reader, opts Options, log zerolog.Logger) (*List, error) {
	l := New(opts, log)

	br := bufio.NewReader(r)
	line := 0
	for {
		raw, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read todo list: %w", err)
		}
		if raw == "" && err != nil {
			break
		}
		line++

		if text := strings.TrimSpace(raw); text != "" {
			it, perr := todo.New(text, l.opts.Item)
			if perr != nil {
				return nil, fmt.Errorf("line %d: %w", line, perr)
			}
			it.Line = line
			l.items = append(l.items, it)
		}
		if err != nil {
			break
		}
	}

	l.reindex(true)
	l.sorted = false
	l.CleanDependencies(nil)
	l.sort()

	l.log.Debug().Int("items", len(l.items)).Msg("todo list parsed")
	return l, nil
}

// Options returns the options of the list.
func (l *List) Options() Options { return l.opts }

// Len returns the number of items.
func (l *List) Len() int { return len(l.items) }

// Dirty reports whether the list changed since it was loaded.
func (l *List) Dirty() bool {
	if l.dirty {
		return true
	}
	for _, it := range l.items {
		if it.Dirty() {
			return true
		}
	}
	return false
}

// reindex rebuilds the ID index and the dependency map. Items are visited
// in file order so the first occurrence of a duplicate ID keeps it.
func (l *List) reindex(warn bool) {
	l.ids = map[string]*todo.Item{}
	l.deps = map[string][]string{}

	for _, it := range l.fileOrder() {
		if it.ID == "" {
			continue
		}
		if _, ok := l.ids[it.ID]; ok {
			if warn {
				l.log.Warn().Str("id", it.ID).Str("item", it.Text()).Msg("duplicate stable id")
			}
			continue
		}
		l.ids[it.ID] = it
		if it.IsActive() {
			if blockers := it.Props(todo.KeyBlockedBy); len(blockers) > 0 {
				l.deps[it.ID] = blockers
			}
		}
	}
}

func (l *List) touch() {
	l.dirty = true
	l.sorted = false
	l.sort()
}

func (l *List) indexOf(it *todo.Item) int {
	return slices.Index(l.items, it)
}

// CreateStableID returns an unused ID derived from the item text.
func (l *List) CreateStableID(it *todo.Item) string {
	return randid.Hashed(it.Text(), IDLength, func(id string) bool {
		_, ok := l.ids[id]
		return ok
	})
}

// Add parses text and appends it as a new item. The item is stamped with a
// created date, or a done date for reports, and receives a stable ID when ID
// support is on.
func (l *List) Add(text string) (*todo.Item, error) {
	it, err := todo.New(text, l.opts.Item)
	if err != nil {
		return nil, err
	}

	now := todo.DateValue(l.opts.Item.Dates.Now())
	if it.IsReport {
		it.ReplaceOrAddProperty(todo.KeyDone, now)
	} else {
		it.ReplaceOrAddProperty(todo.KeyCreated, now)
	}

	if l.opts.Item.IDSupport && it.ID == "" {
		it.ReplaceOrAddProperty(todo.KeyID, todo.StringValue(l.CreateStableID(it)))
	}

	l.items = append(l.items, it)
	l.reindex(false)
	l.touch()

	l.log.Debug().Str("id", it.ID).Str("item", it.Text()).Msg("item added")
	return it, nil
}

// Append inserts an existing item without stamping it.
func (l *List) Append(it *todo.Item) {
	l.items = append(l.items, it)
	l.reindex(false)
	l.touch()
}

// Get resolves a stable ID or a position in the current sorted order.
func (l *List) Get(key string) (*todo.Item, bool) {
	l.sort()

	if l.opts.Item.IDSupport {
		if it, ok := l.ids[key]; ok {
			it.Nr = l.indexOf(it)
			return it, true
		}
	}

	n, err := strconv.Atoi(key)
	if err != nil || n < 0 || n >= len(l.items) {
		return nil, false
	}
	it := l.items[n]
	it.Nr = n
	return it, true
}

// GetList resolves every key, silently skipping the ones that do not resolve.
func (l *List) GetList(keys []string) []*todo.Item {
	var out []*todo.Item
	for _, k := range keys {
		if it, ok := l.Get(k); ok {
			out = append(out, it)
		}
	}
	return out
}

// Items iterates over all items in canonical order, assigning Nr.
func (l *List) Items() iter.Seq[*todo.Item] {
	return l.Filter(nil)
}

// Filter iterates over the items for which keep reports true, in canonical
// order. Nr is assigned to every item, kept or not.
func (l *List) Filter(keep func(*todo.Item) bool) iter.Seq[*todo.Item] {
	return func(yield func(*todo.Item) bool) {
		l.sort()
		for nr, it := range slices.Clone(l.items) {
			it.Nr = nr
			if keep != nil && !keep(it) {
				continue
			}
			if !yield(it) {
				return
			}
		}
	}
}

// SetToDone completes it. A started item is stopped first so the elapsed time
// is recorded. Reports are left untouched.
func (l *List) SetToDone(it *todo.Item) {
	if it.IsReport {
		return
	}
	if it.HasProp(todo.KeyStarted) {
		_, _ = l.Stop(it)
	}
	it.SetToDone()
	l.reindex(false)
	l.CleanDependencies(it)
	l.touch()
}

// Reopen marks it as not done. Reports are left untouched.
func (l *List) Reopen(it *todo.Item) {
	if it.IsReport {
		return
	}
	it.Reopen()
	l.reindex(false)
	l.CleanDependencies(nil)
	l.touch()
}

// Remove deletes it from the list and from every blockedby referencing it.
func (l *List) Remove(it *todo.Item) error {
	idx := l.indexOf(it)
	if idx < 0 {
		return ErrNotInList
	}
	l.items = slices.Delete(l.items, idx, idx+1)
	l.reindex(false)
	l.CleanDependencies(it)
	l.touch()
	return nil
}

// Replace substitutes old with repl at the same position, keeping the line
// number.
func (l *List) Replace(old, repl *todo.Item) error {
	idx := l.indexOf(old)
	if idx < 0 {
		return ErrNotInList
	}
	repl.Line = old.Line
	l.items[idx] = repl
	l.reindex(false)
	l.CleanDependencies(nil)
	l.touch()
	return nil
}

// ReplaceOrAddProperty sets a property of it, see todo.Item.ReplaceOrAddProperty.
func (l *List) ReplaceOrAddProperty(it *todo.Item, key string, v todo.Value) {
	it.ReplaceOrAddProperty(key, v)
	l.afterPropertyChange(key)
}

// RemoveProperty removes a property of it, see todo.Item.RemoveProperty.
func (l *List) RemoveProperty(it *todo.Item, key, selector string) {
	it.RemoveProperty(key, selector)
	l.afterPropertyChange(key)
}

// AppendText adds fragment to the text of it, see todo.Item.AppendText.
func (l *List) AppendText(it *todo.Item, fragment string) error {
	if err := it.AppendText(fragment); err != nil {
		return err
	}
	l.reindex(false)
	l.touch()
	return nil
}

// RemoveToken removes tok from the text of it, see todo.Item.RemoveToken.
func (l *List) RemoveToken(it *todo.Item, tok string) (bool, error) {
	ok, err := it.RemoveToken(tok)
	if err != nil || !ok {
		return ok, err
	}
	l.reindex(false)
	l.touch()
	return true, nil
}

func (l *List) afterPropertyChange(key string) {
	switch strings.ToLower(key) {
	case todo.KeyID, todo.KeyBlockedBy:
		l.reindex(false)
	}
	l.touch()
}

// SetPriority changes the priority of it. An empty p removes it.
func (l *List) SetPriority(it *todo.Item, p string) error {
	if err := it.SetPriority(p); err != nil {
		return err
	}
	l.touch()
	return nil
}

// WriteTo writes one item per line: in canonical order when sorting is
// enabled, otherwise in file order with new items at the end.
func (l *List) WriteTo(w io.Writer) (int64, error) {
	items := l.writeOrder()

	bw := bufio.NewWriter(w)
	var n int64
	for _, it := range items {
		c, err := bw.WriteString(it.Text() + "\n")
		n += int64(c)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

func (l *List) writeOrder() []*todo.Item {
	if l.opts.Sort {
		l.sort()
		return l.items
	}
	return l.fileOrder()
}

// fileOrder returns the items ordered by line number, new items last.
func (l *List) fileOrder() []*todo.Item {
	items := slices.Clone(l.items)
	slices.SortStableFunc(items, func(a, b *todo.Item) int {
		return cmp.Compare(lineKey(a), lineKey(b))
	})
	return items
}

func lineKey(it *todo.Item) int {
	if it.Line == 0 {
		return math.MaxInt
	}
	return it.Line
}

// MarkClean resets the dirty state after a successful write.
func (l *List) MarkClean() {
	l.dirty = false
	for _, it := range l.items {
		it.MarkClean()
	}
}
