// Package todo models a single line of a todo file: its authoritative text and
// the structured fields derived from it.
package todo

import (
	"errors"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/colonyops/todonext/internal/core/dates"
)

// Default line prefixes.
const (
	DefaultDonePrefix   = "x "
	DefaultReportPrefix = "* "
)

var (
	// ErrInvalidPriority is returned for priorities other than a single A-Z letter.
	ErrInvalidPriority = errors.New("priority must be a single letter A-Z")
	// ErrInactiveItem is returned when changing the priority of a done or report item.
	ErrInactiveItem = errors.New("item is done or a report")
)

// Options carries the per-run configuration items need.
type Options struct {
	DonePrefix   string
	ReportPrefix string
	IDSupport    bool
	// BaseDir resolves relative file properties in Check.
	BaseDir string
	Dates   *dates.Parser
}

// WithDefaults fills unset prefixes and creates a date parser if none is set.
func (o Options) WithDefaults() Options {
	if o.DonePrefix == "" {
		o.DonePrefix = DefaultDonePrefix
	}
	if o.ReportPrefix == "" {
		o.ReportPrefix = DefaultReportPrefix
	}
	if o.Dates == nil {
		o.Dates = dates.NewParser()
	}
	return o
}

// Item is one todo entry. Text is the source of truth; every exported field is
// derived from it and kept in sync by the mutation methods.
type Item struct {
	text string

	Priority      string
	Contexts      []string
	Projects      []string
	DelegatedTo   []string
	DelegatedFrom []string
	Markers       []string
	URLs          []string
	Done          bool
	IsReport      bool
	ID            string

	// Line is the 1-based line in the file the item was read from, 0 for new items.
	Line int
	// Nr is the position in the most recent sorted listing.
	Nr int

	props map[string]Value
	multi map[string][]string
	opts  Options
	dirty bool
}

// New parses text into an Item and normalizes its date properties. It fails
// only with a *ParseError; unparseable dates are kept as sentinels.
func New(text string, opts Options) (*Item, error) {
	it := &Item{
		text: strings.TrimSpace(strings.ReplaceAll(text, "\n", " ")),
		opts: opts.WithDefaults(),
	}
	if err := it.parse(); err != nil {
		return nil, err
	}
	it.normalizeDates()
	return it, nil
}

// normalizeDates parses every date property and rewrites its token to the
// canonical form.
func (it *Item) normalizeDates() {
	for _, key := range dateKeys {
		v, ok := it.props[key]
		if !ok {
			continue
		}
		d := it.opts.Dates.Parse(v.Text, time.Time{}, false)
		if d.IsEmpty() {
			continue
		}
		canonical := d.String()
		if canonical != v.Text {
			spans := findSpans(tokenExpr(key, ""), it.text)
			if len(spans) > 0 {
				it.text = replaceSpans(it.text, spans[:1], key+":"+canonical)
			}
		}
		it.props[key] = Value{Text: canonical, Date: d}
	}
}

// Text returns the authoritative text of the item.
func (it *Item) Text() string { return it.text }

func (it *Item) String() string { return it.text }

// Options returns the options the item was created with.
func (it *Item) Options() Options { return it.opts }

// Dirty reports whether the item changed since it was created or last cleaned.
func (it *Item) Dirty() bool { return it.dirty }

// MarkClean resets the dirty flag.
func (it *Item) MarkClean() { it.dirty = false }

// IsActive reports whether the item is neither done nor a report.
func (it *Item) IsActive() bool { return !it.Done && !it.IsReport }

// Prop returns a single-valued property.
func (it *Item) Prop(key string) (Value, bool) {
	v, ok := it.props[strings.ToLower(key)]
	return v, ok
}

// Props returns the values of a multi-valued property in text order.
func (it *Item) Props(key string) []string {
	return slices.Clone(it.multi[strings.ToLower(key)])
}

// HasProp reports whether key occurs in the item.
func (it *Item) HasProp(key string) bool {
	key = strings.ToLower(key)
	if _, ok := it.props[key]; ok {
		return true
	}
	return len(it.multi[key]) > 0
}

// PropKeys returns all property keys, sorted.
func (it *Item) PropKeys() []string {
	keys := make([]string, 0, len(it.props)+len(it.multi))
	for k := range it.props {
		keys = append(keys, k)
	}
	for k := range it.multi {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// DateProp returns the parsed date of a date property.
func (it *Item) DateProp(key string) (time.Time, bool) {
	v, ok := it.props[key]
	if !ok {
		return time.Time{}, false
	}
	return v.Time()
}

// DueDate returns the parsed due date.
func (it *Item) DueDate() (time.Time, bool) { return it.DateProp(KeyDue) }

// DoneDate returns the parsed done date.
func (it *Item) DoneDate() (time.Time, bool) { return it.DateProp(KeyDone) }

// Duration returns the tracked minutes, 0 when absent or not a number.
func (it *Item) Duration() int {
	v, ok := it.props[KeyDuration]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v.Text)
	if err != nil {
		return 0
	}
	return n
}

// SetToDone marks the item done and stamps the done property with now.
// Report items are left untouched.
func (it *Item) SetToDone() {
	if it.IsReport {
		return
	}
	if !strings.HasPrefix(it.text, it.opts.DonePrefix) {
		it.text = it.opts.DonePrefix + it.text
	}
	it.ReplaceOrAddProperty(KeyDone, DateValue(it.opts.Dates.Now()))
	it.refreshPrefixes()
}

// Reopen clears the done state and the done property. Report items are left
// untouched.
func (it *Item) Reopen() {
	if it.IsReport {
		return
	}
	it.text = strings.TrimPrefix(it.text, it.opts.DonePrefix)
	it.RemoveProperty(KeyDone, "")
	it.refreshPrefixes()
}

// SetPriority replaces the leading "(X) " priority. An empty priority removes it.
func (it *Item) SetPriority(p string) error {
	if p != "" && (len(p) != 1 || p[0] < 'A' || p[0] > 'Z') {
		return ErrInvalidPriority
	}
	if !it.IsActive() {
		return ErrInactiveItem
	}

	text, _ := rePrioPrefix.Replace(it.text, "", 0, 1)
	if p != "" {
		text = "(" + p + ") " + text
	}
	it.text = collapseSpaces(text)
	it.dirty = true
	it.refreshPrefixes()
	return nil
}

// ReplaceOrAddProperty sets key to v. Multi-valued keys get v appended as an
// additional token. Single-valued keys replace the first token and drop every
// further occurrence. An empty v.Text removes the property.
func (it *Item) ReplaceOrAddProperty(key string, v Value) {
	key = strings.ToLower(key)
	if v.Text == "" {
		it.RemoveProperty(key, "")
		return
	}
	v.Text = strings.Join(strings.Fields(v.Text), "_")
	if IsDateKey(key) {
		if v.Date.IsEmpty() {
			v.Date = it.opts.Dates.Parse(v.Text, time.Time{}, false)
		}
		v.Text = v.Date.String()
	}
	token := key + ":" + v.Text

	if IsMultiKey(key) {
		it.multi[key] = append(it.multi[key], v.Text)
		it.text = collapseSpaces(it.text + " " + token)
		it.dirty = true
		return
	}

	spans := findSpans(tokenExpr(key, ""), it.text)
	if len(spans) == 0 {
		it.text = collapseSpaces(it.text + " " + token)
	} else {
		it.text = collapseSpaces(replaceSpans(it.text, spans, token))
	}

	it.props[key] = v
	if key == KeyID && it.opts.IDSupport {
		it.ID = v.Text
	}
	it.dirty = true
}

// RemoveProperty removes key from the item. For multi-valued keys a non-empty
// selector removes only the first occurrence with that value.
func (it *Item) RemoveProperty(key, selector string) {
	key = strings.ToLower(key)

	if IsMultiKey(key) && selector != "" {
		idx := slices.Index(it.multi[key], selector)
		if idx < 0 {
			return
		}
		it.multi[key] = slices.Delete(it.multi[key], idx, idx+1)
		if len(it.multi[key]) == 0 {
			delete(it.multi, key)
		}
		spans := findSpans(tokenExpr(key, selector), it.text)
		if len(spans) > 0 {
			it.text = collapseSpaces(replaceSpans(it.text, spans[:1], ""))
		}
		it.dirty = true
		return
	}

	if !it.HasProp(key) {
		return
	}
	delete(it.props, key)
	delete(it.multi, key)
	it.text = collapseSpaces(replaceSpans(it.text, findSpans(tokenExpr(key, ""), it.text), ""))
	if key == KeyID {
		it.ID = ""
	}
	it.dirty = true
}

// refreshPrefixes re-derives the fields that depend on the start of the text.
func (it *Item) refreshPrefixes() {
	it.Priority = ""
	_ = parsePriority(it)
	_ = parseDone(it)
	_ = parseReport(it)
}
