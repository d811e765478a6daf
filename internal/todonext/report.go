package todonext

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/colonyops/todonext/internal/core/dates"
	"github.com/colonyops/todonext/internal/core/todo"
)

const reportDefaultDays = 7

// Range is an inclusive time span.
type Range struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t lies within r.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// ReportRange resolves the from and to expressions of the report command.
// "*" or "all" selects everything up to today, a single date selects that day
// and no date selects the last seven days. Unparseable expressions count as
// missing. The range always ends at the end of its last day.
func (a *App) ReportRange(from, to string) Range {
	today := a.Dates.Today()

	if from == "*" || from == "all" {
		return Range{From: time.Unix(0, 0).In(today.Location()), To: endOfDay(today)}
	}

	f, fok := a.dayOf(from)
	t, tok := a.dayOf(to)

	var r Range
	switch {
	case fok && tok:
		r = Range{From: f, To: t}
	case fok:
		r = Range{From: f, To: f}
	default:
		r = Range{From: today.AddDate(0, 0, -reportDefaultDays), To: today}
	}

	if r.From.After(r.To) {
		r.From, r.To = r.To, r.From
	}
	r.To = endOfDay(r.To)
	return r
}

func (a *App) dayOf(expr string) (time.Time, bool) {
	if strings.TrimSpace(expr) == "" {
		return time.Time{}, false
	}
	t, ok := a.Dates.Parse(expr, a.Dates.Today(), false).Time()
	if !ok {
		a.log.Debug().Str("expr", expr).Msg("cannot parse report date")
		return time.Time{}, false
	}
	return dates.StartOfDay(t), true
}

func endOfDay(t time.Time) time.Time {
	return dates.StartOfDay(t).AddDate(0, 0, 1).Add(-time.Second)
}

// ReportEntry is a done or report item together with its origin.
type ReportEntry struct {
	Item     *todo.Item
	Archived bool
}

// ReportDay groups the entries completed on one day. Day is the zero time
// for items without a done date.
type ReportDay struct {
	Day     time.Time
	Entries []ReportEntry
}

// Report collects the done and report items of the todo file and every
// archive file whose done date falls in r, grouped per day in ascending
// order. Items without a done date are only included when r starts at the
// epoch.
func (a *App) Report(r Range) ([]ReportDay, error) {
	var entries []ReportEntry

	l, err := a.Load()
	if err != nil {
		return nil, err
	}
	for it := range l.Filter(func(it *todo.Item) bool { return !it.IsActive() }) {
		entries = append(entries, ReportEntry{Item: it})
	}

	files, err := a.archiveFiles()
	if err != nil {
		return nil, err
	}
	for _, path := range files {
		al, err := a.loadArchive(path)
		if err != nil {
			return nil, err
		}
		for it := range al.Filter(func(it *todo.Item) bool { return !it.IsActive() }) {
			entries = append(entries, ReportEntry{Item: it, Archived: true})
		}
	}

	epoch := time.Unix(0, 0)
	entries = slices.DeleteFunc(entries, func(e ReportEntry) bool {
		done, ok := e.Item.DoneDate()
		if !ok {
			return r.From.After(epoch)
		}
		return !r.Contains(done)
	})

	slices.SortStableFunc(entries, func(x, y ReportEntry) int {
		return cmp.Compare(doneUnix(x.Item), doneUnix(y.Item))
	})

	var days []ReportDay
	for _, e := range entries {
		var day time.Time
		if done, ok := e.Item.DoneDate(); ok {
			day = dates.StartOfDay(done)
		}
		if n := len(days); n > 0 && days[n-1].Day.Equal(day) {
			days[n-1].Entries = append(days[n-1].Entries, e)
			continue
		}
		days = append(days, ReportDay{Day: day, Entries: []ReportEntry{e}})
	}
	return days, nil
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`,
	"<", `\<`, ">", `\>`, "#", `\#`,
)

// ReportMarkdown renders days as a Markdown document, one section per day.
// text renders a single item as plain text; it is escaped here.
func ReportMarkdown(days []ReportDay, text func(ReportEntry) string) string {
	var b strings.Builder
	count := 0
	for i, d := range days {
		if i > 0 {
			b.WriteString("\n")
		}
		if d.Day.IsZero() {
			b.WriteString("## Report for unknown date\n\n")
		} else {
			fmt.Fprintf(&b, "## Report for %s\n\n", d.Day.Format("Monday, 2006-01-02"))
		}
		for _, e := range d.Entries {
			line := markdownEscaper.Replace(text(e))
			if e.Archived {
				line += " *(archived)*"
			}
			fmt.Fprintf(&b, "- %s\n", line)
			count++
		}
	}
	if count == 0 {
		b.WriteString("No done or report items found.\n")
	}
	return b.String()
}
