package todo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/colonyops/todonext/internal/core/dates"
)

// IsOverdue reports whether the due date has passed. A midnight due date on
// the same day as now is due today, not overdue.
func (it *Item) IsOverdue(now time.Time) bool {
	due, ok := it.DueDate()
	if !ok || !now.After(due) {
		return false
	}
	if dates.IsMidnight(due) && dates.SameDay(due, now) {
		return false
	}
	return true
}

// IsDueToday reports whether the item is due on now's day and not yet overdue.
func (it *Item) IsDueToday(now time.Time) bool {
	due, ok := it.DueDate()
	if !ok || !dates.SameDay(due, now) {
		return false
	}
	return dates.IsMidnight(due) || due.After(now)
}

// Check returns human readable warnings about the item: file properties
// pointing at missing paths and date properties that could not be parsed.
func (it *Item) Check() []string {
	var warnings []string

	for _, f := range it.multi[KeyFile] {
		if isRemote(f) {
			continue
		}
		path := f
		if !filepath.IsAbs(path) && it.opts.BaseDir != "" {
			path = filepath.Join(it.opts.BaseDir, path)
		}
		if _, err := os.Stat(path); err != nil {
			warnings = append(warnings, fmt.Sprintf("file %q does not exist", f))
		}
	}

	for _, key := range dateKeys {
		v, ok := it.props[key]
		if !ok {
			continue
		}
		if !v.Date.IsValid() {
			warnings = append(warnings, fmt.Sprintf("property %s:%s is not a valid date", key, v.Text))
		}
	}

	return warnings
}

func isRemote(path string) bool {
	scheme, _, ok := strings.Cut(path, "://")
	return ok && scheme != "" && !strings.ContainsAny(scheme, `/\`)
}
