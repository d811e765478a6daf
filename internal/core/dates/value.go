// Package dates converts between human-entered date expressions and the
// canonical form stored in todo files.
package dates

import (
	"strings"
	"time"
)

// SentinelPrefix marks a date expression that could not be parsed.
const SentinelPrefix = "?"

// Canonical layouts written back to todo files.
const (
	LayoutDate     = "2006-01-02"
	LayoutDateTime = "2006-01-02_15:04"
)

// Value is the outcome of parsing a date expression. It is either empty, a
// real time, or an unparseable sentinel string starting with "?".
type Value struct {
	t        time.Time
	sentinel string
	valid    bool
}

// Date wraps a parsed time.
func Date(t time.Time) Value {
	return Value{t: t, valid: true}
}

// Sentinel wraps an unparseable expression. The "?" prefix is added unless the
// expression already carries it.
func Sentinel(expr string) Value {
	expr = strings.Join(strings.Fields(expr), "_")
	if !strings.HasPrefix(expr, SentinelPrefix) {
		expr = SentinelPrefix + expr
	}
	return Value{sentinel: expr}
}

// Time returns the parsed time and whether the value holds one.
func (v Value) Time() (time.Time, bool) {
	return v.t, v.valid
}

// IsValid reports whether the value holds a real date.
func (v Value) IsValid() bool { return v.valid }

// IsSentinel reports whether the value is an unparseable expression.
func (v Value) IsSentinel() bool { return v.sentinel != "" }

// IsEmpty reports whether the value came from an empty expression.
func (v Value) IsEmpty() bool { return !v.valid && v.sentinel == "" }

// String returns the canonical display form, see Format.
func (v Value) String() string {
	switch {
	case v.valid:
		return Format(v.t)
	default:
		return v.sentinel
	}
}

// Format returns YYYY-MM-DD for times at midnight and YYYY-MM-DD_HH:MM
// otherwise.
func Format(t time.Time) string {
	if IsMidnight(t) {
		return t.Format(LayoutDate)
	}
	return t.Format(LayoutDateTime)
}

// IsMidnight reports whether t carries no time of day (hour and minute zero).
func IsMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0
}

// SameDay reports whether both times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsSameDay is SameDay for values; it is false when either value is not a
// real date.
func IsSameDay(a, b Value) bool {
	if !a.valid || !b.valid {
		return false
	}
	return SameDay(a.t, b.t)
}

// Shorten returns a human friendly label relative to today: "today",
// "yesterday", "tomorrow", "HH:MM" for today with a time, "MM-DD" within the
// same year and "YYYY-MM-DD" otherwise. Sentinels are returned unchanged.
func Shorten(v Value, today time.Time) string {
	if !v.valid {
		return v.sentinel
	}

	t := v.t
	clock := t.Format("15:04")

	switch {
	case SameDay(today, t):
		if IsMidnight(t) {
			return "today"
		}
		return clock
	case SameDay(today.AddDate(0, 0, -1), t):
		if IsMidnight(t) {
			return "yesterday"
		}
		return "yday," + clock
	case SameDay(today.AddDate(0, 0, 1), t):
		if IsMidnight(t) {
			return "tomorrow"
		}
		return "tomorrow," + clock
	case t.Year() == today.Year():
		return t.Format("01-02")
	default:
		return t.Format(LayoutDate)
	}
}

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
