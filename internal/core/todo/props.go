package todo

import (
	"slices"
	"time"

	"github.com/colonyops/todonext/internal/core/dates"
)

// Property keys with defined semantics. All other keys pass through untouched.
const (
	KeyDue       = "due"
	KeyDone      = "done"
	KeyCreated   = "created"
	KeyStarted   = "started"
	KeyDuration  = "duration"
	KeyID        = "id"
	KeyBlockedBy = "blockedby"
	KeyFile      = "file"
	KeyMailto    = "mailto"
)

var (
	dateKeys  = []string{KeyDue, KeyDone, KeyCreated, KeyStarted}
	multiKeys = []string{KeyBlockedBy, KeyFile, KeyMailto}
)

// IsDateKey reports whether key holds a date.
func IsDateKey(key string) bool {
	return slices.Contains(dateKeys, key)
}

// IsMultiKey reports whether key may occur several times in one item.
func IsMultiKey(key string) bool {
	return slices.Contains(multiKeys, key)
}

// DateKeys returns the keys that hold dates.
func DateKeys() []string {
	return slices.Clone(dateKeys)
}

// Value is a single-valued property: the text written after "key:" and, for
// date properties, the parsed date or its unparseable sentinel.
type Value struct {
	Text string
	Date dates.Value
}

// StringValue wraps plain text.
func StringValue(s string) Value {
	return Value{Text: s}
}

// DateValue wraps t in its canonical text form.
func DateValue(t time.Time) Value {
	d := dates.Date(t)
	return Value{Text: d.String(), Date: d}
}

// Time returns the parsed date, if any.
func (v Value) Time() (time.Time, bool) {
	return v.Date.Time()
}

func (v Value) String() string {
	return v.Text
}
