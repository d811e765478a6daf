package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var (
	// relative offsets like "+1w2d", "m3d" or "p1y6m". "+"/"p" add, "-"/"m"
	// subtract; years, months and weeks take two digits, days and hours three.
	reRelative = regexp.MustCompile(`(?i)^([+\-pm]?)(?:(\d{1,2})y)?(?:(\d{1,2})m)?(?:(\d{1,2})w)?(?:(\d{1,3})d)?(?:(\d{1,3})h)?$`)

	// partial date without year, day first: "21.12."
	rePartial = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.$`)

	// absolute layouts tried after custom formats
	absoluteLayouts = []string{
		"2006-01-02 15:04",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
)

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday, "so": time.Sunday,
	"monday": time.Monday, "mon": time.Monday, "mo": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "di": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday, "mi": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "do": time.Thursday,
	"friday": time.Friday, "fri": time.Friday, "fr": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday, "sa": time.Saturday,
}

// Parser turns date expressions into Values. The zero value is not usable;
// create one with NewParser.
type Parser struct {
	formats []string
	now     func() time.Time
	natural *when.Parser
}

// Option configures a Parser.
type Option func(*Parser)

// WithFormats adds strftime-style custom formats, "_" standing for a space.
func WithFormats(formats ...string) Option {
	return func(p *Parser) {
		p.formats = append(p.formats, formats...)
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// NewParser creates a Parser.
func NewParser(opts ...Option) *Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	p := &Parser{now: time.Now, natural: w}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Now returns the parser clock's current time truncated to the minute.
func (p *Parser) Now() time.Time {
	return p.now().Truncate(time.Minute)
}

// Today returns midnight of the parser clock's current day.
func (p *Parser) Today() time.Time {
	return StartOfDay(p.now())
}

// Parse interprets expr relative to ref (today at midnight if ref is zero).
// With prospective set, weekday names and relative offsets are measured from
// now instead of ref. Parse never fails: unrecognized input yields a Sentinel.
func (p *Parser) Parse(expr string, ref time.Time, prospective bool) Value {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Value{}
	}

	now := p.Now()
	if ref.IsZero() {
		ref = p.Today()
	}
	base := ref
	if prospective {
		base = now
	}

	lower := strings.ToLower(expr)
	datePart, timePart, hasTime := strings.Cut(lower, "_")

	if t, ok := p.special(datePart, ref, base, now); ok {
		if hasTime {
			clock, err := time.Parse("15:04", timePart)
			if err != nil {
				return Sentinel(expr)
			}
			t = time.Date(t.Year(), t.Month(), t.Day(), clock.Hour(), clock.Minute(), 0, 0, t.Location())
		}
		return Date(t)
	}

	spaced := strings.ReplaceAll(expr, "_", " ")

	if t, ok := p.custom(spaced, ref); ok {
		return Date(t)
	}

	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, spaced, ref.Location()); err == nil {
			return Date(t)
		}
	}

	if t, ok := p.naturalLanguage(spaced, ref); ok {
		return Date(t)
	}

	if t, ok := partial(lower, now); ok {
		return Date(t)
	}

	return Sentinel(expr)
}

// special handles keywords, weekday names and relative offsets.
func (p *Parser) special(part string, ref, base, now time.Time) (time.Time, bool) {
	switch part {
	case "now", "n":
		return now, true
	case "today", "td":
		return ref, true
	case "yesterday", "yday", "yd":
		return ref.AddDate(0, 0, -1), true
	case "tomorrow", "tm":
		return ref.AddDate(0, 0, 1), true
	case "bom", "bm":
		first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return first.AddDate(0, 1, 0), true
	case "eom", "em":
		first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return first.AddDate(0, 1, -1), true
	}

	if wd, ok := weekdays[part]; ok {
		return NextWeekday(base, wd), true
	}

	if t, ok := Relative(part, base); ok {
		return t, true
	}

	return time.Time{}, false
}

func (p *Parser) custom(expr string, ref time.Time) (time.Time, bool) {
	for _, format := range p.formats {
		format = strings.ReplaceAll(format, "_", " ")
		layout, err := strftime.Layout(format)
		if err != nil {
			continue
		}
		t, err := time.ParseInLocation(layout, expr, ref.Location())
		if err != nil {
			continue
		}
		if !strings.Contains(format, "%Y") && !strings.Contains(format, "%y") {
			t = time.Date(ref.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, ref.Location())
		}
		return t, true
	}
	return time.Time{}, false
}

// naturalLanguage accepts a result only when it spans the whole expression.
func (p *Parser) naturalLanguage(expr string, ref time.Time) (time.Time, bool) {
	res, err := p.natural.Parse(expr, ref)
	if err != nil || res == nil {
		return time.Time{}, false
	}
	if res.Index != 0 || !strings.EqualFold(strings.TrimSpace(res.Text), expr) {
		return time.Time{}, false
	}
	return res.Time, true
}

// partial parses "DD.MM." into the next occurrence on or after now. Day and
// month are swapped when the given order is impossible.
func partial(expr string, now time.Time) (time.Time, bool) {
	m := rePartial.FindStringSubmatch(expr)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month > 12 && day <= 12 {
		day, month = month, day
	}
	if month < 1 || month > 12 || day < 1 || day > daysIn(time.Month(month), now.Year()) {
		return time.Time{}, false
	}

	t := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, now.Location())
	if now.After(t) && !SameDay(now, t) {
		t = AddYears(t, 1)
	}
	return t, true
}

// Relative applies an offset expression like "+1y2m3w4d5h" to ref. It
// reports false when expr is not a relative expression.
func Relative(expr string, ref time.Time) (time.Time, bool) {
	m := reRelative.FindStringSubmatch(expr)
	if m == nil {
		return time.Time{}, false
	}

	var n [5]int
	found := false
	for i, s := range m[2:] {
		if s == "" {
			continue
		}
		n[i], _ = strconv.Atoi(s)
		found = true
	}
	if !found {
		return time.Time{}, false
	}

	sign := 1
	if s := strings.ToLower(m[1]); s == "-" || s == "m" {
		sign = -1
	}

	years, months, weeks, days, hours := n[0], n[1], n[2], n[3], n[4]
	t := AddYears(ref, sign*years)
	t = AddMonths(t, sign*months)
	t = t.AddDate(0, 0, sign*(7*weeks+days))
	t = t.Add(time.Duration(sign*hours) * time.Hour)
	return t, true
}

// AddYears adds n years, moving February 29th to the 28th in non-leap years.
func AddYears(t time.Time, n int) time.Time {
	return AddMonths(t, 12*n)
}

// AddMonths adds n calendar months, clamping the day to the target month's
// length.
func AddMonths(t time.Time, n int) time.Time {
	if n == 0 {
		return t
	}
	y, m, d := t.Date()
	total := int(m) - 1 + n
	y += total / 12
	total %= 12
	if total < 0 {
		total += 12
		y--
	}
	month := time.Month(total + 1)
	if last := daysIn(month, y); d > last {
		d = last
	}
	return time.Date(y, month, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// NextWeekday returns the next date on or after ref that falls on wd.
func NextWeekday(ref time.Time, wd time.Weekday) time.Time {
	diff := (int(wd) - int(ref.Weekday()) + 7) % 7
	return ref.AddDate(0, 0, diff)
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
