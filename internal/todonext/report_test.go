package todonext

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestReportRange(t *testing.T) {
	env := newTestApp(t, "")
	endOf := func(t time.Time) time.Time { return t.AddDate(0, 0, 1).Add(-time.Second) }

	tests := []struct {
		name     string
		from, to string
		want     Range
	}{
		{"default last week", "", "", Range{day(2026, 10, 10), endOf(day(2026, 10, 17))}},
		{"single day", "yesterday", "", Range{day(2026, 10, 16), endOf(day(2026, 10, 16))}},
		{"range", "2026-10-01", "2026-10-05", Range{day(2026, 10, 1), endOf(day(2026, 10, 5))}},
		{"reversed range", "2026-10-05", "2026-10-01", Range{day(2026, 10, 1), endOf(day(2026, 10, 5))}},
		{"unparseable falls back", "whenever", "", Range{day(2026, 10, 10), endOf(day(2026, 10, 17))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := env.app.ReportRange(tt.from, tt.to)
			assert.Equal(t, tt.want.From, got.From)
			assert.Equal(t, tt.want.To, got.To)
		})
	}

	all := env.app.ReportRange("*", "")
	assert.Equal(t, int64(0), all.From.Unix())
	assert.Equal(t, endOf(day(2026, 10, 17)), all.To)
}

func TestReport(t *testing.T) {
	env := newTestApp(t, "x fixed bug done:2026-10-16_09:00\n* standup notes done:2026-10-16_08:00\nopen item\n")
	writeFile(t, filepath.Join(env.dir, "2026", "10.txt"), "x shipped release done:2026-10-12\n")
	writeFile(t, filepath.Join(env.dir, "2026", "09.txt"), "x too old done:2026-09-01\n")
	writeFile(t, filepath.Join(env.dir, "unsorted.txt"), "x no date\n")

	days, err := env.app.Report(env.app.ReportRange("", ""))
	require.NoError(t, err)

	require.Len(t, days, 2)
	assert.Equal(t, day(2026, 10, 12), days[0].Day)
	require.Len(t, days[0].Entries, 1)
	assert.True(t, days[0].Entries[0].Archived)

	assert.Equal(t, day(2026, 10, 16), days[1].Day)
	require.Len(t, days[1].Entries, 2)
	assert.Equal(t, "* standup notes done:2026-10-16_08:00", days[1].Entries[0].Item.Text())
	assert.False(t, days[1].Entries[1].Archived)
}

func TestReport_AllIncludesUndated(t *testing.T) {
	env := newTestApp(t, "x finished done:2026-10-16\n")
	writeFile(t, filepath.Join(env.dir, "unsorted.txt"), "x no date\n")

	days, err := env.app.Report(env.app.ReportRange("all", ""))
	require.NoError(t, err)

	require.Len(t, days, 2)
	assert.True(t, days[0].Day.IsZero())
	assert.Equal(t, "x no date", days[0].Entries[0].Item.Text())
}

func TestReportMarkdown(t *testing.T) {
	env := newTestApp(t, "x fix *all* bugs done:2026-10-16\n")
	days, err := env.app.Report(env.app.ReportRange("", ""))
	require.NoError(t, err)

	md := ReportMarkdown(days, func(e ReportEntry) string { return e.Item.Text() })
	assert.Equal(t, "## Report for Friday, 2026-10-16\n\n- x fix \\*all\\* bugs done:2026-10-16\n", md)

	assert.Equal(t, "No done or report items found.\n", ReportMarkdown(nil, nil))
}
