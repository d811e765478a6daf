// Package styles provides the lipgloss styles used to render todo listings
// and reports.
package styles

import (
	"io"

	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Styles holds one style per highlighted role.
type Styles struct {
	Context  lipgloss.Style
	Project  lipgloss.Style
	Delegate lipgloss.Style
	ID       lipgloss.Style
	Block    lipgloss.Style
	Marker   lipgloss.Style

	Priority lipgloss.Style
	Overdue  lipgloss.Style
	Today    lipgloss.Style
	Done     lipgloss.Style
	Report   lipgloss.Style

	// Text is the unhighlighted style of open items.
	Text lipgloss.Style

	Header  lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	palette Palette
}

// New builds styles for output written to w. With colors disabled every
// style renders plain text.
func New(w io.Writer, p Palette, noColors bool) Styles {
	r := lipgloss.NewRenderer(w)
	if noColors {
		r.SetColorProfile(termenv.Ascii)
	}

	fg := func(c lipgloss.Color) lipgloss.Style {
		return r.NewStyle().Foreground(c)
	}

	return Styles{
		Context:  fg(p.Context),
		Project:  fg(p.Project),
		Delegate: fg(p.Delegate),
		ID:       fg(p.ID),
		Block:    fg(p.Block).Bold(true),
		Marker:   fg(p.Marker).Bold(true),
		Priority: fg(p.Priority).Bold(true),
		Overdue:  fg(p.Overdue),
		Today:    fg(p.Today),
		Done:     fg(p.Done),
		Report:   fg(p.Report),
		Text:     r.NewStyle(),
		Header:   fg(p.Header).Bold(true),
		Muted:    fg(p.Muted),
		Success:  fg(p.Today),
		Warning:  fg(p.Marker),
		Error:    fg(p.Overdue).Bold(true),
		palette:  p,
	}
}

// Plain returns styles that never emit escape sequences.
func Plain() Styles {
	return New(io.Discard, Palette{}, true)
}

// Palette returns the palette the styles were built from.
func (s Styles) Palette() Palette {
	return s.palette
}

// ValidColor reports whether c is an ANSI color index or a hex color.
func ValidColor(c string) bool {
	if c == "" {
		return false
	}
	if c[0] == '#' {
		_, err := colorful.Hex(c)
		return err == nil
	}
	for _, r := range c {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(c) <= 3
}

func colorHexPtr(c lipgloss.Color) *string {
	if c == "" {
		return nil
	}
	s := string(c)
	if s[0] == '#' {
		cc, err := colorful.Hex(s)
		if err != nil {
			return nil
		}
		s = cc.Hex()
	}
	return &s
}

// GlamourStyle returns a Glamour style config derived from the palette.
func GlamourStyle(p Palette) ansi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	header := colorHexPtr(p.Header)
	muted := colorHexPtr(p.Muted)
	report := colorHexPtr(p.Report)

	cfg.Heading.Color = header
	cfg.H1.Color = header
	cfg.H2.Color = header
	cfg.H3.Color = header

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted
	cfg.Emph.Color = muted

	cfg.Code.Color = report
	cfg.Strong.Color = report

	return cfg
}
