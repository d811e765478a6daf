package todonext

import (
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/todonext/internal/core/config"
	"github.com/colonyops/todonext/internal/core/dates"
	"github.com/colonyops/todonext/internal/core/styles"
	"github.com/colonyops/todonext/internal/core/todo"
	"github.com/colonyops/todonext/internal/core/todolist"
)

const startedMarker = "*****"

// Renderer formats items for listings.
type Renderer struct {
	styles styles.Styles
	cfg    *config.Config
	now    time.Time
	list   *todolist.List
}

// NewRenderer returns a Renderer for items of l. l may be nil for items that
// are not part of the todo list, such as archived ones.
func (a *App) NewRenderer(s styles.Styles, l *todolist.List) *Renderer {
	return &Renderer{styles: s, cfg: a.Config, now: a.Now(), list: l}
}

// Render returns the colored listing line of it: its number or ID, blocker
// and tracking markers, and the display text.
func (r *Renderer) Render(it *todo.Item) string {
	var b strings.Builder

	if r.cfg.IDSupport && it.ID != "" {
		b.WriteString(r.styles.ID.Render("[" + it.ID + "]"))
	} else {
		b.WriteString(r.styles.ID.Render(fmt.Sprintf("[%3d]", it.Nr)))
	}

	if r.list != nil {
		if blockers := r.list.Blockers(it); len(blockers) > 0 {
			ids := make([]string, len(blockers))
			for i, bl := range blockers {
				ids[i] = bl.ID
			}
			b.WriteString(" " + r.styles.Block.Render("<"+strings.Join(ids, ",")+">"))
		}
	}

	if it.IsActive() && it.HasProp(todo.KeyStarted) {
		b.WriteString(" " + r.styles.Marker.Render(startedMarker))
	}

	line := r.lineStyle(it)
	for _, tok := range strings.Fields(r.Text(it)) {
		b.WriteString(" ")
		b.WriteString(r.tokenStyle(it, tok, line).Render(tok))
	}
	return b.String()
}

// Text returns the display text of it without colors: suppressed properties
// are removed and shortened ones replaced by their short form.
func (r *Renderer) Text(it *todo.Item) string {
	text := it.Text()

	if r.cfg.IDSupport {
		text = todo.RewriteProperty(text, todo.KeyID, drop)
		text = todo.RewriteProperty(text, todo.KeyBlockedBy, drop)
	}
	for _, key := range r.cfg.Suppress {
		text = todo.RewriteProperty(text, key, drop)
	}

	today := dates.StartOfDay(r.now)
	for _, key := range todo.DateKeys() {
		if !r.cfg.ShouldShorten(key) || r.cfg.ShouldSuppress(key) {
			continue
		}
		text = todo.RewriteProperty(text, key, func(value string) string {
			v, ok := it.Prop(key)
			if !ok || v.Text != value {
				return key + ":" + value
			}
			return key + ":" + dates.Shorten(v.Date, today)
		})
	}

	if r.cfg.ShouldShorten(config.ShortenFile) && !r.cfg.ShouldSuppress(todo.KeyFile) {
		text = todo.RewriteProperty(text, todo.KeyFile, func(value string) string {
			return todo.KeyFile + ":[" + filepath.Base(value) + "]"
		})
	}

	if r.cfg.ShouldShorten(config.ShortenURL) && len(it.URLs) > 0 {
		fields := strings.Fields(text)
		for i, f := range fields {
			if slices.Contains(it.URLs, f) {
				fields[i] = shortURL(f)
			}
		}
		text = strings.Join(fields, " ")
	}

	return text
}

func drop(string) string { return "" }

func shortURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return "[" + u.Host + "]"
}

// lineStyle picks the style of the whole line from the item status.
func (r *Renderer) lineStyle(it *todo.Item) lipgloss.Style {
	switch {
	case it.IsReport:
		return r.styles.Report
	case it.Done:
		return r.styles.Done
	case it.IsOverdue(r.now):
		return r.styles.Overdue
	case it.IsDueToday(r.now):
		return r.styles.Today
	case it.Priority != "":
		return r.styles.Priority
	default:
		return r.styles.Text
	}
}

// tokenStyle highlights contexts, projects, delegates and markers. Every other
// token takes the line style.
func (r *Renderer) tokenStyle(it *todo.Item, tok string, line lipgloss.Style) lipgloss.Style {
	switch {
	case strings.HasPrefix(tok, "@") && slices.Contains(it.Contexts, tok):
		return r.styles.Context
	case strings.HasPrefix(tok, "+") && slices.Contains(it.Projects, tok):
		return r.styles.Project
	case strings.HasPrefix(tok, ">>") && slices.Contains(it.DelegatedTo, tok[2:]),
		strings.HasPrefix(tok, "<<") && slices.Contains(it.DelegatedFrom, tok[2:]):
		return r.styles.Delegate
	case len(tok) >= 3 && tok[0] == '(' && tok[len(tok)-1] == ')' && slices.Contains(it.Markers, tok[1:len(tok)-1]):
		return r.styles.Marker
	default:
		return line
	}
}
