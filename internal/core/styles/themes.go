package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Palette assigns a color to every role a listing can highlight.
type Palette struct {
	Context  lipgloss.Color
	Project  lipgloss.Color
	Delegate lipgloss.Color
	ID       lipgloss.Color
	Block    lipgloss.Color
	Marker   lipgloss.Color

	Priority lipgloss.Color
	Overdue  lipgloss.Color
	Today    lipgloss.Color
	Done     lipgloss.Color
	Report   lipgloss.Color

	Header lipgloss.Color
	Muted  lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Context:  lipgloss.Color("#7dcfff"),
		Project:  lipgloss.Color("#bb9af7"),
		Delegate: lipgloss.Color("#e0af68"),
		ID:       lipgloss.Color("#7aa2f7"),
		Block:    lipgloss.Color("#f7768e"),
		Marker:   lipgloss.Color("#ff9e64"),
		Priority: lipgloss.Color("#c0caf5"),
		Overdue:  lipgloss.Color("#f7768e"),
		Today:    lipgloss.Color("#e0af68"),
		Done:     lipgloss.Color("#565f89"),
		Report:   lipgloss.Color("#9ece6a"),
		Header:   lipgloss.Color("#7aa2f7"),
		Muted:    lipgloss.Color("#565f89"),
	},
	"gruvbox": {
		Context:  lipgloss.Color("#8ec07c"),
		Project:  lipgloss.Color("#d3869b"),
		Delegate: lipgloss.Color("#fabd2f"),
		ID:       lipgloss.Color("#83a598"),
		Block:    lipgloss.Color("#fb4934"),
		Marker:   lipgloss.Color("#fe8019"),
		Priority: lipgloss.Color("#ebdbb2"),
		Overdue:  lipgloss.Color("#fb4934"),
		Today:    lipgloss.Color("#fabd2f"),
		Done:     lipgloss.Color("#665c54"),
		Report:   lipgloss.Color("#b8bb26"),
		Header:   lipgloss.Color("#83a598"),
		Muted:    lipgloss.Color("#665c54"),
	},
	"catppuccin": {
		Context:  lipgloss.Color("#94e2d5"), // Teal
		Project:  lipgloss.Color("#cba6f7"), // Mauve
		Delegate: lipgloss.Color("#f9e2af"), // Yellow
		ID:       lipgloss.Color("#89b4fa"), // Blue
		Block:    lipgloss.Color("#f38ba8"), // Red
		Marker:   lipgloss.Color("#fab387"), // Peach
		Priority: lipgloss.Color("#cdd6f4"), // Text
		Overdue:  lipgloss.Color("#f38ba8"), // Red
		Today:    lipgloss.Color("#f9e2af"), // Yellow
		Done:     lipgloss.Color("#6c7086"), // Overlay0
		Report:   lipgloss.Color("#a6e3a1"), // Green
		Header:   lipgloss.Color("#89b4fa"), // Blue
		Muted:    lipgloss.Color("#6c7086"), // Overlay0
	},
	// close to the terminal defaults of the classic look
	"classic": {
		Context:  lipgloss.Color("6"),
		Project:  lipgloss.Color("5"),
		Delegate: lipgloss.Color("3"),
		ID:       lipgloss.Color("4"),
		Block:    lipgloss.Color("1"),
		Marker:   lipgloss.Color("3"),
		Priority: lipgloss.Color("15"),
		Overdue:  lipgloss.Color("9"),
		Today:    lipgloss.Color("11"),
		Done:     lipgloss.Color("8"),
		Report:   lipgloss.Color("2"),
		Header:   lipgloss.Color("15"),
		Muted:    lipgloss.Color("8"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// roles maps the names accepted in color overrides to palette fields.
var roles = map[string]func(p *Palette) *lipgloss.Color{
	"context":  func(p *Palette) *lipgloss.Color { return &p.Context },
	"project":  func(p *Palette) *lipgloss.Color { return &p.Project },
	"delegate": func(p *Palette) *lipgloss.Color { return &p.Delegate },
	"id":       func(p *Palette) *lipgloss.Color { return &p.ID },
	"block":    func(p *Palette) *lipgloss.Color { return &p.Block },
	"marker":   func(p *Palette) *lipgloss.Color { return &p.Marker },
	"priority": func(p *Palette) *lipgloss.Color { return &p.Priority },
	"overdue":  func(p *Palette) *lipgloss.Color { return &p.Overdue },
	"today":    func(p *Palette) *lipgloss.Color { return &p.Today },
	"done":     func(p *Palette) *lipgloss.Color { return &p.Done },
	"report":   func(p *Palette) *lipgloss.Color { return &p.Report },
	"header":   func(p *Palette) *lipgloss.Color { return &p.Header },
	"muted":    func(p *Palette) *lipgloss.Color { return &p.Muted },
}

// RoleNames returns the sorted role names usable in WithOverrides.
func RoleNames() []string {
	names := make([]string, 0, len(roles))
	for name := range roles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithOverrides returns a copy of p with the colors of the named roles
// replaced. Unknown roles are ignored.
func (p Palette) WithOverrides(colors map[string]string) Palette {
	for role, c := range colors {
		if field, ok := roles[role]; ok {
			*field(&p) = lipgloss.Color(c)
		}
	}
	return p
}
