package styles

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemes_Complete(t *testing.T) {
	for _, name := range ThemeNames() {
		p, ok := GetPalette(name)
		require.True(t, ok)
		for _, role := range RoleNames() {
			assert.NotEmpty(t, *roles[role](&p), "theme %s lacks a %s color", name, role)
		}
	}
	_, ok := GetPalette(DefaultTheme)
	assert.True(t, ok)
}

func TestPalette_WithOverrides(t *testing.T) {
	p, _ := GetPalette(DefaultTheme)
	got := p.WithOverrides(map[string]string{"context": "#ff0000", "bogus": "#000000"})

	assert.Equal(t, lipgloss.Color("#ff0000"), got.Context)
	assert.Equal(t, p.Project, got.Project)
	assert.NotEqual(t, p.Context, got.Context, "original palette must be unchanged")
}

func TestNew_NoColors(t *testing.T) {
	p, _ := GetPalette(DefaultTheme)
	s := New(&bytes.Buffer{}, p, true)

	assert.Equal(t, "@home", s.Context.Render("@home"))
	assert.Equal(t, "@home", Plain().Context.Render("@home"))
}

func TestValidColor(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"#7aa2f7", true},
		{"#fff", true},
		{"12", true},
		{"255", true},
		{"", false},
		{"#zzzzzz", false},
		{"red", false},
		{"1234", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidColor(tt.in))
		})
	}
}

func TestGlamourStyle_UsesPalette(t *testing.T) {
	p, _ := GetPalette("gruvbox")
	cfg := GlamourStyle(p)

	require.NotNil(t, cfg.H2.Color)
	assert.Equal(t, "#83a598", *cfg.H2.Color)
}
