package todonext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatcher(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		regex      bool
		ignoreCase bool
		text       string
		want       bool
	}{
		{"empty matches all", "", false, false, "anything", true},
		{"literal", "a.c", false, false, "xa.cx", true},
		{"literal escapes metacharacters", "a.c", false, false, "abc", false},
		{"regex", "a.c", true, false, "abc", true},
		{"case sensitive", "Bob", false, false, "call bob", false},
		{"case insensitive", "Bob", false, true, "call bob", true},
		{"lookahead", `@\w+(?=\s|$)`, true, false, "call @phone", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMatcher(tt.query, tt.regex, tt.ignoreCase)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m(tt.text))
		})
	}
}

func TestNewMatcher_InvalidRegex(t *testing.T) {
	_, err := NewMatcher("(unclosed", true, false)
	assert.Error(t, err)
}

func TestSearch_CurrentListFirst(t *testing.T) {
	env := newTestApp(t, "call bob\nemail alice\n")
	writeFile(t, env.dir+"/2023/06.txt", "x call bob again done:2023-06-01\n")

	m, err := NewMatcher("bob", false, false)
	require.NoError(t, err)
	results, err := env.app.Search(m)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, env.app.Store.Path(), results[0].Path)
	assert.False(t, results[0].Archived)
	require.Len(t, results[0].Items, 1)
	assert.Equal(t, "call bob", results[0].Items[0].Text())
	assert.True(t, results[1].Archived)
}
