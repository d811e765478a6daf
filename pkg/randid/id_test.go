package randid

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashed(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z]{3}$`)

	for range 50 {
		id := Hashed("Buy milk @store", 3, nil)
		assert.True(t, pattern.MatchString(id), "Hashed returned %q", id)
	}
}

func TestHashed_SkipsTaken(t *testing.T) {
	taken := map[string]bool{}
	for range 200 {
		id := Hashed("same text", 3, func(s string) bool { return taken[s] })
		assert.False(t, taken[id], "Hashed returned taken id %q", id)
		taken[id] = true
	}
}

func TestHashed_Exhausted(t *testing.T) {
	id := Hashed("anything", 3, func(string) bool { return true })
	assert.Equal(t, Fallback, id)
}

func TestBase26(t *testing.T) {
	assert.Equal(t, "aaa", base26(0, 3))
	assert.Equal(t, "aab", base26(1, 3))
	assert.Equal(t, "aba", base26(26, 3))
	assert.Equal(t, "zzz", base26(26*26*26-1, 3))
}
