// Package randid generates short random identifiers.
package randid

import (
	"crypto/md5"
	"encoding/hex"
	"math"
	"math/rand/v2"
	"strconv"
)

const (
	letters = "abcdefghijklmnopqrstuvwxyz"

	// Fallback is returned by Hashed when no free ID was found.
	Fallback = "xxx"

	maxAttempts = 60
	// maxHashedLen keeps 26^n within the 16 hex digits a uint64 can hold.
	maxHashedLen = 13
)

// Hashed derives a lowercase base-26 ID of length characters from text. Each
// attempt prepends a random letter to the accumulated text and hashes it, so
// equal texts still get different IDs. Candidates for which taken reports true
// are skipped; after 60 attempts Fallback is returned.
func Hashed(text string, length int, taken func(string) bool) string {
	length = min(max(length, 1), maxHashedLen)

	space := uint64(math.Pow(26, float64(length)))
	hexLen := int(math.Ceil(math.Log(float64(space)) / math.Log(16)))

	for range maxAttempts {
		text = string(letters[rand.IntN(len(letters))]) + text
		sum := md5.Sum([]byte(text))

		n, err := strconv.ParseUint(hex.EncodeToString(sum[:])[:hexLen], 16, 64)
		if err != nil {
			continue
		}
		id := base26(n%space, length)
		if taken == nil || !taken(id) {
			return id
		}
	}
	return Fallback
}

func base26(n uint64, length int) string {
	b := make([]byte, length)
	for i := length - 1; i >= 0; i-- {
		b[i] = letters[n%26]
		n /= 26
	}
	return string(b)
}
