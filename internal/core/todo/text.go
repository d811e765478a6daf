package todo

import (
	"slices"
	"strings"
)

// AppendText adds a fragment to the end of the text and re-derives every
// field, normalizing any date property the fragment introduces.
func (it *Item) AppendText(fragment string) error {
	fragment = strings.TrimSpace(strings.ReplaceAll(fragment, "\n", " "))
	if fragment == "" {
		return nil
	}
	return it.reparse(collapseSpaces(it.text + " " + fragment))
}

// RemoveToken removes the first whitespace separated token equal to tok and
// re-derives every field. It reports whether a token was removed.
func (it *Item) RemoveToken(tok string) (bool, error) {
	fields := strings.Fields(it.text)
	idx := slices.Index(fields, tok)
	if idx < 0 {
		return false, nil
	}
	fields = slices.Delete(fields, idx, idx+1)
	return true, it.reparse(strings.Join(fields, " "))
}

func (it *Item) reparse(text string) error {
	prev := it.text
	it.text = text
	if err := it.parse(); err != nil {
		it.text = prev
		_ = it.parse()
		return err
	}
	it.normalizeDates()
	it.dirty = true
	return nil
}

// RewriteProperty returns text with every key:value token replaced by
// fn(value). A token whose replacement is empty is dropped.
func RewriteProperty(text, key string, fn func(value string) string) string {
	re := tokenExpr(strings.ToLower(key), "")
	runes := []rune(text)

	var b strings.Builder
	last := 0
	for _, sp := range findSpans(re, text) {
		b.WriteString(string(runes[last:sp.start]))
		token := string(runes[sp.start:sp.end])
		_, value, _ := strings.Cut(token, ":")
		b.WriteString(fn(value))
		last = sp.end
	}
	b.WriteString(string(runes[last:]))
	return collapseSpaces(b.String())
}
