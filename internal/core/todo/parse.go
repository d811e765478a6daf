package todo

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// The extractor expressions rely on look-ahead, which is why they use regexp2
// instead of the standard library.
var (
	rePriority   = regexp2.MustCompile(`^\(([A-Z])\)`, regexp2.None)
	reMarker     = regexp2.MustCompile(`\(([^A-Z0-9])\)`, regexp2.None)
	reContext    = regexp2.MustCompile(`(?:^|\s)(@.+?)(?=$|\s)`, regexp2.None)
	reProject    = regexp2.MustCompile(`(?:^|\s)(\+.+?)(?=$|\s)`, regexp2.None)
	reDelegate   = regexp2.MustCompile(`(<{2}|>{2})(\S+?)(?=$|\s)`, regexp2.None)
	reURL        = regexp2.MustCompile(`(?:^|\s)((?i:(?:ht|f)tps?):.+?)(?=$|\s)`, regexp2.None)
	reProperty   = regexp2.MustCompile(`(\w+?):((?!\s|//).+?)(?=$|\s)`, regexp2.None)
	rePrioPrefix = regexp2.MustCompile(`^\([A-Z]\)\s*`, regexp2.None)
)

// ParseError reports an inconsistency between an extractor's expression and
// its interpretation of the match. It indicates a bug, not bad input.
type ParseError struct {
	Parser string
	Token  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("todo: %s parser cannot interpret %q", e.Parser, e.Token)
}

type parser struct {
	name string
	fn   func(it *Item) error
}

// parsers run in order against the same text snapshot. None of them reads a
// field written by another, so the order does not change the outcome.
var parsers = []parser{
	{"priority", parsePriority},
	{"marker", parseMarkers},
	{"context", parseContexts},
	{"project", parseProjects},
	{"delegate", parseDelegates},
	{"url", parseURLs},
	{"property", parseProperties},
	{"done", parseDone},
	{"report", parseReport},
}

// parse clears all derived fields and runs every parser on the item text.
func (it *Item) parse() error {
	it.resetDerived()
	for _, p := range parsers {
		if err := p.fn(it); err != nil {
			return err
		}
	}
	return nil
}

func (it *Item) resetDerived() {
	it.Priority = ""
	it.Markers = nil
	it.Contexts = nil
	it.Projects = nil
	it.DelegatedTo = nil
	it.DelegatedFrom = nil
	it.URLs = nil
	it.Done = false
	it.IsReport = false
	it.ID = ""
	it.props = map[string]Value{}
	it.multi = map[string][]string{}
}

func parsePriority(it *Item) error {
	for _, m := range findAll(rePriority, it.text) {
		it.Priority = m[1]
	}
	return nil
}

func parseMarkers(it *Item) error {
	for _, m := range findAll(reMarker, it.text) {
		it.Markers = append(it.Markers, m[1])
	}
	return nil
}

func parseContexts(it *Item) error {
	for _, m := range findAll(reContext, it.text) {
		it.Contexts = append(it.Contexts, m[1])
	}
	return nil
}

func parseProjects(it *Item) error {
	for _, m := range findAll(reProject, it.text) {
		it.Projects = append(it.Projects, m[1])
	}
	return nil
}

func parseDelegates(it *Item) error {
	for _, m := range findAll(reDelegate, it.text) {
		switch m[1] {
		case ">>":
			it.DelegatedTo = append(it.DelegatedTo, m[2])
		case "<<":
			it.DelegatedFrom = append(it.DelegatedFrom, m[2])
		default:
			return &ParseError{Parser: "delegate", Token: m[0]}
		}
	}
	return nil
}

func parseURLs(it *Item) error {
	for _, m := range findAll(reURL, it.text) {
		it.URLs = append(it.URLs, m[1])
	}
	return nil
}

// parseProperties extracts key:value tokens. Keys are lowercased; the first
// occurrence of a single-valued key wins, multi-valued keys keep every value.
func parseProperties(it *Item) error {
	for _, m := range findAll(reProperty, it.text) {
		key := strings.ToLower(m[1])
		if IsMultiKey(key) {
			it.multi[key] = append(it.multi[key], m[2])
			continue
		}
		if _, ok := it.props[key]; ok {
			continue
		}
		it.props[key] = Value{Text: m[2]}
		if key == KeyID && it.opts.IDSupport {
			it.ID = m[2]
		}
	}
	return nil
}

func parseDone(it *Item) error {
	it.Done = strings.HasPrefix(it.text, it.opts.DonePrefix)
	return nil
}

func parseReport(it *Item) error {
	it.IsReport = strings.HasPrefix(it.text, it.opts.ReportPrefix)
	return nil
}

// findAll returns the groups of every non-overlapping match.
func findAll(re *regexp2.Regexp, s string) [][]string {
	var out [][]string
	m, _ := re.FindStringMatch(s)
	for m != nil {
		groups := m.Groups()
		row := make([]string, len(groups))
		for i, g := range groups {
			row[i] = g.String()
		}
		out = append(out, row)
		m, _ = re.FindNextMatch(m)
	}
	return out
}

// span is a rune range inside a string, as reported by regexp2.
type span struct {
	start, end int
}

func findSpans(re *regexp2.Regexp, s string) []span {
	var out []span
	m, _ := re.FindStringMatch(s)
	for m != nil {
		out = append(out, span{start: m.Index, end: m.Index + m.Length})
		m, _ = re.FindNextMatch(m)
	}
	return out
}

// tokenExpr matches key:value tokens for key. The key is matched case
// insensitively. With value empty, any value matches; otherwise only that
// exact value.
func tokenExpr(key, value string) *regexp2.Regexp {
	expr := `(?<!\w)(?i:` + regexp2.Escape(key) + `):`
	if value == "" {
		expr += `(?!//)\S+`
	} else {
		expr += regexp2.Escape(value) + `(?=\s|$)`
	}
	return regexp2.MustCompile(expr, regexp2.None)
}

// replaceSpans replaces the given rune spans of s. The first span gets repl,
// the remaining ones are removed.
func replaceSpans(s string, spans []span, repl string) string {
	if len(spans) == 0 {
		return s
	}
	runes := []rune(s)
	var b strings.Builder
	last := 0
	for i, sp := range spans {
		b.WriteString(string(runes[last:sp.start]))
		if i == 0 {
			b.WriteString(repl)
		}
		last = sp.end
	}
	b.WriteString(string(runes[last:]))
	return b.String()
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
