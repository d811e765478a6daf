package todonext

import (
	"fmt"
	"slices"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/colonyops/todonext/internal/core/todo"
)

// Matcher reports whether an item text matches a query.
type Matcher func(text string) bool

// NewMatcher compiles query into a Matcher. Without regex the query is matched
// literally. An empty query matches everything.
func NewMatcher(query string, regex, ignoreCase bool) (Matcher, error) {
	if query == "" {
		return func(string) bool { return true }, nil
	}

	expr := query
	if !regex {
		expr = regexp2.Escape(query)
	}

	opts := regexp2.RegexOptions(regexp2.None)
	if ignoreCase {
		opts |= regexp2.IgnoreCase
	}

	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return nil, fmt.Errorf("compile query %q: %w", query, err)
	}
	re.MatchTimeout = time.Second

	return func(text string) bool {
		ok, err := re.MatchString(text)
		return err == nil && ok
	}, nil
}

// SearchResult holds the matches found in one file.
type SearchResult struct {
	Path     string
	Archived bool
	Items    []*todo.Item
}

// Search looks for items matching m in the todo file and every archive file.
// Files without matches are omitted; the todo file comes first.
func (a *App) Search(m Matcher) ([]SearchResult, error) {
	var results []SearchResult

	l, err := a.Load()
	if err != nil {
		return nil, err
	}
	if items := slices.Collect(l.Filter(func(it *todo.Item) bool { return m(it.Text()) })); len(items) > 0 {
		results = append(results, SearchResult{Path: a.Store.Path(), Items: items})
	}

	files, err := a.archiveFiles()
	if err != nil {
		return nil, err
	}

	for _, path := range files {
		al, err := a.loadArchive(path)
		if err != nil {
			return nil, err
		}
		items := slices.Collect(al.Filter(func(it *todo.Item) bool { return m(it.Text()) }))
		if len(items) == 0 {
			continue
		}
		results = append(results, SearchResult{Path: path, Archived: true, Items: items})
	}

	return results, nil
}
