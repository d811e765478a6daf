package todonext

import (
	"cmp"
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/colonyops/todonext/internal/core/todo"
	"github.com/colonyops/todonext/internal/core/todolist"
	"github.com/colonyops/todonext/internal/store/textfile"
)

// ArchiveResult describes the items moved to one archive file.
type ArchiveResult struct {
	Path  string
	Items []*todo.Item
}

// ArchiveItems moves every done item and report from l into the archive file
// derived from its done date. Items are only removed from l once their
// archive file has been written.
func (a *App) ArchiveItems(ctx context.Context, l *todolist.List) ([]ArchiveResult, error) {
	inactive := slices.Collect(l.Filter(func(it *todo.Item) bool { return !it.IsActive() }))
	if len(inactive) == 0 {
		return nil, nil
	}

	// newest first so every archive file reads as a reverse log
	slices.SortStableFunc(inactive, func(x, y *todo.Item) int {
		return cmp.Compare(doneUnix(y), doneUnix(x))
	})

	var order []string
	groups := map[string][]*todo.Item{}
	for _, it := range inactive {
		p := a.Archive.PathFor(it)
		if _, ok := groups[p]; !ok {
			order = append(order, p)
		}
		groups[p] = append(groups[p], it)
	}

	results := make([]ArchiveResult, 0, len(order))
	for _, p := range order {
		store := textfile.New(p, a.archiveOptions(), a.log)
		al, err := store.Load()
		if err != nil {
			return results, fmt.Errorf("load archive: %w", err)
		}

		for _, it := range groups[p] {
			it.Line = 0
			al.Append(it)
		}

		if err := store.Save(al); err != nil {
			return results, fmt.Errorf("write archive: %w", err)
		}

		for _, it := range groups[p] {
			if err := l.Remove(it); err != nil {
				return results, err
			}
			a.log.Info().Ctx(ctx).Str("archive", p).Str("item", it.Text()).Msg("item archived")
		}

		results = append(results, ArchiveResult{Path: p, Items: groups[p]})
	}

	return results, nil
}

func doneUnix(it *todo.Item) int64 {
	done, ok := it.DoneDate()
	if !ok {
		return time.Time{}.Unix()
	}
	return done.Unix()
}

// loadArchive reads one archive file.
func (a *App) loadArchive(path string) (*todolist.List, error) {
	return textfile.New(path, a.archiveOptions(), a.log).Load()
}

// archiveFiles lists the existing archive files. The todo file is skipped in
// case the archive scheme happens to match it.
func (a *App) archiveFiles() ([]string, error) {
	files, err := a.Archive.Files()
	if err != nil {
		return nil, fmt.Errorf("list archive files: %w", err)
	}
	self := filepath.Clean(a.Store.Path())
	return slices.DeleteFunc(files, func(p string) bool { return filepath.Clean(p) == self }), nil
}
