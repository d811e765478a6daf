package doctor

import (
	"context"
	"fmt"

	"github.com/colonyops/todonext/internal/core/todolist"
)

// ArchiveCheck verifies that every archive file can be parsed.
type ArchiveCheck struct {
	files func() ([]string, error)
	load  func(path string) (*todolist.List, error)
}

// NewArchiveCheck creates a check over the archive files returned by files.
func NewArchiveCheck(files func() ([]string, error), load func(path string) (*todolist.List, error)) *ArchiveCheck {
	return &ArchiveCheck{files: files, load: load}
}

func (c *ArchiveCheck) Name() string {
	return "Archive"
}

func (c *ArchiveCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	files, err := c.files()
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "archive",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	if len(files) == 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "archive",
			Status: StatusPass,
			Detail: "no archive files",
		})
		return result
	}

	for _, path := range files {
		l, err := c.load(path)
		if err != nil {
			result.Items = append(result.Items, CheckItem{
				Label:  path,
				Status: StatusFail,
				Detail: err.Error(),
			})
			continue
		}

		open := 0
		for it := range l.Items() {
			if it.IsActive() {
				open++
			}
		}

		item := CheckItem{Label: path, Status: StatusPass, Detail: fmt.Sprintf("%d items", l.Len())}
		if open > 0 {
			item.Status = StatusWarn
			item.Detail = fmt.Sprintf("%d items, %d still open", l.Len(), open)
		}
		result.Items = append(result.Items, item)
	}

	return result
}
