package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/todonext/internal/core/styles"
	"github.com/colonyops/todonext/internal/core/todo"
	"github.com/colonyops/todonext/internal/core/todolist"
	"github.com/colonyops/todonext/internal/todonext"
)

// view writes rendered items to the command output.
type view struct {
	out    io.Writer
	styles styles.Styles
	r      *todonext.Renderer
	quiet  bool
}

func newView(c *cli.Command, flags *Flags, app *todonext.App, l *todolist.List) *view {
	out := c.Root().Writer
	st := styles.New(out, app.Config.Palette(), app.Config.NoColors || flags.NoColor)
	return &view{out: out, styles: st, r: app.NewRenderer(st, l), quiet: flags.Quiet}
}

func (v *view) item(it *todo.Item) {
	_, _ = fmt.Fprintln(v.out, " ", v.r.Render(it))
}

func (v *view) items(items []*todo.Item) {
	for _, it := range items {
		v.item(it)
	}
}

func (v *view) header(format string, args ...any) {
	_, _ = fmt.Fprintln(v.out, v.styles.Header.Render(fmt.Sprintf(format, args...)))
}

// info prints a status line unless --quiet is set.
func (v *view) info(format string, args ...any) {
	if v.quiet {
		return
	}
	_, _ = fmt.Fprintf(v.out, format+"\n", args...)
}

func (v *view) count(n int) {
	v.info("%d todo items displayed.", n)
}

// resolveItems looks up every key before anything is changed, since
// positions shift as soon as the list is re-sorted.
func resolveItems(l *todolist.List, keys []string) ([]*todo.Item, error) {
	if len(keys) == 0 {
		return nil, errors.New("no item given")
	}
	items := make([]*todo.Item, 0, len(keys))
	for _, k := range keys {
		it, ok := l.Get(k)
		if !ok {
			return nil, fmt.Errorf("could not find item %q", k)
		}
		items = append(items, it)
	}
	return items, nil
}

func resolveItem(l *todolist.List, key string) (*todo.Item, error) {
	items, err := resolveItems(l, []string{key})
	if err != nil {
		return nil, err
	}
	return items[0], nil
}

// confirm asks a yes/no question. Without a terminal the answer is no.
func confirm(title, description string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, nil
	}

	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}
