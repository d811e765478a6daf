package commands

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/todonext/internal/core/todo"
	"github.com/colonyops/todonext/internal/core/todolist"
	"github.com/colonyops/todonext/internal/todonext"
)

type EditCmd struct {
	flags *Flags
	app   *todonext.App
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags, app *todonext.App) *EditCmd {
	return &EditCmd{flags: flags, app: app}
}

// Register adds the edit command to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Aliases:   []string{"ed"},
		Usage:     "Edit a todo item in your editor",
		UsageText: "todo edit [item]",
		Description: `Opens the item in the configured editor and replaces it with the
edited text once the editor exits. Line breaks are joined with spaces.

Without an item the whole todo file is opened.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	if !c.Args().Present() {
		return cmd.app.Editor.Open(ctx, cmd.app.Store.Path())
	}

	return cmd.app.WithList(ctx, func(l *todolist.List) error {
		it, err := resolveItem(l, c.Args().First())
		if err != nil {
			return err
		}

		v := newView(c, cmd.flags, cmd.app, l)
		v.item(it)

		text, err := cmd.app.Editor.Edit(ctx, it.Text())
		if err != nil {
			return err
		}
		if text == "" {
			return errors.New("edited item is empty, use rm to remove it")
		}
		if text == it.Text() {
			v.info("Item unchanged")
			return nil
		}

		edited, err := todo.New(text, cmd.app.ItemOptions())
		if err != nil {
			return err
		}
		if err := l.Replace(it, edited); err != nil {
			return err
		}

		v.item(edited)
		for _, w := range edited.Check() {
			v.info("  %s", v.styles.Warning.Render(w))
		}
		return nil
	})
}
