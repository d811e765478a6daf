package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/todonext/internal/core/todolist"
	"github.com/colonyops/todonext/internal/todonext"
)

type AddCmd struct {
	flags *Flags
	app   *todonext.App
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *todonext.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Aliases:   []string{"a"},
		Usage:     "Add a new todo item",
		UsageText: "todo add [text...]",
		Description: `Adds a new item to the todo list. The item is stamped with a created
date, or a done date for report items starting with "* ", and receives a
stable ID when id support is enabled.

Without text an editor is opened to enter the item.

Examples:
  todo add "(A) call bob @phone due:tomorrow"
  todo add "* reviewed the release notes +release"`,
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	text := strings.Join(c.Args().Slice(), " ")
	if text == "" {
		edited, err := cmd.app.Editor.Edit(ctx, "")
		if err != nil {
			return err
		}
		text = edited
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("empty todo item, nothing added")
	}

	return cmd.app.WithList(ctx, func(l *todolist.List) error {
		it, err := l.Add(text)
		if err != nil {
			return err
		}

		v := newView(c, cmd.flags, cmd.app, l)
		v.info("Added:")
		v.item(it)
		for _, w := range it.Check() {
			v.info("  %s", v.styles.Warning.Render(w))
		}
		return nil
	})
}
