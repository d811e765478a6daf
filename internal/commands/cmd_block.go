package commands

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/todonext/internal/core/todo"
	"github.com/colonyops/todonext/internal/core/todolist"
	"github.com/colonyops/todonext/internal/todonext"
)

type BlockCmd struct {
	flags *Flags
	app   *todonext.App
}

// NewBlockCmd creates the block and unblock commands
func NewBlockCmd(flags *Flags, app *todonext.App) *BlockCmd {
	return &BlockCmd{flags: flags, app: app}
}

// Register adds the block and unblock commands to the application
func (cmd *BlockCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "block",
			Usage:     "Mark a todo item as blocked by others",
			UsageText: "todo block <item> <blocker>...",
			Description: `Adds a dependency on each blocker. Listings show the blockers of an item
until they are done. Requires id support.`,
			Action: func(ctx context.Context, c *cli.Command) error {
				return cmd.run(ctx, c, "is now blocked by", func(l *todolist.List, blocker, blocked *todo.Item) error {
					return l.Block(blocker, blocked)
				})
			},
		},
		&cli.Command{
			Name:      "unblock",
			Usage:     "Remove dependencies from a todo item",
			UsageText: "todo unblock <item> <blocker>...",
			Action: func(ctx context.Context, c *cli.Command) error {
				return cmd.run(ctx, c, "is no longer blocked by", func(l *todolist.List, blocker, blocked *todo.Item) error {
					return l.Unblock(blocker, blocked)
				})
			},
		},
	)

	return app
}

func (cmd *BlockCmd) run(ctx context.Context, c *cli.Command, verb string, fn func(*todolist.List, *todo.Item, *todo.Item) error) error {
	if c.Args().Len() < 2 {
		return errors.New("an item and at least one blocker are required")
	}

	return cmd.app.WithList(ctx, func(l *todolist.List) error {
		items, err := resolveItems(l, c.Args().Slice())
		if err != nil {
			return err
		}

		blocked, blockers := items[0], items[1:]
		for _, b := range blockers {
			if err := fn(l, b, blocked); err != nil {
				return err
			}
		}

		v := newView(c, cmd.flags, cmd.app, l)
		v.item(blocked)
		v.info("%s:", verb)
		v.items(blockers)
		return nil
	})
}
