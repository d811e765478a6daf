package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/todonext/internal/core/todo"
	"github.com/colonyops/todonext/internal/core/todolist"
	"github.com/colonyops/todonext/internal/todonext"
)

// errAborted cancels a session after the user declined a change.
var errAborted = errors.New("aborted")

type DelayCmd struct {
	flags *Flags
	app   *todonext.App
	yes   bool
}

// NewDelayCmd creates the delay and repeat commands
func NewDelayCmd(flags *Flags, app *todonext.App) *DelayCmd {
	return &DelayCmd{flags: flags, app: app}
}

// Register adds the delay and repeat commands to the application
func (cmd *DelayCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "delay",
			Aliases:   []string{"due"},
			Usage:     "Delay the due date of a todo item",
			UsageText: "todo delay [--yes] <item> [date]",
			Description: `Moves the due date of an item. Relative dates such as "+3d" or "1w"
are applied to the current due date, or to today if the item has none.
The default is one day.

Examples:
  todo delay 4
  todo delay abc 2w
  todo due abc friday`,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:        "yes",
					Aliases:     []string{"y", "force"},
					Usage:       "do not ask for confirmation",
					Destination: &cmd.yes,
				},
			},
			Action: cmd.runDelay,
		},
		&cli.Command{
			Name:      "repeat",
			Usage:     "Mark a todo item as done and add it again with a new due date",
			UsageText: "todo repeat <item> <date>",
			Description: `Completes the item and adds a copy due at the given date. This is
meant for recurring tasks such as a weekly status report.`,
			Action: cmd.runRepeat,
		},
	)

	return app
}

func (cmd *DelayCmd) runDelay(ctx context.Context, c *cli.Command) error {
	expr := c.Args().Get(1)
	if expr == "" {
		expr = "1d"
	}

	var v *view
	err := cmd.app.WithList(ctx, func(l *todolist.List) error {
		it, err := resolveItem(l, c.Args().First())
		if err != nil {
			return err
		}
		v = newView(c, cmd.flags, cmd.app, l)

		before := "none"
		if due, ok := it.Prop(todo.KeyDue); ok {
			before = due.Text
		}

		if err := l.Delay(it, expr); err != nil {
			return err
		}

		if !cmd.yes {
			after, _ := it.Prop(todo.KeyDue)
			ok, err := confirm("Delay item?", fmt.Sprintf("%s\ndue: %s -> %s", it.Text(), before, after.Text))
			if err != nil {
				return err
			}
			if !ok {
				return errAborted
			}
		}

		v.item(it)
		return nil
	})
	if errors.Is(err, errAborted) {
		v.info("Delay aborted")
		return nil
	}
	return err
}

func (cmd *DelayCmd) runRepeat(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return errors.New("usage: todo repeat <item> <date>")
	}

	return cmd.app.WithList(ctx, func(l *todolist.List) error {
		it, err := resolveItem(l, c.Args().First())
		if err != nil {
			return err
		}

		next, err := l.Repeat(it, c.Args().Get(1))
		if err != nil {
			return err
		}

		v := newView(c, cmd.flags, cmd.app, l)
		v.info("Marked todo item as 'done' and reinserted:")
		v.item(next)
		return nil
	})
}
