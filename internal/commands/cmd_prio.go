package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/todonext/internal/core/todolist"
	"github.com/colonyops/todonext/internal/todonext"
)

type PrioCmd struct {
	flags *Flags
	app   *todonext.App
}

// NewPrioCmd creates a new prio command
func NewPrioCmd(flags *Flags, app *todonext.App) *PrioCmd {
	return &PrioCmd{flags: flags, app: app}
}

// Register adds the prio command to the application
func (cmd *PrioCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "prio",
		Usage:     "Set the priority of todo items",
		UsageText: "todo prio <item>... <priority>",
		Description: `Sets the priority of the given items. The priority is either absolute
("A" to "Z"), relative ("+" raises, "-" lowers by one step) or "x" to
remove it.

Examples:
  todo prio 3 A
  todo prio abc def +`,
		Action: cmd.run,
	})

	return app
}

func (cmd *PrioCmd) run(ctx context.Context, c *cli.Command) error {
	args := c.Args().Slice()
	if len(args) < 2 {
		return errors.New("usage: todo prio <item>... <priority>")
	}
	prio := args[len(args)-1]
	if len(prio) != 1 || !strings.Contains("xABCDEFGHIJKLMNOPQRSTUVWXYZ+-", prio) {
		return fmt.Errorf("priority %q can't be recognized (must be one of A to Z, + or - or x)", prio)
	}

	return cmd.app.WithList(ctx, func(l *todolist.List) error {
		items, err := resolveItems(l, args[:len(args)-1])
		if err != nil {
			return err
		}

		v := newView(c, cmd.flags, cmd.app, l)
		for _, it := range items {
			next, err := nextPriority(it.Priority, prio)
			if err != nil {
				return fmt.Errorf("%w: %s", err, it.Text())
			}
			if err := l.SetPriority(it, next); err != nil {
				return err
			}
			v.item(it)
		}
		return nil
	})
}

var errPriorityBounds = errors.New("priority cannot be changed further")

// nextPriority applies a prio argument to the current priority.
func nextPriority(current, arg string) (string, error) {
	switch arg {
	case "x":
		return "", nil
	case "+":
		if current == "" || current == "A" {
			return "", errPriorityBounds
		}
		return string(current[0] - 1), nil
	case "-":
		if current == "" || current == "Z" {
			return "", errPriorityBounds
		}
		return string(current[0] + 1), nil
	default:
		return arg, nil
	}
}
