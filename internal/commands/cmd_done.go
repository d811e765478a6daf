package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/todonext/internal/core/todolist"
	"github.com/colonyops/todonext/internal/todonext"
)

type DoneCmd struct {
	flags *Flags
	app   *todonext.App
	yes   bool
}

// NewDoneCmd creates the done, reopen and rm commands
func NewDoneCmd(flags *Flags, app *todonext.App) *DoneCmd {
	return &DoneCmd{flags: flags, app: app}
}

// Register adds the done, reopen and rm commands to the application
func (cmd *DoneCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "done",
			Aliases:   []string{"x"},
			Usage:     "Mark todo items as done",
			UsageText: "todo done <item>...",
			Description: `Marks the given items as done and stamps them with the done date.
Started items are stopped first so the time spent is recorded. Items
blocked by a finished item are released.`,
			Action: cmd.runDone,
		},
		&cli.Command{
			Name:      "reopen",
			Usage:     "Reopen done todo items",
			UsageText: "todo reopen <item>...",
			Action:    cmd.runReopen,
		},
		&cli.Command{
			Name:      "rm",
			Aliases:   []string{"remove"},
			Usage:     "Remove todo items",
			UsageText: "todo rm [--yes] <item>...",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:        "yes",
					Aliases:     []string{"y", "force"},
					Usage:       "do not ask for confirmation",
					Destination: &cmd.yes,
				},
			},
			Action: cmd.runRemove,
		},
	)

	return app
}

func (cmd *DoneCmd) runDone(ctx context.Context, c *cli.Command) error {
	return cmd.app.WithList(ctx, func(l *todolist.List) error {
		items, err := resolveItems(l, c.Args().Slice())
		if err != nil {
			return err
		}

		v := newView(c, cmd.flags, cmd.app, l)
		v.info("Marked following todo items as 'done':")
		for _, it := range items {
			l.SetToDone(it)
			v.item(it)
		}
		return nil
	})
}

func (cmd *DoneCmd) runReopen(ctx context.Context, c *cli.Command) error {
	return cmd.app.WithList(ctx, func(l *todolist.List) error {
		items, err := resolveItems(l, c.Args().Slice())
		if err != nil {
			return err
		}

		v := newView(c, cmd.flags, cmd.app, l)
		v.info("Set the following todo items to open again:")
		for _, it := range items {
			l.Reopen(it)
			v.item(it)
		}
		return nil
	})
}

func (cmd *DoneCmd) runRemove(ctx context.Context, c *cli.Command) error {
	var v *view
	err := cmd.app.WithList(ctx, func(l *todolist.List) error {
		items, err := resolveItems(l, c.Args().Slice())
		if err != nil {
			return err
		}

		v = newView(c, cmd.flags, cmd.app, l)
		if !cmd.yes {
			var b strings.Builder
			for _, it := range items {
				b.WriteString(v.r.Render(it) + "\n")
			}
			ok, err := confirm("Remove the following item(s)?", strings.TrimSpace(b.String()))
			if err != nil {
				return err
			}
			if !ok {
				return errAborted
			}
		}

		for _, it := range items {
			if err := l.Remove(it); err != nil {
				return err
			}
		}
		v.info("%d todo items have been removed.", len(items))
		return nil
	})
	if errors.Is(err, errAborted) {
		v.info("Removing aborted")
		return nil
	}
	return err
}
