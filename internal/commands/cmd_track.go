package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/todonext/internal/core/todolist"
	"github.com/colonyops/todonext/internal/todonext"
)

type TrackCmd struct {
	flags *Flags
	app   *todonext.App
}

// NewTrackCmd creates the start and stop commands
func NewTrackCmd(flags *Flags, app *todonext.App) *TrackCmd {
	return &TrackCmd{flags: flags, app: app}
}

// Register adds the start and stop commands to the application
func (cmd *TrackCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "start",
			Usage:     "Start tracking time on todo items",
			UsageText: "todo start [item]...",
			Description: `Stamps the items with the current time. Stopping them adds the
elapsed minutes to their duration. Without arguments the started items
are listed.`,
			Action: cmd.runStart,
		},
		&cli.Command{
			Name:      "stop",
			Usage:     "Stop tracking time on todo items",
			UsageText: "todo stop <item>...",
			Action:    cmd.runStop,
		},
	)

	return app
}

func (cmd *TrackCmd) runStart(ctx context.Context, c *cli.Command) error {
	return cmd.app.WithList(ctx, func(l *todolist.List) error {
		v := newView(c, cmd.flags, cmd.app, l)
		if !c.Args().Present() {
			started := todonext.Started(l)
			v.items(started)
			v.count(len(started))
			return nil
		}

		items, err := resolveItems(l, c.Args().Slice())
		if err != nil {
			return err
		}
		for _, it := range items {
			if err := l.Start(it); err != nil {
				return err
			}
		}

		v.info("Started the following todo items:")
		v.items(items)
		return nil
	})
}

func (cmd *TrackCmd) runStop(ctx context.Context, c *cli.Command) error {
	return cmd.app.WithList(ctx, func(l *todolist.List) error {
		items, err := resolveItems(l, c.Args().Slice())
		if err != nil {
			return err
		}

		v := newView(c, cmd.flags, cmd.app, l)
		for _, it := range items {
			minutes, err := l.Stop(it)
			if err != nil {
				return err
			}
			v.item(it)
			v.info("  worked %d minutes, %d in total", minutes, it.Duration())
		}
		return nil
	})
}
