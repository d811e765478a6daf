package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/todonext/internal/core/doctor"
	"github.com/colonyops/todonext/internal/core/todolist"
	"github.com/colonyops/todonext/internal/todonext"
)

type ArchiveCmd struct {
	flags *Flags
	app   *todonext.App
}

// NewArchiveCmd creates the archive and check commands
func NewArchiveCmd(flags *Flags, app *todonext.App) *ArchiveCmd {
	return &ArchiveCmd{flags: flags, app: app}
}

// Register adds the archive and check commands to the application
func (cmd *ArchiveCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "archive",
			Usage:     "Move done and report items to the archive",
			UsageText: "todo archive",
			Description: `Moves every done item and report into an archive file named after its
done date, see archive.filename_scheme in the configuration. Items
without a done date go to archive.unsorted_filename.`,
			Action: cmd.runArchive,
		},
		&cli.Command{
			Name:      "check",
			Usage:     "Check todo items for broken dates, files and IDs",
			UsageText: "todo check",
			Action:    cmd.runCheck,
		},
	)

	return app
}

func (cmd *ArchiveCmd) runArchive(ctx context.Context, c *cli.Command) error {
	return cmd.app.WithList(ctx, func(l *todolist.List) error {
		results, err := cmd.app.ArchiveItems(ctx, l)
		if err != nil {
			return err
		}

		v := newView(c, cmd.flags, cmd.app, nil)
		n := 0
		for _, res := range results {
			v.header("%s", res.Path)
			v.items(res.Items)
			n += len(res.Items)
		}
		v.info("%d todo items archived.", n)
		return nil
	})
}

func (cmd *ArchiveCmd) runCheck(_ context.Context, c *cli.Command) error {
	l, err := cmd.app.Load()
	if err != nil {
		return err
	}

	v := newView(c, cmd.flags, cmd.app, l)
	n := 0
	for it, warnings := range l.CheckAll() {
		v.item(it)
		for _, w := range warnings {
			v.info("  %s %s", v.styles.Warning.Render(doctor.ItemLabel(it)+":"), w)
		}
		n++
	}

	if n == 0 {
		v.info("%s", v.styles.Success.Render("No problems found."))
		return nil
	}
	v.info("%d todo items with problems.", n)
	return nil
}
