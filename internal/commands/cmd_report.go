package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/todonext/internal/core/styles"
	"github.com/colonyops/todonext/internal/todonext"
)

type ReportCmd struct {
	flags *Flags
	app   *todonext.App
}

// NewReportCmd creates a new report command
func NewReportCmd(flags *Flags, app *todonext.App) *ReportCmd {
	return &ReportCmd{flags: flags, app: app}
}

// Register adds the report command to the application
func (cmd *ReportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "report",
		Aliases:   []string{"rep"},
		Usage:     "Summarize done and report items by day",
		UsageText: "todo report [from] [to]",
		Description: `Prints a Markdown report of the items completed in a date range, taken
from the todo file and every archive file. Without arguments the last
seven days are reported, a single date reports that day and "*" or
"all" reports everything.

Examples:
  todo report
  todo report yesterday
  todo report 2026-10-01 2026-10-15`,
		Action: cmd.run,
	})

	return app
}

func (cmd *ReportCmd) run(_ context.Context, c *cli.Command) error {
	r := cmd.app.ReportRange(c.Args().Get(0), c.Args().Get(1))

	days, err := cmd.app.Report(r)
	if err != nil {
		return err
	}

	v := newView(c, cmd.flags, cmd.app, nil)
	md := todonext.ReportMarkdown(days, func(e todonext.ReportEntry) string {
		return v.r.Text(e.Item)
	})

	out := c.Root().Writer
	if !cmd.flags.NoColor && !cmd.app.Config.NoColors && term.IsTerminal(int(os.Stdout.Fd())) {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStyles(styles.GlamourStyle(cmd.app.Config.Palette())),
			glamour.WithWordWrap(100),
		)
		if err == nil {
			if rendered, err := renderer.Render(md); err == nil {
				md = rendered
			}
		}
	}

	_, err = fmt.Fprint(out, md)
	return err
}
