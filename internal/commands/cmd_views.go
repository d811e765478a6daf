package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/todonext/internal/core/dates"
	"github.com/colonyops/todonext/internal/core/todo"
	"github.com/colonyops/todonext/internal/todonext"
	"github.com/colonyops/todonext/pkg/iojson"
)

type ViewsCmd struct {
	flags *Flags
	app   *todonext.App

	// flags
	all        bool
	desc       bool
	jsonOutput bool
}

// NewViewsCmd creates the grouped and summary listing commands
func NewViewsCmd(flags *Flags, app *todonext.App) *ViewsCmd {
	return &ViewsCmd{flags: flags, app: app}
}

// Register adds the listing commands to the application
func (cmd *ViewsCmd) Register(app *cli.Command) *cli.Command {
	allFlag := func() cli.Flag {
		return &cli.BoolFlag{
			Name:        "all",
			Aliases:     []string{"a"},
			Usage:       "also list done and report items",
			Destination: &cmd.all,
		}
	}

	grouped := func(name string, aliases []string, usage string, keys func(*todo.Item) []string) *cli.Command {
		return &cli.Command{
			Name:      name,
			Aliases:   aliases,
			Usage:     usage,
			UsageText: fmt.Sprintf("todo %s [--all] [name]", name),
			Flags:     []cli.Flag{allFlag()},
			Action: func(ctx context.Context, c *cli.Command) error {
				return cmd.runGrouped(c, keys)
			},
		}
	}

	app.Commands = append(app.Commands,
		grouped("context", []string{"ctx"}, "List todo items grouped by context", todonext.Contexts),
		grouped("project", []string{"pr"}, "List todo items grouped by project", todonext.Projects),
		grouped("mark", nil, "List todo items grouped by marker", todonext.Markers),
		grouped("delegated", nil, "List todo items grouped by the person they were delegated to", todonext.DelegatedTo),
		grouped("tasked", nil, "List todo items grouped by the person who assigned them", todonext.DelegatedFrom),
		&cli.Command{
			Name:      "agenda",
			Aliases:   []string{"ag"},
			Usage:     "List todo items by due date",
			UsageText: "todo agenda [date]",
			Description: `Lists the items due on the given day, or every item with a due date
when no day is given. Open items come before done ones.`,
			Action: cmd.runAgenda,
		},
		&cli.Command{
			Name:      "overdue",
			Aliases:   []string{"od"},
			Usage:     "List open todo items past their due date",
			UsageText: "todo overdue",
			Action:    cmd.runOverdue,
		},
		&cli.Command{
			Name:      "stats",
			Usage:     "Show counts of todo items by status",
			UsageText: "todo stats [--json]",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:        "json",
					Usage:       "output as JSON",
					Destination: &cmd.jsonOutput,
				},
			},
			Action: cmd.runStats,
		},
		&cli.Command{
			Name:      "age",
			Usage:     "List todo items by creation date",
			UsageText: "todo age [--all] [--desc]",
			Flags: []cli.Flag{
				allFlag(),
				&cli.BoolFlag{
					Name:        "desc",
					Usage:       "newest items first",
					Destination: &cmd.desc,
				},
			},
			Action: cmd.runAge,
		},
	)

	return app
}

func (cmd *ViewsCmd) runGrouped(c *cli.Command, keys func(*todo.Item) []string) error {
	l, err := cmd.app.Load()
	if err != nil {
		return err
	}

	var match func(string) bool
	if q := strings.ToLower(strings.TrimLeft(c.Args().First(), "@+&")); q != "" {
		match = func(name string) bool {
			return strings.Contains(strings.ToLower(name), q)
		}
	}

	v := newView(c, cmd.flags, cmd.app, l)
	cmd.printGroups(v, todonext.GroupBy(l, cmd.all, keys, match))
	return nil
}

func (cmd *ViewsCmd) printGroups(v *view, groups []todonext.Group) {
	n := 0
	for i, g := range groups {
		if i > 0 {
			_, _ = fmt.Fprintln(v.out)
		}
		v.header("%s", g.Name)
		v.items(g.Items)
		n += len(g.Items)
	}
	v.count(n)
}

func (cmd *ViewsCmd) runAgenda(_ context.Context, c *cli.Command) error {
	l, err := cmd.app.Load()
	if err != nil {
		return err
	}

	var day time.Time
	if expr := strings.Join(c.Args().Slice(), " "); expr != "" {
		t, ok := cmd.app.Dates.Parse(expr, cmd.app.Dates.Today(), true).Time()
		if !ok {
			return fmt.Errorf("cannot parse date %q", expr)
		}
		day = dates.StartOfDay(t)
	}

	v := newView(c, cmd.flags, cmd.app, l)
	cmd.printGroups(v, todonext.Agenda(l, day))
	return nil
}

func (cmd *ViewsCmd) runOverdue(_ context.Context, c *cli.Command) error {
	l, err := cmd.app.Load()
	if err != nil {
		return err
	}

	items := todonext.Overdue(l, cmd.app.Now())
	v := newView(c, cmd.flags, cmd.app, l)
	v.items(items)
	v.count(len(items))
	return nil
}

func (cmd *ViewsCmd) runStats(_ context.Context, c *cli.Command) error {
	l, err := cmd.app.Load()
	if err != nil {
		return err
	}

	s := todonext.ComputeStats(l, cmd.app.Now())
	if cmd.jsonOutput {
		return iojson.WriteLine(c.Root().Writer, s)
	}

	v := newView(c, cmd.flags, cmd.app, l)
	v.header("Todo statistics")

	w := tabwriter.NewWriter(v.out, 0, 0, 2, ' ', 0)
	rows := []struct {
		label string
		n     int
	}{
		{"Total", s.Total},
		{"Open", s.Open},
		{"Done", s.Done},
		{"Reports", s.Reports},
		{"Prioritized", s.Prioritized},
		{"Overdue", s.Overdue},
		{"Due today", s.DueToday},
		{"Blocked", s.Blocked},
		{"Started", s.Started},
		{"Delegates", s.Delegates},
	}
	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "  %s\t%d\n", r.label, r.n)
	}
	return w.Flush()
}

func (cmd *ViewsCmd) runAge(_ context.Context, c *cli.Command) error {
	l, err := cmd.app.Load()
	if err != nil {
		return err
	}

	items := todonext.ByAge(l, cmd.all, cmd.desc)
	v := newView(c, cmd.flags, cmd.app, l)
	today := cmd.app.Dates.Today()
	for _, it := range items {
		created, _ := it.DateProp(todo.KeyCreated)
		days := int(today.Sub(dates.StartOfDay(created)).Hours() / 24)
		_, _ = fmt.Fprintf(v.out, "%s %s\n", v.styles.Muted.Render(fmt.Sprintf("%5dd", days)), v.r.Render(it))
	}
	v.count(len(items))
	return nil
}
