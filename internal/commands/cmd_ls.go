package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/todonext/internal/core/dates"
	"github.com/colonyops/todonext/internal/core/todo"
	"github.com/colonyops/todonext/internal/core/todolist"
	"github.com/colonyops/todonext/internal/store/textfile"
	"github.com/colonyops/todonext/internal/todonext"
	"github.com/colonyops/todonext/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *todonext.App

	// flags
	all        bool
	regex      bool
	ignoreCase bool
	jsonOutput bool
	watch      bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *todonext.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

func (cmd *LsCmd) queryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "regex",
			Aliases:     []string{"r"},
			Usage:       "interpret the query as a regular expression",
			Destination: &cmd.regex,
		},
		&cli.BoolFlag{
			Name:        "ci",
			Aliases:     []string{"i"},
			Usage:       "match case insensitively",
			Destination: &cmd.ignoreCase,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "output as JSON lines",
			Destination: &cmd.jsonOutput,
		},
		&cli.BoolFlag{
			Name:        "watch",
			Aliases:     []string{"w"},
			Usage:       "redraw the listing whenever the todo file changes",
			Destination: &cmd.watch,
		},
	}
}

// Register adds the ls and lsa commands to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "ls",
			Aliases:   []string{"list"},
			Usage:     "List todo items matching a query",
			UsageText: "todo ls [options] [query...]",
			Description: `Lists the open todo items in canonical order. Items are addressed by
the number shown in brackets or by their stable ID.

Without a query every item is listed. Done and report items are only
shown with --all.`,
			Flags: append(cmd.queryFlags(), &cli.BoolFlag{
				Name:        "all",
				Aliases:     []string{"a"},
				Usage:       "also list done and report items",
				Destination: &cmd.all,
			}),
			Action: cmd.run,
		},
		&cli.Command{
			Name:      "lsa",
			Usage:     "List all todo items matching a query, same as ls --all",
			UsageText: "todo lsa [options] [query...]",
			Flags:     cmd.queryFlags(),
			Action: func(ctx context.Context, c *cli.Command) error {
				cmd.all = true
				return cmd.run(ctx, c)
			},
		},
	)

	return app
}

// Run lists the open items, it is the default action of the root command.
func (cmd *LsCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	m, err := todonext.NewMatcher(strings.Join(c.Args().Slice(), " "), cmd.regex, cmd.ignoreCase)
	if err != nil {
		return err
	}

	if !cmd.watch {
		return cmd.list(c, m)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	path := cmd.app.Store.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	events, err := textfile.Watch(ctx, path, log.Logger)
	if err != nil {
		return fmt.Errorf("watch todo file: %w", err)
	}

	for {
		_, _ = fmt.Fprint(c.Root().Writer, "\033[H\033[2J")
		if err := cmd.list(c, m); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
		}
	}
}

func (cmd *LsCmd) list(c *cli.Command, m todonext.Matcher) error {
	l, err := cmd.app.Load()
	if err != nil {
		return err
	}

	items := l.Filter(func(it *todo.Item) bool {
		return (cmd.all || it.IsActive()) && m(it.Text())
	})

	if cmd.jsonOutput {
		now := cmd.app.Now()
		for it := range items {
			if err := iojson.WriteLine(c.Root().Writer, newItemInfo(l, it, now)); err != nil {
				return fmt.Errorf("encode item: %w", err)
			}
		}
		return nil
	}

	v := newView(c, cmd.flags, cmd.app, l)
	n := 0
	for it := range items {
		v.item(it)
		n++
	}
	v.count(n)
	return nil
}

// itemInfo is the JSON output format for todo ls --json.
type itemInfo struct {
	Nr        int      `json:"nr"`
	ID        string   `json:"id,omitempty"`
	Text      string   `json:"text"`
	Priority  string   `json:"priority,omitempty"`
	Done      bool     `json:"done"`
	Report    bool     `json:"report"`
	Contexts  []string `json:"contexts,omitempty"`
	Projects  []string `json:"projects,omitempty"`
	Due       string   `json:"due,omitempty"`
	Overdue   bool     `json:"overdue"`
	DueToday  bool     `json:"due_today"`
	BlockedBy []string `json:"blocked_by,omitempty"`
}

func newItemInfo(l *todolist.List, it *todo.Item, now time.Time) itemInfo {
	info := itemInfo{
		Nr:       it.Nr,
		ID:       it.ID,
		Text:     it.Text(),
		Priority: it.Priority,
		Done:     it.Done,
		Report:   it.IsReport,
		Contexts: it.Contexts,
		Projects: it.Projects,
		Overdue:  it.IsActive() && it.IsOverdue(now),
		DueToday: it.IsActive() && it.IsDueToday(now),
	}
	if due, ok := it.DueDate(); ok {
		info.Due = dates.Format(due)
	}
	for _, b := range l.Blockers(it) {
		info.BlockedBy = append(info.BlockedBy, b.ID)
	}
	return info
}
