package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/todonext/internal/todonext"
)

type SearchCmd struct {
	flags *Flags
	app   *todonext.App

	// flags
	regex      bool
	ignoreCase bool
}

// NewSearchCmd creates a new search command
func NewSearchCmd(flags *Flags, app *todonext.App) *SearchCmd {
	return &SearchCmd{flags: flags, app: app}
}

// Register adds the search command to the application
func (cmd *SearchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "search",
		Usage:     "Search the todo file and all archive files",
		UsageText: "todo search [--regex] [--ci] <query...>",
		Flags: []cli.Flag{
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
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SearchCmd) run(_ context.Context, c *cli.Command) error {
	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return errors.New("a search query is required")
	}

	m, err := todonext.NewMatcher(query, cmd.regex, cmd.ignoreCase)
	if err != nil {
		return err
	}

	results, err := cmd.app.Search(m)
	if err != nil {
		return err
	}

	n := 0
	for i, res := range results {
		// archived items are not part of the todo list, nothing can block them
		v := newView(c, cmd.flags, cmd.app, nil)
		if i > 0 {
			_, _ = fmt.Fprintln(v.out)
		}
		v.header("%s", res.Path)
		v.items(res.Items)
		n += len(res.Items)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "%d matching todo items found.\n", n)
	return nil
}
