package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/todonext/internal/core/todolist"
	"github.com/colonyops/todonext/internal/todonext"
	"github.com/colonyops/todonext/pkg/iojson"
)

// BatchInput is the JSON document read by the batch command.
type BatchInput struct {
	Items []string `json:"items"`
}

// BatchResult is one added item in the batch output.
type BatchResult struct {
	ID       string   `json:"id,omitempty"`
	Text     string   `json:"text"`
	Warnings []string `json:"warnings,omitempty"`
}

type BatchCmd struct {
	flags *Flags
	app   *todonext.App
	fr    *iojson.FileReader[BatchInput]
}

func NewBatchCmd(flags *Flags, app *todonext.App) *BatchCmd {
	return &BatchCmd{
		flags: flags,
		app:   app,
		fr:    &iojson.FileReader[BatchInput]{},
	}
}

func (cmd *BatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "batch",
		Usage: "Add multiple todo items from JSON input",
		UsageText: `todo batch [options]

Read from stdin:
  echo '{"items":["call bob @phone","(B) file taxes due:eom"]}' | todo batch

Read from file:
  todo batch -f items.json`,
		Description: `Adds every item of the input in one session. Either all items are
written or, if one of them cannot be parsed, none.

Input JSON schema:
  {
    "items": ["todo text", ...]
  }

Output is JSON with the stored text, ID and warnings of each item.`,
		Flags: []cli.Flag{
			cmd.fr.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *BatchCmd) run(ctx context.Context, c *cli.Command) error {
	input, err := cmd.fr.Read()
	if err != nil {
		_ = iojson.WriteError(c.Root().ErrWriter, fmt.Sprintf("read input: %s", err), nil)
		return cli.Exit("", 1)
	}

	var results []BatchResult
	err = cmd.app.WithList(ctx, func(l *todolist.List) error {
		for i, text := range input.Items {
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("item %d is empty", i)
			}
			it, err := l.Add(text)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			results = append(results, BatchResult{ID: it.ID, Text: it.Text(), Warnings: it.Check()})
		}
		return nil
	})
	if err != nil {
		_ = iojson.WriteError(c.Root().ErrWriter, err.Error(), map[string]any{"written": false})
		return cli.Exit("", 1)
	}

	return iojson.WriteWith(c.Root().Writer, os.Stderr, struct {
		Added []BatchResult `json:"added"`
	}{Added: results})
}
