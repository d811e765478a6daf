package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/todonext/internal/core/todo"
	"github.com/colonyops/todonext/internal/core/todolist"
	"github.com/colonyops/todonext/internal/todonext"
)

// attachment is a URL, file or mail address referenced by an item.
type attachment struct {
	kind  string
	value string
}

func (a attachment) String() string {
	return a.kind + ": " + a.value
}

// target returns what the system opener should receive.
func (a attachment) target(baseDir string) string {
	switch a.kind {
	case todo.KeyMailto:
		return "mailto:" + a.value
	case todo.KeyFile:
		if !filepath.IsAbs(a.value) {
			return filepath.Join(baseDir, a.value)
		}
	}
	return a.value
}

func attachments(it *todo.Item) []attachment {
	var out []attachment
	for _, u := range it.URLs {
		out = append(out, attachment{kind: "url", value: u})
	}
	for _, f := range it.Props(todo.KeyFile) {
		out = append(out, attachment{kind: todo.KeyFile, value: f})
	}
	for _, m := range it.Props(todo.KeyMailto) {
		out = append(out, attachment{kind: todo.KeyMailto, value: m})
	}
	return out
}

// selectAttachment returns the only attachment or asks which one to use.
func selectAttachment(title string, list []attachment) (attachment, error) {
	switch {
	case len(list) == 0:
		return attachment{}, errors.New("item has no attachments")
	case len(list) == 1:
		return list[0], nil
	case !term.IsTerminal(int(os.Stdin.Fd())):
		return attachment{}, errors.New("item has several attachments, choose one in an interactive terminal")
	}

	opts := make([]huh.Option[int], len(list))
	for i, a := range list {
		opts[i] = huh.NewOption(a.String(), i)
	}

	var idx int
	err := huh.NewSelect[int]().
		Title(title).
		Options(opts...).
		Value(&idx).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return attachment{}, errAborted
	}
	if err != nil {
		return attachment{}, err
	}
	return list[idx], nil
}

type AttachCmd struct {
	flags *Flags
	app   *todonext.App
}

// NewAttachCmd creates the attach, detach and call commands
func NewAttachCmd(flags *Flags, app *todonext.App) *AttachCmd {
	return &AttachCmd{flags: flags, app: app}
}

// Register adds the attach, detach and call commands to the application
func (cmd *AttachCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "attach",
			Usage:     "Attach a URL or file to a todo item",
			UsageText: "todo attach <item> <url|file>",
			Description: `URLs are appended to the item text. Files must exist and are stored
as a file: property relative to the todo file directory when possible.`,
			Action: cmd.runAttach,
		},
		&cli.Command{
			Name:      "detach",
			Usage:     "Remove an attachment from a todo item",
			UsageText: "todo detach <item>",
			Action:    cmd.runDetach,
		},
		&cli.Command{
			Name:      "call",
			Usage:     "Open an attachment of a todo item",
			UsageText: "todo call <item>",
			Description: `Opens a URL, file or mailto address of the item with the system
opener. When the item has several, you are asked which one to open.`,
			Action: cmd.runCall,
		},
	)

	return app
}

func (cmd *AttachCmd) runAttach(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return errors.New("usage: todo attach <item> <url|file>")
	}
	target := c.Args().Get(1)

	return cmd.app.WithList(ctx, func(l *todolist.List) error {
		it, err := resolveItem(l, c.Args().First())
		if err != nil {
			return err
		}

		if isURL(target) {
			if err := l.AppendText(it, target); err != nil {
				return err
			}
		} else {
			rel, err := cmd.relativeFile(target)
			if err != nil {
				return err
			}
			l.ReplaceOrAddProperty(it, todo.KeyFile, todo.StringValue(rel))
		}

		newView(c, cmd.flags, cmd.app, l).item(it)
		return nil
	})
}

// relativeFile checks that path exists and expresses it relative to the todo
// file directory when it lies below it.
func (cmd *AttachCmd) relativeFile(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("attach file: %w", err)
	}

	rel, err := filepath.Rel(cmd.app.Config.TodoDir(), abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return abs, nil
	}
	return filepath.ToSlash(rel), nil
}

func (cmd *AttachCmd) runDetach(ctx context.Context, c *cli.Command) error {
	var v *view
	err := cmd.app.WithList(ctx, func(l *todolist.List) error {
		it, err := resolveItem(l, c.Args().First())
		if err != nil {
			return err
		}
		v = newView(c, cmd.flags, cmd.app, l)

		a, err := selectAttachment("Detach which attachment?", attachments(it))
		if err != nil {
			return err
		}

		if a.kind == "url" {
			if _, err := l.RemoveToken(it, a.value); err != nil {
				return err
			}
		} else {
			l.RemoveProperty(it, a.kind, a.value)
		}

		v.item(it)
		return nil
	})
	if errors.Is(err, errAborted) {
		v.info("Detach aborted")
		return nil
	}
	return err
}

func (cmd *AttachCmd) runCall(ctx context.Context, c *cli.Command) error {
	l, err := cmd.app.Load()
	if err != nil {
		return err
	}
	it, err := resolveItem(l, c.Args().First())
	if err != nil {
		return err
	}

	baseDir := cmd.app.Config.TodoDir()
	var usable []attachment
	for _, a := range attachments(it) {
		if a.kind == todo.KeyFile {
			if _, err := os.Stat(a.target(baseDir)); err != nil {
				continue
			}
		}
		usable = append(usable, a)
	}

	a, err := selectAttachment("Open which attachment?", usable)
	if errors.Is(err, errAborted) {
		return nil
	}
	if err != nil {
		return err
	}
	return cmd.app.OpenTarget(ctx, a.target(baseDir))
}

func isURL(s string) bool {
	scheme, _, ok := strings.Cut(s, "://")
	if !ok {
		return false
	}
	switch strings.ToLower(scheme) {
	case "http", "https", "ftp", "ftps":
		return true
	}
	return false
}
