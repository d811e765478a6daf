package commands

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/todonext/internal/todonext"
)

type BackupCmd struct {
	flags *Flags
	app   *todonext.App
	yes   bool
}

// NewBackupCmd creates a new backup command
func NewBackupCmd(flags *Flags, app *todonext.App) *BackupCmd {
	return &BackupCmd{flags: flags, app: app}
}

// Register adds the backup command to the application
func (cmd *BackupCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "backup",
		Usage:     "Copy the todo file to the backup directory",
		UsageText: "todo backup [--yes] [filename]",
		Description: `Without a file name the copy is named after the current time and the
todo file, e.g. 2026-10-17_1030_todo.txt. Relative names are placed in
the configured backup directory.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y", "force"},
				Usage:       "overwrite an existing backup without asking",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *BackupCmd) run(_ context.Context, c *cli.Command) error {
	dst := cmd.app.BackupPath(c.Args().First())
	v := newView(c, cmd.flags, cmd.app, nil)

	overwrite := cmd.yes
	if _, err := os.Stat(dst); err == nil && !overwrite {
		ok, err := confirm("Overwrite existing backup?", dst)
		if err != nil {
			return err
		}
		if !ok {
			v.info("Backup aborted")
			return nil
		}
		overwrite = true
	}

	if err := cmd.app.Backup(dst, overwrite); err != nil {
		return err
	}

	v.info("Todo file copied to %s", dst)
	return nil
}
