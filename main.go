package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/todonext/internal/commands"
	"github.com/colonyops/todonext/internal/core/config"
	"github.com/colonyops/todonext/internal/core/logging"
	"github.com/colonyops/todonext/internal/todonext"
	"github.com/colonyops/todonext/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		todoApp   = &todonext.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "todo",
		Usage:     "Manage your todo list from the command line",
		UsageText: "todo [global options] command [command options]",
		Description: `todo keeps your tasks in a plain todo.txt file extended with due dates,
stable IDs, dependencies, time tracking and an archive of finished work.

Run 'todo' with no arguments to list your open items.
Run 'todo add <text>' to add a new one.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TODONEXT_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file",
				Sources:     cli.EnvVars("TODONEXT_LOG_FILE"),
				Value:       commands.DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TODONEXT_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory, holds the todo file unless configured otherwise",
				Sources:     cli.EnvVars("TODONEXT_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.BoolFlag{
				Name:        "no-color",
				Usage:       "disable colored output",
				Destination: &flags.NoColor,
			},
			&cli.BoolFlag{
				Name:        "quiet",
				Aliases:     []string{"q"},
				Usage:       "only print todo items, no status messages",
				Destination: &flags.Quiet,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*todoApp = *todonext.New(cfg, logging.Component("todonext"))

			ctx = logging.WithCommand(ctx, c.Args().First())
			ctx = logging.WithTodoFile(ctx, cfg.TodoFile)
			log.Debug().Ctx(ctx).Str("version", version).Msg("starting")

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	lsCmd := commands.NewLsCmd(flags, todoApp)

	app = commands.NewAddCmd(flags, todoApp).Register(app)
	app = lsCmd.Register(app)
	app = commands.NewDoneCmd(flags, todoApp).Register(app)
	app = commands.NewEditCmd(flags, todoApp).Register(app)
	app = commands.NewPrioCmd(flags, todoApp).Register(app)
	app = commands.NewDelayCmd(flags, todoApp).Register(app)
	app = commands.NewTrackCmd(flags, todoApp).Register(app)
	app = commands.NewBlockCmd(flags, todoApp).Register(app)
	app = commands.NewAttachCmd(flags, todoApp).Register(app)
	app = commands.NewViewsCmd(flags, todoApp).Register(app)
	app = commands.NewSearchCmd(flags, todoApp).Register(app)
	app = commands.NewReportCmd(flags, todoApp).Register(app)
	app = commands.NewArchiveCmd(flags, todoApp).Register(app)
	app = commands.NewBackupCmd(flags, todoApp).Register(app)
	app = commands.NewBatchCmd(flags, todoApp).Register(app)
	app = commands.NewConfigCmd(flags, todoApp).Register(app)
	app = commands.NewDoctorCmd(flags, todoApp).Register(app)

	// List open items when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'todo --help' for usage", c.Args().First())
		}
		return lsCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
