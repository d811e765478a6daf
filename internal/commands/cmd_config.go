package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/todonext/internal/core/config"
	"github.com/colonyops/todonext/internal/core/doctor"
	"github.com/colonyops/todonext/internal/todonext"
	"github.com/colonyops/todonext/pkg/iojson"
)

type ConfigCmd struct {
	flags  *Flags
	app    *todonext.App
	format string
}

// NewConfigCmd creates a new config command.
func NewConfigCmd(flags *Flags, app *todonext.App) *ConfigCmd {
	return &ConfigCmd{flags: flags, app: app}
}

// Register adds the config command to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "edit",
				Usage:       "Open the configuration file in your editor",
				UsageText:   "todo config edit",
				Description: "Creates the configuration file with the defaults if it does not exist yet.",
				Action:      cmd.runEdit,
			},
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "todo config validate [options]",
				Description: "Validates the configuration file, checking date formats, the archive scheme, colors and file paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.runValidate,
			},
		},
	})

	return app
}

func (cmd *ConfigCmd) runEdit(ctx context.Context, _ *cli.Command) error {
	path := cmd.flags.ConfigPath
	if path == "" {
		return errors.New("no configuration file path set")
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := writeDefaultConfig(path); err != nil {
			return err
		}
	}

	return cmd.app.Editor.Open(ctx, path)
}

func writeDefaultConfig(path string) error {
	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("encode default config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (cmd *ConfigCmd) runValidate(ctx context.Context, c *cli.Command) error {
	results := doctor.RunAll(ctx, []doctor.Check{doctor.NewConfigCheck(cmd.flags.Config, cmd.flags.ConfigPath)})
	result := results[0]
	_, _, failed := doctor.Summary(results)

	if cmd.format == "json" {
		out := struct {
			Valid bool               `json:"valid"`
			Items []doctor.CheckItem `json:"items"`
		}{
			Valid: failed == 0,
			Items: result.Items,
		}
		if err := iojson.WriteWith(c.Root().Writer, os.Stderr, out); err != nil {
			return err
		}
		if failed > 0 {
			return cli.Exit("", 1)
		}
		return nil
	}

	v := newView(c, cmd.flags, cmd.app, nil)
	for _, item := range result.Items {
		switch item.Status {
		case doctor.StatusPass:
			_, _ = fmt.Fprintf(v.out, "%s %s: %s\n", v.styles.Success.Render("✔"), item.Label, item.Detail)
		case doctor.StatusWarn:
			_, _ = fmt.Fprintf(v.out, "%s %s: %s\n", v.styles.Warning.Render("●"), item.Label, item.Detail)
		case doctor.StatusFail:
			_, _ = fmt.Fprintf(v.out, "%s %s: %s\n", v.styles.Error.Render("✘"), item.Label, item.Detail)
		}
	}

	_, _ = fmt.Fprintln(v.out)
	if failed == 0 {
		_, _ = fmt.Fprintln(v.out, v.styles.Success.Render("Configuration is valid"))
		return nil
	}

	_, _ = fmt.Fprintln(v.out, v.styles.Error.Render(fmt.Sprintf("%d error(s) found", failed)))
	return cli.Exit("", 1)
}
