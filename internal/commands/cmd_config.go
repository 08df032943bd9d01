package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/reel/internal/core/config"
	"github.com/colonyops/reel/internal/printer"
	"github.com/colonyops/reel/pkg/iojson"
)

type ConfigCmd struct {
	flags  *Flags
	format string
}

// NewConfigCmd creates a new config command.
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

// Register adds the config commands to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "reel config validate [options]",
				Description: "Loads the configuration file and reports every invalid key, plus non-fatal warnings.",
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

type validationReport struct {
	Valid    bool                       `json:"valid"`
	Path     string                     `json:"path"`
	Errors   []string                   `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigCmd) report() validationReport {
	cfg := cmd.flags.Config
	err := cfg.ValidateDeep(cmd.flags.ConfigPath)

	return validationReport{
		Valid:    err == nil,
		Path:     cmd.flags.ConfigPath,
		Errors:   fieldMessages(err),
		Warnings: cfg.Warnings(cmd.flags.Token() != ""),
	}
}

func (cmd *ConfigCmd) runValidate(ctx context.Context, c *cli.Command) error {
	result := cmd.report()

	if cmd.format == "json" {
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, result); err != nil {
			return err
		}
		if !result.Valid {
			return cli.Exit("", 1)
		}
		return nil
	}

	p := printer.Ctx(ctx)
	for _, w := range result.Warnings {
		p.Warnf("%s: %s", w.Category, w.Message)
	}
	for _, e := range result.Errors {
		p.Errorf("%s", e)
	}

	p.Printf("")
	if result.Valid {
		p.Successf("Configuration is valid")
		return nil
	}

	p.Errorf("%d error(s) found", len(result.Errors))
	return cli.Exit("", 1)
}
