package command

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/medqueue-go/internal/cli/config"
	"github.com/yndnr/medqueue-go/internal/cli/output"
	"github.com/yndnr/medqueue-go/internal/core/domain"
)

func (a *App) configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "CLI configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: a.configShow,
			},
			{
				Name:   "validate",
				Usage:  "Validate the effective configuration",
				Action: a.configValidate,
			},
			{
				Name:  "init",
				Usage: "Write a default configuration file",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Overwrite an existing file",
					},
				},
				Action: a.configInit,
			},
		},
	}
}

func (a *App) configShow(c *cli.Context) error {
	f, err := a.format(c)
	if err != nil {
		return err
	}
	if f == output.FormatJSON {
		return a.render(c, a.cfg)
	}

	data, err := config.Marshal(a.cfg)
	if err != nil {
		return err
	}
	if f == output.FormatYAML {
		_, err = a.Stdout.Write(data)
		return err
	}

	fmt.Fprintf(a.Stdout, "# Config file: %s", a.cfgPath)
	if _, err := os.Stat(a.cfgPath); errors.Is(err, os.ErrNotExist) {
		fmt.Fprint(a.Stdout, " (not found, defaults in use)")
	}
	fmt.Fprintln(a.Stdout)

	_, err = a.Stdout.Write(data)
	return err
}

func (a *App) configValidate(c *cli.Context) error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	a.say(c, "✓ Configuration is valid (%s)", a.cfgPath)
	return nil
}

func (a *App) configInit(c *cli.Context) error {
	if _, err := os.Stat(a.cfgPath); err == nil && !c.Bool("force") {
		return domain.ErrInvalidArgument.WithDetails(a.cfgPath + " already exists (use --force to overwrite)")
	}

	if err := config.Save(config.Default(), a.cfgPath); err != nil {
		return err
	}
	fmt.Fprintf(a.Stdout, "Wrote %s\n", a.cfgPath)
	return nil
}
