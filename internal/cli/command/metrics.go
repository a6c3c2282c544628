package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/medqueue-go/internal/infra/buildinfo"
)

func (a *App) metricsCommand() *cli.Command {
	return &cli.Command{
		Name:  "metrics",
		Usage: "Print this process's metrics in Prometheus text format",
		Action: func(c *cli.Context) error {
			pc, err := a.page(c)
			if err != nil {
				return err
			}
			return pc.Metrics.WriteText(a.Stdout)
		},
	}
}

func (a *App) versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(c *cli.Context) error {
			if a.isTable(c) {
				a.say(c, "%s", buildinfo.String())
				return nil
			}
			return a.render(c, buildinfo.Get())
		},
	}
}
