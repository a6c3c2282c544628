package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/medqueue-go/internal/client/theme"
)

type themeInfo struct {
	Theme theme.Theme `json:"theme"`
	Icon  string      `json:"icon"`
}

func (a *App) themeCommand() *cli.Command {
	show := func(c *cli.Context, m *theme.Manager) error {
		if a.isTable(c) {
			a.say(c, "%s %s", m.Icon(), m.Current())
			return nil
		}
		return a.render(c, themeInfo{Theme: m.Current(), Icon: m.Icon()})
	}

	return &cli.Command{
		Name:  "theme",
		Usage: "Light/dark display preference",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the current theme",
				Action: func(c *cli.Context) error {
					pc, err := a.page(c)
					if err != nil {
						return err
					}
					return show(c, pc.Theme)
				},
			},
			{
				Name:      "set",
				Usage:     "Set the theme",
				ArgsUsage: "light|dark",
				Action: func(c *cli.Context) error {
					pc, err := a.page(c)
					if err != nil {
						return err
					}
					t, err := theme.Parse(c.Args().First())
					if err != nil {
						return err
					}
					if err := pc.Theme.Set(c.Context, t); err != nil {
						return err
					}
					return show(c, pc.Theme)
				},
			},
			{
				Name:  "toggle",
				Usage: "Switch between light and dark",
				Action: func(c *cli.Context) error {
					pc, err := a.page(c)
					if err != nil {
						return err
					}
					if _, err := pc.Theme.Toggle(c.Context); err != nil {
						return err
					}
					return show(c, pc.Theme)
				},
			},
		},
	}
}
