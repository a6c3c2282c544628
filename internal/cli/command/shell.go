package command

import (
	"context"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/medqueue-go/internal/cli/config"
	"github.com/yndnr/medqueue-go/internal/cli/repl"
	"github.com/yndnr/medqueue-go/internal/infra/buildinfo"
	"github.com/yndnr/medqueue-go/internal/infra/confloader"
	"github.com/yndnr/medqueue-go/internal/infra/shutdown"
	"github.com/yndnr/medqueue-go/internal/telemetry/logger"
)

func (a *App) shellCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Interactive mode; the session lives until the shell exits",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "history",
				Value: repl.DefaultHistoryFile(),
				Usage: "History file (empty keeps history in memory)",
			},
			&cli.BoolFlag{
				Name:  "no-watch",
				Usage: "Do not apply log level changes from the config file",
			},
		},
		Action: a.runShell,
	}
}

func (a *App) runShell(c *cli.Context) error {
	pc, err := a.page(c)
	if err != nil {
		return err
	}

	ctx, stop := shutdown.Signals(c.Context)
	defer stop()

	if !c.Bool("no-watch") {
		if w := a.watchConfig(); w != nil {
			defer w.Stop()
		}
	}

	a.shell = true
	defer func() { a.shell = false }()

	r := repl.New(a.execLine,
		repl.WithIO(a.in, a.Stdout),
		repl.WithCompleter(repl.NewCompleter(CommandPaths(a.CLI()))),
		repl.WithHistory(repl.NewHistory(c.String("history"))),
		repl.WithPrompt(func() string {
			if pc.Session.IsAuthenticated() {
				return "medqueue [signed in]> "
			}
			return "medqueue> "
		}),
	)
	return r.Run(ctx)
}

// execLine runs one shell line as a full command invocation.
func (a *App) execLine(ctx context.Context, args []string) error {
	if err := a.Run(ctx, append([]string{buildinfo.ProductName}, args...)); err != nil {
		PrintError(a.Stderr, err)
	}
	return nil
}

// watchConfig applies log.level edits to the running shell. It returns
// nil when the file cannot be watched.
func (a *App) watchConfig() *confloader.Watcher {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(a.log))
	if err != nil {
		a.log.Debug("config watcher unavailable", "error", err)
		return nil
	}
	if err := w.Watch(a.cfgPath); err != nil {
		a.log.Debug("config file not watched", "path", a.cfgPath, "error", err)
		_ = w.Stop()
		return nil
	}

	w.OnChange(a.reloadConfig)
	w.StartAsync()
	return w
}

// reloadConfig re-reads path with the process's flag overrides on top,
// so a flag given on the command line still wins over the file.
func (a *App) reloadConfig(path string) {
	cfg, err := config.Load(path, a.overrides)
	if err != nil {
		a.log.Warn("config reload failed", "path", path, "error", err)
		return
	}
	if cfg.Log.Level != logger.GetLevel() {
		logger.SetLevel(cfg.Log.Level)
		a.log.Info("log level changed", "level", cfg.Log.Level)
	}
}

// CommandPaths lists every command path of app, e.g. "queue add".
func CommandPaths(app *cli.App) []string {
	var paths []string
	var walk func(prefix string, cmds []*cli.Command)
	walk = func(prefix string, cmds []*cli.Command) {
		for _, cmd := range cmds {
			if cmd.Hidden {
				continue
			}
			p := strings.TrimSpace(prefix + " " + cmd.Name)
			paths = append(paths, p)
			walk(p, cmd.Subcommands)
		}
	}
	walk("", app.Commands)
	return paths
}
