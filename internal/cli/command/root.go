package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/medqueue-go/internal/cli/config"
	"github.com/yndnr/medqueue-go/internal/cli/output"
	"github.com/yndnr/medqueue-go/internal/client/page"
	"github.com/yndnr/medqueue-go/internal/core/domain"
	"github.com/yndnr/medqueue-go/internal/infra/buildinfo"
	"github.com/yndnr/medqueue-go/internal/infra/shutdown"
	"github.com/yndnr/medqueue-go/internal/storage"
	"github.com/yndnr/medqueue-go/internal/telemetry/logger"
)

// shutdownTimeout bounds closing the state store on exit.
const shutdownTimeout = 5 * time.Second

// App is the state one medqueue-cli process shares across commands.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	in        *bufio.Reader
	cfg       *config.CLIConfig
	cfgPath   string
	overrides map[string]any
	log       logger.Logger
	pc        *page.Context
	shutdown  *shutdown.Handler
	shell     bool
}

// New creates an App on the process's standard streams.
func New() *App {
	return NewWithIO(os.Stdin, os.Stdout, os.Stderr)
}

// NewWithIO creates an App on the given streams.
func NewWithIO(in io.Reader, out, errOut io.Writer) *App {
	return &App{
		Stdin:    in,
		Stdout:   out,
		Stderr:   errOut,
		in:       bufio.NewReader(in),
		log:      logger.Discard(),
		shutdown: shutdown.NewHandler(shutdownTimeout),
	}
}

// Run parses args (including the program name) and runs the command.
func (a *App) Run(ctx context.Context, args []string) error {
	err := a.CLI().RunContext(ctx, args)
	if err != nil {
		a.log.Debug("command failed", "error_id", domain.GetErrorCode(err), "error", err)
	}
	return err
}

// Close runs the shutdown hooks, closing the state store if it was opened.
func (a *App) Close() error {
	return a.shutdown.Shutdown()
}

// CLI builds the urfave/cli application bound to a.
func (a *App) CLI() *cli.App {
	return &cli.App{
		Name:                 buildinfo.ProductName,
		Usage:                "MedQueue clinic queue client",
		Version:              buildinfo.Get().Version,
		HideVersion:          true,
		Reader:               a.Stdin,
		Writer:               a.Stdout,
		ErrWriter:            a.Stderr,
		Flags:                globalFlags(),
		Before:               a.setup,
		Commands:             a.commands(),
		EnableBashCompletion: true,
		// Errors are printed by the caller; never os.Exit from inside a run.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func (a *App) commands() []*cli.Command {
	cmds := []*cli.Command{
		a.loginCommand(),
		a.signupCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.forgotPasswordCommand(),
		a.resetPasswordCommand(),
		a.adminCommand(),
		a.tokenCommand(),
		a.patientCommand(),
		a.doctorCommand(),
		a.queueCommand(),
		a.schedulerCommand(),
		a.dashboardCommand(),
		a.healthCommand(),
		a.themeCommand(),
		a.configCommand(),
		a.metricsCommand(),
		a.versionCommand(),
	}
	if !a.shell {
		cmds = append(cmds, a.shellCommand())
	}
	return cmds
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file (default ~/.medqueue/cli.yaml)",
		},
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "API base URL (e.g., http://localhost:5000/api)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show nested columns in tables",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.BoolFlag{
			Name:  "progress",
			Usage: "Show a spinner while waiting for the server",
		},
		&cli.BoolFlag{
			Name:  "no-remember",
			Usage: "Keep the login token for this process only",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Config     string
	Server     string
	Output     string
	Wide       bool
	LogLevel   string
	Progress   bool
	NoRemember bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Config:     c.String("config"),
		Server:     c.String("server"),
		Output:     c.String("output"),
		Wide:       c.Bool("wide"),
		LogLevel:   c.String("log-level"),
		Progress:   c.Bool("progress"),
		NoRemember: c.Bool("no-remember"),
	}
}

// overrides maps explicitly set global flags onto config keys.
func (f *GlobalFlags) overrides() map[string]any {
	m := map[string]any{}
	if f.Server != "" {
		m["server.base_url"] = f.Server
	}
	if f.Output != "" {
		m["output"] = f.Output
	}
	if f.LogLevel != "" {
		m["log.level"] = f.LogLevel
	}
	if f.NoRemember {
		m["session.remember"] = false
	}
	return m
}

// setup loads configuration and the logger once per process.
func (a *App) setup(c *cli.Context) error {
	if a.cfg != nil {
		return nil
	}

	flags := ParseGlobalFlags(c)
	a.cfgPath = flags.Config
	if a.cfgPath == "" {
		a.cfgPath = config.DefaultConfigPath()
	}

	// config init creates the file, so it must not be required to exist
	if c.Args().Get(0) == "config" && c.Args().Get(1) == "init" {
		a.cfg = config.Default()
		return nil
	}

	a.overrides = flags.overrides()
	cfg, err := config.Load(flags.Config, a.overrides)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: a.Stderr,
	})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	a.log.Debug("config loaded", "path", a.cfgPath, "base_url", cfg.Server.BaseURL)
	return nil
}

// page returns the process's page context, opening it on first use.
func (a *App) page(c *cli.Context) (*page.Context, error) {
	if a.pc != nil {
		return a.pc, nil
	}
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}

	pc, err := page.Open(c.Context, a.cfg, a.log)
	if err != nil {
		return nil, openError(err)
	}
	a.pc = pc
	a.shutdown.OnShutdown(func(context.Context) error { return pc.Close() })
	return pc, nil
}

// openError maps a page.Open failure onto a domain error.
func openError(err error) error {
	var de *domain.DomainError
	switch {
	case errors.Is(err, storage.ErrLocked):
		return domain.ErrStorageOpen.
			WithDetails("state directory is held by another medqueue-cli process, such as an open shell").
			WithCause(err)
	case errors.As(err, &de):
		return err
	}
	return domain.ErrStorageOpen.WithCause(err)
}

// format resolves the output format for this invocation.
func (a *App) format(c *cli.Context) (output.Format, error) {
	name := a.cfg.Output
	if c.IsSet("output") {
		name = c.String("output")
	}
	return output.ParseFormat(name)
}

// isTable reports whether human-oriented output was requested.
func (a *App) isTable(c *cli.Context) bool {
	f, err := a.format(c)
	return err == nil && f == output.FormatTable
}

// render writes data in the requested format.
func (a *App) render(c *cli.Context, data any) error {
	f, err := a.format(c)
	if err != nil {
		return err
	}
	return output.NewFormatter(f, c.Bool("wide")).Format(a.Stdout, data)
}

// say prints a line in table mode only.
func (a *App) say(c *cli.Context, format string, args ...any) {
	if a.isTable(c) {
		fmt.Fprintf(a.Stdout, format+"\n", args...)
	}
}

// withProgress runs fn under a stderr spinner when --progress is set.
func (a *App) withProgress(c *cli.Context, message, done string, fn func() error) error {
	if !c.Bool("progress") {
		return fn()
	}
	s := output.NewSpinner(a.Stderr, message)
	s.Start()
	err := fn()
	if err != nil {
		s.Fail(domain.UserMessage(err))
	} else {
		s.Success(done)
	}
	return err
}

// ask returns the named flag, or prompts for it on stderr and reads a
// line from stdin.
func (a *App) ask(c *cli.Context, flag, prompt string) (string, error) {
	if v := c.String(flag); v != "" {
		return v, nil
	}

	fmt.Fprint(a.Stderr, prompt)
	line, err := a.in.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return "", domain.ErrMissingArgument.WithDetails("--" + flag + " is required")
	}
	return line, nil
}

// PrintError prints err to w the way the CLI reports failures.
func PrintError(w io.Writer, err error) {
	var ae *domain.AuthError
	if errors.As(err, &ae) {
		fmt.Fprintf(w, "error: %s\n", ae.Message)
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}
