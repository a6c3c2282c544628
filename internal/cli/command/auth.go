package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/medqueue-go/internal/client/guard"
	"github.com/yndnr/medqueue-go/internal/core/domain"
	"github.com/yndnr/medqueue-go/internal/telemetry/logger"
	"github.com/yndnr/medqueue-go/pkg/token"
)

func emailFlag() cli.Flag {
	return &cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email (prompted if omitted)"}
}

func passwordFlag(name string) cli.Flag {
	return &cli.StringFlag{Name: name, Usage: "Password (prompted if omitted)"}
}

func (a *App) loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in and store the session token",
		Flags: []cli.Flag{emailFlag(), passwordFlag("password")},
		Action: func(c *cli.Context) error {
			pc, err := a.page(c)
			if err != nil {
				return err
			}
			email, err := a.ask(c, "email", "Email: ")
			if err != nil {
				return err
			}
			password, err := a.ask(c, "password", "Password: ")
			if err != nil {
				return err
			}

			var user domain.User
			err = a.withProgress(c, "Signing in", "Signed in", func() (err error) {
				user, err = pc.Session.Login(c.Context, email, password)
				return err
			})
			if err != nil {
				return err
			}
			return a.showUser(c, "Logged in.", user)
		},
	}
}

func (a *App) signupCommand() *cli.Command {
	return &cli.Command{
		Name:  "signup",
		Usage: "Create an account and store the session token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Full name (prompted if omitted)"},
			emailFlag(),
			passwordFlag("password"),
		},
		Action: func(c *cli.Context) error {
			pc, err := a.page(c)
			if err != nil {
				return err
			}
			name, err := a.ask(c, "name", "Name: ")
			if err != nil {
				return err
			}
			email, err := a.ask(c, "email", "Email: ")
			if err != nil {
				return err
			}
			password, err := a.ask(c, "password", "Password: ")
			if err != nil {
				return err
			}

			var user domain.User
			err = a.withProgress(c, "Creating account", "Account created", func() (err error) {
				user, err = pc.Session.Signup(c.Context, name, email, password)
				return err
			})
			if err != nil {
				return err
			}
			return a.showUser(c, "Account created.", user)
		},
	}
}

// showUser prints a headline and the user payload.
func (a *App) showUser(c *cli.Context, headline string, user domain.User) error {
	a.say(c, "%s", headline)
	if user.IsZero() {
		return nil
	}
	return a.render(c, user)
}

func (a *App) logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "End the session and clear the stored token",
		Action: func(c *cli.Context) error {
			pc, err := a.page(c)
			if err != nil {
				return err
			}
			if err := pc.Session.Logout(c.Context); err != nil {
				return err
			}
			a.say(c, "Logged out.")
			if !a.isTable(c) {
				return a.render(c, map[string]string{"location": guard.HomePage})
			}
			a.say(c, "redirect: %s", guard.HomePage)
			return nil
		},
	}
}

func (a *App) whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the signed-in user",
		Action: func(c *cli.Context) error {
			pc, err := a.page(c)
			if err != nil {
				return err
			}
			user, ok := pc.Session.CurrentUser(c.Context)
			if !ok {
				return domain.ErrLoginRequired.WithDetails("no current user")
			}
			return a.render(c, user)
		},
	}
}

func (a *App) forgotPasswordCommand() *cli.Command {
	return &cli.Command{
		Name:  "forgot-password",
		Usage: "Request a password reset code",
		Flags: []cli.Flag{emailFlag()},
		Action: func(c *cli.Context) error {
			pc, err := a.page(c)
			if err != nil {
				return err
			}
			email, err := a.ask(c, "email", "Email: ")
			if err != nil {
				return err
			}

			code, err := pc.Session.ForgotPassword(c.Context, email)
			if err != nil {
				return err
			}
			if !a.isTable(c) {
				return a.render(c, map[string]string{"verification_code": code})
			}
			if code == "" {
				a.say(c, "Verification code sent.")
			} else {
				a.say(c, "Verification code: %s", code)
			}
			return nil
		},
	}
}

func (a *App) resetPasswordCommand() *cli.Command {
	return &cli.Command{
		Name:  "reset-password",
		Usage: "Set a new password with a verification code",
		Flags: []cli.Flag{
			emailFlag(),
			&cli.StringFlag{Name: "code", Usage: "Verification code (prompted if omitted)"},
			passwordFlag("new-password"),
		},
		Action: func(c *cli.Context) error {
			pc, err := a.page(c)
			if err != nil {
				return err
			}
			email, err := a.ask(c, "email", "Email: ")
			if err != nil {
				return err
			}
			code, err := a.ask(c, "code", "Verification code: ")
			if err != nil {
				return err
			}
			password, err := a.ask(c, "new-password", "New password: ")
			if err != nil {
				return err
			}

			if err := pc.Session.ResetPassword(c.Context, email, code, password); err != nil {
				return err
			}
			a.say(c, "Password reset. Log in with the new password.")
			return nil
		},
	}
}

func (a *App) adminCommand() *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Admin access",
		Subcommands: []*cli.Command{
			{
				Name:   "check",
				Usage:  "Check whether the session has admin access",
				Before: a.requireAuth(pageAdmin),
				Action: func(c *cli.Context) error {
					pc, err := a.page(c)
					if err != nil {
						return err
					}
					granted := pc.Session.CheckAdminAccess(c.Context)
					if !a.isTable(c) {
						if err := a.render(c, map[string]bool{"has_access": granted}); err != nil {
							return err
						}
					}
					if !granted {
						return domain.ErrAdminRequired
					}
					a.say(c, "Admin access granted.")
					return nil
				},
			},
		},
	}
}

// tokenInfo is what `token show` reveals about the stored token.
type tokenInfo struct {
	Present     bool   `json:"present"`
	Token       string `json:"token,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

func (a *App) tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Inspect the stored session token",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show a masked form of the stored token",
				Action: func(c *cli.Context) error {
					pc, err := a.page(c)
					if err != nil {
						return err
					}
					info := tokenInfo{}
					if t, ok := pc.Session.Token(); ok {
						info = tokenInfo{
							Present:     true,
							Token:       logger.RedactToken(t),
							Fingerprint: token.Fingerprint(t),
						}
					}
					return a.render(c, info)
				},
			},
			{
				Name:  "remove",
				Usage: "Delete the stored token without calling the server",
				Action: func(c *cli.Context) error {
					pc, err := a.page(c)
					if err != nil {
						return err
					}
					if err := pc.Tokens.Remove(); err != nil {
						return err
					}
					a.say(c, "Token removed.")
					return nil
				},
			},
		},
	}
}
