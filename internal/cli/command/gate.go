package command

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/medqueue-go/internal/core/domain"
	"github.com/yndnr/medqueue-go/internal/infra/buildinfo"
)

// Pages the commands stand in for. The login gate decides on these paths
// exactly as it would for the web pages.
const (
	pageDashboard    = "/dashboard.html"
	pageSearch       = "/search.html"
	pageRegistration = "/patient-registration.html"
	pageAppointment  = "/appointment.html"
	pageAdmin        = "/admin.html"
)

// commandNavigator is the CLI's stand-in for the browser location.
type commandNavigator struct {
	path     string
	out      io.Writer
	location string
}

func (n *commandNavigator) Path() string { return n.path }

func (n *commandNavigator) Redirect(location string) {
	n.location = location
	fmt.Fprintf(n.out, "redirect: %s\n", location)
}

// requireAuth gates a command behind a session, like the page it replaces.
func (a *App) requireAuth(pagePath string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		pc, err := a.page(c)
		if err != nil {
			return err
		}

		nav := &commandNavigator{path: pagePath, out: a.Stderr}
		if pc.Guard.RequireAuth(nav) {
			return nil
		}
		a.log.Debug("command gated", "page", pagePath, "location", nav.location)
		return domain.ErrLoginRequired.WithDetails(
			fmt.Sprintf("run '%s login' first", buildinfo.ProductName))
	}
}
