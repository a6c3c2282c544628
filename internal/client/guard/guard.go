package guard

import (
	"net/url"
	"path"
	"strings"
)

// LoginPage is where gated visitors are sent.
const LoginPage = "/login.html"

// HomePage is the public landing page.
const HomePage = "/index.html"

// publicPages render without a session.
var publicPages = map[string]bool{
	"index.html":  true,
	"login.html":  true,
	"signup.html": true,
}

// TokenSource reports whether a session token is present.
type TokenSource interface {
	IsAuthenticated() bool
}

// Navigator is the page the guard is consulted for.
type Navigator interface {
	// Path is the current page path, e.g. "/dashboard.html".
	Path() string
	// Redirect sends the visitor to location.
	Redirect(location string)
}

// Decision is the outcome of a guard check.
type Decision struct {
	Redirect bool
	Location string
}

// Guard gates pages on session presence.
type Guard struct {
	tokens TokenSource
}

// New creates a Guard backed by tokens.
func New(tokens TokenSource) *Guard {
	return &Guard{tokens: tokens}
}

// Decide reports whether a visitor on pagePath must be redirected to login.
// It reads state only.
func (g *Guard) Decide(pagePath string) Decision {
	if g.tokens.IsAuthenticated() || IsPublic(pagePath) {
		return Decision{}
	}
	return Decision{Redirect: true, Location: LoginLocation(pagePath)}
}

// RequireAuth redirects nav to login when needed and reports whether the
// page may render.
func (g *Guard) RequireAuth(nav Navigator) bool {
	d := g.Decide(nav.Path())
	if d.Redirect {
		nav.Redirect(d.Location)
		return false
	}
	return true
}

// IsPublic reports whether pagePath renders without a session. The site
// root counts as the home page.
func IsPublic(pagePath string) bool {
	p := pagePath
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" || strings.HasSuffix(p, "/") {
		return true
	}
	return publicPages[path.Base(p)]
}

// LoginLocation builds the login URL carrying pagePath as the return target.
func LoginLocation(pagePath string) string {
	return LoginPage + "?redirect=" + EncodeComponent(pagePath)
}

// EncodeComponent escapes s like JavaScript's encodeURIComponent.
func EncodeComponent(s string) string {
	// QueryEscape differs only in using '+' for space and escaping !'()*.
	escaped := url.QueryEscape(s)
	return componentFixer.Replace(escaped)
}

var componentFixer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)
