// Package command defines the medqueue-cli command tree (urfave/cli/v2).
//
//   - root.go: App, global flags, config and page-context bootstrap
//   - gate.go: login gate for commands that stand in for protected pages
//   - auth.go: login, signup, logout, whoami, password reset, admin, token
//   - clinic.go: patients, doctors, queue, scheduler, dashboard, health
//   - theme.go, config.go, metrics.go, shell.go
//
// One App lives for the whole process. In shell mode every input line
// builds a fresh cli.App over the same App, so the tab-scoped token tier
// lasts until the shell exits.
package command
