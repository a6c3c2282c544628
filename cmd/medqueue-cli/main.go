// Package main provides the entry point for medqueue-cli.
package main

import (
	"context"
	"os"

	"github.com/yndnr/medqueue-go/internal/cli/command"
	"github.com/yndnr/medqueue-go/internal/infra/shutdown"
)

func main() {
	os.Exit(run())
}

func run() int {
	app := command.New()

	ctx, stop := shutdown.Signals(context.Background())
	defer stop()

	err := app.Run(ctx, os.Args)
	if cerr := app.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		command.PrintError(os.Stderr, err)
		return 1
	}
	return 0
}
