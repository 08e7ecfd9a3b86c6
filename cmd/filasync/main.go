// Package main provides the entry point for the filasync CLI tool.
package main

import (
	"context"
	"os"

	"github.com/agentstation/filasync/cmd/filasync/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	application, err := app.New(version, commit, date)
	if err != nil {
		app.ExitOnError(err)
	}

	// Create context with signal handling for graceful shutdown
	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	if err := application.Execute(ctx, os.Args[1:]); err != nil {
		// All user-visible failures funnel through here: log once with the
		// configured verbosity and map to a non-zero exit.
		if application.Config().Verbose {
			application.Logger().Error().Err(err).Msg("Run failed")
		}
		app.ExitOnError(err)
	}
}
