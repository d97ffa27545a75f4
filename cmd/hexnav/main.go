package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/milk9111/hexnav/cmd/hexnav/commands"
	"github.com/milk9111/hexnav/viewer"
)

// Version information - set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.SetVersionInfo(version, commit, date)
	commands.SetPlayer(func(ctx context.Context, opts commands.PlayOptions) error {
		return viewer.Run(ctx, viewer.Options{
			Sim:      opts.Sim,
			Scenario: opts.Scenario,
			Watch:    opts.Watch,
			Logger:   opts.Logger,
		})
	})

	// Errors are printed by the commands with color formatting
	if err := commands.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
