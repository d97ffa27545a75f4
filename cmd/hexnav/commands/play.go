package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/milk9111/hexnav/logging"
	"github.com/milk9111/hexnav/sim"
)

// PlayOptions is what `hexnav play` hands to the viewer.
type PlayOptions struct {
	Sim      sim.Options
	Scenario string
	Watch    bool
	Logger   *logging.Logger
}

// Player opens an interactive window and blocks until it closes.
type Player func(ctx context.Context, opts PlayOptions) error

var errNoPlayer = errors.New("no viewer in this build")

type playOptions struct {
	mapName  string
	scenario string
	script   string
	watch    bool
}

func newPlayCmd(a *app) *cobra.Command {
	opts := &playOptions{}
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Open the map in a window and click water cells to navigate",
		Example: `  hexnav play
  hexnav play --scenario coastal --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, a, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.mapName, "map", "m", "", "map name or path (default from config)")
	cmd.Flags().StringVar(&opts.scenario, "scenario", "", "scenario name or path")
	cmd.Flags().StringVar(&opts.script, "script", "", "route script for the default agent")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload when level files under ./levels change")
	return cmd
}

func runPlay(cmd *cobra.Command, a *app, opts *playOptions) error {
	if player == nil {
		return reported(a.print.Error("Cannot open a window", errNoPlayer.Error()+".", "Use 'hexnav simulate' for headless runs"))
	}
	a.useMap(opts.mapName)
	return player(cmd.Context(), PlayOptions{
		Sim:      sim.Options{Config: a.cfg, Script: opts.script, Logger: a.logger},
		Scenario: opts.scenario,
		Watch:    opts.watch,
		Logger:   a.logger,
	})
}
