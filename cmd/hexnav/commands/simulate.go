package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/milk9111/hexnav/ecs"
	"github.com/milk9111/hexnav/hexgrid"
	"github.com/milk9111/hexnav/levels"
	"github.com/milk9111/hexnav/nav"
	"github.com/milk9111/hexnav/sim"
)

type simulateOptions struct {
	mapName  string
	to       []string
	script   string
	scenario string
	maxTicks int
	quiet    bool
}

func newSimulateCmd(a *app) *cobra.Command {
	opts := &simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run agents headlessly until they finish their routes",
		Example: `  hexnav simulate --to 8,0 --to 6,7
  hexnav simulate --script coast --map strait
  hexnav simulate --scenario patrol`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, a, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.mapName, "map", "m", "", "map name or path (default from config)")
	cmd.Flags().StringArrayVar(&opts.to, "to", nil, "destination as axial x,y (repeatable, visited in order)")
	cmd.Flags().StringVar(&opts.script, "script", "", "route script name or path")
	cmd.Flags().StringVar(&opts.scenario, "scenario", "", "scenario name or path (replaces --to and --script)")
	cmd.Flags().IntVar(&opts.maxTicks, "max-ticks", -1, "stop after this many ticks (default from config, 0 = unbounded)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print only the summary")
	return cmd
}

func runSimulate(cmd *cobra.Command, a *app, opts *simulateOptions) error {
	a.useMap(opts.mapName)

	simOpts := sim.Options{Config: a.cfg, Script: opts.script, Logger: a.logger}
	for _, s := range opts.to {
		c, err := hexgrid.ParseCoord(s)
		if err != nil {
			return reported(a.print.Error("Invalid --to", err.Error()))
		}
		simOpts.Destinations = append(simOpts.Destinations, c)
	}
	if opts.scenario != "" {
		scenario, err := levels.LoadScenario(opts.scenario)
		if err != nil {
			return reported(a.print.Error("Cannot load scenario", err.Error(), "Run 'hexnav maps' to list the built-in scenarios"))
		}
		simOpts.Scenario = scenario
	}
	if opts.scenario == "" && opts.script == "" && len(simOpts.Destinations) == 0 {
		return reported(a.print.Error("Nothing to do", "No destinations were given.",
			"Pass one or more --to x,y",
			"Pass --script NAME",
			"Pass --scenario NAME"))
	}

	s, err := sim.New(cmd.Context(), simOpts)
	if err != nil {
		return reported(a.print.Error("Cannot build the world", err.Error()))
	}
	defer s.Close()

	maxTicks := a.cfg.Sim.MaxTicks
	if opts.maxTicks >= 0 {
		maxTicks = opts.maxTicks
	}

	a.print.Step("%s: %d agents, %d water cells\n", s.MapName, len(s.Agents), s.Grid.Len())
	began := time.Now()
	stats, err := s.Run(cmd.Context(), maxTicks, func(ev ecs.Event) {
		if !opts.quiet {
			a.printEvent(s, ev)
		}
	})
	switch {
	case errors.Is(err, sim.ErrTickLimit):
		a.print.Warning("stopped after %d ticks with work remaining\n", stats.Ticks)
	case err != nil:
		return err
	}

	a.print.Success("%d requests, %d arrived, %d stopped, %d discarded, %d failed in %.2fs simulated (%s wall)\n",
		stats.Requests, stats.Arrivals, stats.Stopped, stats.Discarded, stats.Failures, stats.Seconds, time.Since(began).Round(time.Millisecond))
	if stats.Failures > 0 {
		return reported(fmt.Errorf("%d requests failed", stats.Failures))
	}
	return nil
}

func (a *app) printEvent(s *sim.Sim, ev ecs.Event) {
	at := fmt.Sprintf("[%7.2fs]", float64(s.Ticks())*s.Dt())
	switch data := ev.Data.(type) {
	case ecs.NavigationEvent:
		e := data.Event
		switch e.Kind {
		case nav.EventArrived:
			a.print.Success("%s %s arrived at %s\n", at, data.Agent, e.Destination)
		case nav.EventPathFound:
			a.print.Info("%s %s path to %s: %d cells\n", at, data.Agent, e.Destination, len(e.Path))
		case nav.EventStopped, nav.EventDiscarded:
			a.print.Warning("%s %s %s (%s)\n", at, data.Agent, e.Kind, e.Destination)
		case nav.EventRejected:
			a.print.Warning("%s %s rejected %s: %v\n", at, data.Agent, e.Destination, e.Err)
		case nav.EventFailed:
			// Reported through the error event.
		default:
			a.print.Info("%s %s %s %s\n", at, data.Agent, e.Kind, e.Destination)
		}
	case ecs.NavigationErrorEvent:
		red.Fprintf(a.print.out, "%s %s: %v\n", at, data.Agent, data.Err)
	}
}
