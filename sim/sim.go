// Package sim assembles a world from configuration and an optional scenario
// and steps it at a fixed rate. The viewer and the headless CLI share it.
package sim

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/milk9111/hexnav/config"
	"github.com/milk9111/hexnav/ecs"
	"github.com/milk9111/hexnav/ecs/component"
	"github.com/milk9111/hexnav/ecs/entity"
	"github.com/milk9111/hexnav/ecs/system"
	"github.com/milk9111/hexnav/hexgrid"
	"github.com/milk9111/hexnav/levels"
	"github.com/milk9111/hexnav/logging"
	"github.com/milk9111/hexnav/nav"
	"github.com/milk9111/hexnav/script"
)

// DefaultAgent names the agent spawned when no scenario is given.
const DefaultAgent = "boat"

var (
	ErrTickLimit = errors.New("sim: tick limit reached")
	ErrNoAgents  = errors.New("sim: no agents")
)

// Options selects what to build.
type Options struct {
	Config   *config.Config
	Scenario *levels.Scenario
	// Destinations become the default agent's route when Scenario is nil.
	Destinations []hexgrid.Coord
	// Script names a route script for the default agent. It replaces
	// Destinations.
	Script string
	Logger *logging.Logger
}

// Sim is a running world.
type Sim struct {
	World     *ecs.World
	Scheduler *ecs.Scheduler
	Grid      *hexgrid.Grid
	Layout    hexgrid.Layout
	MapName   string
	Agents    []ecs.Entity
	Camera    ecs.Entity
	Pointer   ecs.Entity

	dt     float64
	ticks  int
	logger *logging.Logger
}

// Stats summarises a run.
type Stats struct {
	Ticks     int
	Seconds   float64
	Requests  int
	Arrivals  int
	Stopped   int
	Discarded int
	Failures  int
}

// New loads the map, spawns the agents and wires the systems. ctx bounds
// route script evaluation.
func New(ctx context.Context, opts Options) (*Sim, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	mapName := cfg.Map.Name
	if cfg.Map.Path != "" {
		mapName = cfg.Map.Path
	}
	if opts.Scenario != nil && opts.Scenario.Map != "" {
		mapName = opts.Scenario.Map
	}
	g, err := levels.LoadMap(mapName)
	if err != nil {
		return nil, err
	}

	layout := cfg.HexLayout()
	specs := []levels.AgentSpec{defaultAgent(cfg, opts)}
	if opts.Scenario != nil {
		if err := opts.Scenario.Validate(g); err != nil {
			return nil, err
		}
		layout = opts.Scenario.HexLayout(layout)
		specs = opts.Scenario.Agents
	}

	s := &Sim{
		World:   ecs.NewWorld(),
		Grid:    g,
		Layout:  layout,
		MapName: mapName,
		dt:      cfg.Sim.TickSeconds(),
		logger:  logger,
	}
	if _, err := entity.NewHexMap(s.World, mapName, g, layout); err != nil {
		return nil, err
	}
	if s.Pointer, err = entity.NewPointer(s.World); err != nil {
		return nil, err
	}

	for i, spec := range specs {
		agentOpts, err := s.agentOptions(ctx, cfg, spec)
		if err != nil {
			s.Close()
			return nil, err
		}
		agentOpts.Selected = i == 0
		e, err := entity.NewAgent(s.World, agentOpts)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.Agents = append(s.Agents, e)
	}
	if len(s.Agents) == 0 {
		return nil, ErrNoAgents
	}

	if s.Camera, err = entity.NewCamera(s.World, s.Agents[0], 1, 4); err != nil {
		s.Close()
		return nil, err
	}

	s.Scheduler = ecs.NewScheduler(
		system.NewPointerSystem(),
		system.NewRouteSystem(logger),
		system.NewNavigationSystem(s.dt, logger),
		system.NewCameraSystem(s.dt),
	)
	logger.Info("world ready", "map", mapName, "cells", g.Len(), "agents", len(s.Agents))
	return s, nil
}

func defaultAgent(cfg *config.Config, opts Options) levels.AgentSpec {
	spec := levels.AgentSpec{
		Name:          DefaultAgent,
		Start:         levels.CoordSpec(cfg.Start()),
		Speed:         cfg.Agent.Speed,
		RotationSpeed: cfg.Agent.RotationSpeed,
		ShowPath:      &cfg.Agent.ShowPath,
		Script:        opts.Script,
	}
	for _, c := range opts.Destinations {
		spec.Route = append(spec.Route, levels.CoordSpec(c))
	}
	return spec
}

func (s *Sim) agentOptions(ctx context.Context, cfg *config.Config, spec levels.AgentSpec) (entity.AgentOptions, error) {
	opts := entity.AgentOptions{
		Name:          spec.Name,
		Start:         spec.Start.Coord(),
		Speed:         spec.Speed,
		RotationSpeed: spec.RotationSpeed,
		ShowPath:      cfg.Agent.ShowPath,
		Logger:        s.logger,
	}
	if opts.Speed == 0 {
		opts.Speed = cfg.Agent.Speed
	}
	if opts.RotationSpeed == 0 {
		opts.RotationSpeed = cfg.Agent.RotationSpeed
	}
	if spec.ShowPath != nil {
		opts.ShowPath = *spec.ShowPath
	}

	waypoints, loop := spec.Waypoints(), spec.Loop
	if spec.Script != "" {
		src, err := levels.LoadScript(spec.Script)
		if err != nil {
			return opts, fmt.Errorf("agent %q: %w", spec.Name, err)
		}
		route, err := script.Run(ctx, src, script.Env{Grid: s.Grid, Start: opts.Start})
		if err != nil {
			return opts, fmt.Errorf("agent %q: %w", spec.Name, err)
		}
		waypoints, loop = route.Waypoints, route.Loop
		s.logger.WithAgent(spec.Name).Debug("route script evaluated", "script", spec.Script, "waypoints", len(waypoints))
	}
	if len(waypoints) > 0 {
		opts.Route = &component.Route{Waypoints: waypoints, Loop: loop}
	}
	return opts, nil
}

// AgentStatus is a display snapshot of one agent.
type AgentStatus struct {
	Name     string
	Selected bool
	Status   nav.Status
	Arrivals int
}

// AgentStatuses reports every agent in spawn order.
func (s *Sim) AgentStatuses() []AgentStatus {
	out := make([]AgentStatus, 0, len(s.Agents))
	for _, e := range s.Agents {
		agent, ok := ecs.Get(s.World, e, component.AgentComponent.Kind())
		if !ok {
			continue
		}
		st := AgentStatus{Name: agent.Name, Selected: agent.Selected}
		if nv, ok := ecs.Get(s.World, e, component.NavigatorComponent.Kind()); ok {
			st.Arrivals = nv.Arrivals
			if nv.Coordinator != nil {
				st.Status = nv.Coordinator.Status()
			}
		}
		out = append(out, st)
	}
	return out
}

// Ticks returns the number of steps taken.
func (s *Sim) Ticks() int { return s.ticks }

// Dt returns the fixed step in seconds.
func (s *Sim) Dt() float64 { return s.dt }

// Step runs every system once and returns the events raised.
func (s *Sim) Step() []ecs.Event {
	s.Scheduler.Update(s.World)
	s.ticks++
	return s.World.Events().Drain()
}

// Idle reports whether no agent has work left: no pending click and nothing
// searching, moving, queued or waiting on its route.
func (s *Sim) Idle() bool {
	idle := len(s.World.Events().Peek(ecs.EventCellClicked)) == 0
	ecs.ForEach(s.World, component.NavigatorComponent.Kind(), func(e ecs.Entity, nv *component.Navigator) {
		if nv.Coordinator != nil && nv.Coordinator.Busy() {
			idle = false
		}
		if ecs.Has(s.World, e, component.GoToRequestComponent.Kind()) {
			idle = false
		}
		if route, ok := ecs.Get(s.World, e, component.RouteComponent.Kind()); ok && !route.Done() {
			idle = false
		}
	})
	return idle
}

func (s *Sim) searching() bool {
	found := false
	ecs.ForEach(s.World, component.NavigatorComponent.Kind(), func(_ ecs.Entity, nv *component.Navigator) {
		if nv.Coordinator != nil && nv.Coordinator.Status() == nav.StatusSearching {
			found = true
		}
	})
	return found
}

// GoTo queues a click on c for the selected agents.
func (s *Sim) GoTo(c hexgrid.Coord) error {
	cell, ok := s.Grid.Cell(c)
	if !ok {
		return fmt.Errorf("%w: %s is not a water cell", nav.ErrInvalidRequest, c)
	}
	selected := false
	ecs.ForEach(s.World, component.AgentComponent.Kind(), func(_ ecs.Entity, agent *component.Agent) {
		selected = selected || agent.Selected
	})
	if !selected {
		return ErrNoAgents
	}
	s.World.Events().Push(ecs.Event{Type: ecs.EventCellClicked, Data: ecs.CellClickedEvent{Cell: cell}})
	return nil
}

// Run steps until every agent is idle, maxTicks is reached (0 = no limit) or
// ctx ends. onEvent, if set, sees every event.
func (s *Sim) Run(ctx context.Context, maxTicks int, onEvent func(ecs.Event)) (Stats, error) {
	var stats Stats
	start := s.ticks
	for {
		if err := ctx.Err(); err != nil {
			return s.stats(stats, start), err
		}
		if s.Idle() {
			return s.stats(stats, start), nil
		}
		if maxTicks > 0 && s.ticks-start >= maxTicks {
			return s.stats(stats, start), ErrTickLimit
		}

		for _, ev := range s.Step() {
			stats.count(ev)
			if onEvent != nil {
				onEvent(ev)
			}
		}
		if s.searching() {
			runtime.Gosched()
		}
	}
}

func (s *Sim) stats(st Stats, start int) Stats {
	st.Ticks = s.ticks - start
	st.Seconds = float64(st.Ticks) * s.dt
	return st
}

func (st *Stats) count(ev ecs.Event) {
	switch data := ev.Data.(type) {
	case ecs.NavigationEvent:
		switch data.Event.Kind {
		case nav.EventStarted:
			st.Requests++
		case nav.EventArrived:
			st.Arrivals++
		case nav.EventStopped:
			st.Stopped++
		case nav.EventDiscarded:
			st.Discarded++
		}
	case ecs.NavigationErrorEvent:
		st.Failures++
	}
}

// Close cancels every agent's navigation.
func (s *Sim) Close() {
	if s == nil || s.World == nil {
		return
	}
	for _, e := range s.Agents {
		entity.DestroyAgent(s.World, e)
	}
	s.Agents = nil
}
