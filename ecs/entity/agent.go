package entity

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/milk9111/hexnav/ecs"
	"github.com/milk9111/hexnav/ecs/component"
	"github.com/milk9111/hexnav/hexgrid"
	"github.com/milk9111/hexnav/logging"
	"github.com/milk9111/hexnav/nav"
	"github.com/milk9111/hexnav/pathfind"
)

// AgentOptions describes an agent to spawn.
type AgentOptions struct {
	Name          string
	Start         hexgrid.Coord
	Speed         float64
	RotationSpeed float64
	ShowPath      bool
	Selected      bool
	Route         *component.Route
	Logger        *logging.Logger
}

// NewAgent spawns an agent on the centre of opts.Start. The world must
// already hold a map.
func NewAgent(w *ecs.World, opts AgentOptions) (ecs.Entity, error) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return 0, fmt.Errorf("agent %q: %w", opts.Name, ecs.ErrNoPhysicsWorld)
	}
	if _, ok := pw.Grid().Cell(opts.Start); !ok {
		return 0, fmt.Errorf("agent %q: start %s is not a water cell", opts.Name, opts.Start)
	}

	id := uuid.NewString()
	logger := opts.Logger.WithAgent(opts.Name)
	x, y := pw.Layout().Center(opts.Start)
	coordinator := nav.NewCoordinator(
		pathfind.New(logger),
		pw,
		nav.Config{
			Mover: nav.MoverConfig{
				Speed:         opts.Speed,
				RotationSpeed: opts.RotationSpeed,
				Layout:        pw.Layout(),
			},
			ShowPath: opts.ShowPath,
		},
		nav.Pose{X: x, Y: y},
		logger,
	)

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.AgentComponent.Kind(), &component.Agent{ID: id, Name: opts.Name, Selected: opts.Selected}); err != nil {
		return 0, fmt.Errorf("agent: add agent: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("agent: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.NavigatorComponent.Kind(), &component.Navigator{Coordinator: coordinator}); err != nil {
		return 0, fmt.Errorf("agent: add navigator: %w", err)
	}
	if opts.Route != nil {
		if err := ecs.Add(w, e, component.RouteComponent.Kind(), opts.Route); err != nil {
			return 0, fmt.Errorf("agent: add route: %w", err)
		}
	}
	return e, nil
}

// DestroyAgent closes the agent's coordinator and removes the entity.
func DestroyAgent(w *ecs.World, e ecs.Entity) bool {
	if nv, ok := ecs.Get(w, e, component.NavigatorComponent.Kind()); ok && nv.Coordinator != nil {
		nv.Coordinator.Close()
	}
	return ecs.DestroyEntity(w, e)
}
