package system

import (
	"github.com/milk9111/hexnav/ecs"
	"github.com/milk9111/hexnav/ecs/component"
	"github.com/milk9111/hexnav/hexgrid"
	"github.com/milk9111/hexnav/logging"
	"github.com/milk9111/hexnav/nav"
)

// NavigationSystem consumes queued cell clicks and GoTo requests, hands them
// to each agent's coordinator, ticks the coordinators and mirrors their poses
// into transforms.
type NavigationSystem struct {
	dt     float64
	logger *logging.Logger
}

func NewNavigationSystem(dt float64, logger *logging.Logger) *NavigationSystem {
	return &NavigationSystem{dt: dt, logger: logger}
}

func (ns *NavigationSystem) Update(w *ecs.World) {
	if ns == nil || w == nil {
		return
	}

	for _, ev := range w.Events().Take(ecs.EventCellClicked) {
		clicked, ok := ev.Data.(ecs.CellClickedEvent)
		if !ok || clicked.Cell == nil {
			continue
		}
		ecs.ForEach2(w, component.AgentComponent.Kind(), component.NavigatorComponent.Kind(), func(e ecs.Entity, agent *component.Agent, nv *component.Navigator) {
			if agent.Selected {
				ns.requestGoTo(w, e, agent, nv, clicked.Cell)
			}
		})
	}

	ecs.ForEach3(w, component.GoToRequestComponent.Kind(), component.NavigatorComponent.Kind(), component.AgentComponent.Kind(),
		func(e ecs.Entity, req *component.GoToRequest, nv *component.Navigator, agent *component.Agent) {
			ecs.Remove(w, e, component.GoToRequestComponent.Kind())
			ns.requestGoTo(w, e, agent, nv, req.Cell)
		})

	ecs.ForEach3(w, component.NavigatorComponent.Kind(), component.TransformComponent.Kind(), component.AgentComponent.Kind(),
		func(e ecs.Entity, nv *component.Navigator, t *component.Transform, agent *component.Agent) {
			if nv.Coordinator == nil {
				return
			}
			events, err := nv.Coordinator.Tick(ns.dt)

			pose := nv.Coordinator.Pose()
			t.X, t.Y, t.Rotation = pose.X, pose.Y, pose.Heading

			for _, ev := range events {
				nv.LastEvent = &ev
				if ev.Kind == nav.EventArrived {
					nv.Arrivals++
				}
				w.Events().Push(ecs.Event{Type: ecs.EventNavigation, Data: ecs.NavigationEvent{Entity: e, Agent: agent.Name, Event: ev}})
			}
			if err != nil {
				ns.logger.WithAgent(agent.Name).Warn("navigation failed", "error", err.Error())
				w.Events().Push(ecs.Event{Type: ecs.EventNavError, Data: ecs.NavigationErrorEvent{Entity: e, Agent: agent.Name, Err: err}})
			}
		})
}

func (ns *NavigationSystem) requestGoTo(w *ecs.World, e ecs.Entity, agent *component.Agent, nv *component.Navigator, cell *hexgrid.Cell) {
	if nv.Coordinator == nil {
		return
	}
	if err := nv.Coordinator.RequestGoTo(cell); err != nil {
		ns.logger.WithAgent(agent.Name).Warn("go to rejected", "cell", cell.String(), "error", err.Error())
		w.Events().Push(ecs.Event{Type: ecs.EventNavError, Data: ecs.NavigationErrorEvent{Entity: e, Agent: agent.Name, Err: err}})
	}
}
