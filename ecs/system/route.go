package system

import (
	"github.com/milk9111/hexnav/ecs"
	"github.com/milk9111/hexnav/ecs/component"
	"github.com/milk9111/hexnav/logging"
)

// RouteSystem issues the next waypoint of a scripted route whenever the
// agent's coordinator is idle. Run it before NavigationSystem.
type RouteSystem struct {
	logger *logging.Logger
}

func NewRouteSystem(logger *logging.Logger) *RouteSystem {
	return &RouteSystem{logger: logger}
}

func (rs *RouteSystem) Update(w *ecs.World) {
	mapEnt, ok := w.First(component.HexMapComponent.Kind())
	if !ok {
		return
	}
	hexMap, ok := ecs.Get(w, mapEnt, component.HexMapComponent.Kind())
	if !ok || hexMap.Grid == nil {
		return
	}

	ecs.ForEach3(w, component.RouteComponent.Kind(), component.NavigatorComponent.Kind(), component.AgentComponent.Kind(),
		func(e ecs.Entity, route *component.Route, nv *component.Navigator, agent *component.Agent) {
			if nv.Coordinator == nil || nv.Coordinator.Busy() || ecs.Has(w, e, component.GoToRequestComponent.Kind()) {
				return
			}
			for attempt := 0; attempt < len(route.Waypoints) && !route.Done(); attempt++ {
				wp := route.Waypoints[route.Next%len(route.Waypoints)]
				route.Next++
				if route.Loop && route.Next >= len(route.Waypoints) {
					route.Next = 0
				}
				cell, ok := hexMap.Grid.Cell(wp)
				if !ok {
					rs.logger.WithAgent(agent.Name).Warn("route waypoint is not a water cell", "waypoint", wp.String())
					continue
				}
				if err := ecs.Add(w, e, component.GoToRequestComponent.Kind(), &component.GoToRequest{Cell: cell}); err != nil {
					panic("route system: add go to request: " + err.Error())
				}
				return
			}
		})
}
