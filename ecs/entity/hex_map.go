package entity

import (
	"fmt"

	"github.com/milk9111/hexnav/ecs"
	"github.com/milk9111/hexnav/ecs/component"
	"github.com/milk9111/hexnav/hexgrid"
)

// NewHexMap adds the map singleton and attaches a physics world built from g.
func NewHexMap(w *ecs.World, name string, g *hexgrid.Grid, layout hexgrid.Layout) (ecs.Entity, error) {
	pw, err := ecs.NewPhysicsWorld(g, layout)
	if err != nil {
		return 0, fmt.Errorf("hex map: build physics world: %w", err)
	}
	w.SetPhysicsWorld(pw)

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.HexMapComponent.Kind(), &component.HexMap{
		Name:   name,
		Grid:   g,
		Layout: layout,
	}); err != nil {
		return 0, fmt.Errorf("hex map: add map component: %w", err)
	}
	return e, nil
}
