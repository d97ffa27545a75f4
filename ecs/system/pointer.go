package system

import (
	"github.com/milk9111/hexnav/ecs"
	"github.com/milk9111/hexnav/ecs/component"
	"github.com/milk9111/hexnav/hexgrid"
)

// PointerSystem maintains the hover highlight and queues a CellClickedEvent
// for each click on a cell.
type PointerSystem struct{}

func NewPointerSystem() *PointerSystem {
	return &PointerSystem{}
}

func (ps *PointerSystem) Update(w *ecs.World) {
	pointerEnt, ok := w.First(component.PointerComponent.Kind())
	if !ok {
		return
	}
	pointer, ok := ecs.Get(w, pointerEnt, component.PointerComponent.Kind())
	if !ok {
		return
	}
	mapEnt, ok := w.First(component.HexMapComponent.Kind())
	if !ok {
		return
	}
	hexMap, ok := ecs.Get(w, mapEnt, component.HexMapComponent.Kind())
	if !ok {
		return
	}

	var hovered *hexgrid.Cell
	if pointer.Inside {
		hovered, _ = cellAt(w, hexMap, pointer.X, pointer.Y)
	}
	if hovered != hexMap.Hovered {
		hexMap.Hovered.Unhover()
		hovered.Hover()
		hexMap.Hovered = hovered
	}

	clicked := pointer.Clicked
	pointer.Clicked = false
	if !clicked || hovered == nil {
		return
	}

	w.Events().Push(ecs.Event{Type: ecs.EventCellClicked, Data: ecs.CellClickedEvent{Cell: hovered}})
}

// cellAt prefers the physics probe and falls back to layout geometry.
func cellAt(w *ecs.World, m *component.HexMap, x, y float64) (*hexgrid.Cell, bool) {
	if pw := w.PhysicsWorld(); pw != nil {
		return pw.CellAt(x, y)
	}
	if m.Grid == nil {
		return nil, false
	}
	return m.Grid.CellAtPoint(m.Layout, x, y)
}
