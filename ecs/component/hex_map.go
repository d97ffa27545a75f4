package component

import "github.com/milk9111/hexnav/hexgrid"

// HexMap is the singleton navigable map.
type HexMap struct {
	Name   string
	Grid   *hexgrid.Grid
	Layout hexgrid.Layout
	// Hovered is the cell under the pointer, if any.
	Hovered *hexgrid.Cell
}

var HexMapComponent = NewComponent[HexMap]()
