package nav

import "github.com/milk9111/hexnav/hexgrid"

// CellProbe finds the cell under a world position.
type CellProbe interface {
	CellAt(x, y float64) (*hexgrid.Cell, bool)
}

// GridProbe resolves positions with the grid's layout geometry.
type GridProbe struct {
	Grid   *hexgrid.Grid
	Layout hexgrid.Layout
}

func (p GridProbe) CellAt(x, y float64) (*hexgrid.Cell, bool) {
	if p.Grid == nil {
		return nil, false
	}
	return p.Grid.CellAtPoint(p.Layout, x, y)
}

// ProbeFunc adapts a function to CellProbe.
type ProbeFunc func(x, y float64) (*hexgrid.Cell, bool)

func (f ProbeFunc) CellAt(x, y float64) (*hexgrid.Cell, bool) { return f(x, y) }
