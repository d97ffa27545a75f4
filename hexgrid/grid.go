package hexgrid

import (
	"fmt"
	"sort"
)

// Grid owns the cells of a map and their adjacency.
type Grid struct {
	cells map[Coord]*Cell
	order []*Cell
	land  []Coord

	cols int
	rows int
}

// New builds a grid from the given navigable coordinates and links every
// pair whose difference is one of Directions.
func New(coords []Coord) (*Grid, error) {
	return build(coords, nil)
}

func build(coords []Coord, land []Coord) (*Grid, error) {
	if len(coords) == 0 {
		return nil, ErrEmptyMap
	}

	g := &Grid{
		cells: make(map[Coord]*Cell, len(coords)),
		order: make([]*Cell, 0, len(coords)),
		land:  append([]Coord(nil), land...),
	}

	for _, c := range coords {
		if _, dup := g.cells[c]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCell, c)
		}
		cell := &Cell{coord: c}
		g.cells[c] = cell
		g.order = append(g.order, cell)
		g.grow(c)
	}
	for _, c := range land {
		g.grow(c)
	}

	sort.Slice(g.order, func(i, j int) bool {
		return g.order[i].coord.Less(g.order[j].coord)
	})

	for _, cell := range g.order {
		cell.neighbors = make([]*Cell, 0, len(Directions))
		for _, d := range Directions {
			if n, ok := g.cells[cell.coord.Add(d)]; ok {
				cell.neighbors = append(cell.neighbors, n)
			}
		}
	}

	return g, nil
}

func (g *Grid) grow(c Coord) {
	col, row := c.Offset()
	if col+1 > g.cols {
		g.cols = col + 1
	}
	if row+1 > g.rows {
		g.rows = row + 1
	}
}

// Cell returns the cell at c.
func (g *Grid) Cell(c Coord) (*Cell, bool) {
	if g == nil {
		return nil, false
	}
	cell, ok := g.cells[c]
	return cell, ok
}

// Cells returns all cells ordered by coordinate.
func (g *Grid) Cells() []*Cell {
	if g == nil {
		return nil
	}
	return append([]*Cell(nil), g.order...)
}

// Land returns the coordinates of non-navigable tiles from the source map.
func (g *Grid) Land() []Coord {
	if g == nil {
		return nil
	}
	return append([]Coord(nil), g.land...)
}

// Len returns the number of navigable cells.
func (g *Grid) Len() int {
	if g == nil {
		return 0
	}
	return len(g.order)
}

// Size returns the map extent in offset columns and rows.
func (g *Grid) Size() (cols, rows int) {
	if g == nil {
		return 0, 0
	}
	return g.cols, g.rows
}

// Contains reports whether cell belongs to g.
func (g *Grid) Contains(cell *Cell) bool {
	if g == nil || cell == nil {
		return false
	}
	owned, ok := g.cells[cell.coord]
	return ok && owned == cell
}

// Validate checks that every neighbor link has its reverse link.
func (g *Grid) Validate() error {
	if g == nil || len(g.order) == 0 {
		return ErrEmptyMap
	}
	for _, cell := range g.order {
		for _, n := range cell.neighbors {
			if !n.IsNeighbor(cell) {
				return fmt.Errorf("%w: %s -> %s", ErrAsymmetric, cell, n)
			}
		}
	}
	return nil
}

// CellAtPoint returns the cell whose hexagon contains the world point.
func (g *Grid) CellAtPoint(l Layout, x, y float64) (*Cell, bool) {
	if g == nil {
		return nil, false
	}
	c, ok := l.Locate(x, y)
	if !ok {
		return nil, false
	}
	return g.Cell(c)
}

// ClearHighlights resets every highlight and pin.
func (g *Grid) ClearHighlights() {
	if g == nil {
		return
	}
	for _, cell := range g.order {
		cell.keep = false
		cell.highlighted = false
	}
}
