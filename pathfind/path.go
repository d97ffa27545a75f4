package pathfind

import (
	"strings"

	"github.com/milk9111/hexnav/hexgrid"
)

// Path is an ordered walk from start to destination inclusive.
type Path []*hexgrid.Cell

// Edges returns the number of moves, len-1.
func (p Path) Edges() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Start returns the first cell.
func (p Path) Start() *hexgrid.Cell {
	if len(p) == 0 {
		return nil
	}
	return p[0]
}

// End returns the last cell.
func (p Path) End() *hexgrid.Cell {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1]
}

// Coords returns the coordinates along the path.
func (p Path) Coords() []hexgrid.Coord {
	out := make([]hexgrid.Coord, len(p))
	for i, c := range p {
		out[i] = c.Coord()
	}
	return out
}

// Connected reports whether every consecutive pair of cells are neighbors.
func (p Path) Connected() bool {
	for i := 1; i < len(p); i++ {
		if !p[i-1].IsNeighbor(p[i]) {
			return false
		}
	}
	return len(p) > 0
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = c.String()
	}
	return strings.Join(parts, " -> ")
}
