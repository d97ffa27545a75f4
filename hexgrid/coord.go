package hexgrid

import (
	"fmt"
	"strconv"
	"strings"
)

// Coord is an axial hex coordinate.
type Coord struct {
	X int
	Y int
}

// Directions are the six axial neighbor offsets, in the order neighbors are
// linked.
var Directions = [6]Coord{
	{X: 0, Y: -1},
	{X: 1, Y: -1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
	{X: -1, Y: 1},
	{X: 0, Y: 1},
}

// Add returns c translated by o.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub returns c - o.
func (c Coord) Sub(o Coord) Coord {
	return Coord{X: c.X - o.X, Y: c.Y - o.Y}
}

// Neighbors returns the six adjacent coordinates.
func (c Coord) Neighbors() [6]Coord {
	var out [6]Coord
	for i, d := range Directions {
		out[i] = c.Add(d)
	}
	return out
}

// Less orders coordinates by X, then Y.
func (c Coord) Less(o Coord) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	return c.Y < o.Y
}

// Compare returns -1, 0 or 1 following Less.
func (c Coord) Compare(o Coord) int {
	switch {
	case c.Less(o):
		return -1
	case o.Less(c):
		return 1
	default:
		return 0
	}
}

// Offset converts c back to its (col, row) position in the text map.
func (c Coord) Offset() (col, row int) {
	row = c.Y
	col = c.X + (row-(row&1))/2
	return col, row
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// OffsetToAxial converts an odd-r (col, row) map position to axial.
func OffsetToAxial(col, row int) Coord {
	return Coord{X: col - (row-(row&1))/2, Y: row}
}

// ParseCoord parses "x,y" (optionally wrapped in parentheses).
func ParseCoord(s string) (Coord, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "(")
	trimmed = strings.TrimSuffix(trimmed, ")")
	parts := strings.Split(trimmed, ",")
	if len(parts) != 2 {
		return Coord{}, fmt.Errorf("%w: %q", ErrBadCoord, s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Coord{}, fmt.Errorf("%w: %q: %v", ErrBadCoord, s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Coord{}, fmt.Errorf("%w: %q: %v", ErrBadCoord, s, err)
	}
	return Coord{X: x, Y: y}, nil
}
