package hexgrid

// Cell is a node of the hex graph. Its coordinate and neighbor set never
// change once the owning Grid is built.
type Cell struct {
	coord     Coord
	neighbors []*Cell

	highlighted bool
	keep        bool
}

// Coord returns the axial coordinate.
func (c *Cell) Coord() Coord { return c.coord }

// X returns the axial x coordinate.
func (c *Cell) X() int { return c.coord.X }

// Y returns the axial y coordinate.
func (c *Cell) Y() int { return c.coord.Y }

// Neighbors returns the adjacent cells in Directions order. The slice is
// shared with the grid and must not be modified.
func (c *Cell) Neighbors() []*Cell {
	if c == nil {
		return nil
	}
	return c.neighbors
}

// IsNeighbor reports whether o is adjacent to c.
func (c *Cell) IsNeighbor(o *Cell) bool {
	if c == nil || o == nil {
		return false
	}
	for _, n := range c.neighbors {
		if n == o {
			return true
		}
	}
	return false
}

// Highlight toggles the visual highlight.
func (c *Cell) Highlight(active bool) {
	if c == nil {
		return
	}
	c.highlighted = active
}

// Highlighted reports the visual highlight state.
func (c *Cell) Highlighted() bool {
	return c != nil && c.highlighted
}

// SetKeepHighlighted pins the highlight so hover exit does not clear it.
func (c *Cell) SetKeepHighlighted(keep bool) {
	if c == nil {
		return
	}
	c.keep = keep
}

// KeepHighlighted reports whether the highlight is pinned.
func (c *Cell) KeepHighlighted() bool {
	return c != nil && c.keep
}

// Hover highlights the cell under the pointer.
func (c *Cell) Hover() {
	c.Highlight(true)
}

// Unhover clears a hover highlight unless it is pinned.
func (c *Cell) Unhover() {
	if c == nil || c.keep {
		return
	}
	c.highlighted = false
}

func (c *Cell) String() string {
	if c == nil {
		return "<nil>"
	}
	return c.coord.String()
}
