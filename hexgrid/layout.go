package hexgrid

import "math"

// Layout places cells in the world plane. Rows grow along +Y and odd rows are
// shifted half a tile along +X.
type Layout struct {
	TileWidth float64
	RowHeight float64
}

// DefaultLayout is a regular pointy-top hexagon of circumradius 1.
func DefaultLayout() Layout {
	return Layout{TileWidth: math.Sqrt(3), RowHeight: 1.5}
}

// Validate rejects non-positive tile sizes.
func (l Layout) Validate() error {
	if l.TileWidth <= 0 || l.RowHeight <= 0 {
		return ErrBadLayout
	}
	return nil
}

// Center returns the world position of c.
func (l Layout) Center(c Coord) (x, y float64) {
	col, row := c.Offset()
	x = l.TileWidth * (float64(col) + 0.5*float64(row&1))
	y = l.RowHeight * float64(row)
	return x, y
}

// Corners returns the six hexagon vertices of c, clockwise from the top.
func (l Layout) Corners(c Coord) [6][2]float64 {
	cx, cy := l.Center(c)
	hw := l.TileWidth / 2
	r := l.RowHeight * 2 / 3
	return [6][2]float64{
		{cx, cy - r},
		{cx + hw, cy - r/2},
		{cx + hw, cy + r/2},
		{cx, cy + r},
		{cx - hw, cy + r/2},
		{cx - hw, cy - r/2},
	}
}

// Locate returns the coordinate whose hexagon, as drawn by Corners, contains
// the point. Distances are measured after scaling the layout back to a
// regular one, so any tile aspect ratio tiles exactly.
func (l Layout) Locate(x, y float64) (Coord, bool) {
	if l.Validate() != nil || math.IsNaN(x) || math.IsNaN(y) {
		return Coord{}, false
	}
	row := int(math.Round(y / l.RowHeight))
	shift := 0.0
	if row&1 == 1 {
		shift = 0.5
	}
	col := int(math.Round(x/l.TileWidth - shift))
	guess := OffsetToAxial(col, row)

	best := guess
	bestDist := l.dist2(guess, x, y)
	for _, n := range guess.Neighbors() {
		if d := l.dist2(n, x, y); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best, true
}

func (l Layout) dist2(c Coord, x, y float64) float64 {
	cx, cy := l.Center(c)
	dx := (cx - x) * math.Sqrt(3) / l.TileWidth
	dy := (cy - y) * 1.5 / l.RowHeight
	return dx*dx + dy*dy
}
