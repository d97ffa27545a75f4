package pathfind

import "github.com/milk9111/hexnav/hexgrid"

// Heuristic is the axial hex distance between a and b. When dx and dy share a
// sign (or either is zero) the distance is |dx+dy|, otherwise max(|dx|,|dy|).
// It is exact for the neighbor offsets in hexgrid.Directions.
func Heuristic(a, b hexgrid.Coord) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	if dx == 0 || dy == 0 || (dx > 0) == (dy > 0) {
		return abs(dx + dy)
	}
	return max(abs(dx), abs(dy))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
