package nav

import "math"

// Pose is an agent position in world units and its heading in degrees,
// measured from +X toward +Y.
type Pose struct {
	X       float64
	Y       float64
	Heading float64
}

// Distance2 returns the squared distance to (x, y).
func (p Pose) Distance2(x, y float64) float64 {
	dx, dy := x-p.X, y-p.Y
	return dx*dx + dy*dy
}

// Bearing returns the heading in degrees that faces (x, y).
func (p Pose) Bearing(x, y float64) float64 {
	return math.Atan2(y-p.Y, x-p.X) * 180 / math.Pi
}

// AngleDelta returns the signed shortest rotation from a to b in (-180, 180].
func AngleDelta(a, b float64) float64 {
	d := math.Mod(b-a, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

// RotateTowards turns from toward to by at most maxStep degrees.
func RotateTowards(from, to, maxStep float64) float64 {
	d := AngleDelta(from, to)
	if maxStep <= 0 || math.Abs(d) <= maxStep {
		return normalize(from + d)
	}
	return normalize(from + math.Copysign(maxStep, d))
}

// MoveTowards moves (x, y) toward (tx, ty) by at most maxStep without
// overshooting.
func MoveTowards(x, y, tx, ty, maxStep float64) (float64, float64) {
	dx, dy := tx-x, ty-y
	dist := math.Hypot(dx, dy)
	if maxStep <= 0 || dist <= maxStep || dist == 0 {
		return tx, ty
	}
	return x + dx/dist*maxStep, y + dy/dist*maxStep
}

func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
