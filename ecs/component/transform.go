package component

// Transform is a world position. Rotation is in degrees from +X toward +Y.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
