package ecs

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/hexnav/hexgrid"
)

const (
	collisionTypeWater cp.CollisionType = iota + 1
	collisionTypeLand
)

// PhysicsWorld owns a Chipmunk space holding one static hexagon per map tile.
// It answers "which cell is under this point" with a spatial point query and
// satisfies nav.CellProbe.
type PhysicsWorld struct {
	grid   *hexgrid.Grid
	layout hexgrid.Layout
	space  *cp.Space

	shapeToCell map[*cp.Shape]*hexgrid.Cell
	landShapes  map[*cp.Shape]hexgrid.Coord
}

// NewPhysicsWorld builds static shapes for every water and land tile of g.
func NewPhysicsWorld(g *hexgrid.Grid, layout hexgrid.Layout) (*PhysicsWorld, error) {
	if g == nil {
		return nil, hexgrid.ErrEmptyMap
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	pw := &PhysicsWorld{
		grid:        g,
		layout:      layout,
		space:       cp.NewSpace(),
		shapeToCell: make(map[*cp.Shape]*hexgrid.Cell, g.Len()),
		landShapes:  make(map[*cp.Shape]hexgrid.Coord),
	}
	pw.buildStaticShapes()
	return pw, nil
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// Grid returns the map the shapes were built from.
func (pw *PhysicsWorld) Grid() *hexgrid.Grid {
	if pw == nil {
		return nil
	}
	return pw.grid
}

// Layout returns the world geometry.
func (pw *PhysicsWorld) Layout() hexgrid.Layout {
	return pw.layout
}

// CellAt returns the navigable cell whose hexagon contains (x, y). Land tiles
// block the query.
func (pw *PhysicsWorld) CellAt(x, y float64) (*hexgrid.Cell, bool) {
	if pw == nil || pw.space == nil {
		return nil, false
	}
	info := pw.space.PointQueryNearest(cp.Vector{X: x, Y: y}, 0, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return nil, false
	}
	cell, ok := pw.shapeToCell[info.Shape]
	return cell, ok
}

// IsLand reports whether (x, y) lies on a land tile.
func (pw *PhysicsWorld) IsLand(x, y float64) bool {
	if pw == nil || pw.space == nil {
		return false
	}
	info := pw.space.PointQueryNearest(cp.Vector{X: x, Y: y}, 0, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return false
	}
	_, ok := pw.landShapes[info.Shape]
	return ok
}

// ShapeCount returns the number of static tile shapes.
func (pw *PhysicsWorld) ShapeCount() int {
	if pw == nil {
		return 0
	}
	return len(pw.shapeToCell) + len(pw.landShapes)
}

func (pw *PhysicsWorld) buildStaticShapes() {
	for _, cell := range pw.grid.Cells() {
		shape := pw.hexShape(cell.Coord(), collisionTypeWater)
		pw.shapeToCell[shape] = cell
	}
	for _, c := range pw.grid.Land() {
		pw.landShapes[pw.hexShape(c, collisionTypeLand)] = c
	}
}

func (pw *PhysicsWorld) hexShape(c hexgrid.Coord, typ cp.CollisionType) *cp.Shape {
	corners := pw.layout.Corners(c)
	verts := make([]cp.Vector, len(corners))
	for i, p := range corners {
		verts[i] = cp.Vector{X: p[0], Y: p[1]}
	}
	// NewPolyShape runs a convex hull, which fixes the winding for Chipmunk.
	shape := cp.NewPolyShape(pw.space.StaticBody, len(verts), verts, cp.NewTransformIdentity(), 0)
	shape.SetCollisionType(typ)
	pw.space.AddShape(shape)
	return shape
}
