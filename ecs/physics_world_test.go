package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/hexnav/hexgrid"
)

func TestPhysicsWorldCellAt(t *testing.T) {
	g, err := hexgrid.ParseMapString("00#\n0000\n")
	require.NoError(t, err)
	layout := hexgrid.DefaultLayout()

	pw, err := NewPhysicsWorld(g, layout)
	require.NoError(t, err)
	assert.Equal(t, g.Len()+len(g.Land()), pw.ShapeCount())

	for _, cell := range g.Cells() {
		x, y := layout.Center(cell.Coord())
		got, ok := pw.CellAt(x, y)
		require.True(t, ok, "centre of %s", cell)
		assert.Same(t, cell, got)

		// Points well inside the hexagon resolve to the same cell.
		for _, corner := range layout.Corners(cell.Coord()) {
			px, py := x+(corner[0]-x)*0.8, y+(corner[1]-y)*0.8
			got, ok := pw.CellAt(px, py)
			require.True(t, ok)
			assert.Same(t, cell, got, "near corner of %s", cell)
		}
	}

	land := hexgrid.OffsetToAxial(2, 0)
	lx, ly := layout.Center(land)
	_, ok := pw.CellAt(lx, ly)
	assert.False(t, ok, "land is not navigable")
	assert.True(t, pw.IsLand(lx, ly))

	_, ok = pw.CellAt(-10, -10)
	assert.False(t, ok)
	assert.False(t, pw.IsLand(-10, -10))
}

func TestPhysicsWorldAgreesWithLayout(t *testing.T) {
	g, err := hexgrid.ParseMapString("00000\n00000\n00000\n")
	require.NoError(t, err)

	layouts := map[string]hexgrid.Layout{
		"regular": hexgrid.DefaultLayout(),
		"wide":    {TileWidth: 4, RowHeight: 1},
		"tall":    {TileWidth: 1, RowHeight: 2.5},
	}
	for name, layout := range layouts {
		t.Run(name, func(t *testing.T) {
			pw, err := NewPhysicsWorld(g, layout)
			require.NoError(t, err)

			hits := 0
			for i := 0; i < 24; i++ {
				x := layout.TileWidth * (0.1 + 0.23*float64(i))
				for j := 0; j < 10; j++ {
					y := layout.RowHeight * (0.1 + 0.19*float64(j))
					want, wantOK := g.CellAtPoint(layout, x, y)
					got, ok := pw.CellAt(x, y)
					if ok {
						hits++
						require.True(t, wantOK, "(%.2f, %.2f)", x, y)
						assert.Same(t, want, got, "(%.2f, %.2f)", x, y)
					}
				}
			}
			assert.Greater(t, hits, 100)
		})
	}
}

func TestNewPhysicsWorldErrors(t *testing.T) {
	_, err := NewPhysicsWorld(nil, hexgrid.DefaultLayout())
	assert.ErrorIs(t, err, hexgrid.ErrEmptyMap)

	g, err := hexgrid.ParseMapString("0\n")
	require.NoError(t, err)
	_, err = NewPhysicsWorld(g, hexgrid.Layout{})
	assert.ErrorIs(t, err, hexgrid.ErrBadLayout)
}
