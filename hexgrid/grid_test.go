package hexgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectionsEnumerateSixOffsets(t *testing.T) {
	want := []Coord{
		{X: 0, Y: -1},
		{X: 1, Y: -1},
		{X: -1, Y: 0},
		{X: 1, Y: 0},
		{X: -1, Y: 1},
		{X: 0, Y: 1},
	}
	require.Len(t, Directions, 6)
	assert.ElementsMatch(t, want, Directions[:])

	// every offset has its inverse in the set, which is what makes links symmetric
	for _, d := range Directions {
		assert.Contains(t, Directions[:], Coord{X: -d.X, Y: -d.Y}, "inverse of %s", d)
	}
}

func TestCenterCellHasAllSixNeighbors(t *testing.T) {
	coords := []Coord{{X: 0, Y: 0}}
	for _, d := range Directions {
		coords = append(coords, d)
	}
	g, err := New(coords)
	require.NoError(t, err)

	center, ok := g.Cell(Coord{})
	require.True(t, ok)
	require.Len(t, center.Neighbors(), 6)

	for i, d := range Directions {
		assert.Equal(t, d, center.Neighbors()[i].Coord(), "neighbor %d", i)
	}
	require.NoError(t, g.Validate())
}

func TestNewRejectsDuplicatesAndEmpty(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEmptyMap)

	_, err = New([]Coord{{X: 1, Y: 1}, {X: 1, Y: 1}})
	assert.ErrorIs(t, err, ErrDuplicateCell)
}

func TestParseMapOffsetRows(t *testing.T) {
	g, err := ParseMapString("000\n000\n000\n")
	require.NoError(t, err)
	assert.Equal(t, 9, g.Len())
	require.NoError(t, g.Validate())

	cols, rows := g.Size()
	assert.Equal(t, 3, cols)
	assert.Equal(t, 3, rows)

	cases := []struct {
		name     string
		col, row int
		degree   int
	}{
		{"top_left_corner", 0, 0, 2},
		{"top_right_corner", 2, 0, 3},
		{"middle", 1, 1, 6},
		{"odd_row_right_edge", 2, 1, 3},
		{"bottom_left_corner", 0, 2, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cell, ok := g.Cell(OffsetToAxial(tc.col, tc.row))
			require.True(t, ok)
			assert.Len(t, cell.Neighbors(), tc.degree)
		})
	}
}

func TestParseMapLandAndVoid(t *testing.T) {
	g, err := ParseMapString("0#0\r\n 10\n")
	require.NoError(t, err)

	assert.Equal(t, 3, g.Len())
	assert.Len(t, g.Land(), 2)

	_, ok := g.Cell(OffsetToAxial(1, 0))
	assert.False(t, ok, "land is not navigable")
	_, ok = g.Cell(OffsetToAxial(0, 1))
	assert.False(t, ok, "blank leaves no tile")

	_, err = ParseMapString("###\n")
	assert.ErrorIs(t, err, ErrEmptyMap)
}

func TestOffsetRoundTrip(t *testing.T) {
	for row := 0; row < 6; row++ {
		for col := 0; col < 6; col++ {
			c := OffsetToAxial(col, row)
			gotCol, gotRow := c.Offset()
			assert.Equal(t, col, gotCol)
			assert.Equal(t, row, gotRow)
		}
	}
}

func TestParseCoord(t *testing.T) {
	c, err := ParseCoord(" (3, -2) ")
	require.NoError(t, err)
	assert.Equal(t, Coord{X: 3, Y: -2}, c)

	for _, bad := range []string{"", "1", "a,b", "1,2,3"} {
		_, err := ParseCoord(bad)
		assert.ErrorIs(t, err, ErrBadCoord, bad)
	}
}

func TestLayoutLocateRoundTrip(t *testing.T) {
	g, err := ParseMapString("0000\n0000\n0000\n0000\n")
	require.NoError(t, err)
	l := DefaultLayout()
	require.NoError(t, l.Validate())

	for _, cell := range g.Cells() {
		x, y := l.Center(cell.Coord())
		found, ok := g.CellAtPoint(l, x+0.2, y-0.2)
		require.True(t, ok)
		assert.Same(t, cell, found)
	}

	// neighbor centres are one tile width apart
	a, _ := g.Cell(OffsetToAxial(1, 1))
	for _, n := range a.Neighbors() {
		ax, ay := l.Center(a.Coord())
		nx, ny := l.Center(n.Coord())
		assert.InDelta(t, l.TileWidth*l.TileWidth, (ax-nx)*(ax-nx)+(ay-ny)*(ay-ny), 1e-9)
	}

	assert.ErrorIs(t, Layout{}.Validate(), ErrBadLayout)
}

func TestLayoutLocateStretched(t *testing.T) {
	g, err := ParseMapString("00000\n00000\n00000\n00000\n")
	require.NoError(t, err)

	for _, l := range []Layout{{TileWidth: 4, RowHeight: 1}, {TileWidth: 1, RowHeight: 3}} {
		for _, cell := range g.Cells() {
			cx, cy := l.Center(cell.Coord())
			corners := l.Corners(cell.Coord())
			for i, corner := range corners {
				next := corners[(i+1)%len(corners)]
				// just inside each vertex and each edge midpoint
				for _, p := range [][2]float64{
					corner,
					{(corner[0] + next[0]) / 2, (corner[1] + next[1]) / 2},
				} {
					x, y := cx+(p[0]-cx)*0.95, cy+(p[1]-cy)*0.95
					got, ok := l.Locate(x, y)
					require.True(t, ok)
					assert.Equal(t, cell.Coord(), got, "%+v near (%.2f, %.2f)", l, x, y)
				}
			}
		}
	}
}

func TestHighlightPinning(t *testing.T) {
	g, err := ParseMapString("00\n")
	require.NoError(t, err)
	cell := g.Cells()[0]

	cell.Hover()
	assert.True(t, cell.Highlighted())
	cell.Unhover()
	assert.False(t, cell.Highlighted())

	cell.SetKeepHighlighted(true)
	cell.Highlight(true)
	cell.Unhover()
	assert.True(t, cell.Highlighted(), "pinned highlight survives hover exit")

	g.ClearHighlights()
	assert.False(t, cell.Highlighted())
	assert.False(t, cell.KeepHighlighted())
}

func TestRenderMarksCells(t *testing.T) {
	g, err := ParseMapString("0#\n00\n")
	require.NoError(t, err)
	out := g.Render(map[Coord]rune{OffsetToAxial(0, 0): '*'})
	assert.Equal(t, "* #\n . .\n", out)
}
