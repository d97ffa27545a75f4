package pathfind

import (
	"testing"

	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/hexnav/hexgrid"
)

// bfsDistances returns unweighted hop counts from start to every reachable
// cell, computed by lvlath's BFS over a mirror of the grid.
func bfsDistances(t *testing.T, g *hexgrid.Grid, start *hexgrid.Cell) map[hexgrid.Coord]int {
	t.Helper()

	cg := core.NewGraph()
	for _, cell := range g.Cells() {
		require.NoError(t, cg.AddVertex(cell.String()))
		for _, n := range cell.Neighbors() {
			if !cell.Coord().Less(n.Coord()) {
				continue
			}
			_, err := cg.AddEdge(cell.String(), n.String(), 0)
			require.NoError(t, err)
		}
	}

	res, err := bfs.BFS(cg, start.String())
	require.NoError(t, err)

	byID := make(map[string]hexgrid.Coord, g.Len())
	for _, cell := range g.Cells() {
		byID[cell.String()] = cell.Coord()
	}
	out := make(map[hexgrid.Coord]int, len(res.Depth))
	for id, d := range res.Depth {
		out[byID[id]] = d
	}
	return out
}

const islandsMap = `0000000
0011000
0001100
0000010
0111000
0000000
11#####
000##00
`

func mustGrid(t *testing.T, text string) *hexgrid.Grid {
	t.Helper()
	g, err := hexgrid.ParseMapString(text)
	require.NoError(t, err)
	require.NoError(t, g.Validate())
	return g
}

func mustCell(t *testing.T, g *hexgrid.Grid, col, row int) *hexgrid.Cell {
	t.Helper()
	c, ok := g.Cell(hexgrid.OffsetToAxial(col, row))
	require.True(t, ok, "no cell at offset (%d,%d)", col, row)
	return c
}
