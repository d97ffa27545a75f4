package pathfind

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/milk9111/hexnav/hexgrid"
)

func TestHeuristic(t *testing.T) {
	cases := []struct {
		name string
		a, b hexgrid.Coord
		want int
	}{
		{"same", hexgrid.Coord{X: 2, Y: 3}, hexgrid.Coord{X: 2, Y: 3}, 0},
		{"same_sign_positive", hexgrid.Coord{X: 3, Y: 2}, hexgrid.Coord{X: 0, Y: 0}, 5},
		{"same_sign_negative", hexgrid.Coord{X: 0, Y: 0}, hexgrid.Coord{X: 1, Y: 2}, 3},
		{"x_zero", hexgrid.Coord{X: 4, Y: 0}, hexgrid.Coord{X: 4, Y: 7}, 7},
		{"y_zero", hexgrid.Coord{X: -3, Y: 1}, hexgrid.Coord{X: 2, Y: 1}, 5},
		{"opposite_sign", hexgrid.Coord{X: 3, Y: -1}, hexgrid.Coord{X: 0, Y: 0}, 3},
		{"opposite_sign_y_dominant", hexgrid.Coord{X: -1, Y: 4}, hexgrid.Coord{X: 0, Y: 0}, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Heuristic(tc.a, tc.b))
			assert.Equal(t, tc.want, Heuristic(tc.b, tc.a), "symmetric")
		})
	}

	for _, d := range hexgrid.Directions {
		assert.Equal(t, 1, Heuristic(hexgrid.Coord{}, d), "neighbor %s", d)
	}
}

func TestHeuristicAdmissible(t *testing.T) {
	g := mustGrid(t, islandsMap)
	for _, from := range g.Cells() {
		dist := bfsDistances(t, g, from)
		for _, to := range g.Cells() {
			d, ok := dist[to.Coord()]
			if !ok {
				continue
			}
			assert.LessOrEqual(t, Heuristic(from.Coord(), to.Coord()), d, "%s -> %s", from, to)
		}
		// consistency: h changes by at most one across an edge
		for _, n := range from.Neighbors() {
			for _, goal := range []hexgrid.Coord{{X: 0, Y: 0}, {X: 5, Y: 3}, {X: -2, Y: 6}} {
				diff := Heuristic(from.Coord(), goal) - Heuristic(n.Coord(), goal)
				assert.LessOrEqual(t, abs(diff), 1)
			}
		}
	}
}

func TestFindPathAllPairsMatchBFS(t *testing.T) {
	g := mustGrid(t, islandsMap)
	ctx := context.Background()

	for _, from := range g.Cells() {
		dist := bfsDistances(t, g, from)
		for _, to := range g.Cells() {
			path, err := FindPath(ctx, from, to)
			want, reachable := dist[to.Coord()]
			if !reachable {
				require.ErrorIs(t, err, ErrDisconnected, "%s -> %s", from, to)
				require.Nil(t, path)
				continue
			}
			require.NoError(t, err, "%s -> %s", from, to)
			assert.Same(t, from, path.Start())
			assert.Same(t, to, path.End())
			assert.True(t, path.Connected(), "%s", path)
			assert.Equal(t, want, path.Edges(), "%s -> %s: %s", from, to, path)
		}
	}
}

func TestFindPathSingleCell(t *testing.T) {
	g := mustGrid(t, "000\n000\n")
	c := mustCell(t, g, 1, 1)

	path, err := FindPath(context.Background(), c, c)
	require.NoError(t, err)
	require.Len(t, path, 1)
	assert.Same(t, c, path[0])
	assert.Equal(t, 0, path.Edges())
}

func TestFindPathCornerToCorner(t *testing.T) {
	g := mustGrid(t, "000\n000\n000\n")
	start := mustCell(t, g, 0, 0)
	dest := mustCell(t, g, 2, 2)

	path, err := FindPath(context.Background(), start, dest)
	require.NoError(t, err)

	want := []hexgrid.Coord{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}}
	assert.Equal(t, want, path.Coords())
	assert.Equal(t, 3, path.Edges())
	assert.Equal(t, bfsDistances(t, g, start)[dest.Coord()], path.Edges())

	// deterministic across runs
	for i := 0; i < 10; i++ {
		again, err := FindPath(context.Background(), start, dest)
		require.NoError(t, err)
		assert.Equal(t, want, again.Coords())
	}
}

func TestFindPathDisconnected(t *testing.T) {
	g := mustGrid(t, "00#00\n00#00\n")
	start := mustCell(t, g, 0, 0)
	dest := mustCell(t, g, 4, 1)

	p := New(nil)
	res, err := p.Find(context.Background(), start, dest)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDisconnected)
	assert.Nil(t, res.Path)
	assert.Equal(t, 4, res.Expanded, "the whole reachable side is exhausted")
}

func TestFindPathCancelled(t *testing.T) {
	g := mustGrid(t, islandsMap)
	start := mustCell(t, g, 0, 0)
	dest := mustCell(t, g, 6, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path, err := FindPath(ctx, start, dest)
	require.Error(t, err)
	assert.Nil(t, path)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, ErrDisconnected))

	// an independent search afterwards sees only its own bookkeeping
	s, err := NewSearch(start, dest)
	require.NoError(t, err)
	_, ok := s.Cost(dest)
	assert.False(t, ok)
	require.NoError(t, s.Run(context.Background()))
	fresh, err := s.Path()
	require.NoError(t, err)
	assert.Equal(t, bfsDistances(t, g, start)[dest.Coord()], fresh.Edges())
}

func TestSearchCancelledMidway(t *testing.T) {
	g := mustGrid(t, islandsMap)
	start := mustCell(t, g, 0, 0)
	dest := mustCell(t, g, 6, 5)

	s, err := NewSearch(start, dest)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		done, err := s.Step()
		require.NoError(t, err)
		require.False(t, done)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.Run(ctx)
	require.ErrorIs(t, err, ErrCancelled)

	_, err = s.Path()
	assert.ErrorIs(t, err, ErrNoPath, "no path after cancellation")
	_, err = s.Step()
	assert.ErrorIs(t, err, ErrSearchDone)
}

func TestSearchStopsWhenDestinationPopped(t *testing.T) {
	g := mustGrid(t, "0000\n")
	start := mustCell(t, g, 0, 0)
	dest := mustCell(t, g, 1, 0)

	s, err := NewSearch(start, dest)
	require.NoError(t, err)

	done, err := s.Step()
	require.NoError(t, err)
	assert.False(t, done, "relaxing the destination is not enough")
	assert.True(t, s.InFrontier(dest))

	next, ok := s.Next()
	require.True(t, ok)
	assert.Same(t, dest, next)

	done, err = s.Step()
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, s.Found())
	assert.Equal(t, 1, s.Expanded())

	p, ok := s.Priority(dest)
	require.True(t, ok)
	assert.Equal(t, 1, p)
}

func TestFindPathNilCells(t *testing.T) {
	g := mustGrid(t, "00\n")
	c := mustCell(t, g, 0, 0)

	_, err := FindPath(context.Background(), nil, c)
	assert.ErrorIs(t, err, ErrNilCell)
	_, err = FindPath(context.Background(), c, nil)
	assert.ErrorIs(t, err, ErrNilCell)
}

func TestConcurrentSearchesShareGrid(t *testing.T) {
	g := mustGrid(t, islandsMap)
	cells := g.Cells()
	dest := mustCell(t, g, 6, 5)

	want := make(map[hexgrid.Coord]int)
	for _, c := range cells {
		p, err := FindPath(context.Background(), c, dest)
		if err == nil {
			want[c.Coord()] = p.Edges()
		}
	}

	got := make([]int, len(cells))
	var eg errgroup.Group
	eg.SetLimit(8)
	for i, c := range cells {
		eg.Go(func() error {
			p, err := FindPath(context.Background(), c, dest)
			if errors.Is(err, ErrDisconnected) {
				got[i] = -1
				return nil
			}
			if err != nil {
				return err
			}
			got[i] = p.Edges()
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	for i, c := range cells {
		if w, ok := want[c.Coord()]; ok {
			assert.Equal(t, w, got[i], "%s", c)
		} else {
			assert.Equal(t, -1, got[i], "%s", c)
		}
	}
}
