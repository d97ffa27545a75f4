package pathfind

import (
	"context"
	"fmt"

	"github.com/milk9111/hexnav/hexgrid"
)

// Search is the state of one A* run. It is not safe for concurrent use and
// must not be shared between runs.
type Search struct {
	start *hexgrid.Cell
	dest  *hexgrid.Cell

	open      *frontier
	costSoFar map[*hexgrid.Cell]int
	cameFrom  map[*hexgrid.Cell]*hexgrid.Cell
	priority  map[*hexgrid.Cell]int

	expanded int
	done     bool
	found    bool
}

// NewSearch prepares a search from start to dest.
func NewSearch(start, dest *hexgrid.Cell) (*Search, error) {
	if start == nil || dest == nil {
		return nil, ErrNilCell
	}
	s := &Search{
		start:     start,
		dest:      dest,
		open:      newFrontier(),
		costSoFar: map[*hexgrid.Cell]int{start: 0},
		cameFrom:  make(map[*hexgrid.Cell]*hexgrid.Cell),
		priority:  make(map[*hexgrid.Cell]int),
	}
	p := Heuristic(start.Coord(), dest.Coord())
	s.priority[start] = p
	s.open.upsert(start, p)
	return s, nil
}

// Step pops the best frontier cell and relaxes its neighbors. It reports done
// once the destination has been popped. An empty frontier yields
// ErrDisconnected.
func (s *Search) Step() (done bool, err error) {
	if s.done {
		if s.found {
			return true, nil
		}
		return true, ErrSearchDone
	}
	if s.open.Len() == 0 {
		s.done = true
		return true, fmt.Errorf("%w: %s -> %s after %d expansions", ErrDisconnected, s.start, s.dest, s.expanded)
	}

	current, _ := s.open.popMin()
	if current == s.dest {
		s.done = true
		s.found = true
		return true, nil
	}
	s.expanded++

	cost := s.costSoFar[current] + 1
	for _, n := range current.Neighbors() {
		known, seen := s.costSoFar[n]
		if seen && cost >= known {
			continue
		}
		s.open.remove(n)
		s.costSoFar[n] = cost
		s.cameFrom[n] = current
		p := cost + Heuristic(n.Coord(), s.dest.Coord())
		s.priority[n] = p
		s.open.upsert(n, p)
	}
	return false, nil
}

// Run steps until the destination is popped, the frontier empties or ctx is
// done. ctx is polled before every pop.
func (s *Search) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			s.done = true
			return fmt.Errorf("%w: %w", ErrCancelled, err)
		}
		done, err := s.Step()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Path reconstructs the found path from start to destination inclusive.
func (s *Search) Path() (Path, error) {
	if !s.found {
		return nil, fmt.Errorf("%w: %s -> %s", ErrNoPath, s.start, s.dest)
	}
	path := Path{s.dest}
	for cur := s.dest; cur != s.start; {
		prev, ok := s.cameFrom[cur]
		if !ok {
			return nil, fmt.Errorf("%w: broken predecessor chain at %s", ErrDisconnected, cur)
		}
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// Cost returns the best known cost from start to cell.
func (s *Search) Cost(cell *hexgrid.Cell) (int, bool) {
	c, ok := s.costSoFar[cell]
	return c, ok
}

// Priority returns the last priority assigned to cell.
func (s *Search) Priority(cell *hexgrid.Cell) (int, bool) {
	p, ok := s.priority[cell]
	return p, ok
}

// InFrontier reports whether cell is discovered but not yet expanded.
func (s *Search) InFrontier(cell *hexgrid.Cell) bool {
	return s.open.contains(cell)
}

// Next returns the cell the next Step will pop.
func (s *Search) Next() (*hexgrid.Cell, bool) {
	return s.open.peek()
}

// Expanded returns the number of cells expanded so far.
func (s *Search) Expanded() int { return s.expanded }

// FrontierLen returns the frontier size.
func (s *Search) FrontierLen() int { return s.open.Len() }

// Found reports whether the destination has been popped.
func (s *Search) Found() bool { return s.found }
