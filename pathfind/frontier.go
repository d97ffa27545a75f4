package pathfind

import (
	"container/heap"

	"github.com/milk9111/hexnav/hexgrid"
)

type frontierItem struct {
	cell     *hexgrid.Cell
	priority int
	index    int
}

// frontier is a min-heap keyed by (priority, x, y) with an identity index for
// membership tests, removal and re-keying.
type frontier struct {
	items  []*frontierItem
	byCell map[*hexgrid.Cell]*frontierItem
}

func newFrontier() *frontier {
	return &frontier{byCell: make(map[*hexgrid.Cell]*frontierItem)}
}

func (f *frontier) Len() int { return len(f.items) }

func (f *frontier) Less(i, j int) bool {
	a, b := f.items[i], f.items[j]
	if a.priority != b.priority {
		return a.priority < b.priority
	}
	return a.cell.Coord().Less(b.cell.Coord())
}

func (f *frontier) Swap(i, j int) {
	f.items[i], f.items[j] = f.items[j], f.items[i]
	f.items[i].index = i
	f.items[j].index = j
}

func (f *frontier) Push(x any) {
	item := x.(*frontierItem)
	item.index = len(f.items)
	f.items = append(f.items, item)
}

func (f *frontier) Pop() any {
	old := f.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	f.items = old[:n-1]
	item.index = -1
	return item
}

func (f *frontier) contains(cell *hexgrid.Cell) bool {
	_, ok := f.byCell[cell]
	return ok
}

// upsert inserts cell or re-keys its existing entry.
func (f *frontier) upsert(cell *hexgrid.Cell, priority int) {
	if item, ok := f.byCell[cell]; ok {
		item.priority = priority
		heap.Fix(f, item.index)
		return
	}
	item := &frontierItem{cell: cell, priority: priority}
	f.byCell[cell] = item
	heap.Push(f, item)
}

func (f *frontier) remove(cell *hexgrid.Cell) bool {
	item, ok := f.byCell[cell]
	if !ok {
		return false
	}
	heap.Remove(f, item.index)
	delete(f.byCell, cell)
	return true
}

func (f *frontier) popMin() (*hexgrid.Cell, int) {
	item := heap.Pop(f).(*frontierItem)
	delete(f.byCell, item.cell)
	return item.cell, item.priority
}

func (f *frontier) peek() (*hexgrid.Cell, bool) {
	if len(f.items) == 0 {
		return nil, false
	}
	return f.items[0].cell, true
}
