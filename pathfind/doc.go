// Package pathfind computes shortest paths over a hexgrid.Grid.
//
// The search is A* with unit edge costs and an exact axial hex-distance
// heuristic. The frontier is an indexed binary heap ordered by
// (priority, x, y), so ties always break the same way and a node whose cost
// improves is re-keyed in place.
//
// All bookkeeping (costs, predecessors, priorities) lives in a Search value
// owned by one call. Cells are never written to, so concurrent searches over
// the same grid are safe.
//
// Errors:
//
//   - ErrCancelled: the context was done before the destination was popped.
//   - ErrDisconnected: the frontier emptied without reaching the destination.
//   - ErrNilCell: start or destination is nil.
package pathfind
