// Package hexgrid holds the static navigation graph: hex cells keyed by axial
// coordinates, their six-way adjacency, and the world layout used to place
// cells in the plane.
//
// Maps are written as text with one row per line. Odd rows are shifted half a
// tile to the right, and each (col, row) is converted to an axial coordinate
// so that adjacency is pure coordinate arithmetic:
//
//	x = col - (row - row&1) / 2
//	y = row
//
// A Grid is immutable after construction. Cells carry no search state, so any
// number of searches may read the same Grid concurrently. The highlight flags
// on a Cell are visual only and are expected to be touched from the single
// goroutine that drives the simulation.
package hexgrid
