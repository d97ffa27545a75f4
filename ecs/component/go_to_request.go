package component

import "github.com/milk9111/hexnav/hexgrid"

// GoToRequest is a one-shot request on an agent entity, consumed by the
// navigation system.
type GoToRequest struct {
	Cell *hexgrid.Cell
}

var GoToRequestComponent = NewComponent[GoToRequest]()
