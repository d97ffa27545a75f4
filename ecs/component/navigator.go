package component

import "github.com/milk9111/hexnav/nav"

// Navigator binds an agent to its navigation coordinator.
type Navigator struct {
	Coordinator *nav.Coordinator
	// LastEvent is the most recent lifecycle event, for display.
	LastEvent *nav.Event
	// Arrivals counts completed requests.
	Arrivals int
}

var NavigatorComponent = NewComponent[Navigator]()
