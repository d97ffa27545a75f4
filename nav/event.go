package nav

import (
	"fmt"

	"github.com/milk9111/hexnav/hexgrid"
	"github.com/milk9111/hexnav/pathfind"
)

// EventKind classifies coordinator events.
type EventKind int

const (
	// EventStarted: a search began.
	EventStarted EventKind = iota
	// EventPathFound: the search succeeded and movement began.
	EventPathFound
	// EventArrived: the agent reached the destination.
	EventArrived
	// EventStopped: movement ended early on a cell centre after cancellation.
	EventStopped
	// EventDiscarded: the search was cancelled before movement began.
	EventDiscarded
	// EventFailed: the search failed, for example on a disconnected graph.
	EventFailed
	// EventRejected: a queued request could not start.
	EventRejected
)

var eventNames = [...]string{
	EventStarted:   "started",
	EventPathFound: "path_found",
	EventArrived:   "arrived",
	EventStopped:   "stopped",
	EventDiscarded: "discarded",
	EventFailed:    "failed",
	EventRejected:  "rejected",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventNames[k]
}

// Event reports a change in a request's lifecycle.
type Event struct {
	Kind        EventKind
	Request     string
	Destination hexgrid.Coord
	Path        pathfind.Path
	Err         error
}

func (e Event) String() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s %s: %v", e.Kind, e.Request, e.Destination, e.Err)
	}
	return fmt.Sprintf("%s %s %s", e.Kind, e.Request, e.Destination)
}
