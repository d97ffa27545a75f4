package ecs

import (
	"github.com/milk9111/hexnav/hexgrid"
	"github.com/milk9111/hexnav/nav"
)

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventCellClicked = "cell_clicked"
	EventNavigation  = "navigation"
	EventNavError    = "navigation_error"
)

// CellClickedEvent is pushed when the pointer clicks a cell.
type CellClickedEvent struct {
	Cell *hexgrid.Cell
}

// NavigationEvent wraps a coordinator event with its agent.
type NavigationEvent struct {
	Entity Entity
	Agent  string
	Event  nav.Event
}

// NavigationErrorEvent reports a failed request.
type NavigationErrorEvent struct {
	Entity Entity
	Agent  string
	Err    error
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Peek returns queued events of the given type without removing them.
func (q *EventQueue) Peek(typ string) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, e := range q.items {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

// Take removes and returns queued events of the given type, keeping the rest
// in order.
func (q *EventQueue) Take(typ string) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	kept := q.items[:0]
	for _, e := range q.items {
		if e.Type == typ {
			out = append(out, e)
			continue
		}
		kept = append(kept, e)
	}
	q.items = kept
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
