package nav

import "errors"

var (
	// ErrInvalidRequest is returned for a request without a destination.
	ErrInvalidRequest = errors.New("nav: invalid request")
	// ErrNoCurrentCell is returned when the probe finds no cell under the agent.
	ErrNoCurrentCell = errors.New("nav: agent is not over a cell")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("nav: coordinator closed")
)
