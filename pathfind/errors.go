package pathfind

import "errors"

var (
	// ErrCancelled is returned when the search context is done. The context
	// error is wrapped alongside it.
	ErrCancelled = errors.New("pathfind: search cancelled")
	// ErrDisconnected is returned when the destination is unreachable.
	ErrDisconnected = errors.New("pathfind: destination unreachable")
	// ErrNilCell is returned for a nil start or destination.
	ErrNilCell = errors.New("pathfind: nil cell")
	// ErrNoPath is returned by Search.Path before the destination is reached.
	ErrNoPath = errors.New("pathfind: destination not reached")
	// ErrSearchDone is returned by Step after the search has finished.
	ErrSearchDone = errors.New("pathfind: search already finished")
)
