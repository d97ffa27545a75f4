package nav

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/milk9111/hexnav/hexgrid"
	"github.com/milk9111/hexnav/pathfind"
)

// Request is one navigation attempt.
type Request struct {
	ID          string
	Start       *hexgrid.Cell
	Destination *hexgrid.Cell
	Issued      time.Time

	ctx    context.Context
	cancel context.CancelFunc
	result chan searchResult
}

type searchResult struct {
	path pathfind.Path
	err  error
}

func newRequest(parent context.Context, start, dest *hexgrid.Cell) *Request {
	ctx, cancel := context.WithCancel(parent)
	return &Request{
		ID:          uuid.NewString(),
		Start:       start,
		Destination: dest,
		Issued:      time.Now(),
		ctx:         ctx,
		cancel:      cancel,
		result:      make(chan searchResult, 1),
	}
}

// Cancel signals the search and the mover to stop.
func (r *Request) Cancel() { r.cancel() }

// Cancelled reports whether Cancel has been called or the parent context is done.
func (r *Request) Cancelled() bool { return r.ctx.Err() != nil }
