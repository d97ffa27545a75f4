package nav

import (
	"context"
	"errors"
	"fmt"

	"github.com/milk9111/hexnav/hexgrid"
	"github.com/milk9111/hexnav/logging"
	"github.com/milk9111/hexnav/pathfind"
)

// Status is the coordinator phase.
type Status int

const (
	StatusIdle Status = iota
	StatusSearching
	StatusMoving
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSearching:
		return "searching"
	case StatusMoving:
		return "moving"
	default:
		return "unknown"
	}
}

// Config configures a Coordinator.
type Config struct {
	Mover MoverConfig
	// ShowPath pins a highlight on every cell of a found path until the
	// agent passes it.
	ShowPath bool
}

// Coordinator serialises navigation requests for one agent.
type Coordinator struct {
	finder pathfind.Finder
	probe  CellProbe
	cfg    Config
	logger *logging.Logger

	ctx    context.Context
	cancel context.CancelFunc

	pose          Pose
	status        Status
	active        *Request
	mover         *Mover
	queued        *hexgrid.Cell
	cancelPending bool
	closed        bool
	events        []Event
}

// NewCoordinator returns an idle coordinator for an agent at pose.
func NewCoordinator(finder pathfind.Finder, probe CellProbe, cfg Config, pose Pose, logger *logging.Logger) *Coordinator {
	if finder == nil {
		finder = pathfind.New(logger)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		finder: finder,
		probe:  probe,
		cfg:    cfg,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		pose:   pose,
	}
}

// Pose returns the agent pose.
func (c *Coordinator) Pose() Pose { return c.pose }

// SetPose moves the agent. It is meant for placement while idle; a running
// mover continues from the new pose.
func (c *Coordinator) SetPose(p Pose) { c.pose = p }

// Status returns the current phase.
func (c *Coordinator) Status() Status { return c.status }

// Active returns the request in progress, or nil.
func (c *Coordinator) Active() *Request { return c.active }

// Queued returns the destination waiting for the active request to wind down.
func (c *Coordinator) Queued() *hexgrid.Cell { return c.queued }

// CancelPending reports whether the active request has been asked to stop.
func (c *Coordinator) CancelPending() bool { return c.cancelPending }

// Mover returns the active mover, or nil.
func (c *Coordinator) Mover() *Mover { return c.mover }

// Busy reports whether a request is active or queued.
func (c *Coordinator) Busy() bool { return c.active != nil || c.queued != nil }

// RequestGoTo asks the agent to travel to dest. An active request is
// cancelled and dest is queued behind it. While that cancellation is still
// pending further requests are ignored.
func (c *Coordinator) RequestGoTo(dest *hexgrid.Cell) error {
	if c.closed {
		return ErrClosed
	}
	if dest == nil {
		return ErrInvalidRequest
	}

	if c.active != nil {
		if c.cancelPending {
			c.logger.WithRequest(c.active.ID).Debug("request ignored, cancellation pending", "dest", dest.String())
			return nil
		}
		c.active.Cancel()
		c.cancelPending = true
		c.queued = dest
		c.logger.WithRequest(c.active.ID).Debug("request superseded", "next", dest.String())
		return nil
	}

	return c.start(dest)
}

// Stop cancels the active request and drops any queued destination. A moving
// agent halts at the next cell centre.
func (c *Coordinator) Stop() {
	c.queued = nil
	if c.active != nil && !c.cancelPending {
		c.active.Cancel()
		c.cancelPending = true
	}
}

// Close cancels everything and clears path highlights. The coordinator
// rejects requests afterwards.
func (c *Coordinator) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.queued = nil
	c.cancel()
	if c.mover != nil {
		c.mover.Abort()
	}
	c.active = nil
	c.mover = nil
	c.cancelPending = false
	c.status = StatusIdle
}

// Tick advances the agent by dt seconds. It never blocks on the search. The
// returned events are those raised since the previous Tick; a non-nil error
// reports a failed search.
func (c *Coordinator) Tick(dt float64) ([]Event, error) {
	var err error
	switch c.status {
	case StatusSearching:
		select {
		case res := <-c.active.result:
			err = c.searchDone(res)
		default:
		}
	case StatusMoving:
		if c.mover.Tick(&c.pose, dt) == StateDone {
			kind := EventArrived
			if c.mover.Stopped() {
				kind = EventStopped
			}
			c.emit(kind, c.active, c.mover.Path(), nil)
			c.finish()
		}
	}

	events := c.events
	c.events = nil
	return events, err
}

func (c *Coordinator) start(dest *hexgrid.Cell) error {
	cur, ok := c.probe.CellAt(c.pose.X, c.pose.Y)
	if !ok || cur == nil {
		return fmt.Errorf("%w at (%.2f, %.2f)", ErrNoCurrentCell, c.pose.X, c.pose.Y)
	}

	req := newRequest(c.ctx, cur, dest)
	c.active = req
	c.status = StatusSearching
	c.emit(EventStarted, req, nil, nil)
	c.logger.WithRequest(req.ID).Debug("search started", "from", cur.String(), "to", dest.String())

	go func() {
		path, err := c.finder.FindPath(req.ctx, req.Start, req.Destination)
		req.result <- searchResult{path: path, err: err}
	}()
	return nil
}

func (c *Coordinator) searchDone(res searchResult) error {
	req := c.active
	logger := c.logger.WithRequest(req.ID)

	switch {
	case res.err != nil && errors.Is(res.err, pathfind.ErrCancelled):
		c.emit(EventDiscarded, req, nil, nil)
		logger.Debug("search discarded")
	case res.err != nil:
		c.emit(EventFailed, req, nil, res.err)
		logger.Warn("search failed", "error", res.err.Error())
		c.finish()
		return fmt.Errorf("nav: request %s: %w", req.ID, res.err)
	case req.Cancelled():
		// Finished just before the cancellation landed.
		c.emit(EventDiscarded, req, res.path, nil)
		logger.Debug("search result discarded", "cells", len(res.path))
	default:
		if c.cfg.ShowPath {
			for _, cell := range res.path {
				cell.SetKeepHighlighted(true)
				cell.Highlight(true)
			}
		}
		c.mover = NewMover(res.path, c.cfg.Mover, c.pose, req.Cancelled)
		c.status = StatusMoving
		c.emit(EventPathFound, req, res.path, nil)
		logger.Debug("moving", "cells", len(res.path))
		return nil
	}

	c.finish()
	return nil
}

// finish retires the active request and starts the queued one, if any.
func (c *Coordinator) finish() {
	if c.active != nil {
		c.active.Cancel()
	}
	c.active = nil
	c.mover = nil
	c.cancelPending = false
	c.status = StatusIdle

	next := c.queued
	c.queued = nil
	if next == nil || c.closed {
		return
	}
	if err := c.start(next); err != nil {
		c.events = append(c.events, Event{Kind: EventRejected, Destination: next.Coord(), Err: err})
		c.logger.Warn("queued request rejected", "to", next.String(), "error", err.Error())
	}
}

func (c *Coordinator) emit(kind EventKind, req *Request, path pathfind.Path, err error) {
	e := Event{Kind: kind, Path: path, Err: err}
	if req != nil {
		e.Request = req.ID
		if req.Destination != nil {
			e.Destination = req.Destination.Coord()
		}
	}
	c.events = append(c.events, e)
}
