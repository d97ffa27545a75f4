package pathfind

import (
	"context"
	"errors"
	"time"

	"github.com/milk9111/hexnav/hexgrid"
	"github.com/milk9111/hexnav/logging"
)

// Result carries a path along with search statistics.
type Result struct {
	Path     Path
	Cost     int
	Expanded int
	Elapsed  time.Duration
}

// Finder is implemented by anything that can compute paths. The navigation
// coordinator depends on this rather than on Pathfinder directly.
type Finder interface {
	FindPath(ctx context.Context, start, dest *hexgrid.Cell) (Path, error)
}

// Pathfinder is a stateless search service. The zero value is usable.
type Pathfinder struct {
	logger *logging.Logger
}

// New returns a Pathfinder logging through logger (nil discards).
func New(logger *logging.Logger) *Pathfinder {
	return &Pathfinder{logger: logger}
}

// FindPath runs A* from start to dest.
func (p *Pathfinder) FindPath(ctx context.Context, start, dest *hexgrid.Cell) (Path, error) {
	res, err := p.Find(ctx, start, dest)
	if err != nil {
		return nil, err
	}
	return res.Path, nil
}

// Find runs A* and returns the path together with statistics.
func (p *Pathfinder) Find(ctx context.Context, start, dest *hexgrid.Cell) (Result, error) {
	began := time.Now()

	s, err := NewSearch(start, dest)
	if err != nil {
		return Result{}, err
	}

	var logger *logging.Logger
	if p != nil {
		logger = p.logger.With("from", start.String(), "to", dest.String())
	}

	if err := s.Run(ctx); err != nil {
		elapsed := time.Since(began)
		switch {
		case errors.Is(err, ErrCancelled):
			logger.Debug("search cancelled", "expanded", s.Expanded(), "elapsed_ms", elapsed.Milliseconds())
		default:
			logger.Warn("search failed", "error", err.Error(), "expanded", s.Expanded(), "elapsed_ms", elapsed.Milliseconds())
		}
		return Result{Expanded: s.Expanded(), Elapsed: elapsed}, err
	}

	path, err := s.Path()
	if err != nil {
		return Result{}, err
	}
	res := Result{
		Path:     path,
		Cost:     path.Edges(),
		Expanded: s.Expanded(),
		Elapsed:  time.Since(began),
	}
	logger.Debug("search finished", "cells", len(path), "expanded", res.Expanded, "elapsed_ms", res.Elapsed.Milliseconds())
	return res, nil
}

// FindPath runs a search without logging.
func FindPath(ctx context.Context, start, dest *hexgrid.Cell) (Path, error) {
	return (*Pathfinder)(nil).FindPath(ctx, start, dest)
}
