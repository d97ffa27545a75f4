package nav

import (
	"math"

	"github.com/milk9111/hexnav/hexgrid"
	"github.com/milk9111/hexnav/pathfind"
)

const (
	// RotationTolerance is the angular error in degrees below which the agent
	// counts as facing its target.
	RotationTolerance = 0.1
	// ArrivalTolerance is the squared distance below which a segment is complete.
	ArrivalTolerance = 1e-3
)

// MoverState is a Mover phase.
type MoverState int

const (
	StateRotating MoverState = iota
	StateTranslating
	StateDone
)

func (s MoverState) String() string {
	switch s {
	case StateRotating:
		return "rotating"
	case StateTranslating:
		return "translating"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// MoverConfig holds motion parameters. A non-positive speed completes the
// corresponding phase in one tick.
type MoverConfig struct {
	Speed         float64 // world units per second
	RotationSpeed float64 // degrees per second
	Layout        hexgrid.Layout
}

// Mover walks a path one segment at a time. Cancellation is only observed
// when a segment completes, so the agent always stops on a cell centre.
type Mover struct {
	cfg       MoverConfig
	path      pathfind.Path
	index     int
	state     MoverState
	cancelled func() bool
	stopped   bool
}

// NewMover prepares a walk along path starting at pose. cancelled may be nil.
func NewMover(path pathfind.Path, cfg MoverConfig, pose Pose, cancelled func() bool) *Mover {
	m := &Mover{cfg: cfg, path: path, cancelled: cancelled}
	if len(path) == 0 {
		m.state = StateDone
		return m
	}
	m.state = StateRotating
	if pose.Distance2(m.target()) < ArrivalTolerance {
		m.state = StateTranslating
	}
	return m
}

// State returns the current phase.
func (m *Mover) State() MoverState { return m.state }

// Index returns the position in the path of the current target cell.
func (m *Mover) Index() int { return m.index }

// Done reports whether the walk has ended.
func (m *Mover) Done() bool { return m.state == StateDone }

// Stopped reports whether the walk ended before the last cell.
func (m *Mover) Stopped() bool { return m.stopped }

// Target returns the cell being approached, or nil once done.
func (m *Mover) Target() *hexgrid.Cell {
	if m.state == StateDone || m.index >= len(m.path) {
		return nil
	}
	return m.path[m.index]
}

// Path returns the path being walked.
func (m *Mover) Path() pathfind.Path { return m.path }

// Tick advances the walk by dt seconds and returns the resulting state.
func (m *Mover) Tick(pose *Pose, dt float64) MoverState {
	switch m.state {
	case StateRotating:
		m.rotate(pose, dt)
	case StateTranslating:
		m.translate(pose, dt)
	}
	return m.state
}

// Abort ends the walk immediately and clears highlights on the cells not yet
// reached.
func (m *Mover) Abort() {
	if m.state == StateDone {
		return
	}
	m.stopped = true
	m.finish()
}

func (m *Mover) rotate(pose *Pose, dt float64) {
	tx, ty := m.target()
	// Nothing to face when already standing on the target.
	if pose.Distance2(tx, ty) < ArrivalTolerance {
		m.state = StateTranslating
		m.translate(pose, dt)
		return
	}
	want := pose.Bearing(tx, ty)
	if math.Abs(AngleDelta(pose.Heading, want)) <= RotationTolerance {
		m.state = StateTranslating
		m.translate(pose, dt)
		return
	}
	pose.Heading = RotateTowards(pose.Heading, want, m.cfg.RotationSpeed*dt)
	if math.Abs(AngleDelta(pose.Heading, want)) <= RotationTolerance {
		m.state = StateTranslating
	}
}

func (m *Mover) translate(pose *Pose, dt float64) {
	tx, ty := m.target()
	pose.X, pose.Y = MoveTowards(pose.X, pose.Y, tx, ty, m.cfg.Speed*dt)
	if pose.Distance2(tx, ty) < ArrivalTolerance {
		m.completeSegment()
	}
}

func (m *Mover) completeSegment() {
	unmark(m.path[m.index])
	m.index++
	switch {
	case m.index >= len(m.path):
		m.state = StateDone
	case m.cancelled != nil && m.cancelled():
		m.stopped = true
		m.finish()
	default:
		m.state = StateRotating
	}
}

func (m *Mover) finish() {
	for i := m.index; i < len(m.path); i++ {
		unmark(m.path[i])
	}
	m.state = StateDone
}

func (m *Mover) target() (float64, float64) {
	return m.cfg.Layout.Center(m.path[m.index].Coord())
}

func unmark(c *hexgrid.Cell) {
	c.SetKeepHighlighted(false)
	c.Highlight(false)
}
