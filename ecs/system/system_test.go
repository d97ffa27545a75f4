package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/hexnav/ecs"
	"github.com/milk9111/hexnav/ecs/component"
	"github.com/milk9111/hexnav/ecs/entity"
	"github.com/milk9111/hexnav/hexgrid"
	"github.com/milk9111/hexnav/logging"
	"github.com/milk9111/hexnav/nav"
)

const dt = 1.0 / 60

type fixture struct {
	w       *ecs.World
	sched   *ecs.Scheduler
	grid    *hexgrid.Grid
	layout  hexgrid.Layout
	agent   ecs.Entity
	pointer ecs.Entity
	events  []ecs.Event
}

func newFixture(t *testing.T, text string, start hexgrid.Coord, route *component.Route) *fixture {
	t.Helper()
	g, err := hexgrid.ParseMapString(text)
	require.NoError(t, err)

	f := &fixture{w: ecs.NewWorld(), grid: g, layout: hexgrid.DefaultLayout()}
	_, err = entity.NewHexMap(f.w, "test", g, f.layout)
	require.NoError(t, err)
	f.pointer, err = entity.NewPointer(f.w)
	require.NoError(t, err)
	f.agent, err = entity.NewAgent(f.w, entity.AgentOptions{
		Name:          "boat",
		Start:         start,
		Speed:         8,
		RotationSpeed: 720,
		ShowPath:      true,
		Selected:      true,
		Route:         route,
		Logger:        logging.NopLogger(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { entity.DestroyAgent(f.w, f.agent) })

	logger := logging.NopLogger()
	f.sched = ecs.NewScheduler(
		NewPointerSystem(),
		NewRouteSystem(logger),
		NewNavigationSystem(dt, logger),
		NewCameraSystem(dt),
	)
	return f
}

func (f *fixture) frame() {
	f.sched.Update(f.w)
	f.events = append(f.events, f.w.Events().Drain()...)
}

func (f *fixture) runUntil(t *testing.T, cond func() bool) {
	t.Helper()
	for i := 0; i < 20000; i++ {
		if cond() {
			return
		}
		f.frame()
		time.Sleep(50 * time.Microsecond)
	}
	t.Fatal("condition not reached")
}

func (f *fixture) navigator(t *testing.T) *component.Navigator {
	t.Helper()
	nv, ok := ecs.Get(f.w, f.agent, component.NavigatorComponent.Kind())
	require.True(t, ok)
	return nv
}

func (f *fixture) point(t *testing.T, c hexgrid.Coord, click bool) {
	t.Helper()
	p, ok := ecs.Get(f.w, f.pointer, component.PointerComponent.Kind())
	require.True(t, ok)
	p.X, p.Y = f.layout.Center(c)
	p.Inside = true
	p.Clicked = click
}

func (f *fixture) navKinds() []nav.EventKind {
	var out []nav.EventKind
	for _, e := range f.events {
		if ne, ok := e.Data.(ecs.NavigationEvent); ok {
			out = append(out, ne.Event.Kind)
		}
	}
	return out
}

func TestClickMovesSelectedAgent(t *testing.T) {
	f := newFixture(t, "0000\n0000\n0000\n", hexgrid.OffsetToAxial(0, 0), nil)
	dest := hexgrid.OffsetToAxial(3, 2)

	f.point(t, dest, true)
	f.frame()
	for _, e := range f.events {
		assert.NotEqual(t, ecs.EventCellClicked, e.Type, "click consumed by navigation")
	}
	nv := f.navigator(t)
	assert.True(t, nv.Coordinator.Busy())

	f.runUntil(t, func() bool { return nv.Arrivals == 1 })

	assert.Equal(t, []nav.EventKind{nav.EventStarted, nav.EventPathFound, nav.EventArrived}, f.navKinds())
	tr, ok := ecs.Get(f.w, f.agent, component.TransformComponent.Kind())
	require.True(t, ok)
	x, y := f.layout.Center(dest)
	assert.InDelta(t, x, tr.X, 1e-6)
	assert.InDelta(t, y, tr.Y, 1e-6)
	assert.False(t, ecs.Has(f.w, f.agent, component.GoToRequestComponent.Kind()))
}

func TestPointerQueuesClick(t *testing.T) {
	f := newFixture(t, "0000\n0000\n", hexgrid.OffsetToAxial(0, 0), nil)
	dest := hexgrid.OffsetToAxial(3, 1)

	f.point(t, dest, true)
	NewPointerSystem().Update(f.w)

	clicks := f.w.Events().Peek(ecs.EventCellClicked)
	require.Len(t, clicks, 1)
	clicked, ok := clicks[0].Data.(ecs.CellClickedEvent)
	require.True(t, ok)
	assert.Equal(t, dest, clicked.Cell.Coord())
	assert.False(t, ecs.Has(f.w, f.agent, component.GoToRequestComponent.Kind()))
	assert.False(t, f.navigator(t).Coordinator.Busy())

	NewNavigationSystem(dt, logging.NopLogger()).Update(f.w)
	assert.Empty(t, f.w.Events().Peek(ecs.EventCellClicked))
	assert.True(t, f.navigator(t).Coordinator.Busy())
}

func TestClickIgnoredByUnselectedAgent(t *testing.T) {
	f := newFixture(t, "0000\n0000\n", hexgrid.OffsetToAxial(0, 0), nil)
	agent, ok := ecs.Get(f.w, f.agent, component.AgentComponent.Kind())
	require.True(t, ok)
	agent.Selected = false

	f.point(t, hexgrid.OffsetToAxial(3, 1), true)
	f.frame()
	assert.False(t, f.navigator(t).Coordinator.Busy())
	assert.Empty(t, f.navKinds())
}

func TestHoverHighlight(t *testing.T) {
	f := newFixture(t, "000\n000\n", hexgrid.OffsetToAxial(0, 0), nil)
	a, _ := f.grid.Cell(hexgrid.OffsetToAxial(1, 0))
	b, _ := f.grid.Cell(hexgrid.OffsetToAxial(2, 1))

	f.point(t, a.Coord(), false)
	f.frame()
	assert.True(t, a.Highlighted())

	f.point(t, b.Coord(), false)
	f.frame()
	assert.False(t, a.Highlighted())
	assert.True(t, b.Highlighted())

	// A pinned cell keeps its highlight when the pointer leaves.
	b.SetKeepHighlighted(true)
	p, _ := ecs.Get(f.w, f.pointer, component.PointerComponent.Kind())
	p.Inside = false
	f.frame()
	assert.True(t, b.Highlighted())

	m, _ := f.w.First(component.HexMapComponent.Kind())
	hm, _ := ecs.Get(f.w, m, component.HexMapComponent.Kind())
	assert.Nil(t, hm.Hovered)
}

func TestClickSupersedesActiveRequest(t *testing.T) {
	f := newFixture(t, "0000000\n", hexgrid.OffsetToAxial(0, 0), nil)
	far, back := hexgrid.OffsetToAxial(6, 0), hexgrid.OffsetToAxial(1, 0)

	f.point(t, far, true)
	nv := f.navigator(t)
	f.runUntil(t, func() bool {
		m := nv.Coordinator.Mover()
		return m != nil && m.Index() >= 2
	})

	f.point(t, back, true)
	f.runUntil(t, func() bool { return nv.Arrivals == 1 && !nv.Coordinator.Busy() })

	kinds := f.navKinds()
	assert.Contains(t, kinds, nav.EventStopped)
	require.NotNil(t, nv.LastEvent)
	assert.Equal(t, nav.EventArrived, nv.LastEvent.Kind)
	assert.Equal(t, back, nv.LastEvent.Destination)
}

func TestRouteVisitsWaypoints(t *testing.T) {
	route := &component.Route{Waypoints: []hexgrid.Coord{
		hexgrid.OffsetToAxial(3, 0),
		{X: 99, Y: 99}, // skipped
		hexgrid.OffsetToAxial(0, 2),
	}}
	f := newFixture(t, "0000\n0000\n0000\n", hexgrid.OffsetToAxial(0, 0), route)

	nv := f.navigator(t)
	f.runUntil(t, func() bool { return nv.Arrivals == 2 && !nv.Coordinator.Busy() })
	assert.True(t, route.Done())

	tr, _ := ecs.Get(f.w, f.agent, component.TransformComponent.Kind())
	x, y := f.layout.Center(hexgrid.OffsetToAxial(0, 2))
	assert.InDelta(t, x, tr.X, 1e-6)
	assert.InDelta(t, y, tr.Y, 1e-6)
}

func TestNavigationErrorEvent(t *testing.T) {
	f := newFixture(t, "00#00\n00#00\n", hexgrid.OffsetToAxial(0, 0), nil)
	f.point(t, hexgrid.OffsetToAxial(4, 0), true)

	f.runUntil(t, func() bool { return len(f.errorEvents()) > 0 })
	errs := f.errorEvents()
	require.Len(t, errs, 1)
	assert.Equal(t, "boat", errs[0].Agent)
	assert.Contains(t, f.navKinds(), nav.EventFailed)
}

func (f *fixture) errorEvents() []ecs.NavigationErrorEvent {
	var out []ecs.NavigationErrorEvent
	for _, e := range f.events {
		if ne, ok := e.Data.(ecs.NavigationErrorEvent); ok {
			out = append(out, ne)
		}
	}
	return out
}

func TestCameraFollowsTarget(t *testing.T) {
	f := newFixture(t, "0000\n", hexgrid.OffsetToAxial(0, 0), nil)
	cam, err := entity.NewCamera(f.w, f.agent, 1, 10)
	require.NoError(t, err)

	tr, _ := ecs.Get(f.w, f.agent, component.TransformComponent.Kind())
	tr.X += 10
	// Navigation rewrites the transform from the coordinator pose, so move
	// the pose as well.
	nv := f.navigator(t)
	p := nv.Coordinator.Pose()
	p.X += 10
	nv.Coordinator.SetPose(p)

	c, _ := ecs.Get(f.w, cam, component.CameraComponent.Kind())
	before := c.X
	f.frame()
	assert.Greater(t, c.X, before)
	assert.Less(t, c.X, p.X)
	for i := 0; i < 600; i++ {
		f.frame()
	}
	assert.InDelta(t, p.X, c.X, 1e-3)
}

func TestCameraProjection(t *testing.T) {
	cam := &component.Camera{X: 3, Y: -2, Zoom: 2}
	sx, sy := cam.WorldToScreen(3, -2, 640, 480)
	assert.Equal(t, 320.0, sx)
	assert.Equal(t, 240.0, sy)

	sx, sy = cam.WorldToScreen(4, -2, 640, 480)
	assert.Equal(t, 320+cam.Scale(), sx)
	assert.Equal(t, 240.0, sy)

	wx, wy := cam.ScreenToWorld(100, 50, 640, 480)
	bx, by := cam.WorldToScreen(wx, wy, 640, 480)
	assert.InDelta(t, 100, bx, 1e-9)
	assert.InDelta(t, 50, by, 1e-9)

	assert.Equal(t, component.PixelsPerUnit, (&component.Camera{}).Scale())
}
