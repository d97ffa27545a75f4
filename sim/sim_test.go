package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/hexnav/config"
	"github.com/milk9111/hexnav/ecs"
	"github.com/milk9111/hexnav/ecs/component"
	"github.com/milk9111/hexnav/hexgrid"
	"github.com/milk9111/hexnav/levels"
	"github.com/milk9111/hexnav/nav"
)

func fastConfig() *config.Config {
	cfg := config.Default()
	cfg.Agent.Speed = 10
	cfg.Agent.RotationSpeed = 1440
	return cfg
}

func newSim(t *testing.T, opts Options) *Sim {
	t.Helper()
	s, err := New(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func agentAt(t *testing.T, s *Sim, e ecs.Entity, c hexgrid.Coord) {
	t.Helper()
	tr, ok := ecs.Get(s.World, e, component.TransformComponent.Kind())
	require.True(t, ok)
	x, y := s.Layout.Center(c)
	assert.InDelta(t, x, tr.X, 1e-6)
	assert.InDelta(t, y, tr.Y, 1e-6)
}

func TestRunDestinations(t *testing.T) {
	dest := hexgrid.Coord{X: 8, Y: 0}
	s := newSim(t, Options{Config: fastConfig(), Destinations: []hexgrid.Coord{dest}})

	var kinds []nav.EventKind
	stats, err := s.Run(context.Background(), 0, func(ev ecs.Event) {
		if data, ok := ev.Data.(ecs.NavigationEvent); ok {
			kinds = append(kinds, data.Event.Kind)
		}
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Requests)
	assert.Equal(t, 1, stats.Arrivals)
	assert.Zero(t, stats.Failures)
	assert.Equal(t, []nav.EventKind{nav.EventStarted, nav.EventPathFound, nav.EventArrived}, kinds)
	assert.InDelta(t, float64(stats.Ticks)*s.Dt(), stats.Seconds, 1e-9)
	require.Len(t, s.Agents, 1)
	agentAt(t, s, s.Agents[0], dest)
	assert.True(t, s.Idle())
}

func TestRunScenario(t *testing.T) {
	scenario, err := levels.LoadScenario("patrol")
	require.NoError(t, err)

	s := newSim(t, Options{Config: fastConfig(), Scenario: scenario})
	assert.Equal(t, "islands", s.MapName)

	stats, err := s.Run(context.Background(), 0, nil)
	require.NoError(t, err)
	assert.Equal(t, len(scenario.Agents[0].Route), stats.Arrivals)
	agentAt(t, s, s.Agents[0], hexgrid.Coord{})
}

func TestRunScriptedScenario(t *testing.T) {
	scenario, err := levels.LoadScenario("coastal")
	require.NoError(t, err)

	s := newSim(t, Options{Config: fastConfig(), Scenario: scenario})
	require.Len(t, s.Agents, 2)

	route, ok := ecs.Get(s.World, s.Agents[0], component.RouteComponent.Kind())
	require.True(t, ok)
	assert.NotEmpty(t, route.Waypoints)

	stats, err := s.Run(context.Background(), 0, nil)
	require.NoError(t, err)
	assert.Zero(t, stats.Failures)
	assert.GreaterOrEqual(t, stats.Arrivals, 2)
	agentAt(t, s, s.Agents[1], hexgrid.Coord{X: -2, Y: 4})
}

func TestAgentStatuses(t *testing.T) {
	scenario, err := levels.LoadScenario("coastal")
	require.NoError(t, err)
	s := newSim(t, Options{Config: fastConfig(), Scenario: scenario})

	assert.Equal(t, []AgentStatus{
		{Name: "trawler", Selected: true, Status: nav.StatusIdle},
		{Name: "tug", Status: nav.StatusIdle},
	}, s.AgentStatuses())

	s.Step()
	for _, st := range s.AgentStatuses() {
		assert.NotEqual(t, nav.StatusIdle, st.Status, st.Name)
	}

	_, err = s.Run(context.Background(), 0, nil)
	require.NoError(t, err)
	got := s.AgentStatuses()
	require.Len(t, got, 2)
	assert.Equal(t, nav.StatusIdle, got[1].Status)
	assert.Equal(t, 1, got[1].Arrivals)
	assert.GreaterOrEqual(t, got[0].Arrivals, 1)
}

func TestRunDisconnected(t *testing.T) {
	cfg := fastConfig()
	cfg.Map.Name = "divided"
	s := newSim(t, Options{Config: cfg, Destinations: []hexgrid.Coord{{X: 5, Y: 0}}})

	var navErr error
	stats, err := s.Run(context.Background(), 0, func(ev ecs.Event) {
		if data, ok := ev.Data.(ecs.NavigationErrorEvent); ok {
			navErr = data.Err
		}
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failures)
	assert.Zero(t, stats.Arrivals)
	assert.Error(t, navErr)
	agentAt(t, s, s.Agents[0], hexgrid.Coord{})
}

func TestRunLimits(t *testing.T) {
	t.Run("tick limit", func(t *testing.T) {
		s := newSim(t, Options{Config: fastConfig(), Destinations: []hexgrid.Coord{{X: 8, Y: 0}}})
		stats, err := s.Run(context.Background(), 1, nil)
		assert.ErrorIs(t, err, ErrTickLimit)
		assert.Equal(t, 1, stats.Ticks)
	})

	t.Run("cancelled", func(t *testing.T) {
		s := newSim(t, Options{Config: fastConfig(), Destinations: []hexgrid.Coord{{X: 8, Y: 0}}})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := s.Run(ctx, 0, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestGoTo(t *testing.T) {
	s := newSim(t, Options{Config: fastConfig()})
	assert.True(t, s.Idle())

	err := s.GoTo(hexgrid.Coord{X: 2, Y: 1})
	assert.True(t, errors.Is(err, nav.ErrInvalidRequest), "land cell should be rejected: %v", err)
	assert.True(t, s.Idle())

	dest := hexgrid.Coord{X: 1, Y: 3}
	require.NoError(t, s.GoTo(dest))
	assert.Len(t, s.World.Events().Peek(ecs.EventCellClicked), 1)
	assert.False(t, s.Idle(), "pending click")

	stats, err := s.Run(context.Background(), 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Arrivals)
	agentAt(t, s, s.Agents[0], dest)
}

func TestNewErrors(t *testing.T) {
	cfg := fastConfig()
	cfg.Map.Name = "no-such-map"
	_, err := New(context.Background(), Options{Config: cfg})
	assert.Error(t, err)

	cfg = fastConfig()
	cfg.Agent.StartX, cfg.Agent.StartY = 2, 1
	_, err = New(context.Background(), Options{Config: cfg})
	assert.Error(t, err, "start on land")

	_, err = New(context.Background(), Options{Config: fastConfig(), Scenario: &levels.Scenario{Name: "empty", Map: "islands"}})
	assert.ErrorIs(t, err, levels.ErrBadScenario)
}
