// Package viewer is the interactive ebiten front end: click a water cell to
// send the selected agent there.
package viewer

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/hexnav/ecs"
	"github.com/milk9111/hexnav/ecs/component"
	"github.com/milk9111/hexnav/levels"
	"github.com/milk9111/hexnav/logging"
	"github.com/milk9111/hexnav/sim"
	"github.com/milk9111/hexnav/watch"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

// Options configures a Game.
type Options struct {
	Sim sim.Options
	// Scenario is reloaded by name on hot reload.
	Scenario string
	// Watch reloads the world when map, scenario or script files change.
	Watch  bool
	Logger *logging.Logger
}

type Game struct {
	ctx    context.Context
	opts   Options
	logger *logging.Logger

	frames    int
	sim       *sim.Sim
	hud       *hud
	watcher   *watch.Watcher
	watchDone bool
	status    string
}

// New builds the world and, with Options.Watch, starts watching the level
// directories under levels.DiskRoot.
func New(ctx context.Context, opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	opts.Sim.Logger = logger

	g := &Game{ctx: ctx, opts: opts, logger: logger}
	s, err := g.build()
	if err != nil {
		return nil, err
	}
	g.sim = s
	g.hud = newHUD(s)

	if opts.Watch {
		var mapPath string
		if opts.Sim.Config != nil {
			mapPath = opts.Sim.Config.Map.Path
		}
		w, err := watch.New(levels.WatchDirs(mapPath)...)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("viewer: watch levels: %w", err)
		}
		g.watcher = w
	}
	return g, nil
}

func (g *Game) build() (*sim.Sim, error) {
	opts := g.opts.Sim
	if g.opts.Scenario != "" {
		scenario, err := levels.LoadScenario(g.opts.Scenario)
		if err != nil {
			return nil, err
		}
		opts.Scenario = scenario
	}
	return sim.New(g.ctx, opts)
}

func (g *Game) Update() error {
	if err := g.ctx.Err(); err != nil {
		return ebiten.Termination
	}
	g.frames++

	g.reload()
	g.handleKeys()
	g.updatePointer()

	for _, ev := range g.sim.Step() {
		g.observe(ev)
	}
	g.hud.update(g)
	return nil
}

func (g *Game) reload() {
	if g.watcher == nil || g.watchDone {
		return
	}
	paths, errs, open := g.watcher.Drain()
	g.watchDone = !open
	for _, err := range errs {
		g.logger.Warn("watch error", "error", err.Error())
	}
	if len(paths) == 0 {
		return
	}
	changed := paths[len(paths)-1]

	s, err := g.build()
	if err != nil {
		g.logger.Warn("reload failed", "file", changed, "error", err.Error())
		g.status = "reload failed: " + err.Error()
		return
	}
	g.sim.Close()
	g.sim = s
	g.hud = newHUD(s)
	g.logger.Info("reloaded", "file", changed)
	g.status = "reloaded " + changed
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.cycleSelection()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		ecs.ForEach2(g.sim.World, component.AgentComponent.Kind(), component.NavigatorComponent.Kind(), func(_ ecs.Entity, a *component.Agent, nv *component.Navigator) {
			if a.Selected && nv.Coordinator != nil {
				nv.Coordinator.Stop()
			}
		})
	}
	if cam := g.camera(); cam != nil {
		_, wheel := ebiten.Wheel()
		if wheel != 0 {
			cam.Zoom *= 1 + wheel*0.1
			cam.Zoom = min(max(cam.Zoom, 0.25), 8)
		}
	}
}

// cycleSelection selects the next agent and points the camera at it.
func (g *Game) cycleSelection() {
	agents := g.sim.Agents
	if len(agents) < 2 {
		return
	}
	next := 0
	for i, e := range agents {
		if a, ok := ecs.Get(g.sim.World, e, component.AgentComponent.Kind()); ok && a.Selected {
			a.Selected = false
			next = (i + 1) % len(agents)
		}
	}
	if a, ok := ecs.Get(g.sim.World, agents[next], component.AgentComponent.Kind()); ok {
		a.Selected = true
	}
	if cam := g.camera(); cam != nil {
		cam.Target = uint64(agents[next])
	}
}

func (g *Game) updatePointer() {
	p, ok := ecs.Get(g.sim.World, g.sim.Pointer, component.PointerComponent.Kind())
	if !ok {
		return
	}
	cam := g.camera()
	if cam == nil {
		return
	}
	cx, cy := ebiten.CursorPosition()
	p.Inside = cx >= 0 && cy >= 0 && cx < baseWidth && cy < baseHeight
	p.X, p.Y = cam.ScreenToWorld(float64(cx), float64(cy), baseWidth, baseHeight)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		p.Clicked = true
	}
}

func (g *Game) observe(ev ecs.Event) {
	switch data := ev.Data.(type) {
	case ecs.NavigationEvent:
		g.logger.WithAgent(data.Agent).Debug("navigation", "event", data.Event.Kind.String(), "request_id", data.Event.Request)
		g.status = fmt.Sprintf("%s: %s", data.Agent, data.Event)
	case ecs.NavigationErrorEvent:
		g.status = fmt.Sprintf("%s: %v", data.Agent, data.Err)
	}
}

func (g *Game) camera() *component.Camera {
	cam, ok := ecs.Get(g.sim.World, g.sim.Camera, component.CameraComponent.Kind())
	if !ok {
		return nil
	}
	return cam
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close stops the watcher and every agent.
func (g *Game) Close() error {
	var err error
	if g.watcher != nil {
		err = g.watcher.Close()
	}
	g.sim.Close()
	return err
}

// Run opens the window and blocks until it closes or ctx ends.
func Run(ctx context.Context, opts Options) error {
	game, err := New(ctx, opts)
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("hexnav - " + game.sim.MapName)
	ebiten.SetTPS(int(1/game.sim.Dt() + 0.5))

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
