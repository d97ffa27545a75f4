package viewer

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/hexnav/ecs"
	"github.com/milk9111/hexnav/ecs/component"
	"github.com/milk9111/hexnav/hexgrid"
)

var (
	backgroundColor = colornames.Midnightblue
	waterColor      = colornames.Steelblue
	landColor       = colornames.Sandybrown
	highlightColor  = colornames.Gold
	outlineColor    = colornames.Darkslategray
	agentColor      = colornames.White
	selectedColor   = colornames.Orangered
	targetColor     = colornames.Crimson
)

var whitePixel = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	cam := g.camera()
	if cam == nil {
		return
	}
	mapEnt, ok := g.sim.World.First(component.HexMapComponent.Kind())
	if !ok {
		return
	}
	hexMap, ok := ecs.Get(g.sim.World, mapEnt, component.HexMapComponent.Kind())
	if !ok {
		return
	}

	g.drawMap(screen, cam, hexMap)
	g.drawAgents(screen, cam, hexMap.Layout)
	g.hud.draw(screen)
}

func (g *Game) drawMap(screen *ebiten.Image, cam *component.Camera, m *component.HexMap) {
	for _, c := range m.Grid.Land() {
		g.drawHex(screen, cam, m.Layout, c, landColor)
	}
	for _, cell := range m.Grid.Cells() {
		clr := waterColor
		if cell.Highlighted() {
			clr = highlightColor
		}
		g.drawHex(screen, cam, m.Layout, cell.Coord(), clr)
	}
}

func (g *Game) drawHex(screen *ebiten.Image, cam *component.Camera, l hexgrid.Layout, c hexgrid.Coord, clr color.Color) {
	corners := l.Corners(c)
	var pts [6][2]float32
	for i, p := range corners {
		x, y := cam.WorldToScreen(p[0], p[1], baseWidth, baseHeight)
		pts[i] = [2]float32{float32(x), float32(y)}
	}
	cx, cy := l.Center(c)
	sx, sy := cam.WorldToScreen(cx, cy, baseWidth, baseHeight)
	fillFan(screen, float32(sx), float32(sy), pts[:], clr)
	for i := range pts {
		j := (i + 1) % len(pts)
		vector.StrokeLine(screen, pts[i][0], pts[i][1], pts[j][0], pts[j][1], 1, outlineColor, true)
	}
}

// fillFan fills the convex polygon pts as a triangle fan around (cx, cy).
func fillFan(dst *ebiten.Image, cx, cy float32, pts [][2]float32, clr color.Color) {
	r, gr, b, a := clr.RGBA()
	cr, cg, cb, ca := float32(r)/0xffff, float32(gr)/0xffff, float32(b)/0xffff, float32(a)/0xffff

	vs := make([]ebiten.Vertex, 0, len(pts)+1)
	vs = append(vs, ebiten.Vertex{DstX: cx, DstY: cy, SrcX: 1, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca})
	for _, p := range pts {
		vs = append(vs, ebiten.Vertex{DstX: p[0], DstY: p[1], SrcX: 1, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca})
	}
	is := make([]uint16, 0, len(pts)*3)
	for i := range pts {
		is = append(is, 0, uint16(i+1), uint16((i+1)%len(pts)+1))
	}
	dst.DrawTriangles(vs, is, whitePixel, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (g *Game) drawAgents(screen *ebiten.Image, cam *component.Camera, l hexgrid.Layout) {
	radius := float32(cam.Scale() * l.RowHeight * 0.25)
	ecs.ForEach3(g.sim.World, component.AgentComponent.Kind(), component.TransformComponent.Kind(), component.NavigatorComponent.Kind(),
		func(_ ecs.Entity, agent *component.Agent, t *component.Transform, nv *component.Navigator) {
			clr := agentColor
			if agent.Selected {
				clr = selectedColor
			}

			if nv.Coordinator != nil {
				if mv := nv.Coordinator.Mover(); mv != nil {
					if target := mv.Target(); target != nil {
						tx, ty := l.Center(target.Coord())
						sx, sy := cam.WorldToScreen(tx, ty, baseWidth, baseHeight)
						vector.StrokeCircle(screen, float32(sx), float32(sy), radius*0.5, 2, targetColor, true)
					}
				}
			}

			x, y := cam.WorldToScreen(t.X, t.Y, baseWidth, baseHeight)
			body := make([][2]float32, 12)
			for i := range body {
				a := float64(i) * 2 * math.Pi / float64(len(body))
				body[i] = [2]float32{float32(x + float64(radius)*math.Cos(a)), float32(y + float64(radius)*math.Sin(a))}
			}
			fillFan(screen, float32(x), float32(y), body, clr)

			rad := t.Rotation * math.Pi / 180
			hx := x + float64(radius)*1.8*math.Cos(rad)
			hy := y + float64(radius)*1.8*math.Sin(rad)
			vector.StrokeLine(screen, float32(x), float32(y), float32(hx), float32(hy), 3, clr, true)
		})
}
