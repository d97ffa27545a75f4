package viewer

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/hexnav/sim"
)

const helpText = "click: go to   tab: next agent   space: stop   wheel: zoom"

// hud is the text overlay: map and scenario, one line per agent and the
// latest status message.
type hud struct {
	ui     *ebitenui.UI
	title  *widget.Text
	agents []*widget.Text
	status *widget.Text
}

func newHUD(s *sim.Sim) *hud {
	face := ebtext.Face(ebtext.NewGoXFace(basicfont.Face7x13))
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 160})

	label := func(clr color.Color) *widget.Text {
		return widget.NewText(widget.TextOpts.Text("", &face, clr))
	}
	panel := func(pos widget.AnchorLayoutPosition) *widget.Container {
		return widget.NewContainer(
			widget.ContainerOpts.BackgroundImage(panelImg),
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(4),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 6, Bottom: 6, Left: 8, Right: 8}),
			)),
			widget.ContainerOpts.WidgetOpts(
				widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: pos}),
			),
		)
	}

	h := &hud{title: label(colornames.White), status: label(colornames.Gold)}

	top := panel(widget.AnchorLayoutPositionStart)
	top.AddChild(h.title)
	for range s.Agents {
		t := label(agentColor)
		h.agents = append(h.agents, t)
		top.AddChild(t)
	}

	help := label(colornames.Lightgray)
	help.Label = helpText
	bottom := panel(widget.AnchorLayoutPositionEnd)
	bottom.AddChild(h.status)
	bottom.AddChild(help)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(top)
	root.AddChild(bottom)
	h.ui = &ebitenui.UI{Container: root}

	// Rows are sized from their first labels.
	h.fill(fmt.Sprintf("map: %s", s.MapName), s.AgentStatuses(), " ")
	return h
}

func (h *hud) update(g *Game) {
	title := fmt.Sprintf("Frames: %d    FPS: %.2f    map: %s", g.frames, ebiten.ActualFPS(), g.sim.MapName)
	if g.opts.Scenario != "" {
		title += "    scenario: " + g.opts.Scenario
	}
	h.fill(title, g.sim.AgentStatuses(), g.status)
	h.ui.Update()
}

func (h *hud) fill(title string, statuses []sim.AgentStatus, status string) {
	h.title.Label = title
	for i, st := range statuses {
		if i >= len(h.agents) {
			break
		}
		marker, clr := " ", color.Color(agentColor)
		if st.Selected {
			marker, clr = ">", selectedColor
		}
		h.agents[i].Label = fmt.Sprintf("%s %-10s %-9s arrivals: %d", marker, st.Name, st.Status, st.Arrivals)
		h.agents[i].SetColor(clr)
	}

	if status == "" {
		status = " "
	}
	h.status.Label = status
}

func (h *hud) draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
}
