package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dilemma/renderer"
	"github.com/pthm-cable/dilemma/sim"
	"github.com/pthm-cable/dilemma/strategy"
)

// MaxSpeed is the highest ticks-per-frame the speed slider offers.
const MaxSpeed = 20

// ControlState is the viewer state the panel edits in place.
type ControlState struct {
	Paused bool
	Speed  int // ticks per frame
}

// ControlActions reports one-shot requests from the panel this frame.
type ControlActions struct {
	Reset bool
	Step  bool
}

// ControlPanel renders the right-side panel: run controls, the strategy
// legend with live shares, and overlay toggles.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlPanel creates a new control panel.
func NewControlPanel(x, y, width int32) *ControlPanel {
	return &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Contains reports whether the screen point lies on the panel, so clicks
// there do not select agents.
func (c *ControlPanel) Contains(sx, sy float32) bool {
	return sx >= float32(c.x) && sx <= float32(c.x+c.width) && sy >= float32(c.y)
}

// Draw renders the panel and applies slider and toggle edits to state and
// overlays.
func (c *ControlPanel) Draw(state *ControlState, stats sim.Stats, overlays *OverlayRegistry) ControlActions {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	inner := c.width - padding*2

	panelHeight := padding*2 + 30 + 50 + lineHeight*int32(strategy.Count+2) + lineHeight*int32(len(overlays.All())+2) + 10
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	var actions ControlActions
	x := float32(c.x + padding)
	y := c.y + padding

	btnW := float32(inner-10) / 3
	pauseLabel := "Pause"
	if state.Paused {
		pauseLabel = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: btnW, Height: 24}, pauseLabel) {
		state.Paused = !state.Paused
	}
	if gui.Button(rl.Rectangle{X: x + btnW + 5, Y: float32(y), Width: btnW, Height: 24}, "Step") {
		actions.Step = true
	}
	if gui.Button(rl.Rectangle{X: x + 2*(btnW+5), Y: float32(y), Width: btnW, Height: 24}, "Reset") {
		actions.Reset = true
	}
	y += 30

	rl.DrawText(fmt.Sprintf("Speed: %dx", state.Speed), int32(x), y, r.Theme.FontSize, r.Theme.LabelColor)
	y += lineHeight
	speed := gui.SliderBar(
		rl.Rectangle{X: x + 12, Y: float32(y), Width: float32(inner - 40), Height: 16},
		"1", fmt.Sprint(MaxSpeed),
		float32(state.Speed), 1, MaxSpeed,
	)
	state.Speed = max(1, min(MaxSpeed, int(speed+0.5)))
	y += 34

	y = r.DrawSectionHeader(int32(x), y, "Strategies")
	for _, s := range strategy.All() {
		color := renderer.StrategyColor(s)
		rl.DrawRectangle(int32(x), y+2, 10, 10, color)
		label := fmt.Sprintf("%s (%d)", s.Label(), stats.PerStrategy[s])
		rl.DrawText(label, int32(x)+16, y, r.Theme.FontSize, r.Theme.LabelColor)

		share := float32(stats.Share(s))
		barX := int32(x) + inner - 60
		rl.DrawRectangle(barX, y+3, 60, r.Theme.BarHeight, r.Theme.BarBg)
		rl.DrawRectangle(barX, y+3, int32(60*share), r.Theme.BarHeight, color)
		y += lineHeight
	}
	y += 4

	y = r.DrawSectionHeader(int32(x), y, "Overlays")
	for _, desc := range overlays.All() {
		label := fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
		checked := gui.CheckBox(rl.Rectangle{X: x, Y: float32(y), Width: 12, Height: 12}, label, overlays.IsEnabled(desc.ID))
		if checked != overlays.IsEnabled(desc.ID) {
			overlays.Toggle(desc.ID)
		}
		y += lineHeight
	}

	return actions
}
