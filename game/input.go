package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dilemma/ui"
)

// pickRadius is how close, in screen pixels, a click must land to select an
// agent.
const pickRadius = 12

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.state.Paused = !g.state.Paused
	}
	if rl.IsKeyPressed(rl.KeyN) && g.state.Paused {
		g.step()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.reset()
	}

	// Speed control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.state.Speed > 1 {
		g.state.Speed--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.state.Speed < ui.MaxSpeed {
		g.state.Speed++
	}

	g.overlays.HandleKeys()
	g.handleCameraInput()
	g.handleSelection()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenW && h == g.screenH {
		return
	}
	g.screenW = w
	g.screenH = h

	g.cam.Resize(w, h)
	g.controls.SetPosition(int32(w)-panelWidth-10, 10)
	g.perfPanel.SetPosition(10, int32(h)-150)
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	// Pan speed scales inversely with zoom
	panSpeed := float32(8.0)

	if rl.IsKeyDown(rl.KeyRight) {
		g.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.cam.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.cam.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.cam.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.cam.Reset()
	}
}

// handleSelection selects the agent under a left click, or clears the
// selection when the click hits empty space.
func (g *Game) handleSelection() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		g.selected = 0
	}
	if !rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		return
	}
	mouse := rl.GetMousePosition()
	if g.controls.Contains(mouse.X, mouse.Y) {
		return
	}
	if id, ok := g.world.PickAgent(&g.snap, mouse.X, mouse.Y, pickRadius); ok {
		g.selected = id
	} else {
		g.selected = 0
	}
}
