package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dilemma/camera"
	"github.com/pthm-cable/dilemma/sim"
)

// DrawOptions selects the optional layers of a world draw.
type DrawOptions struct {
	AgentRadius       float32
	FoodRadius        float32
	FullResources     float64 // resource level drawn fully opaque
	InteractionRadius float32 // drawn around every agent when ShowInteraction
	SenseRadius       float32 // drawn around the selected agent when ShowSense

	ShowInteraction bool
	ShowSense       bool
	ShowPursuit     bool // outline fleeing and chasing agents
	Selected        uint32
}

// WorldRenderer draws a snapshot through a camera.
type WorldRenderer struct {
	cam *camera.Camera
}

// NewWorldRenderer creates a renderer bound to cam.
func NewWorldRenderer(cam *camera.Camera) *WorldRenderer {
	return &WorldRenderer{cam: cam}
}

// Draw renders the world rectangle, food and agents. Call between
// rl.BeginDrawing and rl.EndDrawing.
func (r *WorldRenderer) Draw(snap *sim.Snapshot, opts DrawOptions) {
	cam := r.cam
	zoom := cam.Zoom

	x0, y0 := cam.WorldToScreen(0, 0)
	x1, y1 := cam.WorldToScreen(float32(snap.Width), float32(snap.Height))
	bounds := rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
	rl.DrawRectangleRec(bounds, WorldBg)
	rl.DrawRectangleLinesEx(bounds, 1, rl.Color{R: 60, G: 70, B: 80, A: 255})

	foodR := max(opts.FoodRadius*zoom, 1)
	for i := range snap.Food {
		f := &snap.Food[i]
		if !cam.IsVisible(float32(f.X), float32(f.Y), opts.FoodRadius) {
			continue
		}
		sx, sy := cam.WorldToScreen(float32(f.X), float32(f.Y))
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, foodR, FoodColor)
	}

	agentR := max(opts.AgentRadius*zoom, 1.5)
	for i := range snap.Agents {
		a := &snap.Agents[i]
		if !cam.IsVisible(float32(a.X), float32(a.Y), opts.InteractionRadius) {
			continue
		}
		sx, sy := cam.WorldToScreen(float32(a.X), float32(a.Y))
		center := rl.Vector2{X: sx, Y: sy}

		if opts.ShowInteraction {
			rl.DrawCircleLinesV(center, opts.InteractionRadius*zoom, rl.Color{R: 255, G: 255, B: 255, A: 25})
		}

		color := StrategyColor(a.Strategy)
		color.A = resourceAlpha(a.Resources, opts.FullResources)
		rl.DrawCircleV(center, agentR, color)

		if opts.ShowPursuit {
			switch {
			case a.Chasing:
				rl.DrawCircleLinesV(center, agentR+2, rl.Red)
			case a.Fleeing:
				rl.DrawCircleLinesV(center, agentR+2, rl.SkyBlue)
			}
		}

		if a.ID == opts.Selected {
			rl.DrawCircleLinesV(center, agentR+4, rl.Yellow)
			if opts.ShowSense {
				rl.DrawCircleLinesV(center, opts.SenseRadius*zoom, rl.Color{R: 255, G: 220, B: 80, A: 90})
			}
		}
	}
}

// PickAgent returns the agent nearest to the screen point within radius
// screen pixels.
func (r *WorldRenderer) PickAgent(snap *sim.Snapshot, sx, sy, radius float32) (uint32, bool) {
	wx, wy := r.cam.ScreenToWorld(sx, sy)
	reach := radius / r.cam.Zoom
	best := reach * reach
	var id uint32
	found := false
	for i := range snap.Agents {
		a := &snap.Agents[i]
		dx := float32(a.X) - wx
		dy := float32(a.Y) - wy
		if d := dx*dx + dy*dy; d <= best {
			best, id, found = d, a.ID, true
		}
	}
	return id, found
}
