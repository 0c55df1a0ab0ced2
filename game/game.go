// Package game is the graphical front end: it steps a simulation once per
// frame and draws its snapshot with the renderer and ui packages.
package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dilemma/camera"
	"github.com/pthm-cable/dilemma/renderer"
	"github.com/pthm-cable/dilemma/sim"
	"github.com/pthm-cable/dilemma/ui"
)

const (
	panelWidth     = 280
	inspectorWidth = 260
	maxFrameDT     = 0.1 // frame time cap so a stall does not become one huge tick
)

// Options configures the viewer.
type Options struct {
	Seed           int64
	StepsPerUpdate int
	DT             float64 // seconds per tick, 0 = frame time
}

// Game holds the viewer state around a simulation.
type Game struct {
	sim  *sim.Simulation
	opts Options

	cam       *camera.Camera
	world     *renderer.WorldRenderer
	hud       *ui.HUD
	controls  *ui.ControlPanel
	inspector *ui.Inspector
	perfPanel *ui.PerfPanel
	overlays  *ui.OverlayRegistry

	state    ui.ControlState
	snap     sim.Snapshot
	selected uint32

	screenW, screenH float32
}

// New creates a viewer for s. The raylib window must already be open.
func New(s *sim.Simulation, opts Options) *Game {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	cfg := s.Config()

	cam := camera.New(w, h, float32(cfg.Derived.WorldW), float32(cfg.Derived.WorldH))
	g := &Game{
		sim:       s,
		opts:      opts,
		cam:       cam,
		world:     renderer.NewWorldRenderer(cam),
		hud:       ui.NewHUD(),
		controls:  ui.NewControlPanel(int32(w)-panelWidth-10, 10, panelWidth),
		inspector: ui.NewInspector(10, 120, inspectorWidth),
		perfPanel: ui.NewPerfPanel(10, int32(h)-150),
		overlays:  ui.NewOverlayRegistry(),
		state:     ui.ControlState{Speed: max(opts.StepsPerUpdate, 1)},
		screenW:   w,
		screenH:   h,
	}
	s.SnapshotInto(&g.snap)
	return g
}

// Update handles input and advances the simulation by the configured number
// of ticks unless paused.
func (g *Game) Update() {
	g.handleInput()

	dt := g.opts.DT
	if dt <= 0 {
		dt = min(float64(rl.GetFrameTime()), maxFrameDT)
	}

	if !g.state.Paused {
		for i := 0; i < g.state.Speed; i++ {
			g.sim.Step(dt)
		}
	}
	g.sim.SnapshotInto(&g.snap)
}

// step advances a paused simulation by a single tick.
func (g *Game) step() {
	dt := g.opts.DT
	if dt <= 0 {
		dt = g.sim.Config().Physics.DT
	}
	g.sim.Step(dt)
}

// reset starts the run over with the next seed.
func (g *Game) reset() {
	g.opts.Seed++
	cfg := g.sim.Config()
	g.sim.Reset(cfg, g.opts.Seed)
	g.cam.SetWorld(float32(cfg.Derived.WorldW), float32(cfg.Derived.WorldH))
	g.selected = 0
	slog.Info("viewer reset", "seed", g.opts.Seed)
}

// Tick returns the simulation tick.
func (g *Game) Tick() int64 {
	return g.sim.Tick()
}

// Unload releases viewer resources. The simulation is closed by its owner.
func (g *Game) Unload() {
	g.snap = sim.Snapshot{}
}
