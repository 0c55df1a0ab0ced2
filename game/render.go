package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dilemma/renderer"
	"github.com/pthm-cable/dilemma/ui"
)

const controlsLegend = "[Space] pause  [N] step  [R] reset  [</>] speed  [arrows/wheel] camera  [click] inspect"

// Draw renders one frame.
func (g *Game) Draw() {
	g.sim.RecordFrame()
	cfg := g.sim.Config()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.world.Draw(&g.snap, renderer.DrawOptions{
		AgentRadius:       float32(cfg.Movement.CreatureRadius),
		FoodRadius:        float32(cfg.Food.PickupRadius),
		FullResources:     cfg.Reproduction.Threshold,
		InteractionRadius: float32(cfg.Interaction.Distance),
		SenseRadius:       float32(cfg.Movement.SenseRadius),
		ShowInteraction:   g.overlays.IsEnabled(ui.OverlayInteraction),
		ShowSense:         g.overlays.IsEnabled(ui.OverlaySense),
		ShowPursuit:       g.overlays.IsEnabled(ui.OverlayPursuit),
		Selected:          g.selected,
	})

	st := g.snap.Stats
	g.hud.Draw(ui.HUDData{
		Tick:       st.Tick,
		SimTime:    st.Time,
		Population: st.Population,
		Food:       st.FoodCount,
		Births:     st.Births,
		Deaths:     st.Deaths,
		Rounds:     st.Rounds,
		CoopRate:   st.CooperationRate,
		Speed:      g.state.Speed,
		FPS:        rl.GetFPS(),
		Paused:     g.state.Paused,
	})

	actions := g.controls.Draw(&g.state, st, g.overlays)
	if actions.Step && g.state.Paused {
		g.step()
	}
	if actions.Reset {
		g.reset()
	}

	g.drawInspector()

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.sim.Perf())
	}

	g.hud.DrawControls(int32(g.screenH), controlsLegend)

	rl.EndDrawing()
}

// drawInspector shows the selected agent, dropping the selection once the
// agent has died.
func (g *Game) drawInspector() {
	if g.selected == 0 {
		return
	}
	agent, ok := g.sim.Agent(g.selected)
	if !ok {
		g.selected = 0
		return
	}
	g.inspector.Draw(ui.InspectorData{
		Agent:         agent,
		PartnerMemory: g.sim.Memory(agent.ID, agent.LastPartner),
		Threshold:     g.sim.Config().Reproduction.Threshold,
	})
}
