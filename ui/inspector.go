package ui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dilemma/renderer"
	"github.com/pthm-cable/dilemma/sim"
	"github.com/pthm-cable/dilemma/strategy"
)

// InspectorData holds what the inspector shows about the selected agent.
type InspectorData struct {
	Agent         sim.AgentView
	PartnerMemory []strategy.Action // what the agent remembers of its last partner
	Threshold     float64           // reproduction threshold, for the resource bar
}

// Inspector renders the selected agent's panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
	sections []SectionDescriptor
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		sections: inspectorSections(),
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel for the given data.
func (ins *Inspector) Draw(data InspectorData) {
	r := ins.renderer
	padding := r.Theme.Padding

	rows := 2
	for _, sd := range ins.sections {
		rows += len(sd.Fields) + 1
	}
	r.DrawPanel(ins.x, ins.y, ins.width, int32(rows)*r.Theme.LineHeight+padding*2)

	y := ins.y + padding
	title := fmt.Sprintf("Agent #%d", data.Agent.ID)
	rl.DrawText(title, ins.x+padding, y, 16, rl.White)
	y += r.Theme.LineHeight + 4

	for _, sd := range ins.sections {
		y = r.DrawSection(ins.x+padding, y, sd, data, ins.width-padding*2)
	}
}

func inspectorSections() []SectionDescriptor {
	agent := func(d any) sim.AgentView { return d.(InspectorData).Agent }

	return []SectionDescriptor{
		{
			Title: "Identity",
			Fields: []FieldDescriptor{
				{Label: "Strategy", Widget: WidgetText, TextGetter: func(d any) string { return agent(d).Strategy.Label() }},
				{Label: "Color", Widget: WidgetColorSwatch, ColorGetter: func(d any) rl.Color { return renderer.StrategyColor(agent(d).Strategy) }},
				{Label: "Generation", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(agent(d).Generation) }},
				{Label: "Parent", Widget: WidgetText, TextGetter: func(d any) string {
					if p := agent(d).ParentID; p != 0 {
						return fmt.Sprintf("#%d", p)
					}
					return "founder"
				}},
			},
		},
		{
			Title: "Economy",
			Fields: []FieldDescriptor{
				{Label: "Resources", Widget: WidgetText, Format: "%.1f", Getter: func(d any) float32 { return float32(agent(d).Resources) }},
				{Label: "To breed", Widget: WidgetBar, Getter: func(d any) float32 {
					data := d.(InspectorData)
					if data.Threshold <= 0 {
						return 0
					}
					return float32(data.Agent.Resources / data.Threshold)
				}},
				{Label: "Age", Widget: WidgetText, Format: "%.1fs", Getter: func(d any) float32 { return float32(agent(d).Age) }},
				{Label: "Score", Widget: WidgetCenteredBar, Range: FieldRange{Min: -100, Max: 100}, Getter: func(d any) float32 { return float32(agent(d).Score) }},
			},
		},
		{
			Title: "Play",
			Fields: []FieldDescriptor{
				{Label: "Rounds", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(agent(d).Interactions) }},
				{Label: "Cooperated", Widget: WidgetBar, Getter: func(d any) float32 {
					a := agent(d)
					if a.Interactions == 0 {
						return 0
					}
					return float32(a.Cooperations) / float32(a.Interactions)
				}},
				{Label: "State", Widget: WidgetText, TextGetter: func(d any) string {
					a := agent(d)
					switch {
					case a.Fleeing && a.Chasing:
						return "fleeing, chasing"
					case a.Fleeing:
						return "fleeing"
					case a.Chasing:
						return "chasing"
					}
					return "wandering"
				}},
				{Label: "Last partner", Widget: WidgetText, TextGetter: func(d any) string {
					data := d.(InspectorData)
					if data.Agent.LastPartner == 0 {
						return "none"
					}
					return fmt.Sprintf("#%d %s", data.Agent.LastPartner, formatMoves(data.PartnerMemory))
				}},
			},
		},
	}
}

// formatMoves renders a history oldest first as a string of C and D.
func formatMoves(moves []strategy.Action) string {
	var b strings.Builder
	for _, m := range moves {
		if m == strategy.Cooperate {
			b.WriteByte('C')
		} else {
			b.WriteByte('D')
		}
	}
	return b.String()
}
