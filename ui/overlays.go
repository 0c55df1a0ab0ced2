package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Viewer overlays.
const (
	OverlayInteraction OverlayID = "interaction_radius"
	OverlaySense       OverlayID = "sense_radius"
	OverlayPursuit     OverlayID = "pursuit"
	OverlayPerf        OverlayID = "perf"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID       OverlayID
	Name     string
	Key      int32  // 0 = no key
	KeyLabel string // e.g. "I"
	Category string // "world" or "debug"
	Default  bool
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the viewer overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{enabled: make(map[OverlayID]bool)}
	reg.Register(OverlayDescriptor{ID: OverlayPursuit, Name: "Flee / Chase", Key: rl.KeyP, KeyLabel: "P", Category: "world", Default: true})
	reg.Register(OverlayDescriptor{ID: OverlayInteraction, Name: "Interaction Range", Key: rl.KeyI, KeyLabel: "I", Category: "world"})
	reg.Register(OverlayDescriptor{ID: OverlaySense, Name: "Sense Range", Key: rl.KeyS, KeyLabel: "S", Category: "world"})
	reg.Register(OverlayDescriptor{ID: OverlayPerf, Name: "Phase Timing", Key: rl.KeyF, KeyLabel: "F", Category: "debug"})
	return reg
}

// Register adds an overlay in its default state.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on or off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.enabled[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeys toggles every overlay whose key was pressed this frame.
func (r *OverlayRegistry) HandleKeys() {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			r.Toggle(desc.ID)
		}
	}
}
