package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayHeadings    OverlayID = "headings"
	OverlayEnergyRings OverlayID = "energy_rings"
	OverlayTileGrid    OverlayID = "tile_grid"
	OverlayStats       OverlayID = "stats"
	OverlayPerf        OverlayID = "perf"
	OverlayControls    OverlayID = "controls"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID       OverlayID
	Name     string
	Key      int32  // keyboard key to toggle (0 = no key)
	KeyLabel string // e.g. "H"
	Category string // "world" or "panels"
	Default  bool   // enabled at startup
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:       OverlayHeadings,
		Name:     "Headings",
		Key:      rl.KeyH,
		KeyLabel: "H",
		Category: "world",
		Default:  true,
	})
	r.Register(OverlayDescriptor{
		ID:       OverlayEnergyRings,
		Name:     "Energy Rings",
		Key:      rl.KeyE,
		KeyLabel: "E",
		Category: "world",
	})
	r.Register(OverlayDescriptor{
		ID:       OverlayTileGrid,
		Name:     "Tile Grid",
		Key:      rl.KeyG,
		KeyLabel: "G",
		Category: "world",
	})
	r.Register(OverlayDescriptor{
		ID:       OverlayStats,
		Name:     "Window Stats",
		Key:      rl.KeyT,
		KeyLabel: "T",
		Category: "panels",
		Default:  true,
	})
	r.Register(OverlayDescriptor{
		ID:       OverlayPerf,
		Name:     "Performance",
		Key:      rl.KeyF,
		KeyLabel: "F",
		Category: "panels",
	})
	r.Register(OverlayDescriptor{
		ID:       OverlayControls,
		Name:     "Controls",
		Key:      rl.KeyC,
		KeyLabel: "C",
		Category: "panels",
		Default:  true,
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeys toggles every overlay whose key was pressed this frame.
func (r *OverlayRegistry) HandleKeys() {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			r.Toggle(desc.ID)
		}
	}
}
