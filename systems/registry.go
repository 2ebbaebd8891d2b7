package systems

import (
	"slices"

	"github.com/pthm-cable/terrarium/telemetry"
)

// SystemInfo names one tick phase for display.
type SystemInfo struct {
	ID          string // telemetry phase name
	Name        string
	Description string
	Category    string // "core", "agents" or "lifecycle"
}

// SystemRegistry lists the tick phases in execution order so panels and
// the perf collector agree on names.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]int
}

// NewSystemRegistry creates a registry holding every tick phase.
func NewSystemRegistry() *SystemRegistry {
	r := &SystemRegistry{byID: make(map[string]int)}
	for _, info := range []SystemInfo{
		{telemetry.PhaseSnapshot, "Snapshot", "Captures start-of-tick positions", "core"},
		{telemetry.PhaseBehavior, "Behavior", "Ages, feeds, steers and moves agents", "agents"},
		{telemetry.PhaseInteraction, "Interaction", "Resolves predation on collision", "agents"},
		{telemetry.PhaseCleanup, "Cleanup", "Removes dead agents", "lifecycle"},
		{telemetry.PhaseReproduction, "Reproduction", "Pairs eligible agents and stages offspring", "lifecycle"},
		{telemetry.PhaseFloors, "Floors", "Tops up variants below their minimum", "lifecycle"},
		{telemetry.PhaseTelemetry, "Telemetry", "Counts and statistics", "core"},
	} {
		r.Register(info)
	}
	return r
}

// Register appends a system, replacing any earlier entry with the same ID.
func (r *SystemRegistry) Register(info SystemInfo) {
	if i, ok := r.byID[info.ID]; ok {
		r.systems[i] = info
		return
	}
	r.byID[info.ID] = len(r.systems)
	r.systems = append(r.systems, info)
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	i, ok := r.byID[id]
	if !ok {
		return SystemInfo{}, false
	}
	return r.systems[i], true
}

// GetName returns the display name for id, or id itself when unknown.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.Get(id); ok {
		return info.Name
	}
	return id
}

// All returns all registered systems in execution order.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// ByCategory returns the systems in category, in execution order.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// Categories returns each category once, ordered by first appearance.
func (r *SystemRegistry) Categories() []string {
	var cats []string
	for _, info := range r.systems {
		if !slices.Contains(cats, info.Category) {
			cats = append(cats, info.Category)
		}
	}
	return cats
}

// IDs returns all system IDs in execution order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
