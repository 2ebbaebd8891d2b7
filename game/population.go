package game

import "github.com/pthm-cable/terrarium/components"

// AgentView is the read-only state of one agent exposed to consumers.
type AgentView struct {
	ID        uint32
	Variant   components.Variant
	X, Y      float32
	Angle     float32 // degrees
	Size      float32
	Energy    float32
	MaxEnergy float32
	Alive     bool
}

// PopulationSnapshot is the live population at the end of a tick.
type PopulationSnapshot struct {
	Tick   int32
	Counts [components.VariantCount]int
	Agents []AgentView
}

// Count returns the live count of v.
func (p PopulationSnapshot) Count(v components.Variant) int {
	return p.Counts[v]
}

// Total returns the number of live agents.
func (p PopulationSnapshot) Total() int {
	n := 0
	for _, c := range p.Counts {
		n += c
	}
	return n
}

// Find returns the agent with the given ID.
func (p PopulationSnapshot) Find(id uint32) (AgentView, bool) {
	for _, a := range p.Agents {
		if a.ID == id {
			return a, true
		}
	}
	return AgentView{}, false
}

// AgentDetail is a copy of every component of one agent.
// Exactly one of Forager and Predator is set.
type AgentDetail struct {
	Position components.Position
	Velocity components.Velocity
	Rotation components.Rotation
	Body     components.Body
	Vitals   components.Vitals
	Organism components.Organism
	Forager  *components.Forager
	Predator *components.Predator
}

// Components returns the component copies in display order.
func (d *AgentDetail) Components() []any {
	out := []any{d.Organism, d.Vitals, d.Body, d.Rotation}
	if d.Forager != nil {
		out = append(out, *d.Forager)
	}
	if d.Predator != nil {
		out = append(out, *d.Predator)
	}
	return out
}
