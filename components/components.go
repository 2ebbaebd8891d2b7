// Package components defines ECS components for the simulation.
//
// Every agent carries Position, Velocity, Rotation, Body, Vitals and
// Organism. Grazers additionally carry Forager; hunters and cannibals carry
// Predator.
package components

// Forager is the grazer payload.
type Forager struct {
	PlantRange  float32 `inspect:"bar,max:200"`
	ThreatRange float32 `inspect:"bar,max:250"`
	Fleeing     bool    `inspect:"bool"`
	Feeding     bool    `inspect:"bool"`
}

// Predator is the hunter and cannibal payload.
type Predator struct {
	PreyRange      float32 `inspect:"bar,max:300"`
	AttackRange    float32 `inspect:"label,fmt:%.1f"`
	AttackStrength float32 `inspect:"label,fmt:%.1f"`
	HuntTimer      float32 `inspect:"label,fmt:%.1fs"` // seconds until the next attack
	HuntCooldown   float32 `inspect:"skip"`
	CannibalFactor float32 `inspect:"bar,max:1"` // same-kind preference weight, zero for hunters
	Hunting        bool    `inspect:"bool"`
}
