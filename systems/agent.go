package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/terrain"
)

// Agent is a view over one entity's components for the current tick.
// Forager is set for grazers and Predator for hunters and cannibals.
// Pointers are only valid until the next structural change to the world.
type Agent struct {
	Entity ecs.Entity
	Slot   int // position in the tick's agent list

	Pos      *components.Position
	Vel      *components.Velocity
	Rot      *components.Rotation
	Body     *components.Body
	Vitals   *components.Vitals
	Org      *components.Organism
	Forager  *components.Forager
	Predator *components.Predator
}

// Variant returns the agent's variant tag.
func (a Agent) Variant() components.Variant {
	return a.Org.Variant
}

// Alive reports whether the agent is alive.
func (a Agent) Alive() bool {
	return a.Vitals.Alive
}

// Env carries the collaborators shared by every agent update.
type Env struct {
	Terrain terrain.Query
	Tuning  *Tuning
	Rng     *rand.Rand
	View    *Snapshot // start-of-tick positions; nil means no neighbors

	Width, Height float32 // world extent in world units
}

// NewEnv builds an update environment over the given terrain.
func NewEnv(q terrain.Query, t *Tuning, rng *rand.Rand) *Env {
	w, h := terrain.Extent(q)
	return &Env{Terrain: q, Tuning: t, Rng: rng, Width: w, Height: h}
}

// UpdateAgent advances one agent by dt. Dead agents are left untouched.
func UpdateAgent(env *Env, a Agent, dt float32) {
	v := a.Vitals
	if !v.Alive {
		return
	}

	v.Age += dt
	if v.Age >= v.MaxAge {
		v.Die()
		return
	}

	t := env.Tuning
	v.SetEnergy(v.Energy - dt*(t.BaseConsumption+a.Body.Size*t.SizeConsumption))
	if v.Energy <= 0 {
		v.Die()
		return
	}

	a.Org.ReproTimer -= dt
	switch a.Org.Variant {
	case components.Grazer:
		grazerBehavior(env, a, dt)
	case components.Hunter, components.Cannibal:
		predatorBehavior(env, a, dt)
	}

	a.Pos.X += a.Vel.X * dt
	a.Pos.Y += a.Vel.Y * dt

	checkWorldBounds(a, env.Width, env.Height)
	applyTerrain(env, a)
}

// checkWorldBounds keeps the body inside the world, bouncing inelastically.
func checkWorldBounds(a Agent, width, height float32) {
	size := a.Body.Size
	if a.Pos.X < size {
		a.Pos.X = size
		a.Vel.X *= -0.5
		a.Rot.Angle = normalizeDeg(180 - a.Rot.Angle)
	} else if a.Pos.X > width-size {
		a.Pos.X = width - size
		a.Vel.X *= -0.5
		a.Rot.Angle = normalizeDeg(180 - a.Rot.Angle)
	}

	if a.Pos.Y < size {
		a.Pos.Y = size
		a.Vel.Y *= -0.5
		a.Rot.Angle = normalizeDeg(360 - a.Rot.Angle)
	} else if a.Pos.Y > height-size {
		a.Pos.Y = height - size
		a.Vel.Y *= -0.5
		a.Rot.Angle = normalizeDeg(360 - a.Rot.Angle)
	}
}

// applyTerrain applies the modifier of the tile under the agent.
func applyTerrain(env *Env, a Agent) {
	t := env.Tuning
	switch terrain.KindAt(env.Terrain, a.Pos.X, a.Pos.Y) {
	case terrain.Water:
		scaleVelocity(a.Vel, t.WaterDamping)
	case terrain.Mountain:
		scaleVelocity(a.Vel, t.MountainDamping)
	case terrain.Snow:
		a.Vitals.SetEnergy(a.Vitals.Energy - t.SnowDrain)
		scaleVelocity(a.Vel, t.SnowDamping)
	}
}

func scaleVelocity(v *components.Velocity, f float32) {
	v.X *= f
	v.Y *= f
}
