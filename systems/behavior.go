package systems

import (
	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/terrain"
)

// IsThreat reports whether a grazer flees from v.
func IsThreat(v components.Variant) bool {
	return v == components.Hunter || v == components.Cannibal
}

// PreyOf returns the target test used when hunter variant v hunts.
func PreyOf(v components.Variant) func(components.Variant) bool {
	if v == components.Cannibal {
		return func(o components.Variant) bool {
			return o == components.Hunter || o == components.Grazer
		}
	}
	return func(o components.Variant) bool { return o == components.Grazer }
}

// grazerBehavior flees threats, feeds when hungry and wanders otherwise.
func grazerBehavior(env *Env, a Agent, dt float32) {
	t := env.Tuning
	vt := t.Variant(components.Grazer)
	f := a.Forager
	f.Fleeing = false
	f.Feeding = false

	if threat, ok := env.nearest(a, f.ThreatRange, IsThreat); ok {
		f.Fleeing = true
		// Steer for the point mirrored through the agent.
		tx := 2*a.Pos.X - threat.X
		ty := 2*a.Pos.Y - threat.Y
		moveToward(a, tx, ty, dt*t.FleeTurnRate, a.Body.MaxSpeed*vt.FleeSpeed)
		a.Vitals.SetEnergy(a.Vitals.Energy - dt*vt.FleeDrain)
		return
	}

	if a.Vitals.Fraction() < vt.HungerLevel {
		seekFood(env, a, dt)
		return
	}
	moveRandomly(env, a, dt)
}

// seekFood grazes on a food tile, or heads for the nearest one in range.
func seekFood(env *Env, a Agent, dt float32) {
	t := env.Tuning
	vt := t.Variant(components.Grazer)

	if terrain.KindAt(env.Terrain, a.Pos.X, a.Pos.Y).IsFood() {
		a.Forager.Feeding = true
		a.Vitals.AddEnergy(dt * vt.FeedRate)
		scaleVelocity(a.Vel, vt.FeedDamping)
		return
	}

	if tx, ty, ok := NearestFood(env.Terrain, a.Pos.X, a.Pos.Y, a.Forager.PlantRange); ok {
		moveToward(a, tx, ty, dt*t.TurnRate, a.Body.MaxSpeed)
		return
	}
	moveRandomly(env, a, dt)
}

// NearestFood scans the square of tiles within rangeWorld of (x, y) and
// returns the center of the closest food tile no farther than rangeWorld.
// Ties keep the first tile found scanning columns then rows.
func NearestFood(q terrain.Query, x, y, rangeWorld float32) (fx, fy float32, ok bool) {
	cx, cy := terrain.TileAt(x, y)
	r := int(rangeWorld / terrain.TileSize)

	var best float32
	for tx := cx - r; tx <= cx+r; tx++ {
		for ty := cy - r; ty <= cy+r; ty++ {
			if !q.Classify(tx, ty).IsFood() {
				continue
			}
			px, py := terrain.TileCenter(tx, ty)
			d := distance(x, y, px, py)
			if d > rangeWorld {
				continue
			}
			if !ok || d < best {
				fx, fy, best, ok = px, py, d, true
			}
		}
	}
	return fx, fy, ok
}

// predatorBehavior drives hunters and cannibals: hunt when hungry, roam when
// sated and ready to breed, otherwise mostly hunt.
func predatorBehavior(env *Env, a Agent, dt float32) {
	vt := env.Tuning.Variant(a.Org.Variant)
	p := a.Predator
	p.HuntTimer -= dt
	p.Hunting = false

	frac := a.Vitals.Fraction()
	switch {
	case frac < vt.HuntBelow:
		hunt(env, a, dt)
	case frac > vt.SatedAbove && a.Org.ReproTimer <= 0:
		moveRandomly(env, a, dt)
	case env.Rng.Float32() < vt.HuntChance:
		hunt(env, a, dt)
	default:
		moveRandomly(env, a, dt)
	}
}

// hunt pursues the nearest prey and attacks it once in range and off cooldown.
// An attack only feeds the hunter; kills are resolved by collisions.
func hunt(env *Env, a Agent, dt float32) {
	p := a.Predator
	prey, ok := env.nearest(a, p.PreyRange, PreyOf(a.Org.Variant))
	if !ok {
		moveRandomly(env, a, dt)
		return
	}

	p.Hunting = true
	moveToward(a, prey.X, prey.Y, dt*env.Tuning.TurnRate, a.Body.MaxSpeed)

	if distance(a.Pos.X, a.Pos.Y, prey.X, prey.Y) <= p.AttackRange && p.HuntTimer <= 0 {
		a.Vitals.AddEnergy(p.AttackStrength)
		p.HuntTimer = p.HuntCooldown
	}
}

func (env *Env) nearest(a Agent, radius float32, match func(components.Variant) bool) (Sighting, bool) {
	if env.View == nil {
		return Sighting{}, false
	}
	return env.View.Nearest(a.Pos.X, a.Pos.Y, radius, a.Slot, match)
}
