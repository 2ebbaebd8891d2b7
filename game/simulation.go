package game

import (
	"log/slog"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/systems"
	"github.com/pthm-cable/terrarium/telemetry"
)

// Step advances the simulation by one tick:
// snapshot, behavior, interaction, cleanup, reproduction, floors, telemetry.
func (s *Simulation) Step() {
	s.perfCollector.StartTick()

	s.perfCollector.StartPhase(telemetry.PhaseSnapshot)
	s.collectAgents()
	s.view.Capture(s.agents)

	s.perfCollector.StartPhase(telemetry.PhaseBehavior)
	s.updateBehavior()

	s.perfCollector.StartPhase(telemetry.PhaseInteraction)
	s.resolveInteractions()

	s.perfCollector.StartPhase(telemetry.PhaseCleanup)
	s.cleanupDead()

	s.perfCollector.StartPhase(telemetry.PhaseReproduction)
	s.reproduce()

	s.perfCollector.StartPhase(telemetry.PhaseFloors)
	s.enforceFloors()

	s.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	s.tick++
	s.refreshPopulation()
	s.flushTelemetry()
	s.periodicSnapshot()

	s.perfCollector.EndTick()
}

// collectAgents rebuilds the slot list from the world in query order.
// Slot order is archetype creation order (grazers, then predators), then
// storage order within each archetype.
func (s *Simulation) collectAgents() {
	s.agents = s.agents[:0]

	query := s.agentFilter.Query()
	for query.Next() {
		pos, vel, rot, body, vitals, org := query.Get()
		s.agents = append(s.agents, systems.Agent{
			Entity: query.Entity(),
			Slot:   len(s.agents),
			Pos:    pos,
			Vel:    vel,
			Rot:    rot,
			Body:   body,
			Vitals: vitals,
			Org:    org,
		})
	}

	for i := range s.agents {
		a := &s.agents[i]
		if a.Org.Variant == components.Grazer {
			a.Forager = s.foragerMap.Get(a.Entity)
		} else {
			a.Predator = s.predatorMap.Get(a.Entity)
		}
	}
}

// updateBehavior runs every live agent's update against the captured view.
func (s *Simulation) updateBehavior() {
	dt := s.tuning.DT
	for _, a := range s.agents {
		if !a.Vitals.Alive {
			continue
		}

		before := a.Vitals.Energy
		var huntTimer float32
		if a.Predator != nil {
			huntTimer = a.Predator.HuntTimer
		}

		systems.UpdateAgent(s.env, a, dt)
		if !a.Vitals.Alive {
			continue
		}

		id := a.Org.ID
		if a.Forager != nil && a.Forager.Feeding {
			upkeep := dt * (s.tuning.BaseConsumption + a.Body.Size*s.tuning.SizeConsumption)
			s.lifetimeTracker.RecordForage(id, a.Vitals.Energy-before+upkeep)
		}
		// The hunt timer only rises when an attack resets it.
		if a.Predator != nil && a.Predator.HuntTimer > huntTimer {
			s.collector.RecordAttack()
			s.lifetimeTracker.RecordAttack(id)
		}
		s.lifetimeTracker.UpdateEnergy(id, a.Vitals.Energy)
	}
}

// resolveInteractions resolves predation for colliding pairs.
func (s *Simulation) resolveInteractions() {
	s.grid.Clear()
	for i, a := range s.agents {
		if a.Vitals.Alive {
			s.grid.Insert(i, a.Pos.X, a.Pos.Y)
		}
	}

	s.events = systems.ResolveInteractions(s.events[:0], s.rng, s.tuning, s.agents, s.grid)
	for _, ev := range s.events {
		attacker := s.agents[ev.Attacker]
		s.collector.RecordPredation(attacker.Org.Variant, ev.Success)
		s.lifetimeTracker.RecordPredation(attacker.Org.ID, ev.Success)
		if ev.Success {
			s.lifetimeTracker.UpdateEnergy(attacker.Org.ID, attacker.Vitals.Energy)
		}
	}
}

// cleanupDead removes every agent whose Alive flag is false.
// Entities are collected first; the world cannot change during a query.
func (s *Simulation) cleanupDead() {
	s.dead = s.dead[:0]
	for _, a := range s.agents {
		if a.Vitals.Alive {
			continue
		}
		v := a.Org.Variant
		id := a.Org.ID

		s.lifetimeTracker.UpdateSurvivalTime(id, s.tick, s.tuning.DT)
		if stats := s.lifetimeTracker.Remove(id); stats != nil {
			s.hallOfFame.Consider(id, a.Org.Genome, stats)
		}
		s.collector.RecordDeath(v)
		s.counts[v]--
		s.dead = append(s.dead, a.Entity)
	}

	for _, e := range s.dead {
		s.world.RemoveEntity(e)
	}
}

// reproduce scans survivors in slot order, staging offspring, then adds them.
// Children never take part in the tick that created them.
func (s *Simulation) reproduce() {
	// Cleanup invalidated the component pointers.
	s.collectAgents()

	s.grid.Clear()
	for i, a := range s.agents {
		s.grid.Insert(i, a.Pos.X, a.Pos.Y)
	}

	s.staged = s.staged[:0]
	for i, a := range s.agents {
		if !systems.CanReproduce(s.tuning, a) || s.rng.Float32() >= s.tuning.ReproChance {
			continue
		}
		child, ok := systems.Reproduce(s.rng, s.tuning, a, s.findPartner(i), s.width, s.height)
		if !ok {
			continue
		}
		s.staged = append(s.staged, stagedChild{variant: a.Org.Variant, Offspring: child})
	}

	for _, c := range s.staged {
		s.addOffspring(c)
	}
}

// findPartner returns the first eligible agent of the same variant strictly
// closer than the pairing radius, in ascending slot order. It is not
// necessarily the nearest.
func (s *Simulation) findPartner(slot int) *systems.Agent {
	a := s.agents[slot]
	radius := s.tuning.PairingRadius
	s.neighbors = s.grid.QueryRadiusInto(s.neighbors[:0], a.Pos.X, a.Pos.Y, radius, slot)
	systems.SortByIndex(s.neighbors)

	for _, n := range s.neighbors {
		if n.DistSq >= radius*radius {
			continue
		}
		p := &s.agents[n.Index]
		if p.Org.Variant == a.Org.Variant && systems.CanReproduce(s.tuning, *p) {
			return p
		}
	}
	return nil
}

func (s *Simulation) addOffspring(c stagedChild) {
	b := systems.NewBlueprint(s.rng, s.tuning, c.variant, c.Genome, c.X, c.Y)
	b.Org.Generation = c.Generation
	id := s.createAgent(&b, c.ParentID)

	s.collector.RecordBirth(c.variant, c.Sexual)
	s.lifetimeTracker.RecordChild(c.ParentID)
	if c.PartnerID != 0 {
		s.lifetimeTracker.RecordChild(c.PartnerID)
	}

	slog.Debug("birth",
		"id", id,
		"variant", c.variant,
		"parent", c.ParentID,
		"partner", c.PartnerID,
		"generation", c.Generation,
		"tick", s.tick,
	)
}

// enforceFloors tops up every variant below its minimum with fresh founders,
// one batch at a time, until the floor holds or no tile accepts a spawn.
func (s *Simulation) enforceFloors() {
	for _, v := range components.Variants() {
		floor, batch := s.floor(v)
		for s.counts[v] < floor {
			spawned := 0
			for range batch {
				if _, ok := s.spawnFounder(v, false); ok {
					s.collector.RecordFloorSpawn(v)
					spawned++
				}
			}
			if spawned == 0 {
				break
			}
			slog.Info("population_floor_spawn",
				"variant", v,
				"spawned", spawned,
				"count", s.counts[v],
				"floor", floor,
				"tick", s.tick,
			)
		}
	}
}

// floor returns the minimum live count and top-up batch size for v.
func (s *Simulation) floor(v components.Variant) (minimum, batch int) {
	p := s.cfg.Population
	switch v {
	case components.Grazer:
		minimum, batch = p.MinGrazers, p.TopUpGrazers
	case components.Hunter:
		minimum, batch = p.MinHunters, p.TopUpHunters
	case components.Cannibal:
		minimum, batch = p.MinCannibals, p.TopUpCannibals
	}
	return minimum, max(batch, 1)
}

// refreshPopulation rebuilds the exposed snapshot and recounts variants.
func (s *Simulation) refreshPopulation() {
	s.population.Tick = s.tick
	s.population.Counts = [components.VariantCount]int{}
	s.population.Agents = s.population.Agents[:0]

	query := s.agentFilter.Query()
	for query.Next() {
		pos, _, rot, body, vitals, org := query.Get()
		if !vitals.Alive {
			continue
		}
		s.population.Counts[org.Variant]++
		s.population.Agents = append(s.population.Agents, AgentView{
			ID:        org.ID,
			Variant:   org.Variant,
			X:         pos.X,
			Y:         pos.Y,
			Angle:     rot.Angle,
			Size:      body.Size,
			Energy:    vitals.Energy,
			MaxEnergy: vitals.MaxEnergy,
			Alive:     vitals.Alive,
		})
	}
	s.counts = s.population.Counts
}
