package telemetry

import "github.com/pthm-cable/terrarium/components"

// LifetimeStats tracks per-agent statistics over its lifetime.
type LifetimeStats struct {
	Variant    components.Variant
	BirthTick  int32
	Generation uint32
	ParentID   uint32 // zero for founders
	Founder    bool   // initial, floor or manual spawn

	SurvivalTimeSec float32

	// Hunting (hunters and cannibals)
	PredationAttempts int
	Kills             int
	AttacksLanded     int

	// Reproduction
	Children int

	// Energy
	PeakEnergy   float32
	TotalForaged float32 // grazers only: cumulative energy gained from grass
}

// LifetimeTracker manages per-agent lifetime statistics keyed by organism ID.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new agent.
func (lt *LifetimeTracker) Register(id uint32, v components.Variant, birthTick int32, generation, parentID uint32) {
	lt.stats[id] = &LifetimeStats{
		Variant:    v,
		BirthTick:  birthTick,
		Generation: generation,
		ParentID:   parentID,
		Founder:    parentID == 0,
	}
}

// Get returns the lifetime stats for an agent, or nil if not found.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// Remove removes an agent's stats and returns them.
func (lt *LifetimeTracker) Remove(id uint32) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// RecordPredation counts a collision predation attempt and its outcome.
func (lt *LifetimeTracker) RecordPredation(id uint32, success bool) {
	if s := lt.stats[id]; s != nil {
		s.PredationAttempts++
		if success {
			s.Kills++
		}
	}
}

// RecordAttack counts a hunting attack reward.
func (lt *LifetimeTracker) RecordAttack(id uint32) {
	if s := lt.stats[id]; s != nil {
		s.AttacksLanded++
	}
}

// RecordChild increments children count.
func (lt *LifetimeTracker) RecordChild(parentID uint32) {
	if s := lt.stats[parentID]; s != nil {
		s.Children++
	}
}

// RecordForage adds foraging gain to cumulative total.
func (lt *LifetimeTracker) RecordForage(id uint32, amount float32) {
	if s := lt.stats[id]; s != nil && amount > 0 {
		s.TotalForaged += amount
	}
}

// UpdateEnergy tracks peak energy.
func (lt *LifetimeTracker) UpdateEnergy(id uint32, energy float32) {
	if s := lt.stats[id]; s != nil {
		if energy > s.PeakEnergy {
			s.PeakEnergy = energy
		}
	}
}

// UpdateSurvivalTime updates the survival time based on current tick.
func (lt *LifetimeTracker) UpdateSurvivalTime(id uint32, currentTick int32, dt float32) {
	if s := lt.stats[id]; s != nil {
		s.SurvivalTimeSec = float32(currentTick-s.BirthTick) * dt
	}
}

// All returns all tracked stats.
func (lt *LifetimeTracker) All() map[uint32]*LifetimeStats {
	return lt.stats
}

// Count returns the number of tracked agents.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// Fitness scores a finished life for the hall of fame.
func (s *LifetimeStats) Fitness() float32 {
	if s == nil {
		return 0
	}
	return float32(s.Children)*10 + float32(s.Kills)*5 + s.SurvivalTimeSec/10
}
