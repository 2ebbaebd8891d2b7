package systems

import "github.com/pthm-cable/terrarium/components"

// viewCellSize is the bucket size of the neighbor grid, in world units.
const viewCellSize = 64

// Sighting is an agent as seen at the start of the tick.
type Sighting struct {
	Slot    int
	Variant components.Variant
	X, Y    float32
	Size    float32
}

// Snapshot is the read-only view behaviors query for neighbors.
// Positions are frozen when captured so no agent observes another agent's
// in-progress update. Aliveness is read live: an agent that dies during the
// tick drops out of every later query.
type Snapshot struct {
	grid    *SpatialGrid
	entries []Sighting
	vitals  []*components.Vitals
	scratch []Neighbor
}

// NewSnapshot creates an empty view over a world of the given size.
func NewSnapshot(width, height float32) *Snapshot {
	return &Snapshot{grid: NewSpatialGrid(width, height, viewCellSize)}
}

// Capture records the current state of agents. agents[i].Slot must equal i.
func (s *Snapshot) Capture(agents []Agent) {
	s.grid.Clear()
	s.entries = s.entries[:0]
	s.vitals = s.vitals[:0]
	for i, a := range agents {
		s.entries = append(s.entries, Sighting{
			Slot:    i,
			Variant: a.Org.Variant,
			X:       a.Pos.X,
			Y:       a.Pos.Y,
			Size:    a.Body.Size,
		})
		s.vitals = append(s.vitals, a.Vitals)
		if a.Vitals.Alive {
			s.grid.Insert(i, a.Pos.X, a.Pos.Y)
		}
	}
}

// Len returns the number of captured agents, dead ones included.
func (s *Snapshot) Len() int {
	return len(s.entries)
}

// Nearest returns the closest live agent within radius of (x, y) whose
// variant satisfies match, excluding slot self. Ties go to the lower slot.
func (s *Snapshot) Nearest(x, y, radius float32, self int, match func(components.Variant) bool) (Sighting, bool) {
	s.scratch = s.grid.QueryRadiusInto(s.scratch[:0], x, y, radius, self)

	best := -1
	var bestDist float32
	for _, n := range s.scratch {
		if !s.vitals[n.Index].Alive || !match(s.entries[n.Index].Variant) {
			continue
		}
		if best < 0 || n.DistSq < bestDist || (n.DistSq == bestDist && n.Index < best) {
			best = n.Index
			bestDist = n.DistSq
		}
	}
	if best < 0 {
		return Sighting{}, false
	}
	return s.entries[best], true
}
