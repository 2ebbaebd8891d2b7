package inspector

import "github.com/pthm-cable/terrarium/game"

// Pick returns the live agent closest to (wx, wy) whose body, grown by
// tolerance, contains the point.
func Pick(pop game.PopulationSnapshot, wx, wy, tolerance float32) (uint32, bool) {
	var (
		closest uint32
		found   bool
	)
	closestDist := float32(1e12)

	for _, a := range pop.Agents {
		if !a.Alive {
			continue
		}
		dx := wx - a.X
		dy := wy - a.Y
		dist := dx*dx + dy*dy

		hit := a.Size + tolerance
		if dist < hit*hit && dist < closestDist {
			closest = a.ID
			closestDist = dist
			found = true
		}
	}
	return closest, found
}

// Sections returns the inspectable sections of an agent.
func Sections(d *game.AgentDetail) []Section {
	return ExtractSections(d.Components()...)
}
