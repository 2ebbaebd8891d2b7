package telemetry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"sort"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/genetics"
)

// HallEntry is a genome that lived a successful life.
type HallEntry struct {
	Genome     *genetics.Genome `json:"genome"`
	Fitness    float32          `json:"fitness"`
	AgentID    uint32           `json:"agent_id"`
	Generation uint32           `json:"generation"`
	Children   int              `json:"children"`
	Kills      int              `json:"kills"`
	Survival   float32          `json:"survival_sec"`
	Foraging   float32          `json:"foraging"`
}

// HallOfFame keeps the fittest genomes of each variant, best first.
type HallOfFame struct {
	halls   [components.VariantCount][]HallEntry
	maxSize int
	rng     *rand.Rand
}

// NewHallOfFame creates a hall of fame with the given capacity per variant.
func NewHallOfFame(maxSize int, rng *rand.Rand) *HallOfFame {
	if maxSize < 1 {
		maxSize = 1
	}
	hof := &HallOfFame{maxSize: maxSize, rng: rng}
	for i := range hof.halls {
		hof.halls[i] = make([]HallEntry, 0, maxSize)
	}
	return hof
}

// Consider evaluates a dead agent for entry. An agent qualifies once it has
// produced a child or made a kill. Returns true if it was added.
func (hof *HallOfFame) Consider(id uint32, g *genetics.Genome, stats *LifetimeStats) bool {
	if stats == nil || g == nil {
		return false
	}
	if stats.Children == 0 && stats.Kills == 0 {
		return false
	}

	entry := HallEntry{
		Genome:     g.Clone(),
		Fitness:    stats.Fitness(),
		AgentID:    id,
		Generation: stats.Generation,
		Children:   stats.Children,
		Kills:      stats.Kills,
		Survival:   stats.SurvivalTimeSec,
		Foraging:   stats.TotalForaged,
	}

	hof.halls[stats.Variant] = hof.insertEntry(hof.halls[stats.Variant], entry)
	return hof.contains(stats.Variant, id)
}

func (hof *HallOfFame) contains(v components.Variant, id uint32) bool {
	for _, e := range hof.halls[v] {
		if e.AgentID == id {
			return true
		}
	}
	return false
}

// insertEntry adds an entry to the hall, maintaining sorted order by fitness.
// If the hall is full, the lowest-fitness entry is removed.
func (hof *HallOfFame) insertEntry(hall []HallEntry, entry HallEntry) []HallEntry {
	idx := sort.Search(len(hall), func(i int) bool {
		return hall[i].Fitness < entry.Fitness
	})

	if len(hall) >= hof.maxSize && idx >= hof.maxSize {
		return hall
	}

	hall = append(hall, HallEntry{})
	copy(hall[idx+1:], hall[idx:])
	hall[idx] = entry

	if len(hall) > hof.maxSize {
		hall = hall[:hof.maxSize]
	}
	return hall
}

// Sample picks a genome of variant v by tournament selection and returns a
// copy. Returns nil if the hall is empty.
func (hof *HallOfFame) Sample(v components.Variant) *genetics.Genome {
	hall := hof.halls[v]
	if len(hall) == 0 {
		return nil
	}

	const tournamentSize = 3
	best := -1
	for i := 0; i < tournamentSize && i < len(hall); i++ {
		idx := hof.rng.Intn(len(hall))
		if best < 0 || hall[idx].Fitness > hall[best].Fitness {
			best = idx
		}
	}
	return hall[best].Genome.Clone()
}

// Size returns the number of entries for v.
func (hof *HallOfFame) Size(v components.Variant) int {
	return len(hof.halls[v])
}

// TopFitness returns the highest fitness for v, or 0 if the hall is empty.
func (hof *HallOfFame) TopFitness(v components.Variant) float32 {
	if len(hof.halls[v]) == 0 {
		return 0
	}
	return hof.halls[v][0].Fitness
}

// MarshalJSON serializes the halls keyed by variant name.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	export := make(map[string][]HallEntry, components.VariantCount)
	for _, v := range components.Variants() {
		export[v.String()] = hof.halls[v]
	}
	return json.MarshalIndent(export, "", "  ")
}

// LoadHallOfFame reads a hall of fame written by MarshalJSON.
func LoadHallOfFame(path string, maxSize int, rng *rand.Rand) (*HallOfFame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hall of fame: %w", err)
	}

	var raw map[string][]HallEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing hall of fame JSON: %w", err)
	}

	for _, entries := range raw {
		maxSize = max(maxSize, len(entries))
	}
	hof := NewHallOfFame(maxSize, rng)

	for name, entries := range raw {
		v, ok := components.ParseVariant(name)
		if !ok {
			slog.Warn("hall_of_fame_load: unknown variant, skipping", "variant", name)
			continue
		}
		for _, e := range entries {
			if e.Genome == nil {
				continue
			}
			hof.halls[v] = hof.insertEntry(hof.halls[v], e)
		}
	}
	return hof, nil
}
