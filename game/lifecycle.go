package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/genetics"
	"github.com/pthm-cable/terrarium/systems"
	"github.com/pthm-cable/terrarium/terrain"
)

// BuildTerrain loads the configured map, or generates one from seed.
// The returned source names the map path or generator.
func BuildTerrain(cfg *config.Config, seed int64) (*terrain.Grid, string, error) {
	tc := cfg.Terrain
	if tc.Path != "" {
		grid, err := terrain.Load(tc.Path)
		if err != nil {
			return nil, "", err
		}
		return grid, tc.Path, nil
	}

	w, h := cfg.World.Width, cfg.World.Height
	switch tc.Generator {
	case "noise":
		n := tc.Noise
		return terrain.GenerateNoise(w, h, seed, terrain.NoiseParams{
			Scale:      n.Scale,
			Octaves:    n.Octaves,
			Lacunarity: n.Lacunarity,
			Gain:       n.Gain,
			WaterLevel: n.WaterLevel,
			SandLevel:  n.SandLevel,
			HillLevel:  n.HillLevel,
			PeakLevel:  n.PeakLevel,
			ForestWet:  n.ForestWet,
			DirtDry:    n.DirtDry,
		}), "noise", nil
	case "patches", "":
		layers, err := PatchLayers(tc.Patches)
		if err != nil {
			return nil, "", err
		}
		rng := rand.New(rand.NewSource(seed))
		return terrain.GeneratePatches(w, h, rng, layers), "patches", nil
	default:
		return nil, "", fmt.Errorf("unknown terrain generator %q", tc.Generator)
	}
}

// PatchLayers converts configured patch layers.
func PatchLayers(cfgs []config.PatchConfig) ([]terrain.Patch, error) {
	layers := make([]terrain.Patch, 0, len(cfgs))
	for _, pc := range cfgs {
		kind, err := terrain.ParseKind(pc.Kind)
		if err != nil {
			return nil, fmt.Errorf("terrain patch: %w", err)
		}
		layers = append(layers, terrain.Patch{
			Kind:     kind,
			Coverage: pc.Coverage,
			MinSize:  pc.MinSize,
			MaxSize:  pc.MaxSize,
		})
	}
	return layers, nil
}

// seedPopulation spawns the configured initial founders.
func (s *Simulation) seedPopulation() {
	p := s.cfg.Population
	initial := [components.VariantCount]int{
		components.Grazer:   p.InitialGrazers,
		components.Hunter:   p.InitialHunters,
		components.Cannibal: p.InitialCannibal,
	}
	for _, v := range components.Variants() {
		for range initial[v] {
			s.spawnFounder(v, true)
		}
	}
}

// Spawn adds a fresh founder of variant v on a random non-water tile.
func (s *Simulation) Spawn(v components.Variant) (uint32, bool) {
	id, ok := s.spawnFounder(v, false)
	if ok {
		s.refreshPopulation()
	}
	return id, ok
}

// SpawnAt adds a fresh founder at (x, y). It refuses water tiles.
func (s *Simulation) SpawnAt(v components.Variant, x, y float32) (uint32, bool) {
	if terrain.KindAt(s.terrain, x, y) == terrain.Water {
		return 0, false
	}
	b := systems.NewBlueprint(s.rng, s.tuning, v, systems.FounderGenome(s.rng, v), x, y)
	id := s.createAgent(&b, 0)
	s.refreshPopulation()
	return id, true
}

// spawnFounder places a parentless agent by rejection sampling tiles.
// Initial founders draw from the loaded hall of fame when there is one.
func (s *Simulation) spawnFounder(v components.Variant, initial bool) (uint32, bool) {
	x, y, ok := s.findSpawnTile()
	if !ok {
		slog.Warn("spawn_rejected",
			"variant", v,
			"attempts", s.cfg.Population.SpawnAttempts,
			"tick", s.tick,
		)
		return 0, false
	}

	var g *genetics.Genome
	if initial && s.founderPool != nil && s.founderPool.Size(v) > 0 {
		g = s.founderPool.Sample(v)
		g.MutateWith(s.rng, s.tuning.Rates)
	} else {
		g = systems.FounderGenome(s.rng, v)
	}

	b := systems.NewBlueprint(s.rng, s.tuning, v, g, x, y)
	return s.createAgent(&b, 0), true
}

// findSpawnTile samples random tiles until one is not water and returns its
// center.
func (s *Simulation) findSpawnTile() (x, y float32, ok bool) {
	w, h := s.terrain.Width(), s.terrain.Height()
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	for range s.cfg.Population.SpawnAttempts {
		tx, ty := s.rng.Intn(w), s.rng.Intn(h)
		if s.terrain.Classify(tx, ty) != terrain.Water {
			x, y = terrain.TileCenter(tx, ty)
			return x, y, true
		}
	}
	return 0, 0, false
}

// createAgent assigns an ID and adds the blueprint to the world.
func (s *Simulation) createAgent(b *systems.Blueprint, parentID uint32) uint32 {
	s.nextID++
	b.Org.ID = s.nextID

	v := b.Org.Variant
	if v == components.Grazer {
		s.grazerMapper.NewEntity(&b.Pos, &b.Vel, &b.Rot, &b.Body, &b.Vitals, &b.Org, &b.Forager)
	} else {
		s.predatorMapper.NewEntity(&b.Pos, &b.Vel, &b.Rot, &b.Body, &b.Vitals, &b.Org, &b.Predator)
	}

	s.lifetimeTracker.Register(b.Org.ID, v, s.tick, b.Org.Generation, parentID)
	s.counts[v]++
	return b.Org.ID
}
