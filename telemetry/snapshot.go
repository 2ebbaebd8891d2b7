package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/genetics"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the live population at one tick.
type Snapshot struct {
	Version int    `json:"version"`
	RunID   string `json:"run_id"`
	RNGSeed int64  `json:"rng_seed"`

	WorldWidth  int `json:"world_width"`  // tiles
	WorldHeight int `json:"world_height"` // tiles

	Tick   int32          `json:"tick"`
	Counts map[string]int `json:"counts"`

	Agents []AgentState `json:"agents"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// AgentState holds one agent's complete state.
type AgentState struct {
	ID      uint32             `json:"id"`
	Variant components.Variant `json:"variant"`

	// Position and movement
	X     float32 `json:"x"`
	Y     float32 `json:"y"`
	VelX  float32 `json:"vel_x"`
	VelY  float32 `json:"vel_y"`
	Angle float32 `json:"angle"`
	Size  float32 `json:"size"`

	// Vitals
	Energy     float32 `json:"energy"`
	MaxEnergy  float32 `json:"max_energy"`
	Age        float32 `json:"age"`
	MaxAge     float32 `json:"max_age"`
	ReproTimer float32 `json:"repro_timer"`
	Generation uint32  `json:"generation"`

	Genome *genetics.Genome `json:"genome"`

	Lifetime *LifetimeStatsJSON `json:"lifetime,omitempty"`
}

// LifetimeStatsJSON is the JSON-serializable form of LifetimeStats.
type LifetimeStatsJSON struct {
	BirthTick         int32   `json:"birth_tick"`
	ParentID          uint32  `json:"parent_id,omitempty"`
	SurvivalTimeSec   float32 `json:"survival_time_sec"`
	PredationAttempts int     `json:"predation_attempts"`
	Kills             int     `json:"kills"`
	AttacksLanded     int     `json:"attacks_landed"`
	Children          int     `json:"children"`
	PeakEnergy        float32 `json:"peak_energy"`
	TotalForaged      float32 `json:"total_foraged"`
}

// ToJSON converts LifetimeStats to its JSON form.
func (ls *LifetimeStats) ToJSON() *LifetimeStatsJSON {
	if ls == nil {
		return nil
	}
	return &LifetimeStatsJSON{
		BirthTick:         ls.BirthTick,
		ParentID:          ls.ParentID,
		SurvivalTimeSec:   ls.SurvivalTimeSec,
		PredationAttempts: ls.PredationAttempts,
		Kills:             ls.Kills,
		AttacksLanded:     ls.AttacksLanded,
		Children:          ls.Children,
		PeakEnergy:        ls.PeakEnergy,
		TotalForaged:      ls.TotalForaged,
	}
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
