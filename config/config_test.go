package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World.Width != 50 || cfg.World.Height != 50 {
		t.Errorf("world = %dx%d, want 50x50", cfg.World.Width, cfg.World.Height)
	}
	if cfg.Derived.WorldW32 != 50*32 {
		t.Errorf("WorldW32 = %v, want %v", cfg.Derived.WorldW32, 50*32)
	}
	if cfg.Derived.WindowTicks != 600 {
		t.Errorf("WindowTicks = %d, want 600", cfg.Derived.WindowTicks)
	}
	if cfg.Derived.SnapshotTick != 0 {
		t.Errorf("SnapshotTick = %d, want 0 when disabled", cfg.Derived.SnapshotTick)
	}
	if len(cfg.Terrain.Patches) != 6 {
		t.Errorf("patch layers = %d, want 6", len(cfg.Terrain.Patches))
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	path := writeFile(t, "world:\n  width: 20\ngrazer:\n  max_speed: 90\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World.Width != 20 {
		t.Errorf("width = %d, want 20", cfg.World.Width)
	}
	if cfg.World.Height != 50 {
		t.Errorf("height = %d, want default 50", cfg.World.Height)
	}
	if cfg.Grazer.MaxSpeed != 90 {
		t.Errorf("grazer max_speed = %v, want 90", cfg.Grazer.MaxSpeed)
	}
	if cfg.Grazer.Size != 4 {
		t.Errorf("grazer size = %v, want default 4", cfg.Grazer.Size)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"zero width", "world:\n  width: 0\n", "world size"},
		{"negative dt", "world:\n  dt: -1\n", "dt"},
		{"negative floor", "population:\n  min_hunters: -1\n", "floors"},
		{"zero top up", "population:\n  top_up_grazers: 0\n", "top_up_grazers"},
		{"bad yaml", "world: [", "parsing config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.yaml))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cp := cfg.Clone()
	cp.Terrain.Patches[0].Coverage = 0.99
	cp.Hunter.MaxSpeed = 1

	if cfg.Terrain.Patches[0].Coverage == 0.99 {
		t.Error("Clone shares patch layers with the original")
	}
	if cfg.Hunter.MaxSpeed == 1 {
		t.Error("Clone shares hunter config with the original")
	}
}

func TestRecomputeSnapshotTicks(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Telemetry.SnapshotEvery = 2
	cfg.Recompute()
	if cfg.Derived.SnapshotTick != 120 {
		t.Errorf("SnapshotTick = %d, want 120", cfg.Derived.SnapshotTick)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Cannibal.CannibalBase = 0.45

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load written: %v", err)
	}
	if loaded.Cannibal.CannibalBase != 0.45 {
		t.Errorf("cannibal_base = %v, want 0.45", loaded.Cannibal.CannibalBase)
	}
}
