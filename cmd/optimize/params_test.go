package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/telemetry"
)

func TestDefaultsMatchEmbeddedConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	pv := NewParamVector()
	got := pv.ExtractFromConfig(cfg)
	for i, spec := range pv.Specs {
		if math.Abs(got[i]-spec.Default) > 1e-9 {
			t.Errorf("%s: config has %v, param default %v", spec.Path, got[i], spec.Default)
		}
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	pv := NewParamVector()
	values := make([]float64, pv.Dim())
	for i := range values {
		values[i] = 1e6
	}
	pv.ApplyToConfig(cfg, values)

	got := pv.ExtractFromConfig(cfg)
	for i, spec := range pv.Specs {
		if got[i] != spec.Max {
			t.Errorf("%s = %v, want clamped to %v", spec.Path, got[i], spec.Max)
		}
	}
}

func TestNormalizeBounds(t *testing.T) {
	pv := NewParamVector()
	lo := make([]float64, pv.Dim())
	hi := make([]float64, pv.Dim())
	for i, spec := range pv.Specs {
		lo[i], hi[i] = spec.Min, spec.Max
	}
	for i, v := range pv.Normalize(lo) {
		if v != 0 {
			t.Errorf("%s: Normalize(min) = %v, want 0", pv.Specs[i].Name, v)
		}
	}
	for i, v := range pv.Denormalize(pv.Normalize(hi)) {
		if math.Abs(v-hi[i]) > 1e-9 {
			t.Errorf("%s: round trip of max = %v, want %v", pv.Specs[i].Name, v, hi[i])
		}
	}
}

func TestComputeQuality(t *testing.T) {
	fe := &FitnessEvaluator{}
	healthy := telemetry.WindowStats{
		Grazers:           30,
		Hunters:           8,
		Cannibals:         2,
		GrazerEnergyP50:   0.5,
		HunterEnergyP50:   0.5,
		PredationAttempts: 20,
		KillRate:          0.35,
	}

	tests := []struct {
		name    string
		windows []telemetry.WindowStats
		wantMin float64
		wantMax float64
	}{
		{"too few windows", []telemetry.WindowStats{healthy, healthy}, 0, 0},
		{"collapsed", []telemetry.WindowStats{{}, {}, {}, {}, {}}, 0, 0},
		{"steady and on target", []telemetry.WindowStats{healthy, healthy, healthy, healthy, healthy, healthy}, 0.99, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fe.computeQuality(tt.windows)
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("computeQuality() = %v, want in [%v, %v]", got, tt.wantMin, tt.wantMax)
			}
		})
	}
}
