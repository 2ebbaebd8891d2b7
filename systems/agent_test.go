package systems

import (
	"testing"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/terrain"
)

func TestUpdateAgent_DeadNoOp(t *testing.T) {
	env := testEnv(terrain.Grass, 1)
	for _, v := range components.Variants() {
		bp := newTestAgent(env.Tuning, v, 300, 300)
		bp.Vel = components.Velocity{X: 5, Y: -3}
		bp.Vitals.Alive = false
		bp.Vitals.Energy = 10
		bp.Vitals.Age = 4
		before := *bp

		UpdateAgent(env, bp.Agent(), testDT)

		if bp.Pos != before.Pos || bp.Vel != before.Vel || bp.Vitals != before.Vitals || bp.Rot != before.Rot {
			t.Errorf("%v: dead agent changed: before %+v after %+v", v, before, *bp)
		}
	}
}

func TestUpdateAgent_AgeDeath(t *testing.T) {
	env := testEnv(terrain.Dirt, 1)
	bp := newTestAgent(env.Tuning, components.Hunter, 300, 300)
	bp.Vitals.Energy = bp.Vitals.MaxEnergy
	bp.Vitals.Age = bp.Vitals.MaxAge - testDT/2

	UpdateAgent(env, bp.Agent(), testDT)

	if bp.Vitals.Alive {
		t.Fatal("agent past max age should be dead")
	}
	if bp.Vitals.Energy != bp.Vitals.MaxEnergy {
		t.Errorf("aging out should not spend energy, got %v", bp.Vitals.Energy)
	}
}

func TestUpdateAgent_EnergyDeath(t *testing.T) {
	env := testEnv(terrain.Dirt, 1)
	bp := newTestAgent(env.Tuning, components.Grazer, 300, 300)
	bp.Vitals.Energy = 0.001

	UpdateAgent(env, bp.Agent(), testDT)

	if bp.Vitals.Alive {
		t.Fatal("agent with exhausted energy should be dead")
	}
	if bp.Vitals.Energy != 0 {
		t.Errorf("energy should be clamped to 0, got %v", bp.Vitals.Energy)
	}
}

func TestUpdateAgent_Consumption(t *testing.T) {
	env := testEnv(terrain.Dirt, 1)
	bp := newTestAgent(env.Tuning, components.Grazer, 300, 300)
	bp.Vitals.Energy = bp.Vitals.MaxEnergy
	before := bp.Vitals.Energy

	UpdateAgent(env, bp.Agent(), testDT)

	want := before - testDT*(0.5+bp.Body.Size*0.1)
	if !approxEqual(bp.Vitals.Energy, want, 1e-4) {
		t.Errorf("energy = %v, want %v", bp.Vitals.Energy, want)
	}
	if !approxEqual(bp.Vitals.Age, testDT, 1e-7) {
		t.Errorf("age = %v, want %v", bp.Vitals.Age, testDT)
	}
}

func TestCheckWorldBounds(t *testing.T) {
	tests := []struct {
		name      string
		x, y      float32
		vx, vy    float32
		angle     float32
		wantX     float32
		wantY     float32
		wantVX    float32
		wantVY    float32
		wantAngle float32
	}{
		{"left", 1, 100, -10, 0, 170, 5, 100, 5, 0, 10},
		{"right", 199, 100, 10, 0, 10, 195, 100, -5, 0, 170},
		{"top", 100, 2, 0, -10, 270, 100, 5, 0, 5, 90},
		{"bottom", 100, 199, 0, 8, 90, 100, 195, 0, -4, 270},
		{"inside", 100, 100, 3, 4, 45, 100, 100, 3, 4, 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Blueprint{
				Pos:  components.Position{X: tt.x, Y: tt.y},
				Vel:  components.Velocity{X: tt.vx, Y: tt.vy},
				Rot:  components.Rotation{Angle: tt.angle},
				Body: components.Body{Size: 5},
			}
			checkWorldBounds(b.Agent(), 200, 200)
			if b.Pos.X != tt.wantX || b.Pos.Y != tt.wantY {
				t.Errorf("pos = (%v,%v), want (%v,%v)", b.Pos.X, b.Pos.Y, tt.wantX, tt.wantY)
			}
			if b.Vel.X != tt.wantVX || b.Vel.Y != tt.wantVY {
				t.Errorf("vel = (%v,%v), want (%v,%v)", b.Vel.X, b.Vel.Y, tt.wantVX, tt.wantVY)
			}
			if !approxEqual(b.Rot.Angle, tt.wantAngle, 1e-4) {
				t.Errorf("angle = %v, want %v", b.Rot.Angle, tt.wantAngle)
			}
		})
	}
}

func TestApplyTerrain(t *testing.T) {
	tests := []struct {
		kind       terrain.Kind
		wantScale  float32
		wantEnergy float32
	}{
		{terrain.Grass, 1, 50},
		{terrain.Forest, 1, 50},
		{terrain.Water, 0.9, 50},
		{terrain.Mountain, 0.7, 50},
		{terrain.Snow, 0.8, 49.95},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			env := testEnv(tt.kind, 1)
			bp := newTestAgent(env.Tuning, components.Grazer, 300, 300)
			bp.Vitals.Energy = 50
			bp.Vel = components.Velocity{X: 10, Y: -20}

			applyTerrain(env, bp.Agent())

			if !approxEqual(bp.Vel.X, 10*tt.wantScale, 1e-5) || !approxEqual(bp.Vel.Y, -20*tt.wantScale, 1e-5) {
				t.Errorf("vel = (%v,%v), want scale %v", bp.Vel.X, bp.Vel.Y, tt.wantScale)
			}
			if !approxEqual(bp.Vitals.Energy, tt.wantEnergy, 1e-4) {
				t.Errorf("energy = %v, want %v", bp.Vitals.Energy, tt.wantEnergy)
			}
		})
	}
}

func TestSnowDrainClampsAtZero(t *testing.T) {
	env := testEnv(terrain.Snow, 1)
	bp := newTestAgent(env.Tuning, components.Grazer, 300, 300)
	bp.Vitals.Energy = 0.01

	applyTerrain(env, bp.Agent())

	if bp.Vitals.Energy != 0 {
		t.Errorf("energy = %v, want 0", bp.Vitals.Energy)
	}
}

func TestUpdateAgent_ReproTimerAdvances(t *testing.T) {
	env := testEnv(terrain.Dirt, 1)
	for _, v := range components.Variants() {
		bp := newTestAgent(env.Tuning, v, 300, 300)
		bp.Org.ReproTimer = 1
		UpdateAgent(env, bp.Agent(), testDT)
		if !approxEqual(bp.Org.ReproTimer, 1-testDT, 1e-6) {
			t.Errorf("%v: repro timer = %v, want %v", v, bp.Org.ReproTimer, 1-testDT)
		}
	}
}
