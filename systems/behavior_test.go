package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/terrain"
)

func TestLerpAngleDeg(t *testing.T) {
	tests := []struct {
		from, to, progress float32
		want               float32
	}{
		{0, 90, 1, 90},
		{90, 0, 0.5, 45},
		{350, 10, 0.5, 0},
		{10, 350, 0.5, 0},
		{180, 180, 0.3, 180},
		{0, 270, 0.5, 315},
	}
	for _, tt := range tests {
		got := lerpAngleDeg(tt.from, tt.to, tt.progress)
		if !approxEqual(got, tt.want, 1e-3) {
			t.Errorf("lerpAngleDeg(%v, %v, %v) = %v, want %v", tt.from, tt.to, tt.progress, got, tt.want)
		}
	}
}

func TestGrazerFeedsOnGrass(t *testing.T) {
	env := testEnv(terrain.Grass, 1)
	bp := newTestAgent(env.Tuning, components.Grazer, 800, 800)
	bp.Vitals.Energy = bp.Vitals.MaxEnergy * 0.3
	bp.Vel = components.Velocity{X: 10, Y: 0}
	a := bp.Agent()

	start := bp.Vitals.Energy
	consumption := env.Tuning.BaseConsumption + bp.Body.Size*env.Tuning.SizeConsumption

	UpdateAgent(env, a, testDT)
	if !bp.Forager.Feeding {
		t.Fatal("hungry grazer on grass should be feeding")
	}
	if speed := velocityMagnitude(bp.Vel.X, bp.Vel.Y); speed > 0.3*10+1e-4 {
		t.Errorf("speed after feeding = %v, want <= %v", speed, 0.3*10)
	}

	ticks := 60
	for i := 1; i < ticks; i++ {
		UpdateAgent(env, a, testDT)
	}
	elapsed := float32(ticks) * testDT

	fed := bp.Vitals.Energy - start + elapsed*consumption
	if !approxEqual(fed, 10*elapsed, 1e-2) {
		t.Errorf("energy fed over %vs = %v, want %v", elapsed, fed, 10*elapsed)
	}
}

func TestGrazerFeedingCappedAtMax(t *testing.T) {
	env := testEnv(terrain.Grass, 1)
	env.Tuning.Variants[components.Grazer].FeedRate = 1e6
	bp := newTestAgent(env.Tuning, components.Grazer, 800, 800)
	bp.Vitals.Energy = bp.Vitals.MaxEnergy * 0.5

	UpdateAgent(env, bp.Agent(), testDT)

	if bp.Vitals.Energy != bp.Vitals.MaxEnergy {
		t.Errorf("energy = %v, want capped at %v", bp.Vitals.Energy, bp.Vitals.MaxEnergy)
	}
}

func TestGrazerFleesThreat(t *testing.T) {
	env := testEnv(terrain.Dirt, 1)
	grazer := newTestAgent(env.Tuning, components.Grazer, 500, 500)
	grazer.Rot.Angle = 180
	hunter := newTestAgent(env.Tuning, components.Hunter, 550, 500)

	agents := agentList([]*Blueprint{grazer, hunter})
	env.View = NewSnapshot(env.Width, env.Height)
	env.View.Capture(agents)

	before := grazer.Vitals.Energy
	UpdateAgent(env, agents[0], testDT)

	if !grazer.Forager.Fleeing {
		t.Fatal("grazer should flee a hunter in range")
	}
	if grazer.Vel.X >= 0 {
		t.Errorf("grazer should move away from the hunter, vel.X = %v", grazer.Vel.X)
	}
	wantSpeed := grazer.Body.MaxSpeed * 1.2
	if speed := velocityMagnitude(grazer.Vel.X, grazer.Vel.Y); !approxEqual(speed, wantSpeed, 1e-3) {
		t.Errorf("flee speed = %v, want %v", speed, wantSpeed)
	}
	consumption := env.Tuning.BaseConsumption + grazer.Body.Size*env.Tuning.SizeConsumption
	want := before - testDT*consumption - testDT*0.5
	if !approxEqual(grazer.Vitals.Energy, want, 1e-4) {
		t.Errorf("energy = %v, want %v", grazer.Vitals.Energy, want)
	}
}

func TestGrazerIgnoresDeadThreat(t *testing.T) {
	env := testEnv(terrain.Dirt, 1)
	grazer := newTestAgent(env.Tuning, components.Grazer, 500, 500)
	hunter := newTestAgent(env.Tuning, components.Hunter, 550, 500)

	agents := agentList([]*Blueprint{grazer, hunter})
	env.View = NewSnapshot(env.Width, env.Height)
	env.View.Capture(agents)
	hunter.Vitals.Die()

	UpdateAgent(env, agents[0], testDT)

	if grazer.Forager.Fleeing {
		t.Error("grazer fled from a dead hunter")
	}
}

func TestGrazerWanderSpeed(t *testing.T) {
	env := testEnv(terrain.Dirt, 1)
	bp := newTestAgent(env.Tuning, components.Grazer, 500, 500)
	bp.Vitals.Energy = bp.Vitals.MaxEnergy

	UpdateAgent(env, bp.Agent(), testDT)

	want := bp.Body.MaxSpeed * 0.5
	if speed := velocityMagnitude(bp.Vel.X, bp.Vel.Y); !approxEqual(speed, want, 1e-3) {
		t.Errorf("wander speed = %v, want %v", speed, want)
	}
}

func TestGrazerSeeksNearestFood(t *testing.T) {
	g := terrain.NewGrid(50, 50, terrain.Dirt)
	g.Set(12, 10, terrain.Grass)
	env := NewEnv(g, DefaultTuning(), rand.New(rand.NewSource(1)))

	bp := newTestAgent(env.Tuning, components.Grazer, 10*32+16, 10*32+16)
	bp.Vitals.Energy = bp.Vitals.MaxEnergy * 0.3
	bp.Rot.Angle = 0

	UpdateAgent(env, bp.Agent(), testDT)

	if bp.Vel.X <= 0 || !approxEqual(bp.Vel.Y, 0, 1e-3) {
		t.Errorf("grazer should head east toward food, vel = (%v,%v)", bp.Vel.X, bp.Vel.Y)
	}
	if speed := velocityMagnitude(bp.Vel.X, bp.Vel.Y); !approxEqual(speed, bp.Body.MaxSpeed, 1e-3) {
		t.Errorf("seek speed = %v, want %v", speed, bp.Body.MaxSpeed)
	}
}

func TestNearestFood(t *testing.T) {
	g := terrain.NewGrid(50, 50, terrain.Sand)
	g.Set(5, 5, terrain.Forest)
	g.Set(8, 5, terrain.Grass)

	tests := []struct {
		name   string
		x, y   float32
		rng    float32
		wantOK bool
		wantX  float32
		wantY  float32
	}{
		{"closest forest", 6*32 + 16, 5*32 + 16, 100, true, 5*32 + 16, 5*32 + 16},
		{"closest grass", 9*32 + 16, 5*32 + 16, 100, true, 8*32 + 16, 5*32 + 16},
		{"out of range", 20*32 + 16, 20*32 + 16, 100, false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := NearestFood(g, tt.x, tt.y, tt.rng)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (x != tt.wantX || y != tt.wantY) {
				t.Errorf("food at (%v,%v), want (%v,%v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestHunterAttacksInRange(t *testing.T) {
	env := testEnv(terrain.Dirt, 1)
	hunter := newTestAgent(env.Tuning, components.Hunter, 500, 500)
	hunter.Vitals.Energy = hunter.Vitals.MaxEnergy * 0.2
	grazer := newTestAgent(env.Tuning, components.Grazer, 505, 500)

	agents := agentList([]*Blueprint{hunter, grazer})
	env.View = NewSnapshot(env.Width, env.Height)
	env.View.Capture(agents)

	before := hunter.Vitals.Energy
	UpdateAgent(env, agents[0], testDT)

	consumption := env.Tuning.BaseConsumption + hunter.Body.Size*env.Tuning.SizeConsumption
	want := before - testDT*consumption + hunter.Predator.AttackStrength
	if !approxEqual(hunter.Vitals.Energy, want, 1e-3) {
		t.Errorf("energy = %v, want %v", hunter.Vitals.Energy, want)
	}
	if hunter.Predator.HuntTimer != hunter.Predator.HuntCooldown {
		t.Errorf("hunt timer = %v, want %v", hunter.Predator.HuntTimer, hunter.Predator.HuntCooldown)
	}
	if !grazer.Vitals.Alive {
		t.Error("an attack must not kill; kills come from collisions")
	}

	// On cooldown the next tick gains nothing from the attack.
	before = hunter.Vitals.Energy
	UpdateAgent(env, agents[0], testDT)
	if hunter.Vitals.Energy >= before {
		t.Errorf("attack on cooldown should not add energy: %v -> %v", before, hunter.Vitals.Energy)
	}
}

func TestHunterWandersWithoutPrey(t *testing.T) {
	env := testEnv(terrain.Dirt, 1)
	hunter := newTestAgent(env.Tuning, components.Hunter, 500, 500)
	hunter.Vitals.Energy = hunter.Vitals.MaxEnergy * 0.2
	other := newTestAgent(env.Tuning, components.Hunter, 520, 500)

	agents := agentList([]*Blueprint{hunter, other})
	env.View = NewSnapshot(env.Width, env.Height)
	env.View.Capture(agents)

	UpdateAgent(env, agents[0], testDT)

	if hunter.Predator.Hunting {
		t.Error("hunters do not hunt other hunters")
	}
	want := hunter.Body.MaxSpeed * 0.5
	if speed := velocityMagnitude(hunter.Vel.X, hunter.Vel.Y); !approxEqual(speed, want, 1e-3) {
		t.Errorf("speed = %v, want wander speed %v", speed, want)
	}
}

func TestCannibalHuntsHunters(t *testing.T) {
	env := testEnv(terrain.Dirt, 1)
	cannibal := newTestAgent(env.Tuning, components.Cannibal, 500, 500)
	cannibal.Vitals.Energy = cannibal.Vitals.MaxEnergy * 0.2
	hunter := newTestAgent(env.Tuning, components.Hunter, 600, 500)

	agents := agentList([]*Blueprint{cannibal, hunter})
	env.View = NewSnapshot(env.Width, env.Height)
	env.View.Capture(agents)

	UpdateAgent(env, agents[0], testDT)

	if !cannibal.Predator.Hunting {
		t.Error("cannibal should hunt a hunter in range")
	}
}

func TestPreyOf(t *testing.T) {
	tests := []struct {
		hunter components.Variant
		target components.Variant
		want   bool
	}{
		{components.Hunter, components.Grazer, true},
		{components.Hunter, components.Hunter, false},
		{components.Hunter, components.Cannibal, false},
		{components.Cannibal, components.Grazer, true},
		{components.Cannibal, components.Hunter, true},
		{components.Cannibal, components.Cannibal, false},
	}
	for _, tt := range tests {
		if got := PreyOf(tt.hunter)(tt.target); got != tt.want {
			t.Errorf("PreyOf(%v)(%v) = %v, want %v", tt.hunter, tt.target, got, tt.want)
		}
	}
}

func TestPredatorBands(t *testing.T) {
	tests := []struct {
		name        string
		energyFrac  float32
		reproTimer  float32
		huntChance  float32
		wantHunting bool
		speedFactor float32
	}{
		{"sated and ready wanders", 1, 0, 1, false, 0.5},
		{"sated on cooldown hunts", 1, 5, 1, true, 1},
		{"hungry hunts", 0.2, 0, 0, true, 1},
		{"middle band declines", 0.6, 5, 0, false, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv(terrain.Dirt, 1)
			env.Tuning.Variants[components.Hunter].HuntChance = tt.huntChance
			hunter := newTestAgent(env.Tuning, components.Hunter, 500, 500)
			hunter.Vitals.Energy = hunter.Vitals.MaxEnergy * tt.energyFrac
			hunter.Org.ReproTimer = tt.reproTimer
			grazer := newTestAgent(env.Tuning, components.Grazer, 540, 500)

			agents := agentList([]*Blueprint{hunter, grazer})
			env.View = NewSnapshot(env.Width, env.Height)
			env.View.Capture(agents)

			UpdateAgent(env, agents[0], testDT)

			if hunter.Predator.Hunting != tt.wantHunting {
				t.Errorf("hunting = %v, want %v", hunter.Predator.Hunting, tt.wantHunting)
			}
			want := hunter.Body.MaxSpeed * tt.speedFactor
			if speed := velocityMagnitude(hunter.Vel.X, hunter.Vel.Y); !approxEqual(speed, want, 1e-3) {
				t.Errorf("speed = %v, want %v", speed, want)
			}
		})
	}
}

func TestPredatorHuntChanceInMiddleBand(t *testing.T) {
	const samples = 4000

	env := testEnv(terrain.Dirt, 3)
	hunter := newTestAgent(env.Tuning, components.Hunter, 500, 500)
	grazer := newTestAgent(env.Tuning, components.Grazer, 540, 500)

	agents := agentList([]*Blueprint{hunter, grazer})
	env.View = NewSnapshot(env.Width, env.Height)
	env.View.Capture(agents)

	hunting := 0
	for i := 0; i < samples; i++ {
		hunter.Pos = components.Position{X: 500, Y: 500}
		hunter.Vitals.Energy = hunter.Vitals.MaxEnergy * 0.6
		hunter.Vitals.Age = 0
		hunter.Org.ReproTimer = 5
		hunter.Predator.HuntTimer = 1e6

		UpdateAgent(env, agents[0], testDT)
		if hunter.Predator.Hunting {
			hunting++
		}
	}

	want := env.Tuning.Variant(components.Hunter).HuntChance
	got := float32(hunting) / samples
	if !approxEqual(got, want, 0.03) {
		t.Errorf("hunting fraction = %v, want about %v", got, want)
	}
}

func TestMoveRandomlyJitter(t *testing.T) {
	const samples = 10000

	tests := []struct {
		name     string
		dt       float32
		chance   float32
		wantFrac float32
	}{
		{"one second", 1, 0.1, 0.1},
		{"five seconds", 5, 0.1, 0.5},
		{"always", 10, 0.1, 1},
		{"disabled", 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv(terrain.Dirt, 5)
			env.Tuning.WanderChance = tt.chance
			bp := newTestAgent(env.Tuning, components.Grazer, 500, 500)
			a := bp.Agent()

			turned := 0
			for i := 0; i < samples; i++ {
				bp.Rot.Angle = 90
				moveRandomly(env, a, tt.dt)

				delta := bp.Rot.Angle - 90
				if delta < -env.Tuning.WanderAngle-1e-3 || delta > env.Tuning.WanderAngle+1e-3 {
					t.Fatalf("heading moved by %v, want within +/-%v", delta, env.Tuning.WanderAngle)
				}
				if delta != 0 {
					turned++
				}

				want := bp.Body.MaxSpeed * env.Tuning.WanderSpeed
				if speed := velocityMagnitude(bp.Vel.X, bp.Vel.Y); !approxEqual(speed, want, 1e-3) {
					t.Fatalf("wander speed = %v, want %v", speed, want)
				}
			}

			if got := float32(turned) / samples; !approxEqual(got, tt.wantFrac, 0.02) {
				t.Errorf("turn fraction = %v, want about %v", got, tt.wantFrac)
			}
		})
	}
}
