package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/terrain"
)

const testDT = float32(1.0 / 60.0)

// testEnv returns an environment over a 50x50 world filled with kind.
func testEnv(kind terrain.Kind, seed int64) *Env {
	return NewEnv(terrain.NewGrid(50, 50, kind), DefaultTuning(), rand.New(rand.NewSource(seed)))
}

// newTestAgent builds an agent with base attributes (nil genome).
func newTestAgent(t *Tuning, v components.Variant, x, y float32) *Blueprint {
	bp := NewBlueprint(rand.New(rand.NewSource(7)), t, v, nil, x, y)
	return &bp
}

// agentList turns blueprints into a slotted agent list.
func agentList(bps []*Blueprint) []Agent {
	agents := make([]Agent, len(bps))
	for i, bp := range bps {
		agents[i] = bp.Agent()
		agents[i].Slot = i
	}
	return agents
}

func approxEqual(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}
