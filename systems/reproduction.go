package systems

import (
	"math/rand"

	"github.com/pthm-cable/terrarium/genetics"
)

// Offspring describes a child produced by Reproduce, ready to be built.
type Offspring struct {
	Genome     *genetics.Genome
	X, Y       float32
	Generation uint32
	Sexual     bool
	ParentID   uint32
	PartnerID  uint32 // zero for asexual offspring
}

// CanReproduce reports whether a has the energy to breed.
func CanReproduce(t *Tuning, a Agent) bool {
	return a.Vitals.Alive && a.Vitals.Energy > a.Vitals.MaxEnergy*t.Eligibility
}

// Reproduce is the whole breeding transaction between parent and an optional
// partner. On success the parent pays its retention cost and restarts its
// cooldown. A partner of the same variant that is alive and eligible pays the
// same cost and contributes half the genome; any other partner is ignored and
// the child is a mutated clone. The child lands within SpawnOffset of the
// parent, clamped to [0,width]x[0,height].
//
// It returns false, leaving both agents untouched, when the parent is not
// eligible or still on cooldown.
func Reproduce(rng *rand.Rand, t *Tuning, parent Agent, partner *Agent, width, height float32) (Offspring, bool) {
	if !CanReproduce(t, parent) || parent.Org.ReproTimer > 0 {
		return Offspring{}, false
	}

	parent.Org.ReproTimer = parent.Org.ReproCooldown
	parent.Vitals.SetEnergy(parent.Vitals.Energy * parent.Org.Retention)

	child := Offspring{
		Generation: parent.Org.Generation + 1,
		ParentID:   parent.Org.ID,
	}
	if partner != nil && partner.Vitals != parent.Vitals &&
		partner.Org.Variant == parent.Org.Variant && CanReproduce(t, *partner) {
		partner.Vitals.SetEnergy(partner.Vitals.Energy * partner.Org.Retention)
		child.Genome = genetics.CombineWith(rng, parent.Org.Genome, partner.Org.Genome, t.Rates)
		child.Sexual = true
		child.PartnerID = partner.Org.ID
		child.Generation = max(parent.Org.Generation, partner.Org.Generation) + 1
	} else {
		child.Genome = parent.Org.Genome.Clone()
		child.Genome.MutateWith(rng, t.Rates)
	}

	off := t.SpawnOffset
	child.X = clampFloat(parent.Pos.X+(rng.Float32()*2-1)*off, 0, width)
	child.Y = clampFloat(parent.Pos.Y+(rng.Float32()*2-1)*off, 0, height)
	return child, true
}
