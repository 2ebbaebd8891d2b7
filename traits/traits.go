// Package traits names the heritable genome traits and maps them onto body attributes.
package traits

// Canonical trait names. Every founder genome carries these.
const (
	Size         = "size"
	Speed        = "speed"
	Energy       = "energy"
	Perception   = "perception"
	Strength     = "strength"
	Reproduction = "reproduction"
	Adaption     = "adaption"
)

// Cannibalism is carried only by cannibal lineages. Other genomes fall back
// to Neutral when it is looked up.
const Cannibalism = "cannibalism"

// Neutral is the default for a trait that is not present. It leaves the
// scaled attribute at its base value.
const Neutral float32 = 0.5

// Canonical lists the traits assigned to every randomized genome, in a fixed order.
var Canonical = []string{Size, Speed, Energy, Perception, Strength, Reproduction, Adaption}

// IsCanonical reports whether name is one of the canonical traits.
func IsCanonical(name string) bool {
	for _, t := range Canonical {
		if t == name {
			return true
		}
	}
	return false
}

// Scale maps a trait value in [0,1] onto a symmetric band around base.
// A factor of 0.2 gives base*0.9 at value 0 and base*1.1 at value 1.
func Scale(base, value, factor float32) float32 {
	return base * (1 + value*factor - factor/2)
}
