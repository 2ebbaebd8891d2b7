package components

// Body holds the genome-scaled physical properties of an entity.
// They are fixed at construction.
type Body struct {
	Size     float32 `inspect:"label,fmt:%.1f"` // collision radius
	MaxSpeed float32 `inspect:"bar,max:120"`
}
