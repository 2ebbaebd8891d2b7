package components

// Position represents an entity's world position in world units.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity in world units per second.
type Velocity struct {
	X, Y float32
}

// Rotation represents an entity's facing.
type Rotation struct {
	Angle float32 `inspect:"angle"` // degrees, normalized to [0, 360)
}
