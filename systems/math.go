package systems

import "math"

// Clamp functions for common value ranges

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Angle functions. Facing is kept in degrees.

// normalizeDeg wraps an angle to [0, 360).
func normalizeDeg(a float32) float32 {
	a = float32(math.Mod(float64(a), 360))
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

// lerpAngleDeg moves from toward to along the shorter arc by progress.
func lerpAngleDeg(from, to, progress float32) float32 {
	delta := normalizeDeg(to-from+180) - 180
	return normalizeDeg(from + delta*progress)
}

// bearingDeg returns the direction from (x1,y1) to (x2,y2) in [0, 360).
func bearingDeg(x1, y1, x2, y2 float32) float32 {
	return normalizeDeg(float32(math.Atan2(float64(y2-y1), float64(x2-x1)) * 180 / math.Pi))
}

// unitDeg returns the unit vector for an angle in degrees.
func unitDeg(a float32) (x, y float32) {
	rad := float64(a) * math.Pi / 180
	return float32(math.Cos(rad)), float32(math.Sin(rad))
}

// Distance functions

// distanceSq returns the squared distance between two points.
func distanceSq(x1, y1, x2, y2 float32) float32 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// distance returns the Euclidean distance between two points.
func distance(x1, y1, x2, y2 float32) float32 {
	return float32(math.Sqrt(float64(distanceSq(x1, y1, x2, y2))))
}

// velocityMagnitude returns the magnitude of a velocity vector.
func velocityMagnitude(vx, vy float32) float32 {
	return float32(math.Sqrt(float64(vx*vx + vy*vy)))
}
