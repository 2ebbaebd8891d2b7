package systems

// moveToward turns the agent toward (tx, ty) by turn (a fraction of the
// remaining arc) and sets its velocity along the new facing.
func moveToward(a Agent, tx, ty, turn, speed float32) {
	target := bearingDeg(a.Pos.X, a.Pos.Y, tx, ty)
	a.Rot.Angle = lerpAngleDeg(a.Rot.Angle, target, min(turn, 1))
	setHeadingVelocity(a, speed)
}

// moveRandomly occasionally perturbs the facing and cruises at wander speed.
func moveRandomly(env *Env, a Agent, dt float32) {
	t := env.Tuning
	if env.Rng.Float32() < dt*t.WanderChance {
		a.Rot.Angle = normalizeDeg(a.Rot.Angle + (env.Rng.Float32()*2-1)*t.WanderAngle)
	}
	setHeadingVelocity(a, a.Body.MaxSpeed*t.WanderSpeed)
}

func setHeadingVelocity(a Agent, speed float32) {
	ux, uy := unitDeg(a.Rot.Angle)
	a.Vel.X = ux * speed
	a.Vel.Y = uy * speed
}
