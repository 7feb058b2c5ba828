package systems

import "github.com/pthm-cable/niche/components"

// Integrate advances one body by its velocity over dt seconds and applies
// drag. dt is the physics step already scaled by the clock's speed
// multiplier; aging and trigger thresholds are tick-based and unaffected.
func Integrate(pos *components.Position, vel *components.Velocity, drag, dt float32) {
	pos.X += vel.X * dt * 60 // velocities are tuned in units per tick at 60 Hz
	pos.Y += vel.Y * dt * 60
	vel.X *= drag
	vel.Y *= drag
}

// ApplyTether pulls a child toward its parent with a spring proportional to
// the stretch past the rest length, and ticks the link's lifetime down.
// Returns false once the link has expired.
func ApplyTether(t *components.Tether, childPos, parentPos *components.Position, childVel, parentVel *components.Velocity, stiffness float32) bool {
	if !t.Active() {
		return false
	}

	dx := parentPos.X - childPos.X
	dy := parentPos.Y - childPos.Y
	dist := sqrtf(dx*dx + dy*dy)
	if dist > 1e-3 {
		stretch := dist - t.RestLength
		if stretch > 0 {
			f := stiffness * stretch / dist
			childVel.X += dx * f
			childVel.Y += dy * f
			parentVel.X -= dx * f
			parentVel.Y -= dy * f
		}
	}

	t.TicksLeft--
	return t.TicksLeft > 0
}
