package systems

import (
	"github.com/pthm-cable/niche/components"
	"github.com/pthm-cable/niche/config"
)

// Cage maintains the circular boundary around the colony. The target radius
// follows population pressure; the actual radius eases toward it
// asymmetrically (fast growth, slow shrink with hysteresis).
type Cage struct {
	cfg config.CageConfig

	Radius float32
	Target float32
}

// Pressure summarizes the crowding inputs to the expansion target.
type Pressure struct {
	Touching int // cells in contact with the boundary
	Overlaps int // pairwise crowding overlaps
}

// NewCage creates a cage at the configured minimum radius.
func NewCage(cfg config.CageConfig) *Cage {
	return &Cage{
		cfg:    cfg,
		Radius: float32(cfg.MinRadius),
		Target: float32(cfg.MinRadius),
	}
}

// Reset returns the cage to its initial radius.
func (c *Cage) Reset() {
	c.Radius = float32(c.cfg.MinRadius)
	c.Target = float32(c.cfg.MinRadius)
}

// Update recomputes the target radius from population and pressure, then
// eases the actual radius toward it. popRatio is population/capacity.
//
// The base term is tiered: the first TierCells cells grow the target quickly,
// later cells slowly, so early expansion is easy and late expansion is
// pressure-driven. Growth is damped once popRatio exceeds the crowded ratio
// to avoid runaway expansion near saturation; the radius only contracts once
// the target lags by more than the hysteresis margin.
func (c *Cage) Update(pop int, popRatio float64, p Pressure, crowdedRatio float64) {
	tier1 := pop
	tier2 := 0
	if tier1 > c.cfg.TierCells {
		tier2 = tier1 - c.cfg.TierCells
		tier1 = c.cfg.TierCells
	}

	base := c.cfg.MinRadius +
		c.cfg.Tier1Gain*float64(tier1) +
		c.cfg.Tier2Gain*float64(tier2)
	pressure := c.cfg.PressureGain*float64(p.Touching) +
		c.cfg.OverlapGain*float64(p.Overlaps)

	c.Target = clampf(float32(base+pressure), float32(c.cfg.MinRadius), float32(c.cfg.MaxRadius))

	switch {
	case c.Target > c.Radius:
		rate := c.cfg.GrowRate
		if popRatio > crowdedRatio {
			rate *= c.cfg.GrowDampFactor
		}
		c.Radius += (c.Target - c.Radius) * float32(rate)
	case c.Radius-c.Target > float32(c.cfg.Hysteresis):
		c.Radius += (c.Target - c.Radius) * float32(c.cfg.ShrinkRate)
	}

	c.Radius = clampf(c.Radius, float32(c.cfg.MinRadius), float32(c.cfg.MaxRadius))
}

// Stable reports whether the boundary is not actively expanding or shrinking.
func (c *Cage) Stable() bool {
	return absf(c.Radius-c.Target) < float32(c.cfg.StableEpsilon)
}

// Touching reports whether a body at pos is within the touch margin of the
// boundary.
func (c *Cage) Touching(pos *components.Position, body *components.Body) bool {
	dist := sqrtf(pos.X*pos.X + pos.Y*pos.Y)
	return dist+body.Radius > c.Radius-float32(c.cfg.TouchMargin)
}

// NearBoundary reports whether a body sits within margin of the boundary.
func (c *Cage) NearBoundary(pos *components.Position, body *components.Body, margin float32) bool {
	dist := sqrtf(pos.X*pos.X + pos.Y*pos.Y)
	return dist+body.Radius > c.Radius-margin
}

// Confine applies the two-tier boundary correction to a single body: a soft
// inward force proportional to penetration past the soft margin, and a hard
// reposition with velocity damping past the hard margin. The hard clamp
// guarantees no cell permanently escapes the boundary. Returns true when the
// hard clamp fired.
func (c *Cage) Confine(pos *components.Position, vel *components.Velocity, body *components.Body) bool {
	dist := sqrtf(pos.X*pos.X + pos.Y*pos.Y)
	if dist <= 0 {
		return false
	}

	softEdge := c.Radius - float32(c.cfg.SoftMargin)
	hardEdge := c.Radius - float32(c.cfg.HardMargin)

	outer := dist + body.Radius
	if outer > softEdge {
		depth := outer - softEdge
		gain := float32(c.cfg.SoftGain) * depth
		vel.X -= pos.X / dist * gain
		vel.Y -= pos.Y / dist * gain
	}

	if outer > hardEdge {
		// Reposition onto the hard edge and damp velocity.
		scale := (hardEdge - body.Radius) / dist
		if scale < 0 {
			scale = 0
		}
		pos.X *= scale
		pos.Y *= scale
		vel.X *= float32(c.cfg.HardDamp)
		vel.Y *= float32(c.cfg.HardDamp)
		return true
	}
	return false
}

// Contains reports whether a body at (x, y) fits fully inside the boundary,
// leaving the soft margin free.
func (c *Cage) Contains(x, y, bodyRadius float32) bool {
	dist := sqrtf(x*x + y*y)
	return dist+bodyRadius < c.Radius-float32(c.cfg.SoftMargin)
}
