package systems

import (
	"testing"

	"github.com/pthm-cable/niche/components"
	"github.com/pthm-cable/niche/config"
)

func testCageConfig() config.CageConfig {
	return config.CageConfig{
		MinRadius:      60,
		MaxRadius:      320,
		SoftMargin:     14,
		HardMargin:     4,
		SoftGain:       0.08,
		HardDamp:       0.4,
		TierCells:      40,
		Tier1Gain:      2.4,
		Tier2Gain:      0.7,
		PressureGain:   0.5,
		OverlapGain:    0.2,
		TouchMargin:    3,
		GrowRate:       0.04,
		ShrinkRate:     0.012,
		GrowDampFactor: 0.3,
		Hysteresis:     8,
		StableEpsilon:  2,
	}
}

func TestCage_StartsAtMinRadius(t *testing.T) {
	c := NewCage(testCageConfig())
	if c.Radius != 60 || c.Target != 60 {
		t.Errorf("expected radius and target at 60, got %v / %v", c.Radius, c.Target)
	}
}

func TestCage_TargetStaysWithinBounds(t *testing.T) {
	c := NewCage(testCageConfig())

	// Massive population and pressure cannot push the target past the max.
	c.Update(1000, 0.5, Pressure{Touching: 500, Overlaps: 500}, 0.9)
	if c.Target != 320 {
		t.Errorf("expected target clamped to 320, got %v", c.Target)
	}

	// Empty colony cannot pull the target below the min.
	c.Reset()
	c.Update(0, 0, Pressure{}, 0.9)
	if c.Target != 60 {
		t.Errorf("expected target clamped to 60, got %v", c.Target)
	}
}

func TestCage_RadiusNeverLeavesBounds(t *testing.T) {
	c := NewCage(testCageConfig())
	for i := 0; i < 5000; i++ {
		c.Update(200, 0.95, Pressure{Touching: 80, Overlaps: 120}, 0.9)
		if c.Radius < 60 || c.Radius > 320 {
			t.Fatalf("radius escaped bounds at step %d: %v", i, c.Radius)
		}
	}
}

func TestCage_GrowthIsDampedWhenCrowded(t *testing.T) {
	cfg := testCageConfig()
	relaxed := NewCage(cfg)
	crowded := NewCage(cfg)
	p := Pressure{Touching: 10}

	relaxed.Update(60, 0.5, p, 0.9)
	crowded.Update(60, 0.95, p, 0.9)

	if crowded.Radius >= relaxed.Radius {
		t.Errorf("expected crowded growth slower: crowded %v, relaxed %v",
			crowded.Radius, relaxed.Radius)
	}
	if crowded.Radius <= 60 {
		t.Error("crowded cage should still grow, just slower")
	}
}

func TestCage_ShrinkRequiresHysteresis(t *testing.T) {
	c := NewCage(testCageConfig())

	// Grow the cage first.
	for i := 0; i < 500; i++ {
		c.Update(60, 0.5, Pressure{}, 0.9)
	}
	grown := c.Radius
	if grown <= 60 {
		t.Fatal("cage failed to grow during setup")
	}

	// Drop the population a little: target falls but stays within the
	// hysteresis band, so the radius must hold.
	c.Update(58, 0.4, Pressure{}, 0.9)
	if c.Radius < grown-0.001 {
		t.Errorf("radius shrank inside the hysteresis band: %v -> %v", grown, c.Radius)
	}

	// Collapse the population: now it lags well past the band and shrinks.
	before := c.Radius
	for i := 0; i < 50; i++ {
		c.Update(5, 0.05, Pressure{}, 0.9)
	}
	if c.Radius >= before {
		t.Errorf("radius failed to shrink after the population collapsed: %v", c.Radius)
	}
}

func TestCage_ShrinkSlowerThanGrowth(t *testing.T) {
	cfg := testCageConfig()
	c := NewCage(cfg)

	c.Update(80, 0.5, Pressure{}, 0.9)
	growthStep := c.Radius - 60
	if growthStep <= 0 {
		t.Fatal("expected growth")
	}

	// Force a comparable gap in the other direction.
	c.Radius = 60 + growthStep + float32(cfg.Hysteresis) + 1
	c.Update(0, 0, Pressure{}, 0.9)
	shrinkStep := (60 + growthStep + float32(cfg.Hysteresis) + 1) - c.Radius
	if shrinkStep <= 0 {
		t.Fatal("expected shrink")
	}
	if shrinkStep >= growthStep {
		t.Errorf("expected shrink slower than growth: shrink %v, growth %v",
			shrinkStep, growthStep)
	}
}

func TestCage_Stable(t *testing.T) {
	c := NewCage(testCageConfig())
	if !c.Stable() {
		t.Error("fresh cage should be stable")
	}
	c.Target = c.Radius + 10
	if c.Stable() {
		t.Error("cage with a distant target should not be stable")
	}
}

func TestCage_ConfineSoftForce(t *testing.T) {
	c := NewCage(testCageConfig())

	// Body edge just past the soft margin but inside the hard edge.
	pos := &components.Position{X: 48, Y: 0}
	vel := &components.Velocity{}
	body := &components.Body{Radius: 6}

	hard := c.Confine(pos, vel, body)
	if hard {
		t.Error("hard clamp should not fire inside the hard edge")
	}
	if vel.X >= 0 {
		t.Errorf("expected inward force, got velocity %v", vel.X)
	}
	if pos.X != 48 {
		t.Errorf("soft force must not reposition, got %v", pos.X)
	}
}

func TestCage_ConfineHardClamp(t *testing.T) {
	c := NewCage(testCageConfig())

	// Body fully outside the boundary.
	pos := &components.Position{X: 100, Y: 0}
	vel := &components.Velocity{X: 5}
	body := &components.Body{Radius: 6}

	hard := c.Confine(pos, vel, body)
	if !hard {
		t.Fatal("expected hard clamp for an escaped body")
	}
	dist := pos.X
	if dist+body.Radius > c.Radius {
		t.Errorf("body still outside after clamp: edge at %v, radius %v",
			dist+body.Radius, c.Radius)
	}
	if vel.X >= 5 {
		t.Errorf("expected velocity damped, got %v", vel.X)
	}
}

func TestCage_ConfineCenterIsSafe(t *testing.T) {
	c := NewCage(testCageConfig())
	pos := &components.Position{}
	vel := &components.Velocity{}
	body := &components.Body{Radius: 6}
	if c.Confine(pos, vel, body) {
		t.Error("body at the exact center must not be clamped")
	}
}

func TestCage_Contains(t *testing.T) {
	c := NewCage(testCageConfig())
	if !c.Contains(0, 0, 6) {
		t.Error("center should be contained")
	}
	if c.Contains(55, 0, 6) {
		t.Error("position past the soft margin should not be contained")
	}
}
