package systems

import (
	"testing"

	"github.com/pthm-cable/niche/components"
)

func TestIntegrate(t *testing.T) {
	pos := &components.Position{}
	vel := &components.Velocity{X: 1, Y: -2}

	Integrate(pos, vel, 0.9, 1.0/60)

	if absf(pos.X-1) > 1e-4 || absf(pos.Y+2) > 1e-4 {
		t.Errorf("expected position (1, -2), got (%v, %v)", pos.X, pos.Y)
	}
	if absf(vel.X-0.9) > 1e-6 {
		t.Errorf("expected drag applied, got %v", vel.X)
	}
}

func TestIntegrate_SpeedScalesDisplacement(t *testing.T) {
	p1 := &components.Position{}
	v1 := &components.Velocity{X: 1}
	p4 := &components.Position{}
	v4 := &components.Velocity{X: 1}

	Integrate(p1, v1, 1, 1.0/60)
	Integrate(p4, v4, 1, 4.0/60)

	if absf(p4.X-4*p1.X) > 1e-4 {
		t.Errorf("expected 4x displacement at 4x dt, got %v vs %v", p4.X, p1.X)
	}
}

func TestApplyTether_PullsStretchedPair(t *testing.T) {
	tether := &components.Tether{TicksLeft: 10, RestLength: 12}
	childPos := &components.Position{X: 30}
	parentPos := &components.Position{}
	childVel := &components.Velocity{}
	parentVel := &components.Velocity{}

	alive := ApplyTether(tether, childPos, parentPos, childVel, parentVel, 0.05)
	if !alive {
		t.Fatal("tether should survive with ticks remaining")
	}
	if childVel.X >= 0 {
		t.Errorf("child should be pulled toward parent, got %v", childVel.X)
	}
	if parentVel.X <= 0 {
		t.Errorf("parent should be pulled toward child, got %v", parentVel.X)
	}
	if tether.TicksLeft != 9 {
		t.Errorf("expected lifetime ticked down to 9, got %d", tether.TicksLeft)
	}
}

func TestApplyTether_NoForceWithinRestLength(t *testing.T) {
	tether := &components.Tether{TicksLeft: 10, RestLength: 12}
	childPos := &components.Position{X: 10}
	parentPos := &components.Position{}
	childVel := &components.Velocity{}
	parentVel := &components.Velocity{}

	ApplyTether(tether, childPos, parentPos, childVel, parentVel, 0.05)
	if childVel.X != 0 || parentVel.X != 0 {
		t.Errorf("slack tether must not pull, got %v / %v", childVel.X, parentVel.X)
	}
}

func TestApplyTether_Expires(t *testing.T) {
	tether := &components.Tether{TicksLeft: 1, RestLength: 12}
	pos := &components.Position{X: 30}
	origin := &components.Position{}
	v1 := &components.Velocity{}
	v2 := &components.Velocity{}

	if alive := ApplyTether(tether, pos, origin, v1, v2, 0.05); alive {
		t.Error("tether should expire on its last tick")
	}
	if tether.Active() {
		t.Error("expired tether still reports active")
	}
	if alive := ApplyTether(tether, pos, origin, v1, v2, 0.05); alive {
		t.Error("expired tether must stay expired")
	}
}
