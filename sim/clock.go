package sim

import (
	"github.com/pthm-cable/niche/config"
	"github.com/pthm-cable/niche/store"
)

// Clock is the single authority for simulated time. It advances once per
// external tick, scaled by a speed multiplier from the configured set. The
// multiplier scales the physics step and elapsed-time accumulation only;
// aging increments and trigger thresholds are tick-based and unaffected.
type Clock struct {
	cfg config.ClockConfig

	tick    int64
	speed   int
	minutes float64 // elapsed simulated minutes, including the loaded base
}

// NewClock creates a clock starting from the given saved time.
func NewClock(cfg config.ClockConfig, base store.SimTime) *Clock {
	c := &Clock{cfg: cfg, speed: cfg.Speeds[0]}
	c.SetTime(base)
	return c
}

// Tick returns the number of ticks advanced so far.
func (c *Clock) Tick() int64 {
	return c.tick
}

// Speed returns the current speed multiplier.
func (c *Clock) Speed() int {
	return c.speed
}

// SetSpeed sets the speed multiplier, clamping to the nearest allowed value.
// Returns the multiplier actually applied.
func (c *Clock) SetSpeed(mult int) int {
	best := c.cfg.Speeds[0]
	bestDist := abs(mult - best)
	for _, s := range c.cfg.Speeds[1:] {
		if d := abs(mult - s); d < bestDist {
			best, bestDist = s, d
		}
	}
	c.speed = best
	return best
}

// DT returns the physics step for one tick, scaled by the speed multiplier.
func (c *Clock) DT(baseDT float32) float32 {
	return baseDT * float32(c.speed)
}

// Advance moves the clock forward by one tick.
func (c *Clock) Advance() {
	c.tick++
	c.minutes += c.cfg.MinutesPerTick * float64(c.speed)
}

// ResetTicks zeroes the tick counter. Elapsed simulated time keeps running;
// only the persisted day/hour/minute counter survives a reset.
func (c *Clock) ResetTicks() {
	c.tick = 0
}

// Elapsed returns the elapsed simulated time as day/hour/minute.
func (c *Clock) Elapsed() store.SimTime {
	total := int(c.minutes)
	return store.SimTime{
		Day:    total/1440 + 1,
		Hour:   (total % 1440) / 60,
		Minute: total % 60,
	}
}

// SetTime sets the elapsed time base, e.g. from the persistence store.
func (c *Clock) SetTime(t store.SimTime) {
	if t.Day < 1 {
		t = store.DefaultTime()
	}
	c.minutes = float64((t.Day-1)*1440 + t.Hour*60 + t.Minute)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
