package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	dt                  float32

	windowStartTick int64

	// Event counters for current window
	births          int
	deaths          int
	successions     int
	forcedSenescent int
	hardClamps      int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int64(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordBirth records a cell created by division or seeding.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordDeath records a cell removed by age.
func (c *Collector) RecordDeath() {
	c.deaths++
}

// RecordSuccession records a lineage handoff.
func (c *Collector) RecordSuccession() {
	c.successions++
}

// RecordForcedSenescence records a cell forced senescent by crowding.
func (c *Collector) RecordForcedSenescence() {
	c.forcedSenescent++
}

// RecordHardClamp records a boundary hard clamp.
func (c *Collector) RecordHardClamp() {
	c.hardClamps++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces WindowStats for the completed window and starts a new one.
// Population fields are filled in by the caller from the current snapshot.
func (c *Collector) Flush(currentTick int64) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),
		Births:          c.births,
		Deaths:          c.deaths,
		Successions:     c.successions,
		ForcedSenescent: c.forcedSenescent,
		HardClamps:      c.hardClamps,
	}

	c.windowStartTick = currentTick
	c.births = 0
	c.deaths = 0
	c.successions = 0
	c.forcedSenescent = 0
	c.hardClamps = 0

	return stats
}

// Reset clears all counters and restarts the window at tick zero.
func (c *Collector) Reset() {
	c.windowStartTick = 0
	c.births = 0
	c.deaths = 0
	c.successions = 0
	c.forcedSenescent = 0
	c.hardClamps = 0
}
