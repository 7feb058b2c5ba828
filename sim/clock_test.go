package sim

import (
	"testing"

	"github.com/pthm-cable/niche/config"
	"github.com/pthm-cable/niche/store"
)

func testClockConfig() config.ClockConfig {
	return config.ClockConfig{
		Speeds:         []int{1, 2, 4},
		MinutesPerTick: 2,
		SaveEveryTicks: 600,
	}
}

func TestClock_StartsAtFirstSpeed(t *testing.T) {
	c := NewClock(testClockConfig(), store.DefaultTime())
	if c.Speed() != 1 {
		t.Errorf("expected initial speed 1, got %d", c.Speed())
	}
	if c.Tick() != 0 {
		t.Errorf("expected tick 0, got %d", c.Tick())
	}
}

func TestClock_SetSpeedClampsToAllowed(t *testing.T) {
	c := NewClock(testClockConfig(), store.DefaultTime())

	cases := []struct{ request, want int }{
		{1, 1},
		{2, 2},
		{4, 4},
		{3, 2}, // ties resolve to the first-listed closest value
		{5, 4},
		{100, 4},
		{0, 1},
		{-7, 1},
	}
	for _, tc := range cases {
		got := c.SetSpeed(tc.request)
		if got != tc.want || c.Speed() != tc.want {
			t.Errorf("SetSpeed(%d): expected %d, got %d", tc.request, tc.want, got)
		}
	}
}

func TestClock_DTScalesWithSpeed(t *testing.T) {
	c := NewClock(testClockConfig(), store.DefaultTime())
	base := float32(1.0 / 60)

	if c.DT(base) != base {
		t.Errorf("expected unscaled dt at 1x, got %v", c.DT(base))
	}
	c.SetSpeed(4)
	if c.DT(base) != 4*base {
		t.Errorf("expected 4x dt, got %v", c.DT(base))
	}
}

func TestClock_ElapsedTime(t *testing.T) {
	c := NewClock(testClockConfig(), store.DefaultTime())

	// 2 minutes per tick: 30 ticks = 1 hour.
	for i := 0; i < 30; i++ {
		c.Advance()
	}
	got := c.Elapsed()
	if got.Day != 1 || got.Hour != 1 || got.Minute != 0 {
		t.Errorf("expected day 1 01:00, got day %d %02d:%02d", got.Day, got.Hour, got.Minute)
	}

	// 720 ticks per day: finish the day.
	for i := 0; i < 690; i++ {
		c.Advance()
	}
	got = c.Elapsed()
	if got.Day != 2 || got.Hour != 0 || got.Minute != 0 {
		t.Errorf("expected day 2 00:00, got day %d %02d:%02d", got.Day, got.Hour, got.Minute)
	}
}

func TestClock_SpeedScalesElapsedTime(t *testing.T) {
	c := NewClock(testClockConfig(), store.DefaultTime())
	c.SetSpeed(4)

	for i := 0; i < 30; i++ {
		c.Advance()
	}
	got := c.Elapsed()
	if got.Hour != 4 {
		t.Errorf("expected 4 simulated hours at 4x, got %02d:%02d", got.Hour, got.Minute)
	}
	if c.Tick() != 30 {
		t.Errorf("tick count must not scale with speed, got %d", c.Tick())
	}
}

func TestClock_ResumesFromSavedTime(t *testing.T) {
	c := NewClock(testClockConfig(), store.SimTime{Day: 3, Hour: 12, Minute: 30})
	got := c.Elapsed()
	if got.Day != 3 || got.Hour != 12 || got.Minute != 30 {
		t.Errorf("expected day 3 12:30, got day %d %02d:%02d", got.Day, got.Hour, got.Minute)
	}

	c.Advance()
	got = c.Elapsed()
	if got.Minute != 32 {
		t.Errorf("expected 12:32 after one tick, got %02d:%02d", got.Hour, got.Minute)
	}
}

func TestClock_InvalidSavedTimeFallsBack(t *testing.T) {
	c := NewClock(testClockConfig(), store.SimTime{Day: 0, Hour: 5, Minute: 5})
	got := c.Elapsed()
	if got.Day != 1 || got.Hour != 0 || got.Minute != 0 {
		t.Errorf("expected default epoch, got day %d %02d:%02d", got.Day, got.Hour, got.Minute)
	}
}

func TestClock_ResetTicksKeepsElapsedTime(t *testing.T) {
	c := NewClock(testClockConfig(), store.DefaultTime())
	for i := 0; i < 100; i++ {
		c.Advance()
	}
	before := c.Elapsed()

	c.ResetTicks()
	if c.Tick() != 0 {
		t.Errorf("expected tick 0 after reset, got %d", c.Tick())
	}
	if c.Elapsed() != before {
		t.Errorf("elapsed time changed on reset: %+v -> %+v", before, c.Elapsed())
	}
}
