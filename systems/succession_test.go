package systems

import (
	"testing"

	"github.com/pthm-cable/niche/config"
)

func testSuccessionConfig() config.SuccessionConfig {
	return config.SuccessionConfig{
		DeathSignalThreshold: 12,
		SenescentFrac:        0.8,
		PopulationFrac:       0.7,
		DebounceTicks:        120,
		SeedCells:            3,
		SeedRadius:           18,
	}
}

func TestEvaluate_DeathSignalThreshold(t *testing.T) {
	e := NewSuccessionEvaluator(testSuccessionConfig())

	if d := e.Evaluate(100, 120, 0, 11); d != nil {
		t.Errorf("expected no decision below the threshold, got %v", d.Trigger)
	}
	d := e.Evaluate(100, 120, 0, 12)
	if d == nil {
		t.Fatal("expected a decision at the threshold")
	}
	if d.Trigger != TriggerDeathSignals {
		t.Errorf("expected death-signal trigger, got %v", d.Trigger)
	}
}

func TestEvaluate_DeathSignalsTakePrecedence(t *testing.T) {
	cfg := testSuccessionConfig()
	cfg.DebounceTicks = 1
	e := NewSuccessionEvaluator(cfg)

	// Both conditions hold: 85% senescent at 50% of capacity, signals at
	// threshold. Death signals must win.
	d := e.Evaluate(60, 120, 51, 12)
	if d == nil {
		t.Fatal("expected a decision")
	}
	if d.Trigger != TriggerDeathSignals {
		t.Errorf("expected death-signal precedence, got %v", d.Trigger)
	}
}

func TestEvaluate_SustainedFractionNeedsDebounce(t *testing.T) {
	e := NewSuccessionEvaluator(testSuccessionConfig())

	// 85% senescent, population at 50% of capacity: condition holds, but only
	// fires after 120 consecutive ticks.
	for i := 0; i < 119; i++ {
		if d := e.Evaluate(60, 120, 51, 0); d != nil {
			t.Fatalf("fired early at tick %d", i+1)
		}
	}
	d := e.Evaluate(60, 120, 51, 0)
	if d == nil {
		t.Fatal("expected decision after the debounce duration")
	}
	if d.Trigger != TriggerSenescentFraction {
		t.Errorf("expected senescent-fraction trigger, got %v", d.Trigger)
	}
}

func TestEvaluate_DebounceResetsOnBreak(t *testing.T) {
	e := NewSuccessionEvaluator(testSuccessionConfig())

	for i := 0; i < 100; i++ {
		e.Evaluate(60, 120, 51, 0)
	}
	if e.DebounceTicks() != 100 {
		t.Fatalf("expected debounce at 100, got %d", e.DebounceTicks())
	}

	// One tick where the population recovers above 70% of capacity.
	e.Evaluate(90, 120, 80, 0)
	if e.DebounceTicks() != 0 {
		t.Errorf("expected debounce reset on break, got %d", e.DebounceTicks())
	}

	// Restart the hold: must take the full duration again.
	for i := 0; i < 119; i++ {
		if d := e.Evaluate(60, 120, 51, 0); d != nil {
			t.Fatalf("fired early after reset at tick %d", i+1)
		}
	}
	if d := e.Evaluate(60, 120, 51, 0); d == nil {
		t.Error("expected decision after a full debounce following the reset")
	}
}

func TestEvaluate_FractionConditionBoundaries(t *testing.T) {
	cfg := testSuccessionConfig()
	cfg.DebounceTicks = 1
	e := NewSuccessionEvaluator(cfg)

	// Exactly 80% senescent does not qualify (strict greater-than).
	if d := e.Evaluate(60, 120, 48, 0); d != nil {
		t.Error("exactly 80%% senescent should not fire")
	}
	// Exactly 70% of capacity does not qualify (strict less-than).
	e.Reset()
	if d := e.Evaluate(84, 120, 80, 0); d != nil {
		t.Error("exactly 70%% of capacity should not fire")
	}
}

func TestEvaluate_DefaultsCoverNearCapacityDecline(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	e := NewSuccessionEvaluator(cfg.Succession)

	// A declining colony at 71 of 100 capacity with 61 senescent cells (86%)
	// must qualify under the shipped thresholds once the hold is sustained.
	for i := 0; i < cfg.Succession.DebounceTicks-1; i++ {
		if d := e.Evaluate(71, 100, 61, 0); d != nil {
			t.Fatalf("fired early at tick %d", i+1)
		}
	}
	d := e.Evaluate(71, 100, 61, 0)
	if d == nil {
		t.Fatal("expected succession after the debounce duration")
	}
	if d.Trigger != TriggerSenescentFraction {
		t.Errorf("expected senescent-fraction trigger, got %v", d.Trigger)
	}

	// Exactly once: the timer restarts, so the same profile needs another
	// full hold before it can fire again.
	for i := 0; i < cfg.Succession.DebounceTicks-1; i++ {
		if d := e.Evaluate(71, 100, 61, 0); d != nil {
			t.Fatalf("fired again after only %d ticks", i+1)
		}
	}
}

func TestEvaluate_EmptyPopulationIsSafe(t *testing.T) {
	e := NewSuccessionEvaluator(testSuccessionConfig())
	if d := e.Evaluate(0, 120, 0, 0); d != nil {
		t.Error("empty population should not fire the fraction trigger")
	}
}
