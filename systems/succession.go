package systems

import "github.com/pthm-cable/niche/config"

// Trigger identifies which succession condition fired.
type Trigger uint8

const (
	// TriggerDeathSignals fires when the death-signal counter reaches its
	// threshold. Takes precedence when both conditions hold in one tick.
	TriggerDeathSignals Trigger = iota
	// TriggerSenescentFraction fires when a high senescent fraction with a
	// depressed population has been sustained for the debounce duration.
	TriggerSenescentFraction
)

// String returns the trigger name for logging and telemetry.
func (t Trigger) String() string {
	switch t {
	case TriggerDeathSignals:
		return "death_signals"
	case TriggerSenescentFraction:
		return "senescent_fraction"
	}
	return "unknown"
}

// Decision is the outcome of one evaluation pass: at most one per tick.
type Decision struct {
	Trigger Trigger
}

// SuccessionEvaluator decides when the active lineage hands off. Both trigger
// conditions are folded into a single evaluation with an explicit precedence
// rule, so a tick can never resolve differently depending on check order.
type SuccessionEvaluator struct {
	cfg config.SuccessionConfig

	debounce int32 // ticks the sustained-fraction condition has held
}

// NewSuccessionEvaluator creates an evaluator.
func NewSuccessionEvaluator(cfg config.SuccessionConfig) *SuccessionEvaluator {
	return &SuccessionEvaluator{cfg: cfg}
}

// DebounceTicks returns how long the sustained-fraction condition has held.
func (e *SuccessionEvaluator) DebounceTicks() int32 {
	return e.debounce
}

// Reset clears the debounce timer. Called after a succession and on
// simulation reset.
func (e *SuccessionEvaluator) Reset() {
	e.debounce = 0
}

// Evaluate inspects this tick's statistics and returns a decision, or nil.
// The death-signal counter is checked first and short-circuits; the
// sustained-fraction condition must hold continuously for the debounce
// duration, and its timer resets to zero whenever the condition breaks.
func (e *SuccessionEvaluator) Evaluate(pop, capacity, senescent, deathSignals int) *Decision {
	if deathSignals >= e.cfg.DeathSignalThreshold {
		e.debounce = 0
		return &Decision{Trigger: TriggerDeathSignals}
	}

	holding := false
	if pop > 0 && capacity > 0 {
		senFrac := float64(senescent) / float64(pop)
		popFrac := float64(pop) / float64(capacity)
		holding = senFrac > e.cfg.SenescentFrac && popFrac < e.cfg.PopulationFrac
	}

	if !holding {
		e.debounce = 0
		return nil
	}

	e.debounce++
	if int(e.debounce) >= e.cfg.DebounceTicks {
		e.debounce = 0
		return &Decision{Trigger: TriggerSenescentFraction}
	}
	return nil
}
