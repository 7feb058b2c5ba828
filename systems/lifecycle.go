package systems

import (
	"github.com/pthm-cable/niche/components"
	"github.com/pthm-cable/niche/config"
)

// LifecycleChange reports what happened to a cell during one aging step.
type LifecycleChange struct {
	StateChanged bool
	DeathSignal  bool // edge-triggered: at most once per cell
	Died         bool
}

// StateForAge returns the lifecycle state a cell of the given age belongs in.
// Thresholds are fractions of the cell's own max age.
func StateForAge(age, maxAge int32, cfg *config.CellConfig) components.State {
	a := float64(age)
	m := float64(maxAge)
	switch {
	case a < cfg.NonDividingFrac*m:
		return components.StateDividing
	case a < cfg.SenescentFrac*m:
		return components.StateNonDividing
	default:
		return components.StateSenescent
	}
}

// AgeCell advances a cell by one tick: aging (accelerated while Senescent),
// chronological state transitions, the edge-triggered death signal, and
// removal once age exceeds max age.
//
// State only ever moves forward. A forced-senescent cell whose chronological
// age maps to an earlier state stays Senescent.
func AgeCell(cell *components.Cell, cfg *config.CellConfig) LifecycleChange {
	var ch LifecycleChange

	inc := int32(1)
	if cell.State == components.StateSenescent {
		inc = int32(cfg.SenescentAgeMult)
	}
	cell.Age += inc

	next := StateForAge(cell.Age, cell.MaxAge, cfg)
	if next > cell.State {
		cell.State = next
		ch.StateChanged = true
		if cell.State != components.StateDividing {
			cell.CanDivide = false
		}
	}

	if cell.State == components.StateSenescent &&
		!cell.DeathSignaled &&
		float64(cell.Age) >= cfg.DeathSignalFrac*float64(cell.MaxAge) {
		cell.DeathSignaled = true
		ch.DeathSignal = true
	}

	if cell.Age > cell.MaxAge {
		ch.Died = true
	}

	if cell.Cooldown > 0 {
		cell.Cooldown--
	}

	return ch
}

// ForceSenescent moves a cell straight to Senescent regardless of age.
// Returns false if the cell is already there.
func ForceSenescent(cell *components.Cell) bool {
	if cell.State == components.StateSenescent {
		return false
	}
	cell.State = components.StateSenescent
	cell.CanDivide = false
	return true
}

// ShouldForceSenescence reports whether a cell must be forced into senescence:
// it sits within the forced margin of a stable boundary while the population
// is at or above the crowded ratio. Without this, crowded young cells neither
// divide nor die and succession stalls indefinitely.
func ShouldForceSenescence(cell *components.Cell, nearBoundary, cageStable bool, popRatio, crowdedRatio float64) bool {
	if cell.State == components.StateSenescent {
		return false
	}
	return nearBoundary && cageStable && popRatio >= crowdedRatio
}
