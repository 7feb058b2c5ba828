package telemetry

import "github.com/pthm-cable/niche/components"

// Snapshot is the per-tick view of the colony exposed to presentation and
// automation collaborators. It is derived each tick, never stored.
type Snapshot struct {
	Tick int64

	Total      int
	PerLineage []int
	PerState   [3]int // indexed by components.State

	CageRadius float32
	CageTarget float32

	ActiveLineage int
	DivisionsLeft int
	DeathSignals  int
	DebounceTicks int32

	// Elapsed simulated time
	Day    int
	Hour   int
	Minute int
}

// Count returns the number of cells in the given state.
func (s *Snapshot) Count(st components.State) int {
	return s.PerState[st]
}

// SenescentFraction returns the senescent share of the population.
func (s *Snapshot) SenescentFraction() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.PerState[components.StateSenescent]) / float64(s.Total)
}
