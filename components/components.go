// Package components defines ECS components for the simulation.
package components

import "github.com/mlange-42/ark/ecs"

// State is a cell's lifecycle stage. Transitions are strictly monotonic:
// Dividing -> NonDividing -> Senescent -> removed.
type State uint8

const (
	StateDividing State = iota
	StateNonDividing
	StateSenescent
)

// String returns the state name for logging and telemetry.
func (s State) String() string {
	switch s {
	case StateDividing:
		return "dividing"
	case StateNonDividing:
		return "non_dividing"
	case StateSenescent:
		return "senescent"
	}
	return "unknown"
}

// Position represents an entity's world position, relative to the cage center.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity.
type Velocity struct {
	X, Y float32
}

// Body holds physical properties of an entity.
type Body struct {
	Radius float32
}

// Cell bundles identity, lineage, and lifecycle state.
// Spatial state lives in Position/Velocity; the cell itself owns none of it.
type Cell struct {
	ID      uint32
	Lineage uint8 // index into the configured lineage set

	Age    int32 // ticks lived
	MaxAge int32 // randomized per cell at creation

	State     State
	CanDivide bool
	Cooldown  int32 // ticks until the next division attempt

	// DeathSignaled latches once the death-signal age is crossed while
	// Senescent, so the counter increments exactly once per cell.
	DeathSignaled bool
}

// Tether is a temporary elastic link between a child cell and its parent,
// established at division and released after a fixed duration.
// TicksLeft == 0 means no active link.
type Tether struct {
	Parent     ecs.Entity
	TicksLeft  int32
	RestLength float32
}

// Active reports whether the link is still live.
func (t *Tether) Active() bool {
	return t.TicksLeft > 0
}
