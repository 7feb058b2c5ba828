// Package telemetry provides population tracking, windowed statistics, and
// CSV output for the simulation.
package telemetry

import "github.com/pthm-cable/niche/components"

// EventType identifies simulation events.
type EventType uint8

const (
	EventCellCreated EventType = iota
	EventCellStateChanged
	EventCellDied
	EventSuccession
	EventCageResized
)

// String returns the event name for logging and CSV output.
func (t EventType) String() string {
	switch t {
	case EventCellCreated:
		return "cell_created"
	case EventCellStateChanged:
		return "cell_state_changed"
	case EventCellDied:
		return "cell_died"
	case EventSuccession:
		return "succession"
	case EventCageResized:
		return "cage_resized"
	}
	return "unknown"
}

// Event represents a single simulation event. Consumers observe these for
// logging, export, and visualization; core correctness never depends on them.
type Event struct {
	Type    EventType
	Tick    int64
	CellID  uint32
	Lineage uint8
	State   components.State

	// Succession fields
	FromLineage uint8
	ToLineage   uint8
	Trigger     string

	// Cage fields
	Radius float32
}

// Sink receives events. Sinks must not retain the event past the call.
type Sink func(Event)
