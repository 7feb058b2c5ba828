package sim

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/niche/components"
	"github.com/pthm-cable/niche/telemetry"
)

// spawnCell creates a new cell entity of the given lineage at (x, y).
// maxAge is randomized per cell from the configured range.
func (s *Simulation) spawnCell(x, y float32, lin uint8, state components.State, cooldown int32) ecs.Entity {
	cfg := s.cfg

	id := s.nextID
	s.nextID++

	ageSpan := cfg.Cell.MaxAgeMax - cfg.Cell.MaxAgeMin
	maxAge := int32(cfg.Cell.MaxAgeMin)
	if ageSpan > 0 {
		maxAge += int32(s.rng.Intn(ageSpan + 1))
	}

	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	body := components.Body{Radius: float32(cfg.Cell.BodyRadius)}
	cell := components.Cell{
		ID:        id,
		Lineage:   lin,
		MaxAge:    maxAge,
		State:     state,
		CanDivide: state == components.StateDividing,
		Cooldown:  cooldown,
	}
	tether := components.Tether{}

	entity := s.cellMapper.NewEntity(&pos, &vel, &body, &cell, &tether)

	s.collector.RecordBirth()
	s.emit(telemetry.Event{
		Type:    telemetry.EventCellCreated,
		Tick:    s.clock.Tick(),
		CellID:  id,
		Lineage: lin,
		State:   state,
	})

	return entity
}

// seedInitialCell places the one founding cell of the active lineage at the
// cage center.
func (s *Simulation) seedInitialCell() {
	s.spawnCell(0, 0, uint8(s.registry.ActiveIndex()), components.StateDividing, 0)
}

// seedLineage places n fresh Dividing cells of the given lineage
// symmetrically around the cage center.
func (s *Simulation) seedLineage(lin uint8, n int) {
	radius := float32(s.cfg.Succession.SeedRadius)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		x := radius * float32(math.Cos(angle))
		y := radius * float32(math.Sin(angle))
		s.spawnCell(x, y, lin, components.StateDividing, 0)
	}
}
