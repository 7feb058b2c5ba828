package sim

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/niche/components"
	"github.com/pthm-cable/niche/systems"
	"github.com/pthm-cable/niche/telemetry"
)

// Step runs one full simulation tick, synchronously and to completion:
// cage update -> containment -> physics -> lifecycle -> division ->
// succession -> statistics. A stopped simulation makes this a no-op.
func (s *Simulation) Step() {
	if !s.running {
		return
	}

	s.clock.Advance()

	s.rebuildGrid()

	pressure := s.measurePressure()
	popRatio := float64(s.total) / float64(s.maxCells)
	prevRadius := s.cage.Radius
	s.cage.Update(s.total, popRatio, pressure, s.cfg.Population.CrowdedRatio)
	if delta := prevRadius - s.cage.Radius; delta > 0.01 || delta < -0.01 {
		s.emit(telemetry.Event{
			Type:   telemetry.EventCageResized,
			Tick:   s.clock.Tick(),
			Radius: s.cage.Radius,
		})
	}

	s.confinePass()
	s.physicsPass()
	s.lifecyclePass(popRatio)
	s.divisionPass()
	s.countPass()
	s.successionPass()

	s.flushStats()
	s.persistTime()
}

// rebuildGrid re-indexes all cells into the spatial grid.
func (s *Simulation) rebuildGrid() {
	s.grid.Clear()
	query := s.filter.Query()
	for query.Next() {
		pos, _, _, _, _ := query.Get()
		s.grid.Insert(query.Entity(), pos.X, pos.Y)
	}
}

// measurePressure counts boundary contact and pairwise crowding overlaps.
func (s *Simulation) measurePressure() systems.Pressure {
	var p systems.Pressure
	overlapPairs := 0

	query := s.filter.Query()
	for query.Next() {
		pos, _, body, _, _ := query.Get()
		if s.cage.Touching(pos, body) {
			p.Touching++
		}
		s.scratch = s.grid.QueryRadiusInto(s.scratch[:0], pos.X, pos.Y, 2*body.Radius, query.Entity(), s.posMap)
		overlapPairs += len(s.scratch)
	}

	p.Overlaps = overlapPairs / 2 // each pair counted from both ends
	return p
}

// confinePass applies boundary correction to every cell.
func (s *Simulation) confinePass() {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, body, _, _ := query.Get()
		if s.cage.Confine(pos, vel, body) {
			s.collector.RecordHardClamp()
		}
	}
}

// physicsPass advances tethers and integrates positions. The physics step is
// scaled by the clock's speed multiplier.
func (s *Simulation) physicsPass() {
	dt := s.clock.DT(s.cfg.Derived.DT32)
	drag := float32(s.cfg.Physics.Drag)
	stiffness := float32(s.cfg.Division.TetherStiffness)

	query := s.filter.Query()
	for query.Next() {
		pos, vel, _, _, tether := query.Get()

		if tether.Active() {
			var parentPos *components.Position
			if s.world.Alive(tether.Parent) {
				parentPos = s.posMap.Get(tether.Parent)
			}
			if parentPos == nil {
				// Parent died; release the link.
				tether.TicksLeft = 0
			} else {
				parentVel := s.velMap.Get(tether.Parent)
				systems.ApplyTether(tether, pos, parentPos, vel, parentVel, stiffness)
			}
		}

		systems.Integrate(pos, vel, drag, dt)
	}
}

// lifecyclePass applies forced senescence, ages every cell, and removes the
// expired ones.
func (s *Simulation) lifecyclePass(popRatio float64) {
	cellCfg := &s.cfg.Cell
	forcedMargin := float32(s.cfg.Population.ForcedSenMargin)
	crowdedRatio := s.cfg.Population.CrowdedRatio
	cageStable := s.cage.Stable()
	tick := s.clock.Tick()

	type deadCell struct {
		entity ecs.Entity
		id     uint32
		lin    uint8
		state  components.State
	}
	var dead []deadCell

	query := s.filter.Query()
	for query.Next() {
		pos, _, body, cell, _ := query.Get()

		// Forced senescence: crowded cells hugging a stable boundary would
		// otherwise neither divide nor die, stalling succession.
		nearBoundary := s.cage.NearBoundary(pos, body, forcedMargin)
		if systems.ShouldForceSenescence(cell, nearBoundary, cageStable, popRatio, crowdedRatio) {
			systems.ForceSenescent(cell)
			s.collector.RecordForcedSenescence()
			s.emit(telemetry.Event{
				Type:    telemetry.EventCellStateChanged,
				Tick:    tick,
				CellID:  cell.ID,
				Lineage: cell.Lineage,
				State:   cell.State,
			})
		}

		ch := systems.AgeCell(cell, cellCfg)
		if ch.StateChanged {
			s.emit(telemetry.Event{
				Type:    telemetry.EventCellStateChanged,
				Tick:    tick,
				CellID:  cell.ID,
				Lineage: cell.Lineage,
				State:   cell.State,
			})
		}
		if ch.DeathSignal {
			s.deathSignals++
		}
		if ch.Died {
			dead = append(dead, deadCell{
				entity: query.Entity(),
				id:     cell.ID,
				lin:    cell.Lineage,
				state:  cell.State,
			})
		}
	}

	for _, d := range dead {
		s.cellMapper.Remove(d.entity)
		s.collector.RecordDeath()
		s.emit(telemetry.Event{
			Type:    telemetry.EventCellDied,
			Tick:    tick,
			CellID:  d.id,
			Lineage: d.lin,
			State:   d.state,
		})
	}
}

// divisionPass lets eligible Dividing cells spawn children.
func (s *Simulation) divisionPass() {
	divCfg := &s.cfg.Division
	bodyRadius := float32(s.cfg.Cell.BodyRadius)
	cooldown := int32(divCfg.CooldownTicks)

	pop := s.population()

	type birth struct {
		parent ecs.Entity
		pos    components.Position
		lin    uint8
	}
	var births []birth

	query := s.filter.Query()
	for query.Next() {
		pos, _, _, cell, _ := query.Get()

		if !systems.CanAttemptDivision(cell, pop+len(births), s.maxCells) {
			continue
		}
		if s.rng.Float64() >= divCfg.Chance {
			continue
		}

		childPos := systems.ProbeChildPosition(
			s.rng, query.Entity(), pos, bodyRadius,
			s.cage, s.grid, s.posMap, divCfg, s.scratch,
		)

		cell.Cooldown = cooldown
		s.registry.RecordDivision(int(cell.Lineage))

		births = append(births, birth{
			parent: query.Entity(),
			pos:    childPos,
			lin:    cell.Lineage,
		})
	}

	for _, b := range births {
		child := s.spawnCell(b.pos.X, b.pos.Y, b.lin, components.StateDividing, cooldown)

		// Repulsion impulse plus a temporary elastic link back to the parent.
		parentPos := s.posMap.Get(b.parent)
		parentVel := s.velMap.Get(b.parent)
		childPos := s.posMap.Get(child)
		childVel := s.velMap.Get(child)
		systems.ApplyDivisionImpulse(parentPos, childPos, parentVel, childVel, float32(divCfg.RepulseImpulse))

		tether := s.tetherMap.Get(child)
		tether.Parent = b.parent
		tether.TicksLeft = int32(divCfg.TetherTicks)
		tether.RestLength = 2 * bodyRadius

		s.grid.Insert(child, childPos.X, childPos.Y)
	}
}

// successionPass evaluates the trigger conditions and performs the lineage
// handoff when one fires. At most one trigger fires per tick; the
// death-signal counter takes precedence.
func (s *Simulation) successionPass() {
	decision := s.evaluator.Evaluate(
		s.total, s.maxCells,
		s.perState[components.StateSenescent],
		s.deathSignals,
	)
	if decision == nil {
		return
	}

	from, to := s.registry.Succeed()
	s.deathSignals = 0
	s.evaluator.Reset()

	// The handoff event goes out before the seeds' creation events, so sinks
	// can attribute the incoming cells to it.
	tick := s.clock.Tick()
	s.emit(telemetry.Event{
		Type:        telemetry.EventSuccession,
		Tick:        tick,
		FromLineage: uint8(from),
		ToLineage:   uint8(to),
		Trigger:     decision.Trigger.String(),
	})

	// Never seed past capacity.
	seeds := s.cfg.Succession.SeedCells
	if available := s.maxCells - s.total; seeds > available {
		seeds = available
	}
	s.seedLineage(uint8(to), seeds)
	s.collector.RecordSuccession()
	slog.Info("succession",
		"tick", tick,
		"trigger", decision.Trigger.String(),
		"from", s.registry.Record(from).Name,
		"to", s.registry.Record(to).Name,
		"population", s.total,
	)
	if err := s.output.WriteSuccession(telemetry.SuccessionRecord{
		Tick:        tick,
		Trigger:     decision.Trigger.String(),
		FromLineage: s.registry.Record(from).Name,
		ToLineage:   s.registry.Record(to).Name,
		Population:  s.total,
		Senescent:   s.perState[components.StateSenescent],
	}); err != nil {
		slog.Warn("writing succession record", "error", err)
	}

	s.countPass()
}

// countPass refreshes the cached population counts.
func (s *Simulation) countPass() {
	s.total = 0
	for i := range s.perLineage {
		s.perLineage[i] = 0
	}
	s.perState = [3]int{}

	query := s.filter.Query()
	for query.Next() {
		_, _, _, cell, _ := query.Get()
		s.total++
		if int(cell.Lineage) < len(s.perLineage) {
			s.perLineage[cell.Lineage]++
		}
		s.perState[cell.State]++
	}
}

// population returns the current entity count without refreshing the cached
// breakdown.
func (s *Simulation) population() int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// flushStats emits window statistics when the window has elapsed.
func (s *Simulation) flushStats() {
	tick := s.clock.Tick()
	if !s.collector.ShouldFlush(tick) {
		return
	}

	stats := s.collector.Flush(tick)
	stats.Total = s.total
	stats.Dividing = s.perState[components.StateDividing]
	stats.NonDividing = s.perState[components.StateNonDividing]
	stats.Senescent = s.perState[components.StateSenescent]
	active := s.registry.ActiveIndex()
	stats.ActiveLineage = s.registry.Record(active).Name
	stats.DivisionsLeft = s.registry.Record(active).DivisionsLeft
	stats.DeathSignals = s.deathSignals
	stats.CageRadius = float64(s.cage.Radius)
	stats.CageTarget = float64(s.cage.Target)

	ageFracs := make([]float64, 0, s.total)
	query := s.filter.Query()
	for query.Next() {
		_, _, _, cell, _ := query.Get()
		if cell.MaxAge > 0 {
			ageFracs = append(ageFracs, float64(cell.Age)/float64(cell.MaxAge))
		}
	}
	stats.FillAgeDistribution(ageFracs)

	if s.logStats {
		stats.Log()
	}
	if err := s.output.WriteTelemetry(stats); err != nil {
		slog.Warn("writing telemetry", "error", err)
	}
}

// persistTime saves the elapsed simulated time on the configured interval.
func (s *Simulation) persistTime() {
	if s.timeStore == nil || s.cfg.Clock.SaveEveryTicks <= 0 {
		return
	}
	if s.clock.Tick()%int64(s.cfg.Clock.SaveEveryTicks) != 0 {
		return
	}
	if err := s.timeStore.Save(s.clock.Elapsed()); err != nil {
		slog.Warn("saving elapsed time", "error", err)
	}
}
