// Package sim wires the simulation together: the ECS world, the clock, the
// stem-cell registry, the cage, and the per-tick update sequence. One
// Simulation value carries all mutable state, so independent instances can
// run side by side and tests stay deterministic.
package sim

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/niche/components"
	"github.com/pthm-cable/niche/config"
	"github.com/pthm-cable/niche/lineage"
	"github.com/pthm-cable/niche/store"
	"github.com/pthm-cable/niche/systems"
	"github.com/pthm-cable/niche/telemetry"
)

// Options configure a new simulation.
type Options struct {
	Seed      int64
	LogStats  bool
	OutputDir string

	// Config overrides the global config.Cfg() when set. Used by tests and
	// the sweep tool to run isolated instances.
	Config *config.Config
}

// Simulation holds the complete simulation state.
type Simulation struct {
	cfg *config.Config
	rng *rand.Rand

	world *ecs.World

	cellMapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Body,
		components.Cell,
		components.Tether,
	]
	filter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Body,
		components.Cell,
		components.Tether,
	]

	posMap    *ecs.Map1[components.Position]
	velMap    *ecs.Map1[components.Velocity]
	bodyMap   *ecs.Map1[components.Body]
	cellMap   *ecs.Map1[components.Cell]
	tetherMap *ecs.Map1[components.Tether]

	registry  *lineage.Registry
	cage      *systems.Cage
	grid      *systems.SpatialGrid
	evaluator *systems.SuccessionEvaluator
	clock     *Clock

	collector *telemetry.Collector
	output    *telemetry.OutputManager
	timeStore *store.TimeStore
	sinks     []telemetry.Sink

	running  bool
	logStats bool
	maxCells int
	nextID   uint32

	deathSignals int

	// Population counts, refreshed by countPass each tick
	total      int
	perLineage []int
	perState   [3]int

	scratch []systems.Neighbor
}

// NewSimulation creates a simulation, loads persisted time, and seeds the
// initial cell.
func NewSimulation(opts Options) *Simulation {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	world := ecs.NewWorld()
	s := &Simulation{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		world: world,
		cellMapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Body,
			components.Cell,
			components.Tether,
		](world),
		filter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Body,
			components.Cell,
			components.Tether,
		](world),
		posMap:    ecs.NewMap1[components.Position](world),
		velMap:    ecs.NewMap1[components.Velocity](world),
		bodyMap:   ecs.NewMap1[components.Body](world),
		cellMap:   ecs.NewMap1[components.Cell](world),
		tetherMap: ecs.NewMap1[components.Tether](world),

		registry:  lineage.NewRegistry(cfg.Lineages),
		cage:      systems.NewCage(cfg.Cage),
		evaluator: systems.NewSuccessionEvaluator(cfg.Succession),

		logStats:   opts.LogStats,
		maxCells:   cfg.Population.MaxCells,
		nextID:     1,
		perLineage: make([]int, cfg.Derived.NumLineages),
		scratch:    make([]systems.Neighbor, 0, systems.MaxQueryResults),
	}

	if s.maxCells < 1 {
		s.maxCells = 1
	}

	gridExtent := float32(cfg.Cage.MaxRadius) + 2*float32(cfg.Cell.BodyRadius)
	s.grid = systems.NewSpatialGrid(gridExtent, float32(cfg.Physics.GridCellSize))

	// Elapsed-time persistence; failures fall back to the default epoch.
	baseTime := store.DefaultTime()
	if cfg.Store.Path != "" {
		ts, err := store.Open(cfg.Store.Path)
		if err != nil {
			slog.Warn("opening time store", "path", cfg.Store.Path, "error", err)
		} else {
			s.timeStore = ts
			if t, err := ts.Load(); err != nil {
				slog.Warn("loading saved time", "error", err)
			} else {
				baseTime = t
			}
		}
	}
	s.clock = NewClock(cfg.Clock, baseTime)

	s.collector = telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.DT32)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Warn("opening output directory", "dir", opts.OutputDir, "error", err)
		} else {
			s.output = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Warn("writing config snapshot", "error", err)
			}
		}
	}

	s.seedInitialCell()
	s.countPass()
	s.running = true

	return s
}

// Subscribe registers an event sink. Sinks observe cell and succession events
// for logging, export, and visualization; core behavior never depends on
// them.
func (s *Simulation) Subscribe(sink telemetry.Sink) {
	s.sinks = append(s.sinks, sink)
}

func (s *Simulation) emit(ev telemetry.Event) {
	for _, sink := range s.sinks {
		sink(ev)
	}
}

// Start resumes ticking.
func (s *Simulation) Start() {
	s.running = true
}

// Stop pauses ticking; Step becomes a no-op until Start.
func (s *Simulation) Stop() {
	s.running = false
}

// Running reports whether the simulation is ticking.
func (s *Simulation) Running() bool {
	return s.running
}

// Tick returns the current tick count.
func (s *Simulation) Tick() int64 {
	return s.clock.Tick()
}

// Speed returns the current speed multiplier.
func (s *Simulation) Speed() int {
	return s.clock.Speed()
}

// SetSpeed sets the speed multiplier, clamped to the configured set.
// Returns the multiplier actually applied.
func (s *Simulation) SetSpeed(mult int) int {
	return s.clock.SetSpeed(mult)
}

// MaxCells returns the population capacity.
func (s *Simulation) MaxCells() int {
	return s.maxCells
}

// SetMaxCells sets the population capacity, clamped to at least 1. Lowering
// it below the current population stops divisions until attrition catches
// up; existing cells are never culled.
func (s *Simulation) SetMaxCells(n int) int {
	if n < 1 {
		n = 1
	}
	s.maxCells = n
	return n
}

// Registry exposes the stem-cell registry for inspection.
func (s *Simulation) Registry() *lineage.Registry {
	return s.registry
}

// Cage exposes the containment boundary for inspection and rendering.
func (s *Simulation) Cage() *systems.Cage {
	return s.cage
}

// Snapshot derives the per-tick population view.
func (s *Simulation) Snapshot() telemetry.Snapshot {
	perLineage := make([]int, len(s.perLineage))
	copy(perLineage, s.perLineage)

	active := s.registry.ActiveIndex()
	elapsed := s.clock.Elapsed()
	return telemetry.Snapshot{
		Tick:          s.clock.Tick(),
		Total:         s.total,
		PerLineage:    perLineage,
		PerState:      s.perState,
		CageRadius:    s.cage.Radius,
		CageTarget:    s.cage.Target,
		ActiveLineage: active,
		DivisionsLeft: s.registry.Record(active).DivisionsLeft,
		DeathSignals:  s.deathSignals,
		DebounceTicks: s.evaluator.DebounceTicks(),
		Day:           elapsed.Day,
		Hour:          elapsed.Hour,
		Minute:        elapsed.Minute,
	}
}

// Reset clears all cells and re-seeds the initial state synchronously.
// Elapsed simulated time keeps running; everything else starts over.
func (s *Simulation) Reset() {
	var entities []ecs.Entity
	query := s.filter.Query()
	for query.Next() {
		entities = append(entities, query.Entity())
	}
	for _, e := range entities {
		s.cellMapper.Remove(e)
	}

	s.registry = lineage.NewRegistry(s.cfg.Lineages)
	s.cage.Reset()
	s.evaluator.Reset()
	s.collector.Reset()
	s.clock.ResetTicks()
	s.deathSignals = 0
	s.nextID = 1

	s.seedInitialCell()
	s.countPass()
}

// Unload releases persistence and output resources. The final elapsed time
// is saved on the way out.
func (s *Simulation) Unload() {
	if s.timeStore != nil {
		if err := s.timeStore.Save(s.clock.Elapsed()); err != nil {
			slog.Warn("saving elapsed time", "error", err)
		}
		if err := s.timeStore.Close(); err != nil {
			slog.Warn("closing time store", "error", err)
		}
	}
	if err := s.output.Close(); err != nil {
		slog.Warn("closing output", "error", err)
	}
}
