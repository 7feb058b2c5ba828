// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Cell       CellConfig       `yaml:"cell"`
	Division   DivisionConfig   `yaml:"division"`
	Cage       CageConfig       `yaml:"cage"`
	Population PopulationConfig `yaml:"population"`
	Lineages   []LineageConfig  `yaml:"lineages"`
	Succession SuccessionConfig `yaml:"succession"`
	Clock      ClockConfig      `yaml:"clock"`
	Store      StoreConfig      `yaml:"store"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds simulation physics parameters.
type PhysicsConfig struct {
	DT           float64 `yaml:"dt"`             // seconds of physics per tick at 1x speed
	Drag         float64 `yaml:"drag"`           // velocity retained per tick
	GridCellSize float64 `yaml:"grid_cell_size"` // spatial grid cell size
}

// CellConfig holds per-cell lifecycle parameters.
// Age is counted in ticks; lifecycle thresholds are fractions of a cell's own
// randomized max age.
type CellConfig struct {
	BodyRadius       float64 `yaml:"body_radius"`
	MaxAgeMin        int     `yaml:"max_age_min"`        // lower bound for randomized max age (ticks)
	MaxAgeMax        int     `yaml:"max_age_max"`        // upper bound for randomized max age (ticks)
	NonDividingFrac  float64 `yaml:"non_dividing_frac"`  // age/maxAge at which Dividing ends
	SenescentFrac    float64 `yaml:"senescent_frac"`     // age/maxAge at which Senescent begins
	DeathSignalFrac  float64 `yaml:"death_signal_frac"`  // age/maxAge at which a senescent cell signals
	SenescentAgeMult int     `yaml:"senescent_age_mult"` // aging increment per tick while Senescent
}

// DivisionConfig holds division parameters.
type DivisionConfig struct {
	Chance          float64 `yaml:"chance"`           // per-tick division probability when eligible
	CooldownTicks   int     `yaml:"cooldown_ticks"`   // parent cooldown after a division
	ProbeAttempts   int     `yaml:"probe_attempts"`   // bounded search for a child position
	SpawnOffset     float64 `yaml:"spawn_offset"`     // preferred parent-child distance, in body radii
	RepulseImpulse  float64 `yaml:"repulse_impulse"`  // mutual parent/child impulse on spawn
	TetherTicks     int     `yaml:"tether_ticks"`     // lifetime of the parent-child elastic link
	TetherStiffness float64 `yaml:"tether_stiffness"` // spring gain of the elastic link
}

// CageConfig holds boundary containment and expansion parameters.
//
// Force gains and tier constants were tuned for a cell body radius of 6 world
// units inside a cage of 60..320 units; scale them together if either changes.
type CageConfig struct {
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`

	SoftMargin float64 `yaml:"soft_margin"` // soft force starts at radius - soft_margin
	HardMargin float64 `yaml:"hard_margin"` // hard clamp at radius - hard_margin
	SoftGain   float64 `yaml:"soft_gain"`   // inward force per unit of penetration
	HardDamp   float64 `yaml:"hard_damp"`   // velocity retained after a hard clamp

	TierCells    int     `yaml:"tier_cells"`    // cells covered by the fast expansion tier
	Tier1Gain    float64 `yaml:"tier1_gain"`    // target radius per cell within the first tier
	Tier2Gain    float64 `yaml:"tier2_gain"`    // target radius per cell beyond the first tier
	PressureGain float64 `yaml:"pressure_gain"` // target growth per boundary-touching cell
	OverlapGain  float64 `yaml:"overlap_gain"`  // target growth per pairwise crowding overlap
	TouchMargin  float64 `yaml:"touch_margin"`  // distance from boundary counted as touching

	GrowRate       float64 `yaml:"grow_rate"`        // easing rate toward a larger target
	ShrinkRate     float64 `yaml:"shrink_rate"`      // easing rate toward a smaller target
	GrowDampFactor float64 `yaml:"grow_damp_factor"` // growth multiplier past the crowding ratio
	Hysteresis     float64 `yaml:"hysteresis"`       // shrink only once target lags by this much
	StableEpsilon  float64 `yaml:"stable_epsilon"`   // |radius-target| below this counts as stable
}

// PopulationConfig holds population-level parameters.
type PopulationConfig struct {
	MaxCells        int     `yaml:"max_cells"`         // hard population capacity
	CrowdedRatio    float64 `yaml:"crowded_ratio"`     // population/capacity ratio treated as crowded
	ForcedSenMargin float64 `yaml:"forced_sen_margin"` // boundary proximity for forced senescence
}

// LineageConfig defines one clone in the stem-cell pool.
type LineageConfig struct {
	Name           string `yaml:"name"`
	DivisionBudget int    `yaml:"division_budget"`
}

// SuccessionConfig holds succession trigger parameters.
type SuccessionConfig struct {
	DeathSignalThreshold int     `yaml:"death_signal_threshold"` // counter-based trigger threshold
	SenescentFrac        float64 `yaml:"senescent_frac"`         // sustained-fraction trigger: senescent share
	PopulationFrac       float64 `yaml:"population_frac"`        // sustained-fraction trigger: population ceiling
	DebounceTicks        int     `yaml:"debounce_ticks"`         // sustain duration before the fraction trigger fires
	SeedCells            int     `yaml:"seed_cells"`             // cells seeded for the incoming lineage
	SeedRadius           float64 `yaml:"seed_radius"`            // distance from cage center for seeds
}

// ClockConfig holds simulated-time parameters.
type ClockConfig struct {
	Speeds         []int   `yaml:"speeds"`           // allowed speed multipliers
	MinutesPerTick float64 `yaml:"minutes_per_tick"` // simulated minutes per tick at 1x
	SaveEveryTicks int     `yaml:"save_every_ticks"` // persistence interval
}

// StoreConfig holds persistence settings.
type StoreConfig struct {
	Path string `yaml:"path"` // sqlite file for elapsed time ("" = no persistence)
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // window length in simulation seconds
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32         float32        // Physics.DT as float32
	LineageIndex map[string]int // name -> index for lineage lookup
	NumLineages  int
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)

	// Synthesize default lineages if none specified
	if len(c.Lineages) == 0 {
		c.Lineages = []LineageConfig{
			{Name: "alpha", DivisionBudget: 60},
			{Name: "beta", DivisionBudget: 60},
			{Name: "gamma", DivisionBudget: 60},
		}
	}
	for i := range c.Lineages {
		if c.Lineages[i].DivisionBudget == 0 {
			c.Lineages[i].DivisionBudget = 60
		}
	}

	if len(c.Clock.Speeds) == 0 {
		c.Clock.Speeds = []int{1, 2, 4}
	}

	c.Derived.NumLineages = len(c.Lineages)
	c.Derived.LineageIndex = make(map[string]int, len(c.Lineages))
	for i, ln := range c.Lineages {
		c.Derived.LineageIndex[ln.Name] = i
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
