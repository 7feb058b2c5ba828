package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Total       int `csv:"total"`
	Dividing    int `csv:"dividing"`
	NonDividing int `csv:"non_dividing"`
	Senescent   int `csv:"senescent"`

	ActiveLineage string `csv:"active_lineage"`
	DivisionsLeft int    `csv:"divisions_left"`
	DeathSignals  int    `csv:"death_signals"`

	// Cage state at window end
	CageRadius float64 `csv:"cage_radius"`
	CageTarget float64 `csv:"cage_target"`

	// Events during window
	Births          int `csv:"births"`
	Deaths          int `csv:"deaths"`
	Successions     int `csv:"successions"`
	ForcedSenescent int `csv:"forced_senescent"`
	HardClamps      int `csv:"hard_clamps"`

	// Age distribution (fraction of each cell's own max age, sampled at
	// window end)
	AgeFracMean float64 `csv:"age_frac_mean"`
	AgeFracStd  float64 `csv:"age_frac_std"`
	AgeFracP10  float64 `csv:"age_frac_p10"`
	AgeFracP50  float64 `csv:"age_frac_p50"`
	AgeFracP90  float64 `csv:"age_frac_p90"`
}

// FillAgeDistribution computes the age-fraction distribution fields from the
// given samples. An empty sample set leaves the fields zero.
func (w *WindowStats) FillAgeDistribution(ageFracs []float64) {
	if len(ageFracs) == 0 {
		return
	}
	sort.Float64s(ageFracs)
	w.AgeFracMean = stat.Mean(ageFracs, nil)
	w.AgeFracStd = stat.StdDev(ageFracs, nil)
	w.AgeFracP10 = stat.Quantile(0.1, stat.Empirical, ageFracs, nil)
	w.AgeFracP50 = stat.Quantile(0.5, stat.Empirical, ageFracs, nil)
	w.AgeFracP90 = stat.Quantile(0.9, stat.Empirical, ageFracs, nil)
}

// Log writes the window stats through slog.
func (w *WindowStats) Log() {
	slog.Info("window stats",
		"tick", w.WindowEndTick,
		"sim_time", w.SimTimeSec,
		"total", w.Total,
		"dividing", w.Dividing,
		"non_dividing", w.NonDividing,
		"senescent", w.Senescent,
		"active_lineage", w.ActiveLineage,
		"divisions_left", w.DivisionsLeft,
		"death_signals", w.DeathSignals,
		"cage_radius", w.CageRadius,
		"births", w.Births,
		"deaths", w.Deaths,
		"successions", w.Successions,
	)
}
