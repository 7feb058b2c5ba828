// Sweep runs headless simulations over a grid of succession-trigger
// parameters and writes per-run outcome metrics to CSV.
//
// Usage: go run ./cmd/sweep -ticks 50000 -out results.csv
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/niche/config"
	"github.com/pthm-cable/niche/sim"
	"github.com/pthm-cable/niche/telemetry"
)

// Result holds the outcome metrics of one sweep run.
type Result struct {
	DeathSignalThreshold int     `csv:"death_signal_threshold"`
	DebounceTicks        int     `csv:"debounce_ticks"`
	Seed                 int64   `csv:"seed"`
	Ticks                int     `csv:"ticks"`
	Successions          int     `csv:"successions"`
	MeanPopulation       float64 `csv:"mean_population"`
	FinalPopulation      int     `csv:"final_population"`
	FinalCageRadius      float64 `csv:"final_cage_radius"`
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	ticks := flag.Int("ticks", 50000, "Ticks per run")
	seeds := flag.Int("seeds", 3, "Runs per parameter combination")
	out := flag.String("out", "results.csv", "Output CSV path")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	thresholds := []int{6, 12, 24}
	debounces := []int{60, 120, 240}

	var results []Result
	for _, threshold := range thresholds {
		for _, debounce := range debounces {
			for seed := int64(1); seed <= int64(*seeds); seed++ {
				cfg, err := config.Load(*configPath)
				if err != nil {
					slog.Error("loading config", "error", err)
					os.Exit(1)
				}
				cfg.Succession.DeathSignalThreshold = threshold
				cfg.Succession.DebounceTicks = debounce
				cfg.Store.Path = "" // sweeps never persist time

				res := runOne(cfg, seed, *ticks)
				res.DeathSignalThreshold = threshold
				res.DebounceTicks = debounce
				results = append(results, res)

				slog.Info("run complete",
					"threshold", threshold,
					"debounce", debounce,
					"seed", seed,
					"successions", res.Successions,
					"mean_population", res.MeanPopulation,
				)
			}
		}
	}

	f, err := os.Create(*out)
	if err != nil {
		slog.Error("creating output", "error", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := gocsv.Marshal(results, f); err != nil {
		slog.Error("writing results", "error", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d results to %s\n", len(results), *out)
}

// runOne executes a single headless run and collects its metrics.
func runOne(cfg *config.Config, seed int64, ticks int) Result {
	s := sim.NewSimulation(sim.Options{Seed: seed, Config: cfg})
	defer s.Unload()

	successions := 0
	s.Subscribe(func(ev telemetry.Event) {
		if ev.Type == telemetry.EventSuccession {
			successions++
		}
	})

	// Sample population every 100 ticks for the mean.
	var popSum, popSamples int64
	for i := 0; i < ticks; i++ {
		s.Step()
		if i%100 == 0 {
			popSum += int64(s.Snapshot().Total)
			popSamples++
		}
	}

	snap := s.Snapshot()
	mean := 0.0
	if popSamples > 0 {
		mean = float64(popSum) / float64(popSamples)
	}
	return Result{
		Seed:            seed,
		Ticks:           ticks,
		Successions:     successions,
		MeanPopulation:  mean,
		FinalPopulation: snap.Total,
		FinalCageRadius: float64(snap.CageRadius),
	}
}
