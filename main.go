package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/niche/camera"
	"github.com/pthm-cable/niche/components"
	"github.com/pthm-cable/niche/config"
	"github.com/pthm-cable/niche/renderer"
	"github.com/pthm-cable/niche/sim"
	"github.com/pthm-cable/niche/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	opts := sim.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	}

	if *headless {
		runHeadless(opts, *maxTicks, *stepsPerUpdate)
		return
	}

	runGraphical(cfg, opts, *maxTicks)
}

func runHeadless(opts sim.Options, maxTicks, stepsPerUpdate int) {
	s := sim.NewSimulation(opts)
	defer s.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"steps_per_update", stepsPerUpdate,
	)

	for {
		for i := 0; i < stepsPerUpdate; i++ {
			s.Step()
		}
		if maxTicks > 0 && int(s.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", s.Tick())
			return
		}
	}
}

func runGraphical(cfg *config.Config, opts sim.Options, maxTicks int) {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Clonal Niche")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	s := sim.NewSimulation(opts)
	defer s.Unload()

	cam := camera.New(
		float32(cfg.Screen.Width), float32(cfg.Screen.Height),
		float32(cfg.Cage.MaxRadius),
	)
	cells := renderer.NewCellRenderer(cfg.Derived.NumLineages)
	hud := ui.NewHUD()
	controls := ui.NewControlsPanel(10, float32(cfg.Screen.Height)-40, float32(cfg.Screen.Width)-20)

	lineageNames := make([]string, len(cfg.Lineages))
	for i, ln := range cfg.Lineages {
		lineageNames[i] = ln.Name
	}

	for !rl.WindowShouldClose() {
		handleInput(s, cam)

		s.Step()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 10, G: 14, B: 24, A: 255})

		renderer.DrawCage(cam, s.Cage().Radius, s.Cage().Target)
		s.ForEachTether(func(child, parent components.Position) {
			cells.DrawTether(cam, child, parent)
		})
		s.ForEachCell(func(v sim.CellView) {
			cells.DrawCell(cam, v.Pos, v.Body, v.Cell)
		})

		hud.Draw(ui.HUDData{
			Snapshot:     s.Snapshot(),
			LineageNames: lineageNames,
			FPS:          rl.GetFPS(),
			Paused:       !s.Running(),
			Speed:        s.Speed(),
			MaxCells:     s.MaxCells(),
		})

		actions := controls.Draw(cfg.Clock.Speeds, s.Speed(), s.MaxCells(), !s.Running())
		applyActions(s, actions)

		rl.EndDrawing()

		if maxTicks > 0 && int(s.Tick()) >= maxTicks {
			break
		}
	}
}

// handleInput processes keyboard and mouse controls.
func handleInput(s *sim.Simulation, cam *camera.Camera) {
	if rl.IsKeyPressed(rl.KeySpace) {
		if s.Running() {
			s.Stop()
		} else {
			s.Start()
		}
	}
	if rl.IsKeyPressed(rl.KeyR) {
		s.Reset()
	}
	if rl.IsKeyPressed(rl.KeyOne) {
		s.SetSpeed(1)
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		s.SetSpeed(2)
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		s.SetSpeed(4)
	}
	if rl.IsKeyPressed(rl.KeyC) {
		cam.Reset()
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		mouse := rl.GetMousePosition()
		factor := float32(1.1)
		if wheel < 0 {
			factor = 1 / factor
		}
		cam.ZoomAt(factor, mouse.X, mouse.Y)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		cam.Pan(delta.X, delta.Y)
	}
}

func applyActions(s *sim.Simulation, actions ui.Actions) {
	if actions.Speed != 0 {
		s.SetSpeed(actions.Speed)
	}
	if actions.MaxCells != 0 {
		s.SetMaxCells(actions.MaxCells)
	}
	if actions.TogglePause {
		if s.Running() {
			s.Stop()
		} else {
			s.Start()
		}
	}
	if actions.Reset {
		s.Reset()
	}
}
