// Package ui renders the heads-up display and the control panel.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/niche/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Snapshot     telemetry.Snapshot
	LineageNames []string
	FPS          int32
	Paused       bool
	Speed        int
	MaxCells     int
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	snap := data.Snapshot

	rl.DrawText("Clonal Niche", 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Cells: %d / %d | Dividing: %d | NonDividing: %d | Senescent: %d",
			snap.Total, data.MaxCells,
			snap.PerState[0], snap.PerState[1], snap.PerState[2]),
		10, 35, 16, rl.LightGray,
	)

	lineageLine := ""
	for i, name := range data.LineageNames {
		if i > 0 {
			lineageLine += " | "
		}
		marker := ""
		if i == snap.ActiveLineage {
			marker = "*"
		}
		count := 0
		if i < len(snap.PerLineage) {
			count = snap.PerLineage[i]
		}
		lineageLine += fmt.Sprintf("%s%s: %d", marker, name, count)
	}
	rl.DrawText(lineageLine, 10, 55, 16, rl.LightGray)

	rl.DrawText(
		fmt.Sprintf("Budget: %d | Death signals: %d | Cage: %.0f -> %.0f",
			snap.DivisionsLeft, snap.DeathSignals, snap.CageRadius, snap.CageTarget),
		10, 75, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Day %d %02d:%02d | Tick: %d | Speed: %dx | FPS: %d",
			snap.Day, snap.Hour, snap.Minute, snap.Tick, data.Speed, data.FPS),
		10, 95, 16, rl.LightGray,
	)

	statusText := "Running"
	statusColor := rl.Green
	if data.Paused {
		statusText = "PAUSED"
		statusColor = rl.Yellow
	}
	rl.DrawText(statusText, 10, 115, 16, statusColor)
}
