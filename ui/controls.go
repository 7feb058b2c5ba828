package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Actions holds the user intents gathered from one frame of the control
// panel. Zero values mean "no change".
type Actions struct {
	Speed       int // 0 = unchanged
	MaxCells    int // 0 = unchanged
	TogglePause bool
	Reset       bool
}

// ControlsPanel renders speed, capacity, and run controls along the bottom
// of the screen.
type ControlsPanel struct {
	x, y  float32
	width float32
}

// NewControlsPanel creates a controls panel anchored at (x, y).
func NewControlsPanel(x, y, width float32) *ControlsPanel {
	return &ControlsPanel{x: x, y: y, width: width}
}

// Draw renders the panel and returns the actions the user requested.
func (c *ControlsPanel) Draw(speeds []int, currentSpeed, maxCells int, paused bool) Actions {
	var actions Actions

	x := c.x
	y := c.y

	// Speed buttons
	for _, s := range speeds {
		label := fmt.Sprintf("%dx", s)
		if s == currentSpeed {
			label = "[" + label + "]"
		}
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: 44, Height: 24}, label) {
			actions.Speed = s
		}
		x += 50
	}
	x += 12

	pauseLabel := "Pause"
	if paused {
		pauseLabel = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 70, Height: 24}, pauseLabel) {
		actions.TogglePause = true
	}
	x += 78

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 60, Height: 24}, "Reset") {
		actions.Reset = true
	}
	x += 80

	// Capacity slider
	rl.DrawText("Max cells", int32(x), int32(y)-14, 12, rl.Gray)
	newMax := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: c.width - (x - c.x) - 60, Height: 24},
		"10", "500",
		float32(maxCells), 10, 500,
	)
	rl.DrawText(fmt.Sprintf("%d", maxCells), int32(c.x+c.width-50), int32(y)+4, 16, rl.LightGray)
	if int(newMax) != maxCells {
		actions.MaxCells = int(newMax)
	}

	return actions
}
