package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/niche/camera"
)

// DrawCage draws the containment boundary: the current radius as a solid
// ring and the target radius as a faint one when they differ.
func DrawCage(cam *camera.Camera, radius, target float32) {
	cx, cy := cam.WorldToScreen(0, 0)

	rl.DrawCircleLines(int32(cx), int32(cy), radius*cam.Zoom, rl.Fade(rl.SkyBlue, 0.8))

	diff := radius - target
	if diff < 0 {
		diff = -diff
	}
	if diff > 1 {
		rl.DrawCircleLines(int32(cx), int32(cy), target*cam.Zoom, rl.Fade(rl.SkyBlue, 0.25))
	}
}
