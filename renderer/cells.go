// Package renderer draws the colony: the cage boundary, the cells, and the
// parent-child tethers.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/niche/camera"
	"github.com/pthm-cable/niche/components"
)

// Appearance is the visual style for one (lineage, state) pair.
type Appearance struct {
	Fill    rl.Color
	Outline rl.Color
}

// lineagePalette holds the base hue per lineage; cycled when there are more
// lineages than entries.
var lineagePalette = []rl.Color{
	{R: 102, G: 191, B: 255, A: 255}, // sky blue
	{R: 253, G: 249, B: 0, A: 255},   // yellow
	{R: 230, G: 41, B: 55, A: 255},   // red
	{R: 0, G: 228, B: 48, A: 255},    // green
	{R: 200, G: 122, B: 255, A: 255}, // purple
}

// CellRenderer draws cells using a lookup table keyed by (lineage, state).
// Appearance dispatch stays a table so rendering never branches on lifecycle
// policy.
type CellRenderer struct {
	table [][3]Appearance // [lineage][state]
}

// NewCellRenderer builds the appearance table for the given lineage count.
func NewCellRenderer(numLineages int) *CellRenderer {
	table := make([][3]Appearance, numLineages)
	for i := range table {
		base := lineagePalette[i%len(lineagePalette)]
		table[i] = [3]Appearance{
			components.StateDividing:    {Fill: base, Outline: rl.White},
			components.StateNonDividing: {Fill: fade(base, 0.65), Outline: rl.Gray},
			components.StateSenescent:   {Fill: desaturate(base), Outline: rl.DarkGray},
		}
	}
	return &CellRenderer{table: table}
}

// Appearance returns the style for a (lineage, state) pair.
func (r *CellRenderer) Appearance(lin uint8, st components.State) Appearance {
	if int(lin) >= len(r.table) {
		lin = 0
	}
	return r.table[lin][st]
}

// DrawCell draws one cell through the camera.
func (r *CellRenderer) DrawCell(cam *camera.Camera, pos components.Position, body components.Body, cell components.Cell) {
	if !cam.IsVisible(pos.X, pos.Y, body.Radius) {
		return
	}
	sx, sy := cam.WorldToScreen(pos.X, pos.Y)
	radius := body.Radius * cam.Zoom

	a := r.Appearance(cell.Lineage, cell.State)
	rl.DrawCircle(int32(sx), int32(sy), radius, a.Fill)
	rl.DrawCircleLines(int32(sx), int32(sy), radius, a.Outline)
}

// DrawTether draws a parent-child link.
func (r *CellRenderer) DrawTether(cam *camera.Camera, child, parent components.Position) {
	cx, cy := cam.WorldToScreen(child.X, child.Y)
	px, py := cam.WorldToScreen(parent.X, parent.Y)
	rl.DrawLine(int32(cx), int32(cy), int32(px), int32(py), rl.Fade(rl.White, 0.3))
}

func fade(c rl.Color, f float32) rl.Color {
	return rl.Color{
		R: uint8(float32(c.R) * f),
		G: uint8(float32(c.G) * f),
		B: uint8(float32(c.B) * f),
		A: c.A,
	}
}

func desaturate(c rl.Color) rl.Color {
	gray := uint8((int(c.R) + int(c.G) + int(c.B)) / 3)
	return rl.Color{
		R: uint8((int(c.R) + int(gray)*2) / 3),
		G: uint8((int(c.G) + int(gray)*2) / 3),
		B: uint8((int(c.B) + int(gray)*2) / 3),
		A: c.A,
	}
}
