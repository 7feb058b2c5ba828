// Package systems provides the per-tick building blocks of the simulation:
// spatial indexing, containment, lifecycle, division, and succession.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/niche/components"
)

// Neighbor holds a nearby entity with precomputed spatial data.
type Neighbor struct {
	E      ecs.Entity
	DX, DY float32 // delta from query origin
	DistSq float32 // squared distance (avoid sqrt in hot path)
}

// SpatialGrid provides O(1) neighbor lookups using a cell-based grid.
// Coordinates are cage-centered: the grid covers [-halfExtent, halfExtent]
// on both axes with no wrap-around.
type SpatialGrid struct {
	cellSize   float32
	cols       int
	rows       int
	halfExtent float32
	cells      [][]ecs.Entity
}

// NewSpatialGrid creates a spatial grid covering a square of the given half
// extent around the origin.
func NewSpatialGrid(halfExtent, cellSize float32) *SpatialGrid {
	cols := int(2*halfExtent/cellSize) + 1
	rows := cols

	cells := make([][]ecs.Entity, cols*rows)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 8) // pre-allocate small capacity
	}

	return &SpatialGrid{
		cellSize:   cellSize,
		cols:       cols,
		rows:       rows,
		halfExtent: halfExtent,
		cells:      cells,
	}
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity to the grid at the given position.
func (g *SpatialGrid) Insert(e ecs.Entity, x, y float32) {
	idx := g.cellIndex(x, y)
	if idx >= 0 && idx < len(g.cells) {
		g.cells[idx] = append(g.cells[idx], e)
	}
}

// cellIndex maps a position to a flat cell index, clamping to the grid edge.
func (g *SpatialGrid) cellIndex(x, y float32) int {
	col := g.clampCol(int((x + g.halfExtent) / g.cellSize))
	row := g.clampRow(int((y + g.halfExtent) / g.cellSize))
	return row*g.cols + col
}

func (g *SpatialGrid) clampCol(c int) int {
	if c < 0 {
		return 0
	}
	if c >= g.cols {
		return g.cols - 1
	}
	return c
}

func (g *SpatialGrid) clampRow(r int) int {
	if r < 0 {
		return 0
	}
	if r >= g.rows {
		return g.rows - 1
	}
	return r
}

// MaxQueryResults caps the number of neighbors returned by spatial queries.
// This prevents density spikes from causing unbounded work.
const MaxQueryResults = 64

// QueryRadiusInto finds entities within radius of (x, y) and appends them to
// dst (up to MaxQueryResults). Returns the updated slice. Reuse dst across
// calls to avoid allocations. An empty grid yields an empty result.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, x, y, radius float32, exclude ecs.Entity, posMap *ecs.Map1[components.Position]) []Neighbor {
	cellRadius := int(radius/g.cellSize) + 1

	centerCol := g.clampCol(int((x + g.halfExtent) / g.cellSize))
	centerRow := g.clampRow(int((y + g.halfExtent) / g.cellSize))

	radiusSq := radius * radius

	for dc := -cellRadius; dc <= cellRadius; dc++ {
		col := centerCol + dc
		if col < 0 || col >= g.cols {
			continue
		}
		for dr := -cellRadius; dr <= cellRadius; dr++ {
			row := centerRow + dr
			if row < 0 || row >= g.rows {
				continue
			}
			idx := row*g.cols + col

			for _, e := range g.cells[idx] {
				if e == exclude {
					continue
				}
				pos := posMap.Get(e)
				if pos == nil {
					continue
				}
				dx := pos.X - x
				dy := pos.Y - y
				distSq := dx*dx + dy*dy
				if distSq > radiusSq {
					continue
				}
				dst = append(dst, Neighbor{E: e, DX: dx, DY: dy, DistSq: distSq})
				if len(dst) >= MaxQueryResults {
					return dst
				}
			}
		}
	}

	return dst
}
