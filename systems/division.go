package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/niche/components"
	"github.com/pthm-cable/niche/config"
)

// CanAttemptDivision checks the per-cell division gates: lifecycle state,
// the canDivide flag, cooldown, and population capacity. The forced-senescence
// edge case is checked by the caller first; if it triggers, the attempt is
// aborted and the cell becomes Senescent instead.
func CanAttemptDivision(cell *components.Cell, pop, capacity int) bool {
	return cell.State == components.StateDividing &&
		cell.CanDivide &&
		cell.Cooldown == 0 &&
		pop < capacity
}

// ProbeChildPosition runs a bounded search for a non-overlapping child
// position near the parent, inside the cage. If no valid position is found
// within the attempt budget, it falls back to a spot offset from the parent
// toward the cage center, which always satisfies the boundary constraint.
func ProbeChildPosition(
	rng *rand.Rand,
	parent ecs.Entity,
	parentPos *components.Position,
	bodyRadius float32,
	cage *Cage,
	grid *SpatialGrid,
	posMap *ecs.Map1[components.Position],
	cfg *config.DivisionConfig,
	scratch []Neighbor,
) components.Position {
	offset := float32(cfg.SpawnOffset) * bodyRadius
	minSep := 2 * bodyRadius

	for i := 0; i < cfg.ProbeAttempts; i++ {
		angle := rng.Float32() * 2 * math.Pi
		dist := offset + rng.Float32()*bodyRadius
		x := parentPos.X + cosf(angle)*dist
		y := parentPos.Y + sinf(angle)*dist

		if !cage.Contains(x, y, bodyRadius) {
			continue
		}

		scratch = grid.QueryRadiusInto(scratch[:0], x, y, minSep, parent, posMap)
		if len(scratch) == 0 {
			return components.Position{X: x, Y: y}
		}
	}

	// Fallback: step from the parent toward the cage center. Overlap is
	// tolerated; the repulsion impulse and containment sort it out.
	dist := sqrtf(parentPos.X*parentPos.X + parentPos.Y*parentPos.Y)
	if dist < 1e-3 {
		return components.Position{X: parentPos.X + minSep, Y: parentPos.Y}
	}
	scale := (dist - offset) / dist
	return components.Position{X: parentPos.X * scale, Y: parentPos.Y * scale}
}

// ApplyDivisionImpulse pushes parent and child apart along their axis.
func ApplyDivisionImpulse(parentPos, childPos *components.Position, parentVel, childVel *components.Velocity, impulse float32) {
	dx := childPos.X - parentPos.X
	dy := childPos.Y - parentPos.Y
	dist := sqrtf(dx*dx + dy*dy)
	if dist < 1e-3 {
		dx, dy, dist = 1, 0, 1
	}
	nx := dx / dist
	ny := dy / dist

	childVel.X += nx * impulse
	childVel.Y += ny * impulse
	parentVel.X -= nx * impulse
	parentVel.Y -= ny * impulse
}

func cosf(a float32) float32 { return float32(math.Cos(float64(a))) }
func sinf(a float32) float32 { return float32(math.Sin(float64(a))) }
