package sim

import "github.com/pthm-cable/niche/components"

// CellView is a read-only view of one cell for rendering.
type CellView struct {
	Pos  components.Position
	Body components.Body
	Cell components.Cell
}

// ForEachCell calls fn for every cell. Views are copies; mutations do not
// reach the simulation.
func (s *Simulation) ForEachCell(fn func(CellView)) {
	query := s.filter.Query()
	for query.Next() {
		pos, _, body, cell, _ := query.Get()
		fn(CellView{Pos: *pos, Body: *body, Cell: *cell})
	}
}

// ForEachTether calls fn with the endpoints of every live parent-child link.
func (s *Simulation) ForEachTether(fn func(child, parent components.Position)) {
	query := s.filter.Query()
	for query.Next() {
		pos, _, _, _, tether := query.Get()
		if !tether.Active() || !s.world.Alive(tether.Parent) {
			continue
		}
		parentPos := s.posMap.Get(tether.Parent)
		if parentPos == nil {
			continue
		}
		fn(*pos, *parentPos)
	}
}
