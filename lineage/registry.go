// Package lineage tracks the stem-cell pool: one record per clone with a
// division budget and an active flag. Exactly one lineage is active at a time;
// the rest are suppressed.
package lineage

import "github.com/pthm-cable/niche/config"

// Record is the bookkeeping for one clone.
type Record struct {
	Name           string
	DivisionsLeft  int
	DivisionBudget int // full budget, restored on succession
	Active         bool
}

// Registry holds all lineage records and enforces mutual exclusion of the
// active flag.
type Registry struct {
	records []Record
	active  int
}

// NewRegistry builds a registry from the configured lineage set and activates
// the first lineage.
func NewRegistry(lineages []config.LineageConfig) *Registry {
	r := &Registry{
		records: make([]Record, len(lineages)),
	}
	for i, ln := range lineages {
		r.records[i] = Record{
			Name:           ln.Name,
			DivisionsLeft:  ln.DivisionBudget,
			DivisionBudget: ln.DivisionBudget,
		}
	}
	if len(r.records) > 0 {
		r.records[0].Active = true
	}
	return r
}

// Len returns the number of lineages.
func (r *Registry) Len() int {
	return len(r.records)
}

// ActiveIndex returns the index of the currently active lineage.
func (r *Registry) ActiveIndex() int {
	return r.active
}

// Record returns a copy of the record at index i.
func (r *Registry) Record(i int) Record {
	return r.records[i]
}

// IsActive reports whether lineage i is the active one.
func (r *Registry) IsActive(i int) bool {
	return i >= 0 && i < len(r.records) && r.records[i].Active
}

// RecordDivision decrements the division budget of lineage i if it is the
// active lineage. The budget is informational bookkeeping: it does not gate
// cell-level division, and may go negative if the clone outlives its nominal
// budget before succession fires.
func (r *Registry) RecordDivision(i int) {
	if r.IsActive(i) {
		r.records[i].DivisionsLeft--
	}
}

// NextIndex returns the lineage that succeeds the active one, using a fixed
// round-robin over the configured order.
func (r *Registry) NextIndex() int {
	if len(r.records) == 0 {
		return 0
	}
	return (r.active + 1) % len(r.records)
}

// Succeed refills the outgoing lineage's budget, suppresses it, and activates
// the next lineage in round-robin order. Returns (from, to) indices.
func (r *Registry) Succeed() (from, to int) {
	from = r.active
	to = r.NextIndex()

	r.records[from].DivisionsLeft = r.records[from].DivisionBudget
	r.records[from].Active = false
	r.records[to].Active = true
	r.active = to
	return from, to
}

// ActiveCount returns the number of active records. Always 1 for a non-empty
// registry; exposed for invariant checks.
func (r *Registry) ActiveCount() int {
	n := 0
	for i := range r.records {
		if r.records[i].Active {
			n++
		}
	}
	return n
}
