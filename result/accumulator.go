package result

import (
	"sync"

	"github.com/nextmv-community/network-planner/tables"
)

// Accumulator serializes per-table row appends across concurrently
// solved scenarios (spec §5: "result accumulation serializes appended
// rows per table"). Safe for concurrent use by multiple scenario workers.
type Accumulator struct {
	mu     sync.Mutex
	tables map[string]tables.Table
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{tables: make(map[string]tables.Table)}
}

// Add appends one scenario's extracted tables into the accumulator,
// initializing each named table's column list from the first scenario
// that reports it.
func (a *Accumulator) Add(scenarioTables map[string]tables.Table) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for name, t := range scenarioTables {
		existing, ok := a.tables[name]
		if !ok {
			a.tables[name] = t.Clone()
			continue
		}
		a.tables[name] = existing.Append(t.Rows...)
	}
}

// Snapshot returns a deep copy of the accumulated tables, safe to hand to
// a Writer adapter without further locking.
func (a *Accumulator) Snapshot() map[string]tables.Table {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]tables.Table, len(a.tables))
	for name, t := range a.tables {
		out[name] = t.Clone()
	}
	return out
}
