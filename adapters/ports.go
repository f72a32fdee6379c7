// Package adapters defines the external-interface ports of spec §6: the
// core depends only on these, never on a concrete file format or solver
// binary (those are out-of-scope external collaborators per spec §1).
package adapters

import (
	"context"
	"time"

	"github.com/nextmv-io/sdk/mip"

	"github.com/nextmv-community/network-planner/tables"
)

// Reader loads a full tables.Set for a run (all scenarios, unsplit).
type Reader interface {
	Read(ctx context.Context) (tables.Set, error)
}

// Writer persists the result extractor's output, keyed by logical sheet
// name (spec §4.8).
type Writer interface {
	Write(ctx context.Context, sheets map[string]tables.Table) error
}

// Solver drives an external MILP solver process against a compiled model
// (spec §4.7's "Solver adapter contract"). Implementations are expected to
// be non-shareable per solve and released on every exit path.
type Solver interface {
	Solve(ctx context.Context, m mip.Model, timeLimit time.Duration, relativeGap float64) (mip.Solution, error)
}
