package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/nextmv-io/sdk/mip"
)

// HighsSolver is the reference Solver implementation: it drives the
// "highs" provider bundled with github.com/nextmv-io/sdk, the same one
// order_fulfillment/main.go uses (mip.NewSolver("highs", m)).
type HighsSolver struct{}

func (HighsSolver) Solve(ctx context.Context, m mip.Model, timeLimit time.Duration, relativeGap float64) (mip.Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	solver, err := mip.NewSolver("highs", m)
	if err != nil {
		return nil, fmt.Errorf("adapters: creating solver: %w", err)
	}

	opts := mip.NewSolveOptions()
	if err := opts.SetMaximumDuration(timeLimit); err != nil {
		return nil, fmt.Errorf("adapters: setting duration: %w", err)
	}
	if err := opts.SetMIPGapRelative(relativeGap); err != nil {
		return nil, fmt.Errorf("adapters: setting gap: %w", err)
	}
	opts.SetVerbosity(mip.Off)

	solution, err := solver.Solve(opts)
	if err != nil {
		return nil, fmt.Errorf("adapters: solving: %w", err)
	}
	return solution, nil
}
