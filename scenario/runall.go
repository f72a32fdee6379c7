package scenario

import (
	"context"
	"sync"

	"github.com/nextmv-community/network-planner/tables"
)

// Work is one scenario's unit of work: the scenario-filtered table set it
// was handed and its identifier.
type Work struct {
	ID     string
	Tables tables.Set
}

// RunAll drives every scenario's fn concurrently, bounded by concurrency,
// the Go analogue of the "embarrassingly parallel" cross-scenario fan-out
// spec §5 allows (distinct scenarios share only the read-only input
// tables). Built on stdlib sync.WaitGroup plus a buffered-channel
// semaphore rather than a third-party worker-pool library — no example in
// the pack exercises this kind of fan-out, so stdlib is the grounded,
// justified choice (see DESIGN.md). fn's error, if any, is attributed to
// its scenario but does not cancel sibling scenarios: per spec §7,
// "infeasibility... is non-fatal across scenarios" and unrelated adapter
// failures shouldn't abort work already in flight.
func RunAll(ctx context.Context, work []Work, concurrency int, fn func(ctx context.Context, w Work) error) map[string]error {
	if concurrency <= 0 {
		concurrency = 1
	}

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	errs := make(map[string]error)

	for _, w := range work {
		w := w
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			if err := ctx.Err(); err != nil {
				mu.Lock()
				errs[w.ID] = err
				mu.Unlock()
				return
			}

			if err := fn(ctx, w); err != nil {
				mu.Lock()
				errs[w.ID] = err
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return errs
}
