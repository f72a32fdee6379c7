// package main is the reference CLI wiring for the network planner (spec
// §6): a thin demo binary, not the core itself — the CLI surface is an
// out-of-scope external collaborator per spec §1. It follows the
// teacher's run.CLI convention (order_fulfillment/main.go): a plain
// solver(input, Option) ([]Output, error) function handed to
// run.CLI(...).Run(ctx), rather than reimplementing the original's
// bespoke "<input-path> --output --log-level" contract verbatim.
package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nextmv-io/sdk/run"

	"github.com/nextmv-community/network-planner/internal/obslog"
	"github.com/nextmv-community/network-planner/netset"
	"github.com/nextmv-community/network-planner/params"
	"github.com/nextmv-community/network-planner/result"
	"github.com/nextmv-community/network-planner/scenario"
	"github.com/nextmv-community/network-planner/solve"
	"github.com/nextmv-community/network-planner/tables"
)

func main() {
	err := run.CLI(plan).Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
}

// input is the full, unsplit table set (spec §6), JSON-shaped as
// {"tables": {"nodes": [{...}], "demand": [{...}], ...}}.
type input struct {
	Tables map[string][]map[string]string `json:"tables"`
}

// objectiveOption is one ordered-objective entry (spec §4.7's contract),
// supplied on the command line / request body rather than read from an
// "objectives" input table, so a single run can be pointed at different
// objective orderings without editing the table set.
type objectiveOption struct {
	Name       string  `json:"name"`
	Priority   int     `json:"priority"`
	Relaxation float64 `json:"relaxation"`
}

// Option is the run.CLI options struct, the planner analogue of the
// teacher's Option (order_fulfillment/main.go), filled from `default`
// tags the same way.
type Option struct {
	Limits struct {
		Duration time.Duration `json:"duration" default:"30s"`
	} `json:"limits"`
	GapLimit    float64           `json:"gap_limit" default:"0.01"`
	Concurrency int               `json:"concurrency" default:"4"`
	LogLevel    string            `json:"log_level" default:"INFO"`
	Objectives  []objectiveOption `json:"objectives"`
}

// Output is one scenario's final result: status plus every extracted
// variable-family table, keyed by family name (spec §4.8).
type Output struct {
	Scenario string                    `json:"scenario"`
	Status   string                    `json:"status"`
	Tables   map[string][]map[string]string `json:"tables"`
}

func plan(in input, opts Option) ([]Output, error) {
	level, err := obslog.ParseLevel(opts.LogLevel)
	if err != nil {
		level = obslog.Info
	}
	logger := obslog.New(level, uuid.New().String())

	tableSet := toTableSet(in.Tables)

	scenarios := scenario.Scenarios(tableSet)
	if len(scenarios) == 0 {
		scenarios = []string{"default"}
	}
	expanded := scenario.Split(tableSet, scenarios)

	var objs []solve.Objective
	for _, o := range opts.Objectives {
		objs = append(objs, solve.Objective{Name: o.Name, Priority: o.Priority, Relaxation: o.Relaxation})
	}
	if len(objs) == 0 {
		objs = []solve.Objective{{Name: "Minimize Cost", Priority: 1, Relaxation: 0}}
	}

	acc := result.NewAccumulator()
	outputs := make([]Output, 0, len(scenarios))
	var statusMu sync.Mutex
	statuses := make(map[string]string, len(scenarios))

	work := make([]scenario.Work, 0, len(scenarios))
	for _, s := range scenarios {
		work = append(work, scenario.Work{ID: s, Tables: scenario.Filter(expanded, s)})
	}

	errs := scenario.RunAll(context.Background(), work, opts.Concurrency, func(ctx context.Context, w scenario.Work) error {
		net, warnings, err := netset.Derive(w.Tables)
		if err != nil {
			return fmt.Errorf("scenario %s: deriving network: %w", w.ID, err)
		}
		for _, warn := range warnings {
			logger.Warnf("scenario %s: %s", w.ID, warn)
		}

		p := params.Derive(w.Tables)

		res, err := solve.Run(ctx, net, p, objs, solve.Limits{
			Duration:    opts.Limits.Duration,
			RelativeGap: opts.GapLimit,
		})
		if err != nil {
			return fmt.Errorf("scenario %s: solving: %w", w.ID, err)
		}
		statusMu.Lock()
		statuses[w.ID] = res.Status
		statusMu.Unlock()

		if res.Status == "no_solution" {
			acc.Add(map[string]tables.Table{})
			return nil
		}

		extracted := result.Extract(res.Solution, res.Registry, w.ID)
		acc.Add(extracted)
		return nil
	})
	for id, scenarioErr := range errs {
		logger.Errorf("scenario %s failed: %v", id, scenarioErr)
	}

	snapshot := acc.Snapshot()
	for _, s := range scenarios {
		status := statuses[s]
		if _, failed := errs[s]; failed {
			status = "no_solution"
		}
		outputs = append(outputs, Output{
			Scenario: s,
			Status:   status,
			Tables:   fromTableSnapshot(snapshot, s),
		})
	}

	return outputs, nil
}

func toTableSet(in map[string][]map[string]string) tables.Set {
	set := make(tables.Set, len(in))
	for name, rows := range in {
		t := tables.Table{Name: name}
		seen := map[string]bool{}
		for _, row := range rows {
			r := make(tables.Row, len(row))
			for k, v := range row {
				r[k] = v
				if !seen[k] {
					seen[k] = true
					t.Columns = append(t.Columns, k)
				}
			}
			t.Rows = append(t.Rows, r)
		}
		set[name] = t
	}
	return set
}

func fromTableSnapshot(snapshot map[string]tables.Table, scenarioID string) map[string][]map[string]string {
	out := make(map[string][]map[string]string, len(snapshot))
	for name, t := range snapshot {
		var rows []map[string]string
		for _, r := range t.Rows {
			if r["Scenario"] != scenarioID {
				continue
			}
			row := make(map[string]string, len(r))
			for k, v := range r {
				row[k] = v
			}
			rows = append(rows, row)
		}
		if len(rows) > 0 {
			out[name] = rows
		}
	}
	return out
}
