// Package solve is the Lexicographic Solve Driver of spec §4.7, grounded
// on original_source/src/main.py::get_solver_results and
// original_source/src/optimization/objectives/objective_handler.py::solve_and_set_constraint,
// driving the model the way order_fulfillment/main.go drives its own
// single-objective solve: mip.NewSolver("highs", m), mip.NewSolveOptions,
// and solution.IsOptimal()/HasValues()/Value().
package solve

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/nextmv-io/sdk/mip"

	"github.com/nextmv-community/network-planner/model"
	"github.com/nextmv-community/network-planner/netset"
	"github.com/nextmv-community/network-planner/objectives"
	"github.com/nextmv-community/network-planner/params"
	"github.com/nextmv-community/network-planner/variables"
)

// Objective is one entry of the ordered objective list the driver is
// handed: a named objective from the Library, its priority (lower solves
// first), and the relaxation fraction applied to its optimum before the
// next priority level is compiled.
type Objective struct {
	Name        string
	Priority    int
	Relaxation  float64
}

// Limits bounds a single priority level's solve.
type Limits struct {
	Duration time.Duration
	// RelativeGap is the MIP gap tolerance (0 means solve to optimality).
	RelativeGap float64
}

// Result is the final variable valuation the driver produces, or a
// no-solution sentinel (spec §4.7 "Infeasibility").
type Result struct {
	Status      string // "optimal", "suboptimal", or "no_solution"
	Solution    mip.Solution
	Registry    *variables.Registry
	ObjectiveValues map[string]float64
}

// ErrInfeasible marks a priority level that the solver could not satisfy.
type ErrInfeasible struct {
	Objective string
	Priority  int
}

func (e *ErrInfeasible) Error() string {
	return fmt.Sprintf("solve: priority %d (%s) is infeasible", e.Priority, e.Objective)
}

// Run executes the full lexicographic solve for one scenario: it groups
// objectives by priority, sums same-priority objectives into the active
// objective, solves, reads back the optimum, and folds a relaxation bound
// into the next compile (spec §4.7 steps 1-6).
func Run(ctx context.Context, net *netset.Registry, p *params.Params, objs []Objective, limits Limits) (Result, error) {
	levels := groupByPriority(objs)

	var relaxations []model.Relaxation
	objectiveValues := make(map[string]float64)

	var lastSolution mip.Solution
	var lastReg *variables.Registry
	var lastStatus string

	for i, level := range levels {
		skipDemandEquality := false
		for _, o := range level {
			if o.Name == "Maximize Capacity" {
				skipDemandEquality = true
			}
		}

		m, reg := model.Compile(net, p, model.CompileOptions{
			SkipDemandEquality: skipDemandEquality,
			Relaxations:        relaxations,
		})

		m.Objective().SetMinimize()
		var builders []objectives.Builder
		for _, o := range level {
			b, err := objectives.Lookup(o.Name)
			if err != nil {
				return Result{}, err
			}
			builders = append(builders, b)
			b.Apply(objectives.ObjectiveTerm(m), reg, net.Sets, 1)
		}

		solution, status, err := solveOnce(ctx, m, limits)
		if err != nil {
			return Result{}, err
		}
		if status == "no_solution" {
			return Result{Status: "no_solution"}, nil
		}

		lastSolution, lastReg, lastStatus = solution, reg, status

		for _, b := range builders {
			v := b.Value(solution, reg, net.Sets)
			objectiveValues[b.Name] = v
		}

		isLast := i == len(levels)-1
		if !isLast {
			for _, o := range level {
				b, _ := objectives.Lookup(o.Name)
				v := objectiveValues[o.Name]
				maximizing := b.Sense == objectives.Maximize
				bound := v * (1 + o.Relaxation)
				if maximizing {
					bound = v * (1 - o.Relaxation)
				}
				relaxations = append(relaxations, model.Relaxation{
					Objective:  b,
					Bound:      bound,
					Maximizing: maximizing,
				})
			}
		}
	}

	return Result{
		Status:          lastStatus,
		Solution:        lastSolution,
		Registry:        lastReg,
		ObjectiveValues: objectiveValues,
	}, nil
}

func groupByPriority(objs []Objective) [][]Objective {
	byPriority := map[int][]Objective{}
	var priorities []int
	for _, o := range objs {
		if _, ok := byPriority[o.Priority]; !ok {
			priorities = append(priorities, o.Priority)
		}
		byPriority[o.Priority] = append(byPriority[o.Priority], o)
	}
	sort.Ints(priorities)
	levels := make([][]Objective, 0, len(priorities))
	for _, pr := range priorities {
		levels = append(levels, byPriority[pr])
	}
	return levels
}

// solveOnce invokes the external solver once and classifies the result
// per spec §7's error kinds: an optimal/suboptimal solve with values is
// reported as such; a solver timeout with no incumbent, or an infeasible
// result, both collapse to "no_solution".
func solveOnce(ctx context.Context, m mip.Model, limits Limits) (mip.Solution, string, error) {
	solver, err := mip.NewSolver("highs", m)
	if err != nil {
		return nil, "", fmt.Errorf("solve: creating solver: %w", err)
	}

	solveOptions := mip.NewSolveOptions()
	if err := solveOptions.SetMaximumDuration(limits.Duration); err != nil {
		return nil, "", fmt.Errorf("solve: setting duration: %w", err)
	}
	if err := solveOptions.SetMIPGapRelative(limits.RelativeGap); err != nil {
		return nil, "", fmt.Errorf("solve: setting gap: %w", err)
	}
	solveOptions.SetVerbosity(mip.Off)

	solution, err := solver.Solve(solveOptions)
	if err != nil {
		return nil, "", fmt.Errorf("solve: %w", err)
	}

	if solution == nil || !solution.HasValues() {
		return nil, "no_solution", nil
	}
	if solution.IsOptimal() {
		return solution, "optimal", nil
	}
	return solution, "suboptimal", nil
}
