// Package objectives is the Objective Library of spec §4.6, grounded on
// original_source/src/optimization/objectives/objective_functions.py and
// original_source/src/optimization/variables/objective_builder.py. Every
// entry is a linear expression over variables declared in package
// variables (grand-total or metric scalars, or, for dropped and carried-over
// volume, sums of indexed variables), so a lexicographic level can both
// minimize it and, at the next level, bound it with a relaxation
// constraint (spec §4.7).
package objectives

import (
	"fmt"

	"github.com/nextmv-io/sdk/mip"

	"github.com/nextmv-community/network-planner/netset"
	"github.com/nextmv-community/network-planner/variables"
)

// Sense is the optimization direction of a named objective.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

// AddTerm adds coefficient*variable to whatever linear expression the
// caller is accumulating into — m.Objective() when wiring the active
// objective, or a freshly created mip.Constraint when applying a
// lex-solve relaxation bound (spec §4.7). variable is always one of
// mip.Bool, mip.Int, or mip.Float, matching the registry's own variable
// kinds.
type AddTerm func(coefficient float64, variable any)

// Builder names one objective from spec §4.6's table.
type Builder struct {
	Name  string
	Sense Sense
	// Apply adds coefficient * (this objective's expression) via add.
	Apply func(add AddTerm, reg *variables.Registry, sets netset.Sets, coefficient float64)
	// Value reads the objective's realized value out of a solved model,
	// independent of any weight applied during solving.
	Value func(sol mip.Solution, reg *variables.Registry, sets netset.Sets) float64
}

// ObjectiveTerm wraps m.Objective().NewTerm behind the AddTerm signature,
// dispatching on the registry's three variable kinds the way every
// constraints/* package already does when it mixes Bool/Int/Float terms
// on one mip.Constraint.
func ObjectiveTerm(m mip.Model) AddTerm {
	return func(coefficient float64, variable any) {
		switch v := variable.(type) {
		case mip.Bool:
			m.Objective().NewTerm(coefficient, v)
		case mip.Int:
			m.Objective().NewTerm(coefficient, v)
		case mip.Float:
			m.Objective().NewTerm(coefficient, v)
		}
	}
}

// ConstraintTerm wraps a constraint's NewTerm behind the AddTerm
// signature, used to reapply an objective's expression as a relaxation
// bound (package model).
func ConstraintTerm(con mip.Constraint) AddTerm {
	return func(coefficient float64, variable any) {
		switch v := variable.(type) {
		case mip.Bool:
			con.NewTerm(coefficient, v)
		case mip.Int:
			con.NewTerm(coefficient, v)
		case mip.Float:
			con.NewTerm(coefficient, v)
		}
	}
}

// Library is the name -> Builder map the solve driver looks objectives up
// in, keyed exactly as spec §4.6 names them.
var Library = map[string]Builder{
	"Minimize Cost":                     minimizeCost,
	"Minimize Dropped Volume":           minimizeDroppedVolume,
	"Minimize Carried Over Volume":      minimizeCarriedOverVolume,
	"Minimize Plan-Over-Plan Change":    minimizePlanOverPlanChange,
	"Minimize Maximum Utilization":      minimizeMaxUtilization,
	"Minimize Maximum Transit Distance": minimizeMaxTransitDistance,
	"Minimize Maximum Age":              minimizeMaxAge,
	"Maximize Capacity":                 maximizeCapacity,
}

// Lookup returns the named objective builder, or an error if spec §4.6
// does not define it.
func Lookup(name string) (Builder, error) {
	b, ok := Library[name]
	if !ok {
		return Builder{}, fmt.Errorf("objectives: unknown objective %q", name)
	}
	return b, nil
}

var minimizeCost = Builder{
	Name:  "Minimize Cost",
	Sense: Minimize,
	Apply: func(add AddTerm, reg *variables.Registry, sets netset.Sets, c float64) {
		for _, v := range costGrandTotals(reg) {
			add(c, v)
		}
	},
	Value: func(sol mip.Solution, reg *variables.Registry, sets netset.Sets) float64 {
		total := 0.0
		for _, v := range costGrandTotals(reg) {
			total += sol.Value(v)
		}
		return total
	},
}

func costGrandTotals(reg *variables.Registry) []mip.Float {
	return []mip.Float{
		reg.Cost.TransportationCostGrand,
		reg.Cost.OperatingCostGrand,
		reg.Cost.CarriedAndDroppedGrand,
		reg.Cost.LaunchGrand,
		reg.Cost.ShutDownGrand,
		reg.Cost.AgeViolationGrand,
		reg.Cost.ResourceCostGrand,
		reg.Cost.CCapacityOptionGrand,
		reg.Cost.TCapacityOptionGrand,
		reg.Pop.PopGrand,
	}
}

var minimizeDroppedVolume = Builder{
	Name:  "Minimize Dropped Volume",
	Sense: Minimize,
	Apply: func(add AddTerm, reg *variables.Registry, sets netset.Sets, c float64) {
		for _, n := range sets.Nodes {
			for _, prod := range sets.Products {
				for _, t := range sets.Periods {
					add(c, reg.Age.DroppedDemand.Get(variables.Tup3{A: n, B: prod, C: t}))
				}
			}
		}
	},
	Value: func(sol mip.Solution, reg *variables.Registry, sets netset.Sets) float64 {
		total := 0.0
		for _, n := range sets.Nodes {
			for _, prod := range sets.Products {
				for _, t := range sets.Periods {
					total += sol.Value(reg.Age.DroppedDemand.Get(variables.Tup3{A: n, B: prod, C: t}))
				}
			}
		}
		return total
	},
}

var minimizeCarriedOverVolume = Builder{
	Name:  "Minimize Carried Over Volume",
	Sense: Minimize,
	Apply: func(add AddTerm, reg *variables.Registry, sets netset.Sets, c float64) {
		for _, n := range sets.Nodes {
			for _, prod := range sets.Products {
				for _, t := range sets.Periods {
					add(c, reg.Age.IBCarriedOverDemand.Get(variables.Tup3{A: n, B: prod, C: t}))
					add(c, reg.Age.OBCarriedOverDemand.Get(variables.Tup3{A: n, B: prod, C: t}))
				}
			}
		}
	},
	Value: func(sol mip.Solution, reg *variables.Registry, sets netset.Sets) float64 {
		total := 0.0
		for _, n := range sets.Nodes {
			for _, prod := range sets.Products {
				for _, t := range sets.Periods {
					total += sol.Value(reg.Age.IBCarriedOverDemand.Get(variables.Tup3{A: n, B: prod, C: t}))
					total += sol.Value(reg.Age.OBCarriedOverDemand.Get(variables.Tup3{A: n, B: prod, C: t}))
				}
			}
		}
		return total
	},
}

var minimizePlanOverPlanChange = Builder{
	Name:  "Minimize Plan-Over-Plan Change",
	Sense: Minimize,
	Apply: func(add AddTerm, reg *variables.Registry, sets netset.Sets, c float64) {
		add(c, reg.Metrics.TotalVolumeMoved)
	},
	Value: func(sol mip.Solution, reg *variables.Registry, sets netset.Sets) float64 {
		return sol.Value(reg.Metrics.TotalVolumeMoved)
	},
}

var minimizeMaxUtilization = Builder{
	Name:  "Minimize Maximum Utilization",
	Sense: Minimize,
	Apply: func(add AddTerm, reg *variables.Registry, sets netset.Sets, c float64) {
		add(c, reg.Metrics.MaxCapacityUtilization)
	},
	Value: func(sol mip.Solution, reg *variables.Registry, sets netset.Sets) float64 {
		return sol.Value(reg.Metrics.MaxCapacityUtilization)
	},
}

var minimizeMaxTransitDistance = Builder{
	Name:  "Minimize Maximum Transit Distance",
	Sense: Minimize,
	Apply: func(add AddTerm, reg *variables.Registry, sets netset.Sets, c float64) {
		add(c, reg.Metrics.MaxTransitDistance)
	},
	Value: func(sol mip.Solution, reg *variables.Registry, sets netset.Sets) float64 {
		return sol.Value(reg.Metrics.MaxTransitDistance)
	},
}

var minimizeMaxAge = Builder{
	Name:  "Minimize Maximum Age",
	Sense: Minimize,
	Apply: func(add AddTerm, reg *variables.Registry, sets netset.Sets, c float64) {
		add(c, reg.Metrics.MaxAge)
	},
	Value: func(sol mip.Solution, reg *variables.Registry, sets netset.Sets) float64 {
		return sol.Value(reg.Metrics.MaxAge)
	},
}

// maximizeCapacity is realized as a minimization of the negated
// arrived-and-completed total; Value reports the un-negated total (the v*
// the solve driver folds into the relaxation bound), and the model
// compiler applies this expression with coefficient -1 when adding that
// bound (spec §4.6, §4.7 step 3 & 5). The corresponding demand-equality relaxation is requested
// by the caller via model.CompileOptions.SkipDemandEquality, not by this
// package.
var maximizeCapacity = Builder{
	Name:  "Maximize Capacity",
	Sense: Maximize,
	Apply: func(add AddTerm, reg *variables.Registry, sets netset.Sets, c float64) {
		add(-c, reg.Metrics.TotalArrivedAndCompletedProduct)
	},
	Value: func(sol mip.Solution, reg *variables.Registry, sets netset.Sets) float64 {
		return sol.Value(reg.Metrics.TotalArrivedAndCompletedProduct)
	},
}
