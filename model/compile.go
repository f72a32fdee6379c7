// Package model is the Model Compiler of spec §4.5: it assembles a fresh
// mip.Model and *variables.Registry from a netset.Registry and
// params.Params, then wires every constraint family in package
// constraints/*. Grounded on VariableCreator/ConstraintBuilder's top-level
// orchestration in original_source/src/optimization/model_builder.py.
//
// The nextmv mip SDK exposes no public "clone model" or "delete constraint
// by name" API, so compilation is a pure, repeatable builder instead of an
// incremental mutator: each lexicographic priority level (package solve)
// calls Compile again with one more entry in Relaxations, which is
// semantically identical to "clone base model, add one relaxation
// constraint" using only documented SDK surface (spec §4.7 "Resolving the
// model-clone design note").
package model

import (
	"github.com/nextmv-io/sdk/mip"

	"github.com/nextmv-community/network-planner/constraints"
	"github.com/nextmv-community/network-planner/constraints/age"
	"github.com/nextmv-community/network-planner/constraints/capacity"
	"github.com/nextmv-community/network-planner/constraints/cost"
	"github.com/nextmv-community/network-planner/constraints/flow"
	"github.com/nextmv-community/network-planner/constraints/launch"
	"github.com/nextmv-community/network-planner/constraints/pop"
	"github.com/nextmv-community/network-planner/constraints/resource"
	"github.com/nextmv-community/network-planner/constraints/transportation"
	"github.com/nextmv-community/network-planner/netset"
	"github.com/nextmv-community/network-planner/objectives"
	"github.com/nextmv-community/network-planner/params"
	"github.com/nextmv-community/network-planner/variables"
)

// Relaxation is one previously solved priority level's bound, applied on
// the freshly compiled model as value <= Bound (for a minimized objective)
// or value >= Bound (for a maximized one), where value is the quantity the
// objective's Builder.Value reports.
type Relaxation struct {
	Objective  objectives.Builder
	Bound      float64
	Maximizing bool
}

// CompileOptions carries everything that must change between successive
// lex-solve levels without touching the base constraint algebra.
type CompileOptions struct {
	// SkipDemandEquality relaxes the arrived_and_completed_product = demand
	// equality in constraints/flow, turning demand into an upper bound
	// instead of a target (spec §4.4.1, "Maximize Capacity").
	SkipDemandEquality bool
	// Relaxations are the accumulated bounds from already-solved priority
	// levels, reapplied on every subsequent compile.
	Relaxations []Relaxation
}

// Compile builds the full constraint system once and returns both the
// model and the registry of variables it was built against.
func Compile(net *netset.Registry, p *params.Params, opts CompileOptions) (mip.Model, *variables.Registry) {
	m := mip.NewModel()
	reg := variables.Build(m, net.Sets)

	copts := constraints.Options{SkipDemandEquality: opts.SkipDemandEquality}

	flow.Build(m, reg, net, p, copts)
	age.Build(m, reg, net, p, copts)
	capacity.Build(m, reg, net, p, copts)
	transportation.Build(m, reg, net, p, copts)
	cost.Build(m, reg, net, p, copts)
	launch.Build(m, reg, net, p, copts)
	resource.Build(m, reg, net, p, copts)
	pop.Build(m, reg, net, p, copts)

	for _, r := range opts.Relaxations {
		applyRelaxation(m, reg, net.Sets, r)
	}

	return m, reg
}

// applyRelaxation bounds a previously optimized objective so a lower
// priority level cannot regress it beyond the relaxation factor already
// folded into r.Bound by the solve driver.
func applyRelaxation(m mip.Model, reg *variables.Registry, sets netset.Sets, r Relaxation) {
	sense := mip.LessThanOrEqual
	coefficient := 1.0
	if r.Maximizing {
		sense = mip.GreaterThanOrEqual
		// A maximized objective's Apply adds its expression negated;
		// coefficient -1 undoes that so the bound is on the value itself.
		coefficient = -1
	}
	con := m.NewConstraint(sense, r.Bound)
	r.Objective.Apply(objectives.ConstraintTerm(con), reg, sets, coefficient)
}
