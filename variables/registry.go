// Package variables is the Variable/Dimension Registry of spec §4.5: it
// instantiates every decision and derived variable family named in spec
// §3.3 over the dense cross product of the relevant sets from netset.Sets,
// and keeps each family's dimension signature alongside it for result
// extraction (spec §4.8). Grounded throughout on
// original_source/src/optimization/variables/variable_creator.py, whose
// per-family `create_*_variables` methods each become one function in one
// of the files in this package (flow.go, age.go, cost.go, launch.go,
// resource.go, pop.go, metrics.go), and on the single-dimension
// `model.NewMultiMap` pattern in order_fulfillment/main.go.
package variables

import (
	"github.com/nextmv-io/sdk/mip"

	"github.com/nextmv-community/network-planner/netset"
)

// Registry bundles the mip.Model alongside every instantiated variable
// family. Fields are grouped the way variable_creator.py groups its
// factory methods: flow, age-stratified, cost, launch/operating,
// resource, plan-over-plan, and summary metrics.
type Registry struct {
	Model mip.Model

	Flow      FlowVars
	Age       AgeVars
	Cost      CostVars
	Launch    LaunchVars
	Resource  ResourceVars
	Pop       PopVars
	Metrics   MetricsVars

	// Families lists every variable family in declaration order, for the
	// Result Extractor (spec §4.8) to walk uniformly without a type
	// switch per family.
	Families []Family
}

// Build instantiates every variable family over sets, the single entry
// point the Model Compiler (package model) calls once per Compile.
func Build(m mip.Model, sets netset.Sets) *Registry {
	reg := &Registry{Model: m}
	reg.Flow = buildFlowVars(reg, m, sets)
	reg.Age = buildAgeVars(reg, m, sets)
	reg.Cost = buildCostVars(reg, m, sets)
	reg.Launch = buildLaunchVars(reg, m, sets)
	reg.Resource = buildResourceVars(reg, m, sets)
	reg.Pop = buildPopVars(reg, m, sets)
	reg.Metrics = buildMetricsVars(reg, m, sets)
	return reg
}

// register appends a Family to the registry in construction order.
func (r *Registry) register(f Family) {
	r.Families = append(r.Families, f)
}
