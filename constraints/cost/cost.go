// Package cost implements the operating-cost (spec §4.4.5) and
// carried/dropped-volume-cost (spec §4.4.6) constraint families,
// grounded on
// original_source/src/optimization/constraints/cost_constraints.py.
package cost

import (
	"github.com/nextmv-io/sdk/mip"

	"github.com/nextmv-community/network-planner/constraints"
	"github.com/nextmv-community/network-planner/netset"
	"github.com/nextmv-community/network-planner/params"
	"github.com/nextmv-community/network-planner/variables"
)

// Build adds the operating-cost and carried/dropped-volume-cost
// constraints to m.
func Build(m mip.Model, reg *variables.Registry, net *netset.Registry, p *params.Params, opts constraints.Options) {
	sets := net.Sets
	buildOperatingCost(m, reg, sets, p)
	buildCarriedAndDropped(m, reg, sets, p)
	buildCapacityOptionGrandTotals(m, reg)
}

// buildCapacityOptionGrandTotals pins the carrying/transportation
// capacity-option cost aggregates to zero: no input table carries a
// per-option cost rate for these, so the Objective Library's capacity-cost
// component is the sum of the other cost grand totals only (spec §9 open
// question: "capacity expansion option cost").
func buildCapacityOptionGrandTotals(m mip.Model, reg *variables.Registry) {
	cc := m.NewConstraint(mip.Equal, 0)
	cc.NewTerm(1, reg.Cost.CCapacityOptionGrand)
	tc := m.NewConstraint(mip.Equal, 0)
	tc.NewTerm(1, reg.Cost.TCapacityOptionGrand)
}

func buildOperatingCost(m mip.Model, reg *variables.Registry, sets netset.Sets, p *params.Params) {
	for _, n := range sets.Nodes {
		for _, t := range sets.Periods {
			weight := p.PeriodWeight.Get(t)

			gate := m.NewConstraint(mip.GreaterThanOrEqual, 0)
			gate.NewTerm(params.BigMValue, reg.Launch.IsSiteOperating.Get(variables.Tup2{A: n, B: t}))
			for _, prod := range sets.Products {
				gate.NewTerm(-1, reg.Flow.ProcessedProduct.Get(variables.Tup3{A: n, B: prod, C: t}))
			}

			fixed := p.OperatingCostsFixed.Get(params.NewKey3(t, n, "*"))
			fixedCon := m.NewConstraint(mip.Equal, 0)
			fixedCon.NewTerm(1, reg.Cost.OperatingCostFixed.Get(variables.Tup2{A: n, B: t}))
			fixedCon.NewTerm(-weight*fixed, reg.Launch.IsSiteOperating.Get(variables.Tup2{A: n, B: t}))

			for _, prod := range sets.Products {
				variable := p.OperatingCostsVariable.Get(params.NewKey4(t, n, prod, "*"))
				varCon := m.NewConstraint(mip.Equal, 0)
				varCon.NewTerm(1, reg.Cost.OperatingCostVariable.Get(variables.Tup3{A: n, B: prod, C: t}))
				varCon.NewTerm(-weight*variable, reg.Flow.ProcessedProduct.Get(variables.Tup3{A: n, B: prod, C: t}))
			}
		}
	}

	grand := m.NewConstraint(mip.Equal, 0)
	grand.NewTerm(1, reg.Cost.OperatingCostGrand)
	for _, n := range sets.Nodes {
		for _, t := range sets.Periods {
			grand.NewTerm(-1, reg.Cost.OperatingCostFixed.Get(variables.Tup2{A: n, B: t}))
			for _, prod := range sets.Products {
				grand.NewTerm(-1, reg.Cost.OperatingCostVariable.Get(variables.Tup3{A: n, B: prod, C: t}))
			}
		}
	}
}

func buildCarriedAndDropped(m mip.Model, reg *variables.Registry, sets netset.Sets, p *params.Params) {
	for _, n := range sets.Nodes {
		for _, prod := range sets.Products {
			for _, t := range sets.Periods {
				weight := p.PeriodWeight.Get(t)
				for _, a := range sets.Ages {
					ibCost := p.OperatingCostsVariable.Get(params.NewKey4(t, n, prod, "*"))
					ib := m.NewConstraint(mip.GreaterThanOrEqual, 0)
					ib.NewTerm(1, reg.Cost.IBCarriedVolumeCost.Get(variables.Tup4{A: n, B: prod, C: t, D: a}))
					ib.NewTerm(-weight*ibCost, reg.Age.IBCarriedOverByAge.Get(variables.Tup4{A: n, B: prod, C: t, D: a}))

					ob := m.NewConstraint(mip.GreaterThanOrEqual, 0)
					ob.NewTerm(1, reg.Cost.OBCarriedVolumeCost.Get(variables.Tup4{A: n, B: prod, C: t, D: a}))
					ob.NewTerm(-weight*ibCost, reg.Age.OBCarriedOverByAge.Get(variables.Tup4{A: n, B: prod, C: t, D: a}))

					dropped := m.NewConstraint(mip.GreaterThanOrEqual, 0)
					dropped.NewTerm(1, reg.Cost.DroppedVolumeCost.Get(variables.Tup4{A: n, B: prod, C: t, D: a}))
					dropped.NewTerm(-weight*ibCost, reg.Age.VolDroppedByAge.Get(variables.Tup4{A: n, B: prod, C: t, D: a}))
				}
			}
		}
	}

	grand := m.NewConstraint(mip.Equal, 0)
	grand.NewTerm(1, reg.Cost.CarriedAndDroppedGrand)
	for _, n := range sets.Nodes {
		for _, prod := range sets.Products {
			for _, t := range sets.Periods {
				for _, a := range sets.Ages {
					grand.NewTerm(-1, reg.Cost.IBCarriedVolumeCost.Get(variables.Tup4{A: n, B: prod, C: t, D: a}))
					grand.NewTerm(-1, reg.Cost.OBCarriedVolumeCost.Get(variables.Tup4{A: n, B: prod, C: t, D: a}))
					grand.NewTerm(-1, reg.Cost.DroppedVolumeCost.Get(variables.Tup4{A: n, B: prod, C: t, D: a}))
				}
			}
		}
	}
}
