// Package resource implements the resource-management constraint family
// of spec §4.4.9, grounded on
// original_source/src/optimization/constraints/resource_constraints.py.
package resource

import (
	"github.com/nextmv-io/sdk/mip"

	"github.com/nextmv-community/network-planner/constraints"
	"github.com/nextmv-community/network-planner/netset"
	"github.com/nextmv-community/network-planner/params"
	"github.com/nextmv-community/network-planner/variables"
)

// Build adds the resource count balance, binary gating, cohort sizing,
// capacity derivation, attribute consumption, and grand-total cost
// constraints to m.
func Build(m mip.Model, reg *variables.Registry, net *netset.Registry, p *params.Params, opts constraints.Options) {
	sets := net.Sets

	for _, r := range sets.Resources {
		for _, n := range sets.Nodes {
			buildBalance(m, reg, p, r, n, sets)
			buildGating(m, reg, p, r, n, sets)
			buildBounds(m, reg, p, r, n, sets)
		}
	}
	buildCapacity(m, reg, p, sets)
	buildAttributeConsumption(m, reg, p, sets)
	buildGrandTotal(m, reg, p, sets)
}

func buildBalance(m mip.Model, reg *variables.Registry, p *params.Params, r, n string, sets netset.Sets) {
	for ti, t := range sets.Periods {
		var rhs float64
		if ti == 0 {
			rhs = -p.ResourceInitialCount.Get(params.NewKey2(r, n))
		}
		c := m.NewConstraint(mip.Equal, rhs)
		c.NewTerm(1, reg.Resource.ResourcesAssigned.Get(variables.Tup3{A: r, B: n, C: t}))
		c.NewTerm(-1, reg.Resource.ResourcesAdded.Get(variables.Tup3{A: r, B: n, C: t}))
		c.NewTerm(1, reg.Resource.ResourcesRemoved.Get(variables.Tup3{A: r, B: n, C: t}))
		if ti == 0 {
			continue
		}
		c.NewTerm(-1, reg.Resource.ResourcesAssigned.Get(variables.Tup3{A: r, B: n, C: sets.Periods[ti-1]}))
	}
}

func buildGating(m mip.Model, reg *variables.Registry, p *params.Params, r, n string, sets netset.Sets) {
	for _, t := range sets.Periods {
		addedGate := m.NewConstraint(mip.LessThanOrEqual, 0)
		addedGate.NewTerm(1, reg.Resource.ResourcesAdded.Get(variables.Tup3{A: r, B: n, C: t}))
		addedGate.NewTerm(-params.BigMValue, reg.Resource.ResourcesAddedBinary.Get(variables.Tup3{A: r, B: n, C: t}))

		removedGate := m.NewConstraint(mip.LessThanOrEqual, 0)
		removedGate.NewTerm(1, reg.Resource.ResourcesRemoved.Get(variables.Tup3{A: r, B: n, C: t}))
		removedGate.NewTerm(-params.BigMValue, reg.Resource.ResourcesRemovedBinary.Get(variables.Tup3{A: r, B: n, C: t}))

		addCohort := p.ResourceAddCohortCount.Get(r)
		cohortAdd := m.NewConstraint(mip.Equal, 0)
		cohortAdd.NewTerm(1, reg.Resource.ResourcesAdded.Get(variables.Tup3{A: r, B: n, C: t}))
		cohortAdd.NewTerm(-addCohort, reg.Resource.ResourceCohortsAdded.Get(variables.Tup3{A: r, B: n, C: t}))

		removeCohort := p.ResourceRemoveCohortCount.Get(r)
		cohortRemove := m.NewConstraint(mip.Equal, 0)
		cohortRemove.NewTerm(1, reg.Resource.ResourcesRemoved.Get(variables.Tup3{A: r, B: n, C: t}))
		cohortRemove.NewTerm(-removeCohort, reg.Resource.ResourceCohortsRemoved.Get(variables.Tup3{A: r, B: n, C: t}))
	}
}

func buildBounds(m mip.Model, reg *variables.Registry, p *params.Params, r, n string, sets netset.Sets) {
	min := p.ResourceMinCount.Get(params.NewKey2(r, n))
	max := p.ResourceMaxCount.Get(params.NewKey2(r, n))
	for _, t := range sets.Periods {
		lower := m.NewConstraint(mip.GreaterThanOrEqual, min)
		lower.NewTerm(1, reg.Resource.ResourcesAssigned.Get(variables.Tup3{A: r, B: n, C: t}))
		upper := m.NewConstraint(mip.LessThanOrEqual, max)
		upper.NewTerm(1, reg.Resource.ResourcesAssigned.Get(variables.Tup3{A: r, B: n, C: t}))
	}
}

func buildCapacity(m mip.Model, reg *variables.Registry, p *params.Params, sets netset.Sets) {
	for _, r := range sets.Resources {
		for _, n := range sets.Nodes {
			for _, t := range sets.Periods {
				for _, c := range sets.ResourceCapacityTypes {
					rate := p.ResourceCapacityByType.Get(params.NewKey5(t, n, r, c, "*"))
					con := m.NewConstraint(mip.Equal, 0)
					con.NewTerm(1, reg.Resource.ResourceCapacity.Get(variables.Tup4{A: r, B: n, C: t, D: c}))
					con.NewTerm(-rate, reg.Resource.ResourcesAssigned.Get(variables.Tup3{A: r, B: n, C: t}))
				}
			}
		}
	}
}

func buildAttributeConsumption(m mip.Model, reg *variables.Registry, p *params.Params, sets netset.Sets) {
	for _, r := range sets.Resources {
		for _, t := range sets.Periods {
			for _, n := range sets.Nodes {
				for _, attr := range sets.ResourceAttributes {
					rate := p.ResourceAttributeConsumption.Get(params.NewKey2(r, attr))
					con := m.NewConstraint(mip.Equal, 0)
					con.NewTerm(1, reg.Resource.ResourceAttributeConsumption.Get(variables.Tup4{A: r, B: t, C: n, D: attr}))
					con.NewTerm(-rate, reg.Resource.ResourcesAssigned.Get(variables.Tup3{A: r, B: n, C: t}))
				}
			}
		}
	}
}

func buildGrandTotal(m mip.Model, reg *variables.Registry, p *params.Params, sets netset.Sets) {
	grand := m.NewConstraint(mip.Equal, 0)
	grand.NewTerm(1, reg.Cost.ResourceCostGrand)
	for _, r := range sets.Resources {
		for _, t := range sets.Periods {
			weight := p.PeriodWeight.Get(t)
			addCost := p.ResourceCostAdd.Get(params.NewKey2(r, t))
			removeCost := p.ResourceCostRemove.Get(params.NewKey2(r, t))
			timeCost := p.ResourceCostTime.Get(params.NewKey2(r, t))
			for _, n := range sets.Nodes {
				grand.NewTerm(-weight*addCost, reg.Resource.ResourcesAdded.Get(variables.Tup3{A: r, B: n, C: t}))
				grand.NewTerm(-weight*removeCost, reg.Resource.ResourcesRemoved.Get(variables.Tup3{A: r, B: n, C: t}))
				grand.NewTerm(-weight*timeCost, reg.Resource.ResourcesAssigned.Get(variables.Tup3{A: r, B: n, C: t}))
			}
		}
	}
}
