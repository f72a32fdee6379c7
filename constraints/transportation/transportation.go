// Package transportation implements the transportation-cost constraint
// family of spec §4.4.4, grounded on
// original_source/src/optimization/constraints/transportation_constraints.py.
package transportation

import (
	"github.com/nextmv-io/sdk/mip"

	"github.com/nextmv-community/network-planner/constraints"
	"github.com/nextmv-community/network-planner/netset"
	"github.com/nextmv-community/network-planner/params"
	"github.com/nextmv-community/network-planner/variables"
)

// Build lower-bounds variable_transportation_cost and
// fixed_transportation_cost per lane/period, applies the per-lane minimum
// cost floor, sizes num_loads_by_group, and ties everything to the grand
// total.
func Build(m mip.Model, reg *variables.Registry, net *netset.Registry, p *params.Params, opts constraints.Options) {
	sets := net.Sets

	for _, o := range sets.Origins {
		for _, d := range sets.Destinations {
			for _, mode := range sets.Modes {
				for _, t := range sets.Periods {
					weight := p.PeriodWeight.Get(t)

					varCost := m.NewConstraint(mip.GreaterThanOrEqual, 0)
					varCost.NewTerm(1, reg.Cost.VariableTransportationCost.Get(variables.Tup4{A: o, B: d, C: mode, D: t}))
					for _, prod := range sets.Products {
						departed := reg.Flow.DepartedProductByMode.Get(variables.Tup5{A: o, B: d, C: prod, D: t, E: mode})
						distance := p.Distance.Get(params.NewKey3(o, d, mode))
						transit := p.TransitTime.Get(params.NewKey3(o, d, mode))
						distCost := p.TransportationCostVariableDistance.Get(params.NewKey8(o, d, mode, "*", "*", t, "*", "*"))
						timeCost := p.TransportationCostVariableTime.Get(params.NewKey8(o, d, mode, "*", "*", t, "*", "*"))
						varCost.NewTerm(-weight*distCost*distance, departed)
						varCost.NewTerm(-weight*timeCost*transit, departed)
					}

					buildLoadCount(m, reg, p, o, d, mode, t, sets)

					fixedCost := m.NewConstraint(mip.GreaterThanOrEqual, 0)
					fixedCost.NewTerm(1, reg.Cost.FixedTransportationCost.Get(variables.Tup4{A: o, B: d, C: mode, D: t}))
					for _, g := range sets.TransportationGroups {
						fixed := p.TransportationCostFixed.Get(params.NewKey8(o, d, mode, "*", "*", t, "*", "*"))
						fixedCost.NewTerm(-weight*fixed, reg.Cost.NumLoadsByGroup.Get(
							variables.Tup5{A: o, B: d, C: mode, D: g, E: t}))
					}

					minCost := p.TransportationCostMinimum.Get(params.NewKey8(o, d, mode, "*", "*", t, "*", "*"))
					if minCost > 0 {
						floor := m.NewConstraint(mip.GreaterThanOrEqual, minCost)
						floor.NewTerm(1, reg.Cost.VariableTransportationCost.Get(variables.Tup4{A: o, B: d, C: mode, D: t}))
						floor.NewTerm(1, reg.Cost.FixedTransportationCost.Get(variables.Tup4{A: o, B: d, C: mode, D: t}))
					}
				}
			}
		}
	}

	buildGrandTotal(m, reg, sets)
}

// buildLoadCount is the §9.3 resolution: num_loads_by_group is a free
// non-negative integer lower-bounded so that loads * load_capacity >=
// volume moved in the group, i.e. ceil(volume / capacity) without an
// explicit ceiling function.
func buildLoadCount(m mip.Model, reg *variables.Registry, p *params.Params, o, d, mode, t string, sets netset.Sets) {
	for _, g := range sets.TransportationGroups {
		capacity := p.LoadCapacity.Get(params.NewKey7(t, o, d, mode, "*", "*", "*"))
		if capacity <= 0 {
			continue
		}
		con := m.NewConstraint(mip.GreaterThanOrEqual, 0)
		con.NewTerm(capacity, reg.Cost.NumLoadsByGroup.Get(variables.Tup5{A: o, B: d, C: mode, D: g, E: t}))
		for _, prod := range sets.Products {
			if !inGroup(sets, p, prod, g) {
				continue
			}
			con.NewTerm(-1, reg.Flow.DepartedProductByMode.Get(variables.Tup5{A: o, B: d, C: prod, D: t, E: mode}))
		}
	}
}

// inGroup reports whether product prod belongs to transportation group g,
// per the product_transportation_groups input table
// (params.TransportationGroup). When that table carries no row for the
// (product, group) pair and the scenario has at most one transportation
// group, the product is treated as belonging to that sole group so
// single-group scenarios keep resolving exactly as before.
func inGroup(sets netset.Sets, p *params.Params, prod, group string) bool {
	if group == "*" {
		return true
	}
	if p.TransportationGroup.Contains(params.NewKey2(prod, group)) {
		return p.TransportationGroup.Get(params.NewKey2(prod, group)) > 0
	}
	return len(sets.TransportationGroups) <= 1
}

func buildGrandTotal(m mip.Model, reg *variables.Registry, sets netset.Sets) {
	con := m.NewConstraint(mip.GreaterThanOrEqual, 0)
	con.NewTerm(1, reg.Cost.TransportationCostGrand)
	for _, o := range sets.Origins {
		for _, d := range sets.Destinations {
			for _, mode := range sets.Modes {
				for _, t := range sets.Periods {
					con.NewTerm(-1, reg.Cost.VariableTransportationCost.Get(variables.Tup4{A: o, B: d, C: mode, D: t}))
					con.NewTerm(-1, reg.Cost.FixedTransportationCost.Get(variables.Tup4{A: o, B: d, C: mode, D: t}))
				}
			}
		}
	}
}
