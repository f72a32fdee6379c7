// Package pop implements the plan-over-plan change constraint family of
// spec §4.4.9, grounded on
// original_source/src/optimization/objectives/objective_handler.py
// (pop_demand_change_const handling).
package pop

import (
	"github.com/nextmv-io/sdk/mip"

	"github.com/nextmv-community/network-planner/constraints"
	"github.com/nextmv-community/network-planner/netset"
	"github.com/nextmv-community/network-planner/params"
	"github.com/nextmv-community/network-planner/variables"
)

// Build ties product_destination_assignment deltas between consecutive
// periods to volume-moved and destination-moved-count indicators, prices
// them into pop_cost, optionally caps pop_max_destinations_moved, and
// rolls everything into the grand totals.
func Build(m mip.Model, reg *variables.Registry, net *netset.Registry, p *params.Params, opts constraints.Options) {
	sets := net.Sets
	if len(sets.Periods) == 0 {
		return
	}

	for i, t := range sets.Periods {
		if i == 0 {
			continue
		}
		prev := sets.Periods[i-1]
		for _, prod := range sets.Products {
			for _, o := range sets.Origins {
				for _, d := range sets.Destinations {
					buildMoveIndicator(m, reg, o, prev, t, prod, d)
					buildVolumeMoved(m, reg, p, o, prev, t, prod, d)
					buildCost(m, reg, p, t, prod, o, d)
				}
			}
		}
	}

	if p.PopMaxDestMovedIsSet {
		buildMaxDestinationsCap(m, reg, p, sets)
	}

	buildGrandTotal(m, reg, sets)
}

// buildMoveIndicator gates num_destinations_moved to 1 whenever the
// assignment changes between prev and t, in either direction.
func buildMoveIndicator(m mip.Model, reg *variables.Registry, o, prev, t, prod, d string) {
	cur := reg.Launch.ProductDestinationAssignment.Get(variables.Tup4{A: o, B: t, C: prod, D: d})
	prior := reg.Launch.ProductDestinationAssignment.Get(variables.Tup4{A: o, B: prev, C: prod, D: d})
	moved := reg.Pop.NumDestinationsMoved.Get(variables.Tup4{A: t, B: prod, C: o, D: d})

	upper := m.NewConstraint(mip.LessThanOrEqual, 0)
	upper.NewTerm(1, cur)
	upper.NewTerm(-1, prior)
	upper.NewTerm(-1, moved)

	lower := m.NewConstraint(mip.GreaterThanOrEqual, 0)
	lower.NewTerm(1, cur)
	lower.NewTerm(-1, prior)
	lower.NewTerm(1, moved)
}

// buildVolumeMoved attributes departed volume on lane o->d to the move
// indicator via a big-M disjunction: it is free to be zero unless the
// assignment actually changed, in which case it is forced to cover the
// full departed volume that period.
func buildVolumeMoved(m mip.Model, reg *variables.Registry, p *params.Params, o, prev, t, prod, d string) {
	moved := reg.Pop.NumDestinationsMoved.Get(variables.Tup4{A: t, B: prod, C: o, D: d})
	volume := reg.Pop.VolumeMoved.Get(variables.Tup4{A: t, B: prod, C: o, D: d})
	departed := reg.Flow.DepartedProduct.Get(variables.Tup4{A: o, B: d, C: prod, D: t})

	con := m.NewConstraint(mip.GreaterThanOrEqual, -params.BigMValue)
	con.NewTerm(1, volume)
	con.NewTerm(-1, departed)
	con.NewTerm(-params.BigMValue, moved)
}

func buildCost(m mip.Model, reg *variables.Registry, p *params.Params, t, prod, o, d string) {
	con := m.NewConstraint(mip.GreaterThanOrEqual, 0)
	con.NewTerm(1, reg.Pop.PopCost.Get(variables.Tup4{A: t, B: prod, C: o, D: d}))
	con.NewTerm(-p.PopCostPerVolumeMoved, reg.Pop.VolumeMoved.Get(variables.Tup4{A: t, B: prod, C: o, D: d}))
	con.NewTerm(-p.PopCostPerMove, reg.Pop.NumDestinationsMoved.Get(variables.Tup4{A: t, B: prod, C: o, D: d}))
}

func buildMaxDestinationsCap(m mip.Model, reg *variables.Registry, p *params.Params, sets netset.Sets) {
	for i, t := range sets.Periods {
		if i == 0 {
			continue
		}
		con := m.NewConstraint(mip.LessThanOrEqual, p.PopMaxDestinationsMoved)
		for _, prod := range sets.Products {
			for _, o := range sets.Origins {
				for _, d := range sets.Destinations {
					con.NewTerm(1, reg.Pop.NumDestinationsMoved.Get(variables.Tup4{A: t, B: prod, C: o, D: d}))
				}
			}
		}
	}
}

func buildGrandTotal(m mip.Model, reg *variables.Registry, sets netset.Sets) {
	costGrand := m.NewConstraint(mip.Equal, 0)
	costGrand.NewTerm(1, reg.Pop.PopGrand)

	volGrand := m.NewConstraint(mip.Equal, 0)
	volGrand.NewTerm(1, reg.Metrics.TotalVolumeMoved)

	destGrand := m.NewConstraint(mip.Equal, 0)
	destGrand.NewTerm(1, reg.Metrics.TotalNumDestinationsMoved)

	for _, t := range sets.Periods {
		for _, prod := range sets.Products {
			for _, o := range sets.Origins {
				for _, d := range sets.Destinations {
					costGrand.NewTerm(-1, reg.Pop.PopCost.Get(variables.Tup4{A: t, B: prod, C: o, D: d}))
					volGrand.NewTerm(-1, reg.Pop.VolumeMoved.Get(variables.Tup4{A: t, B: prod, C: o, D: d}))
					destGrand.NewTerm(-1, reg.Pop.NumDestinationsMoved.Get(variables.Tup4{A: t, B: prod, C: o, D: d}))
				}
			}
		}
	}
}
