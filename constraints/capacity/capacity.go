// Package capacity implements the capacity constraint family of spec
// §4.4.3, grounded on
// original_source/src/optimization/constraints/capacity_constraints.py.
package capacity

import (
	"strconv"

	"github.com/nextmv-io/sdk/mip"

	"github.com/nextmv-community/network-planner/constraints"
	"github.com/nextmv-community/network-planner/netset"
	"github.com/nextmv-community/network-planner/params"
	"github.com/nextmv-community/network-planner/variables"
)

// Build adds resource-capacity (child and parent), inbound/outbound
// carrying, transportation-lane, and max-utilization constraints to m.
func Build(m mip.Model, reg *variables.Registry, net *netset.Registry, p *params.Params, opts constraints.Options) {
	sets := net.Sets

	buildResourceCapacity(m, reg, sets, p)
	buildCarrying(m, reg, sets, p)
	buildTransportationLane(m, reg, sets, p)
	buildMaxUtilization(m, reg, sets)
}

// buildResourceCapacity bounds current-plus-carried consumption by the
// installed capacity of a resource type, for both child and parent
// capacity types (parent types aggregate their children via
// capacity_type_heirarchy).
func buildResourceCapacity(m mip.Model, reg *variables.Registry, sets netset.Sets, p *params.Params) {
	for _, n := range sets.Nodes {
		for _, t := range sets.Periods {
			for _, c := range sets.ResourceChildCapacityTypes {
				con := m.NewConstraint(mip.LessThanOrEqual, 0)
				addConsumption(con, reg, sets, p, n, t, c, 1)
				for _, r := range sets.Resources {
					con.NewTerm(-1, reg.Resource.ResourceCapacity.Get(variables.Tup4{A: r, B: n, C: t, D: c}))
				}
			}
			for _, parent := range sets.ResourceParentCapacityTypes {
				con := m.NewConstraint(mip.LessThanOrEqual, 0)
				for _, child := range sets.ResourceCapacityTypes {
					rate := p.CapacityTypeHierarchy.Get(params.NewKey2(child, parent))
					if rate == 0 {
						continue
					}
					addConsumption(con, reg, sets, p, n, t, child, rate)
				}
				for _, r := range sets.Resources {
					con.NewTerm(-1, reg.Resource.ResourceCapacity.Get(variables.Tup4{A: r, B: n, C: t, D: parent}))
				}
			}
		}
	}
}

func addConsumption(con mip.Constraint, reg *variables.Registry, sets netset.Sets, p *params.Params, n, t, capType string, rate float64) {
	for _, prod := range sets.Products {
		window := p.ResourceCapacityConsumptionPeriods.Int(params.NewKey5(prod, t, "*", n, capType))
		tInt := atoi(t)
		for back := 0; back <= window; back++ {
			tPrime := tInt - back
			if tPrime < 1 {
				continue
			}
			consumption := p.ResourceCapacityConsumption.Get(params.NewKey5(prod, strconv.Itoa(tPrime), "*", n, capType))
			if consumption == 0 {
				continue
			}
			con.NewTerm(rate*consumption, reg.Flow.ProcessedProduct.Get(variables.Tup3{A: n, B: prod, C: strconv.Itoa(tPrime)}))
		}
	}
}

// buildCarrying ensures installed inbound/outbound carrying capacity
// (base plus cumulative expansions) covers the volume carried over. The
// base capacity is a data constant, so it is folded into the
// constraint's right-hand side rather than added as a term.
func buildCarrying(m mip.Model, reg *variables.Registry, sets netset.Sets, p *params.Params) {
	for _, n := range sets.Nodes {
		for _, t := range sets.Periods {
			base := p.IBCarryingCapacity.Get(params.NewKey3(t, n, "*"))
			baseOB := p.OBCarryingCapacity.Get(params.NewKey3(t, n, "*"))
			ib := m.NewConstraint(mip.GreaterThanOrEqual, -base)
			ob := m.NewConstraint(mip.GreaterThanOrEqual, -baseOB)
			for _, e := range sets.CCapacityExpansions {
				for tt := 1; tt <= atoi(t); tt++ {
					ts := strconv.Itoa(tt)
					ib.NewTerm(p.IBCarryingExpansionCapacity.Get(params.NewKey4(e, ts, n, "*")),
						reg.Launch.UseCCapacityOption.Get(variables.Tup3{A: n, B: e, C: ts}))
					ob.NewTerm(p.OBCarryingExpansionCapacity.Get(params.NewKey4(e, ts, n, "*")),
						reg.Launch.UseCCapacityOption.Get(variables.Tup3{A: n, B: e, C: ts}))
				}
			}
			for _, prod := range sets.Products {
				for _, a := range sets.Ages {
					ib.NewTerm(-1, reg.Age.IBCarriedOverByAge.Get(variables.Tup4{A: n, B: prod, C: t, D: a}))
					ob.NewTerm(-1, reg.Age.OBCarriedOverByAge.Get(variables.Tup4{A: n, B: prod, C: t, D: a}))
				}
			}
		}
	}
}

// buildTransportationLane bounds measured departed volume on a lane by
// its installed base-plus-expansion load capacity.
func buildTransportationLane(m mip.Model, reg *variables.Registry, sets netset.Sets, p *params.Params) {
	for _, o := range sets.Origins {
		for _, d := range sets.Destinations {
			for _, mode := range sets.Modes {
				for _, t := range sets.Periods {
					base := p.LoadCapacity.Get(params.NewKey7(t, o, d, mode, "*", "*", "*"))
					con := m.NewConstraint(mip.GreaterThanOrEqual, -base)
					for _, e := range sets.TCapacityExpansions {
						for tt := 1; tt <= atoi(t); tt++ {
							ts := strconv.Itoa(tt)
							cap := p.TransportationExpansionCapacity.Get(params.NewKey4(e, mode, "*", "*"))
							con.NewTerm(cap, reg.Launch.UseTCapacityOption.Get(variables.Tup4{A: o, B: d, C: e, D: ts}))
						}
					}
					for _, prod := range sets.Products {
						measure := p.ProductsMeasures.Get(params.NewKey2(prod, "*"))
						con.NewTerm(-measure, reg.Flow.DepartedProductByMode.Get(
							variables.Tup5{A: o, B: d, C: prod, D: t, E: mode}))
					}
				}
			}
		}
	}
}

func buildMaxUtilization(m mip.Model, reg *variables.Registry, sets netset.Sets) {
	for _, n := range sets.Nodes {
		for _, t := range sets.Periods {
			for _, c := range sets.ResourceCapacityTypes {
				con := m.NewConstraint(mip.GreaterThanOrEqual, 0)
				con.NewTerm(1, reg.Metrics.MaxCapacityUtilization)
				con.NewTerm(-1, reg.Metrics.NodeUtilization.Get(variables.Tup3{A: n, B: t, C: c}))
			}
		}
	}
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
