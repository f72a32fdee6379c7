// Package flow implements the flow-conservation constraint family of spec
// §4.4.1, grounded on
// original_source/src/optimization/constraints/flow_constraints.py.
package flow

import (
	"strconv"

	"github.com/nextmv-io/sdk/mip"

	"github.com/nextmv-community/network-planner/constraints"
	"github.com/nextmv-community/network-planner/netset"
	"github.com/nextmv-community/network-planner/params"
	"github.com/nextmv-community/network-planner/variables"
)

// Build adds every flow-conservation constraint to m.
func Build(m mip.Model, reg *variables.Registry, net *netset.Registry, p *params.Params, opts constraints.Options) {
	sets := net.Sets

	// Mode decomposition: departed_product[o,d,p,t] = Σ_m departed_product_by_mode[o,d,p,t,m]
	for _, o := range sets.DepartingNodes {
		for _, d := range sets.ReceivingNodes {
			for _, prod := range sets.Products {
				for _, t := range sets.Periods {
					c := m.NewConstraint(mip.Equal, 0)
					c.NewTerm(1, reg.Flow.DepartedProduct.Get(variables.Tup4{A: o, B: d, C: prod, D: t}))
					for _, mode := range sets.Modes {
						c.NewTerm(-1, reg.Flow.DepartedProductByMode.Get(variables.Tup5{A: o, B: d, C: prod, D: t, E: mode}))
					}
				}
			}
		}
	}

	// Arrival = delayed departure: arrived_product[d,p,t] = Σ_{o,m} departed_product_by_mode[o,d,p,t',m]
	// with t' = t - transport_periods[o,d,m], t' >= 1.
	for _, d := range sets.ReceivingNodes {
		for _, prod := range sets.Products {
			for _, t := range sets.Periods {
				c := m.NewConstraint(mip.Equal, 0)
				c.NewTerm(1, reg.Flow.ArrivedProduct.Get(variables.Tup3{A: d, B: prod, C: t}))
				tInt := atoi(t)
				for _, o := range sets.DepartingNodes {
					for _, mode := range sets.Modes {
						delay := p.TransportPeriods.Int(params.NewKey3(o, d, mode))
						tPrime := tInt - delay
						if tPrime < 1 {
							continue
						}
						tPrimeStr := strconv.Itoa(tPrime)
						c.NewTerm(-1, reg.Flow.DepartedProductByMode.Get(
							variables.Tup5{A: o, B: d, C: prod, D: tPrimeStr, E: mode}))
					}
				}
			}
		}
	}

	// Demand reconciliation: Σ_a demand_by_age[d,p,t,a] = arrived_and_completed_product[t,p,d]
	// and arrived_and_completed_product[t,p,d] = demand[t,p,d], or <= demand[t,p,d]
	// when Maximize Capacity relaxes it. total_arrived_and_completed_product
	// sums arrived_and_completed_product over every (d,p,t).
	total := m.NewConstraint(mip.Equal, 0)
	total.NewTerm(1, reg.Metrics.TotalArrivedAndCompletedProduct)
	for _, d := range sets.Destinations {
		for _, prod := range sets.Products {
			for _, t := range sets.Periods {
				c := m.NewConstraint(mip.Equal, 0)
				c.NewTerm(1, reg.Flow.ArrivedAndCompletedProduct.Get(variables.Tup3{A: t, B: prod, C: d}))
				for _, a := range sets.Ages {
					c.NewTerm(-1, reg.Age.DemandByAge.Get(variables.Tup4{A: d, B: prod, C: t, D: a}))
				}

				total.NewTerm(-1, reg.Flow.ArrivedAndCompletedProduct.Get(variables.Tup3{A: t, B: prod, C: d}))

				sense := mip.Equal
				if opts.SkipDemandEquality {
					sense = mip.LessThanOrEqual
				}
				demand := p.Demand.Get(params.NewKey3(t, prod, d))
				eq := m.NewConstraint(sense, demand)
				eq.NewTerm(1, reg.Flow.ArrivedAndCompletedProduct.Get(variables.Tup3{A: t, B: prod, C: d}))
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
