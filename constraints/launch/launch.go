// Package launch implements the launch/shutdown node state-machine
// constraint family of spec §4.4.7, grounded on
// original_source/src/constraints/flow_constraints.py and
// original_source/src/models/node.py (the node lifecycle rules).
package launch

import (
	"github.com/nextmv-io/sdk/mip"

	"github.com/nextmv-community/network-planner/constraints"
	"github.com/nextmv-community/network-planner/netset"
	"github.com/nextmv-community/network-planner/params"
	"github.com/nextmv-community/network-planner/variables"
)

// Build adds every launch/shutdown state-machine constraint to m.
func Build(m mip.Model, reg *variables.Registry, net *netset.Registry, p *params.Params, opts constraints.Options) {
	sets := net.Sets

	for _, n := range sets.Nodes {
		node := net.Nodes[n]
		buildCounts(m, reg, p, sets, n)
		buildHardConstraints(m, reg, p, sets, n)
		buildStateFeasibility(m, reg, sets, n)
		buildActivityGating(m, reg, sets, n)
		buildDurationWindows(m, reg, node, sets, n)
		buildCosts(m, reg, p, sets, n)
	}
	buildNodeTypeCounts(m, reg, net, p)

	// Grand totals: launch_cost_grand_total = Σ_{n,t} launch_cost[n,t], and
	// likewise for shut_down_cost.
	launchGrand := m.NewConstraint(mip.Equal, 0)
	launchGrand.NewTerm(1, reg.Cost.LaunchGrand)
	shutGrand := m.NewConstraint(mip.Equal, 0)
	shutGrand.NewTerm(1, reg.Cost.ShutDownGrand)
	for _, n := range sets.Nodes {
		for _, t := range sets.Periods {
			launchGrand.NewTerm(-1, reg.Cost.LaunchCostVar.Get(variables.Tup2{A: n, B: t}))
			shutGrand.NewTerm(-1, reg.Cost.ShutDownCostVar.Get(variables.Tup2{A: n, B: t}))
		}
	}
}

func buildCounts(m mip.Model, reg *variables.Registry, p *params.Params, sets netset.Sets, n string) {
	minL, maxL := p.MinLaunchCount.Get(n), p.MaxLaunchCount.Get(n)
	minS, maxS := p.MinShutDownCount.Get(n), p.MaxShutDownCount.Get(n)

	launchMin := m.NewConstraint(mip.GreaterThanOrEqual, minL)
	launchMax := m.NewConstraint(mip.LessThanOrEqual, maxL)
	shutMin := m.NewConstraint(mip.GreaterThanOrEqual, minS)
	shutMax := m.NewConstraint(mip.LessThanOrEqual, maxS)
	for _, t := range sets.Periods {
		launchMin.NewTerm(1, reg.Launch.IsLaunched.Get(variables.Tup2{A: n, B: t}))
		launchMax.NewTerm(1, reg.Launch.IsLaunched.Get(variables.Tup2{A: n, B: t}))
		shutMin.NewTerm(1, reg.Launch.IsShutDown.Get(variables.Tup2{A: n, B: t}))
		shutMax.NewTerm(1, reg.Launch.IsShutDown.Get(variables.Tup2{A: n, B: t}))
	}
}

func buildHardConstraints(m mip.Model, reg *variables.Registry, p *params.Params, sets netset.Sets, n string) {
	for _, t := range sets.Periods {
		launchHard := p.LaunchHardConstraint.Get(params.NewKey2(n, t))
		if launchHard > 0 {
			c := m.NewConstraint(mip.GreaterThanOrEqual, launchHard)
			c.NewTerm(1, reg.Launch.IsLaunched.Get(variables.Tup2{A: n, B: t}))
		}
		shutHard := p.ShutDownHardConstraint.Get(params.NewKey2(n, t))
		if shutHard > 0 {
			c := m.NewConstraint(mip.GreaterThanOrEqual, shutHard)
			c.NewTerm(1, reg.Launch.IsShutDown.Get(variables.Tup2{A: n, B: t}))
		}
	}
}

func buildStateFeasibility(m mip.Model, reg *variables.Registry, sets netset.Sets, n string) {
	for ti, t := range sets.Periods {
		upperBound := m.NewConstraint(mip.LessThanOrEqual, 1)
		lowerBound := m.NewConstraint(mip.GreaterThanOrEqual, 0)
		for i := 0; i <= ti; i++ {
			upperBound.NewTerm(1, reg.Launch.IsLaunched.Get(variables.Tup2{A: n, B: sets.Periods[i]}))
			upperBound.NewTerm(-1, reg.Launch.IsShutDown.Get(variables.Tup2{A: n, B: sets.Periods[i]}))
			lowerBound.NewTerm(1, reg.Launch.IsLaunched.Get(variables.Tup2{A: n, B: sets.Periods[i]}))
			lowerBound.NewTerm(-1, reg.Launch.IsShutDown.Get(variables.Tup2{A: n, B: sets.Periods[i]}))
		}
	}
}

func buildActivityGating(m mip.Model, reg *variables.Registry, sets netset.Sets, n string) {
	for ti, t := range sets.Periods {
		gate := m.NewConstraint(mip.GreaterThanOrEqual, 0)
		for i := 0; i <= ti; i++ {
			gate.NewTerm(params.BigMValue, reg.Launch.IsLaunched.Get(variables.Tup2{A: n, B: sets.Periods[i]}))
			gate.NewTerm(-params.BigMValue, reg.Launch.IsShutDown.Get(variables.Tup2{A: n, B: sets.Periods[i]}))
		}
		for _, prod := range sets.Products {
			gate.NewTerm(-1, reg.Flow.ProcessedProduct.Get(variables.Tup3{A: n, B: prod, C: t}))
		}

		operatingLink := m.NewConstraint(mip.LessThanOrEqual, 0)
		operatingLink.NewTerm(1, reg.Launch.IsSiteOperating.Get(variables.Tup2{A: n, B: t}))
		for i := 0; i <= ti; i++ {
			operatingLink.NewTerm(-1, reg.Launch.IsLaunched.Get(variables.Tup2{A: n, B: sets.Periods[i]}))
			operatingLink.NewTerm(1, reg.Launch.IsShutDown.Get(variables.Tup2{A: n, B: sets.Periods[i]}))
		}
	}
}

// buildDurationWindows enforces min/max operating and shutdown durations,
// post-shutdown quiet (no processing from the first shutdown on), and,
// for nodes with at least one nonzero duration bound, shutdown ordering
// (a shutdown needs a launch in an earlier period).
func buildDurationWindows(m mip.Model, reg *variables.Registry, node netset.Node, sets netset.Sets, n string) {
	for ti, t := range sets.Periods {
		// Shutdown ordering: is_shut_down[t] <= Σ_{t'<t} is_launched[t'].
		if node.MinOperatingDuration > 0 || node.MaxOperatingDuration > 0 || node.MinShutdownDuration > 0 || node.MaxShutdownDuration > 0 {
			order := m.NewConstraint(mip.LessThanOrEqual, 0)
			order.NewTerm(1, reg.Launch.IsShutDown.Get(variables.Tup2{A: n, B: t}))
			for i := 0; i < ti; i++ {
				order.NewTerm(-1, reg.Launch.IsLaunched.Get(variables.Tup2{A: n, B: sets.Periods[i]}))
			}
		}

		if node.MinOperatingDuration > 0 {
			for i := ti + 1; i < ti+node.MinOperatingDuration && i < len(sets.Periods); i++ {
				c := m.NewConstraint(mip.LessThanOrEqual, 1)
				c.NewTerm(1, reg.Launch.IsLaunched.Get(variables.Tup2{A: n, B: t}))
				c.NewTerm(1, reg.Launch.IsShutDown.Get(variables.Tup2{A: n, B: sets.Periods[i]}))
			}
		}
		if node.MinShutdownDuration > 0 {
			for i := ti + 1; i < ti+node.MinShutdownDuration && i < len(sets.Periods); i++ {
				c := m.NewConstraint(mip.LessThanOrEqual, 1)
				c.NewTerm(1, reg.Launch.IsShutDown.Get(variables.Tup2{A: n, B: t}))
				c.NewTerm(1, reg.Launch.IsLaunched.Get(variables.Tup2{A: n, B: sets.Periods[i]}))
			}
		}
		if node.MaxOperatingDuration > 0 {
			end := ti + node.MaxOperatingDuration
			if end < len(sets.Periods) {
				c := m.NewConstraint(mip.GreaterThanOrEqual, 0)
				for i := ti; i <= end && i < len(sets.Periods); i++ {
					c.NewTerm(1, reg.Launch.IsShutDown.Get(variables.Tup2{A: n, B: sets.Periods[i]}))
				}
				c.NewTerm(-1, reg.Launch.IsLaunched.Get(variables.Tup2{A: n, B: t}))
			}
		}
		if node.MaxShutdownDuration > 0 {
			end := ti + node.MaxShutdownDuration
			if end < len(sets.Periods) {
				c := m.NewConstraint(mip.GreaterThanOrEqual, 0)
				for i := ti; i <= end && i < len(sets.Periods); i++ {
					c.NewTerm(1, reg.Launch.IsLaunched.Get(variables.Tup2{A: n, B: sets.Periods[i]}))
				}
				c.NewTerm(-1, reg.Launch.IsShutDown.Get(variables.Tup2{A: n, B: t}))
			}
		}

		// Post-shutdown quiet: once shut down by t, no processing in any
		// t' >= t (Σ processed + BigM·cum_shutdowns(t) <= BigM).
		quiet := m.NewConstraint(mip.LessThanOrEqual, params.BigMValue)
		for i := 0; i <= ti; i++ {
			quiet.NewTerm(params.BigMValue, reg.Launch.IsShutDown.Get(variables.Tup2{A: n, B: sets.Periods[i]}))
		}
		for _, prod := range sets.Products {
			quiet.NewTerm(1, reg.Flow.ProcessedProduct.Get(variables.Tup3{A: n, B: prod, C: t}))
		}
	}
}

func buildCosts(m mip.Model, reg *variables.Registry, p *params.Params, sets netset.Sets, n string) {
	for _, t := range sets.Periods {
		weight := p.PeriodWeight.Get(t)
		launchCost := p.LaunchCost.Get(n)
		shutCost := p.ShutDownCost.Get(n)

		lc := m.NewConstraint(mip.GreaterThanOrEqual, 0)
		lc.NewTerm(1, reg.Cost.LaunchCostVar.Get(variables.Tup2{A: n, B: t}))
		lc.NewTerm(-weight*launchCost, reg.Launch.IsLaunched.Get(variables.Tup2{A: n, B: t}))

		sc := m.NewConstraint(mip.GreaterThanOrEqual, 0)
		sc.NewTerm(1, reg.Cost.ShutDownCostVar.Get(variables.Tup2{A: n, B: t}))
		sc.NewTerm(-weight*shutCost, reg.Launch.IsShutDown.Get(variables.Tup2{A: n, B: t}))
	}

	maxCost := p.MaxLaunchCost.Get(n)
	grand := m.NewConstraint(mip.LessThanOrEqual, maxCost)
	for _, t := range sets.Periods {
		grand.NewTerm(1, reg.Cost.LaunchCostVar.Get(variables.Tup2{A: n, B: t}))
		grand.NewTerm(1, reg.Cost.ShutDownCostVar.Get(variables.Tup2{A: n, B: t}))
	}
}

// buildNodeTypeCounts bounds, for every (period, node type), the number of
// currently-operating nodes of that type between NodeTypeMin and
// NodeTypeMax (spec §4.4.7 "Node-type counts"), sourced from the
// node_types input table's Min/Max Count columns keyed by (Period, Node
// Type).
func buildNodeTypeCounts(m mip.Model, reg *variables.Registry, net *netset.Registry, p *params.Params) {
	sets := net.Sets
	for ti, t := range sets.Periods {
		for _, nt := range sets.NodeTypes {
			key := params.NewKey2(t, nt)
			min, max := p.NodeTypeMin.Get(key), p.NodeTypeMax.Get(key)

			minC := m.NewConstraint(mip.GreaterThanOrEqual, min)
			maxC := m.NewConstraint(mip.LessThanOrEqual, max)
			for _, n := range sets.Nodes {
				if net.Nodes[n].NodeType != nt {
					continue
				}
				for i := 0; i <= ti; i++ {
					minC.NewTerm(1, reg.Launch.IsLaunched.Get(variables.Tup2{A: n, B: sets.Periods[i]}))
					minC.NewTerm(-1, reg.Launch.IsShutDown.Get(variables.Tup2{A: n, B: sets.Periods[i]}))
					maxC.NewTerm(1, reg.Launch.IsLaunched.Get(variables.Tup2{A: n, B: sets.Periods[i]}))
					maxC.NewTerm(-1, reg.Launch.IsShutDown.Get(variables.Tup2{A: n, B: sets.Periods[i]}))
				}
			}
		}
	}
}
