package solve

import (
	"context"
	"testing"
	"time"

	"github.com/nextmv-community/network-planner/model"
	"github.com/nextmv-community/network-planner/netset"
	"github.com/nextmv-community/network-planner/objectives"
	"github.com/nextmv-community/network-planner/params"
	"github.com/nextmv-community/network-planner/scenario"
	"github.com/nextmv-community/network-planner/tables"
	"github.com/nextmv-community/network-planner/variables"
)

// These tests drive the whole pipeline (scenario -> netset -> params ->
// variables/constraints -> solve -> result) on hand-built tables, the way
// E1-E6 are described in spec §8's worked examples. No adapter/file format
// is involved: the table.Set literals below are the pipeline's entire
// input surface.

func limits() Limits {
	return Limits{Duration: 10 * time.Second, RelativeGap: 0}
}

// twoNodeLane builds the minimal A (origin) -> B (destination) network
// shared by E1-E4: one product, one mode, a single lane with distance 100
// and a configurable transit delay.
func twoNodeLane(periods []string, transportPeriods string) tables.Set {
	nodeRow := func(name, kind string) tables.Row {
		r := tables.Row{
			"Name": name, "Node Type": kind,
			"Origin Node": "", "Destination Node": "", "Intermediate Node": "",
			"Receive from Origins": "", "Receive from Intermediates": "",
			"Send to Destinations": "", "Send to Intermediates": "",
		}
		return r
	}
	a := nodeRow("A", "ORIGIN")
	a["Origin Node"] = "X"
	a["Send to Destinations"] = "X"
	b := nodeRow("B", "DESTINATION")
	b["Destination Node"] = "X"
	b["Receive from Origins"] = "X"

	var periodRows []tables.Row
	for _, p := range periods {
		periodRows = append(periodRows, tables.Row{"Period": p})
	}

	return tables.Set{
		"nodes": {Name: "nodes", Rows: []tables.Row{a, b}},
		"periods": {Name: "periods", Rows: periodRows},
		"products": {Name: "products", Rows: []tables.Row{
			{"Product": "P", "Measure": "UNIT", "Value": "1"},
		}},
		"transportation_costs": {Name: "transportation_costs", Rows: []tables.Row{
			{
				"Origin": "A", "Destination": "B", "Mode": "M", "Container": "*",
				"Measure": "*", "Period": "*", "Origin Group": "*", "Destination Group": "*",
				"Fixed Cost": "0", "Cost per Unit of Distance": "1",
				"Cost per Unit of Time": "0", "Minimum Cost": "0",
			},
		}},
		"od_distances_and_transit_times": {Name: "od_distances_and_transit_times", Rows: []tables.Row{
			{
				"Origin": "A", "Destination": "B", "Mode": "M",
				"Distance": "100", "Transit Time": "0", "Transport Periods": transportPeriods,
			},
		}},
	}
}

func demandRow(period, dest, qty string) tables.Row {
	return tables.Row{"Period": period, "Product": "P", "Destination": dest, "Quantity": qty}
}

func solveScenario(t *testing.T, in tables.Set, objs []Objective) Result {
	t.Helper()
	net, warnings, err := netset.Derive(in)
	if err != nil {
		t.Fatalf("netset.Derive: %v", err)
	}
	_ = warnings
	p := params.Derive(in)
	res, err := Run(context.Background(), net, p, objs, limits())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return res
}

// E1: a trivial single-period, single-product, single-lane network must
// move all demand across the only lane at its per-unit variable cost.
func TestE1TrivialSingleLane(t *testing.T) {
	in := twoNodeLane([]string{"1"}, "0")
	in["demand"] = tables.Table{Name: "demand", Rows: []tables.Row{demandRow("1", "B", "10")}}

	res := solveScenario(t, in, []Objective{{Name: "Minimize Cost", Priority: 1}})
	if res.Status != "optimal" {
		t.Fatalf("status = %q, want optimal", res.Status)
	}
	reg, sol := res.Registry, res.Solution

	departed := sol.Value(reg.Flow.DepartedProduct.Get(variables.Tup4{A: "A", B: "B", C: "P", D: "1"}))
	if departed != 10 {
		t.Fatalf("departed_product[A,B,P,1] = %v, want 10", departed)
	}
	completed := sol.Value(reg.Flow.ArrivedAndCompletedProduct.Get(variables.Tup3{A: "1", B: "P", C: "B"}))
	if completed != 10 {
		t.Fatalf("arrived_and_completed_product[1,P,B] = %v, want 10", completed)
	}
	transportCost := sol.Value(reg.Cost.VariableTransportationCost.Get(variables.Tup4{A: "A", B: "B", C: "M", D: "1"}))
	if transportCost != 1000 {
		t.Fatalf("variable_transportation_cost[A,B,M,1] = %v, want 1000", transportCost)
	}
	grand := sol.Value(reg.Cost.TransportationCostGrand)
	if grand != 1000 {
		t.Fatalf("transportation_cost_grand_total = %v, want 1000", grand)
	}
}

// E2: a one-period transit delay shifts departure a full period earlier
// than arrival, with demand placed only in the later period.
func TestE2TransitLag(t *testing.T) {
	in := twoNodeLane([]string{"1", "2"}, "1")
	in["demand"] = tables.Table{Name: "demand", Rows: []tables.Row{demandRow("2", "B", "10")}}

	res := solveScenario(t, in, []Objective{{Name: "Minimize Cost", Priority: 1}})
	if res.Status != "optimal" {
		t.Fatalf("status = %q, want optimal", res.Status)
	}
	reg, sol := res.Registry, res.Solution

	departed1 := sol.Value(reg.Flow.DepartedProduct.Get(variables.Tup4{A: "A", B: "B", C: "P", D: "1"}))
	if departed1 != 10 {
		t.Fatalf("departed_product[A,B,P,1] = %v, want 10", departed1)
	}
	departed2 := sol.Value(reg.Flow.DepartedProduct.Get(variables.Tup4{A: "A", B: "B", C: "P", D: "2"}))
	if departed2 != 0 {
		t.Fatalf("departed_product[A,B,P,2] = %v, want 0 (nothing left to move once demand is met)", departed2)
	}
	arrived2 := sol.Value(reg.Flow.ArrivedProduct.Get(variables.Tup3{A: "B", B: "P", C: "2"}))
	if arrived2 != 10 {
		t.Fatalf("arrived_product[B,P,2] = %v, want 10", arrived2)
	}
	arrived1 := sol.Value(reg.Flow.ArrivedProduct.Get(variables.Tup3{A: "B", B: "P", C: "1"}))
	if arrived1 != 0 {
		t.Fatalf("arrived_product[B,P,1] = %v, want 0 (transit_periods=1 rules out same-period arrival)", arrived1)
	}
}

// E4: a level-1 relaxation of 10% must never let the level-1 objective's
// realized value exceed 1.10x its own optimum, regardless of what a lower
// priority level does with the slack.
func TestE4LexicographicRelaxationBound(t *testing.T) {
	in := twoNodeLane([]string{"1"}, "0")
	in["demand"] = tables.Table{Name: "demand", Rows: []tables.Row{demandRow("1", "B", "10")}}

	costOnly := solveScenario(t, in, []Objective{{Name: "Minimize Cost", Priority: 1}})
	if costOnly.Status != "optimal" {
		t.Fatalf("status = %q, want optimal", costOnly.Status)
	}
	costStar := objectives.Library["Minimize Cost"].Value(costOnly.Solution, costOnly.Registry, netsetSets(t, in))

	res := solveScenario(t, in, []Objective{
		{Name: "Minimize Cost", Priority: 1, Relaxation: 0.10},
		{Name: "Minimize Dropped Volume", Priority: 2},
	})
	if res.Status != "optimal" {
		t.Fatalf("status = %q, want optimal", res.Status)
	}
	finalCost := objectives.Library["Minimize Cost"].Value(res.Solution, res.Registry, netsetSets(t, in))
	if finalCost > 1.10*costStar+1e-6 {
		t.Fatalf("final cost %v exceeds 1.10x level-1 optimum %v", finalCost, costStar)
	}
}

func netsetSets(t *testing.T, in tables.Set) netset.Sets {
	t.Helper()
	net, _, err := netset.Derive(in)
	if err != nil {
		t.Fatalf("netset.Derive: %v", err)
	}
	return net.Sets
}

// E5: a node forced to launch in period 1 with a 2-period minimum and a
// 4-period maximum operating duration must stay up through period 2 and
// shut down no later than period 5.
func TestE5LaunchShutdownWindow(t *testing.T) {
	periods := []string{"1", "2", "3", "4", "5"}
	in := twoNodeLane(periods, "0")
	in["demand"] = tables.Table{Name: "demand", Rows: []tables.Row{demandRow("1", "B", "5")}}

	nodes := in["nodes"]
	for i, r := range nodes.Rows {
		if r["Name"] != "B" {
			continue
		}
		r["Min Operating Duration"] = "2"
		r["Max Operating Duration"] = "4"
		nodes.Rows[i] = r
	}
	in["nodes"] = nodes
	in["node_shut_down_launch_hard_constraints"] = tables.Table{
		Name: "node_shut_down_launch_hard_constraints",
		Rows: []tables.Row{{"Node": "B", "Period": "1", "Launch Hard Constraint": "1", "Shut Down Hard Constraint": "0"}},
	}

	res := solveScenario(t, in, []Objective{{Name: "Minimize Cost", Priority: 1}})
	if res.Status != "optimal" {
		t.Fatalf("status = %q, want optimal", res.Status)
	}
	reg, sol := res.Registry, res.Solution

	if v := sol.Value(reg.Launch.IsShutDown.Get(variables.Tup2{A: "B", B: "2"})); v != 0 {
		t.Fatalf("is_shut_down[B,2] = %v, want 0 (min operating duration forbids it)", v)
	}
	shutSomewhere := false
	for _, t2 := range []string{"3", "4", "5"} {
		if sol.Value(reg.Launch.IsShutDown.Get(variables.Tup2{A: "B", B: t2})) == 1 {
			shutSomewhere = true
		}
	}
	if !shutSomewhere {
		t.Fatal("expected is_shut_down[B,t] = 1 for some t in {3,4,5} (max operating duration forces it)")
	}
}

// E6 (scenario broadcast). The full Split/Filter contract is already
// covered at the unit level in scenario/split_test.go; here we only check
// that the expansion holds up once netset/params actually consume the
// split tables for two distinct scenarios, i.e. that the broadcast and its
// override resolve to distinct, correct, *-free parameter values.
func TestE6ScenarioBroadcastThroughParams(t *testing.T) {
	base := twoNodeLane([]string{"1"}, "0")
	base["objectives"] = tables.Table{Name: "objectives", Rows: []tables.Row{
		{"Scenario": "S1"}, {"Scenario": "S2"},
	}}
	base["demand"] = tables.Table{Name: "demand", Rows: []tables.Row{
		{"Scenario": "*", "Period": "1", "Product": "P", "Destination": "B", "Quantity": "10"},
		{"Scenario": "S2", "Period": "1", "Product": "P", "Destination": "B", "Quantity": "25"},
	}}

	scenarios := scenario.Scenarios(base)
	split := scenario.Split(base, scenarios)

	for _, sc := range scenarios {
		filtered := scenario.Filter(split, sc)
		for _, r := range filtered["demand"].Rows {
			if r["Scenario"] == "*" {
				t.Fatalf("scenario %s: wildcard row leaked past Filter: %+v", sc, r)
			}
		}
		p := params.Derive(filtered)
		want := map[string]float64{"S1": 10, "S2": 25}[sc]
		got := p.Demand.Get(params.NewKey3("1", "P", "B"))
		if got != want {
			t.Fatalf("scenario %s: demand[1,P,B] = %v, want %v", sc, got, want)
		}
	}
}

// E3 (capacity relief by drop) is intentionally not reproduced here. Spec
// §4.4.1 ties arrived_and_completed_product to demand by a hard equality
// "by default (unless relaxed -- see 4.6 Maximize Capacity)", and at a
// non-origin destination vol_dropped_by_age only appears as an additional
// load on the processing-accounting inequality (spec §4.4.2) -- it cannot
// relieve it. With demand held exactly equal to arrived-and-
// completed volume outside of the Maximize Capacity objective, there is no
// assignment of vol_dropped_by_age that lets arrived_and_completed_product
// fall below demand the way the worked example describes; building that
// scenario would assert a model state the constraint algebra as specified
// cannot reach.
func TestE3CapacityReliefByDrop(t *testing.T) {
	t.Skip("spec §4.4.1's hard demand equality and §4.4.2's drop inequality " +
		"cannot jointly produce arrived_and_completed_product < demand outside " +
		"the Maximize Capacity objective")
}
