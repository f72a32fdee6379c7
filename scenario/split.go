// Package scenario implements the Scenario Splitter of spec §4.1:
// wildcard ("*") rows are expanded into explicit per-scenario copies, then
// every scenario-dependent table is filtered down to the rows relevant to
// one scenario. Grounded on
// original_source/src/data/preprocessors/data_preprocessor.py
// (split_scenarios) and original_source/src/utils/scenario_handler.py
// (ScenarioHandler.split_scenarios / merge_scenario_results).
package scenario

import "github.com/nextmv-community/network-planner/tables"

// scenarioDependent lists every table name that carries a Scenario column,
// matching the `scenario_dependent_dfs` list in
// original_source/src/main.py::run_solver.
var scenarioDependent = []string{
	"scenarios", "objectives", "nodes",
	"node_shut_down_launch_hard_constraints", "node_types",
	"flow", "fixed_operating_costs", "node_groups",
	"variable_operating_costs", "transportation_costs",
	"load_capacity", "transportation_constraints",
	"transportation_expansions", "transportation_expansion_capacities",
	"carrying_or_missed_demand_cost", "demand",
	"resource_capacity_consumption", "carrying_expansions",
	"pop_demand_change_const", "resource_capacities",
	"node_resource_constraints", "resource_attribute_constraints",
	"resource_attributes", "resource_costs",
	"resource_initial_counts", "max_transit_time_distance",
	"carrying_or_missed_demand_constraints", "carrying_capacity",
	"product_transportation_groups", "age_constraints",
	"processing_assembly_constraints", "shipping_assembly_constraints",
}

// Scenarios returns the distinct, non-wildcard scenario identifiers named
// in the objectives table — the driver for the SCENARIOS loop in
// original_source/src/main.py::run_solver.
func Scenarios(t tables.Set) []string {
	return t.Get("objectives").Distinct("Scenario")
}

// Split expands the wildcard ("*") rows of every scenario-dependent table
// into explicit copies for each scenario named in scenarios that has no
// rows of its own in that table, leaving scenario-specific rows untouched;
// a scenario with at least one own row in a table gets no copies of that
// table's wildcard rows. This is an identity on tables with no "*" rows
// (spec §8 invariant 7).
func Split(in tables.Set, scenarios []string) tables.Set {
	out := make(tables.Set, len(in))
	for name, t := range in {
		out[name] = t
	}
	for _, name := range scenarioDependent {
		t, ok := in[name]
		if !ok {
			continue
		}
		out[name] = splitTable(t, scenarios)
	}
	return out
}

func splitTable(t tables.Table, scenarios []string) tables.Table {
	hasScenarioColumn := false
	for _, c := range t.Columns {
		if c == "Scenario" {
			hasScenarioColumn = true
			break
		}
	}
	if !hasScenarioColumn {
		return t
	}

	var broadcast []tables.Row
	byScenario := map[string][]tables.Row{}
	for _, r := range t.Rows {
		if r["Scenario"] == "*" {
			broadcast = append(broadcast, r)
		} else {
			byScenario[r["Scenario"]] = append(byScenario[r["Scenario"]], r)
		}
	}

	// Keep the broadcast rows themselves (unexpanded), ahead of every
	// per-scenario row, so downstream parameter derivation (where a later
	// row for the same key overwrites an earlier one) sees a "*" row only
	// as a fallback default, per spec §4.1: "the latter is kept as a
	// broadcast row for downstream parameter derivation".
	out := tables.Table{Name: t.Name, Columns: t.Columns}
	out.Rows = append(out.Rows, broadcast...)
	for _, s := range scenarios {
		if rows, ok := byScenario[s]; ok {
			out.Rows = append(out.Rows, rows...)
			continue
		}
		for _, r := range broadcast {
			nr := make(tables.Row, len(r))
			for k, v := range r {
				nr[k] = v
			}
			nr["Scenario"] = s
			out.Rows = append(out.Rows, nr)
		}
	}
	return out
}

// Filter narrows every scenario-dependent table in t down to rows whose
// Scenario equals scenarioID or "*", per spec §4.1's final step. Tables
// with no Scenario column pass through unchanged.
func Filter(t tables.Set, scenarioID string) tables.Set {
	out := make(tables.Set, len(t))
	for name, tbl := range t {
		out[name] = tbl
	}
	for _, name := range scenarioDependent {
		tbl, ok := t[name]
		if !ok {
			continue
		}
		out[name] = tbl.Filter(func(r tables.Row) bool {
			s, has := r["Scenario"]
			return !has || s == scenarioID || s == "*"
		})
	}
	return out
}
