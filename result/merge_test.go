package result

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nextmv-community/network-planner/tables"
)

func TestMergeJoinsSharedColumns(t *testing.T) {
	families := map[string]tables.Table{
		"departed_product_by_mode": {
			Name:    "departed_product_by_mode",
			Columns: []string{"Scenario", "PERIODS", "Value"},
			Rows: []tables.Row{
				{"Scenario": "S1", "PERIODS": "1", "Value": "10"},
			},
		},
		"variable_transportation_cost": {
			Name:    "variable_transportation_cost",
			Columns: []string{"Scenario", "PERIODS", "Value"},
			Rows: []tables.Row{
				{"Scenario": "S1", "PERIODS": "1", "Value": "100"},
			},
		},
		"fixed_transportation_cost": {
			Name:    "fixed_transportation_cost",
			Columns: []string{"Scenario", "PERIODS", "Value"},
			Rows: []tables.Row{
				{"Scenario": "S1", "PERIODS": "1", "Value": "5"},
			},
		},
	}

	got := Merge(MergedViews[0], families)

	want := tables.Table{
		Name: "transportation_summary",
		Columns: []string{
			"Scenario", "PERIODS", "Value",
			"departed_product_by_mode_value",
			"variable_transportation_cost_value",
			"fixed_transportation_cost_value",
		},
		Rows: []tables.Row{
			{
				"Scenario": "S1", "PERIODS": "1",
				"departed_product_by_mode_value":     "10",
				"variable_transportation_cost_value": "100",
				"fixed_transportation_cost_value":    "5",
			},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeSkipsMissingSources(t *testing.T) {
	families := map[string]tables.Table{
		"operating_cost_fixed": {
			Name:    "operating_cost_fixed",
			Columns: []string{"Scenario", "NODES", "PERIODS", "Value"},
			Rows: []tables.Row{
				{"Scenario": "S1", "NODES": "A", "PERIODS": "1", "Value": "50"},
			},
		},
	}

	got := Merge(MergedViews[1], families)

	want := tables.Table{
		Name: "node_cost_summary",
		Columns: []string{
			"Scenario", "NODES", "PERIODS", "Value",
			"operating_cost_fixed_value",
			"operating_cost_variable_value",
			"launch_cost_value",
			"shut_down_cost_value",
		},
		Rows: []tables.Row{
			{"Scenario": "S1", "NODES": "A", "PERIODS": "1", "operating_cost_fixed_value": "50"},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Merge mismatch (-want +got):\n%s", diff)
	}
}
