package scenario

import (
	"testing"

	"github.com/nextmv-community/network-planner/tables"
)

func TestScenarios(t *testing.T) {
	in := tables.Set{
		"objectives": tables.Table{
			Columns: []string{"Scenario"},
			Rows: []tables.Row{
				{"Scenario": "base"},
				{"Scenario": "high_demand"},
				{"Scenario": "base"},
			},
		},
	}
	got := Scenarios(in)
	want := []string{"base", "high_demand"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSplitExpandsWildcardRows(t *testing.T) {
	in := tables.Set{
		"demand": tables.Table{
			Name:    "demand",
			Columns: []string{"Scenario", "Destination", "Volume"},
			Rows: []tables.Row{
				{"Scenario": "*", "Destination": "D1", "Volume": "100"},
				{"Scenario": "high_demand", "Destination": "D1", "Volume": "500"},
			},
		},
	}
	out := Split(in, []string{"base", "high_demand"})
	demand := out["demand"]

	var baseRows, highRows, broadcastRows int
	for _, r := range demand.Rows {
		switch r["Scenario"] {
		case "base":
			baseRows++
			if r["Volume"] != "100" {
				t.Fatalf("base scenario should inherit broadcast volume, got %v", r)
			}
		case "high_demand":
			highRows++
			if r["Volume"] != "500" {
				t.Fatalf("high_demand scenario should keep its explicit row, got %v", r)
			}
		case "*":
			broadcastRows++
		}
	}
	if baseRows != 1 {
		t.Fatalf("expected exactly one expanded row for base, got %d", baseRows)
	}
	if highRows != 1 {
		t.Fatalf("expected exactly one explicit row for high_demand, got %d", highRows)
	}
	if broadcastRows != 1 {
		t.Fatalf("broadcast row must be retained for downstream parameter fallback, got %d", broadcastRows)
	}
}

func TestSplitIsIdentityWithoutWildcardRows(t *testing.T) {
	in := tables.Set{
		"demand": tables.Table{
			Name:    "demand",
			Columns: []string{"Scenario", "Destination"},
			Rows: []tables.Row{
				{"Scenario": "base", "Destination": "D1"},
			},
		},
	}
	out := Split(in, []string{"base"})
	if len(out["demand"].Rows) != 1 {
		t.Fatalf("expected no change to non-wildcard rows, got %+v", out["demand"].Rows)
	}
}

func TestSplitLeavesNonScenarioTablesUntouched(t *testing.T) {
	in := tables.Set{
		"not_scenario_dependent": tables.Table{
			Columns: []string{"Foo"},
			Rows:    []tables.Row{{"Foo": "bar"}},
		},
	}
	out := Split(in, []string{"base"})
	if len(out["not_scenario_dependent"].Rows) != 1 {
		t.Fatal("table absent from scenarioDependent list must pass through unchanged")
	}
}

func TestFilterKeepsOwnWildcardAndColumnlessRows(t *testing.T) {
	in := tables.Set{
		"demand": tables.Table{
			Columns: []string{"Scenario", "Destination"},
			Rows: []tables.Row{
				{"Scenario": "base", "Destination": "D1"},
				{"Scenario": "other", "Destination": "D2"},
				{"Scenario": "*", "Destination": "D3"},
			},
		},
		"nodes": tables.Table{
			Columns: []string{"Node"},
			Rows:    []tables.Row{{"Node": "N1"}},
		},
	}
	out := Filter(in, "base")
	demand := out["demand"]
	if len(demand.Rows) != 2 {
		t.Fatalf("expected base + wildcard rows only, got %+v", demand.Rows)
	}
	for _, r := range demand.Rows {
		if r["Scenario"] == "other" {
			t.Fatalf("row for a different scenario must be filtered out: %+v", r)
		}
	}
	if len(out["nodes"].Rows) != 1 {
		t.Fatal("table with no Scenario column must pass through Filter unchanged")
	}
}
