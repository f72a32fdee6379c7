package tables

import "testing"

func TestTableCloneIsIndependent(t *testing.T) {
	orig := Table{
		Name:    "nodes",
		Columns: []string{"Node", "Type"},
		Rows:    []Row{{"Node": "A", "Type": "plant"}},
	}
	clone := orig.Clone()
	clone.Rows[0]["Type"] = "dc"
	clone.Columns[0] = "Changed"

	if orig.Rows[0]["Type"] != "plant" {
		t.Fatalf("mutating clone row mutated original: %v", orig.Rows[0])
	}
	if orig.Columns[0] != "Node" {
		t.Fatalf("mutating clone columns mutated original: %v", orig.Columns)
	}
}

func TestTableFilter(t *testing.T) {
	t1 := Table{
		Name:    "demand",
		Columns: []string{"Destination", "Volume"},
		Rows: []Row{
			{"Destination": "D1", "Volume": "10"},
			{"Destination": "D2", "Volume": "0"},
		},
	}
	out := t1.Filter(func(r Row) bool { return r["Volume"] != "0" })
	if len(out.Rows) != 1 || out.Rows[0]["Destination"] != "D1" {
		t.Fatalf("unexpected filter result: %+v", out.Rows)
	}
	if len(t1.Rows) != 2 {
		t.Fatalf("filter must not mutate source table")
	}
}

func TestTableAppend(t *testing.T) {
	base := Table{Name: "x", Columns: []string{"A"}, Rows: []Row{{"A": "1"}}}
	appended := base.Append(Row{"A": "2"})
	if len(base.Rows) != 1 {
		t.Fatalf("append must not mutate base table, got %d rows", len(base.Rows))
	}
	if len(appended.Rows) != 2 || appended.Rows[1]["A"] != "2" {
		t.Fatalf("unexpected appended rows: %+v", appended.Rows)
	}
}

func TestSetGetMissingReturnsEmptyTable(t *testing.T) {
	s := Set{}
	got := s.Get("missing")
	if got.Name != "missing" || len(got.Rows) != 0 {
		t.Fatalf("expected empty placeholder table, got %+v", got)
	}
}

func TestTableDistinctSkipsBlankAndWildcard(t *testing.T) {
	tb := Table{
		Columns: []string{"Scenario"},
		Rows: []Row{
			{"Scenario": "S1"},
			{"Scenario": "*"},
			{"Scenario": ""},
			{"Scenario": "S1"},
			{"Scenario": "S2"},
		},
	}
	got := tb.Distinct("Scenario")
	want := []string{"S1", "S2"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestRequireColumns(t *testing.T) {
	tb := Table{Name: "nodes", Columns: []string{"Node"}}
	if err := tb.RequireColumns("Node"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	err := tb.RequireColumns("Node", "Type")
	if err == nil {
		t.Fatal("expected an error for missing column Type")
	}
}
