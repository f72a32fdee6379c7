package result

import "github.com/nextmv-community/network-planner/tables"

// MergedView describes one of ResultsProcessor.add_merged_tables' joins:
// a named output table built by stitching together rows from several
// per-family tables that share a join key, so a consumer doesn't have to
// reconstruct e.g. "flow + cost per lane/period" from raw family tables.
type MergedView struct {
	Name    string
	Sources []string
	// JoinOn is the column list every source table shares and is joined
	// on (order matters only for display; row matching is by value set).
	JoinOn []string
}

// MergedViews is the fixed list of joins the Result Extractor produces
// alongside the raw per-family tables, grounded on
// ResultsProcessor.add_merged_tables in
// original_source/src/data/processors/results_processor.py.
var MergedViews = []MergedView{
	{
		Name:    "transportation_summary",
		Sources: []string{"departed_product_by_mode", "variable_transportation_cost", "fixed_transportation_cost"},
		JoinOn:  []string{"Scenario", "PERIODS"},
	},
	{
		Name:    "node_cost_summary",
		Sources: []string{"operating_cost_fixed", "operating_cost_variable", "launch_cost", "shut_down_cost"},
		JoinOn:  []string{"Scenario", "NODES", "PERIODS"},
	},
	{
		Name:    "age_summary",
		Sources: []string{"vol_dropped_by_age", "ib_vol_carried_over_by_age", "ob_vol_carried_over_by_age", "age_violation_cost"},
		JoinOn:  []string{"Scenario", "PRODUCTS", "PERIODS", "AGES"},
	},
}

// Merge builds one MergedView's output table out of per-family tables,
// joining on the JoinOn columns as a full outer join: every row of every
// source present in families appears, merged with the rows of other
// sources that carry the same JoinOn values. Sources absent from families
// are skipped.
func Merge(view MergedView, families map[string]tables.Table) tables.Table {
	index := make(map[string]tables.Row)
	var order []string
	columns := append([]string{}, view.JoinOn...)

	for _, source := range view.Sources {
		t, ok := families[source]
		if !ok {
			continue
		}
		for _, col := range t.Columns {
			if !contains(columns, col) {
				columns = append(columns, col)
			}
		}
		for _, row := range t.Rows {
			key := joinKey(row, view.JoinOn)
			existing, ok := index[key]
			if !ok {
				existing = make(tables.Row)
				for _, k := range view.JoinOn {
					existing[k] = row[k]
				}
				order = append(order, key)
			}
			for col, v := range row {
				if col == "Value" {
					existing[source+"_value"] = v
					continue
				}
				existing[col] = v
			}
			index[key] = existing
		}
	}

	out := tables.Table{Name: view.Name, Columns: columns}
	for _, source := range view.Sources {
		out.Columns = append(out.Columns, source+"_value")
	}
	for _, key := range order {
		out.Rows = append(out.Rows, index[key])
	}
	return out
}

func joinKey(row tables.Row, joinOn []string) string {
	key := ""
	for _, col := range joinOn {
		key += col + "=" + row[col] + "\x1f"
	}
	return key
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
