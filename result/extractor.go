// Package result is the Result Extractor of spec §4.8, grounded on
// original_source/src/data/processors/results_processor.py and
// original_source/src/data/processors/solution_processor.py. It walks
// every variable family's dimension signature (carried on
// variables.Family) and emits one tables.Table per family, dropping
// zero/unset values and prefixing a Scenario column so per-scenario
// tables can be concatenated directly.
package result

import (
	"strconv"

	"github.com/nextmv-io/sdk/mip"

	"github.com/nextmv-community/network-planner/tables"
	"github.com/nextmv-community/network-planner/variables"
)

// Extract turns a solved registry into one tables.Table per variable
// family, keyed by family name, with rows for every non-zero value.
func Extract(sol mip.Solution, reg *variables.Registry, scenario string) map[string]tables.Table {
	out := make(map[string]tables.Table, len(reg.Families))
	for _, f := range reg.Families {
		out[f.Name] = extractFamily(sol, f, scenario)
	}
	return out
}

func extractFamily(sol mip.Solution, f variables.Family, scenario string) tables.Table {
	columns := append([]string{"Scenario"}, f.Dims...)
	columns = append(columns, "Value")
	t := tables.Table{Name: f.Name, Columns: columns}

	for idx, key := range f.Keys {
		v := f.ValueAt(sol, idx)
		if v == 0 {
			continue
		}
		row := make(tables.Row, len(columns))
		row["Scenario"] = scenario
		for i, dim := range f.Dims {
			if i < len(key) {
				row[dim] = key[i]
			}
		}
		row["Value"] = formatValue(v)
		t.Rows = append(t.Rows, row)
	}
	return t
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
