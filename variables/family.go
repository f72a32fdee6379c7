package variables

import (
	"github.com/nextmv-io/sdk/mip"
	"github.com/nextmv-io/sdk/model"
)

// Keyed is satisfied by every TupN type: a tuple that can render itself as
// an ordered list of dimension values for result extraction (spec §4.8).
type Keyed interface {
	Values() []string
}

// Family is the dimension-signature-carrying handle spec §4.5 requires:
// "Each variable carries an ordered dimension signature... used for result
// extraction." Dims names the set each tuple position was drawn from
// (e.g. ["DEPARTING_NODES","RECEIVING_NODES","PRODUCTS","PERIODS","MODES"]
// for departed_product_by_mode); Keys is the fully materialized index (the
// dense cross product of spec §4.5 — "there are no sparse instantiations
// at compile time"); ValueAt defers reading the solved value until a
// mip.Solution exists.
type Family struct {
	Name    string
	Dims    []string
	Keys    [][]string
	ValueAt func(sol mip.Solution, idx int) float64
}

func renderKeys[T Keyed](keys []T) [][]string {
	out := make([][]string, len(keys))
	for i, k := range keys {
		out[i] = k.Values()
	}
	return out
}

// RegisterBool wraps a model.MultiMap[mip.Bool, T] multimap (built the same
// way order_fulfillment/main.go builds its `x := model.NewMultiMap(...)`
// assignment multimap) into a Family.
func RegisterBool[T Keyed](name string, dims []string, keys []T, mm model.MultiMap[mip.Bool, T]) Family {
	rendered := renderKeys(keys)
	return Family{
		Name: name,
		Dims: dims,
		Keys: rendered,
		ValueAt: func(sol mip.Solution, idx int) float64 {
			return sol.Value(mm.Get(keys[idx]))
		},
	}
}

// RegisterInt wraps a model.MultiMap[mip.Int, T] multimap into a Family.
func RegisterInt[T Keyed](name string, dims []string, keys []T, mm model.MultiMap[mip.Int, T]) Family {
	rendered := renderKeys(keys)
	return Family{
		Name: name,
		Dims: dims,
		Keys: rendered,
		ValueAt: func(sol mip.Solution, idx int) float64 {
			return sol.Value(mm.Get(keys[idx]))
		},
	}
}

// RegisterFloat wraps a model.MultiMap[mip.Float, T] multimap into a
// Family, the teacher's own pattern for its `cartons` multimap
// (order_fulfillment/main.go).
func RegisterFloat[T Keyed](name string, dims []string, keys []T, mm model.MultiMap[mip.Float, T]) Family {
	rendered := renderKeys(keys)
	return Family{
		Name: name,
		Dims: dims,
		Keys: rendered,
		ValueAt: func(sol mip.Solution, idx int) float64 {
			return sol.Value(mm.Get(keys[idx]))
		},
	}
}

// RegisterScalar wraps a single, non-indexed variable (max_age,
// total_volume_moved, …) as a zero-dimension Family, per spec §4.8:
// "Scalar variables produce a single-row table."
func RegisterScalar(name string, v mip.Float, value func(sol mip.Solution) float64) Family {
	return Family{
		Name: name,
		Dims: nil,
		Keys: [][]string{{}},
		ValueAt: func(sol mip.Solution, idx int) float64 {
			return value(sol)
		},
	}
}
