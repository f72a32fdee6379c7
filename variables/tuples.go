package variables

import "strings"

// Tup1..Tup7 are the composite index elements the variable families are
// built over. Each satisfies github.com/nextmv-io/sdk/model.Identifier
// (an ID() string method) so they can be used directly as the element type
// of model.NewMultiMap, the same indexing primitive the teacher uses for
// its single-dimension `assignment`/`carrier` structs
// (order_fulfillment/main.go). Dimension names (the ordered set names each
// position stands for) are tracked separately on Family — see family.go —
// for result extraction (spec §4.8).
type Tup1 struct{ A string }
type Tup2 struct{ A, B string }
type Tup3 struct{ A, B, C string }
type Tup4 struct{ A, B, C, D string }
type Tup5 struct{ A, B, C, D, E string }
type Tup6 struct{ A, B, C, D, E, F string }
type Tup7 struct{ A, B, C, D, E, F, G string }

func (t Tup1) ID() string { return join(t.A) }
func (t Tup2) ID() string { return join(t.A, t.B) }
func (t Tup3) ID() string { return join(t.A, t.B, t.C) }
func (t Tup4) ID() string { return join(t.A, t.B, t.C, t.D) }
func (t Tup5) ID() string { return join(t.A, t.B, t.C, t.D, t.E) }
func (t Tup6) ID() string { return join(t.A, t.B, t.C, t.D, t.E, t.F) }
func (t Tup7) ID() string { return join(t.A, t.B, t.C, t.D, t.E, t.F, t.G) }

func (t Tup1) Values() []string { return []string{t.A} }
func (t Tup2) Values() []string { return []string{t.A, t.B} }
func (t Tup3) Values() []string { return []string{t.A, t.B, t.C} }
func (t Tup4) Values() []string { return []string{t.A, t.B, t.C, t.D} }
func (t Tup5) Values() []string { return []string{t.A, t.B, t.C, t.D, t.E} }
func (t Tup6) Values() []string { return []string{t.A, t.B, t.C, t.D, t.E, t.F} }
func (t Tup7) Values() []string { return []string{t.A, t.B, t.C, t.D, t.E, t.F, t.G} }

func join(parts ...string) string { return strings.Join(parts, "\x1f") }

// Product1 through Product7 enumerate the full cross product of the given
// dimension slices, the Go equivalent of the `itertools.product(...)`
// calls that build every variable's index set in
// original_source/src/optimization/variables/variable_creator.py.
func Product1(a []string) []Tup1 {
	out := make([]Tup1, len(a))
	for i, x := range a {
		out[i] = Tup1{x}
	}
	return out
}

func Product2(a, b []string) []Tup2 {
	out := make([]Tup2, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			out = append(out, Tup2{x, y})
		}
	}
	return out
}

func Product3(a, b, c []string) []Tup3 {
	out := make([]Tup3, 0, len(a)*len(b)*len(c))
	for _, x := range a {
		for _, y := range b {
			for _, z := range c {
				out = append(out, Tup3{x, y, z})
			}
		}
	}
	return out
}

func Product4(a, b, c, d []string) []Tup4 {
	out := make([]Tup4, 0, len(a)*len(b)*len(c)*len(d))
	for _, w := range a {
		for _, x := range b {
			for _, y := range c {
				for _, z := range d {
					out = append(out, Tup4{w, x, y, z})
				}
			}
		}
	}
	return out
}

func Product5(a, b, c, d, e []string) []Tup5 {
	var out []Tup5
	for _, t4 := range Product4(a, b, c, d) {
		for _, v := range e {
			out = append(out, Tup5{t4.A, t4.B, t4.C, t4.D, v})
		}
	}
	return out
}

func Product6(a, b, c, d, e, f []string) []Tup6 {
	var out []Tup6
	for _, t5 := range Product5(a, b, c, d, e) {
		for _, v := range f {
			out = append(out, Tup6{t5.A, t5.B, t5.C, t5.D, t5.E, v})
		}
	}
	return out
}

func Product7(a, b, c, d, e, f, g []string) []Tup7 {
	var out []Tup7
	for _, t6 := range Product6(a, b, c, d, e, f) {
		for _, v := range g {
			out = append(out, Tup7{t6.A, t6.B, t6.C, t6.D, t6.E, t6.F, v})
		}
	}
	return out
}
