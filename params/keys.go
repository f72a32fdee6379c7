package params

// Key1 through Key8 are the tuple-key shapes the parameter catalog of
// spec §3.2 requires (distance[o,d,m] is a Key3, load_capacity[t,o,d,m,u,
// g_o,g_d] is a Key7, transportation_cost_fixed[o,d,m,c,u,t,g_o,g_d] is a
// Key8, …). Using fixed-size comparable arrays rather than strings joined
// with a separator means a stray "-" inside an identifier can never
// collide two distinct keys — the original Python implementation keys its
// dicts with native tuples (see
// original_source/src/utils/parameter_calculator.py:
// `key = (row['Origin'], row['Destination'], row['Mode'])`); these types
// are the typed Go equivalent.
type (
	Key1 = string
	Key2 [2]string
	Key3 [3]string
	Key4 [4]string
	Key5 [5]string
	Key6 [6]string
	Key7 [7]string
	Key8 [8]string
)

func NewKey2(a, b string) Key2                               { return Key2{a, b} }
func NewKey3(a, b, c string) Key3                             { return Key3{a, b, c} }
func NewKey4(a, b, c, d string) Key4                          { return Key4{a, b, c, d} }
func NewKey5(a, b, c, d, e string) Key5                       { return Key5{a, b, c, d, e} }
func NewKey6(a, b, c, d, e, f string) Key6                    { return Key6{a, b, c, d, e, f} }
func NewKey7(a, b, c, d, e, f, g string) Key7                 { return Key7{a, b, c, d, e, f, g} }
func NewKey8(a, b, c, d, e, f, g, h string) Key8              { return Key8{a, b, c, d, e, f, g, h} }
