package objectives

import (
	"testing"

	"github.com/nextmv-io/sdk/mip"

	"github.com/nextmv-community/network-planner/netset"
	"github.com/nextmv-community/network-planner/variables"
)

func TestLookupKnownObjective(t *testing.T) {
	for name := range Library {
		b, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): unexpected error %v", name, err)
		}
		if b.Name != name {
			t.Fatalf("Lookup(%q) returned builder named %q", name, b.Name)
		}
	}
}

func TestLookupUnknownObjective(t *testing.T) {
	if _, err := Lookup("Not A Real Objective"); err == nil {
		t.Fatal("expected an error for an objective name outside spec §4.6's table")
	}
}

func TestAllObjectivesCoverSpecTable(t *testing.T) {
	want := []string{
		"Minimize Cost",
		"Minimize Dropped Volume",
		"Minimize Carried Over Volume",
		"Minimize Plan-Over-Plan Change",
		"Minimize Maximum Utilization",
		"Minimize Maximum Transit Distance",
		"Minimize Maximum Age",
		"Maximize Capacity",
	}
	if len(Library) != len(want) {
		t.Fatalf("Library has %d entries, want %d", len(Library), len(want))
	}
	for _, name := range want {
		if _, ok := Library[name]; !ok {
			t.Fatalf("Library missing entry %q", name)
		}
	}
}

func TestObjectiveTermDispatchesByVariableKind(t *testing.T) {
	m := mip.NewModel()
	m.Objective().SetMinimize()
	b := m.NewBool()
	i := m.NewInt(0, 10)
	f := m.NewFloat(0, 10)

	add := ObjectiveTerm(m)
	add(2, b)
	add(3, i)
	add(4, f)
	add(5, "not a variable")
}

func TestConstraintTermDispatchesByVariableKind(t *testing.T) {
	m := mip.NewModel()
	b := m.NewBool()
	i := m.NewInt(0, 10)
	f := m.NewFloat(0, 10)

	con := m.NewConstraint(mip.LessThanOrEqual, 100)
	add := ConstraintTerm(con)
	add(1, b)
	add(1, i)
	add(1, f)
}

func TestMaximizeCapacityNegatesTerm(t *testing.T) {
	m := mip.NewModel()
	reg := &variables.Registry{
		Metrics: variables.MetricsVars{
			TotalArrivedAndCompletedProduct: m.NewFloat(0, 1000),
		},
	}

	var captured float64
	fakeAdd := func(coefficient float64, variable any) {
		captured = coefficient
	}
	b, err := Lookup("Maximize Capacity")
	if err != nil {
		t.Fatal(err)
	}
	if b.Sense != Maximize {
		t.Fatalf("Maximize Capacity must have Sense == Maximize")
	}
	b.Apply(fakeAdd, reg, netset.Sets{}, 1)
	if captured != -1 {
		t.Fatalf("Maximize Capacity must negate its coefficient when applied as a minimization term, got %v", captured)
	}
}
