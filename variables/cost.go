package variables

import (
	"github.com/nextmv-io/sdk/mip"
	"github.com/nextmv-io/sdk/model"

	"github.com/nextmv-community/network-planner/netset"
	"github.com/nextmv-community/network-planner/params"
)

// CostVars is the cost-library variable family of spec §4.6: every
// objective term the Objective Library can select is backed by an
// explicit mip.Float variable rather than a bare linear expression, so a
// lexicographic level can both minimize it and, at the next level, bound
// it with a relaxation constraint (spec §4.7). Grounded on
// ObjectiveHandler's per-component cost accumulators in
// original_source/src/optimization/objectives/objective_handler.py.
type CostVars struct {
	VariableTransportationCost model.MultiMap[mip.Float, Tup4] // [o,d,m,t]
	FixedTransportationCost    model.MultiMap[mip.Float, Tup4] // [o,d,m,t]
	NumLoadsByGroup            model.MultiMap[mip.Int, Tup5]   // [o,d,m,g,t]
	TransportationCostGrand    mip.Float

	OperatingCostVariable model.MultiMap[mip.Float, Tup3] // [n,p,t]
	OperatingCostFixed    model.MultiMap[mip.Float, Tup2] // [n,t]
	OperatingCostGrand    mip.Float

	IBCarriedVolumeCost    model.MultiMap[mip.Float, Tup4] // [n,p,t,a]
	OBCarriedVolumeCost    model.MultiMap[mip.Float, Tup4] // [n,p,t,a]
	DroppedVolumeCost      model.MultiMap[mip.Float, Tup4] // [n,p,t,a]
	CarriedAndDroppedGrand mip.Float

	LaunchCostVar   model.MultiMap[mip.Float, Tup2] // [n,t]
	ShutDownCostVar model.MultiMap[mip.Float, Tup2] // [n,t]
	LaunchGrand     mip.Float
	ShutDownGrand   mip.Float

	AgeViolationCost  model.MultiMap[mip.Float, Tup4] // [d,p,t,a]
	AgeViolationGrand mip.Float

	ResourceCostGrand    mip.Float
	CCapacityOptionGrand mip.Float
	TCapacityOptionGrand mip.Float
}

func buildCostVars(reg *Registry, m mip.Model, sets netset.Sets) CostVars {
	odmtKeys := Product4(sets.Origins, sets.Destinations, sets.Modes, sets.Periods)
	varTransport := model.NewMultiMap(func(...Tup4) mip.Float { return m.NewFloat(0, params.BigMValue) }, odmtKeys)
	reg.register(RegisterFloat("variable_transportation_cost",
		[]string{"ORIGINS", "DESTINATIONS", "MODES", "PERIODS"}, odmtKeys, varTransport))
	fixedTransport := model.NewMultiMap(func(...Tup4) mip.Float { return m.NewFloat(0, params.BigMValue) }, odmtKeys)
	reg.register(RegisterFloat("fixed_transportation_cost",
		[]string{"ORIGINS", "DESTINATIONS", "MODES", "PERIODS"}, odmtKeys, fixedTransport))

	loadsKeys := Product5(sets.Origins, sets.Destinations, sets.Modes, sets.TransportationGroups, sets.Periods)
	numLoads := model.NewMultiMap(func(...Tup5) mip.Int { return m.NewInt(0, int(params.BigMValue)) }, loadsKeys)
	reg.register(RegisterInt("num_loads_by_group",
		[]string{"ORIGINS", "DESTINATIONS", "MODES", "TRANSPORTATION_GROUPS", "PERIODS"}, loadsKeys, numLoads))

	transportGrand := m.NewFloat(0, params.BigMValue)
	reg.register(RegisterScalar("transportation_cost_grand_total", transportGrand, solutionValue(transportGrand)))

	opVarKeys := Product3(sets.Nodes, sets.Products, sets.Periods)
	opVar := model.NewMultiMap(func(...Tup3) mip.Float { return m.NewFloat(0, params.BigMValue) }, opVarKeys)
	reg.register(RegisterFloat("operating_cost_variable", []string{"NODES", "PRODUCTS", "PERIODS"}, opVarKeys, opVar))

	opFixedKeys := Product2(sets.Nodes, sets.Periods)
	opFixed := model.NewMultiMap(func(...Tup2) mip.Float { return m.NewFloat(0, params.BigMValue) }, opFixedKeys)
	reg.register(RegisterFloat("operating_cost_fixed", []string{"NODES", "PERIODS"}, opFixedKeys, opFixed))

	opGrand := m.NewFloat(0, params.BigMValue)
	reg.register(RegisterScalar("operating_cost_grand_total", opGrand, solutionValue(opGrand)))

	npta := Product4(sets.Nodes, sets.Products, sets.Periods, sets.Ages)
	ibCost := model.NewMultiMap(func(...Tup4) mip.Float { return m.NewFloat(0, params.BigMValue) }, npta)
	reg.register(RegisterFloat("ib_carried_volume_cost", []string{"NODES", "PRODUCTS", "PERIODS", "AGES"}, npta, ibCost))
	obCost := model.NewMultiMap(func(...Tup4) mip.Float { return m.NewFloat(0, params.BigMValue) }, npta)
	reg.register(RegisterFloat("ob_carried_volume_cost", []string{"NODES", "PRODUCTS", "PERIODS", "AGES"}, npta, obCost))
	dropCost := model.NewMultiMap(func(...Tup4) mip.Float { return m.NewFloat(0, params.BigMValue) }, npta)
	reg.register(RegisterFloat("dropped_volume_cost", []string{"NODES", "PRODUCTS", "PERIODS", "AGES"}, npta, dropCost))

	carriedDroppedGrand := m.NewFloat(0, params.BigMValue)
	reg.register(RegisterScalar("carried_and_dropped_cost_grand_total", carriedDroppedGrand, solutionValue(carriedDroppedGrand)))

	nt := Product2(sets.Nodes, sets.Periods)
	launchCost := model.NewMultiMap(func(...Tup2) mip.Float { return m.NewFloat(0, params.BigMValue) }, nt)
	reg.register(RegisterFloat("launch_cost", []string{"NODES", "PERIODS"}, nt, launchCost))
	shutDownCost := model.NewMultiMap(func(...Tup2) mip.Float { return m.NewFloat(0, params.BigMValue) }, nt)
	reg.register(RegisterFloat("shut_down_cost", []string{"NODES", "PERIODS"}, nt, shutDownCost))

	launchGrand := m.NewFloat(0, params.BigMValue)
	reg.register(RegisterScalar("launch_cost_grand_total", launchGrand, solutionValue(launchGrand)))
	shutDownGrand := m.NewFloat(0, params.BigMValue)
	reg.register(RegisterScalar("shut_down_cost_grand_total", shutDownGrand, solutionValue(shutDownGrand)))

	dpta := Product4(sets.Destinations, sets.Products, sets.Periods, sets.Ages)
	ageViolation := model.NewMultiMap(func(...Tup4) mip.Float { return m.NewFloat(0, params.BigMValue) }, dpta)
	reg.register(RegisterFloat("age_violation_cost", []string{"DESTINATIONS", "PRODUCTS", "PERIODS", "AGES"}, dpta, ageViolation))
	ageViolationGrand := m.NewFloat(0, params.BigMValue)
	reg.register(RegisterScalar("age_violation_cost_grand_total", ageViolationGrand, solutionValue(ageViolationGrand)))

	resourceGrand := m.NewFloat(0, params.BigMValue)
	reg.register(RegisterScalar("resource_cost_grand_total", resourceGrand, solutionValue(resourceGrand)))
	ccOptionGrand := m.NewFloat(0, params.BigMValue)
	reg.register(RegisterScalar("carrying_capacity_option_cost_grand_total", ccOptionGrand, solutionValue(ccOptionGrand)))
	tcOptionGrand := m.NewFloat(0, params.BigMValue)
	reg.register(RegisterScalar("transportation_capacity_option_cost_grand_total", tcOptionGrand, solutionValue(tcOptionGrand)))

	return CostVars{
		VariableTransportationCost: varTransport,
		FixedTransportationCost:    fixedTransport,
		NumLoadsByGroup:            numLoads,
		TransportationCostGrand:    transportGrand,
		OperatingCostVariable:      opVar,
		OperatingCostFixed:         opFixed,
		OperatingCostGrand:         opGrand,
		IBCarriedVolumeCost:        ibCost,
		OBCarriedVolumeCost:        obCost,
		DroppedVolumeCost:          dropCost,
		CarriedAndDroppedGrand:     carriedDroppedGrand,
		LaunchCostVar:              launchCost,
		ShutDownCostVar:            shutDownCost,
		LaunchGrand:                launchGrand,
		ShutDownGrand:              shutDownGrand,
		AgeViolationCost:           ageViolation,
		AgeViolationGrand:          ageViolationGrand,
		ResourceCostGrand:          resourceGrand,
		CCapacityOptionGrand:       ccOptionGrand,
		TCapacityOptionGrand:       tcOptionGrand,
	}
}

// solutionValue closes over a single scalar mip.Float variable, matching
// the teacher's `solution.Value(x.Get(assignment))` call shape for the
// zero-dimension case RegisterScalar needs.
func solutionValue(v mip.Float) func(mip.Solution) float64 {
	return func(sol mip.Solution) float64 { return sol.Value(v) }
}
