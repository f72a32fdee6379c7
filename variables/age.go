package variables

import (
	"github.com/nextmv-io/sdk/mip"
	"github.com/nextmv-io/sdk/model"

	"github.com/nextmv-community/network-planner/netset"
	"github.com/nextmv-community/network-planner/params"
)

// AgeVars age-stratifies the flow/demand variables of flow.go, grounded on
// VariableCreator.create_age_variables in variable_creator.py: volume is
// tracked by the period it entered the network (its age), so carryover,
// processing, and drop decisions can be penalized by how stale they are
// (spec §4.4.2, Age constraints).
type AgeVars struct {
	VolArrivedByAge    model.MultiMap[mip.Float, Tup4] // [nr,p,t,a]
	IBCarriedOverByAge model.MultiMap[mip.Float, Tup4] // [n,p,t,a]
	OBCarriedOverByAge model.MultiMap[mip.Float, Tup4] // [n,p,t,a]
	VolProcessedByAge  model.MultiMap[mip.Float, Tup4] // [n,p,t,a]
	VolDroppedByAge    model.MultiMap[mip.Float, Tup4] // [n,p,t,a]
	DemandByAge        model.MultiMap[mip.Float, Tup4] // [n,p,t,a]
	VolDepartedByAge   model.MultiMap[mip.Float, Tup6] // [nd,nr,p,t,a,m]

	IBCarriedOverDemand model.MultiMap[mip.Float, Tup3] // [nr,p,t]
	OBCarriedOverDemand model.MultiMap[mip.Float, Tup3] // [nd,p,t]
	DroppedDemand       model.MultiMap[mip.Float, Tup3] // [n,p,t]
}

func buildAgeVars(reg *Registry, m mip.Model, sets netset.Sets) AgeVars {
	floatVar4 := func(name string, dims []string, keys []Tup4) model.MultiMap[mip.Float, Tup4] {
		mm := model.NewMultiMap(func(...Tup4) mip.Float { return m.NewFloat(0, params.BigMValue) }, keys)
		reg.register(RegisterFloat(name, dims, keys, mm))
		return mm
	}

	arrivedKeys := Product4(sets.ReceivingNodes, sets.Products, sets.Periods, sets.Ages)
	ibKeys := Product4(sets.Nodes, sets.Products, sets.Periods, sets.Ages)
	obKeys := Product4(sets.Nodes, sets.Products, sets.Periods, sets.Ages)
	processedKeys := Product4(sets.Nodes, sets.Products, sets.Periods, sets.Ages)
	droppedKeys := Product4(sets.Nodes, sets.Products, sets.Periods, sets.Ages)
	// demand_by_age is declared over NODES (not DESTINATIONS) per
	// variable_creator.py: the processing/departure-accounting constraints
	// in constraints/age index it at every node, including pure origins.
	demandKeys := Product4(sets.Nodes, sets.Products, sets.Periods, sets.Ages)

	volArrived := floatVar4("vol_arrived_by_age",
		[]string{"RECEIVING_NODES", "PRODUCTS", "PERIODS", "AGES"}, arrivedKeys)
	ibCarried := floatVar4("ib_vol_carried_over_by_age",
		[]string{"NODES", "PRODUCTS", "PERIODS", "AGES"}, ibKeys)
	obCarried := floatVar4("ob_vol_carried_over_by_age",
		[]string{"NODES", "PRODUCTS", "PERIODS", "AGES"}, obKeys)
	volProcessed := floatVar4("vol_processed_by_age",
		[]string{"NODES", "PRODUCTS", "PERIODS", "AGES"}, processedKeys)
	volDropped := floatVar4("vol_dropped_by_age",
		[]string{"NODES", "PRODUCTS", "PERIODS", "AGES"}, droppedKeys)
	demandByAge := floatVar4("demand_by_age",
		[]string{"NODES", "PRODUCTS", "PERIODS", "AGES"}, demandKeys)

	departedKeys := Product6(sets.DepartingNodes, sets.ReceivingNodes, sets.Products, sets.Periods, sets.Ages, sets.Modes)
	volDepartedByAge := model.NewMultiMap(
		func(...Tup6) mip.Float { return m.NewFloat(0, params.BigMValue) },
		departedKeys,
	)
	reg.register(RegisterFloat("vol_departed_by_age",
		[]string{"DEPARTING_NODES", "RECEIVING_NODES", "PRODUCTS", "PERIODS", "AGES", "MODES"}, departedKeys, volDepartedByAge))

	float3 := func(name string, dims []string, keys []Tup3) model.MultiMap[mip.Float, Tup3] {
		mm := model.NewMultiMap(func(...Tup3) mip.Float { return m.NewFloat(0, params.BigMValue) }, keys)
		reg.register(RegisterFloat(name, dims, keys, mm))
		return mm
	}
	ibCarriedDemand := float3("ib_carried_over_demand",
		[]string{"RECEIVING_NODES", "PRODUCTS", "PERIODS"}, Product3(sets.ReceivingNodes, sets.Products, sets.Periods))
	obCarriedDemand := float3("ob_carried_over_demand",
		[]string{"DEPARTING_NODES", "PRODUCTS", "PERIODS"}, Product3(sets.DepartingNodes, sets.Products, sets.Periods))
	droppedDemand := float3("dropped_demand",
		[]string{"NODES", "PRODUCTS", "PERIODS"}, Product3(sets.Nodes, sets.Products, sets.Periods))

	return AgeVars{
		VolArrivedByAge:     volArrived,
		IBCarriedOverByAge:  ibCarried,
		OBCarriedOverByAge:  obCarried,
		VolProcessedByAge:   volProcessed,
		VolDroppedByAge:     volDropped,
		DemandByAge:         demandByAge,
		VolDepartedByAge:    volDepartedByAge,
		IBCarriedOverDemand: ibCarriedDemand,
		OBCarriedOverDemand: obCarriedDemand,
		DroppedDemand:       droppedDemand,
	}
}
