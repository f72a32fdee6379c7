package variables

import (
	"github.com/nextmv-io/sdk/mip"
	"github.com/nextmv-io/sdk/model"

	"github.com/nextmv-community/network-planner/netset"
	"github.com/nextmv-community/network-planner/params"
)

// LaunchVars is the node lifecycle and capacity-option variable family of
// spec §4.4.6/§4.4.7 (Launch/Shutdown, Capacity), grounded on
// VariableCreator.create_launch_variables and create_capacity_variables
// in variable_creator.py.
type LaunchVars struct {
	IsLaunched      model.MultiMap[mip.Bool, Tup2] // [n,t]
	IsShutDown      model.MultiMap[mip.Bool, Tup2] // [n,t]
	IsSiteOperating model.MultiMap[mip.Bool, Tup2] // [n,t]

	UseCCapacityOption model.MultiMap[mip.Int, Tup3] // [n,e,t]
	UseTCapacityOption model.MultiMap[mip.Int, Tup4] // [o,d,e,t]

	// ProductDestinationAssignment[o,t,p,d]: whether origin o is the
	// assigned source of product p for destination d in period t, the
	// binary backbone of the plan-over-plan ("pop") constraint family
	// (spec §4.4.9): a destination's assignment can only change between
	// consecutive periods at a bounded cost/frequency.
	ProductDestinationAssignment model.MultiMap[mip.Bool, Tup4]
}

func buildLaunchVars(reg *Registry, m mip.Model, sets netset.Sets) LaunchVars {
	nt := Product2(sets.Nodes, sets.Periods)
	isLaunched := model.NewMultiMap(func(...Tup2) mip.Bool { return m.NewBool() }, nt)
	reg.register(RegisterBool("is_launched", []string{"NODES", "PERIODS"}, nt, isLaunched))
	isShutDown := model.NewMultiMap(func(...Tup2) mip.Bool { return m.NewBool() }, nt)
	reg.register(RegisterBool("is_shut_down", []string{"NODES", "PERIODS"}, nt, isShutDown))
	isOperating := model.NewMultiMap(func(...Tup2) mip.Bool { return m.NewBool() }, nt)
	reg.register(RegisterBool("is_site_operating", []string{"NODES", "PERIODS"}, nt, isOperating))

	netKeys := Product3(sets.Nodes, sets.CCapacityExpansions, sets.Periods)
	useCC := model.NewMultiMap(func(...Tup3) mip.Int { return m.NewInt(0, int(params.BigMValue)) }, netKeys)
	reg.register(RegisterInt("use_carrying_capacity_option",
		[]string{"NODES", "CARRYING_CAPACITY_EXPANSIONS", "PERIODS"}, netKeys, useCC))

	odetKeys := Product4(sets.Origins, sets.Destinations, sets.TCapacityExpansions, sets.Periods)
	useTC := model.NewMultiMap(func(...Tup4) mip.Int { return m.NewInt(0, int(params.BigMValue)) }, odetKeys)
	reg.register(RegisterInt("use_transportation_capacity_option",
		[]string{"ORIGINS", "DESTINATIONS", "TRANSPORTATION_CAPACITY_EXPANSIONS", "PERIODS"}, odetKeys, useTC))

	otpdKeys := Product4(sets.Origins, sets.Periods, sets.Products, sets.Destinations)
	assignment := model.NewMultiMap(func(...Tup4) mip.Bool { return m.NewBool() }, otpdKeys)
	reg.register(RegisterBool("product_destination_assignment",
		[]string{"ORIGINS", "PERIODS", "PRODUCTS", "DESTINATIONS"}, otpdKeys, assignment))

	return LaunchVars{
		IsLaunched:                   isLaunched,
		IsShutDown:                   isShutDown,
		IsSiteOperating:              isOperating,
		UseCCapacityOption:           useCC,
		UseTCapacityOption:           useTC,
		ProductDestinationAssignment: assignment,
	}
}
