package variables

import (
	"github.com/nextmv-io/sdk/mip"
	"github.com/nextmv-io/sdk/model"

	"github.com/nextmv-community/network-planner/netset"
	"github.com/nextmv-community/network-planner/params"
)

// FlowVars is the product-movement variable family of spec §3.3, grounded
// on VariableCreator.create_flow_variables in variable_creator.py.
type FlowVars struct {
	// DepartedProductByMode[nd,nr,p,t,m]: units of product p departing node
	// nd for node nr in period t via mode m.
	DepartedProductByMode model.MultiMap[mip.Int, Tup5]
	// DepartedProduct[nd,nr,p,t]: DepartedProductByMode summed over mode,
	// carried as its own variable (not an expression) because downstream
	// cost/capacity constraints reference it directly.
	DepartedProduct model.MultiMap[mip.Int, Tup4]
	// ProcessedProduct[n,p,t]: units of product p handled (received and
	// forwarded or consumed) at node n in period t.
	ProcessedProduct model.MultiMap[mip.Int, Tup3]
	// ArrivedProduct[nr,p,t]: units of product p arriving at receiving node
	// nr in period t, before destination-level demand completion.
	ArrivedProduct model.MultiMap[mip.Float, Tup3]
	// ArrivedAndCompletedProduct[t,p,d]: the portion of ArrivedProduct at a
	// destination d that is credited against its period-t demand.
	ArrivedAndCompletedProduct model.MultiMap[mip.Float, Tup3]
}

func buildFlowVars(reg *Registry, m mip.Model, sets netset.Sets) FlowVars {
	keys5 := Product5(sets.DepartingNodes, sets.ReceivingNodes, sets.Products, sets.Periods, sets.Modes)
	departedByMode := model.NewMultiMap(
		func(...Tup5) mip.Int { return m.NewInt(0, params.BigMValue) },
		keys5,
	)
	reg.register(RegisterInt("departed_product_by_mode",
		[]string{"DEPARTING_NODES", "RECEIVING_NODES", "PRODUCTS", "PERIODS", "MODES"}, keys5, departedByMode))

	keys4 := Product4(sets.DepartingNodes, sets.ReceivingNodes, sets.Products, sets.Periods)
	departed := model.NewMultiMap(
		func(...Tup4) mip.Int { return m.NewInt(0, params.BigMValue) },
		keys4,
	)
	reg.register(RegisterInt("departed_product",
		[]string{"DEPARTING_NODES", "RECEIVING_NODES", "PRODUCTS", "PERIODS"}, keys4, departed))

	keys3nodes := Product3(sets.Nodes, sets.Products, sets.Periods)
	processed := model.NewMultiMap(
		func(...Tup3) mip.Int { return m.NewInt(0, params.BigMValue) },
		keys3nodes,
	)
	reg.register(RegisterInt("processed_product",
		[]string{"NODES", "PRODUCTS", "PERIODS"}, keys3nodes, processed))

	keys3recv := Product3(sets.ReceivingNodes, sets.Products, sets.Periods)
	arrived := model.NewMultiMap(
		func(...Tup3) mip.Float { return m.NewFloat(0, params.BigMValue) },
		keys3recv,
	)
	reg.register(RegisterFloat("arrived_product",
		[]string{"RECEIVING_NODES", "PRODUCTS", "PERIODS"}, keys3recv, arrived))

	keys3dest := Product3(sets.Periods, sets.Products, sets.Destinations)
	completed := model.NewMultiMap(
		func(...Tup3) mip.Float { return m.NewFloat(0, params.BigMValue) },
		keys3dest,
	)
	reg.register(RegisterFloat("arrived_and_completed_product",
		[]string{"PERIODS", "PRODUCTS", "DESTINATIONS"}, keys3dest, completed))

	return FlowVars{
		DepartedProductByMode:      departedByMode,
		DepartedProduct:            departed,
		ProcessedProduct:           processed,
		ArrivedProduct:             arrived,
		ArrivedAndCompletedProduct: completed,
	}
}
