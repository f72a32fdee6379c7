package variables

import (
	"github.com/nextmv-io/sdk/mip"
	"github.com/nextmv-io/sdk/model"

	"github.com/nextmv-community/network-planner/netset"
	"github.com/nextmv-community/network-planner/params"
)

// PopVars backs the plan-over-plan ("pop") constraint family of spec §4.4.9:
// a destination's assigned-origin reassignment between consecutive
// periods (a destination move) is penalized and can be bounded in count,
// grounded on the pop_demand_change_const handling in
// original_source/src/optimization/objectives/objective_handler.py.
type PopVars struct {
	// PopCost[t,p,o,d]: cost attributed to a reassignment of destination
	// d's source for product p, away from or onto origin o, realized in
	// period t (t indexes the period the move takes effect in, relative to
	// t-1's assignment).
	PopCost  model.MultiMap[mip.Float, Tup4]
	PopGrand mip.Float

	// VolumeMoved[t,p,o,d]: the departed volume attributed to a
	// reassignment landing in period t (zero unless the assignment
	// actually changed between t-1 and t).
	VolumeMoved model.MultiMap[mip.Float, Tup4]
	// NumDestinationsMoved[t,p,o,d]: 1 if the assignment changed between
	// t-1 and t, else 0.
	NumDestinationsMoved model.MultiMap[mip.Bool, Tup4]
}

func buildPopVars(reg *Registry, m mip.Model, sets netset.Sets) PopVars {
	keys := Product4(sets.Periods, sets.Products, sets.Origins, sets.Destinations)
	cost := model.NewMultiMap(func(...Tup4) mip.Float { return m.NewFloat(0, params.BigMValue) }, keys)
	reg.register(RegisterFloat("pop_cost", []string{"PERIODS", "PRODUCTS", "ORIGINS", "DESTINATIONS"}, keys, cost))

	volumeMoved := model.NewMultiMap(func(...Tup4) mip.Float { return m.NewFloat(0, params.BigMValue) }, keys)
	reg.register(RegisterFloat("pop_volume_moved", []string{"PERIODS", "PRODUCTS", "ORIGINS", "DESTINATIONS"}, keys, volumeMoved))

	numMoved := model.NewMultiMap(func(...Tup4) mip.Bool { return m.NewBool() }, keys)
	reg.register(RegisterBool("pop_num_destinations_moved", []string{"PERIODS", "PRODUCTS", "ORIGINS", "DESTINATIONS"}, keys, numMoved))

	grand := m.NewFloat(0, params.BigMValue)
	reg.register(RegisterScalar("pop_cost_grand_total", grand, solutionValue(grand)))

	return PopVars{
		PopCost:              cost,
		PopGrand:             grand,
		VolumeMoved:          volumeMoved,
		NumDestinationsMoved: numMoved,
	}
}
