package variables

import (
	"github.com/nextmv-io/sdk/mip"
	"github.com/nextmv-io/sdk/model"

	"github.com/nextmv-community/network-planner/netset"
	"github.com/nextmv-community/network-planner/params"
)

// MetricsVars is the summary-statistic variable family spec §3.3 lists
// under "derived metrics": scalars and small aggregates that exist only
// to be read back out of a solved model (often as a lexicographic
// objective of their own, e.g. minimizing max_age), grounded on
// VariableCreator.create_metric_variables in variable_creator.py.
type MetricsVars struct {
	MaxTransitDistance     mip.Float
	MaxAge                 mip.Int
	MaxCapacityUtilization mip.Float

	// NodeUtilization[n,t,c]: fraction of available capacity type c
	// consumed at node n in period t.
	NodeUtilization model.MultiMap[mip.Float, Tup3]

	// IsAgeReceived[a]: whether any unit of age a is ever received by a
	// destination across the whole horizon, feeding the max_age metric.
	IsAgeReceived model.MultiMap[mip.Bool, Tup1]

	TotalVolumeMoved                mip.Float
	TotalNumDestinationsMoved        mip.Float
	TotalArrivedAndCompletedProduct  mip.Float
}

func buildMetricsVars(reg *Registry, m mip.Model, sets netset.Sets) MetricsVars {
	maxTransit := m.NewFloat(0, params.BigMValue)
	reg.register(RegisterScalar("max_transit_distance", maxTransit, solutionValue(maxTransit)))

	maxAge := m.NewInt(0, int(params.BigMValue))
	reg.register(Family{
		Name: "max_age",
		Keys: [][]string{{}},
		ValueAt: func(sol mip.Solution, idx int) float64 { return sol.Value(maxAge) },
	})

	maxUtil := m.NewFloat(0, 1)
	reg.register(RegisterScalar("max_capacity_utilization", maxUtil, solutionValue(maxUtil)))

	ntc := Product3(sets.Nodes, sets.Periods, sets.ResourceCapacityTypes)
	util := model.NewMultiMap(func(...Tup3) mip.Float { return m.NewFloat(0, 1) }, ntc)
	reg.register(RegisterFloat("node_utilization", []string{"NODES", "PERIODS", "RESOURCE_CAPACITY_TYPES"}, ntc, util))

	ageKeys := Product1(sets.Ages)
	isAgeReceived := model.NewMultiMap(func(...Tup1) mip.Bool { return m.NewBool() }, ageKeys)
	reg.register(RegisterBool("is_age_received", []string{"AGES"}, ageKeys, isAgeReceived))

	totalVolume := m.NewFloat(0, params.BigMValue)
	reg.register(RegisterScalar("total_volume_moved", totalVolume, solutionValue(totalVolume)))
	totalDestMoved := m.NewFloat(0, params.BigMValue)
	reg.register(RegisterScalar("total_num_destinations_moved", totalDestMoved, solutionValue(totalDestMoved)))
	totalArrived := m.NewFloat(0, params.BigMValue)
	reg.register(RegisterScalar("total_arrived_and_completed_product", totalArrived, solutionValue(totalArrived)))

	return MetricsVars{
		MaxTransitDistance:              maxTransit,
		MaxAge:                          maxAge,
		MaxCapacityUtilization:          maxUtil,
		NodeUtilization:                 util,
		IsAgeReceived:                   isAgeReceived,
		TotalVolumeMoved:                totalVolume,
		TotalNumDestinationsMoved:       totalDestMoved,
		TotalArrivedAndCompletedProduct: totalArrived,
	}
}
