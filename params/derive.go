package params

import (
	"strconv"

	"github.com/nextmv-community/network-planner/tables"
)

// Params bundles every keyed parameter family named in spec §3.2. The
// catalog there is explicitly "selected, non-exhaustive"; this struct
// implements every family referenced by a constraint or objective builder
// elsewhere in this module. Grounded on
// original_source/src/data/processors/parameter_processor.py
// (23,749 chars — one function per table, the pattern every Derive* helper
// below follows).
type Params struct {
	Distance         *Table[Key3] // [o,d,m]
	TransitTime      *Table[Key3] // [o,d,m]
	TransportPeriods *Table[Key3] // [o,d,m], integer delay

	Demand             *Table[Key3] // [t,p,d]
	ProductsMeasures   *Table[Key2] // [p,u] conversion factor

	TransportationCostFixed            *Table[Key8] // [o,d,m,c,u,t,g_o,g_d]
	TransportationCostVariableDistance *Table[Key8]
	TransportationCostVariableTime     *Table[Key8]
	TransportationCostMinimum          *Table[Key8]

	LoadCapacity                    *Table[Key7] // [t,o,d,m,u,g_o,g_d]
	TransportationExpansionCapacity *Table[Key4] // [e,m,c,u]

	IBCarryingCapacity           *Table[Key3] // [t,n,u]
	OBCarryingCapacity           *Table[Key3]
	IBCarryingExpansionCapacity  *Table[Key4] // [e,t,n,u]
	OBCarryingExpansionCapacity  *Table[Key4]

	OperatingCostsFixed    *Table[Key3] // [t,n,g]
	OperatingCostsVariable *Table[Key4] // [t,n,p,g]

	LaunchCost            *Table[Key1]
	ShutDownCost          *Table[Key1]
	MinLaunchCount        *Table[Key1]
	MaxLaunchCount        *Table[Key1]
	MinShutDownCount      *Table[Key1]
	MaxShutDownCount      *Table[Key1]
	LaunchHardConstraint  *Table[Key2] // [n,t]
	ShutDownHardConstraint *Table[Key2]
	MaxLaunchCost         *Table[Key1]

	ResourceCapacityByType        *Table[Key5] // [t,n,r,c,g]
	ResourceAttributeConsumption  *Table[Key2] // [r,attribute]
	ResourceInitialCount          *Table[Key2] // [r,n]
	ResourceAddCohortCount        *Table[Key1] // [r]
	ResourceRemoveCohortCount     *Table[Key1] // [r]
	ResourceCostAdd               *Table[Key2] // [r,t]
	ResourceCostRemove            *Table[Key2] // [r,t]
	ResourceCostTime              *Table[Key2] // [r,t]
	ResourceMinCount              *Table[Key2] // [r,n]
	ResourceMaxCount              *Table[Key2] // [r,n]

	CapacityTypeHierarchy              *Table[Key2] // [c_child,c_parent]
	ResourceCapacityConsumption        *Table[Key5] // [p,t,g,n,c]
	ResourceCapacityConsumptionPeriods *Table[Key5]
	DelayPeriods                       *Table[Key4] // [t,n,p,g]
	CapacityConsumptionPeriods         *Table[Key4]

	PopCostPerMove         float64
	PopCostPerVolumeMoved  float64
	PopMaxDestinationsMoved float64
	PopMaxDestMovedIsSet   bool

	MaxVolByAge             *Table[Key5] // [t,p,d,a,g]
	AgeConstraintViolationCost *Table[Key5]

	NodeInNodeGroup *Table[Key2] // [n,g]
	PeriodWeight    *Table[Key1] // [t]

	NodeTypeMin *Table[Key2] // [t,nt]
	NodeTypeMax *Table[Key2] // [t,nt]

	TransportationGroup *Table[Key2] // [p,g], 1 when product p belongs to group g
}

// Derive builds the full Params catalog for one (already scenario-filtered)
// table set, following the one-function-per-table shape of
// parameter_processor.py.
func Derive(t tables.Set) *Params {
	p := &Params{
		Distance:         New[Key3](Zero),
		TransitTime:      New[Key3](Zero),
		TransportPeriods: New[Key3](Zero),

		Demand:           New[Key3](Zero),
		ProductsMeasures: New[Key2](One),

		TransportationCostFixed:            New[Key8](Zero),
		TransportationCostVariableDistance: New[Key8](Zero),
		TransportationCostVariableTime:     New[Key8](Zero),
		TransportationCostMinimum:          New[Key8](Zero),

		LoadCapacity:                    New[Key7](BigM),
		TransportationExpansionCapacity: New[Key4](Zero),

		IBCarryingCapacity:          New[Key3](BigM),
		OBCarryingCapacity:          New[Key3](BigM),
		IBCarryingExpansionCapacity: New[Key4](Zero),
		OBCarryingExpansionCapacity: New[Key4](Zero),

		OperatingCostsFixed:    New[Key3](Zero),
		OperatingCostsVariable: New[Key4](Zero),

		LaunchCost:             New[Key1](Zero),
		ShutDownCost:           New[Key1](Zero),
		MinLaunchCount:         New[Key1](Zero),
		MaxLaunchCount:         New[Key1](BigM),
		MinShutDownCount:       New[Key1](Zero),
		MaxShutDownCount:       New[Key1](BigM),
		LaunchHardConstraint:   New[Key2](Zero),
		ShutDownHardConstraint: New[Key2](Zero),
		MaxLaunchCost:          New[Key1](BigM),

		ResourceCapacityByType:       New[Key5](Zero),
		ResourceAttributeConsumption: New[Key2](Zero),
		ResourceInitialCount:         New[Key2](Zero),
		ResourceAddCohortCount:       New[Key1](One),
		ResourceRemoveCohortCount:    New[Key1](One),
		ResourceCostAdd:              New[Key2](Zero),
		ResourceCostRemove:           New[Key2](Zero),
		ResourceCostTime:             New[Key2](Zero),
		ResourceMinCount:             New[Key2](Zero),
		ResourceMaxCount:             New[Key2](BigM),

		CapacityTypeHierarchy:              New[Key2](Zero),
		ResourceCapacityConsumption:        New[Key5](Zero),
		ResourceCapacityConsumptionPeriods: New[Key5](Zero),
		DelayPeriods:                       New[Key4](Zero),
		CapacityConsumptionPeriods:         New[Key4](Zero),

		MaxVolByAge:                New[Key5](BigM),
		AgeConstraintViolationCost: New[Key5](Zero),

		NodeInNodeGroup: New[Key2](Zero),
		PeriodWeight:    New[Key1](One),

		NodeTypeMin: New[Key2](Zero),
		NodeTypeMax: New[Key2](BigM),

		TransportationGroup: New[Key2](Zero),
	}

	for _, r := range t.Get("od_distances_and_transit_times").Rows {
		key := NewKey3(r["Origin"], r["Destination"], r["Mode"])
		p.Distance.Set(key, f(r["Distance"]))
		p.TransitTime.Set(key, f(r["Transit Time"]))
		p.TransportPeriods.Set(key, f(r["Transport Periods"]))
	}

	for _, r := range t.Get("demand").Rows {
		p.Demand.Set(NewKey3(r["Period"], r["Product"], r["Destination"]), f(r["Quantity"]))
	}

	for _, r := range t.Get("products").Rows {
		if r["Measure"] == "*" {
			continue
		}
		p.ProductsMeasures.Set(NewKey2(r["Product"], r["Measure"]), f(r["Value"]))
	}

	for _, r := range t.Get("transportation_costs").Rows {
		key := NewKey8(r["Origin"], r["Destination"], r["Mode"], r["Container"],
			r["Measure"], r["Period"], r["Origin Group"], r["Destination Group"])
		p.TransportationCostFixed.Set(key, f(r["Fixed Cost"]))
		p.TransportationCostVariableDistance.Set(key, f(r["Cost per Unit of Distance"]))
		p.TransportationCostVariableTime.Set(key, f(r["Cost per Unit of Time"]))
		p.TransportationCostMinimum.Set(key, f(r["Minimum Cost"]))
	}

	for _, r := range t.Get("load_capacity").Rows {
		key := NewKey7(r["Period"], r["Origin"], r["Destination"], r["Mode"],
			r["Measure"], r["Origin Group"], r["Destination Group"])
		p.LoadCapacity.Set(key, f(r["Capacity"]))
	}
	for _, r := range t.Get("transportation_expansion_capacities").Rows {
		p.TransportationExpansionCapacity.Set(
			NewKey4(r["Incremental Capacity Label"], r["Mode"], r["Container"], r["Measure"]),
			f(r["Capacity"]))
	}

	for _, r := range t.Get("carrying_capacity").Rows {
		key := NewKey3(r["Period"], r["Node"], r["Measure"])
		p.IBCarryingCapacity.Set(key, f(r["Inbound Capacity"]))
		p.OBCarryingCapacity.Set(key, f(r["Outbound Capacity"]))
	}
	for _, r := range t.Get("carrying_expansions").Rows {
		key := NewKey4(r["Incremental Capacity Label"], r["Period"], r["Node"], r["Measure"])
		p.IBCarryingExpansionCapacity.Set(key, f(r["Inbound Capacity"]))
		p.OBCarryingExpansionCapacity.Set(key, f(r["Outbound Capacity"]))
	}

	for _, r := range t.Get("fixed_operating_costs").Rows {
		p.OperatingCostsFixed.Set(NewKey3(r["Period"], r["Node"], r["Node Group"]), f(r["Cost"]))
	}
	for _, r := range t.Get("variable_operating_costs").Rows {
		p.OperatingCostsVariable.Set(
			NewKey4(r["Period"], r["Node"], r["Product"], r["Node Group"]), f(r["Cost"]))
	}

	for _, r := range t.Get("nodes").Rows {
		p.LaunchCost.Set(r["Name"], f(r["Launch Cost"]))
		p.ShutDownCost.Set(r["Name"], f(r["Shut Down Cost"]))
		p.MinLaunchCount.Set(r["Name"], f(r["Min Launches"]))
		p.MaxLaunchCount.Set(r["Name"], f(r["Max Launches"]))
		p.MinShutDownCount.Set(r["Name"], f(r["Min Shutdowns"]))
		// §9 open question 1: "Max Shut Down Count" is sourced from the
		// "Max Launches" column in the original, a likely copy-paste
		// typo. Preserved here rather than silently corrected.
		p.MaxShutDownCount.Set(r["Name"], f(r["Max Launches"]))
		p.MaxLaunchCost.Set(r["Name"], f(r["Max Launch Cost"]))
	}
	for _, r := range t.Get("node_shut_down_launch_hard_constraints").Rows {
		key := NewKey2(r["Node"], r["Period"])
		p.LaunchHardConstraint.Set(key, f(r["Launch Hard Constraint"]))
		p.ShutDownHardConstraint.Set(key, f(r["Shut Down Hard Constraint"]))
	}

	for _, r := range t.Get("resource_capacities").Rows {
		p.ResourceCapacityByType.Set(
			NewKey5(r["Period"], r["Node"], r["Resource"], r["Capacity Type"], r["Node Group"]),
			f(r["Capacity"]))
	}
	for _, r := range t.Get("resource_attribute_constraints").Rows {
		p.ResourceAttributeConsumption.Set(NewKey2(r["Resource"], r["Resource Attribute"]), f(r["Consumption Rate"]))
	}
	for _, r := range t.Get("resource_initial_counts").Rows {
		p.ResourceInitialCount.Set(NewKey2(r["Resource"], r["Node"]), f(r["Initial Count"]))
	}
	for _, r := range t.Get("resource_costs").Rows {
		p.ResourceCostAdd.Set(NewKey2(r["Resource"], r["Period"]), f(r["Add Cost"]))
		p.ResourceCostRemove.Set(NewKey2(r["Resource"], r["Period"]), f(r["Remove Cost"]))
		p.ResourceCostTime.Set(NewKey2(r["Resource"], r["Period"]), f(r["Time Cost"]))
		if v := r["Add Cohort Count"]; v != "" {
			p.ResourceAddCohortCount.Set(r["Resource"], f(v))
		}
		if v := r["Remove Cohort Count"]; v != "" {
			p.ResourceRemoveCohortCount.Set(r["Resource"], f(v))
		}
	}
	for _, r := range t.Get("node_resource_constraints").Rows {
		key := NewKey2(r["Resource"], r["Node"])
		p.ResourceMinCount.Set(key, f(r["Min Count"]))
		p.ResourceMaxCount.Set(key, f(r["Max Count"]))
	}

	for _, r := range t.Get("resource_capacity_types").Rows {
		if r["Parent Capacity Type"] == "" {
			continue
		}
		p.CapacityTypeHierarchy.Set(NewKey2(r["Capacity Type"], r["Parent Capacity Type"]), f(r["Consumption Rate"]))
	}
	for _, r := range t.Get("resource_capacity_consumption").Rows {
		key := NewKey5(r["Product"], r["Period"], r["Node Group"], r["Node"], r["Capacity Type"])
		p.ResourceCapacityConsumption.Set(key, f(r["Consumption Rate"]))
		p.ResourceCapacityConsumptionPeriods.Set(key, f(r["Consumption Periods"]))
	}
	for _, r := range t.Get("processing_assembly_constraints").Rows {
		key := NewKey4(r["Period"], r["Node"], r["Product"], r["Node Group"])
		p.DelayPeriods.Set(key, f(r["Delay Periods"]))
		p.CapacityConsumptionPeriods.Set(key, f(r["Capacity Consumption Periods"]))
	}

	for _, r := range t.Get("pop_demand_change_const").Rows {
		p.PopCostPerMove = f(r["Cost per Move"])
		p.PopCostPerVolumeMoved = f(r["Cost per Volume Moved"])
		if v := r["Max Destinations Moved"]; v != "" {
			p.PopMaxDestinationsMoved = f(v)
			p.PopMaxDestMovedIsSet = true
		}
	}
	if !p.PopMaxDestMovedIsSet {
		// §9 open question 4: absent → BigM (unbounded), present → a
		// real bound. A Table's BigM default policy handles this
		// naturally; the scalar field mirrors that here.
		p.PopMaxDestinationsMoved = BigMValue
	}

	for _, r := range t.Get("age_constraints").Rows {
		key := NewKey5(r["Period"], r["Product"], r["Destination"], r["Age"], r["Node Group"])
		p.MaxVolByAge.Set(key, f(r["Max Volume"]))
		p.AgeConstraintViolationCost.Set(key, f(r["Violation Cost"]))
	}

	for _, r := range t.Get("node_groups").Rows {
		p.NodeInNodeGroup.Set(NewKey2(r["Node"], r["Group"]), 1)
	}
	for _, r := range t.Get("periods").Rows {
		if v := r["Weight"]; v != "" {
			p.PeriodWeight.Set(r["Period"], f(v))
		}
	}
	for _, r := range t.Get("product_transportation_groups").Rows {
		p.TransportationGroup.Set(NewKey2(r["Product"], r["Group"]), 1)
	}
	for _, r := range t.Get("node_types").Rows {
		key := NewKey2(r["Period"], r["Node Type"])
		if v := r["Min Count"]; v != "" {
			p.NodeTypeMin.Set(key, f(v))
		}
		if v := r["Max Count"]; v != "" {
			p.NodeTypeMax.Set(key, f(v))
		}
	}

	return p
}

func f(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
