package variables

import (
	"github.com/nextmv-io/sdk/mip"
	"github.com/nextmv-io/sdk/model"

	"github.com/nextmv-community/network-planner/netset"
	"github.com/nextmv-community/network-planner/params"
)

// ResourceVars is the labor/equipment variable family of spec §4.4.8
// (Resource constraints), grounded on
// VariableCreator.create_resource_variables in variable_creator.py: a
// resource's count at a node changes in whole "cohorts" (add/remove are
// batched, not unit-granular), and its capacity contribution is
// stratified by capacity type to support parent/child hierarchies.
type ResourceVars struct {
	ResourcesAddedBinary   model.MultiMap[mip.Bool, Tup3] // [r,n,t]
	ResourcesRemovedBinary model.MultiMap[mip.Bool, Tup3] // [r,n,t]
	ResourceCohortsAdded   model.MultiMap[mip.Int, Tup3]  // [r,n,t]
	ResourceCohortsRemoved model.MultiMap[mip.Int, Tup3]  // [r,n,t]

	ResourcesAssigned model.MultiMap[mip.Float, Tup3] // [r,n,t]
	ResourcesAdded    model.MultiMap[mip.Float, Tup3] // [r,n,t]
	ResourcesRemoved  model.MultiMap[mip.Float, Tup3] // [r,n,t]

	ResourceCapacity             model.MultiMap[mip.Float, Tup4] // [r,n,t,c]
	ResourceAttributeConsumption model.MultiMap[mip.Float, Tup4] // [r,t,n,attr]
}

func buildResourceVars(reg *Registry, m mip.Model, sets netset.Sets) ResourceVars {
	rnt := Product3(sets.Resources, sets.Nodes, sets.Periods)

	addedBinary := model.NewMultiMap(func(...Tup3) mip.Bool { return m.NewBool() }, rnt)
	reg.register(RegisterBool("resources_added_binary", []string{"RESOURCES", "NODES", "PERIODS"}, rnt, addedBinary))
	removedBinary := model.NewMultiMap(func(...Tup3) mip.Bool { return m.NewBool() }, rnt)
	reg.register(RegisterBool("resources_removed_binary", []string{"RESOURCES", "NODES", "PERIODS"}, rnt, removedBinary))

	cohortsAdded := model.NewMultiMap(func(...Tup3) mip.Int { return m.NewInt(0, int(params.BigMValue)) }, rnt)
	reg.register(RegisterInt("resource_cohorts_added", []string{"RESOURCES", "NODES", "PERIODS"}, rnt, cohortsAdded))
	cohortsRemoved := model.NewMultiMap(func(...Tup3) mip.Int { return m.NewInt(0, int(params.BigMValue)) }, rnt)
	reg.register(RegisterInt("resource_cohorts_removed", []string{"RESOURCES", "NODES", "PERIODS"}, rnt, cohortsRemoved))

	assigned := model.NewMultiMap(func(...Tup3) mip.Float { return m.NewFloat(0, params.BigMValue) }, rnt)
	reg.register(RegisterFloat("resources_assigned", []string{"RESOURCES", "NODES", "PERIODS"}, rnt, assigned))
	added := model.NewMultiMap(func(...Tup3) mip.Float { return m.NewFloat(0, params.BigMValue) }, rnt)
	reg.register(RegisterFloat("resources_added", []string{"RESOURCES", "NODES", "PERIODS"}, rnt, added))
	removed := model.NewMultiMap(func(...Tup3) mip.Float { return m.NewFloat(0, params.BigMValue) }, rnt)
	reg.register(RegisterFloat("resources_removed", []string{"RESOURCES", "NODES", "PERIODS"}, rnt, removed))

	rntc := Product4(sets.Resources, sets.Nodes, sets.Periods, sets.ResourceCapacityTypes)
	capacity := model.NewMultiMap(func(...Tup4) mip.Float { return m.NewFloat(0, params.BigMValue) }, rntc)
	reg.register(RegisterFloat("resource_capacity",
		[]string{"RESOURCES", "NODES", "PERIODS", "RESOURCE_CAPACITY_TYPES"}, rntc, capacity))

	rtna := Product4(sets.Resources, sets.Periods, sets.Nodes, sets.ResourceAttributes)
	consumption := model.NewMultiMap(func(...Tup4) mip.Float { return m.NewFloat(0, params.BigMValue) }, rtna)
	reg.register(RegisterFloat("resource_attribute_consumption",
		[]string{"RESOURCES", "PERIODS", "NODES", "RESOURCE_ATTRIBUTES"}, rtna, consumption))

	return ResourceVars{
		ResourcesAddedBinary:          addedBinary,
		ResourcesRemovedBinary:        removedBinary,
		ResourceCohortsAdded:          cohortsAdded,
		ResourceCohortsRemoved:        cohortsRemoved,
		ResourcesAssigned:             assigned,
		ResourcesAdded:                added,
		ResourcesRemoved:              removed,
		ResourceCapacity:              capacity,
		ResourceAttributeConsumption:  consumption,
	}
}
