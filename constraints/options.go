package constraints

// Options carries the per-priority-level compile-time switches the
// constraint families need, threaded through from the Model Compiler
// (package model). It is the constraints-side half of the Design Note
// "Model mutation between lex-solve levels" (SPEC_FULL.md §4.7): instead
// of deleting a constraint from a previously built model, the compiler is
// re-invoked with SkipDemandEquality set and builds that constraint as an
// upper bound this time.
type Options struct {
	// SkipDemandEquality, when true, makes constraints/flow.Build replace
	// the arrived_and_completed_product == demand equalities with
	// arrived_and_completed_product <= demand, per the
	// "Maximize Capacity" objective (spec §4.6, §9 open question).
	SkipDemandEquality bool
}
