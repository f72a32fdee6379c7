// Package planerr defines the error kinds of spec §7. The pipeline never
// swallows a solver-layer error and classifies failures instead of
// wrapping everything in a catch-all, unlike the original Python
// implementation's blanket try/except-and-relog pattern
// (original_source/src/main.py, src/optimizer.py).
package planerr

import "errors"

// Kind distinguishes the five error categories of §7.
type Kind int

const (
	// KindInputStructural: missing required table/column, unknown
	// scenario, a node typed into more than one class. Fatal, halts
	// before any model is built.
	KindInputStructural Kind = iota
	// KindInputSemantic: an out-of-range parameter (negative capacity,
	// gap outside [0,1], invalid period string). Fatal per scenario.
	KindInputSemantic
	// KindInfeasible: the solver returned infeasible at some priority
	// level. Non-fatal across scenarios.
	KindInfeasible
	// KindSolverTimeout: the solver hit its time limit before
	// optimality.
	KindSolverTimeout
	// KindAdapterFailure: a reader/writer/solver adapter raised.
	KindAdapterFailure
)

func (k Kind) String() string {
	switch k {
	case KindInputStructural:
		return "InputStructural"
	case KindInputSemantic:
		return "InputSemantic"
	case KindInfeasible:
		return "Infeasible"
	case KindSolverTimeout:
		return "SolverTimeout"
	case KindAdapterFailure:
		return "AdapterFailure"
	default:
		return "Unknown"
	}
}

// Error is a planerr-classified error. Cause, when set, is the underlying
// error from an adapter or the solver and is reachable via errors.Unwrap.
type Error struct {
	Kind    Kind
	Scenario string
	Msg     string
	Cause   error
}

func (e *Error) Error() string {
	if e.Scenario != "" {
		if e.Cause != nil {
			return e.Kind.String() + " [" + e.Scenario + "]: " + e.Msg + ": " + e.Cause.Error()
		}
		return e.Kind.String() + " [" + e.Scenario + "]: " + e.Msg
	}
	if e.Cause != nil {
		return e.Kind.String() + ": " + e.Msg + ": " + e.Cause.Error()
	}
	return e.Kind.String() + ": " + e.Msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds a planerr.Error without a scenario tag.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds a planerr.Error carrying cause, tagged to scenario (empty
// string if the error predates scenario splitting).
func Wrap(kind Kind, scenario, msg string, cause error) *Error {
	return &Error{Kind: kind, Scenario: scenario, Msg: msg, Cause: cause}
}

// Is reports whether err (or anything it wraps) is a *Error of kind.
func Is(err error, kind Kind) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}

// ValidationErrors collects multiple validation failures for a single
// scenario so they can be reported together rather than failing on the
// first, per §7: "Validation errors are collected and reported together".
type ValidationErrors []error

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "no validation errors"
	}
	s := v[0].Error()
	for _, e := range v[1:] {
		s += "; " + e.Error()
	}
	return s
}

// Add appends err to v when err is non-nil and returns the (possibly
// extended) slice — a small ergonomic helper for the validation call
// sites in netset and params.
func (v ValidationErrors) Add(err error) ValidationErrors {
	if err == nil {
		return v
	}
	return append(v, err)
}

// AsError returns v as an error, or nil if v has no entries — lets callers
// write `return errs.AsError()` uniformly.
func (v ValidationErrors) AsError() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
