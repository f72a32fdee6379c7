// Package config holds the planner's settings tree, grounded on
// original_source/src/config/settings.py's dataclasses
// (SolverSettings/NetworkSettings/ResourceSettings/LoggingSettings).
// Defaults are filled with github.com/itzg/go-flagsfiller the same way the
// teacher's own Option struct is filled by nextmv's run.CLI
// (order_fulfillment/main.go: `Duration time.Duration
// \`json:"duration" default:"10s"\``); the single-row "parameters" input
// table is decoded into SolverSettings with github.com/gorilla/schema.
package config

import (
	"flag"
	"time"

	"github.com/gorilla/schema"
	"github.com/itzg/go-flagsfiller"
)

// SolverSettings mirrors SolverSettings in settings.py.
type SolverSettings struct {
	MaxRunTime time.Duration `default:"3600s" usage:"wall-clock budget per solve"`
	GapLimit   float64       `default:"0.01" usage:"relative MIP gap"`
	SolverName string        `default:"highs" usage:"MIP solver provider name"`
}

// NetworkSettings mirrors NetworkSettings in settings.py.
type NetworkSettings struct {
	BigM                  float64 `default:"999999999"`
	AllowPartialShipments bool    `default:"true"`
	EnforceDirectShipping bool    `default:"false"`
	MaxIntermediateStops  int     `default:"2"`
}

// ResourceSettings mirrors ResourceSettings in settings.py.
type ResourceSettings struct {
	AllowFractionalResources bool `default:"false"`
	EnforceCohortSizes       bool `default:"true"`
}

// LoggingSettings mirrors LoggingSettings in settings.py.
type LoggingSettings struct {
	LogLevel string `default:"INFO"`
}

// Settings is the root configuration object, equivalent to settings.py's
// Settings class, minus file persistence (out of core scope — that lived
// on the adapter side of the original implementation too, via
// excel_to_json_converter.py).
type Settings struct {
	Solver    SolverSettings
	Network   NetworkSettings
	Resources ResourceSettings
	Logging   LoggingSettings
}

// Default returns Settings populated purely from struct `default` tags, via
// an unparsed flag.FlagSet — the same mechanism
// github.com/nextmv-io/sdk/run uses internally to fill its own Option
// structs before flag.Parse is called.
func Default() (*Settings, error) {
	s := &Settings{}
	fs := flag.NewFlagSet("network-planner", flag.ContinueOnError)
	filler := flagsfiller.New()
	if err := filler.Fill(fs, s); err != nil {
		return nil, err
	}
	return s, nil
}

// FillFlags registers s's fields as flags on fs (with their struct
// defaults), so cmd/planner can let the user override any setting on the
// command line — exactly the pattern nextmv's run.CLI applies to its
// Option struct.
func FillFlags(fs *flag.FlagSet, s *Settings) error {
	return flagsfiller.New().Fill(fs, s)
}

// parametersRow is the decode target for the single-row "parameters"
// input table (§6), shaped as the original Python's
// `parameters_input['Max Run Time'][0]` access in
// original_source/src/main.py::run_solver, but using field names gorilla's
// form-style decoder maps via schema tags from the literal column
// headers.
type parametersRow struct {
	MaxRunTimeSeconds float64 `schema:"Max Run Time"`
	GapLimit          float64 `schema:"Gap Limit"`
}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// FromParametersRow decodes the single-row "parameters" input table
// (represented as the map[string][]string shape gorilla/schema expects)
// into SolverSettings, reproducing
// `settings.solver.max_run_time = parameters_input['Max Run Time'][0]`
// and `settings.solver.gap_limit = parameters_input['Gap Limit'][0]` from
// original_source/src/main.py::run_solver.
func FromParametersRow(row map[string][]string) (SolverSettings, error) {
	var p parametersRow
	if err := decoder.Decode(&p, row); err != nil {
		return SolverSettings{}, err
	}
	return SolverSettings{
		MaxRunTime: time.Duration(p.MaxRunTimeSeconds) * time.Second,
		GapLimit:   p.GapLimit,
		SolverName: "highs",
	}, nil
}
