// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package inp implements the declarative, in-memory description consumed by
// the builder: ModelSpec (bricks, processes, splitters, parameters) and
// BasinSpec (hydro-units, land-cover fractions, lateral connections). It is
// purely descriptive -- turning string references into object edges is the
// Builder's job (package hydro), not this package's.
package inp

import (
	"strings"

	"github.com/cpmech/gosl/chk"
)

// SolverKind identifies the explicit time-integration scheme requested by a
// ModelSpec.
type SolverKind int

const (
	EulerExplicit SolverKind = iota
	HeunExplicit
	RungeKutta4
)

// ParseSolverKind recognises the solver names accepted by the core,
// case-insensitively, including the "rk4" alias for runge_kutta.
func ParseSolverKind(name string) (SolverKind, error) {
	switch strings.ToLower(name) {
	case "euler_explicit":
		return EulerExplicit, nil
	case "heun_explicit":
		return HeunExplicit, nil
	case "runge_kutta", "rk4":
		return RungeKutta4, nil
	}
	return EulerExplicit, chk.Err("unrecognized solver name %q", name)
}

// TimeUnit identifies the unit of a simulation time step.
type TimeUnit int

const (
	Minute TimeUnit = iota
	Hour
	Day
	Week
)

// ParseTimeUnit recognises the time-step units accepted by the core,
// case-insensitively.
func ParseTimeUnit(name string) (TimeUnit, error) {
	switch strings.ToLower(name) {
	case "minute":
		return Minute, nil
	case "hour":
		return Hour, nil
	case "day":
		return Day, nil
	case "week":
		return Week, nil
	}
	return Day, chk.Err("unrecognized time-step unit %q", name)
}

// VariableKind identifies a forcing variable kind.
type VariableKind int

const (
	Precipitation VariableKind = iota
	Temperature
	PET
	Radiation
)

// String returns the canonical lower-case name of the variable kind.
func (v VariableKind) String() string {
	switch v {
	case Precipitation:
		return "precipitation"
	case Temperature:
		return "temperature"
	case PET:
		return "pet"
	case Radiation:
		return "radiation"
	}
	return "unknown"
}

// TimeWindow holds the simulation time span and step.
type TimeWindow struct {
	Start float64  `json:"start"` // MJD
	End   float64  `json:"end"`   // MJD
	Step  float64  `json:"step"`  // in Unit's native unit
	Unit  TimeUnit `json:"unit"`
}

// StepDays returns the step size expressed in days.
func (w TimeWindow) StepDays() float64 {
	return w.Step * w.Unit.Days()
}

// NSteps returns the number of steps spanned by the window.
func (w TimeWindow) NSteps() int {
	dtDays := w.StepDays()
	if dtDays <= 0 {
		return 0
	}
	return int((w.End-w.Start)/dtDays) + 1
}

// OutputDef names a process output's target and how it is wired.
type OutputDef struct {
	Target     string `json:"target"`     // "outlet" | "brick" | "brick:compartment"
	AsStatic   bool   `json:"as_static"`  // evaluated once per step, not by the solver
	AsFraction bool   `json:"as_fraction"` // declared only; the Builder ignores it and the flux Fraction stays 1
}

// ProcessDef declares one rate-law process attached to a brick.
type ProcessDef struct {
	Name                string        `json:"name"`
	Kind                string        `json:"kind"` // e.g. "linear", "direct", "overflow", "melt:degree_day", ...
	Parameters          []*ParamDef   `json:"parameters"`
	Forcings            []string      `json:"forcings"`
	Outputs             []*OutputDef  `json:"outputs"`
	OutputToSameBrick   bool          `json:"output_to_same_brick"`
}

// SplitterDef declares a stateless fan-out/fan-in operator attached to a
// hydro-unit.
type SplitterDef struct {
	Name       string       `json:"name"`
	Kind       string       `json:"kind"` // "snow_rain" | "multi_fluxes"
	Forcings   []string     `json:"forcings"`
	Parameters []*ParamDef  `json:"parameters"`
	Outputs    []*OutputDef `json:"outputs"`
}

// BrickDef declares one brick: its type tag, forcings, owned parameters,
// logged quantities, and the processes attached to it.
type BrickDef struct {
	Name             string        `json:"name"`
	Type             string        `json:"type"` // storage|generic_land_cover|ground|generic|glacier|urban|vegetation|snowpack
	Forcings         []string      `json:"forcings"`
	Parameters       []*ParamDef   `json:"parameters"`
	LoggedQuantities []string      `json:"logged_quantities"`
	Processes        []*ProcessDef `json:"processes"`

	// brick-specific flags, meaningful for glacier/snowpack types
	UnlimitedSupply     bool `json:"unlimited_supply"`
	NoMeltWhenSnowCover bool `json:"no_melt_when_snow_cover"`
	LinkedBrick         string `json:"linked_brick"` // glacier <-> snowpack gating/transform partner
}

// SnowRedistributionDef configures the transport:snow_slide holding-capacity
// gate applied by the lateral snow redistribution stage: a donor unit's
// pre-redistribution snow is transport-eligible only once both thresholds
// clear.
type SnowRedistributionDef struct {
	// SlopeHolding is the tangent of the slope-holding-capacity angle: a
	// donor unit's slope (degrees) must be at least atan(SlopeHolding)
	// (also degrees) before any of its snow is eligible for transport.
	// Zero -- the default -- yields a 0-degree threshold, i.e. every
	// non-negative slope clears it.
	SlopeHolding float64 `json:"slope_holding"`
	// SweHolding is the minimum pre-redistribution SWE (mm) a donor must
	// hold before any of it is eligible for transport. Zero disables
	// this gate.
	SweHolding float64 `json:"swe_holding"`
}

// ModelSpec carries the declarative description of the object graph: the
// solver to use, the simulation window, and the ordered brick/splitter
// definitions.
type ModelSpec struct {
	Solver             string                `json:"solver"`
	Window             TimeWindow            `json:"window"`
	Bricks             []*BrickDef           `json:"bricks"`
	Splitters          []*SplitterDef        `json:"splitters"`
	SnowRedistribution SnowRedistributionDef `json:"snow_redistribution"`
}

// BrickByName returns the brick definition with the given name, or nil.
func (m *ModelSpec) BrickByName(name string) *BrickDef {
	for _, b := range m.Bricks {
		if b.Name == name {
			return b
		}
	}
	return nil
}
