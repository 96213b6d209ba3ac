// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Parameter is a named scalar whose value may vary with time. It mirrors
// gofem's fun.Prm in spirit (a named, lookup-able scalar) but implements the
// closed set of variants spec §3 requires, rather than fun's general
// function-of-time objects.
type Parameter interface {
	// ValueAt returns the parameter's value at the given Modified Julian
	// Date. A lookup outside the parameter's declared coverage returns NaN;
	// ParamStore.Update stores that NaN in the live slot without aborting
	// and without logging a warning.
	ValueAt(mjd float64) float64
}

// Constant is a time-invariant parameter.
type Constant struct {
	Value float64
}

func (c *Constant) ValueAt(mjd float64) float64 { return c.Value }

// VariableYearly holds one value per calendar year in [StartYear, EndYear].
type VariableYearly struct {
	StartYear int
	EndYear   int
	Values    []float64
}

// NewVariableYearly validates that len(values) == EndYear-StartYear+1.
func NewVariableYearly(startYear, endYear int, values []float64) (*VariableYearly, error) {
	want := endYear - startYear + 1
	if len(values) != want {
		return nil, chk.Err("VariableYearly: expected %d values for years [%d,%d], got %d", want, startYear, endYear, len(values))
	}
	return &VariableYearly{StartYear: startYear, EndYear: endYear, Values: values}, nil
}

func (v *VariableYearly) ValueAt(mjd float64) float64 {
	year := MJDToTime(mjd).Year()
	if year < v.StartYear || year > v.EndYear {
		return math.NaN()
	}
	return v.Values[year-v.StartYear]
}

// VariableMonthly holds twelve values, one per calendar month.
type VariableMonthly struct {
	Values [12]float64
}

// NewVariableMonthly validates that exactly 12 values are given.
func NewVariableMonthly(values []float64) (*VariableMonthly, error) {
	if len(values) != 12 {
		return nil, chk.Err("VariableMonthly: expected 12 values, got %d", len(values))
	}
	var v VariableMonthly
	copy(v.Values[:], values)
	return &v, nil
}

func (v *VariableMonthly) ValueAt(mjd float64) float64 {
	month := int(MJDToTime(mjd).Month()) - 1
	return v.Values[month]
}

// VariableDates holds values discretely keyed by MJD dates.
type VariableDates struct {
	Dates  []float64 // MJD, ascending
	Values []float64
}

// NewVariableDates validates that len(dates) == len(values).
func NewVariableDates(dates, values []float64) (*VariableDates, error) {
	if len(dates) != len(values) {
		return nil, chk.Err("VariableDates: dates (%d) and values (%d) length mismatch", len(dates), len(values))
	}
	return &VariableDates{Dates: dates, Values: values}, nil
}

// ValueAt returns the value at the exact date, or the value of the nearest
// preceding date. Returns NaN if mjd precedes the first declared date.
func (v *VariableDates) ValueAt(mjd float64) float64 {
	if len(v.Dates) == 0 || mjd < v.Dates[0] {
		return math.NaN()
	}
	idx := 0
	for i, d := range v.Dates {
		if d > mjd {
			break
		}
		idx = i
	}
	return v.Values[idx]
}

// ParamDef is the declarative (ModelSpec-owned) description of a parameter:
// a name plus one variant. The Builder materialises it into a live
// *ParamRef cell that processes/bricks hold non-owning references to.
type ParamDef struct {
	Name    string
	Value   Parameter
}

// ParamRef is the live, resolved value slot a process/brick reads every
// time step. The ParametersUpdater (component A/E) rewrites Current at
// each step by evaluating Value.ValueAt(mjd).
type ParamRef struct {
	Name    string
	Value   Parameter
	Current float64
}

// Update re-evaluates Current from Value at the given date.
func (p *ParamRef) Update(mjd float64) {
	p.Current = p.Value.ValueAt(mjd)
}

// ParamStore owns every ParamRef created for a ModelSpec; the updater walks
// it once per time step.
type ParamStore struct {
	start float64
	refs  []*ParamRef
}

// NewParamStore returns a store that resolves every ParamRef it creates
// against start (a Modified Julian Date, normally the simulation window's
// Start) the moment it is added, so a build-time reader of ref.Current --
// e.g. a splitter validating that its fan-out fractions sum to one -- never
// observes the zero value.
func NewParamStore(start float64) *ParamStore {
	return &ParamStore{start: start}
}

// Add creates, stores, and returns a new live ParamRef for def, already
// resolved at the store's start date.
func (s *ParamStore) Add(def *ParamDef) *ParamRef {
	ref := &ParamRef{Name: def.Name, Value: def.Value}
	ref.Update(s.start)
	s.refs = append(s.refs, ref)
	return ref
}

// Update walks every owned ParamRef, rewriting its live value.
func (s *ParamStore) Update(mjd float64) {
	for _, r := range s.refs {
		r.Update(mjd)
	}
}
