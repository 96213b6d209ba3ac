// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"math"

	"github.com/hydrobricks/hydrobricks-sub001/hydro"
	"github.com/hydrobricks/hydrobricks-sub001/inp"
)

// Forcings carries the per-unit, per-variable driving time series read
// from input files; ModelHydro's drive loop samples it once per step and
// rewrites every live hydro.ForcingSlot.Current it feeds.
type Forcings struct {
	series map[int]map[inp.VariableKind]*inp.TimeSeries
}

// NewForcings returns an empty forcing set.
func NewForcings() *Forcings {
	return &Forcings{series: map[int]map[inp.VariableKind]*inp.TimeSeries{}}
}

// Add registers the time series driving one unit's one variable kind.
func (f *Forcings) Add(unitId int, kind inp.VariableKind, ts *inp.TimeSeries) {
	byKind, ok := f.series[unitId]
	if !ok {
		byKind = map[inp.VariableKind]*inp.TimeSeries{}
		f.series[unitId] = byKind
	}
	byKind[kind] = ts
}

// apply rewrites every forcing slot unit already declared an interest in
// (hydro.HydroUnit.Forcings, populated by the Builder from brick/process/
// splitter forcing references) with the sampled value at mjd. A variable
// kind with no registered series, or a lookup outside the series' date
// range, leaves the slot at NaN -- the caller decides whether that is
// fatal.
func (f *Forcings) apply(u *hydro.HydroUnit, mjd float64) {
	byKind := f.series[u.Id]
	for kind, slot := range u.Forcings {
		ts, ok := byKind[kind]
		if !ok {
			slot.Current = math.NaN()
			continue
		}
		idx := ts.StepIndex(mjd)
		if idx < 0 {
			slot.Current = math.NaN()
			continue
		}
		slot.Current = ts.At(idx, 0)
	}
}
