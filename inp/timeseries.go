// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
)

// TimeSeries is a regular, in-memory forcing series. A uniform series
// applies one scalar column to every hydro-unit (len(Values) == 1); a
// multi-column series maps column index -> unit index in At.
type TimeSeries struct {
	T0, T1 float64  // MJD
	Step   float64  // in Unit's native unit
	Unit   TimeUnit
	Values [][]float64 // [ncols][nsteps]; ncols==1 for a uniform series
}

// NewUniformTimeSeries builds a single-column series applied to all units.
func NewUniformTimeSeries(t0, t1, step float64, unit TimeUnit, values []float64) (*TimeSeries, error) {
	return newTimeSeries(t0, t1, step, unit, [][]float64{values})
}

// NewMultiColumnTimeSeries builds a series with one column per unit.
func NewMultiColumnTimeSeries(t0, t1, step float64, unit TimeUnit, columns [][]float64) (*TimeSeries, error) {
	return newTimeSeries(t0, t1, step, unit, columns)
}

func newTimeSeries(t0, t1, step float64, unit TimeUnit, columns [][]float64) (*TimeSeries, error) {
	want := int((t1-t0)/(step*unit.Days())) + 1
	for i, col := range columns {
		if len(col) != want {
			return nil, chk.Err("TimeSeries: column %d has %d values, expected %d for [%g,%g] step %g", i, len(col), want, t0, t1, step)
		}
	}
	return &TimeSeries{T0: t0, T1: t1, Step: step, Unit: unit, Values: columns}, nil
}

// NSteps returns the number of samples in the series.
func (s *TimeSeries) NSteps() int {
	if len(s.Values) == 0 {
		return 0
	}
	return len(s.Values[0])
}

// IsUniform reports whether a single column applies to every unit.
func (s *TimeSeries) IsUniform() bool { return len(s.Values) == 1 }

// At returns the sample at the given step index for the given unit index
// (ignored when the series is uniform).
func (s *TimeSeries) At(step, unitIdx int) float64 {
	if s.IsUniform() {
		return s.Values[0][step]
	}
	return s.Values[unitIdx][step]
}

// StepIndex returns the sample index nearest to mjd, or -1 if out of range.
func (s *TimeSeries) StepIndex(mjd float64) int {
	dtDays := s.Step * s.Unit.Days()
	if dtDays <= 0 {
		return -1
	}
	if mjd < s.T0-1e-9 || mjd > s.T1+1e-9 {
		return -1
	}
	idx := int((mjd-s.T0)/dtDays + 0.5)
	if idx < 0 || idx >= s.NSteps() {
		return -1
	}
	return idx
}
