// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"fmt"

	"github.com/hydrobricks/hydrobricks-sub001/hydro"
)

// StepRecord is one time step's logged state: basin-wide aggregates plus
// every hydro-unit's per-brick water content.
type StepRecord struct {
	Step                    int
	MJD                     float64
	OutletDischarge         float64
	TotalET                 float64
	TotalWaterStorageChange float64
	TotalSnowStorageChange  float64
	UnitValues              map[int]map[string]float64
	BrickTotals             map[string]float64 // area/fraction-weighted content, summed across units
}

// Logger is the read-only surface a caller inspects after ModelHydro.Run:
// a plain time series of StepRecord plus a handful of basin-wide
// aggregation helpers. It also holds the per-brick content of the
// previous step, needed to turn absolute content into a storage change.
type Logger struct {
	steps       []StepRecord
	prevContent map[string]float64
}

// NewLogger returns an empty logger.
func NewLogger() *Logger {
	return &Logger{prevContent: map[string]float64{}}
}

// RecordStep appends one step's state, diffing every brick's content
// against what was recorded for it on the previous call.
func (l *Logger) RecordStep(step int, mjd float64, sb *SubBasin) {
	rec := StepRecord{Step: step, MJD: mjd, UnitValues: map[int]map[string]float64{}, BrickTotals: map[string]float64{}}
	for _, u := range sb.Units {
		rec.OutletDischarge += u.OutletAmount * u.Area
		unitVals := map[string]float64{}
		for _, b := range u.Bricks {
			if b.Water == nil {
				continue
			}
			content := b.Water.Content()
			unitVals[b.Name] = content
			rec.BrickTotals[b.Name] += content * b.Fraction * u.Area

			key := fmt.Sprintf("%d:%s", u.Id, b.Name)
			delta := (content - l.prevContent[key]) * b.Fraction * u.Area
			if b.Kind == hydro.KindSnowpack {
				rec.TotalSnowStorageChange += delta
			} else {
				rec.TotalWaterStorageChange += delta
			}
			l.prevContent[key] = content

			for _, p := range b.Processes {
				if p.Kind() != "et:socont" {
					continue
				}
				for _, f := range p.Outputs() {
					rec.TotalET += f.Integrated * f.Weight * f.Fraction * u.Area
				}
			}
		}
		rec.UnitValues[u.Id] = unitVals
	}
	l.steps = append(l.steps, rec)
}

// GetSubBasinValues returns the full recorded step history.
func (l *Logger) GetSubBasinValues() []StepRecord { return l.steps }

// GetHydroUnitValues returns, for one unit, the per-brick content at every
// recorded step.
func (l *Logger) GetHydroUnitValues(unitId int) []map[string]float64 {
	out := make([]map[string]float64, len(l.steps))
	for i, s := range l.steps {
		out[i] = s.UnitValues[unitId]
	}
	return out
}

// GetTotalOutletDischarge sums the basin outlet discharge over every
// recorded step.
func (l *Logger) GetTotalOutletDischarge() float64 {
	return l.sumField(func(s StepRecord) float64 { return s.OutletDischarge })
}

// GetTotalET sums the basin evapotranspiration over every recorded step.
func (l *Logger) GetTotalET() float64 {
	return l.sumField(func(s StepRecord) float64 { return s.TotalET })
}

// GetTotalWaterStorageChanges sums the non-snow water storage change over
// every recorded step.
func (l *Logger) GetTotalWaterStorageChanges() float64 {
	return l.sumField(func(s StepRecord) float64 { return s.TotalWaterStorageChange })
}

// GetTotalSnowStorageChanges sums the snowpack storage change over every
// recorded step.
func (l *Logger) GetTotalSnowStorageChanges() float64 {
	return l.sumField(func(s StepRecord) float64 { return s.TotalSnowStorageChange })
}

// GetTotalHydroUnits returns the basin-wide, area-weighted time series of
// a named brick's content -- summed across every unit that carries a
// brick with that name, scaled by each unit's area and that brick's
// land-cover fraction. Useful for e.g. total glacier ice volume or total
// snow storage across the whole basin.
func (l *Logger) GetTotalHydroUnits(name string) []float64 {
	out := make([]float64, len(l.steps))
	for i, s := range l.steps {
		out[i] = s.BrickTotals[name]
	}
	return out
}

func (l *Logger) sumField(get func(StepRecord) float64) float64 {
	sum := 0.0
	for _, s := range l.steps {
		sum += get(s)
	}
	return sum
}
