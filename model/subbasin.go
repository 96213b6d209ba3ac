// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model implements the drive loop: SubBasin (the live hydro-unit
// graph), ModelHydro (owns the loop and the parameter/forcing refresh),
// the lateral snow-redistribution barrier stage, and the read-only Logger
// surface. Mirrors gofem's fem.Domain/fem.Solver split: Domain owns the
// element graph for one sub-region, Solver drives it through time.
package model

import "github.com/hydrobricks/hydrobricks-sub001/hydro"

// SubBasin owns the live hydro-unit graph assembled by hydro.Builder.
type SubBasin struct {
	Units []*hydro.HydroUnit
}

// NewSubBasin wraps an already-built slice of units.
func NewSubBasin(units []*hydro.HydroUnit) *SubBasin { return &SubBasin{Units: units} }

// UnitByID returns the unit with the given id, or nil.
func (sb *SubBasin) UnitByID(id int) *hydro.HydroUnit {
	for _, u := range sb.Units {
		if u.Id == id {
			return u
		}
	}
	return nil
}

// TotalArea sums the area of every unit in the sub-basin.
func (sb *SubBasin) TotalArea() float64 {
	total := 0.0
	for _, u := range sb.Units {
		total += u.Area
	}
	return total
}
