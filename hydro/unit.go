// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import "github.com/hydrobricks/hydrobricks-sub001/inp"

// HydroUnit is one area-weighted response unit: a set of land-cover bricks
// (plus any bare-ground storage bricks), the splitters feeding them, its
// live forcing slots, and an accumulator collecting mass routed to "outlet".
type HydroUnit struct {
	Id       int
	Area     float64 // m^2
	Elevation *float64
	Slope     *float64
	Aspect    inp.AspectClass

	Bricks    []*Brick
	BrickByName map[string]*Brick

	Splitters []Splitter

	Forcings map[inp.VariableKind]*ForcingSlot

	// OutletAmount accumulates the step's mass routed to "outlet" (component
	// B target grammar); reset to zero at the start of every step and read
	// by the sub-basin aggregator after commit.
	OutletAmount float64

	// LateralNeighbors lists donor/receiver links for the lateral snow
	// redistribution barrier stage (component E), each with its declared
	// transfer fraction.
	LateralNeighbors []LateralLink
}

// LateralLink is one directed lateral-transfer edge between two hydro-units.
type LateralLink struct {
	To       *HydroUnit
	Fraction float64
}

// NewHydroUnit returns an empty unit ready for the Builder to populate.
func NewHydroUnit(id int, area float64) *HydroUnit {
	return &HydroUnit{
		Id:          id,
		Area:        area,
		BrickByName: map[string]*Brick{},
		Forcings:    map[inp.VariableKind]*ForcingSlot{},
	}
}

// AddBrick registers a brick under this unit, indexed by name.
func (u *HydroUnit) AddBrick(b *Brick) {
	b.Unit = u
	u.Bricks = append(u.Bricks, b)
	u.BrickByName[b.Name] = b
}

// Forcing returns (creating if necessary) the live slot for a variable
// kind; processes and splitters read Current from the slot returned here.
func (u *HydroUnit) Forcing(kind inp.VariableKind) *ForcingSlot {
	f, ok := u.Forcings[kind]
	if !ok {
		f = &ForcingSlot{Kind: kind}
		u.Forcings[kind] = f
	}
	return f
}

// ResetOutlet zeroes the per-step outlet accumulator; called by
// solver.StepUnit before every step's splitter/stage pass.
func (u *HydroUnit) ResetOutlet() { u.OutletAmount = 0 }

// RouteToOutlet adds an already fraction-weighted amount (mm over the
// unit's area, not yet multiplied by Area) to the unit's outlet total.
func (u *HydroUnit) RouteToOutlet(amount float64) { u.OutletAmount += amount }
