// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/hydrobricks/hydrobricks-sub001/hydro"
	"github.com/hydrobricks/hydrobricks-sub001/inp"
)

func newSnowUnit(id int, slope *float64, swe float64) *hydro.HydroUnit {
	u := hydro.NewHydroUnit(id, 100)
	u.Slope = slope
	snowpack := hydro.NewBrick("snowpack", hydro.KindSnowpack)
	snowpack.Compartments = map[string]*hydro.WaterContainer{"snow": hydro.NewWaterContainer()}
	snowpack.Compartments["snow"].SetContent(swe)
	u.AddBrick(snowpack)
	return u
}

func slopeOf(v float64) *float64 { return &v }

// Test_lateral01 checks full transfer with the default (zero-threshold)
// gate configuration, the donor/receiver behavior exercised by the
// five-unit redistribution scenario.
func Test_lateral01(tst *testing.T) {

	chk.PrintTitle("lateral01: full transfer with default holding thresholds")

	donor := newSnowUnit(1, slopeOf(80), 100.0)
	receiver := newSnowUnit(2, slopeOf(0), 0.0)
	donor.LateralNeighbors = []hydro.LateralLink{{To: receiver, Fraction: 1.0}}

	sb := NewSubBasin([]*hydro.HydroUnit{donor, receiver})
	redistributeSnowLaterally(sb, inp.SnowRedistributionDef{}, nil)

	chk.Scalar(tst, "donor", 1e-9, donor.Bricks[0].Snow().Content(), 0.0)
	chk.Scalar(tst, "receiver", 1e-9, receiver.Bricks[0].Snow().Content(), 100.0)
}

// Test_lateral02 checks that a donor whose slope falls below the
// slope-holding-capacity threshold keeps all of its snow.
func Test_lateral02(tst *testing.T) {

	chk.PrintTitle("lateral02: slope-holding threshold blocks transport")

	donor := newSnowUnit(1, slopeOf(5), 100.0) // below atan(1) == 45 degrees
	receiver := newSnowUnit(2, slopeOf(0), 0.0)
	donor.LateralNeighbors = []hydro.LateralLink{{To: receiver, Fraction: 1.0}}

	sb := NewSubBasin([]*hydro.HydroUnit{donor, receiver})
	redistributeSnowLaterally(sb, inp.SnowRedistributionDef{SlopeHolding: 1.0}, nil)

	chk.Scalar(tst, "donor unchanged", 1e-9, donor.Bricks[0].Snow().Content(), 100.0)
	chk.Scalar(tst, "receiver untouched", 1e-9, receiver.Bricks[0].Snow().Content(), 0.0)
}

// Test_lateral03 checks that a donor whose pre-redistribution SWE falls
// below the SWE-holding threshold keeps all of its snow.
func Test_lateral03(tst *testing.T) {

	chk.PrintTitle("lateral03: SWE-holding threshold blocks transport")

	donor := newSnowUnit(1, slopeOf(80), 2.0)
	receiver := newSnowUnit(2, slopeOf(0), 0.0)
	donor.LateralNeighbors = []hydro.LateralLink{{To: receiver, Fraction: 1.0}}

	sb := NewSubBasin([]*hydro.HydroUnit{donor, receiver})
	redistributeSnowLaterally(sb, inp.SnowRedistributionDef{SweHolding: 5.0}, nil)

	chk.Scalar(tst, "donor unchanged", 1e-9, donor.Bricks[0].Snow().Content(), 2.0)
	chk.Scalar(tst, "receiver untouched", 1e-9, receiver.Bricks[0].Snow().Content(), 0.0)
}
