// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/hydrobricks/hydrobricks-sub001/hydro"
	"github.com/hydrobricks/hydrobricks-sub001/inp"
)

// redistributeSnowLaterally runs the donor-receiver lateral snow transfer
// as a barrier stage after every unit has committed its own step: each
// unit with outgoing lateral connections (hydro.HydroUnit.LateralNeighbors,
// a SnowSlide-style slope/elevation-driven topology resolved once at build
// time) hands declared fractions of its pre-redistribution snow content to
// its neighbors. Every unit's outgoing share is computed from the same
// pre-redistribution snapshot, so the result does not depend on visitation
// order. Shares are scaled by donor/receiver snowpack area, preserving total
// basin snow mass; a share sent to a unit without snowpack area is
// discarded with a warning.
//
// The transport:snow_slide rule gates a donor's eligible mass to zero --
// leaving its snow in place for this step -- when its slope falls below
// the slope-holding-capacity threshold (atan(cfg.SlopeHolding), in
// degrees) or its pre-redistribution SWE falls below cfg.SweHolding.
func redistributeSnowLaterally(sb *SubBasin, cfg inp.SnowRedistributionDef, log *logrus.Logger) {
	slopeThreshold := math.Atan(cfg.SlopeHolding) * 180 / math.Pi

	snowpacks := map[int]*hydro.WaterContainer{}
	preSnow := map[int]float64{}
	weight := map[int]float64{} // unit area times snowpack land-cover fraction
	for _, u := range sb.Units {
		if sp := findSnowpack(u); sp != nil {
			snowpacks[u.Id] = sp
			preSnow[u.Id] = sp.Content()
			for _, b := range u.Bricks {
				if b.Kind == hydro.KindSnowpack {
					weight[u.Id] = u.Area * b.Fraction
					break
				}
			}
		}
	}

	deltas := map[int]float64{}
	for _, u := range sb.Units {
		if len(u.LateralNeighbors) == 0 {
			continue
		}
		if _, ok := snowpacks[u.Id]; !ok {
			continue
		}
		total := preSnow[u.Id]
		if total < cfg.SweHolding {
			continue // below the SWE-holding threshold: nothing transported
		}
		if u.Slope == nil || *u.Slope < slopeThreshold {
			continue // below the slope-holding-capacity threshold: nothing transported
		}
		for _, link := range u.LateralNeighbors {
			amount := total * link.Fraction
			deltas[u.Id] -= amount
			if _, ok := snowpacks[link.To.Id]; ok && weight[link.To.Id] > 0 {
				// convert the donor's SWE depth to the receiver's snowpack area
				deltas[link.To.Id] += amount * weight[u.Id] / weight[link.To.Id]
			} else if log != nil {
				log.Warnf("lateral snow transfer from unit %d targets unit %d, which has no snowpack area; mass discarded", u.Id, link.To.Id)
			}
		}
	}

	for id, delta := range deltas {
		c := snowpacks[id]
		next := c.Content() + delta
		if next < 0 && next > -hydro.Epsilon {
			next = 0
		}
		c.SetContent(next)
	}
}

func findSnowpack(u *hydro.HydroUnit) *hydro.WaterContainer {
	for _, b := range u.Bricks {
		if b.Kind == hydro.KindSnowpack {
			return b.Snow()
		}
	}
	return nil
}
