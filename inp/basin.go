// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

// AspectClass identifies one of the four cardinal aspect classes used by
// the degree-day-aspect melt variant.
type AspectClass int

const (
	AspectNone AspectClass = iota
	AspectNorth
	AspectEast
	AspectWest
	AspectSouth
)

// ParseAspectClass recognises {N,E,W,S}.
func ParseAspectClass(s string) AspectClass {
	switch s {
	case "N":
		return AspectNorth
	case "E":
		return AspectEast
	case "W":
		return AspectWest
	case "S":
		return AspectSouth
	}
	return AspectNone
}

// LandCoverDef assigns a fractional area of a hydro-unit to a named brick.
type LandCoverDef struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Fraction float64 `json:"fraction"`
}

// HydroUnitDef describes one spatially lumped compute cell.
type HydroUnitDef struct {
	Id         int             `json:"id"`
	Area       float64         `json:"area"` // m^2
	Elevation  *float64        `json:"elevation,omitempty"`
	Slope      *float64        `json:"slope,omitempty"`       // degrees
	Aspect     string          `json:"aspect_class,omitempty"` // N|E|W|S
	LandCovers []*LandCoverDef `json:"land_covers"`
}

// LateralConnectionDef is a directed (from,to,fraction) transport edge used
// by the lateral snow-redistribution stage.
type LateralConnectionDef struct {
	From     int     `json:"from"`
	To       int     `json:"to"`
	Fraction float64 `json:"fraction"`
}

// BasinSpec carries an ordered list of hydro-unit descriptors and the
// lateral connections between them.
type BasinSpec struct {
	Units       []*HydroUnitDef         `json:"units"`
	Connections []*LateralConnectionDef `json:"connections"`
}

// UnitByID returns the unit descriptor with the given id, or nil.
func (b *BasinSpec) UnitByID(id int) *HydroUnitDef {
	for _, u := range b.Units {
		if u.Id == id {
			return u
		}
	}
	return nil
}
