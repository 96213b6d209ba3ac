// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"math"

	"github.com/hydrobricks/hydrobricks-sub001/herrors"
	"github.com/hydrobricks/hydrobricks-sub001/inp"
)

// BrickKind collapses the deep Storage/LandCover{Generic,Glacier,Snowpack,
// Vegetation,Urban} hierarchy of the original C++ model into a single
// tagged variant (Design Notes §9).
type BrickKind int

const (
	KindStorage BrickKind = iota
	KindLandCoverGeneric
	KindGlacier
	KindSnowpack
	KindVegetation
	KindUrban
)

// Capabilities is a small bitset standing in for the virtual-inheritance
// hierarchy the original model used (Design Notes §9).
type Capabilities uint8

const (
	HasContainer Capabilities = 1 << iota
	NeedsSolver
	IsSnowpackCap
	IsGlacierCap
	IsLandCoverCap
)

func (c Capabilities) Has(bit Capabilities) bool { return c&bit != 0 }

// Brick is a reservoir with an optional water container: a Storage, or a
// LandCover variant (Generic/Glacier/Snowpack/Vegetation/Urban) plus its
// fractional area of a hydro-unit.
type Brick struct {
	Name string
	Kind BrickKind
	Caps Capabilities

	Unit *HydroUnit // non-owning back-reference

	Fraction float64 // land-cover fraction; 1.0 for non-land-cover bricks

	Water        *WaterContainer            // the primary "water" compartment
	Compartments map[string]*WaterContainer // named extra compartments: "ice", "snow"

	Processes []Process

	// glacier-specific (spec §3/§4.C "Glacier exception")
	UnlimitedSupply     bool
	NoMeltWhenSnowCover bool
	SnowGate            *Brick // the linked snowpack brick gating ice melt

	// snowpack-specific
	LinkedGlacier *Brick // glacier receiving snow->ice transformation

	// CapacityRef is the live parameter backing the primary water
	// container's capacity, re-sampled once per step alongside every other
	// parameter (component A). Nil for an uncapped brick.
	CapacityRef *inp.ParamRef

	LoggedQuantities []string
}

// RefreshCapacity re-applies the current value of CapacityRef to the
// primary water container. A no-op for an uncapped brick.
func (b *Brick) RefreshCapacity() {
	if b.CapacityRef != nil && b.Water != nil {
		b.Water.SetCapacity(b.CapacityRef.Current)
	}
}

// NewBrick returns a brick with empty compartment maps.
func NewBrick(name string, kind BrickKind) *Brick {
	return &Brick{Name: name, Kind: kind, Fraction: 1.0, Compartments: map[string]*WaterContainer{}}
}

// Compartment resolves a target compartment name ("" or "water" for the
// primary container; "ice"/"snow" for named ones), per the target grammar
// of spec §4.B.
func (b *Brick) Compartment(name string) *WaterContainer {
	if name == "" || name == "water" {
		return b.Water
	}
	return b.Compartments[name]
}

// Snow returns the snowpack's SWE compartment, or nil.
func (b *Brick) Snow() *WaterContainer { return b.Compartments["snow"] }

// Ice returns the glacier's ice compartment, or nil.
func (b *Brick) Ice() *WaterContainer { return b.Compartments["ice"] }

// ConstraintError is raised by ApplyConstraints for structural
// contradictions (spec §4.C capacity handler: "this is a configuration
// error"). The solver/drive loop wraps it with step/unit context into a
// herrors.RuntimeFault before returning it to the caller.
type ConstraintError struct {
	Kind  herrors.Kind
	Brick string
	Msg   string
}

func (e *ConstraintError) Error() string { return e.Kind.String() + ": brick " + e.Brick + ": " + e.Msg }

// ApplyConstraints enforces non-negativity and capacity bounds on the
// brick's primary water container for the current solver stage (spec §4.C).
// A glacier with UnlimitedSupply (infinite ice content) skips enforcement
// entirely.
func (b *Brick) ApplyConstraints(dt float64) error {
	c := b.Water
	if c == nil || c.IsInfinite() {
		return nil
	}

	out := sumRates(c.outgoingDynamic)
	inDyn := sumRates(c.incomingDynamic)
	inStaticAmount := sumAmounts(c.incomingStaticOrForcing) // already a whole-step amount, not a rate
	content := c.ContentWithChanges()
	change := inDyn - out

	// non-negativity: scale outgoing rates uniformly so projected content
	// lands exactly at zero.
	if change < 0 {
		projected := content + inStaticAmount + change*dt
		if projected < 0 {
			diff := projected / dt // < 0
			if out > 0 {
				for _, f := range c.outgoingDynamic {
					if f.Rate == 0 {
						continue
					}
					f.Rate += diff * math.Abs(f.Rate/out)
				}
				out = sumRates(c.outgoingDynamic)
			}
		}
	}

	// capacity
	if cap, ok := c.Capacity(); ok {
		projected := content + inStaticAmount + change*dt
		if projected > cap {
			diff := (projected - cap) / dt
			if c.overflow != nil {
				setOverflowRate(c.overflow, diff)
				return nil
			}
			if content+inStaticAmount > cap {
				return &ConstraintError{
					Kind:  herrors.ConceptionIssue,
					Brick: b.Name,
					Msg:   "forcing is coming directly into a brick with limited capacity and no overflow",
				}
			}
			if inDyn > 0 {
				for _, f := range c.incomingDynamic {
					if f.Rate == 0 {
						continue
					}
					f.Rate -= diff * math.Abs(f.Rate/inDyn)
				}
			}
		}
	}
	return nil
}

func sumRates(fluxes []*Flux) float64 {
	s := 0.0
	for _, f := range fluxes {
		s += f.Rate
	}
	return s
}

func sumAmounts(fluxes []*Flux) float64 {
	s := 0.0
	for _, f := range fluxes {
		s += f.Amount
	}
	return s
}

func setOverflowRate(p Process, rate float64) {
	outs := p.Outputs()
	if len(outs) > 0 {
		outs[0].Rate = rate
	}
}
