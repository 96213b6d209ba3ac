// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package process

import (
	"github.com/cpmech/gosl/chk"

	"github.com/hydrobricks/hydrobricks-sub001/hydro"
	"github.com/hydrobricks/hydrobricks-sub001/inp"
)

func init() {
	hydro.RegisterProcess("et:socont", newSocontET)
}

// socontET is the Socont-model actual-evapotranspiration law: potential ET
// is reduced linearly with the relative saturation of the brick's capped
// store, or applied in full when the brick carries no capacity.
//   rate = pet * min(1, content/capacity)
type socontET struct {
	brick  *hydro.Brick
	output *hydro.Flux
	pet    *hydro.ForcingSlot
}

func newSocontET(in *hydro.BuildInput) (hydro.Process, error) {
	if len(in.Outputs) != 1 {
		return nil, chk.Err("socont ET %q: expected exactly one output, got %d", in.Name, len(in.Outputs))
	}
	pet, ok := in.Forcings[inp.PET]
	if !ok {
		return nil, chk.Err("socont ET %q: missing PET forcing", in.Name)
	}
	return &socontET{brick: in.Brick, output: in.Outputs[0], pet: pet}, nil
}

func (p *socontET) Name() string            { return "et:socont" }
func (p *socontET) Kind() string             { return "et:socont" }
func (p *socontET) Category() hydro.Category { return hydro.CategoryODE }
func (p *socontET) Brick() *hydro.Brick      { return p.brick }
func (p *socontET) Outputs() []*hydro.Flux   { return []*hydro.Flux{p.output} }

func (p *socontET) ComputeRates() error {
	ratio := 1.0
	if cap, ok := p.brick.Water.Capacity(); ok && cap > 0 {
		ratio = p.brick.Water.ContentWithChanges() / cap
		if ratio > 1 {
			ratio = 1
		} else if ratio < 0 {
			ratio = 0
		}
	}
	p.output.Rate = p.pet.Current * ratio
	return nil
}

func (p *socontET) Execute() error { return nil }
