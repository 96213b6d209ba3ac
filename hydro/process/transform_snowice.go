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
	hydro.RegisterProcess("transform:snow_ice_constant", newSnowIceConstant)
}

// snowIceConstant converts accumulated snow into glacier ice at a constant
// fractional rate of the snowpack's committed content per step -- the
// "old snow becomes firn becomes ice" simplification (spec §3).
type snowIceConstant struct {
	brick       *hydro.Brick
	output      *hydro.Flux
	rate        *inp.ParamRef
	stepDays    float64
}

func newSnowIceConstant(in *hydro.BuildInput) (hydro.Process, error) {
	if len(in.Outputs) != 1 {
		return nil, chk.Err("snow-to-ice transform %q: expected exactly one output, got %d", in.Name, len(in.Outputs))
	}
	rate, ok := in.Params["transformation_rate"]
	if !ok {
		return nil, chk.Err("snow-to-ice transform %q: missing parameter %q", in.Name, "transformation_rate")
	}
	stepDays, _ := in.Extra["step_days"].(float64)
	return &snowIceConstant{brick: in.Brick, output: in.Outputs[0], rate: rate, stepDays: stepDays}, nil
}

func (p *snowIceConstant) Name() string            { return "transform:snow_ice_constant" }
func (p *snowIceConstant) Kind() string             { return "transform:snow_ice_constant" }
func (p *snowIceConstant) Category() hydro.Category { return hydro.CategoryInstantaneous }
func (p *snowIceConstant) Brick() *hydro.Brick      { return p.brick }
func (p *snowIceConstant) Outputs() []*hydro.Flux   { return []*hydro.Flux{p.output} }

func (p *snowIceConstant) ComputeRates() error { return nil }

func (p *snowIceConstant) Execute() error {
	snow := p.brick.Snow()
	if snow == nil {
		snow = p.brick.Water
	}
	p.output.Amount = p.rate.Current * snow.Content() * p.stepDays
	return nil
}
