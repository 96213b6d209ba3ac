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
	hydro.RegisterProcess("melt:degree_day", newDegreeDayMelt)
}

// degreeDayMelt is the classic degree-day snow/ice melt law:
//   rate = degreeDayFactor * max(temperature - meltTemperature, 0)
// A glacier brick with NoMeltWhenSnowCover set and a non-empty linked
// snowpack produces zero melt (spec §3's glacier exception).
type degreeDayMelt struct {
	brick           *hydro.Brick
	output          *hydro.Flux
	temperature     *hydro.ForcingSlot
	degreeDayFactor *inp.ParamRef
	meltTemperature *inp.ParamRef
}

func newDegreeDayMelt(in *hydro.BuildInput) (hydro.Process, error) {
	if len(in.Outputs) != 1 {
		return nil, chk.Err("degree-day melt %q: expected exactly one output, got %d", in.Name, len(in.Outputs))
	}
	temp, ok := in.Forcings[inp.Temperature]
	if !ok {
		return nil, chk.Err("degree-day melt %q: missing temperature forcing", in.Name)
	}
	ddf, ok := in.Params["degree_day_factor"]
	if !ok {
		return nil, chk.Err("degree-day melt %q: missing parameter %q", in.Name, "degree_day_factor")
	}
	meltTemp, ok := in.Params["melt_temperature"]
	if !ok {
		return nil, chk.Err("degree-day melt %q: missing parameter %q", in.Name, "melt_temperature")
	}
	return &degreeDayMelt{
		brick: in.Brick, output: in.Outputs[0], temperature: temp,
		degreeDayFactor: ddf, meltTemperature: meltTemp,
	}, nil
}

func (p *degreeDayMelt) Name() string            { return "melt:degree_day" }
func (p *degreeDayMelt) Kind() string             { return "melt:degree_day" }
func (p *degreeDayMelt) Category() hydro.Category { return hydro.CategoryODE }
func (p *degreeDayMelt) Brick() *hydro.Brick      { return p.brick }
func (p *degreeDayMelt) Outputs() []*hydro.Flux   { return []*hydro.Flux{p.output} }

func (p *degreeDayMelt) ComputeRates() error {
	if gatedBySnowCover(p.brick) {
		p.output.Rate = 0
		return nil
	}
	excess := p.temperature.Current - p.meltTemperature.Current
	if excess <= 0 {
		p.output.Rate = 0
		return nil
	}
	p.output.Rate = p.degreeDayFactor.Current * excess
	return nil
}

func (p *degreeDayMelt) Execute() error { return nil }

// gatedBySnowCover implements the glacier exception: no ice melt while its
// linked snowpack still holds snow.
func gatedBySnowCover(b *hydro.Brick) bool {
	if !b.NoMeltWhenSnowCover || b.SnowGate == nil {
		return false
	}
	snow := b.SnowGate.Snow()
	return snow != nil && snow.ContentWithChanges() > hydro.Epsilon
}
