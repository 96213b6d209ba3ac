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
	hydro.RegisterProcess("melt:temperature_index", newTemperatureIndexMelt)
}

// temperatureIndexMelt adds a shortwave-radiation term to the degree-day
// law:
//   rate = (meltFactor + radiationFactor*radiation) * max(temperature-meltTemperature, 0)
type temperatureIndexMelt struct {
	brick           *hydro.Brick
	output          *hydro.Flux
	temperature     *hydro.ForcingSlot
	radiation       *hydro.ForcingSlot
	meltFactor      *inp.ParamRef
	radiationFactor *inp.ParamRef
	meltTemperature *inp.ParamRef
}

func newTemperatureIndexMelt(in *hydro.BuildInput) (hydro.Process, error) {
	if len(in.Outputs) != 1 {
		return nil, chk.Err("temperature-index melt %q: expected exactly one output, got %d", in.Name, len(in.Outputs))
	}
	temp, ok := in.Forcings[inp.Temperature]
	if !ok {
		return nil, chk.Err("temperature-index melt %q: missing temperature forcing", in.Name)
	}
	rad, ok := in.Forcings[inp.Radiation]
	if !ok {
		return nil, chk.Err("temperature-index melt %q: missing radiation forcing", in.Name)
	}
	meltFactor, ok := in.Params["melt_factor"]
	if !ok {
		return nil, chk.Err("temperature-index melt %q: missing parameter %q", in.Name, "melt_factor")
	}
	radFactor, ok := in.Params["radiation_factor"]
	if !ok {
		return nil, chk.Err("temperature-index melt %q: missing parameter %q", in.Name, "radiation_factor")
	}
	meltTemp, ok := in.Params["melt_temperature"]
	if !ok {
		return nil, chk.Err("temperature-index melt %q: missing parameter %q", in.Name, "melt_temperature")
	}
	return &temperatureIndexMelt{
		brick: in.Brick, output: in.Outputs[0], temperature: temp, radiation: rad,
		meltFactor: meltFactor, radiationFactor: radFactor, meltTemperature: meltTemp,
	}, nil
}

func (p *temperatureIndexMelt) Name() string            { return "melt:temperature_index" }
func (p *temperatureIndexMelt) Kind() string             { return "melt:temperature_index" }
func (p *temperatureIndexMelt) Category() hydro.Category { return hydro.CategoryODE }
func (p *temperatureIndexMelt) Brick() *hydro.Brick      { return p.brick }
func (p *temperatureIndexMelt) Outputs() []*hydro.Flux   { return []*hydro.Flux{p.output} }

func (p *temperatureIndexMelt) ComputeRates() error {
	if gatedBySnowCover(p.brick) {
		p.output.Rate = 0
		return nil
	}
	excess := p.temperature.Current - p.meltTemperature.Current
	if excess <= 0 {
		p.output.Rate = 0
		return nil
	}
	factor := p.meltFactor.Current + p.radiationFactor.Current*p.radiation.Current
	if factor < 0 {
		factor = 0
	}
	p.output.Rate = factor * excess
	return nil
}

func (p *temperatureIndexMelt) Execute() error { return nil }
