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
	hydro.RegisterProcess("melt:degree_day_aspect", newDegreeDayAspectMelt)
}

// degreeDayAspectMelt is the degree-day melt law with an aspect-dependent
// factor: the unit's aspect class selects one of three declared
// degree_day_factor_n/_ew/_s parameters (north-facing slopes melt slower
// than south-facing ones in the northern hemisphere, spec §3).
type degreeDayAspectMelt struct {
	brick           *hydro.Brick
	output          *hydro.Flux
	temperature     *hydro.ForcingSlot
	degreeDayFactor *inp.ParamRef
	meltTemperature *inp.ParamRef
}

func newDegreeDayAspectMelt(in *hydro.BuildInput) (hydro.Process, error) {
	if len(in.Outputs) != 1 {
		return nil, chk.Err("degree-day-aspect melt %q: expected exactly one output, got %d", in.Name, len(in.Outputs))
	}
	temp, ok := in.Forcings[inp.Temperature]
	if !ok {
		return nil, chk.Err("degree-day-aspect melt %q: missing temperature forcing", in.Name)
	}
	aspect, _ := in.Extra["aspect"].(inp.AspectClass)
	ddfName := aspectParamName(aspect)
	ddf, ok := in.Params[ddfName]
	if !ok {
		return nil, chk.Err("degree-day-aspect melt %q: missing parameter %q for aspect", in.Name, ddfName)
	}
	meltTemp, ok := in.Params["melt_temperature"]
	if !ok {
		return nil, chk.Err("degree-day-aspect melt %q: missing parameter %q", in.Name, "melt_temperature")
	}
	return &degreeDayAspectMelt{
		brick: in.Brick, output: in.Outputs[0], temperature: temp,
		degreeDayFactor: ddf, meltTemperature: meltTemp,
	}, nil
}

// aspectParamName resolves the degree_day_factor variant parameter name for
// an aspect class: north uses "_n", east/west share "_ew", south uses "_s";
// a flat unit without an aspect class falls back to the unsuffixed name.
func aspectParamName(a inp.AspectClass) string {
	switch a {
	case inp.AspectNorth:
		return "degree_day_factor_n"
	case inp.AspectEast, inp.AspectWest:
		return "degree_day_factor_ew"
	case inp.AspectSouth:
		return "degree_day_factor_s"
	}
	return "degree_day_factor"
}

func (p *degreeDayAspectMelt) Name() string            { return "melt:degree_day_aspect" }
func (p *degreeDayAspectMelt) Kind() string             { return "melt:degree_day_aspect" }
func (p *degreeDayAspectMelt) Category() hydro.Category { return hydro.CategoryODE }
func (p *degreeDayAspectMelt) Brick() *hydro.Brick      { return p.brick }
func (p *degreeDayAspectMelt) Outputs() []*hydro.Flux   { return []*hydro.Flux{p.output} }

func (p *degreeDayAspectMelt) ComputeRates() error {
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

func (p *degreeDayAspectMelt) Execute() error { return nil }
