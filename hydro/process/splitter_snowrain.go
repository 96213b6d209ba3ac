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
	hydro.RegisterSplitter("snow_rain", newSnowRainSplitter)
}

// snowRainSplitter partitions precipitation into its snow and rain output
// fluxes using a linear transition range: at or below transitionStart
// everything falls as snow, at or above transitionEnd everything falls as
// rain, and in between the snow fraction interpolates linearly.
type snowRainSplitter struct {
	name            string
	precipitation   *hydro.ForcingSlot
	temperature     *hydro.ForcingSlot
	transitionStart *inp.ParamRef
	transitionEnd   *inp.ParamRef
	snowOutput      *hydro.Flux
	rainOutput      *hydro.Flux
}

func newSnowRainSplitter(in *hydro.BuildInput) (hydro.Splitter, error) {
	if len(in.Outputs) != 2 {
		return nil, chk.Err("snow_rain splitter %q: expected exactly two outputs (rain, snow), got %d", in.Name, len(in.Outputs))
	}
	precip, ok := in.Forcings[inp.Precipitation]
	if !ok {
		return nil, chk.Err("snow_rain splitter %q: missing precipitation forcing", in.Name)
	}
	temp, ok := in.Forcings[inp.Temperature]
	if !ok {
		return nil, chk.Err("snow_rain splitter %q: missing temperature forcing", in.Name)
	}
	start, ok := in.Params["transition_start"]
	if !ok {
		return nil, chk.Err("snow_rain splitter %q: missing parameter %q", in.Name, "transition_start")
	}
	end, ok := in.Params["transition_end"]
	if !ok {
		return nil, chk.Err("snow_rain splitter %q: missing parameter %q", in.Name, "transition_end")
	}
	rainOut, snowOut := in.Outputs[0], in.Outputs[1]
	snowOut.Type, rainOut.Type = hydro.FluxSnow, hydro.FluxWater
	return &snowRainSplitter{
		name: in.Name, precipitation: precip, temperature: temp,
		transitionStart: start, transitionEnd: end,
		snowOutput: snowOut, rainOutput: rainOut,
	}, nil
}

func (s *snowRainSplitter) Name() string          { return s.name }
func (s *snowRainSplitter) Kind() string           { return "snow_rain" }
func (s *snowRainSplitter) Outputs() []*hydro.Flux { return []*hydro.Flux{s.rainOutput, s.snowOutput} }

func (s *snowRainSplitter) Execute() error {
	precip := s.precipitation.Current
	temp := s.temperature.Current
	start, end := s.transitionStart.Current, s.transitionEnd.Current

	var snowFraction float64
	switch {
	case temp <= start:
		snowFraction = 1
	case temp >= end:
		snowFraction = 0
	default:
		snowFraction = (end - temp) / (end - start)
	}

	s.snowOutput.Amount = precip * snowFraction
	s.rainOutput.Amount = precip * (1 - snowFraction)
	return nil
}
