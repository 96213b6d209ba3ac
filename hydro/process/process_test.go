// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package process

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/hydrobricks/hydrobricks-sub001/hydro"
	"github.com/hydrobricks/hydrobricks-sub001/inp"
)

func newConstRef(name string, v float64) *inp.ParamRef {
	ref := &inp.ParamRef{Name: name, Value: &inp.Constant{Value: v}}
	ref.Update(0)
	return ref
}

func Test_process01(tst *testing.T) {

	chk.PrintTitle("process01: degree-day melt")

	brick := hydro.NewBrick("glacier", hydro.KindGlacier)
	brick.Water = hydro.NewWaterContainer()
	output := &hydro.Flux{}
	in := &hydro.BuildInput{
		Name:  "melt",
		Brick: brick,
		Forcings: map[inp.VariableKind]*hydro.ForcingSlot{
			inp.Temperature: {Kind: inp.Temperature},
		},
		Params: map[string]*inp.ParamRef{
			"degree_day_factor": newConstRef("degree_day_factor", 3.0),
			"melt_temperature":  newConstRef("melt_temperature", 2.0),
		},
		Outputs: []*hydro.Flux{output},
	}
	proc, err := hydro.NewProcess("melt:degree_day", in)
	if err != nil {
		tst.Fatalf("newDegreeDayMelt failed: %v", err)
	}

	// below the melt threshold: no melt
	in.Forcings[inp.Temperature].Current = 1.0
	if err := proc.ComputeRates(); err != nil {
		tst.Fatalf("ComputeRates failed: %v", err)
	}
	chk.Scalar(tst, "rate(below threshold)", 1e-15, output.Rate, 0.0)

	// above the melt threshold: degreeDayFactor * (temp - meltTemp)
	in.Forcings[inp.Temperature].Current = 5.0
	if err := proc.ComputeRates(); err != nil {
		tst.Fatalf("ComputeRates failed: %v", err)
	}
	chk.Scalar(tst, "rate(above threshold)", 1e-15, output.Rate, 9.0)
}

func Test_process02(tst *testing.T) {

	chk.PrintTitle("process02: degree-day melt gated by snow cover")

	snowpack := hydro.NewBrick("snowpack", hydro.KindSnowpack)
	snowpack.Compartments["snow"] = hydro.NewWaterContainer()
	snowpack.Water = snowpack.Compartments["snow"]
	snowpack.Water.SetContent(5.0) // still holding snow

	glacier := hydro.NewBrick("glacier", hydro.KindGlacier)
	glacier.Water = hydro.NewWaterContainer()
	glacier.NoMeltWhenSnowCover = true
	glacier.SnowGate = snowpack

	output := &hydro.Flux{}
	in := &hydro.BuildInput{
		Name:  "melt",
		Brick: glacier,
		Forcings: map[inp.VariableKind]*hydro.ForcingSlot{
			inp.Temperature: {Kind: inp.Temperature, Current: 10.0}, // well above threshold
		},
		Params: map[string]*inp.ParamRef{
			"degree_day_factor": newConstRef("degree_day_factor", 3.0),
			"melt_temperature":  newConstRef("melt_temperature", 2.0),
		},
		Outputs: []*hydro.Flux{output},
	}
	proc, err := hydro.NewProcess("melt:degree_day", in)
	if err != nil {
		tst.Fatalf("newDegreeDayMelt failed: %v", err)
	}

	if err := proc.ComputeRates(); err != nil {
		tst.Fatalf("ComputeRates failed: %v", err)
	}
	chk.Scalar(tst, "rate(snow covered)", 1e-15, output.Rate, 0.0)

	// once the snowpack empties, melt resumes
	snowpack.Water.SetContent(0.0)
	if err := proc.ComputeRates(); err != nil {
		tst.Fatalf("ComputeRates failed: %v", err)
	}
	chk.Scalar(tst, "rate(snow-free)", 1e-15, output.Rate, 24.0)
}

func Test_process03(tst *testing.T) {

	chk.PrintTitle("process03: snow_rain splitter linear transition")

	precip := &hydro.ForcingSlot{Kind: inp.Precipitation, Current: 20.0}
	temp := &hydro.ForcingSlot{Kind: inp.Temperature}
	rainOut := &hydro.Flux{}
	snowOut := &hydro.Flux{}
	in := &hydro.BuildInput{
		Name: "split",
		Forcings: map[inp.VariableKind]*hydro.ForcingSlot{
			inp.Precipitation: precip,
			inp.Temperature:   temp,
		},
		Params: map[string]*inp.ParamRef{
			"transition_start": newConstRef("transition_start", 0.0),
			"transition_end":   newConstRef("transition_end", 2.0),
		},
		Outputs: []*hydro.Flux{rainOut, snowOut},
	}
	sp, err := hydro.NewSplitter("snow_rain", in)
	if err != nil {
		tst.Fatalf("newSnowRainSplitter failed: %v", err)
	}

	cases := []struct {
		temp           float64
		wantSnow, wantRain float64
	}{
		{-5, 20.0, 0.0},  // all snow, below transitionStart
		{5, 0.0, 20.0},   // all rain, above transitionEnd
		{1, 10.0, 10.0},  // midpoint of the transition range
	}
	for _, c := range cases {
		temp.Current = c.temp
		if err := sp.Execute(); err != nil {
			tst.Fatalf("Execute failed: %v", err)
		}
		chk.Scalar(tst, "snow", 1e-12, snowOut.Amount, c.wantSnow)
		chk.Scalar(tst, "rain", 1e-12, rainOut.Amount, c.wantRain)
	}
}

func Test_process04(tst *testing.T) {

	chk.PrintTitle("process04: multi_fluxes splitter fan-out")

	source := &hydro.ForcingSlot{Kind: inp.PET, Current: 9.0}
	out0 := &hydro.Flux{}
	out1 := &hydro.Flux{}
	out2 := &hydro.Flux{}
	in := &hydro.BuildInput{
		Name:     "fan",
		Forcings: map[inp.VariableKind]*hydro.ForcingSlot{inp.PET: source},
		Params: map[string]*inp.ParamRef{
			"fraction_0": newConstRef("fraction_0", 0.5),
			"fraction_1": newConstRef("fraction_1", 0.3),
			"fraction_2": newConstRef("fraction_2", 0.2),
		},
		Outputs: []*hydro.Flux{out0, out1, out2},
	}
	sp, err := hydro.NewSplitter("multi_fluxes", in)
	if err != nil {
		tst.Fatalf("newMultiFluxesSplitter failed: %v", err)
	}
	if err := sp.Execute(); err != nil {
		tst.Fatalf("Execute failed: %v", err)
	}
	chk.Scalar(tst, "out0", 1e-12, out0.Amount, 4.5)
	chk.Scalar(tst, "out1", 1e-12, out1.Amount, 2.7)
	chk.Scalar(tst, "out2", 1e-12, out2.Amount, 1.8)

	// fractions not summing to one is rejected at build time
	bad := &hydro.BuildInput{
		Name:     "bad",
		Forcings: map[inp.VariableKind]*hydro.ForcingSlot{inp.PET: source},
		Params: map[string]*inp.ParamRef{
			"fraction_0": newConstRef("fraction_0", 0.5),
			"fraction_1": newConstRef("fraction_1", 0.1),
		},
		Outputs: []*hydro.Flux{{}, {}},
	}
	if _, err := hydro.NewSplitter("multi_fluxes", bad); err == nil {
		tst.Fatalf("expected an error for fractions summing to 0.6, got nil")
	}
}
