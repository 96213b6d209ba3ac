// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/hydrobricks/hydrobricks-sub001/hydro"
	_ "github.com/hydrobricks/hydrobricks-sub001/hydro/process"
	"github.com/hydrobricks/hydrobricks-sub001/inp"
)

// buildLinearStorage assembles a single hydro-unit whose only brick is an
// uncapped storage reservoir drained by a response-factor-0.3 linear
// outflow to the outlet, fed by precipitation routed in as rain through a
// snow_rain splitter pinned (via a temperature forcing held far above the
// transition range) to route 100% of precipitation as rain. Grounded on
// original_source/core/tests/src/SolverTest.cpp's SolverLinearStorage
// fixture.
func buildLinearStorage(solverName string) (*hydro.HydroUnit, *inp.ParamStore, Method, error) {
	model := &inp.ModelSpec{
		Solver: solverName,
		Window: inp.TimeWindow{Start: 0, End: 9, Step: 1, Unit: inp.Day},
		Bricks: []*inp.BrickDef{
			{
				Name: "storage",
				Type: "storage",
				Processes: []*inp.ProcessDef{
					{
						Name: "outflow",
						Kind: "linear",
						Parameters: []*inp.ParamDef{
							{Name: "response_factor", Value: &inp.Constant{Value: 0.3}},
						},
						Outputs: []*inp.OutputDef{{Target: "outlet"}},
					},
				},
			},
		},
		Splitters: []*inp.SplitterDef{
			{
				Name:     "rain-split",
				Kind:     "snow_rain",
				Forcings: []string{"precipitation", "temperature"},
				Parameters: []*inp.ParamDef{
					{Name: "transition_start", Value: &inp.Constant{Value: -100}},
					{Name: "transition_end", Value: &inp.Constant{Value: -99}},
				},
				Outputs: []*inp.OutputDef{
					{Target: "storage"}, // rain share, always 100% here
					{Target: "storage"}, // snow share, always zero here
				},
			},
		},
	}
	basin := &inp.BasinSpec{
		Units: []*inp.HydroUnitDef{{Id: 1, Area: 1}},
	}

	units, params, err := hydro.NewBuilder(model, basin).Build()
	if err != nil {
		return nil, nil, Method{}, err
	}
	kind, err := inp.ParseSolverKind(solverName)
	if err != nil {
		return nil, nil, Method{}, err
	}
	method, err := Resolve(kind)
	if err != nil {
		return nil, nil, Method{}, err
	}
	return units[0], params, method, nil
}

// runLinearStorage drives the unit through 10 one-day steps with the
// precipitation series {0,10,10,10,0,0,0,0,0,0}, returning the outlet
// discharge recorded at every step.
func runLinearStorage(solverName string) ([]float64, error) {
	unit, params, method, err := buildLinearStorage(solverName)
	if err != nil {
		return nil, err
	}
	precip := []float64{0, 10, 10, 10, 0, 0, 0, 0, 0, 0}
	precipSlot := unit.Forcings[inp.Precipitation]
	tempSlot := unit.Forcings[inp.Temperature]

	discharge := make([]float64, len(precip))
	for day, amount := range precip {
		params.Update(float64(day))
		for _, b := range unit.Bricks {
			b.RefreshCapacity()
		}
		precipSlot.Current = amount
		tempSlot.Current = 100 // always above the transition range: all rain
		if err := StepUnit(unit, 1, method, day); err != nil {
			return nil, err
		}
		discharge[day] = unit.OutletAmount
	}
	return discharge, nil
}

func Test_solver01(tst *testing.T) {

	chk.PrintTitle("solver01: linear storage, Euler-explicit")

	discharge, err := runLinearStorage("euler_explicit")
	if err != nil {
		tst.Fatalf("build/run failed: %v", err)
	}
	expected := []float64{0.0, 0.0, 3.0, 5.1, 6.57, 4.599, 3.2193}
	for i, want := range expected {
		chk.Scalar(tst, "discharge", 1e-6, discharge[i], want)
	}
}

func Test_solver02(tst *testing.T) {

	chk.PrintTitle("solver02: linear storage, Heun-explicit")

	discharge, err := runLinearStorage("heun_explicit")
	if err != nil {
		tst.Fatalf("build/run failed: %v", err)
	}
	expected := []float64{0.0, 1.5, 3.6675, 5.282288, 4.985304, 3.714052, 2.766968}
	for i, want := range expected {
		chk.Scalar(tst, "discharge", 1e-6, discharge[i], want)
	}
}
