// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/hydrobricks/hydrobricks-sub001/hydro"
	"github.com/hydrobricks/hydrobricks-sub001/inp"
	"github.com/hydrobricks/hydrobricks-sub001/solver"
)

// ModelHydro owns one sub-basin's live object graph and drives it through
// the declared simulation window, mirroring the relationship gofem's
// fem.Solver has to fem.Domain: the graph is assembled once, then stepped
// repeatedly.
type ModelHydro struct {
	Model    *inp.ModelSpec
	Basin    *inp.BasinSpec
	Params   *inp.ParamStore
	SubBasin *SubBasin
	Forcings *Forcings
	Method   solver.Method
	Log      *logrus.Logger
}

// NewModelHydro validates and assembles model+basin into a live object
// graph ready to run.
func NewModelHydro(modelSpec *inp.ModelSpec, basinSpec *inp.BasinSpec, forcings *Forcings) (*ModelHydro, error) {
	builder := hydro.NewBuilder(modelSpec, basinSpec)
	units, params, err := builder.Build()
	if err != nil {
		return nil, err
	}
	solverKind, err := inp.ParseSolverKind(modelSpec.Solver)
	if err != nil {
		return nil, err
	}
	method, err := solver.Resolve(solverKind)
	if err != nil {
		return nil, err
	}
	return &ModelHydro{
		Model: modelSpec, Basin: basinSpec, Params: params,
		SubBasin: NewSubBasin(units), Forcings: forcings, Method: method,
		Log: logrus.New(),
	}, nil
}

// Run drives the full simulation window, returning the populated Logger.
// It stops and returns the first error raised by any unit's step (a
// herrors.RuntimeFault).
func (m *ModelHydro) Run() (*Logger, error) {
	logger := NewLogger()
	dt := m.Model.Window.StepDays()
	nSteps := m.Model.Window.NSteps()
	mjd := m.Model.Window.Start

	for step := 0; step < nSteps; step++ {
		m.Params.Update(mjd)
		for _, u := range m.SubBasin.Units {
			for _, b := range u.Bricks {
				b.RefreshCapacity()
			}
			m.Forcings.apply(u, mjd)
			if err := solver.StepUnit(u, dt, m.Method, step); err != nil {
				m.Log.WithField("unit", spew.Sdump(u)).Debug("hydro-unit state at the failing step")
				return logger, err
			}
		}
		redistributeSnowLaterally(m.SubBasin, m.Model.SnowRedistribution, m.Log)
		logger.RecordStep(step, mjd, m.SubBasin)
		mjd += dt
	}
	return logger, nil
}
