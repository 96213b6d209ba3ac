// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solver implements the explicit ODE integration core: one state
// slot per water-bearing brick, Euler/Heun/RK4 stage evaluation, and
// per-stage constraint enforcement, mirroring gofem's fem package in
// spirit (it drives an element graph through a time-stepping scheme) but
// specialised to an explicit, uncoupled-Jacobian bucket model instead of
// an implicit FEM solve.
package solver

import (
	"github.com/cpmech/gosl/chk"

	"github.com/hydrobricks/hydrobricks-sub001/inp"
)

// Method is a resolved explicit one-step scheme: Alpha[i] locates stage i's
// evaluation point as a fraction of dt past the step's start, and Weights
// gives the quadrature weights combining every stage's recorded rate into
// the step's integrated amount. Because classical Euler/Heun/RK4 all have
// a strictly-bidiagonal Butcher tableau (each stage depends only on the
// immediately preceding one), Alpha is enough to reconstruct every stage's
// provisional state -- no general Butcher `a` matrix is needed.
type Method struct {
	Name    string
	NStages int
	Alpha   []float64
	Weights []float64
}

var (
	euler = Method{Name: "euler_explicit", NStages: 1, Alpha: []float64{0}, Weights: []float64{1}}
	heun  = Method{Name: "heun_explicit", NStages: 2, Alpha: []float64{0, 1}, Weights: []float64{0.5, 0.5}}
	rk4   = Method{
		Name: "runge_kutta", NStages: 4,
		Alpha:   []float64{0, 0.5, 0.5, 1},
		Weights: []float64{1.0 / 6, 2.0 / 6, 2.0 / 6, 1.0 / 6},
	}
)

// Resolve returns the Method implementing the given solver kind.
func Resolve(kind inp.SolverKind) (Method, error) {
	switch kind {
	case inp.EulerExplicit:
		return euler, nil
	case inp.HeunExplicit:
		return heun, nil
	case inp.RungeKutta4:
		return rk4, nil
	}
	return Method{}, chk.Err("solver: unresolvable solver kind %v", kind)
}
