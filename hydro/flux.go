// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

// FluxType identifies the kind of material a Flux carries.
type FluxType int

const (
	FluxWater FluxType = iota
	FluxSnow
	FluxIce
)

// Flux is a directed edge carrying an instantaneous change-rate (mm per
// unit time, for dynamic fluxes) or a pre-integrated step amount (mm, for
// static/forcing fluxes) from a source to a target.
type Flux struct {
	Type     FluxType
	Fraction float64 // declared weight in [0,1]
	Weight   float64 // resolved area-weight product (component B5)
	Static   bool    // evaluated once per step, not by the solver (spec §4.B.4)
	Forcing  bool    // direct forcing injection

	Source Process // nil for a pure forcing flux

	TargetContainer *WaterContainer
	TargetIsOutlet  bool

	// dynamic bookkeeping: Rate is overwritten by ComputeRates()/
	// ApplyConstraints() at every solver stage; stageRates records it for
	// the final Euler/Heun/RK4 combination.
	Rate       float64
	stageRates [4]float64

	// static/forcing bookkeeping: Amount is computed once per step (the
	// splitter/instantaneous-process pass, or the forcing sampler).
	Amount float64

	// Integrated is the amount actually transferred this step, after
	// combination (dynamic) or directly (static/forcing); logged and used
	// to route mass into downstream unit outlets.
	Integrated float64
}

// RecordStage stores the current Rate as stage i's value; called by the
// solver once per stage, after constraints have been applied.
func (f *Flux) RecordStage(i int) { f.stageRates[i] = f.Rate }

// Combine applies the method's quadrature weights to the recorded stage
// rates and multiplies by dt, producing the step's integrated amount.
func (f *Flux) Combine(weights []float64, dt float64) float64 {
	sum := 0.0
	for i, w := range weights {
		sum += w * f.stageRates[i]
	}
	return sum * dt
}

// WeightedAmount returns the area-weighted mass applied to targets and the
// outlet: Integrated (dynamic) or Amount (static/forcing) scaled by Weight
// and by Fraction. The Builder sets Fraction to 1.0 for every flux and
// does not act on "as_fraction"; sources are debited the unweighted amount.
func (f *Flux) WeightedAmount() float64 {
	if f.Static || f.Forcing {
		return f.Amount * f.Weight * f.Fraction
	}
	return f.Integrated * f.Weight * f.Fraction
}
