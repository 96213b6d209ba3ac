// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/hydrobricks/hydrobricks-sub001/herrors"
	"github.com/hydrobricks/hydrobricks-sub001/hydro"
)

// StepUnit advances one hydro-unit by dt (in days) using method, assuming
// the caller (the model package's drive loop) has already refreshed every
// parameter and forcing slot for this step. It runs, in order:
//  1. splitters, in declaration order
//  2. instantaneous processes, in declaration order
//  3. the explicit ODE stage loop over every dynamic process, with
//     per-stage constraint enforcement
//  4. the final commit: content_change accumulation and WaterContainer.Finalize
//
// step is carried only to enrich a returned herrors.RuntimeFault.
func StepUnit(unit *hydro.HydroUnit, dt float64, method Method, step int) error {
	unit.ResetOutlet()

	for _, sp := range unit.Splitters {
		if err := sp.Execute(); err != nil {
			return herrors.NewRuntime(herrors.ConceptionIssue, step, unit.Id, "", sp.Name(), "splitter failed: %v", err)
		}
	}
	for _, b := range unit.Bricks {
		for _, p := range b.Processes {
			if p.Category() != hydro.CategoryInstantaneous {
				continue
			}
			if err := p.Execute(); err != nil {
				return herrors.NewRuntime(herrors.ConceptionIssue, step, unit.Id, b.Name, p.Name(), "instantaneous process failed: %v", err)
			}
		}
	}

	snapshots := map[*hydro.Brick]float64{}
	for _, b := range unit.Bricks {
		if b.Water != nil {
			snapshots[b] = b.Water.Snapshot()
			resetOverflowRate(b)
		}
	}

	netRate := map[*hydro.Brick]float64{}
	for stage := 0; stage < method.NStages; stage++ {
		if stage > 0 {
			for _, b := range unit.Bricks {
				if b.Water == nil {
					continue
				}
				provisional := snapshots[b] + dt*method.Alpha[stage]*netRate[b]
				b.Water.SetProvisional(provisional)
			}
		}

		for _, b := range unit.Bricks {
			for _, p := range b.Processes {
				if p.Category() != hydro.CategoryODE {
					continue
				}
				if b.Water != nil && b.Water.Overflow() == p {
					continue // rate set by ApplyConstraints, not scheduled directly
				}
				if err := p.ComputeRates(); err != nil {
					return herrors.NewRuntime(herrors.ConceptionIssue, step, unit.Id, b.Name, p.Name(), "rate evaluation failed: %v", err)
				}
			}
		}

		for _, b := range unit.Bricks {
			if b.Water == nil {
				continue
			}
			if err := b.ApplyConstraints(dt); err != nil {
				if ce, ok := err.(*hydro.ConstraintError); ok {
					return herrors.NewRuntime(ce.Kind, step, unit.Id, ce.Brick, "", "%s", ce.Msg)
				}
				return herrors.NewRuntime(herrors.ConceptionIssue, step, unit.Id, b.Name, "", "constraint enforcement failed: %v", err)
			}
		}

		for _, b := range unit.Bricks {
			if b.Water == nil {
				continue
			}
			for _, f := range b.Water.OutgoingDynamic() {
				f.RecordStage(stage)
			}
			for _, f := range b.Water.IncomingDynamic() {
				f.RecordStage(stage)
			}
			// A step's static/forcing amount (precipitation already split by
			// a splitter, direct outflow, ...) is folded in here as a rate so
			// that a later stage's provisional content -- and hence the
			// dynamic rate evaluated against it -- already reflects it, even
			// though the amount itself still lands in the committed content
			// only once, below, never scaled by the stage weights.
			netRate[b] = sumDynamicRates(b.Water.IncomingDynamic()) - sumDynamicRates(b.Water.OutgoingDynamic()) +
				b.Water.StaticNetAmount()/dt
		}
	}

	for _, b := range unit.Bricks {
		if b.Water == nil {
			continue
		}
		for _, f := range b.Water.OutgoingDynamic() {
			f.Integrated = f.Combine(method.Weights, dt)
		}
		for _, f := range b.Water.IncomingDynamic() {
			f.Integrated = f.Combine(method.Weights, dt)
		}
	}

	for _, b := range unit.Bricks {
		if b.Water == nil {
			continue
		}
		change := 0.0
		for _, f := range b.Water.IncomingDynamic() {
			change += f.WeightedAmount()
		}
		for _, f := range b.Water.OutgoingDynamic() {
			change -= f.Integrated
		}
		for _, f := range b.Water.IncomingStaticOrForcing() {
			change += f.WeightedAmount()
		}
		for _, f := range b.Water.OutgoingStaticOrForcing() {
			change -= f.Amount
		}
		b.Water.Restore(snapshots[b])
		b.Water.AccumulateChange(change)
		b.Water.Finalize()
	}

	routeOutlets(unit)
	return nil
}

func sumDynamicRates(fluxes []*hydro.Flux) float64 {
	s := 0.0
	for _, f := range fluxes {
		s += f.Rate
	}
	return s
}

func resetOverflowRate(b *hydro.Brick) {
	if b.Water == nil {
		return
	}
	if ov := b.Water.Overflow(); ov != nil {
		for _, f := range ov.Outputs() {
			f.Rate = 0
		}
	}
}

// routeOutlets sums every flux targeting "outlet" -- dynamic and
// static/forcing alike, across every brick and splitter in the unit --
// into the unit's per-step outlet accumulator.
func routeOutlets(unit *hydro.HydroUnit) {
	for _, b := range unit.Bricks {
		for _, p := range b.Processes {
			for _, f := range p.Outputs() {
				if f.TargetIsOutlet {
					unit.RouteToOutlet(f.WeightedAmount())
				}
			}
		}
	}
	for _, sp := range unit.Splitters {
		for _, f := range sp.Outputs() {
			if f.TargetIsOutlet {
				unit.RouteToOutlet(f.WeightedAmount())
			}
		}
	}
}
