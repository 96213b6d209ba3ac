// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

// Epsilon is the precision tolerance used throughout the object graph for
// non-negativity and capacity checks (spec §3/§8).
const Epsilon = 1e-8

// WaterContainer is a mutable scalar reservoir: content (mm water
// equivalent), a pending content_change accumulator used during a solver
// sub-step, and an optional capacity/overflow pair. Grounded on
// original_source/src/bricks/WaterContainer.h.
type WaterContainer struct {
	content         float64
	contentChange   float64
	capacity        *float64
	infiniteStorage bool
	overflow        Process

	// fluxes attached at build time (component B); the solver and
	// Brick.ApplyConstraints read these lists every stage.
	outgoingDynamic         []*Flux
	incomingDynamic         []*Flux
	incomingStaticOrForcing []*Flux
	outgoingStaticOrForcing []*Flux
}

// NewWaterContainer returns an empty, uncapped container.
func NewWaterContainer() *WaterContainer {
	return &WaterContainer{}
}

// Content returns the committed water content.
func (c *WaterContainer) Content() float64 { return c.content }

// ContentWithChanges returns content plus the pending content_change.
func (c *WaterContainer) ContentWithChanges() float64 { return c.content + c.contentChange }

// SetContent sets the committed content directly (build-time initial
// condition, and the lateral snow redistribution stage after each step).
func (c *WaterContainer) SetContent(v float64) { c.content = v }

// SetCapacity declares a finite capacity (mm).
func (c *WaterContainer) SetCapacity(v float64) {
	cp := v
	c.capacity = &cp
}

// Capacity returns the capacity and whether one is set.
func (c *WaterContainer) Capacity() (float64, bool) {
	if c.capacity == nil {
		return 0, false
	}
	return *c.capacity, true
}

// SetInfiniteStorage marks the container as bypassing capacity/
// non-negativity bounds (glacier ice with unlimited_supply, spec §4.C).
func (c *WaterContainer) SetInfiniteStorage(v bool) { c.infiniteStorage = v }

// IsInfinite reports whether the container bypasses constraint enforcement.
func (c *WaterContainer) IsInfinite() bool { return c.infiniteStorage }

// LinkOverflow binds the process invoked by the capacity handler when this
// container would otherwise exceed its capacity (component B6).
func (c *WaterContainer) LinkOverflow(p Process) { c.overflow = p }

// Overflow returns the bound overflow process, or nil.
func (c *WaterContainer) Overflow() Process { return c.overflow }

// attachOutgoingDynamic/attachIncomingDynamic/attachIncomingStatic/
// attachOutgoingStatic register a flux with this container; called once by
// the Builder while wiring the object graph.
func (c *WaterContainer) attachOutgoingDynamic(f *Flux) { c.outgoingDynamic = append(c.outgoingDynamic, f) }
func (c *WaterContainer) attachIncomingDynamic(f *Flux) { c.incomingDynamic = append(c.incomingDynamic, f) }
func (c *WaterContainer) attachIncomingStatic(f *Flux) {
	c.incomingStaticOrForcing = append(c.incomingStaticOrForcing, f)
}
func (c *WaterContainer) attachOutgoingStatic(f *Flux) {
	c.outgoingStaticOrForcing = append(c.outgoingStaticOrForcing, f)
}

// OutgoingDynamic returns the fluxes draining this container that the
// solver integrates stage by stage.
func (c *WaterContainer) OutgoingDynamic() []*Flux { return c.outgoingDynamic }

// IncomingDynamic returns the fluxes feeding this container that the
// solver integrates stage by stage.
func (c *WaterContainer) IncomingDynamic() []*Flux { return c.incomingDynamic }

// IncomingStaticOrForcing returns the fluxes feeding this container that
// are evaluated once per step (splitters, instantaneous processes, direct
// forcing), not by the per-stage solver loop.
func (c *WaterContainer) IncomingStaticOrForcing() []*Flux { return c.incomingStaticOrForcing }

// OutgoingStaticOrForcing returns the fluxes draining this container that
// are evaluated once per step, not by the per-stage solver loop.
func (c *WaterContainer) OutgoingStaticOrForcing() []*Flux { return c.outgoingStaticOrForcing }

// StaticNetAmount returns the net (incoming minus outgoing) whole-step
// static/forcing amount, evaluated once per step. The solver folds this,
// divided by dt, into every stage's provisional-state extrapolation
// alongside the dynamic net rate -- a splitter/instantaneous input affects
// a dynamic process's rate within the very step it arrives, even though
// its own contribution to the committed content is applied once, in full,
// not run through the stage-combination weights.
func (c *WaterContainer) StaticNetAmount() float64 {
	net := 0.0
	for _, f := range c.incomingStaticOrForcing {
		net += f.Amount
	}
	for _, f := range c.outgoingStaticOrForcing {
		net -= f.Amount
	}
	return net
}

// Snapshot returns the committed content, to be restored after provisional
// per-stage evaluation (Design Notes: snapshot()/restore() pair).
func (c *WaterContainer) Snapshot() float64 { return c.content }

// SetProvisional temporarily overwrites content for one solver stage
// evaluation (Heun/RK4 mid-stage state).
func (c *WaterContainer) SetProvisional(v float64) { c.content = v }

// Restore reverts content to a previously taken Snapshot.
func (c *WaterContainer) Restore(snap float64) { c.content = snap }

// AccumulateChange adds delta (an already dt-integrated amount) to the
// pending content_change.
func (c *WaterContainer) AccumulateChange(delta float64) { c.contentChange += delta }

// Finalize commits the pending content_change (step 6: "content +=
// content_change; content_change = 0"), clamping tiny negative overshoot
// caused by floating-point error back to zero.
func (c *WaterContainer) Finalize() {
	c.content += c.contentChange
	if c.content < 0 && c.content > -Epsilon {
		c.content = 0
	}
	c.contentChange = 0
}
