// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"github.com/cpmech/gosl/chk"

	"github.com/hydrobricks/hydrobricks-sub001/inp"
)

// Category classifies a process's participation in the solver (spec §3):
// instantaneous processes do not contribute state variables, ODE processes
// do.
type Category int

const (
	CategoryODE Category = iota
	CategoryInstantaneous
)

// Process is a rate law attached to one brick. Implementations live in the
// nested package hydro/process and register themselves with RegisterProcess
// from an init(), mirroring gofem's ele.SetAllocator/ele/diffusion pattern.
type Process interface {
	Name() string
	Kind() string
	Category() Category
	Brick() *Brick
	Outputs() []*Flux

	// ComputeRates evaluates the rate law against the process's brick and
	// forcing inputs, writing into each output Flux's Rate. Called by the
	// solver once per stage for CategoryODE processes only; never called
	// for a process bound as its container's overflow handle (spec §4.D:
	// "only invoked by the capacity handler, never scheduled directly").
	ComputeRates() error

	// Execute evaluates the process once per step, writing into each
	// output Flux's Amount. Called in declaration order during the
	// splitter/instantaneous pass (spec §4.C step 3) for
	// CategoryInstantaneous processes only.
	Execute() error
}

// ForcingSlot is the per-unit, per-variable-kind live forcing value the
// forcing sampler rewrites every step (component B/E).
type ForcingSlot struct {
	Kind    inp.VariableKind
	Current float64
}

// BuildInput carries everything a process allocator needs to construct a
// live Process from a parsed inp.ProcessDef: its owning brick, resolved
// parameter/forcing references, already-built output fluxes (in declared
// order), and a free-form Extra map for process-kind-specific wiring (e.g.
// the aspect class for melt:degree_day_aspect, or the step length in days
// for transform:snow_ice_constant).
type BuildInput struct {
	Name     string
	Brick    *Brick
	Unit     *HydroUnit
	Params   map[string]*inp.ParamRef
	Forcings map[inp.VariableKind]*ForcingSlot
	Outputs  []*Flux
	Extra    map[string]interface{}
}

// AllocatorFunc constructs a live Process from a BuildInput.
type AllocatorFunc func(in *BuildInput) (Process, error)

var processAllocators = make(map[string]AllocatorFunc)

// RegisterProcess adds a new process-kind allocator to the factory. Called
// from each process implementation's init(), mirroring
// ele.SetAllocator.
func RegisterProcess(kind string, fn AllocatorFunc) {
	if _, ok := processAllocators[kind]; ok {
		chk.Panic("cannot register process allocator for %q because it exists already", kind)
	}
	processAllocators[kind] = fn
}

// NewProcess looks up kind in the factory and constructs a Process.
func NewProcess(kind string, in *BuildInput) (Process, error) {
	fn, ok := processAllocators[kind]
	if !ok {
		return nil, chk.Err("cannot find process allocator for kind %q (process %q)", kind, in.Name)
	}
	return fn(in)
}

// SplitterAllocatorFunc constructs a live Splitter from a BuildInput.
type SplitterAllocatorFunc func(in *BuildInput) (Splitter, error)

var splitterAllocators = make(map[string]SplitterAllocatorFunc)

// RegisterSplitter adds a new splitter-kind allocator to the factory.
func RegisterSplitter(kind string, fn SplitterAllocatorFunc) {
	if _, ok := splitterAllocators[kind]; ok {
		chk.Panic("cannot register splitter allocator for %q because it exists already", kind)
	}
	splitterAllocators[kind] = fn
}

// NewSplitter looks up kind in the factory and constructs a Splitter.
func NewSplitter(kind string, in *BuildInput) (Splitter, error) {
	fn, ok := splitterAllocators[kind]
	if !ok {
		return nil, chk.Err("cannot find splitter allocator for kind %q (splitter %q)", kind, in.Name)
	}
	return fn(in)
}
