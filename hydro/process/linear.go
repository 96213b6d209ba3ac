// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package process implements the library of rate laws and splitters
// pluggable into the hydrological object graph, registering themselves
// with the hydro package's process/splitter factories from init(),
// mirroring gofem's ele/diffusion registration idiom.
package process

import (
	"github.com/cpmech/gosl/chk"

	"github.com/hydrobricks/hydrobricks-sub001/hydro"
	"github.com/hydrobricks/hydrobricks-sub001/inp"
)

func init() {
	hydro.RegisterProcess("linear", newLinearOutflow)
}

// linearOutflow drains its brick's water container proportionally to its
// current content: rate = responseFactor * content.
type linearOutflow struct {
	brick          *hydro.Brick
	output         *hydro.Flux
	responseFactor *inp.ParamRef
}

func newLinearOutflow(in *hydro.BuildInput) (hydro.Process, error) {
	if len(in.Outputs) != 1 {
		return nil, chk.Err("linear outflow %q: expected exactly one output, got %d", in.Name, len(in.Outputs))
	}
	k, ok := in.Params["response_factor"]
	if !ok {
		return nil, chk.Err("linear outflow %q: missing parameter %q", in.Name, "response_factor")
	}
	return &linearOutflow{brick: in.Brick, output: in.Outputs[0], responseFactor: k}, nil
}

func (p *linearOutflow) Name() string            { return "linear" }
func (p *linearOutflow) Kind() string             { return "linear" }
func (p *linearOutflow) Category() hydro.Category { return hydro.CategoryODE }
func (p *linearOutflow) Brick() *hydro.Brick      { return p.brick }
func (p *linearOutflow) Outputs() []*hydro.Flux   { return []*hydro.Flux{p.output} }

func (p *linearOutflow) ComputeRates() error {
	content := p.brick.Water.ContentWithChanges()
	p.output.Rate = p.responseFactor.Current * content
	return nil
}

func (p *linearOutflow) Execute() error { return nil }
