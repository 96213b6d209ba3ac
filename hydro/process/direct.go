// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package process

import (
	"github.com/cpmech/gosl/chk"

	"github.com/hydrobricks/hydrobricks-sub001/hydro"
)

func init() {
	hydro.RegisterProcess("direct", newDirectOutflow)
}

// directOutflow empties its brick's entire committed content every step in
// one instantaneous transfer, rather than via the per-stage ODE loop.
type directOutflow struct {
	brick  *hydro.Brick
	output *hydro.Flux
}

func newDirectOutflow(in *hydro.BuildInput) (hydro.Process, error) {
	if len(in.Outputs) != 1 {
		return nil, chk.Err("direct outflow %q: expected exactly one output, got %d", in.Name, len(in.Outputs))
	}
	return &directOutflow{brick: in.Brick, output: in.Outputs[0]}, nil
}

func (p *directOutflow) Name() string            { return "direct" }
func (p *directOutflow) Kind() string             { return "direct" }
func (p *directOutflow) Category() hydro.Category { return hydro.CategoryInstantaneous }
func (p *directOutflow) Brick() *hydro.Brick      { return p.brick }
func (p *directOutflow) Outputs() []*hydro.Flux   { return []*hydro.Flux{p.output} }

func (p *directOutflow) ComputeRates() error { return nil }

func (p *directOutflow) Execute() error {
	p.output.Amount = p.brick.Water.Content()
	return nil
}
