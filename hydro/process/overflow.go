// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package process

import (
	"github.com/cpmech/gosl/chk"

	"github.com/hydrobricks/hydrobricks-sub001/hydro"
)

func init() {
	hydro.RegisterProcess("overflow", newOverflow)
}

// overflow is bound as its brick's capacity handler (hydro.Builder links
// it via WaterContainer.LinkOverflow). Its output's Rate is written
// directly by Brick.ApplyConstraints; ComputeRates is never called by the
// solver's per-stage loop for a process bound this way.
type overflow struct {
	brick  *hydro.Brick
	output *hydro.Flux
}

func newOverflow(in *hydro.BuildInput) (hydro.Process, error) {
	if len(in.Outputs) != 1 {
		return nil, chk.Err("overflow %q: expected exactly one output, got %d", in.Name, len(in.Outputs))
	}
	return &overflow{brick: in.Brick, output: in.Outputs[0]}, nil
}

func (p *overflow) Name() string            { return "overflow" }
func (p *overflow) Kind() string             { return "overflow" }
func (p *overflow) Category() hydro.Category { return hydro.CategoryODE }
func (p *overflow) Brick() *hydro.Brick      { return p.brick }
func (p *overflow) Outputs() []*hydro.Flux   { return []*hydro.Flux{p.output} }

// ComputeRates is a no-op: the solver excludes overflow processes from the
// regular rate-evaluation pass, since Brick.ApplyConstraints sets their
// output's Rate directly.
func (p *overflow) ComputeRates() error { return nil }

func (p *overflow) Execute() error { return nil }
