// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package process

import (
	"fmt"

	"github.com/cpmech/gosl/chk"

	"github.com/hydrobricks/hydrobricks-sub001/hydro"
	"github.com/hydrobricks/hydrobricks-sub001/inp"
)

func init() {
	hydro.RegisterSplitter("multi_fluxes", newMultiFluxesSplitter)
}

// multiFluxesSplitter fans one forcing variable out across N outputs by
// per-output fraction parameters named "fraction_0", "fraction_1", ...;
// the declared fractions must sum to one (checked once at build time from
// the resolved, time-invariant fractions -- time-varying fraction
// parameters are supported but only the build-time value is validated).
type multiFluxesSplitter struct {
	name      string
	source    *hydro.ForcingSlot
	outputs   []*hydro.Flux
	fractions []*inp.ParamRef
}

func newMultiFluxesSplitter(in *hydro.BuildInput) (hydro.Splitter, error) {
	if len(in.Outputs) < 2 {
		return nil, chk.Err("multi_fluxes splitter %q: expected at least two outputs, got %d", in.Name, len(in.Outputs))
	}
	var source *hydro.ForcingSlot
	for _, f := range in.Forcings {
		source = f
		break
	}
	if source == nil {
		return nil, chk.Err("multi_fluxes splitter %q: missing source forcing", in.Name)
	}
	fractions := make([]*inp.ParamRef, len(in.Outputs))
	sum := 0.0
	for i := range in.Outputs {
		key := fmt.Sprintf("fraction_%d", i)
		ref, ok := in.Params[key]
		if !ok {
			return nil, chk.Err("multi_fluxes splitter %q: missing parameter %q", in.Name, key)
		}
		fractions[i] = ref
		sum += ref.Current
	}
	if diff := sum - 1; diff > 1e-6 || diff < -1e-6 {
		return nil, chk.Err("multi_fluxes splitter %q: fractions sum to %.9f, expected 1", in.Name, sum)
	}
	return &multiFluxesSplitter{name: in.Name, source: source, outputs: in.Outputs, fractions: fractions}, nil
}

func (s *multiFluxesSplitter) Name() string          { return s.name }
func (s *multiFluxesSplitter) Kind() string           { return "multi_fluxes" }
func (s *multiFluxesSplitter) Outputs() []*hydro.Flux { return s.outputs }

func (s *multiFluxesSplitter) Execute() error {
	total := s.source.Current
	for i, out := range s.outputs {
		out.Amount = total * s.fractions[i].Current
	}
	return nil
}
