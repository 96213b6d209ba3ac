// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

// Splitter is a stateless operator attached to a hydro-unit: it reads
// forcing slots and writes output fluxes' Amount once per step, in
// declaration order, before the solver's stage loop (spec §4.C step 3).
type Splitter interface {
	Name() string
	Kind() string
	Outputs() []*Flux
	Execute() error
}
