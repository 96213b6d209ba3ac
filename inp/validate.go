// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"

	"github.com/hydrobricks/hydrobricks-sub001/herrors"
)

// fractionEps is the tolerance used when checking that land-cover fractions
// sum to one (spec §8: "|1 - Σ_lc fraction| < 1e-6").
const fractionEps = 1e-6

var knownBrickTypes = map[string]bool{
	"storage": true, "generic_land_cover": true, "ground": true, "generic": true,
	"glacier": true, "urban": true, "vegetation": true, "snowpack": true,
}

// ValidateModelSpec reports every violation found in m (not just the
// first), per spec §4.A/§7's "all violations reported" contract.
func ValidateModelSpec(m *ModelSpec) []error {
	var errs []error
	if _, err := ParseSolverKind(m.Solver); err != nil {
		errs = append(errs, herrors.NewBuild(herrors.ConfigError, "%v", err))
	}
	seen := map[string]bool{}
	for _, b := range m.Bricks {
		if seen[b.Name] {
			errs = append(errs, herrors.NewBuild(herrors.ConfigError, "duplicate brick name %q", b.Name))
		}
		seen[b.Name] = true
		if !knownBrickTypes[b.Type] {
			errs = append(errs, herrors.NewBuild(herrors.ConfigError, "unknown brick type %q for brick %q", b.Type, b.Name))
		}
		for _, p := range b.Processes {
			if len(p.Outputs) == 0 {
				errs = append(errs, herrors.NewBuild(herrors.ConfigError, "process %q of brick %q has no outputs", p.Name, b.Name))
			}
		}
	}
	return errs
}

// ValidateBasinSpec reports every violation found in b, cross-checked
// against m's land-cover brick definitions.
func ValidateBasinSpec(b *BasinSpec, m *ModelSpec) []error {
	var errs []error
	for _, u := range b.Units {
		sum := 0.0
		for _, lc := range u.LandCovers {
			if m.BrickByName(lc.Name) == nil {
				errs = append(errs, herrors.NewBuild(herrors.ConfigError,
					"unit %d: land-cover %q has no matching brick definition", u.Id, lc.Name))
			}
			sum += lc.Fraction
		}
		if len(u.LandCovers) > 0 && math.Abs(1-sum) > fractionEps {
			errs = append(errs, herrors.NewBuild(herrors.ShapeError,
				"unit %d: land-cover fractions sum to %.9f, expected 1", u.Id, sum))
		}
	}
	bySource := map[int]float64{}
	for _, c := range b.Connections {
		if b.UnitByID(c.From) == nil {
			errs = append(errs, herrors.NewBuild(herrors.ConfigError, "lateral connection references unknown source unit %d", c.From))
		}
		if b.UnitByID(c.To) == nil {
			errs = append(errs, herrors.NewBuild(herrors.ConfigError, "lateral connection references unknown target unit %d", c.To))
		}
		bySource[c.From] += c.Fraction
	}
	for from, sum := range bySource {
		if math.Abs(1-sum) > fractionEps {
			errs = append(errs, herrors.NewBuild(herrors.ShapeError,
				"lateral connections from unit %d sum to %.9f, expected 1", from, sum))
		}
	}
	return errs
}
