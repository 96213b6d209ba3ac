// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"errors"
	"strings"

	"github.com/hydrobricks/hydrobricks-sub001/herrors"
	"github.com/hydrobricks/hydrobricks-sub001/inp"
)

// Builder turns a declarative inp.ModelSpec + inp.BasinSpec pair into a live
// object graph: one *HydroUnit per basin unit, each carrying its bricks,
// processes, splitters, and forcing slots, plus the shared parameter store
// the drive loop rewrites once per step. Mirrors gofem's "input data ->
// finite-element mesh" assembly step (inp/*.go feeding ele.New), except the
// target here is a hydrology object graph instead of a mesh.
type Builder struct {
	model *inp.ModelSpec
	basin *inp.BasinSpec
	params *inp.ParamStore

	units    []*HydroUnit
	unitByID map[int]*HydroUnit
}

// NewBuilder returns a Builder for the given declarative specs.
func NewBuilder(model *inp.ModelSpec, basin *inp.BasinSpec) *Builder {
	return &Builder{model: model, basin: basin, params: inp.NewParamStore(model.Window.Start), unitByID: map[int]*HydroUnit{}}
}

// Build assembles the object graph. It runs the declarative validators
// first (collecting every violation), then wires the graph, failing fast on
// the first structural inconsistency encountered while wiring (unknown
// target, duplicate brick name, missing required parameter, a brick left
// with no incoming flux, or a dependency cycle among instantaneous
// processes).
func (b *Builder) Build() ([]*HydroUnit, *inp.ParamStore, error) {
	var errs []error
	errs = append(errs, inp.ValidateModelSpec(b.model)...)
	errs = append(errs, inp.ValidateBasinSpec(b.basin, b.model)...)
	if len(errs) > 0 {
		return nil, nil, errors.Join(errs...)
	}

	for _, ud := range b.basin.Units {
		u := NewHydroUnit(ud.Id, ud.Area)
		u.Elevation = ud.Elevation
		u.Slope = ud.Slope
		u.Aspect = inp.ParseAspectClass(ud.Aspect)
		b.units = append(b.units, u)
		b.unitByID[u.Id] = u
	}

	for _, ud := range b.basin.Units {
		u := b.unitByID[ud.Id]
		if err := b.buildUnitBricks(u, ud); err != nil {
			return nil, nil, err
		}
		if err := b.buildUnitSplitters(u); err != nil {
			return nil, nil, err
		}
		if err := b.wireGating(u); err != nil {
			return nil, nil, err
		}
		if err := checkIncomingFlux(u); err != nil {
			return nil, nil, err
		}
		if err := checkInstantaneousCycles(u); err != nil {
			return nil, nil, err
		}
	}

	if err := b.wireLateralConnections(); err != nil {
		return nil, nil, err
	}

	return b.units, b.params, nil
}

func (b *Builder) buildUnitBricks(u *HydroUnit, ud *inp.HydroUnitDef) error {
	fractionOf := map[string]float64{}
	for _, lc := range ud.LandCovers {
		fractionOf[lc.Name] = lc.Fraction
	}

	for _, bd := range b.model.Bricks {
		if _, exists := u.BrickByName[bd.Name]; exists {
			return herrors.NewBuild(herrors.ConfigError, "unit %d: duplicate brick name %q", u.Id, bd.Name)
		}
		kind := parseBrickKind(bd.Type)
		fraction, partOfLandCover := fractionOf[bd.Name]
		if !isLandCoverKind(kind) {
			fraction = 1.0
		} else if !partOfLandCover {
			// land-cover brick not referenced by this unit: skip it entirely.
			continue
		}

		brick := NewBrick(bd.Name, kind)
		brick.Fraction = fraction
		brick.UnlimitedSupply = bd.UnlimitedSupply
		brick.NoMeltWhenSnowCover = bd.NoMeltWhenSnowCover
		brick.LoggedQuantities = bd.LoggedQuantities

		brick.Water = NewWaterContainer()
		if kind == KindGlacier {
			brick.Compartments["ice"] = NewWaterContainer()
			brick.Water = brick.Compartments["ice"]
			brick.Water.SetInfiniteStorage(bd.UnlimitedSupply)
		}
		if kind == KindSnowpack {
			brick.Compartments["snow"] = NewWaterContainer()
			brick.Water = brick.Compartments["snow"]
		}

		for _, pd := range bd.Parameters {
			if pd.Name == "capacity" {
				brick.CapacityRef = b.params.Add(pd)
			}
		}

		u.AddBrick(brick)
	}

	for _, bd := range b.model.Bricks {
		brick, ok := u.BrickByName[bd.Name]
		if !ok {
			continue
		}
		if err := b.buildBrickForcings(u, brick, bd); err != nil {
			return err
		}
		for _, pdef := range bd.Processes {
			proc, err := b.buildProcess(u, brick, pdef)
			if err != nil {
				return err
			}
			brick.Processes = append(brick.Processes, proc)
			if proc.Kind() == "overflow" {
				brick.Water.LinkOverflow(proc)
			}
		}
	}
	return nil
}

func (b *Builder) buildBrickForcings(u *HydroUnit, brick *Brick, bd *inp.BrickDef) error {
	for _, name := range bd.Forcings {
		kind, err := parseVariableKind(name)
		if err != nil {
			return herrors.NewBuild(herrors.ConfigError, "brick %q: %v", brick.Name, err)
		}
		u.Forcing(kind)
	}
	return nil
}

func (b *Builder) buildProcess(u *HydroUnit, brick *Brick, pdef *inp.ProcessDef) (Process, error) {
	params := map[string]*inp.ParamRef{}
	for _, pd := range pdef.Parameters {
		params[pd.Name] = b.params.Add(pd)
	}
	forcings := map[inp.VariableKind]*ForcingSlot{}
	for _, name := range pdef.Forcings {
		kind, err := parseVariableKind(name)
		if err != nil {
			return nil, herrors.NewBuild(herrors.ConfigError, "process %q: %v", pdef.Name, err)
		}
		forcings[kind] = u.Forcing(kind)
	}

	outputs := make([]*Flux, 0, len(pdef.Outputs))
	for _, od := range pdef.Outputs {
		f, err := b.buildOutputFlux(u, brick, od)
		if err != nil {
			return nil, herrors.NewBuild(herrors.ConfigError, "process %q: %v", pdef.Name, err)
		}
		outputs = append(outputs, f)
	}

	in := &BuildInput{
		Name: pdef.Name, Brick: brick, Unit: u,
		Params: params, Forcings: forcings, Outputs: outputs,
		Extra: map[string]interface{}{"aspect": u.Aspect, "same_brick": pdef.OutputToSameBrick, "step_days": b.model.Window.StepDays()},
	}
	proc, err := NewProcess(pdef.Kind, in)
	if err != nil {
		return nil, herrors.NewBuild(herrors.MissingParameter, "process %q: %v", pdef.Name, err)
	}

	for _, f := range outputs {
		f.Source = proc
		if proc.Category() == CategoryInstantaneous {
			f.Static = true // Execute writes Amount, which only static fluxes carry
		}
		attachOutgoing(brick.Water, f)
	}
	return proc, nil
}

func (b *Builder) buildOutputFlux(u *HydroUnit, source *Brick, od *inp.OutputDef) (*Flux, error) {
	f := &Flux{Type: FluxWater, Static: od.AsStatic, Weight: 1, Fraction: 1}
	if source != nil {
		f.Weight = source.Fraction
	}
	if od.Target == "outlet" {
		f.TargetIsOutlet = true
		return f, nil
	}
	name, compartment := splitTarget(od.Target)
	target, ok := u.BrickByName[name]
	if !ok {
		return nil, herrors.NewBuild(herrors.ConfigError, "unit %d: output target %q does not name a known brick", u.Id, od.Target)
	}
	container := target.Compartment(compartment)
	if container == nil {
		return nil, herrors.NewBuild(herrors.ConfigError, "unit %d: output target %q does not name a known compartment", u.Id, od.Target)
	}
	f.TargetContainer = container
	return f, nil
}

func attachOutgoing(source *WaterContainer, f *Flux) {
	if f.Static || f.Forcing {
		source.attachOutgoingStatic(f)
	} else {
		source.attachOutgoingDynamic(f)
	}
	if f.TargetContainer != nil {
		if f.Static || f.Forcing {
			f.TargetContainer.attachIncomingStatic(f)
		} else {
			f.TargetContainer.attachIncomingDynamic(f)
		}
	}
}

func (b *Builder) buildUnitSplitters(u *HydroUnit) error {
	for _, sd := range b.model.Splitters {
		params := map[string]*inp.ParamRef{}
		for _, pd := range sd.Parameters {
			params[pd.Name] = b.params.Add(pd)
		}
		forcings := map[inp.VariableKind]*ForcingSlot{}
		for _, name := range sd.Forcings {
			kind, err := parseVariableKind(name)
			if err != nil {
				return herrors.NewBuild(herrors.ConfigError, "splitter %q: %v", sd.Name, err)
			}
			forcings[kind] = u.Forcing(kind)
		}
		outputs := make([]*Flux, 0, len(sd.Outputs))
		for _, od := range sd.Outputs {
			f, err := b.buildOutputFlux(u, nil, od)
			if err != nil {
				return herrors.NewBuild(herrors.ConfigError, "splitter %q: %v", sd.Name, err)
			}
			f.Static = true
			outputs = append(outputs, f)
			if f.TargetContainer != nil {
				f.TargetContainer.attachIncomingStatic(f)
			}
		}
		in := &BuildInput{
			Name: sd.Name, Unit: u, Params: params, Forcings: forcings, Outputs: outputs,
			Extra: map[string]interface{}{"step_days": b.model.Window.StepDays()},
		}
		sp, err := NewSplitter(sd.Kind, in)
		if err != nil {
			return herrors.NewBuild(herrors.ConfigError, "splitter %q: %v", sd.Name, err)
		}
		u.Splitters = append(u.Splitters, sp)
	}
	return nil
}

// wireGating binds a glacier's SnowGate and a snowpack's LinkedGlacier
// back-references from the declared linked_brick name (spec §3: glacier
// "no_melt_when_snow_cover" exception and the snow_to_ice transform's
// target glacier).
func (b *Builder) wireGating(u *HydroUnit) error {
	for _, bd := range b.model.Bricks {
		if bd.LinkedBrick == "" {
			continue
		}
		brick, ok := u.BrickByName[bd.Name]
		if !ok {
			continue
		}
		linked, ok := u.BrickByName[bd.LinkedBrick]
		if !ok {
			return herrors.NewBuild(herrors.ConfigError, "brick %q: linked_brick %q not found in unit %d", bd.Name, bd.LinkedBrick, u.Id)
		}
		switch brick.Kind {
		case KindGlacier:
			brick.SnowGate = linked
		case KindSnowpack:
			brick.LinkedGlacier = linked
		}
	}
	return nil
}

func (b *Builder) wireLateralConnections() error {
	for _, cd := range b.basin.Connections {
		from, ok := b.unitByID[cd.From]
		if !ok {
			return herrors.NewBuild(herrors.ConfigError, "lateral connection: unknown source unit %d", cd.From)
		}
		to, ok := b.unitByID[cd.To]
		if !ok {
			return herrors.NewBuild(herrors.ConfigError, "lateral connection: unknown target unit %d", cd.To)
		}
		from.LateralNeighbors = append(from.LateralNeighbors, LateralLink{To: to, Fraction: cd.Fraction})
	}
	return nil
}

// checkIncomingFlux rejects a finite, non-infinite water container left
// with no incoming dynamic or static flux: such a brick could never gain
// mass and almost certainly reflects a wiring mistake.
func checkIncomingFlux(u *HydroUnit) error {
	for _, brick := range u.Bricks {
		c := brick.Water
		if c == nil || c.IsInfinite() {
			continue
		}
		if len(c.incomingDynamic)+len(c.incomingStaticOrForcing) == 0 {
			return herrors.NewBuild(herrors.ConceptionIssue, "unit %d: brick %q has no incoming flux", u.Id, brick.Name)
		}
	}
	return nil
}

// checkInstantaneousCycles rejects a cyclic dependency among
// CategoryInstantaneous processes within one unit: since these all execute
// once, in declaration order, within a single step (spec §4.C step 3), a
// cycle between their static-output edges can never be resolved.
func checkInstantaneousCycles(u *HydroUnit) error {
	edges := map[string][]string{}
	for _, brick := range u.Bricks {
		for _, p := range brick.Processes {
			if p.Category() != CategoryInstantaneous {
				continue
			}
			for _, f := range p.Outputs() {
				if f.TargetIsOutlet || f.TargetContainer == nil {
					continue
				}
				target := containerOwner(u, f.TargetContainer)
				if target != "" {
					edges[brick.Name] = append(edges[brick.Name], target)
				}
			}
		}
	}
	const (
		white = 0
		gray  = 1
		black = 2
	)
	state := map[string]int{}
	var visit func(name string) error
	visit = func(name string) error {
		state[name] = gray
		for _, next := range edges[name] {
			switch state[next] {
			case gray:
				return herrors.NewBuild(herrors.ConceptionIssue, "unit %d: dependency cycle among instantaneous processes involving brick %q", u.Id, next)
			case white:
				if err := visit(next); err != nil {
					return err
				}
			}
		}
		state[name] = black
		return nil
	}
	for name := range edges {
		if state[name] == white {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

func containerOwner(u *HydroUnit, c *WaterContainer) string {
	for _, brick := range u.Bricks {
		if brick.Water == c {
			return brick.Name
		}
		for _, comp := range brick.Compartments {
			if comp == c {
				return brick.Name
			}
		}
	}
	return ""
}

func parseBrickKind(t string) BrickKind {
	switch t {
	case "storage":
		return KindStorage
	case "generic_land_cover", "generic", "ground":
		return KindLandCoverGeneric
	case "glacier":
		return KindGlacier
	case "snowpack":
		return KindSnowpack
	case "vegetation":
		return KindVegetation
	case "urban":
		return KindUrban
	}
	return KindStorage
}

func isLandCoverKind(k BrickKind) bool {
	return k == KindLandCoverGeneric || k == KindGlacier || k == KindSnowpack || k == KindVegetation || k == KindUrban
}

func parseVariableKind(name string) (inp.VariableKind, error) {
	switch strings.ToLower(name) {
	case "precipitation":
		return inp.Precipitation, nil
	case "temperature":
		return inp.Temperature, nil
	case "pet":
		return inp.PET, nil
	case "radiation":
		return inp.Radiation, nil
	}
	return inp.Precipitation, herrors.NewBuild(herrors.ConfigError, "unrecognized forcing variable %q", name)
}

func splitTarget(target string) (brickName, compartment string) {
	idx := strings.IndexByte(target, ':')
	if idx < 0 {
		return target, ""
	}
	return target[:idx], target[idx+1:]
}
