// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hydro

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// Test_brick01 checks that ApplyConstraints scales outgoing rates down
// proportionally when they would otherwise drive content negative, per
// original_source/src/bricks/WaterContainer.cpp's ApplyConstraints.
func Test_brick01(tst *testing.T) {

	chk.PrintTitle("brick01: non-negativity enforcement")

	b := NewBrick("storage", KindStorage)
	b.Water = NewWaterContainer()
	b.Water.SetContent(10.0)

	out1 := &Flux{Rate: 6.0}
	out2 := &Flux{Rate: 6.0}
	b.Water.attachOutgoingDynamic(out1)
	b.Water.attachOutgoingDynamic(out2)

	// unconstrained: 12.0 mm/day would drain the 10.0 mm store in one day.
	if err := b.ApplyConstraints(1.0); err != nil {
		tst.Fatalf("ApplyConstraints failed: %v", err)
	}
	// both rates should be scaled down equally (they started equal) so that
	// content + change*dt lands exactly at zero: combined rate == content/dt.
	chk.Scalar(tst, "out1+out2", 1e-9, out1.Rate+out2.Rate, 10.0)
	chk.Scalar(tst, "out1", 1e-9, out1.Rate, 5.0)
	chk.Scalar(tst, "out2", 1e-9, out2.Rate, 5.0)
}

// Test_brick02 checks the capacity handler routes the excess into a bound
// overflow process instead of clamping the incoming rates.
func Test_brick02(tst *testing.T) {

	chk.PrintTitle("brick02: capacity enforcement with overflow")

	b := NewBrick("storage", KindStorage)
	b.Water = NewWaterContainer()
	b.Water.SetCapacity(10.0)
	b.Water.SetContent(8.0)

	overflowOut := &Flux{}
	overflow := &fakeOverflowProcess{outputs: []*Flux{overflowOut}}
	b.Water.LinkOverflow(overflow)

	in := &Flux{Rate: 5.0} // would push content to 13.0 over one day
	b.Water.attachIncomingDynamic(in)

	if err := b.ApplyConstraints(1.0); err != nil {
		tst.Fatalf("ApplyConstraints failed: %v", err)
	}
	chk.Scalar(tst, "overflow rate", 1e-9, overflowOut.Rate, 3.0)
	// the incoming rate itself is left untouched; the overflow absorbs the excess.
	chk.Scalar(tst, "incoming rate unchanged", 1e-9, in.Rate, 5.0)
}

// Test_brick03 checks the capacity handler raises a ConceptionIssue when
// forcing alone (no dynamic process involved) would exceed an uncapped-
// overflow brick's capacity.
func Test_brick03(tst *testing.T) {

	chk.PrintTitle("brick03: forcing-only capacity conflict with no overflow")

	b := NewBrick("storage", KindStorage)
	b.Water = NewWaterContainer()
	b.Water.SetCapacity(10.0)
	b.Water.SetContent(2.0)

	forcing := &Flux{Static: true, Amount: 20.0}
	b.Water.attachIncomingStatic(forcing)

	err := b.ApplyConstraints(1.0)
	if err == nil {
		tst.Fatalf("expected a ConstraintError, got nil")
	}
	if _, ok := err.(*ConstraintError); !ok {
		tst.Fatalf("expected *ConstraintError, got %T", err)
	}
}

type fakeOverflowProcess struct {
	outputs []*Flux
}

func (p *fakeOverflowProcess) Name() string          { return "overflow" }
func (p *fakeOverflowProcess) Kind() string           { return "overflow" }
func (p *fakeOverflowProcess) Category() Category     { return CategoryODE }
func (p *fakeOverflowProcess) Brick() *Brick          { return nil }
func (p *fakeOverflowProcess) Outputs() []*Flux       { return p.outputs }
func (p *fakeOverflowProcess) ComputeRates() error    { return nil }
func (p *fakeOverflowProcess) Execute() error         { return nil }
