// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package herrors implements the error kinds raised by the hydrological
// core, both at build time (model/basin validation) and at run time
// (numerical faults during the drive loop).
package herrors

import "github.com/cpmech/gosl/chk"

// Kind enumerates the categories of failure the core can raise.
type Kind int

const (
	ConfigError Kind = iota
	ShapeError
	DateRangeError
	MissingParameter
	ConceptionIssue
	NotFound
	OutOfRange
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case ConfigError:
		return "ConfigError"
	case ShapeError:
		return "ShapeError"
	case DateRangeError:
		return "DateRangeError"
	case MissingParameter:
		return "MissingParameter"
	case ConceptionIssue:
		return "ConceptionIssue"
	case NotFound:
		return "NotFound"
	case OutOfRange:
		return "OutOfRange"
	}
	return "Unknown"
}

// BuildError is raised while assembling ModelSpec/BasinSpec into the object
// graph. Builders collect every violation instead of failing on the first.
type BuildError struct {
	Kind Kind
	Msg  string
}

func (e *BuildError) Error() string { return e.Kind.String() + ": " + e.Msg }

// NewBuild creates a BuildError with gofem-style formatted messages.
func NewBuild(kind Kind, format string, args ...interface{}) *BuildError {
	return &BuildError{Kind: kind, Msg: chk.Err(format, args...).Error()}
}

// RuntimeFault is raised once the simulation loop is running: a numeric
// fault that stops the loop and carries enough context to locate it.
type RuntimeFault struct {
	Kind    Kind
	Step    int
	UnitId  int
	Brick   string
	Process string
	Msg     string
}

func (e *RuntimeFault) Error() string {
	return chk.Err("%s @ step=%d unit=%d brick=%q process=%q: %s",
		e.Kind.String(), e.Step, e.UnitId, e.Brick, e.Process, e.Msg).Error()
}

// NewRuntime creates a RuntimeFault.
func NewRuntime(kind Kind, step, unitId int, brick, process, format string, args ...interface{}) *RuntimeFault {
	return &RuntimeFault{
		Kind: kind, Step: step, UnitId: unitId, Brick: brick, Process: process,
		Msg: chk.Err(format, args...).Error(),
	}
}
