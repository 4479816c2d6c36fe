// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"errors"
	"fmt"
)

// ErrAlreadySimulated is returned by Trial.Simulate on a trial that has
// already been run.  Each trial graph is simulated exactly once.
var ErrAlreadySimulated = errors.New("spike: trial already simulated")

// SpecError reports a malformed circuit: an unknown or invalid handle,
// a kind mismatch, or a failure of the circuit builder.  It is always
// returned before any time step has run.
type SpecError struct {
	Op  string
	Msg string
	Err error
}

func (e *SpecError) Error() string {
	s := "spike: circuit error"
	if e.Op != "" {
		s += " in " + e.Op
	}
	s += ": " + e.Msg
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *SpecError) Unwrap() error { return e.Err }

// Specf returns a new SpecError for op with a formatted message
func Specf(op, format string, args ...any) *SpecError {
	return &SpecError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// InputError reports a failure summing the input currents of a neuron.
type InputError struct {
	Neuron string
	Syn    SynapseIndex
	Err    error
}

func (e *InputError) Error() string {
	s := fmt.Sprintf("spike: input aggregation failed for neuron %q at synapse %d", e.Neuron, e.Syn)
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *InputError) Unwrap() error { return e.Err }

// errInvalidHandle is wrapped by InputError for out-of-range synapse handles
var errInvalidHandle = errors.New("invalid handle")
