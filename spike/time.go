// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import "github.com/chewxy/math32"

// spike.Time contains the timing state and parameters for running a trial
type Time struct {

	// current simulation time in msec: Step * Dt
	Time float32

	// number of steps completed since the last Reset
	Step int

	// duration of one step in msec
	Dt float32 `def:"1"`

	// time horizon in msec
	T float32
}

// NewTime returns a new Time struct with default parameters
func NewTime() *Time {
	tm := &Time{}
	tm.Defaults()
	return tm
}

// Defaults sets default values
func (tm *Time) Defaults() {
	tm.Dt = 1
}

// Reset resets the counters all back to zero
func (tm *Time) Reset() {
	tm.Time = 0
	tm.Step = 0
	if tm.Dt == 0 {
		tm.Defaults()
	}
}

// StepInc increments at the step level.  Time is recomputed from the
// step count so that it does not accumulate rounding error.
func (tm *Time) StepInc() {
	tm.Step++
	tm.Time = float32(tm.Step) * tm.Dt
}

// NSteps returns the number of whole steps of duration dt that fit in T.
// Values within 1e-4 of an integer count as that integer.
func NSteps(T, dt float32) int {
	if dt <= 0 {
		return 0
	}
	n := T / dt
	r := math32.Round(n)
	if math32.Abs(n-r) < 1e-4 {
		return int(r)
	}
	return int(math32.Floor(n))
}
