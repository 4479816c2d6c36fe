// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package chans provides the synaptic current channel primitives shared by
the synapse models: the exponentially-decaying AMPA current that integrates
presynaptic spikes, and the onset / offset time window that gates when
a synapse is active.
*/
package chans

// AMPA is a fast excitatory synaptic current that decays exponentially
// toward zero and jumps by 1 on each presynaptic spike.
type AMPA struct {
	Tau float32 `def:"1.8" min:"0" desc:"decay time constant in msec"`

	Dt float32 `view:"-" json:"-" xml:"-" desc:"1 / Tau rate constant"`
}

func (ap *AMPA) Update() {
	if ap.Tau > 0 {
		ap.Dt = 1 / ap.Tau
	} else {
		ap.Dt = 0
	}
}

func (ap *AMPA) Defaults() {
	ap.Tau = 1.8
	ap.Update()
}

// Step returns the current after one step of duration dt, given
// the current value and whether a spike arrived on this step.
// I += dt * (-I / Tau) + spike
func (ap *AMPA) Step(cur float32, spike bool, dt float32) float32 {
	cur += dt * (-cur * ap.Dt)
	if spike {
		cur += 1
	}
	return cur
}

// Window is the [Onset, Offset) time interval in msec during which a
// synapse is on.  Without an offset the window never closes.
type Window struct {
	Onset     float32 `desc:"time in msec at which the synapse turns on"`
	Offset    float32 `viewif:"HasOffset" desc:"time in msec at which the synapse turns off (exclusive)"`
	HasOffset bool    `desc:"if false, the window stays open forever after Onset"`
}

func (wn *Window) Defaults() {
	wn.Onset = 0
	wn.Offset = 0
	wn.HasOffset = false
}

// SetOffset sets the offset and marks it as present
func (wn *Window) SetOffset(off float32) {
	wn.Offset = off
	wn.HasOffset = true
}

// On returns true if t is inside the window: Onset <= t < Offset
func (wn *Window) On(t float32) bool {
	if t < wn.Onset {
		return false
	}
	if wn.HasOffset && t >= wn.Offset {
		return false
	}
	return true
}
