// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package lif provides the Leaky-Integrate-and-Fire spiking point neuron.

The membrane potential Vm relaxes toward the resting potential with time
constant TauM while integrating the (scaled) net input current.  When Vm
crosses the threshold, a fixed bump is added so the spike is visible in the
recorded trace, and the neuron enters an absolute refractory period of TauR
msec during which Vm is clamped at rest.
*/
package lif

// Rand is the source of randomness used to initialize the neuron state.
// *rand.Rand satisfies it.
type Rand interface {
	Float32() float32
	Intn(n int) int
}

// Params are the LIF membrane parameters
type Params struct {
	TauM      float32 `def:"10" min:"1" desc:"membrane time constant in msec"`
	TauR      float32 `def:"4" min:"0" desc:"absolute refractory period in msec"`
	VRest     float32 `def:"-65" desc:"resting membrane potential in mV"`
	Thr       float32 `def:"-55" desc:"spiking threshold in mV"`
	Peak      float32 `def:"30" desc:"nominal spike peak in mV: Vm is bumped by Peak - VRest on the spiking step"`
	Scale     float32 `def:"1.5" desc:"multiplier on the net input current"`
	InitTrMax int     `def:"8" min:"0" desc:"initial refractory counter is drawn uniformly from the integers 0..InitTrMax"`

	Dt        float32 `view:"-" json:"-" xml:"-" desc:"1 / TauM rate constant"`
	SpikeBump float32 `view:"-" json:"-" xml:"-" desc:"amount added to Vm on the spiking step: Peak - VRest"`
}

func (lp *Params) Update() {
	lp.Dt = 1 / lp.TauM
	lp.SpikeBump = lp.Peak - lp.VRest
}

func (lp *Params) Defaults() {
	lp.TauM = 10
	lp.TauR = 4
	lp.VRest = -65
	lp.Thr = -55
	lp.Peak = 30
	lp.Scale = 1.5
	lp.InitTrMax = 8
	lp.Update()
}

// State is the dynamic state of one LIF neuron
type State struct {
	Vm float32 `desc:"membrane potential in mV"`
	Tr float32 `desc:"remaining refractory time in msec"`
}

// Init sets a random initial state: Tr is a uniform integer in 0..InitTrMax
// and Vm is uniform in [VRest, Thr).
func (lp *Params) Init(st *State, rnd Rand) {
	st.Tr = float32(rnd.Intn(lp.InitTrMax + 1))
	st.Vm = lp.VRest + rnd.Float32()*(lp.Thr-lp.VRest)
}

// Step integrates one time step of duration dt given the net input current.
func (lp *Params) Step(st *State, inet, dt float32) {
	if st.Tr > 0 {
		st.Vm = lp.VRest
		st.Tr -= dt
		return
	}
	st.Vm += dt * (lp.Scale*inet - (st.Vm-lp.VRest)*lp.Dt)
	if st.Vm > lp.Thr {
		st.Vm += lp.SpikeBump
		st.Tr = lp.TauR
	}
}

// Spike returns true if the neuron is spiking in its current state
func (lp *Params) Spike(st *State) bool {
	return st.Vm > lp.Thr
}
