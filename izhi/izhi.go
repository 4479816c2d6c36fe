// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package izhi provides the Izhikevich (2003) two-variable spiking neuron:

	V' = 0.04 V^2 + 5 V + 140 - U + I
	U' = a (b V - U)

with the after-spike reset V = c, U += d once V reaches the 30 mV peak.
Six standard parameter sets (Types A..F) select different firing patterns.
*/
package izhi

import "github.com/goki/ki/kit"

// Rand is the source of randomness used to initialize the neuron state.
// *rand.Rand satisfies it.
type Rand interface {
	Float32() float32
}

// Types are the standard Izhikevich parameter sets
type Types int

//go:generate stringer -type=Types

var KiT_Types = kit.Enums.AddEnum(TypesN, kit.NotBitFlag, nil)

func (ev Types) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Types) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The parameter sets
const (
	// A is tonic spiking
	A Types = iota

	// B is phasic spiking
	B

	// C is tonic bursting
	C

	// D is phasic bursting
	D

	// E is mixed mode
	E

	// F is spike frequency adaptation
	F

	TypesN
)

// Peak is the membrane potential in mV at which a spike is registered and
// the value shown as the potential on the spiking step.
const Peak = 30

// Params are the Izhikevich model parameters
type Params struct {
	Type Types   `desc:"parameter set that the values below were loaded from: setting it loads the new set on Update, replacing any values set with it"`
	A    float32 `desc:"time scale of the recovery variable U"`
	B    float32 `desc:"sensitivity of U to subthreshold fluctuations of V"`
	C    float32 `desc:"after-spike reset value of V in mV"`
	D    float32 `desc:"after-spike increment of U"`
	S    float32 `desc:"multiplier on the net input current"`

	loaded Types
}

// sets holds the (a, b, c, d, s) values of each Types
var sets = [TypesN][5]float32{
	A: {0.02, 0.2, -65, 6, 14},
	B: {0.02, 0.25, -65, 6, 0.5},
	C: {0.02, 0.25, -50, 2, 15},
	D: {0.02, 0.25, -55, 0.05, 0.6},
	E: {0.02, 0.2, -55, 4, 10},
	F: {0.01, 0.2, -65, 8, 30},
}

func (ip *Params) Defaults() {
	ip.SetType(A)
}

// Update loads the values of Type if it was changed since the last load
func (ip *Params) Update() {
	if ip.Type != ip.loaded {
		ip.SetType(ip.Type)
	}
}

// SetType loads the values of the given parameter set
func (ip *Params) SetType(typ Types) {
	if typ < 0 || typ >= TypesN {
		typ = A
	}
	vals := sets[typ]
	ip.Type = typ
	ip.loaded = typ
	ip.A, ip.B, ip.C, ip.D, ip.S = vals[0], vals[1], vals[2], vals[3], vals[4]
}

// State is the dynamic state of one Izhikevich neuron
type State struct {
	V       float32 `desc:"membrane potential in mV"`
	U       float32 `desc:"recovery variable"`
	Spiking bool    `desc:"true on the step where V reached Peak"`
}

// Init sets a random initial state: V uniform between C and 0, U = B * V
func (ip *Params) Init(st *State, rnd Rand) {
	st.V = rnd.Float32() * ip.C
	st.U = ip.B * st.V
	st.Spiking = false
}

// Step integrates one time step of duration dt given the net input current.
// U is updated from the new V.
func (ip *Params) Step(st *State, inet, dt float32) {
	i := inet * ip.S
	v := st.V
	v += dt * (0.04*v*v + 5*v + 140 - st.U + i)
	u := st.U + dt*ip.A*(ip.B*v-st.U)
	if v >= Peak {
		st.Spiking = true
		st.V = ip.C
		st.U = u + ip.D
		return
	}
	st.Spiking = false
	st.V = v
	st.U = u
}

// Spike returns true if the neuron spiked on the last step
func (ip *Params) Spike(st *State) bool {
	return st.Spiking
}

// Potential returns the displayed membrane potential, which is Peak on
// the spiking step (V itself has already been reset to C).
func (ip *Params) Potential(st *State) float32 {
	if st.Spiking {
		return Peak
	}
	return st.V
}
