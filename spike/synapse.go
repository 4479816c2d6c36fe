// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"fmt"

	"github.com/emer/spikedec/chans"
)

// SynapseIndex is a handle to a Synapse in the Network arena
type SynapseIndex int

// Spiker is anything with a spike predicate, e.g., the presynaptic neuron
// of a Neuronal synapse.
type Spiker interface {
	Spike() bool
}

// SynapseModel is the per-step behavior shared by all synapse kinds.
// Advance updates the state for time t; OutputCurrent has no side effects.
type SynapseModel interface {
	Advance(t, dt float32, pre Spiker, rnd Rand)
	OutputCurrent() float32
}

// spike.Synapse is one directed current pathway into the neurons it is
// projected to.  It is shared by handle, never copied.
type Synapse struct {
	Nm     string       `desc:"display name"`
	Cls    string       `desc:"space-separated classes for params selectors"`
	Kind   SynapseKinds `desc:"synapse model"`
	W      float32      `desc:"weight: sign determines excitation vs. inhibition"`
	Rate   float32      `viewif:"Kind=Poisson" desc:"Poisson firing rate in spikes / msec"`
	Win    chans.Window `viewif:"Kind!=Neuronal" desc:"time window during which the synapse is on"`
	AMPA   chans.AMPA   `viewif:"Kind!=Continuous" desc:"current decay for spike-driven kinds"`
	Pre    NeuronIndex  `viewif:"Kind=Neuronal" desc:"presynaptic neuron, -1 if none"`
	Record bool         `desc:"record the output current of this synapse"`
	Bg     bool         `inactive:"+" desc:"implicit background synapse of a neuron"`

	Iout  float32 `inactive:"+" desc:"decaying current state"`
	Spike float32 `inactive:"+" desc:"1 if a spike arrived on the last step, else 0"`
	On    float32 `inactive:"+" desc:"1 if the window was open on the last step, else 0"`
}

var SynapseVars = []string{"I", "Iout", "Spike", "On", "W"}

var SynapseVarsMap map[string]int

func init() {
	SynapseVarsMap = make(map[string]int, len(SynapseVars))
	for i, v := range SynapseVars {
		SynapseVarsMap[v] = i
	}
}

// SynapseVarByName returns the index of the variable in SynapseVars, or error
func SynapseVarByName(varNm string) (int, error) {
	i, ok := SynapseVarsMap[varNm]
	if !ok {
		return 0, fmt.Errorf("Synapse VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in SynapseVars list)
func (sy *Synapse) VarByIndex(idx int) float32 {
	switch idx {
	case 0:
		return sy.OutputCurrent()
	case 1:
		return sy.Iout
	case 2:
		return sy.Spike
	case 3:
		return sy.On
	case 4:
		return sy.W
	}
	return 0
}

// VarByName returns variable by name, or error
func (sy *Synapse) VarByName(varNm string) (float32, error) {
	i, err := SynapseVarByName(varNm)
	if err != nil {
		return 0, err
	}
	return sy.VarByIndex(i), nil
}

// Defaults sets the kind-independent defaults
func (sy *Synapse) Defaults() {
	sy.W = 0.1
	sy.Pre = -1
	sy.Win.Defaults()
	sy.AMPA.Defaults()
}

func (sy *Synapse) UpdateParams() {
	sy.AMPA.Update()
}

// InitState zeros the dynamic state
func (sy *Synapse) InitState() {
	sy.Iout = 0
	sy.Spike = 0
	sy.On = 0
}

// Advance updates the synapse state for the step at time t.  pre is the
// presynaptic neuron for Neuronal synapses and is read before it steps,
// so its influence arrives one step later.
func (sy *Synapse) Advance(t, dt float32, pre Spiker, rnd Rand) {
	switch sy.Kind {
	case Continuous:
		sy.On = b2f(sy.Win.On(t))
	case Poisson:
		on := sy.Win.On(t)
		sy.On = b2f(on)
		rate := float32(0)
		if on {
			rate = sy.Rate
		}
		spk := rnd.Float32() < rate*dt
		sy.Spike = b2f(spk)
		sy.Iout = sy.AMPA.Step(sy.Iout, spk, dt)
	case Neuronal:
		sy.On = 1
		spk := pre != nil && pre.Spike()
		sy.Spike = b2f(spk)
		sy.Iout = sy.AMPA.Step(sy.Iout, spk, dt)
	}
}

// OutputCurrent returns the current delivered to every target neuron.
// A Poisson synapse outputs 0 outside its window even if Iout is still
// decaying, while a Neuronal synapse is never gated.
func (sy *Synapse) OutputCurrent() float32 {
	switch sy.Kind {
	case Continuous:
		return sy.W * sy.On
	case Poisson:
		return sy.Iout * sy.W * sy.On
	case Neuronal:
		return sy.Iout * sy.W
	}
	return 0
}

// TypeName is the params selector type
func (sy *Synapse) TypeName() string { return "Synapse" }

// Class is the kind plus any user classes, for params selectors
func (sy *Synapse) Class() string { return sy.Kind.String() + " " + sy.Cls }

// Name is the display name, for params selectors
func (sy *Synapse) Name() string { return sy.Nm }

func b2f(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
