// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"fmt"

	"github.com/emer/spikedec/izhi"
	"github.com/emer/spikedec/lif"
)

// NeuronIndex is a handle to a Neuron in the Network arena
type NeuronIndex int

// NeuronModel is the per-step behavior shared by all neuron kinds.
// Spike is pure: repeated calls between steps agree.
type NeuronModel interface {
	Spiker
	InitState(rnd Rand)
	Step(inet, dt float32)
	Potential() float32
}

// spike.Neuron is one integrate-and-fire unit.  Only the parameters and
// state of its Kind are used.
type Neuron struct {
	Nm     string         `desc:"display name, used to order the node set"`
	Cls    string         `desc:"space-separated classes for params selectors"`
	Kind   NeuronKinds    `desc:"neuron model"`
	Record bool           `desc:"record the membrane potential of this neuron"`
	Inputs []SynapseIndex `desc:"input synapses, in order of addition, without duplicates"`
	LIF    lif.Params     `viewif:"Kind=LIF" desc:"LIF parameters"`
	Izhi   izhi.Params    `viewif:"Kind=Izhikevich" desc:"Izhikevich parameters"`

	LIFState  lif.State  `inactive:"+" desc:"LIF dynamic state"`
	IzhiState izhi.State `inactive:"+" desc:"Izhikevich dynamic state"`
	Inet      float32    `inactive:"+" desc:"total input current on the last step"`
}

var NeuronVars = []string{"Vm", "Spike", "Inet", "U", "Tr"}

var NeuronVarsMap map[string]int

func init() {
	NeuronVarsMap = make(map[string]int, len(NeuronVars))
	for i, v := range NeuronVars {
		NeuronVarsMap[v] = i
	}
}

// NeuronVarByName returns the index of the variable in NeuronVars, or error
func NeuronVarByName(varNm string) (int, error) {
	i, ok := NeuronVarsMap[varNm]
	if !ok {
		return 0, fmt.Errorf("Neuron VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in NeuronVars list).
// U is only defined for Izhikevich and Tr only for LIF; others return 0.
func (nrn *Neuron) VarByIndex(idx int) float32 {
	switch idx {
	case 0:
		return nrn.Potential()
	case 1:
		return b2f(nrn.Spike())
	case 2:
		return nrn.Inet
	case 3:
		if nrn.Kind == Izhikevich {
			return nrn.IzhiState.U
		}
	case 4:
		if nrn.Kind == LIF {
			return nrn.LIFState.Tr
		}
	}
	return 0
}

// VarByName returns variable by name, or error
func (nrn *Neuron) VarByName(varNm string) (float32, error) {
	i, err := NeuronVarByName(varNm)
	if err != nil {
		return 0, err
	}
	return nrn.VarByIndex(i), nil
}

func (nrn *Neuron) Defaults() {
	nrn.LIF.Defaults()
	nrn.Izhi.Defaults()
}

// UpdateParams updates derived parameters after any change
func (nrn *Neuron) UpdateParams() {
	nrn.LIF.Update()
	nrn.Izhi.Update()
}

// InitState draws a random initial state
func (nrn *Neuron) InitState(rnd Rand) {
	nrn.Inet = 0
	switch nrn.Kind {
	case LIF:
		nrn.LIF.Init(&nrn.LIFState, rnd)
	case Izhikevich:
		nrn.Izhi.Init(&nrn.IzhiState, rnd)
	}
}

// Step integrates one time step given the total input current
func (nrn *Neuron) Step(inet, dt float32) {
	nrn.Inet = inet
	switch nrn.Kind {
	case LIF:
		nrn.LIF.Step(&nrn.LIFState, inet, dt)
	case Izhikevich:
		nrn.Izhi.Step(&nrn.IzhiState, inet, dt)
	}
}

// Spike returns true if the neuron is spiking in its current state
func (nrn *Neuron) Spike() bool {
	switch nrn.Kind {
	case LIF:
		return nrn.LIF.Spike(&nrn.LIFState)
	case Izhikevich:
		return nrn.Izhi.Spike(&nrn.IzhiState)
	}
	return false
}

// Potential returns the displayed membrane potential
func (nrn *Neuron) Potential() float32 {
	switch nrn.Kind {
	case LIF:
		return nrn.LIFState.Vm
	case Izhikevich:
		return nrn.Izhi.Potential(&nrn.IzhiState)
	}
	return 0
}

// HasInput returns true if si is already one of the inputs
func (nrn *Neuron) HasInput(si SynapseIndex) bool {
	for _, in := range nrn.Inputs {
		if in == si {
			return true
		}
	}
	return false
}

// TypeName is the params selector type: always Neuron
func (nrn *Neuron) TypeName() string { return "Neuron" }

// Class is the kind plus any user classes, for params selectors
func (nrn *Neuron) Class() string { return nrn.Kind.String() + " " + nrn.Cls }

// Name is the display name, for params selectors
func (nrn *Neuron) Name() string { return nrn.Nm }
