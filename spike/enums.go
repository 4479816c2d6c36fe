// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import "github.com/goki/ki/kit"

// NeuronKinds are the neuron models
type NeuronKinds int

//go:generate stringer -type=NeuronKinds

var KiT_NeuronKinds = kit.Enums.AddEnum(NeuronKindsN, kit.NotBitFlag, nil)

func (ev NeuronKinds) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *NeuronKinds) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The neuron models
const (
	// LIF is the Leaky-Integrate-and-Fire neuron
	LIF NeuronKinds = iota

	// Izhikevich is the two-variable Izhikevich neuron
	Izhikevich

	NeuronKindsN
)

// SynapseKinds are the synapse models
type SynapseKinds int

//go:generate stringer -type=SynapseKinds

var KiT_SynapseKinds = kit.Enums.AddEnum(SynapseKindsN, kit.NotBitFlag, nil)

func (ev SynapseKinds) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *SynapseKinds) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The synapse models
const (
	// Continuous delivers a constant current W while inside its time window
	Continuous SynapseKinds = iota

	// Poisson fires random spikes at Rate spikes / msec while inside its
	// time window, integrated by an AMPA current
	Poisson

	// Neuronal relays the spikes of a presynaptic neuron through an AMPA current
	Neuronal

	SynapseKindsN
)

// TrialStates are the life-cycle states of a Trial
type TrialStates int

//go:generate stringer -type=TrialStates

var KiT_TrialStates = kit.Enums.AddEnum(TrialStatesN, kit.NotBitFlag, nil)

func (ev TrialStates) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *TrialStates) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The trial states
const (
	// Built means the graph is constructed and no step has run
	Built TrialStates = iota

	// Running means the trial is stepping
	Running

	// Decided means an output reached the decision threshold
	Decided

	// TimedOut means the time horizon elapsed without a decision
	TimedOut

	TrialStatesN
)
