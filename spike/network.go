// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"fmt"
	"sort"
	"strings"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/emer/emergent/params"
	"github.com/emer/emergent/timer"
	"github.com/emer/spikedec/izhi"
)

// Rand is the source of randomness for a network.  *rand.Rand satisfies it.
type Rand interface {
	Float32() float32
	Intn(n int) int
}

// BgParams are the parameters of the implicit background Poisson synapse
// that every neuron receives.
type BgParams struct {
	W    float32 `def:"0.3" desc:"weight of the background synapse"`
	Rate float32 `def:"0.25" desc:"firing rate in spikes / msec of the background synapse"`
}

func (bp *BgParams) Defaults() {
	bp.W = 0.3
	bp.Rate = 0.25
}

func (bp *BgParams) Update() {
}

// spike.Network is the trial graph: arenas of neurons and synapses
// addressed by handle, plus the deduplicated node and synapse sets that
// are stepped once Finalize has been called.
type Network struct {
	Nm       string                 `desc:"name of the network"`
	Bg       BgParams               `desc:"background synapse parameters, used by AddNeuron"`
	Neurons  []Neuron               `desc:"neuron arena, indexed by NeuronIndex"`
	Synapses []Synapse              `desc:"synapse arena, indexed by SynapseIndex"`
	Nodes    []NeuronIndex          `inactive:"+" desc:"deduplicated node set, sorted by display name: stepped every step"`
	SynSet   []SynapseIndex         `inactive:"+" desc:"deduplicated synapse set: advanced every step"`
	Time     Time                   `desc:"timing state"`
	Rnd      Rand                   `view:"-" desc:"source of all random draws"`
	Timing   bool                   `desc:"record function timers for each phase of TimeStep"`
	FunTimes map[string]*timer.Time `view:"-" desc:"timers for each phase of the step"`

	finalized bool
}

// NewNetwork returns a new empty network drawing from rnd
func NewNetwork(name string, rnd Rand) *Network {
	nt := &Network{Nm: name, Rnd: rnd}
	nt.Bg.Defaults()
	nt.Time.Defaults()
	nt.FunTimes = make(map[string]*timer.Time)
	return nt
}

// ValidNeuron returns true if ni is a neuron handle of this network
func (nt *Network) ValidNeuron(ni NeuronIndex) bool {
	return ni >= 0 && int(ni) < len(nt.Neurons)
}

// ValidSynapse returns true if si is a synapse handle of this network
func (nt *Network) ValidSynapse(si SynapseIndex) bool {
	return si >= 0 && int(si) < len(nt.Synapses)
}

// Neuron returns the neuron for handle ni, which must be valid
func (nt *Network) Neuron(ni NeuronIndex) *Neuron {
	return &nt.Neurons[ni]
}

// Synapse returns the synapse for handle si, which must be valid
func (nt *Network) Synapse(si SynapseIndex) *Synapse {
	return &nt.Synapses[si]
}

// NeuronByName returns the first neuron with the given display name
func (nt *Network) NeuronByName(nm string) (NeuronIndex, bool) {
	for i := range nt.Neurons {
		if nt.Neurons[i].Nm == nm {
			return NeuronIndex(i), true
		}
	}
	return -1, false
}

// SynapseByName returns the first synapse with the given display name
func (nt *Network) SynapseByName(nm string) (SynapseIndex, bool) {
	for i := range nt.Synapses {
		if nt.Synapses[i].Nm == nm {
			return SynapseIndex(i), true
		}
	}
	return -1, false
}

//////////////////////////////////////////////////////////////////////////////////////
//  Construction

// AddSynapse adds a new synapse of the given kind with default parameters
func (nt *Network) AddSynapse(name string, kind SynapseKinds) SynapseIndex {
	sy := Synapse{Nm: name, Kind: kind}
	sy.Defaults()
	nt.Synapses = append(nt.Synapses, sy)
	return SynapseIndex(len(nt.Synapses) - 1)
}

// NewContinuous adds a Continuous synapse delivering w from onset on
func (nt *Network) NewContinuous(name string, w float32, onset float32) SynapseIndex {
	si := nt.AddSynapse(name, Continuous)
	sy := nt.Synapse(si)
	sy.W = w
	sy.Win.Onset = onset
	return si
}

// NewPoisson adds a Poisson synapse firing at rate spikes / msec from onset
func (nt *Network) NewPoisson(name string, rate, w float32, onset float32) SynapseIndex {
	si := nt.AddSynapse(name, Poisson)
	sy := nt.Synapse(si)
	sy.Rate = rate
	sy.W = w
	sy.Win.Onset = onset
	return si
}

// NewNeuronal adds a Neuronal synapse relaying the spikes of pre
func (nt *Network) NewNeuronal(name string, w float32, pre NeuronIndex) (SynapseIndex, error) {
	if !nt.ValidNeuron(pre) {
		return -1, Specf("NewNeuronal", "synapse %q: invalid presynaptic neuron handle %d", name, pre)
	}
	si := nt.AddSynapse(name, Neuronal)
	sy := nt.Synapse(si)
	sy.W = w
	sy.Pre = pre
	return si, nil
}

// AddNeuron adds a new neuron of the given kind with default parameters,
// and gives it its own background Poisson synapse as first input.
func (nt *Network) AddNeuron(name string, kind NeuronKinds) NeuronIndex {
	nrn := Neuron{Nm: name, Kind: kind}
	nrn.Defaults()
	nt.Neurons = append(nt.Neurons, nrn)
	ni := NeuronIndex(len(nt.Neurons) - 1)
	bg := nt.NewPoisson(name+".bg", nt.Bg.Rate, nt.Bg.W, 0)
	nt.Synapse(bg).Bg = true
	nt.Neuron(ni).Inputs = []SynapseIndex{bg}
	return ni
}

// NewLIF adds a LIF neuron
func (nt *Network) NewLIF(name string) NeuronIndex {
	return nt.AddNeuron(name, LIF)
}

// NewIzhikevich adds an Izhikevich neuron using parameter set typ
func (nt *Network) NewIzhikevich(name string, typ izhi.Types) NeuronIndex {
	ni := nt.AddNeuron(name, Izhikevich)
	nt.Neuron(ni).Izhi.SetType(typ)
	return ni
}

// AddInputs appends synapses to the inputs of neuron ni, skipping any
// that are already present.
func (nt *Network) AddInputs(ni NeuronIndex, syns ...SynapseIndex) error {
	if !nt.ValidNeuron(ni) {
		return Specf("AddInputs", "invalid neuron handle %d", ni)
	}
	nrn := nt.Neuron(ni)
	for _, si := range syns {
		if !nt.ValidSynapse(si) {
			return Specf("AddInputs", "neuron %q: invalid synapse handle %d", nrn.Nm, si)
		}
		if nrn.HasInput(si) {
			continue
		}
		nrn.Inputs = append(nrn.Inputs, si)
	}
	return nil
}

// Project registers synapse si as an input of each target neuron.
// No targets is valid and does nothing.
func (nt *Network) Project(si SynapseIndex, targets ...NeuronIndex) error {
	if !nt.ValidSynapse(si) {
		return Specf("Project", "invalid synapse handle %d", si)
	}
	for _, ni := range targets {
		if err := nt.AddInputs(ni, si); err != nil {
			return err
		}
	}
	return nil
}

// TotalInput returns the sum of the output currents of the inputs of ni
func (nt *Network) TotalInput(ni NeuronIndex) (float32, error) {
	if !nt.ValidNeuron(ni) {
		return 0, &InputError{Syn: -1, Err: errInvalidHandle}
	}
	nrn := nt.Neuron(ni)
	sum := float32(0)
	for _, si := range nrn.Inputs {
		if !nt.ValidSynapse(si) {
			return 0, &InputError{Neuron: nrn.Nm, Syn: si, Err: errInvalidHandle}
		}
		sum += nt.Synapses[si].OutputCurrent()
	}
	return sum, nil
}

// Finalize computes the node set from nodes (deduplicated by handle and
// stably sorted by display name) and the synapse set as the union of
// syns and the inputs of every node, in first-seen order.
func (nt *Network) Finalize(nodes []NeuronIndex, syns []SynapseIndex) error {
	nt.Nodes = nt.Nodes[:0]
	seen := make(map[NeuronIndex]bool, len(nodes))
	for _, ni := range nodes {
		if !nt.ValidNeuron(ni) {
			return Specf("Finalize", "invalid neuron handle %d in nodes", ni)
		}
		if seen[ni] {
			continue
		}
		seen[ni] = true
		nt.Nodes = append(nt.Nodes, ni)
	}
	sort.SliceStable(nt.Nodes, func(i, j int) bool {
		return nt.Neurons[nt.Nodes[i]].Nm < nt.Neurons[nt.Nodes[j]].Nm
	})

	nt.SynSet = nt.SynSet[:0]
	sseen := make(map[SynapseIndex]bool, len(syns))
	addSyn := func(si SynapseIndex) error {
		if !nt.ValidSynapse(si) {
			return Specf("Finalize", "invalid synapse handle %d", si)
		}
		if sseen[si] {
			return nil
		}
		sseen[si] = true
		nt.SynSet = append(nt.SynSet, si)
		return nil
	}
	for _, si := range syns {
		if err := addSyn(si); err != nil {
			return err
		}
	}
	for _, ni := range nt.Nodes {
		for _, si := range nt.Neurons[ni].Inputs {
			if err := addSyn(si); err != nil {
				return err
			}
		}
	}
	for _, si := range nt.SynSet {
		sy := &nt.Synapses[si]
		if sy.Kind == Neuronal && !nt.ValidNeuron(sy.Pre) {
			return Specf("Finalize", "neuronal synapse %q has no valid presynaptic neuron", sy.Nm)
		}
	}
	nt.finalized = true
	return nil
}

// IsFinalized returns true once Finalize has succeeded
func (nt *Network) IsFinalized() bool {
	return nt.finalized
}

// InitState draws the initial state of every neuron in arena order
// and zeros all synapse state and the time counters.
func (nt *Network) InitState() {
	for i := range nt.Neurons {
		nt.Neurons[i].InitState(nt.Rnd)
	}
	for i := range nt.Synapses {
		nt.Synapses[i].InitState()
	}
	nt.Time.Reset()
}

// UpdateParams updates derived parameters of all neurons and synapses
func (nt *Network) UpdateParams() {
	for i := range nt.Neurons {
		nt.Neurons[i].UpdateParams()
	}
	for i := range nt.Synapses {
		nt.Synapses[i].UpdateParams()
	}
}

// ApplyParams applies given parameter style Sheet to neurons and synapses.
// Selectors match on TypeName (Neuron or Synapse), Class (kind and
// user classes) and Name.  Returns true if any parameter was set.
func (nt *Network) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	applied := false
	var rerr error
	for i := range nt.Neurons {
		nrn := &nt.Neurons[i]
		app, err := pars.Apply(nrn, setMsg)
		if app {
			nrn.UpdateParams()
			applied = true
		}
		if err != nil {
			rerr = err
		}
	}
	for i := range nt.Synapses {
		sy := &nt.Synapses[i]
		app, err := pars.Apply(sy, setMsg)
		if app {
			sy.UpdateParams()
			applied = true
		}
		if err != nil {
			rerr = err
		}
	}
	return applied, rerr
}

//////////////////////////////////////////////////////////////////////////////////////
//  Stepping

// TimeStep runs one step at time t: every synapse in the synapse set is
// advanced, then every node is stepped on its total input.  Neuronal
// synapses thus see the presynaptic spike of the previous step.
func (nt *Network) TimeStep(t, dt float32) error {
	nt.FunTimerStart("SynAdvance")
	for _, si := range nt.SynSet {
		sy := &nt.Synapses[si]
		var pre Spiker
		if sy.Kind == Neuronal {
			pre = &nt.Neurons[sy.Pre]
		}
		sy.Advance(t, dt, pre, nt.Rnd)
	}
	nt.FunTimerStop("SynAdvance")

	nt.FunTimerStart("NeurStep")
	defer nt.FunTimerStop("NeurStep")
	for _, ni := range nt.Nodes {
		inet, err := nt.TotalInput(ni)
		if err != nil {
			return err
		}
		nt.Neurons[ni].Step(inet, dt)
	}
	return nil
}

// FunTimerStart starts function timer for given function name, if Timing is on
func (nt *Network) FunTimerStart(fun string) {
	if !nt.Timing {
		return
	}
	ft, ok := nt.FunTimes[fun]
	if !ok {
		ft = &timer.Time{}
		nt.FunTimes[fun] = ft
	}
	ft.Start()
}

// FunTimerStop stops function timer, if Timing is on
func (nt *Network) FunTimerStop(fun string) {
	if !nt.Timing {
		return
	}
	if ft, ok := nt.FunTimes[fun]; ok {
		ft.Stop()
	}
}

// TimerReport returns the total seconds and percent of time spent in each
// timed phase of TimeStep.
func (nt *Network) TimerReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "TimerReport: %v\n", nt.Nm)
	fmt.Fprintf(&b, "\tFunction Name\tTotal Secs\tPct\n")
	fnms := make([]string, 0, len(nt.FunTimes))
	for k := range nt.FunTimes {
		fnms = append(fnms, k)
	}
	sort.Strings(fnms)
	tot := 0.0
	for _, fn := range fnms {
		tot += nt.FunTimes[fn].TotalSecs()
	}
	for _, fn := range fnms {
		secs := nt.FunTimes[fn].TotalSecs()
		pct := 0.0
		if tot > 0 {
			pct = 100 * secs / tot
		}
		fmt.Fprintf(&b, "\t%v \t%6.4g\t%6.4g\n", fn, secs, pct)
	}
	fmt.Fprintf(&b, "\tTotal   \t%6.4g\n", tot)
	return b.String()
}

// SizeReport returns a string reporting the size of each node and the
// synapse set, and the total memory footprint of the arenas.
func (nt *Network) SizeReport() string {
	var b strings.Builder
	nmem := len(nt.Neurons) * int(unsafe.Sizeof(Neuron{}))
	smem := len(nt.Synapses) * int(unsafe.Sizeof(Synapse{}))
	for _, ni := range nt.Nodes {
		nrn := &nt.Neurons[ni]
		imem := len(nrn.Inputs) * int(unsafe.Sizeof(SynapseIndex(0)))
		nmem += imem
		fmt.Fprintf(&b, "%14s:\t Kind: %v\t Inputs: %d\t InMem: %v\n", nrn.Nm, nrn.Kind, len(nrn.Inputs), (datasize.ByteSize)(imem).HumanReadable())
	}
	fmt.Fprintf(&b, "\n\n%14s:\t Neurons: %d (%d nodes)\t NeurMem: %v \t Syns: %d (%d stepped) \t SynMem: %v\n", nt.Nm, len(nt.Neurons), len(nt.Nodes), (datasize.ByteSize)(nmem).HumanReadable(), len(nt.Synapses), len(nt.SynSet), (datasize.ByteSize)(smem).HumanReadable())
	return b.String()
}
