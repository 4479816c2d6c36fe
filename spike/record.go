// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/goki/ki/ints"
)

// Recorder holds the [entity x step] recording buffers for the neurons
// and synapses that have their Record flag set.
type Recorder struct {
	Neurons  []NeuronIndex   `desc:"recorded neurons, in node set order"`
	Synapses []SynapseIndex  `desc:"recorded synapses, in synapse set order"`
	Vm       etensor.Float64 `desc:"membrane potentials: [neuron, step]"`
	I        etensor.Float64 `desc:"output currents: [synapse, step]"`
	Steps    int             `desc:"capacity in steps"`
	N        int             `desc:"number of steps recorded"`
}

// Init selects the recorded entities of the finalized network and
// allocates buffers for the given number of steps.
func (rc *Recorder) Init(net *Network, steps int) {
	rc.Neurons = rc.Neurons[:0]
	rc.Synapses = rc.Synapses[:0]
	for _, ni := range net.Nodes {
		if net.Neurons[ni].Record {
			rc.Neurons = append(rc.Neurons, ni)
		}
	}
	for _, si := range net.SynSet {
		if net.Synapses[si].Record {
			rc.Synapses = append(rc.Synapses, si)
		}
	}
	rc.Steps = steps
	rc.N = 0
	rc.Vm.SetShape([]int{len(rc.Neurons), steps}, nil, []string{"Neuron", "Step"})
	rc.I.SetShape([]int{len(rc.Synapses), steps}, nil, []string{"Synapse", "Step"})
	rc.Vm.SetZeros()
	rc.I.SetZeros()
}

// Record stores the current potentials and currents at column step
func (rc *Recorder) Record(net *Network, step int) {
	if step < 0 || step >= rc.Steps {
		return
	}
	for i, ni := range rc.Neurons {
		rc.Vm.Set([]int{i, step}, float64(net.Neurons[ni].Potential()))
	}
	for i, si := range rc.Synapses {
		rc.I.Set([]int{i, step}, float64(net.Synapses[si].OutputCurrent()))
	}
	rc.N = ints.MaxInt(rc.N, step+1)
}

// NeuronTrace returns the recorded potentials of the i-th recorded neuron
func (rc *Recorder) NeuronTrace(i int) []float64 {
	return trace(&rc.Vm, i, rc.N)
}

// SynapseTrace returns the recorded currents of the i-th recorded synapse
func (rc *Recorder) SynapseTrace(i int) []float64 {
	return trace(&rc.I, i, rc.N)
}

func trace(tsr *etensor.Float64, row, n int) []float64 {
	if tsr.Len() == 0 {
		return nil
	}
	steps := tsr.Dim(1)
	return tsr.Values[row*steps : row*steps+n]
}

// Table returns the recorded steps as a table with a Time column and one
// column per recorded neuron (Vm) and synapse (I), named after the entity.
func (rc *Recorder) Table(net *Network, dt float32) *etable.Table {
	sch := etable.Schema{{"Time", etensor.FLOAT64, nil, nil}}
	for _, ni := range rc.Neurons {
		sch = append(sch, etable.Column{net.Neurons[ni].Nm + ":Vm", etensor.FLOAT64, nil, nil})
	}
	for _, si := range rc.Synapses {
		sch = append(sch, etable.Column{net.Synapses[si].Nm + ":I", etensor.FLOAT64, nil, nil})
	}
	dt2 := &etable.Table{}
	dt2.SetFromSchema(sch, rc.N)
	dt2.SetMetaData("name", net.Nm+"Trace")
	dt2.SetMetaData("desc", "recorded potentials and currents per step")
	for s := 0; s < rc.N; s++ {
		dt2.SetCellFloat("Time", s, float64(float32(s)*dt))
		for i, ni := range rc.Neurons {
			dt2.SetCellFloat(net.Neurons[ni].Nm+":Vm", s, rc.Vm.Value([]int{i, s}))
		}
		for i, si := range rc.Synapses {
			dt2.SetCellFloat(net.Synapses[si].Nm+":I", s, rc.I.Value([]int{i, s}))
		}
	}
	return dt2
}
