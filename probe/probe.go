// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package probe drives a single neuron with one clamped or Poisson input and
records its membrane potential, to look at how a neuron model and its
parameters respond to input outside of a decision trial.
*/
package probe

import (
	"github.com/emer/emergent/params"
	"github.com/emer/etable/etable"
	"github.com/emer/spikedec/izhi"
	"github.com/emer/spikedec/spike"
)

// Params are the parameters of a probe run
type Params struct {
	Model     spike.NeuronKinds  `desc:"neuron model"`
	Type      izhi.Types         `desc:"Izhikevich parameter set"`
	Input     spike.SynapseKinds `desc:"input kind: Continuous or Poisson"`
	W         float32            `def:"0.75" desc:"input weight"`
	Rate      float32            `def:"0.4" desc:"Poisson input rate in spikes / msec"`
	Onset     float32            `def:"200" desc:"input onset in msec"`
	Offset    float32            `def:"650" desc:"input offset in msec, if HasOffset"`
	HasOffset bool               `def:"true" desc:"whether the input stops at Offset"`
	T         float32            `def:"800" desc:"duration in msec"`
	Dt        float32            `def:"1" desc:"integration step in msec"`
	Bg        bool               `desc:"keep the background Poisson input of the neuron"`
	Sheet     *params.Sheet      `view:"-" desc:"optional params applied to the neuron and input"`
}

func (pp *Params) Defaults() {
	pp.Model = spike.Izhikevich
	pp.Type = izhi.A
	pp.Input = spike.Continuous
	pp.W = 0.75
	pp.Rate = 0.4
	pp.Onset = 200
	pp.Offset = 650
	pp.HasOffset = true
	pp.T = 800
	pp.Dt = 1
}

// Probe is a single neuron network after a run
type Probe struct {
	Params Params             `desc:"parameters of the run"`
	Net    *spike.Network     `desc:"the network holding the neuron, its background and input"`
	Nrn    spike.NeuronIndex  `desc:"the probed neuron"`
	In     spike.SynapseIndex `desc:"the input synapse"`
	Rec    spike.Recorder     `desc:"recorded potential and input current"`
	Spikes []float32          `desc:"times of the steps on which the neuron spiked"`
}

// Run builds the probe network and runs it for pp.T msec.  The input
// must be a Continuous or Poisson synapse.
func Run(pp Params, rnd spike.Rand) (*Probe, error) {
	if pp.Input == spike.Neuronal {
		return nil, spike.Specf("probe.Run", "input must be Continuous or Poisson, not %v", pp.Input)
	}
	if pp.Dt <= 0 {
		return nil, spike.Specf("probe.Run", "time step dt must be > 0, got %g", pp.Dt)
	}
	pb := &Probe{Params: pp}
	net := spike.NewNetwork("probe", rnd)
	if !pp.Bg {
		net.Bg.Rate = 0
	}
	pb.Net = net
	switch pp.Model {
	case spike.Izhikevich:
		pb.Nrn = net.NewIzhikevich(pp.Model.String()+"."+pp.Type.String(), pp.Type)
	default:
		pb.Nrn = net.NewLIF(pp.Model.String())
	}
	if pp.Input == spike.Poisson {
		pb.In = net.NewPoisson("input", pp.Rate, pp.W, pp.Onset)
	} else {
		pb.In = net.NewContinuous("input", pp.W, pp.Onset)
	}
	if pp.HasOffset {
		net.Synapse(pb.In).Win.SetOffset(pp.Offset)
	}
	if err := net.Project(pb.In, pb.Nrn); err != nil {
		return nil, err
	}
	net.Neuron(pb.Nrn).Record = true
	net.Synapse(pb.In).Record = true
	if pp.Sheet != nil {
		if _, err := net.ApplyParams(pp.Sheet, false); err != nil {
			return nil, err
		}
	}
	if err := net.Finalize([]spike.NeuronIndex{pb.Nrn}, []spike.SynapseIndex{pb.In}); err != nil {
		return nil, err
	}
	net.InitState()

	steps := spike.NSteps(pp.T, pp.Dt)
	pb.Rec.Init(net, steps)
	net.Time.Dt = pp.Dt
	net.Time.T = pp.T
	nrn := net.Neuron(pb.Nrn)
	for i := 0; i < steps; i++ {
		t := float32(i) * pp.Dt
		if err := net.TimeStep(t, pp.Dt); err != nil {
			return pb, err
		}
		pb.Rec.Record(net, i)
		if nrn.Spike() {
			pb.Spikes = append(pb.Spikes, t)
		}
		net.Time.StepInc()
	}
	return pb, nil
}

// Vm returns the recorded membrane potential, one value per step
func (pb *Probe) Vm() []float64 {
	return pb.Rec.NeuronTrace(0)
}

// I returns the recorded input current, one value per step
func (pb *Probe) I() []float64 {
	return pb.Rec.SynapseTrace(0)
}

// Table returns the recorded traces as a table
func (pb *Probe) Table() *etable.Table {
	return pb.Rec.Table(pb.Net, pb.Params.Dt)
}
