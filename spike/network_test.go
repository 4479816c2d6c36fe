// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/emer/emergent/params"
	"github.com/emer/spikedec/izhi"
	"github.com/emer/spikedec/lif"
)

func newTestNet() *Network {
	return NewNetwork("test", rand.New(rand.NewSource(1)))
}

func lifRest() lif.State {
	return lif.State{Vm: -65}
}

func TestBackgroundSynapse(t *testing.T) {
	net := newTestNet()
	ni := net.NewLIF("a")
	nrn := net.Neuron(ni)
	if len(nrn.Inputs) != 1 {
		t.Fatalf("new neuron should have exactly the background input: %v\n", nrn.Inputs)
	}
	bg := net.Synapse(nrn.Inputs[0])
	if !bg.Bg || bg.Kind != Poisson || bg.W != 0.3 || bg.Rate != 0.25 {
		t.Errorf("background synapse err: %+v\n", bg)
	}
	if !bg.Win.On(0) || !bg.Win.On(1e6) {
		t.Errorf("background synapse should always be on\n")
	}
	if err := net.Finalize([]NeuronIndex{ni}, nil); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, si := range net.SynSet {
		if si == nrn.Inputs[0] {
			found = true
		}
	}
	if !found {
		t.Errorf("background synapse missing from synapse set: %v\n", net.SynSet)
	}
}

func TestInputDedup(t *testing.T) {
	net := newTestNet()
	a := net.NewLIF("a")
	b := net.NewIzhikevich("b", izhi.C)
	s := net.NewContinuous("s", 1, 0)

	if err := net.AddInputs(a, s); err != nil {
		t.Fatal(err)
	}
	if err := net.Project(s, a, b, b); err != nil {
		t.Fatal(err)
	}
	if err := net.AddInputs(a, s, s); err != nil {
		t.Fatal(err)
	}
	for _, ni := range []NeuronIndex{a, b} {
		n := 0
		for _, si := range net.Neuron(ni).Inputs {
			if si == s {
				n++
			}
		}
		if n != 1 {
			t.Errorf("neuron %v has synapse %d times\n", net.Neuron(ni).Nm, n)
		}
	}
	if err := net.Project(s); err != nil {
		t.Errorf("projecting to no targets should be valid: %v\n", err)
	}
	var se *SpecError
	if err := net.Project(SynapseIndex(99), a); !errors.As(err, &se) {
		t.Errorf("invalid synapse handle should be a SpecError: %v\n", err)
	}
	if err := net.AddInputs(NeuronIndex(99), s); !errors.As(err, &se) {
		t.Errorf("invalid neuron handle should be a SpecError: %v\n", err)
	}
}

func TestTotalInput(t *testing.T) {
	net := newTestNet()
	net.Bg.Rate = 0
	a := net.NewLIF("a")
	s1 := net.NewContinuous("s1", 0.5, 0)
	s2 := net.NewContinuous("s2", -0.25, 0)
	net.Project(s1, a)
	net.Project(s2, a)
	if err := net.Finalize([]NeuronIndex{a}, nil); err != nil {
		t.Fatal(err)
	}
	net.InitState()
	if err := net.TimeStep(0, 1); err != nil {
		t.Fatal(err)
	}
	in, err := net.TotalInput(a)
	if err != nil || in != 0.25 {
		t.Errorf("total input err: %v %v\n", in, err)
	}

	net.Neuron(a).Inputs = append(net.Neuron(a).Inputs, SynapseIndex(42))
	_, err = net.TotalInput(a)
	var ie *InputError
	if !errors.As(err, &ie) || !errors.Is(err, errInvalidHandle) {
		t.Errorf("corrupt input should be an InputError: %v\n", err)
	}
	if err := net.TimeStep(1, 1); !errors.As(err, &ie) {
		t.Errorf("TimeStep should abort with InputError: %v\n", err)
	}
}

func TestFinalizeOrder(t *testing.T) {
	net := newTestNet()
	c := net.NewLIF("c")
	a := net.NewLIF("a")
	b := net.NewLIF("b")
	s := net.NewContinuous("s", 1, 0)
	net.Project(s, a, b)
	if err := net.Finalize([]NeuronIndex{c, a, c, b, a}, []SynapseIndex{s, s}); err != nil {
		t.Fatal(err)
	}
	if len(net.Nodes) != 3 {
		t.Fatalf("nodes should be deduplicated: %v\n", net.Nodes)
	}
	nms := []string{}
	for _, ni := range net.Nodes {
		nms = append(nms, net.Neuron(ni).Nm)
	}
	if strings.Join(nms, ",") != "a,b,c" {
		t.Errorf("nodes should be sorted by name: %v\n", nms)
	}
	// s + 3 background synapses
	if len(net.SynSet) != 4 || net.SynSet[0] != s {
		t.Errorf("synapse set err: %v\n", net.SynSet)
	}
}

func TestNeuronalLag(t *testing.T) {
	net := newTestNet()
	net.Bg.Rate = 0
	pre := net.NewLIF("pre")
	post := net.NewLIF("post")
	net.Neuron(pre).LIF.TauR = 0
	drive := net.NewContinuous("drive", 20, 0)
	net.Project(drive, pre)
	rel, err := net.NewNeuronal("rel", 1, pre)
	if err != nil {
		t.Fatal(err)
	}
	net.Project(rel, post)
	if err := net.Finalize([]NeuronIndex{pre, post}, []SynapseIndex{drive, rel}); err != nil {
		t.Fatal(err)
	}
	net.InitState()
	net.Neuron(pre).LIFState = lifRest()

	// step 0: pre spikes, but rel read pre before it stepped
	net.TimeStep(0, 1)
	if !net.Neuron(pre).Spike() {
		t.Fatalf("pre should spike on step 0\n")
	}
	if net.Synapse(rel).Iout != 0 {
		t.Errorf("relay should lag by one step: Iout: %v\n", net.Synapse(rel).Iout)
	}
	// step 1: relay sees the step-0 spike
	net.TimeStep(1, 1)
	if net.Synapse(rel).Iout != 1 {
		t.Errorf("relay should see previous spike: Iout: %v\n", net.Synapse(rel).Iout)
	}
}

func TestApplyParams(t *testing.T) {
	net := newTestNet()
	a := net.NewLIF("a")
	b := net.NewLIF("b")
	net.Neuron(b).Cls = "Slow"
	net.Finalize([]NeuronIndex{a, b}, nil)
	sh := &params.Sheet{
		{Sel: ".Slow", Desc: "slower membrane",
			Params: params.Params{
				"Neuron.LIF.TauM": "20",
			}},
		{Sel: "#a", Desc: "no refractory period",
			Params: params.Params{
				"Neuron.LIF.TauR": "0",
			}},
	}
	app, err := net.ApplyParams(sh, false)
	if err != nil || !app {
		t.Fatalf("ApplyParams err: %v %v\n", app, err)
	}
	if net.Neuron(b).LIF.TauM != 20 || net.Neuron(b).LIF.Dt != 1.0/20 {
		t.Errorf("class selector err: %+v\n", net.Neuron(b).LIF)
	}
	if net.Neuron(a).LIF.TauM != 10 || net.Neuron(a).LIF.TauR != 0 {
		t.Errorf("name selector err: %+v\n", net.Neuron(a).LIF)
	}
}

func TestSizeReport(t *testing.T) {
	net := newTestNet()
	a := net.NewLIF("alpha")
	net.Finalize([]NeuronIndex{a}, nil)
	rep := net.SizeReport()
	if !strings.Contains(rep, "alpha") || !strings.Contains(rep, "Neurons: 1") {
		t.Errorf("size report err:\n%v", rep)
	}
	net.Timing = true
	net.InitState()
	net.TimeStep(0, 1)
	if !strings.Contains(net.TimerReport(), "NeurStep") {
		t.Errorf("timer report should list NeurStep:\n%v", net.TimerReport())
	}
}
