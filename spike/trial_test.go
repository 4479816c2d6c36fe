// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
)

func quietParams() TrialParams {
	tp := TrialParams{}
	tp.Defaults()
	tp.Bg.Rate = 0
	return tp
}

// forceOut0 drives out0 hard enough to fire on every step from 300 msec
var forceOut0 = CircuitFunc(func(sc *Scaffold) error {
	drive := sc.Net.NewContinuous("drive", 20, 300)
	if err := sc.Net.Project(drive, sc.Out[0]); err != nil {
		return err
	}
	sc.Net.Neuron(sc.Out[0]).LIF.TauR = 0
	sc.AddSynapses(drive)
	return nil
})

func TestDecisionTime(t *testing.T) {
	tr, err := NewTrial("decide", quietParams(), forceOut0, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatal(err)
	}
	rs, err := tr.Simulate(1000, 1)
	if err != nil {
		t.Fatal(err)
	}
	if rs.Decision != 0 || rs.Time != 330 {
		t.Errorf("decision err: %+v cor: decision 0 at t = 330\n", rs)
	}
	if rs.Steps != 331 || tr.State != Decided {
		t.Errorf("steps / state err: %v %v\n", rs.Steps, tr.State)
	}
	if _, err := tr.Simulate(1000, 1); !errors.Is(err, ErrAlreadySimulated) {
		t.Errorf("second Simulate should fail: %v\n", err)
	}
}

func TestDecisionOut1(t *testing.T) {
	circ := CircuitFunc(func(sc *Scaffold) error {
		drive := sc.Net.NewContinuous("drive", 20, 300)
		sc.Net.Project(drive, sc.Out[1])
		sc.Net.Neuron(sc.Out[1]).LIF.TauR = 0
		return nil
	})
	tr, err := NewTrial("decide1", quietParams(), circ, rand.New(rand.NewSource(6)))
	if err != nil {
		t.Fatal(err)
	}
	rs, _ := tr.Simulate(1000, 1)
	if rs.Decision != 1 || rs.Time != 330 {
		t.Errorf("decision err: %+v cor: decision 1 at t = 330\n", rs)
	}
}

func TestHorizonClamp(t *testing.T) {
	tr, err := NewTrial("horizon", quietParams(), nil, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}
	rs, err := tr.Simulate(100, 1)
	if err != nil {
		t.Fatal(err)
	}
	if rs.Decision != NoDecision || rs.Time != 300 || rs.Steps != 300 || !rs.Clamped {
		t.Errorf("horizon err: %+v cor: no decision at 300 after 300 steps\n", rs)
	}
	if tr.State != TimedOut || tr.Net.Time.Step != 300 {
		t.Errorf("state err: %v steps: %v\n", tr.State, tr.Net.Time.Step)
	}
}

func TestScaffold(t *testing.T) {
	rnd := rand.New(rand.NewSource(8))
	for i := 0; i < 20; i++ {
		tp := quietParams()
		tp.RandInput = i%2 == 0
		tr, err := NewTrial("scaffold", tp, nil, rnd)
		if err != nil {
			t.Fatal(err)
		}
		net := tr.Net
		sc := &tr.Scaffold
		for k := 0; k < 2; k++ {
			in := net.Synapse(sc.In[k])
			if in.Nm != fmt.Sprintf("in%d", k) || in.Kind != Poisson || in.W != 0.5 || in.Win.Onset != 300 {
				t.Errorf("input %d err: %+v\n", k, in)
			}
			if in.Rate != 0.75*float32(sc.Pattern[k]) {
				t.Errorf("input %d rate: %v pattern: %v\n", k, in.Rate, sc.Pattern)
			}
			if net.Neuron(sc.Out[k]).Nm != fmt.Sprintf("out%d", k) || net.Neuron(sc.Out[k]).Kind != LIF {
				t.Errorf("output %d err\n", k)
			}
		}
		if len(tr.Target()) != sc.Pattern[0]+sc.Pattern[1] {
			t.Errorf("target err: %v pattern: %v\n", tr.Target(), sc.Pattern)
		}
		// in0, in1, out0.bg, out1.bg
		if len(net.SynSet) != 4 || len(net.Nodes) != 2 {
			t.Errorf("scaffold sets err: %v %v\n", net.SynSet, net.Nodes)
		}
	}
}

func TestCircuitErrors(t *testing.T) {
	bad := CircuitFunc(func(sc *Scaffold) error {
		sc.AddNodes(NeuronIndex(77))
		return nil
	})
	_, err := NewTrial("bad", quietParams(), bad, rand.New(rand.NewSource(1)))
	var se *SpecError
	if !errors.As(err, &se) {
		t.Errorf("invalid node should be a SpecError: %v\n", err)
	}

	boom := errors.New("boom")
	failing := CircuitFunc(func(sc *Scaffold) error { return boom })
	_, err = NewTrial("fail", quietParams(), failing, rand.New(rand.NewSource(1)))
	if !errors.As(err, &se) || !errors.Is(err, boom) {
		t.Errorf("circuit failure should be wrapped in a SpecError: %v\n", err)
	}
}

func TestRecording(t *testing.T) {
	circ := CircuitFunc(func(sc *Scaffold) error {
		sc.Net.Neuron(sc.Out[0]).Record = true
		sc.Net.Synapse(sc.In[0]).Record = true
		return nil
	})
	tr, err := NewTrial("rec", quietParams(), circ, rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatal(err)
	}
	rs, _ := tr.Simulate(350, 1)
	if len(tr.Rec.Neurons) != 1 || len(tr.Rec.Synapses) != 1 {
		t.Fatalf("recorded entities err: %v %v\n", tr.Rec.Neurons, tr.Rec.Synapses)
	}
	vm := tr.Rec.NeuronTrace(0)
	if len(vm) != rs.Steps {
		t.Errorf("trace length err: %v steps: %v\n", len(vm), rs.Steps)
	}
	if float32(vm[len(vm)-1]) != tr.Net.Neuron(tr.Scaffold.Out[0]).Potential() {
		t.Errorf("last recorded Vm should be the current potential\n")
	}
	for s, i := range tr.Rec.SynapseTrace(0)[:300] {
		if i != 0 {
			t.Errorf("input current before onset should be 0: step: %v I: %v\n", s, i)
			break
		}
	}
	dt := tr.TraceTable()
	if dt.Rows != rs.Steps || dt.ColByName("out0:Vm") == nil || dt.ColByName("in0:I") == nil {
		t.Errorf("trace table err: rows: %v\n", dt.Rows)
	}
}
