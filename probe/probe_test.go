// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package probe

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/emer/emergent/params"
	"github.com/emer/spikedec/izhi"
	"github.com/emer/spikedec/spike"
)

func TestProbeClamp(t *testing.T) {
	pp := Params{}
	pp.Defaults()
	pp.Model = spike.LIF
	pp.W = 20
	pb, err := Run(pp, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	vm := pb.Vm()
	in := pb.I()
	if len(vm) != 800 || len(in) != 800 {
		t.Fatalf("trace len err: %v %v\n", len(vm), len(in))
	}
	for s, cur := range in {
		want := 0.0
		if s >= 200 && s < 650 {
			want = 20
		}
		if cur != want {
			t.Errorf("input at %d err: %v cor: %v\n", s, cur, want)
			break
		}
	}
	if len(pb.Spikes) == 0 {
		t.Errorf("clamped neuron should spike\n")
	}
	for _, st := range pb.Spikes {
		if st < 200 || st >= 650 {
			t.Errorf("spike outside the input window at %v\n", st)
		}
	}
	dt := pb.Table()
	if dt.Rows != 800 || dt.ColByName("LIF:Vm") == nil || dt.ColByName("input:I") == nil {
		t.Errorf("table err: %v rows\n", dt.Rows)
	}
}

func TestProbeIzhikevich(t *testing.T) {
	for typ := izhi.A; typ < izhi.TypesN; typ++ {
		pp := Params{}
		pp.Defaults()
		pp.Type = typ
		pp.W = 10
		pb, err := Run(pp, rand.New(rand.NewSource(2)))
		if err != nil {
			t.Fatal(err)
		}
		for s, v := range pb.Vm() {
			if v > izhi.Peak {
				t.Errorf("type %v: potential above peak at %d: %v\n", typ, s, v)
				break
			}
		}
		for _, st := range pb.Spikes {
			if pb.Vm()[int(st)] != izhi.Peak {
				t.Errorf("type %v: spike at %v should show the peak potential\n", typ, st)
				break
			}
		}
	}
}

func TestProbePoisson(t *testing.T) {
	pp := Params{}
	pp.Defaults()
	pp.Input = spike.Poisson
	pp.HasOffset = false
	pp.Rate = 0.5
	pb, err := Run(pp, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	in := pb.I()
	for s := 0; s < 200; s++ {
		if in[s] != 0 {
			t.Errorf("input before onset at %d: %v\n", s, in[s])
			break
		}
	}
	var sum float64
	for _, cur := range in[200:] {
		sum += cur
	}
	if sum <= 0 {
		t.Errorf("poisson input should deliver current after onset\n")
	}
}

func TestProbeSheet(t *testing.T) {
	pp := Params{}
	pp.Defaults()
	pp.Model = spike.LIF
	pp.Sheet = &params.Sheet{
		{Sel: "Neuron", Desc: "slow", Params: params.Params{"Neuron.LIF.TauM": "40"}},
	}
	pb, err := Run(pp, rand.New(rand.NewSource(4)))
	if err != nil {
		t.Fatal(err)
	}
	if pb.Net.Neuron(pb.Nrn).LIF.TauM != 40 {
		t.Errorf("sheet err: %v\n", pb.Net.Neuron(pb.Nrn).LIF.TauM)
	}
}

func TestProbeErrors(t *testing.T) {
	pp := Params{}
	pp.Defaults()
	pp.Input = spike.Neuronal
	var se *spike.SpecError
	if _, err := Run(pp, rand.New(rand.NewSource(5))); !errors.As(err, &se) {
		t.Errorf("neuronal input should fail: %v\n", err)
	}
	pp.Defaults()
	pp.Dt = 0
	if _, err := Run(pp, rand.New(rand.NewSource(5))); !errors.As(err, &se) {
		t.Errorf("zero dt should fail: %v\n", err)
	}
}
