// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package izhi

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-5)

func TestIzhiSets(t *testing.T) {
	cor := map[Types][5]float32{
		A: {0.02, 0.2, -65, 6, 14},
		C: {0.02, 0.25, -50, 2, 15},
		F: {0.01, 0.2, -65, 8, 30},
	}
	for typ, vals := range cor {
		ip := Params{}
		ip.SetType(typ)
		got := [5]float32{ip.A, ip.B, ip.C, ip.D, ip.S}
		if got != vals {
			t.Errorf("set %v err: got: %v cor: %v\n", typ, got, vals)
		}
	}
	var typ Types
	if err := typ.FromString("D"); err != nil || typ != D {
		t.Errorf("FromString D err: %v %v\n", typ, err)
	}
	if err := typ.FromString("Q"); err == nil {
		t.Errorf("FromString Q should fail\n")
	}
}

func TestIzhiUpdateType(t *testing.T) {
	ip := Params{}
	ip.Defaults()
	ip.S = 20
	ip.Update()
	if ip.Type != A || ip.S != 20 {
		t.Errorf("update should keep set values: %v %v\n", ip.Type, ip.S)
	}
	ip.Type = C
	ip.Update()
	got := [5]float32{ip.A, ip.B, ip.C, ip.D, ip.S}
	if cor := [5]float32{0.02, 0.25, -50, 2, 15}; got != cor {
		t.Errorf("type change err: got: %v cor: %v\n", got, cor)
	}
	ip.S = 20
	ip.Update()
	if ip.S != 20 {
		t.Errorf("update after type change err: %v\n", ip.S)
	}
}

func TestIzhiInit(t *testing.T) {
	ip := Params{}
	ip.SetType(C)
	rnd := rand.New(rand.NewSource(2))
	for i := 0; i < 100; i++ {
		st := State{}
		ip.Init(&st, rnd)
		if st.V > 0 || st.V < ip.C {
			t.Errorf("init V out of range: %v\n", st.V)
		}
		if math32.Abs(st.U-ip.B*st.V) > difTol {
			t.Errorf("init U should be B*V: %v %v\n", st.U, st.V)
		}
	}
}

func TestIzhiReset(t *testing.T) {
	for typ := A; typ < TypesN; typ++ {
		ip := Params{}
		ip.SetType(typ)
		st := State{V: 29, U: 1}
		ip.Step(&st, 100, 1)
		if !ip.Spike(&st) {
			t.Errorf("type %v should spike\n", typ)
			continue
		}
		if st.V != ip.C {
			t.Errorf("type %v reset V: %v cor: %v\n", typ, st.V, ip.C)
		}
		// V' = 29 + (0.04*841 + 145 + 140 - 1 + 100*S), U' = 1 + A*(B*V' - 1)
		vn := float32(29) + (0.04*29*29 + 5*29 + 140 - 1 + 100*ip.S)
		un := 1 + ip.A*(ip.B*vn-1) + ip.D
		if math32.Abs(st.U-un) > 1.0e-3 {
			t.Errorf("type %v reset U: %v cor: %v\n", typ, st.U, un)
		}
		if ip.Potential(&st) != Peak {
			t.Errorf("type %v potential while spiking: %v\n", typ, ip.Potential(&st))
		}
		ip.Step(&st, 0, 0.01)
		if ip.Spike(&st) {
			t.Errorf("type %v should not spike right after reset\n", typ)
		}
		if ip.Potential(&st) != st.V {
			t.Errorf("type %v potential should be V when not spiking\n", typ)
		}
	}
}

func TestIzhiSubthreshold(t *testing.T) {
	ip := Params{}
	ip.Defaults()
	st := State{V: -70, U: -14}
	// V' = -70 + (196 - 350 + 140 + 14) = -70, U' = -14 + 0.02*(0.2*-70 + 14) = -14
	ip.Step(&st, 0, 1)
	if math32.Abs(st.V-(-70)) > 1.0e-4 || math32.Abs(st.U-(-14)) > 1.0e-4 {
		t.Errorf("fixed point err: V: %v U: %v\n", st.V, st.U)
	}
	if st.Spiking {
		t.Errorf("should not spike at rest\n")
	}
}
