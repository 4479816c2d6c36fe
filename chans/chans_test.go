// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import (
	"testing"

	"github.com/chewxy/math32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

func TestAMPADecay(t *testing.T) {
	ap := AMPA{}
	ap.Defaults()

	cur := ap.Step(0, true, 1)
	if cur != 1 {
		t.Errorf("spike should add 1, got: %v\n", cur)
	}
	cor := []float32{1 - 1/1.8}
	cor = append(cor, cor[0]*cor[0])
	for i := range cor {
		cur = ap.Step(cur, false, 1)
		dif := math32.Abs(cur - cor[i])
		if dif > difTol {
			t.Errorf("AMPA decay err: idx: %v, cur: %v, cor: %v, dif: %v\n", i, cur, cor[i], dif)
		}
	}
}

func TestWindow(t *testing.T) {
	wn := Window{Onset: 200}
	wn.SetOffset(650)
	tsts := []float32{0, 199.5, 200, 400, 649.9, 650, 800}
	cor := []bool{false, false, true, true, true, false, false}
	for i, tm := range tsts {
		if wn.On(tm) != cor[i] {
			t.Errorf("window err: t: %v, on: %v, cor: %v\n", tm, wn.On(tm), cor[i])
		}
		if wn.On(tm) != wn.On(tm) {
			t.Errorf("window not idempotent at t: %v\n", tm)
		}
	}

	open := Window{Onset: 300}
	if open.On(299) || !open.On(300) || !open.On(1e9) {
		t.Errorf("open window err\n")
	}
}
