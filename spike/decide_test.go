// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import "testing"

func TestDeciderWindow(t *testing.T) {
	dp := DecideParams{}
	dp.Defaults()
	dc := Decider{}
	dc.Init(dp)

	for i := 0; i < 299; i++ {
		dc.Push(true, false)
		if dc.Decide(1) != NoDecision {
			t.Fatalf("no decision before a full window: step: %v\n", i)
		}
	}
	dc.Push(true, false)
	if dc.Decide(1) != 0 {
		t.Errorf("full window of out0 spikes should decide 0\n")
	}
	if dc.Counts[0] != 300 || dc.N != 300 {
		t.Errorf("counts err: %v n: %v\n", dc.Counts, dc.N)
	}
	// drop-oldest: 300 quiet steps empty the window
	for i := 0; i < 300; i++ {
		dc.Push(false, i < 31)
	}
	if dc.Counts[0] != 0 || dc.Counts[1] != 31 {
		t.Errorf("sliding counts err: %v\n", dc.Counts)
	}
	if dc.Decide(1) != 1 {
		t.Errorf("31 > 30 spikes of out1 should decide 1\n")
	}
}

func TestDeciderThreshold(t *testing.T) {
	dp := DecideParams{}
	dp.Defaults()
	dc := Decider{}
	dc.Init(dp)
	for i := 0; i < 300; i++ {
		dc.Push(i < 30, i < 30)
	}
	if dc.Decide(1) != NoDecision {
		t.Errorf("exactly the threshold count should not decide\n")
	}
	// with dt = 0.1 the threshold is 3 spikes, and out0 wins ties
	if dc.Decide(0.1) != 0 {
		t.Errorf("threshold should scale with dt, out0 first\n")
	}
}
