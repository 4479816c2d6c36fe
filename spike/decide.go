// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

// NoDecision is the Decision value when no output reached threshold
const NoDecision = -1

// DecideParams are the parameters of the windowed rate-threshold decision
type DecideParams struct {
	Window int     `def:"300" min:"1" desc:"number of most recent steps over which output spikes are counted; no decision is made before this many steps"`
	Thr    float32 `def:"0.1" desc:"firing-rate threshold in spikes / msec: an output decides when its count exceeds Thr * Window * dt"`
	MinT   float32 `def:"300" desc:"minimum time horizon in msec; shorter horizons are raised to this with a warning"`
}

func (dp *DecideParams) Defaults() {
	dp.Window = 300
	dp.Thr = 0.1
	dp.MinT = 300
}

func (dp *DecideParams) Update() {
	if dp.Window < 1 {
		dp.Window = 1
	}
}

// CountThr returns the spike count that must be exceeded for a decision
func (dp *DecideParams) CountThr(dt float32) float32 {
	return dp.Thr * float32(dp.Window) * dt
}

// Decider keeps a sliding window of the two outputs' spike flags, with
// running counts, dropping the oldest sample when full.
type Decider struct {
	Params DecideParams
	Counts [2]int `desc:"number of spikes of each output in the window"`
	N      int    `desc:"number of samples currently in the window"`
	Pushed int    `desc:"total number of samples pushed"`
	buf    [][2]bool
	head   int
}

// Init allocates the window and clears all counts
func (dc *Decider) Init(dp DecideParams) {
	dp.Update()
	dc.Params = dp
	dc.buf = make([][2]bool, dp.Window)
	dc.Reset()
}

// Reset clears the window
func (dc *Decider) Reset() {
	for i := range dc.buf {
		dc.buf[i] = [2]bool{}
	}
	dc.Counts = [2]int{}
	dc.N = 0
	dc.Pushed = 0
	dc.head = 0
}

// Push adds the spike flags of the two outputs for the current step
func (dc *Decider) Push(s0, s1 bool) {
	if dc.N == len(dc.buf) {
		old := dc.buf[dc.head]
		if old[0] {
			dc.Counts[0]--
		}
		if old[1] {
			dc.Counts[1]--
		}
	} else {
		dc.N++
	}
	dc.buf[dc.head] = [2]bool{s0, s1}
	if s0 {
		dc.Counts[0]++
	}
	if s1 {
		dc.Counts[1]++
	}
	dc.head = (dc.head + 1) % len(dc.buf)
	dc.Pushed++
}

// Decide returns the output that has exceeded the count threshold, or
// NoDecision.  Output 0 wins ties.  Nothing is decided until a full
// window of samples has been pushed.
func (dc *Decider) Decide(dt float32) int {
	if dc.Pushed < dc.Params.Window {
		return NoDecision
	}
	thr := dc.Params.CountThr(dt)
	switch {
	case float32(dc.Counts[0]) > thr:
		return 0
	case float32(dc.Counts[1]) > thr:
		return 1
	}
	return NoDecision
}
