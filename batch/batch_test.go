// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/emer/spikedec/circuit"
	"github.com/emer/spikedec/results"
	"github.com/emer/spikedec/spike"
)

// drive0 makes out0 fire on every step from 300 msec, so every trial
// decides for out0 at 330 msec
var drive0 = spike.CircuitFunc(func(sc *spike.Scaffold) error {
	drive := sc.Net.NewContinuous("drive", 20, 300)
	if err := sc.Net.Project(drive, sc.Out[0]); err != nil {
		return err
	}
	sc.Net.Neuron(sc.Out[0]).LIF.TauR = 0
	return nil
})

// failOn fails to build the trials whose names end in one of the suffixes
func failOn(sufs ...string) spike.Circuit {
	return spike.CircuitFunc(func(sc *spike.Scaffold) error {
		for _, sf := range sufs {
			if strings.HasSuffix(sc.Net.Nm, sf) {
				return fmt.Errorf("no circuit for %s", sc.Net.Nm)
			}
		}
		return drive0(sc)
	})
}

func newRunner(circ spike.Circuit, trials, threads int) *Runner {
	rn := NewRunner("test", circ)
	rn.Params.Trials = trials
	rn.Params.Threads = threads
	rn.Params.T = 1000
	rn.Params.Trial.Bg.Rate = 0
	return rn
}

func TestBatchRun(t *testing.T) {
	rn := newRunner(drive0, 8, 1)
	ocs, err := rn.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(ocs) != 8 {
		t.Fatalf("outcomes err: %v\n", len(ocs))
	}
	for i, oc := range ocs {
		if oc.Trial != i || oc.Decision != 0 || oc.RT != 330 {
			t.Errorf("outcome %d err: %+v\n", i, oc)
		}
		want := results.Incorrect
		if oc.Pattern[0] == 1 {
			want = results.Correct
		}
		if oc.Response != want {
			t.Errorf("outcome %d response err: %v pattern %v\n", i, oc.Response, oc.Pattern)
		}
	}
}

func TestBatchThreads(t *testing.T) {
	seq, err := newRunner(drive0, 12, 1).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	rn := newRunner(drive0, 12, 4)
	var calls int32
	rn.OnTrial = func(i int, tr *spike.Trial, oc results.Outcome) {
		atomic.AddInt32(&calls, 1)
		if tr.State != spike.Decided {
			t.Errorf("trial %d state err: %v\n", i, tr.State)
		}
	}
	par, err := rn.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if calls != 12 {
		t.Errorf("hook calls err: %v\n", calls)
	}
	if len(par) != len(seq) {
		t.Fatalf("outcomes err: %v %v\n", len(par), len(seq))
	}
	for i := range seq {
		if par[i] != seq[i] {
			t.Errorf("trial %d differs between thread counts: %+v %+v\n", i, par[i], seq[i])
		}
	}
}

// drive0Circuit is drive0 as a circuit description, with the refractory
// period removed by a params selector
const drive0Circuit = `
name: drive0
synapses:
  - {name: drive, kind: Continuous, w: 20, onset: 300, post: [out0]}
params:
  - sel: "#out0"
    desc: no refractory period
    params: {"Neuron.LIF.TauR": "0"}
`

func TestBatchThreadsSheet(t *testing.T) {
	ci, err := circuit.ParseString(drive0Circuit)
	if err != nil {
		t.Fatal(err)
	}
	seq, err := newRunner(ci, 16, 1).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	rn := newRunner(ci, 16, 4)
	rn.OnTrial = func(i int, tr *spike.Trial, oc results.Outcome) {
		if tr.Net.Neuron(tr.Scaffold.Out[0]).LIF.TauR != 0 {
			t.Errorf("trial %d params not applied\n", i)
		}
	}
	par, err := rn.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(par) != 16 || len(seq) != 16 {
		t.Fatalf("outcomes err: %v %v\n", len(par), len(seq))
	}
	for i := range seq {
		if par[i] != seq[i] || par[i].Decision != 0 || par[i].RT != 330 {
			t.Errorf("trial %d err: %+v %+v\n", i, par[i], seq[i])
		}
	}
}

func TestBatchErrors(t *testing.T) {
	rn := newRunner(failOn(".3", ".5"), 8, 2)
	rn.Params.ContinueOnError = true
	ocs, err := rn.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(ocs) != 6 || len(rn.Errs) != 2 {
		t.Fatalf("skip err: %v %v\n", len(ocs), rn.Errs)
	}
	for _, oc := range ocs {
		if oc.Trial == 3 || oc.Trial == 5 {
			t.Errorf("failed trial %d should be skipped\n", oc.Trial)
		}
	}
	var te *TrialError
	if !errors.As(rn.Errs[0], &te) || te.Trial != 3 {
		t.Errorf("first error err: %v\n", rn.Errs[0])
	}
	var se *spike.SpecError
	if !errors.As(rn.Errs[1], &se) {
		t.Errorf("build failure should be a SpecError: %v\n", rn.Errs[1])
	}

	rn = newRunner(failOn(".3"), 8, 1)
	ocs, err = rn.Run(context.Background())
	if !errors.As(err, &te) || te.Trial != 3 || ocs != nil {
		t.Errorf("stop on error err: %v %v\n", err, ocs)
	}
}

func TestBatchCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ocs, err := newRunner(drive0, 5, 2).Run(ctx)
	if !errors.Is(err, context.Canceled) || len(ocs) != 0 {
		t.Errorf("cancel err: %v %v\n", err, len(ocs))
	}

	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()
	rn := newRunner(drive0, 50, 1)
	rn.OnTrial = func(i int, tr *spike.Trial, oc results.Outcome) {
		if i == 2 {
			cancel()
		}
	}
	ocs, err = rn.Run(ctx)
	if !errors.Is(err, context.Canceled) || len(ocs) >= 50 || len(ocs) < 3 {
		t.Errorf("cancel mid batch err: %v %v\n", err, len(ocs))
	}
}

func TestParamsUpdate(t *testing.T) {
	bp := Params{}
	bp.Defaults()
	bp.Trials = 3
	bp.Threads = 8
	bp.Update()
	if bp.Threads != 3 {
		t.Errorf("threads err: %v\n", bp.Threads)
	}
	bp.Trials = -1
	bp.Threads = 0
	bp.Update()
	if bp.Trials != 0 || bp.Threads != 1 {
		t.Errorf("clamp err: %v %v\n", bp.Trials, bp.Threads)
	}
}
