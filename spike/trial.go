// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spike

import (
	"errors"
	"log"

	"github.com/emer/emergent/params"
	"github.com/emer/etable/etable"
)

// InputParams are the parameters of the two stimulus input synapses
type InputParams struct {
	Rate  float32 `def:"0.75" desc:"firing rate in spikes / msec of an input whose pattern bit is 1 (0 otherwise)"`
	W     float32 `def:"0.5" desc:"weight of the input synapses"`
	Onset float32 `def:"300" desc:"stimulus onset in msec"`
}

func (ip *InputParams) Defaults() {
	ip.Rate = 0.75
	ip.W = 0.5
	ip.Onset = 300
}

func (ip *InputParams) Update() {
}

// TrialParams are all the parameters of a perceptual decision trial
type TrialParams struct {
	Bg        BgParams     `view:"inline" desc:"background synapse of every neuron"`
	Input     InputParams  `view:"inline" desc:"stimulus inputs in0 and in1"`
	Decide    DecideParams `view:"inline" desc:"decision rule"`
	RandInput bool         `desc:"shuffle the input pattern after drawing it"`
	SetMsg    bool         `desc:"log each parameter set by the circuit params sheets"`
}

func (tp *TrialParams) Defaults() {
	tp.Bg.Defaults()
	tp.Input.Defaults()
	tp.Decide.Defaults()
}

func (tp *TrialParams) Update() {
	tp.Bg.Update()
	tp.Input.Update()
	tp.Decide.Update()
}

// Scaffold is the fixed part of every trial graph that a Circuit extends:
// the two input synapses, the two output neurons, and the node and synapse
// collections that the circuit appends to.
type Scaffold struct {
	Net      *Network        `desc:"the trial graph being built"`
	Pattern  [2]int          `desc:"input pattern bits"`
	In       [2]SynapseIndex `desc:"input synapses in0, in1"`
	Out      [2]NeuronIndex  `desc:"output neurons out0, out1"`
	Nodes    []NeuronIndex   `desc:"neurons to step, starting with out0, out1"`
	Synapses []SynapseIndex  `desc:"declared synapses, starting with in0, in1"`
	Sheets   []*params.Sheet `desc:"params sheets applied in order after the circuit is built"`
}

// AddNodes appends neurons to the node collection
func (sc *Scaffold) AddNodes(ns ...NeuronIndex) {
	sc.Nodes = append(sc.Nodes, ns...)
}

// AddSynapses appends synapses to the synapse collection
func (sc *Scaffold) AddSynapses(ss ...SynapseIndex) {
	sc.Synapses = append(sc.Synapses, ss...)
}

// AddSheet adds a params sheet to apply once the circuit is built
func (sc *Scaffold) AddSheet(sh *params.Sheet) {
	sc.Sheets = append(sc.Sheets, sh)
}

// Circuit extends the scaffold of a trial with its own neurons and synapses
type Circuit interface {
	Build(sc *Scaffold) error
}

// CircuitFunc adapts a function to the Circuit interface
type CircuitFunc func(sc *Scaffold) error

func (cf CircuitFunc) Build(sc *Scaffold) error { return cf(sc) }

// Result is the outcome of one trial
type Result struct {
	Decision int     `desc:"0 or 1 for the output that decided, NoDecision (-1) otherwise"`
	Time     float32 `desc:"time in msec of the deciding step, or the horizon T"`
	Steps    int     `desc:"number of steps run"`
	T        float32 `desc:"effective time horizon in msec"`
	Clamped  bool    `desc:"true if the requested horizon was raised to the minimum"`
	Pattern  [2]int  `desc:"input pattern bits"`
}

// Decided returns true if an output reached threshold
func (rs *Result) Decided() bool {
	return rs.Decision != NoDecision
}

// Trial is one perceptual decision trial: a freshly built graph that is
// simulated once.
type Trial struct {
	Params   TrialParams `desc:"trial parameters"`
	Net      *Network    `desc:"the trial graph"`
	Scaffold Scaffold    `desc:"fixed inputs and outputs"`
	State    TrialStates `desc:"life-cycle state"`
	Rec      Recorder    `desc:"recording buffers"`
	Dec      Decider     `desc:"decision window"`
	Result   Result      `desc:"outcome, valid once State is Decided or TimedOut"`
}

// NewTrial draws an input pattern and builds the trial graph: the
// scaffold, then the circuit, then the circuit's params sheets, and
// finally the deduplicated node and synapse sets.  Every failure is
// reported as a *SpecError.
func NewTrial(name string, tp TrialParams, circ Circuit, rnd Rand) (*Trial, error) {
	tp.Update()
	tr := &Trial{Params: tp}
	net := NewNetwork(name, rnd)
	net.Bg = tp.Bg
	tr.Net = net

	sc := &tr.Scaffold
	sc.Net = net
	sc.Pattern = [2]int{rnd.Intn(2), rnd.Intn(2)}
	if tp.RandInput && rnd.Intn(2) == 1 {
		sc.Pattern[0], sc.Pattern[1] = sc.Pattern[1], sc.Pattern[0]
	}
	sc.In[0] = net.NewPoisson("in0", tp.Input.Rate*float32(sc.Pattern[0]), tp.Input.W, tp.Input.Onset)
	sc.In[1] = net.NewPoisson("in1", tp.Input.Rate*float32(sc.Pattern[1]), tp.Input.W, tp.Input.Onset)
	sc.Out[0] = net.NewLIF("out0")
	sc.Out[1] = net.NewLIF("out1")
	sc.Nodes = []NeuronIndex{sc.Out[0], sc.Out[1]}
	sc.Synapses = []SynapseIndex{sc.In[0], sc.In[1]}

	if circ != nil {
		if err := circ.Build(sc); err != nil {
			var se *SpecError
			if errors.As(err, &se) {
				return nil, err
			}
			return nil, &SpecError{Op: "Build", Msg: "circuit failed", Err: err}
		}
	}
	for _, sh := range sc.Sheets {
		if _, err := net.ApplyParams(sh, tp.SetMsg); err != nil {
			return nil, &SpecError{Op: "ApplyParams", Msg: "params sheet failed", Err: err}
		}
	}
	if err := net.Finalize(sc.Nodes, sc.Synapses); err != nil {
		return nil, err
	}
	net.InitState()
	tr.State = Built
	tr.Result = Result{Decision: NoDecision, Pattern: sc.Pattern}
	return tr, nil
}

// Target returns the indexes of the inputs whose pattern bit is 1
func (tr *Trial) Target() []int {
	var tg []int
	for i, b := range tr.Scaffold.Pattern {
		if b == 1 {
			tg = append(tg, i)
		}
	}
	return tg
}

// Simulate runs the trial for up to T msec in steps of dt, stopping at the
// first step on which the decision rule fires.  A horizon below the
// minimum is raised to it with a logged warning.  A trial can only be
// simulated once: further calls return ErrAlreadySimulated.
func (tr *Trial) Simulate(T, dt float32) (Result, error) {
	if tr.State != Built {
		return tr.Result, ErrAlreadySimulated
	}
	if dt <= 0 {
		return tr.Result, Specf("Simulate", "time step dt must be > 0, got %g", dt)
	}
	net := tr.Net
	dp := &tr.Params.Decide
	rs := &tr.Result
	if T < dp.MinT {
		log.Printf("spike: time horizon T = %g msec is below the %g msec minimum, using %g\n", T, dp.MinT, dp.MinT)
		T = dp.MinT
		rs.Clamped = true
	}
	rs.T = T
	steps := NSteps(T, dt)
	tr.Rec.Init(net, steps)
	tr.Dec.Init(*dp)
	net.Time.Dt = dt
	net.Time.T = T
	net.Time.Reset()

	out0 := net.Neuron(tr.Scaffold.Out[0])
	out1 := net.Neuron(tr.Scaffold.Out[1])
	tr.State = Running
	for i := 0; i < steps; i++ {
		t := float32(i) * dt
		if err := net.TimeStep(t, dt); err != nil {
			return *rs, err
		}
		tr.Rec.Record(net, i)
		tr.Dec.Push(out0.Spike(), out1.Spike())
		net.Time.StepInc()
		if d := tr.Dec.Decide(dt); d != NoDecision {
			rs.Decision = d
			rs.Time = t
			rs.Steps = i + 1
			tr.State = Decided
			return *rs, nil
		}
	}
	rs.Decision = NoDecision
	rs.Time = T
	rs.Steps = steps
	tr.State = TimedOut
	return *rs, nil
}

// TraceTable returns the recorded potentials and currents as a table
func (tr *Trial) TraceTable() *etable.Table {
	return tr.Rec.Table(tr.Net, tr.Net.Time.Dt)
}
