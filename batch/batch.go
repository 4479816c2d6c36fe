// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package batch runs many independent decision trials of one circuit and
scores them.  Trial i is seeded with Seed + i, so a batch is reproducible
regardless of how many worker goroutines run it, and outcomes are always
returned in trial order.
*/
package batch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"sync"

	"github.com/emer/emergent/timer"
	"github.com/emer/spikedec/results"
	"github.com/emer/spikedec/spike"
	"github.com/goki/ki/ints"
)

// Params are the parameters of a batch of trials
type Params struct {
	Trials          int               `def:"10" desc:"number of trials"`
	Seed            int64             `def:"1" desc:"base random seed: trial i uses Seed + i"`
	Threads         int               `def:"1" desc:"number of worker goroutines, at most Trials"`
	ContinueOnError bool              `desc:"skip trials that fail instead of stopping the batch"`
	Scoring         results.Scorings  `desc:"rule that scores each decision"`
	T               float32           `def:"2000" desc:"time horizon of each trial in msec"`
	Dt              float32           `def:"1" desc:"integration step in msec"`
	Trial           spike.TrialParams `view:"inline" desc:"trial parameters"`
}

func (bp *Params) Defaults() {
	bp.Trials = 10
	bp.Seed = 1
	bp.Threads = 1
	bp.Scoring = results.MatchInput
	bp.T = 2000
	bp.Dt = 1
	bp.Trial.Defaults()
}

// Update clamps the counts to usable values
func (bp *Params) Update() {
	bp.Trials = ints.MaxInt(bp.Trials, 0)
	bp.Threads = ints.MaxInt(ints.MinInt(bp.Threads, bp.Trials), 1)
	bp.Trial.Update()
}

// TrialError is the failure of one trial of a batch
type TrialError struct {
	Trial int
	Err   error
}

func (te *TrialError) Error() string {
	return fmt.Sprintf("trial %d: %v", te.Trial, te.Err)
}

func (te *TrialError) Unwrap() error { return te.Err }

// Runner runs a batch of trials of one circuit
type Runner struct {
	Name    string                                           `desc:"name of the batch, used for trial names"`
	Params  Params                                           `desc:"batch parameters"`
	Circ    spike.Circuit                                    `desc:"circuit built into every trial"`
	OnTrial func(i int, tr *spike.Trial, oc results.Outcome) `view:"-" desc:"optional hook called after each successful trial, from the worker goroutine"`
	Timer   timer.Time                                       `view:"-" desc:"wall time of the last Run"`
	Errs    []error                                          `view:"-" desc:"trial errors skipped by the last Run with ContinueOnError"`
}

// NewRunner returns a runner with default parameters
func NewRunner(name string, circ spike.Circuit) *Runner {
	rn := &Runner{Name: name, Circ: circ}
	rn.Params.Defaults()
	return rn
}

// RunTrial builds, simulates and scores trial i
func (rn *Runner) RunTrial(i int) (results.Outcome, *spike.Trial, error) {
	rnd := rand.New(rand.NewSource(rn.Params.Seed + int64(i)))
	tr, err := spike.NewTrial(fmt.Sprintf("%s.%d", rn.Name, i), rn.Params.Trial, rn.Circ, rnd)
	if err != nil {
		return results.Outcome{}, nil, &TrialError{Trial: i, Err: err}
	}
	rs, err := tr.Simulate(rn.Params.T, rn.Params.Dt)
	if err != nil {
		return results.Outcome{}, tr, &TrialError{Trial: i, Err: err}
	}
	return results.NewOutcome(i, rn.Params.Scoring, rs), tr, nil
}

// Run runs all trials and returns the outcomes in trial order.  The
// context is checked before each trial starts.  Without ContinueOnError the
// first failing trial stops the batch and its error is returned; with it,
// failing trials are logged, collected in Errs and left out of the outcomes.
func (rn *Runner) Run(ctx context.Context) ([]results.Outcome, error) {
	rn.Params.Update()
	rn.Errs = nil
	rn.Timer.Reset()
	rn.Timer.Start()
	defer rn.Timer.Stop()

	ntr := rn.Params.Trials
	ocs := make([]results.Outcome, ntr)
	ok := make([]bool, ntr)

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       sync.Mutex
		firstErr error
		wg       sync.WaitGroup
	)
	jobs := make(chan int)
	for w := 0; w < rn.Params.Threads; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				oc, tr, err := rn.RunTrial(i)
				if err != nil {
					mu.Lock()
					if rn.Params.ContinueOnError {
						log.Printf("batch %s: skipping %v\n", rn.Name, err)
						rn.Errs = append(rn.Errs, err)
					} else if firstErr == nil {
						firstErr = err
						cancel()
					}
					mu.Unlock()
					continue
				}
				ocs[i] = oc
				ok[i] = true
				if rn.OnTrial != nil {
					rn.OnTrial(i, tr, oc)
				}
			}
		}()
	}

feed:
	for i := 0; i < ntr; i++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	done := ocs[:0]
	for i := range ocs {
		if ok[i] {
			done = append(done, ocs[i])
		}
	}
	sort.Slice(rn.Errs, func(a, b int) bool {
		return trialOf(rn.Errs[a]) < trialOf(rn.Errs[b])
	})
	return done, parent.Err()
}

func trialOf(err error) int {
	var te *TrialError
	if errors.As(err, &te) {
		return te.Trial
	}
	return -1
}
