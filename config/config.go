// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the run configuration of the spikedec tool, read
// from a TOML file.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/emer/spikedec/batch"
	"github.com/emer/spikedec/results"
)

// Run configures which circuit runs and how many times
type Run struct {
	Circuit         string `desc:"circuit description file, empty for the bare scaffold"`
	Trials          int    `def:"10" desc:"number of trials"`
	Seed            int64  `def:"1" desc:"base random seed"`
	Threads         int    `def:"1" desc:"number of worker goroutines"`
	ContinueOnError bool   `desc:"skip failing trials"`
	Scoring         string `def:"MatchInput" desc:"scoring rule: MatchInput or XOR"`
}

// Trial configures each trial
type Trial struct {
	T         float32 `def:"2000" desc:"time horizon in msec"`
	Dt        float32 `def:"1" desc:"integration step in msec"`
	RandInput bool    `desc:"shuffle the input pattern"`
}

// Log configures the output files.  Empty names are not written.
type Log struct {
	Results string `def:"results.csv" desc:"outcome table file (tab separated)"`
	SQLite  string `desc:"SQLite database that outcomes are added to"`
	Traces  string `desc:"trace table file of the first trial"`
}

// Config is the full run configuration
type Config struct {
	Run   Run
	Trial Trial
	Log   Log
}

func (cf *Config) Defaults() {
	cf.Run = Run{Trials: 10, Seed: 1, Threads: 1, Scoring: results.MatchInput.String()}
	cf.Trial = Trial{T: 2000, Dt: 1}
	cf.Log = Log{Results: "results.csv"}
}

// Load reads a TOML configuration file on top of the defaults.  Unknown
// keys are an error.
func Load(filename string) (*Config, error) {
	cf := &Config{}
	cf.Defaults()
	md, err := toml.DecodeFile(filename, cf)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	if ud := md.Undecoded(); len(ud) > 0 {
		keys := make([]string, len(ud))
		for i, k := range ud {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys: %s", filename, strings.Join(keys, ", "))
	}
	if err := cf.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	return cf, nil
}

// Validate checks the values that cannot be clamped into range
func (cf *Config) Validate() error {
	if _, err := cf.Scoring(); err != nil {
		return err
	}
	if cf.Trial.Dt <= 0 {
		return fmt.Errorf("Trial.Dt must be positive, not %g", cf.Trial.Dt)
	}
	if cf.Run.Trials < 0 {
		return fmt.Errorf("Run.Trials must not be negative, not %d", cf.Run.Trials)
	}
	return nil
}

// Scoring returns the scoring rule
func (cf *Config) Scoring() (results.Scorings, error) {
	var sc results.Scorings
	if err := sc.FromString(cf.Run.Scoring); err != nil {
		return sc, fmt.Errorf("Run.Scoring: unknown rule %q", cf.Run.Scoring)
	}
	return sc, nil
}

// BatchParams returns the batch parameters of the configuration
func (cf *Config) BatchParams() (batch.Params, error) {
	bp := batch.Params{}
	bp.Defaults()
	sc, err := cf.Scoring()
	if err != nil {
		return bp, err
	}
	bp.Scoring = sc
	bp.Trials = cf.Run.Trials
	bp.Seed = cf.Run.Seed
	bp.Threads = cf.Run.Threads
	bp.ContinueOnError = cf.Run.ContinueOnError
	bp.T = cf.Trial.T
	bp.Dt = cf.Trial.Dt
	bp.Trial.RandInput = cf.Trial.RandInput
	return bp, nil
}

// Write writes the configuration as TOML
func (cf *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(cf)
}

// Save writes the configuration to the named file
func (cf *Config) Save(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := cf.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
