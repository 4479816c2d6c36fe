// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math/rand"

	"github.com/emer/spikedec/config"
	"github.com/emer/spikedec/results"
	"github.com/emer/spikedec/spike"
	"github.com/spf13/cobra"
)

// addTrialFlags adds the flags that override the [Run] and [Trial] config
func addTrialFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("seed", 1, "Random seed")
	cmd.Flags().Float32("T", 2000, "Time horizon in msec")
	cmd.Flags().Float32("dt", 1, "Integration step in msec")
	cmd.Flags().Bool("rand-input", false, "Shuffle the input pattern")
	cmd.Flags().String("scoring", "MatchInput", "Scoring rule: MatchInput or XOR")
}

// applyTrialFlags overrides config values with the flags set on the command line
func applyTrialFlags(cmd *cobra.Command, cf *config.Config, args []string) error {
	fl := cmd.Flags()
	if len(args) > 0 {
		cf.Run.Circuit = args[0]
	}
	if fl.Changed("seed") {
		cf.Run.Seed, _ = fl.GetInt64("seed")
	}
	if fl.Changed("T") {
		cf.Trial.T, _ = fl.GetFloat32("T")
	}
	if fl.Changed("dt") {
		cf.Trial.Dt, _ = fl.GetFloat32("dt")
	}
	if fl.Changed("rand-input") {
		cf.Trial.RandInput, _ = fl.GetBool("rand-input")
	}
	if fl.Changed("scoring") {
		cf.Run.Scoring, _ = fl.GetString("scoring")
	}
	return cf.Validate()
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [circuit.yaml]",
		Short: "Run a single decision trial",
		Long: `Run a single decision trial and report the decision and its time.

Without a circuit file the bare scaffold is run, in which only background
input reaches the outputs.

Examples:
  spikedec run examples/circuits/direct.yaml
  spikedec run examples/circuits/layer.yaml --seed 7 --traces trace.tsv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := applyTrialFlags(cmd, cf, args); err != nil {
				return err
			}
			if fn, _ := cmd.Flags().GetString("traces"); fn != "" {
				cf.Log.Traces = fn
			}
			verbose, _ := cmd.Flags().GetBool("verbose")

			circ, err := loadCircuit(cf.Run.Circuit)
			if err != nil {
				return err
			}
			bp, err := cf.BatchParams()
			if err != nil {
				return err
			}
			tr, err := spike.NewTrial("run", bp.Trial, circ, rand.New(rand.NewSource(cf.Run.Seed)))
			if err != nil {
				return err
			}
			tr.Net.Timing = verbose
			rs, err := tr.Simulate(bp.T, bp.Dt)
			if err != nil {
				return err
			}
			oc := results.NewOutcome(0, bp.Scoring, rs)

			out := cmd.OutOrStdout()
			if rs.Decided() {
				fmt.Fprintf(out, "decision: out%d at %g msec (%d steps)\n", rs.Decision, rs.Time, rs.Steps)
			} else {
				fmt.Fprintf(out, "no decision within %g msec\n", rs.T)
			}
			fmt.Fprintf(out, "pattern: %d%d  response: %s\n", rs.Pattern[0], rs.Pattern[1], oc.Response.Code())
			if verbose {
				fmt.Fprint(out, tr.Net.SizeReport())
				fmt.Fprint(out, tr.Net.TimerReport())
			}
			if cf.Log.Traces != "" {
				if err := saveTable(tr.TraceTable(), cf.Log.Traces); err != nil {
					return err
				}
			}
			return nil
		},
	}
	addTrialFlags(cmd)
	cmd.Flags().String("traces", "", "Write the recorded traces to this file")
	return cmd
}
