// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/emer/etable/etable"
	"github.com/emer/spikedec/batch"
	"github.com/emer/spikedec/results"
	"github.com/emer/spikedec/spike"
	"github.com/spf13/cobra"
)

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [circuit.yaml]",
		Short: "Run and score a batch of decision trials",
		Long: `Run a batch of independent decision trials of one circuit, score each
decision and write the outcomes.  Trial i uses seed + i.

Examples:
  spikedec batch --config examples/config.toml
  spikedec batch examples/circuits/layer.yaml -n 100 -j 4 --results out.tsv
  spikedec batch examples/circuits/direct.yaml --sqlite runs.db --run direct`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			fl := cmd.Flags()
			if fl.Changed("trials") {
				cf.Run.Trials, _ = fl.GetInt("trials")
			}
			if fl.Changed("threads") {
				cf.Run.Threads, _ = fl.GetInt("threads")
			}
			if fl.Changed("continue") {
				cf.Run.ContinueOnError, _ = fl.GetBool("continue")
			}
			if fl.Changed("results") {
				cf.Log.Results, _ = fl.GetString("results")
			}
			if fl.Changed("sqlite") {
				cf.Log.SQLite, _ = fl.GetString("sqlite")
			}
			if fl.Changed("traces") {
				cf.Log.Traces, _ = fl.GetString("traces")
			}
			if err := applyTrialFlags(cmd, cf, args); err != nil {
				return err
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
			name, _ := fl.GetString("run")
			if name == "" {
				name = runName(cf.Run.Circuit)
			}
			rn := batch.NewRunner(name, circ)
			rn.Params = bp

			var traces *etable.Table
			if cf.Log.Traces != "" {
				rn.OnTrial = func(i int, tr *spike.Trial, oc results.Outcome) {
					if i == 0 {
						traces = tr.TraceTable()
					}
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			ocs, err := rn.Run(ctx)
			if err != nil && ocs == nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(rn.Errs) > 0 {
				fmt.Fprintf(out, "skipped %d failed trials\n", len(rn.Errs))
			}
			fmt.Fprint(out, results.SummarizeOutcomes(ocs).String())
			if verbose {
				fmt.Fprintf(out, "batch %s: %d trials in %.3g secs\n", name, len(ocs), rn.Timer.TotalSecs())
			}
			if cf.Log.Results != "" {
				if serr := results.SaveCSV(cf.Log.Results, ocs); serr != nil {
					return serr
				}
			}
			if cf.Log.SQLite != "" {
				if serr := saveSQLite(ctx, cf.Log.SQLite, name, ocs); serr != nil {
					return serr
				}
			}
			if traces != nil {
				if serr := saveTable(traces, cf.Log.Traces); serr != nil {
					return serr
				}
			}
			return err
		},
	}
	addTrialFlags(cmd)
	cmd.Flags().IntP("trials", "n", 10, "Number of trials")
	cmd.Flags().IntP("threads", "j", 1, "Number of worker goroutines")
	cmd.Flags().Bool("continue", false, "Skip failing trials instead of stopping")
	cmd.Flags().String("results", "results.csv", "Outcome table file, empty for none")
	cmd.Flags().String("sqlite", "", "SQLite database to add the outcomes to")
	cmd.Flags().String("run", "", "Run name in the database (default: circuit file name)")
	cmd.Flags().String("traces", "", "Write the traces of the first trial to this file")
	return cmd
}

// runName is the base name of the circuit file, or scaffold
func runName(circ string) string {
	if circ == "" {
		return "scaffold"
	}
	return strings.TrimSuffix(filepath.Base(circ), filepath.Ext(circ))
}

func saveSQLite(ctx context.Context, fn, run string, ocs []results.Outcome) error {
	st := results.NewSQLiteStore(fn)
	if err := st.Init(ctx); err != nil {
		return err
	}
	defer st.Close()
	return st.SaveOutcomes(ctx, run, ocs)
}
