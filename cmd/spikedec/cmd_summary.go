// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/emer/etable/etable"
	"github.com/emer/spikedec/results"
	"github.com/spf13/cobra"
)

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary [results.csv]",
		Short: "Summarize stored outcomes",
		Long: `Print the response percentages and reaction time statistics of a batch,
read from an outcome file or from a run in an SQLite database.

Examples:
  spikedec summary results.csv
  spikedec summary --sqlite runs.db --run direct
  spikedec summary results.csv --groups`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _ := cmd.Flags().GetString("sqlite")
			run, _ := cmd.Flags().GetString("run")
			groups, _ := cmd.Flags().GetBool("groups")

			var ocs []results.Outcome
			var err error
			switch {
			case db != "":
				ocs, err = loadSQLite(cmd.Context(), db, run)
			case len(args) == 1:
				ocs, err = results.OpenCSV(args[0])
			default:
				return fmt.Errorf("summary needs an outcome file or --sqlite")
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, results.SummarizeOutcomes(ocs).String())
			if groups {
				dt := results.NewTable("Outcomes")
				for _, oc := range ocs {
					results.AppendRow(dt, oc)
				}
				return results.GroupTable(dt).WriteCSV(out, etable.Tab, etable.Headers)
			}
			return nil
		},
	}
	cmd.Flags().String("sqlite", "", "SQLite database to read from")
	cmd.Flags().String("run", "", "Run name in the database")
	cmd.Flags().Bool("groups", false, "Also print the per response group table")
	return cmd
}

func loadSQLite(ctx context.Context, fn, run string) ([]results.Outcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	st := results.NewSQLiteStore(fn)
	if err := st.Init(ctx); err != nil {
		return nil, err
	}
	defer st.Close()
	if run == "" {
		runs, err := st.Runs(ctx)
		if err != nil {
			return nil, err
		}
		if len(runs) != 1 {
			return nil, fmt.Errorf("database %s holds runs %v: choose one with --run", fn, runs)
		}
		run = runs[0]
	}
	ocs, ok, err := st.GetOutcomes(ctx, run)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("database %s has no run %q", fn, run)
	}
	return ocs, nil
}
