// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math/rand"

	"github.com/emer/spikedec/circuit"
	"github.com/emer/spikedec/spike"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate circuit.yaml...",
		Short: "Check circuit descriptions",
		Long: `Check circuit descriptions for unknown symbols, kind mismatches,
duplicate declarations and invalid parameters, and build each one into a
trial to report the size of the resulting network.

Examples:
  spikedec validate examples/circuits/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			out := cmd.OutOrStdout()
			nbad := 0
			for _, fn := range args {
				ci, err := circuit.Load(fn)
				if err == nil {
					var tr *spike.Trial
					tp := spike.TrialParams{}
					tp.Defaults()
					tr, err = spike.NewTrial(ci.Name, tp, ci, rand.New(rand.NewSource(1)))
					if err == nil {
						net := tr.Net
						fmt.Fprintf(out, "%s: ok, %d symbols, %d nodes, %d synapses\n", fn, len(ci.Symbols()), len(net.Nodes), len(net.SynSet))
						if verbose {
							fmt.Fprint(out, net.SizeReport())
						}
						continue
					}
				}
				nbad++
				fmt.Fprintf(out, "%s: %v\n", fn, err)
			}
			if nbad > 0 {
				return fmt.Errorf("%d of %d circuits are invalid", nbad, len(args))
			}
			return nil
		},
	}
	return cmd
}
