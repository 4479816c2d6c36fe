// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math/rand"

	"github.com/emer/spikedec/probe"
	"github.com/spf13/cobra"
)

func newProbeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Drive a single neuron and record its potential",
		Long: `Drive a single LIF or Izhikevich neuron with one Continuous or Poisson
input and report its spikes.  The recorded potential and input current can
be written as a table.

Examples:
  spikedec probe --model Izhikevich --type C --w 0.8
  spikedec probe --model LIF --input Poisson --rate 0.4 --w 0.45 --out lif.tsv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fl := cmd.Flags()
			pp := probe.Params{}
			pp.Defaults()
			model, _ := fl.GetString("model")
			if err := pp.Model.FromString(model); err != nil {
				return fmt.Errorf("unknown model %q", model)
			}
			typ, _ := fl.GetString("type")
			if err := pp.Type.FromString(typ); err != nil {
				return fmt.Errorf("unknown Izhikevich type %q", typ)
			}
			input, _ := fl.GetString("input")
			if err := pp.Input.FromString(input); err != nil {
				return fmt.Errorf("unknown input kind %q", input)
			}
			pp.W, _ = fl.GetFloat32("w")
			pp.Rate, _ = fl.GetFloat32("rate")
			pp.Onset, _ = fl.GetFloat32("onset")
			pp.Offset, _ = fl.GetFloat32("offset")
			pp.HasOffset = pp.Offset >= 0
			pp.T, _ = fl.GetFloat32("T")
			pp.Dt, _ = fl.GetFloat32("dt")
			pp.Bg, _ = fl.GetBool("bg")
			seed, _ := fl.GetInt64("seed")

			pb, err := probe.Run(pp, rand.New(rand.NewSource(seed)))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			nrn := pb.Net.Neuron(pb.Nrn)
			fmt.Fprintf(out, "%s: %d spikes in %g msec\n", nrn.Nm, len(pb.Spikes), pp.T)
			if len(pb.Spikes) > 0 {
				fmt.Fprintf(out, "first spike at %g msec\n", pb.Spikes[0])
			}
			if fn, _ := fl.GetString("out"); fn != "" {
				return saveTable(pb.Table(), fn)
			}
			return nil
		},
	}
	cmd.Flags().String("model", "Izhikevich", "Neuron model: LIF or Izhikevich")
	cmd.Flags().String("type", "A", "Izhikevich parameter set A to F")
	cmd.Flags().String("input", "Continuous", "Input kind: Continuous or Poisson")
	cmd.Flags().Float32("w", 0.75, "Input weight")
	cmd.Flags().Float32("rate", 0.4, "Poisson input rate in spikes / msec")
	cmd.Flags().Float32("onset", 200, "Input onset in msec")
	cmd.Flags().Float32("offset", 650, "Input offset in msec, negative for none")
	cmd.Flags().Float32("T", 800, "Duration in msec")
	cmd.Flags().Float32("dt", 1, "Integration step in msec")
	cmd.Flags().Bool("bg", false, "Keep the background input of the neuron")
	cmd.Flags().Int64("seed", 1, "Random seed")
	cmd.Flags().String("out", "", "Write the recorded traces to this file")
	return cmd
}
