// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// spikedec runs perceptual decision trials on spiking neuron circuits.
package main

import (
	"fmt"
	"os"

	"github.com/emer/etable/etable"
	"github.com/emer/spikedec/circuit"
	"github.com/emer/spikedec/config"
	"github.com/emer/spikedec/spike"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spikedec",
		Short: "Spiking neuron perceptual decision trials",
		Long: `spikedec builds a two-input, two-output spiking neuron circuit, presents
a random binary pattern on its inputs and reports which output reaches the
decision threshold first, and when.

Circuits extend the fixed scaffold (inputs in0, in1 and outputs out0, out1)
and are described in YAML files.  Batch runs are configured in TOML.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "TOML run configuration file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Report network sizes and step timing")

	rootCmd.AddCommand(
		newRunCmd(),
		newBatchCmd(),
		newSummaryCmd(),
		newProbeCmd(),
		newValidateCmd(),
	)
	return rootCmd
}

// loadConfig returns the configuration named by --config, or the defaults
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	fn, _ := cmd.Flags().GetString("config")
	if fn == "" {
		cf := &config.Config{}
		cf.Defaults()
		return cf, nil
	}
	return config.Load(fn)
}

// loadCircuit parses a circuit file.  An empty name is the bare scaffold.
func loadCircuit(fn string) (spike.Circuit, error) {
	if fn == "" {
		return nil, nil
	}
	ci, err := circuit.Load(fn)
	if err != nil {
		return nil, err
	}
	return ci, nil
}

// saveTable writes a table as tab separated values with headers
func saveTable(dt *etable.Table, fn string) error {
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	if err := dt.WriteCSV(f, etable.Tab, etable.Headers); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
