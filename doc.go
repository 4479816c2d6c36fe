// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spikedec is the overall repository for the spiking neuron perceptual
decision engine implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* spike: the core engine: neuron and synapse arenas, the network step loop,
the trial scaffold (inputs in0, in1 and outputs out0, out1), recording, and
the windowed spike-count decision rule.

* lif, izhi: the leaky integrate-and-fire and Izhikevich neuron models.

* chans: the AMPA-like current decay of spiking synapses and the onset /
offset activity window.

* circuit: declarative YAML circuit descriptions that extend the scaffold.

* results, batch: scoring of decisions into outcomes, batches of seeded
trials, outcome files, SQLite storage, and summary statistics.

* probe: a single-neuron harness for exploring neuron responses.

* config, cmd/spikedec: the TOML run configuration and the command line tool.

* examples: circuit descriptions, an example configuration, and runnable
programs: bench for timing large circuits and ficurve for tabulating the
firing rate of each neuron model against input current.
*/
package spikedec
