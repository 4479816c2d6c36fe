// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spike is the simulation engine for small networks of spiking point
neurons making a binary perceptual decision.

A Network holds arenas of Neurons and Synapses addressed by NeuronIndex and
SynapseIndex handles.  Every neuron has its own background Poisson synapse.
Synapses are shared by handle: Project registers the same synapse as an
input of many neurons, and AddInputs never adds a handle twice.

A Trial draws a random 2-bit input pattern and builds a Scaffold holding
two Poisson input synapses (in0, in1, on from 300 msec with rate 0.75 for a
1 bit) and two LIF output neurons (out0, out1).  A Circuit extends the
scaffold, after which Finalize computes the node set (deduplicated and
sorted by name) and the synapse set (the union of all node inputs and the
declared synapses).

Each step of Trial.Simulate runs two phases in fixed order: every synapse
in the synapse set is advanced, then every node is stepped on the sum of
its input currents.  The recorded neurons and synapses are then stored,
and the spikes of the two outputs are pushed into a sliding window.  Once
the window is full, the first output whose spike count exceeds
Thr * Window * dt decides the trial.
*/
package spike
