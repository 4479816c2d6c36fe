// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package circuit

import (
	"fmt"

	"github.com/emer/spikedec/spike"
)

// handles maps every single-entity symbol to its handle in one trial graph
type handles struct {
	neurons  map[string]spike.NeuronIndex
	synapses map[string]spike.SynapseIndex
}

// Build extends the scaffold of a trial with the declared neurons and
// synapses.  Circuit implements spike.Circuit.
func (ci *Circuit) Build(sc *spike.Scaffold) error {
	if ci.syms == nil {
		if err := ci.check(); err != nil {
			return err
		}
	}
	net := sc.Net
	hs := handles{
		neurons:  map[string]spike.NeuronIndex{"out0": sc.Out[0], "out1": sc.Out[1]},
		synapses: map[string]spike.SynapseIndex{"in0": sc.In[0], "in1": sc.In[1]},
	}

	for _, nd := range ci.Neurons {
		sym, err := ci.lookup(nd.Name, neuronSym, "neurons")
		if err != nil {
			return err
		}
		for i, mn := range sym.members {
			var ni spike.NeuronIndex
			label := displayName(nd.Label, mn, i, nd.Count > 0)
			switch sym.model {
			case spike.LIF:
				ni = net.NewLIF(label)
			case spike.Izhikevich:
				ni = net.NewIzhikevich(label, sym.typ)
			}
			nrn := net.Neuron(ni)
			nrn.Cls = nd.Class
			nrn.Record = nd.Record
			hs.neurons[mn] = ni
		}
	}

	for _, sd := range ci.Synapses {
		sym, err := ci.lookup(sd.Name, synapseSym, "synapses")
		if err != nil {
			return err
		}
		var pres []string
		if sym.syn == spike.Neuronal {
			pre, err := ci.lookup(sd.Pre, neuronSym, "pre of synapse "+sd.Name)
			if err != nil {
				return err
			}
			pres = pre.members
		}
		for i, mn := range sym.members {
			label := displayName(sd.Label, mn, i, mn != sd.Name)
			si, err := ci.newSynapse(net, &sd, sym.syn, label, pres, i, &hs)
			if err != nil {
				return err
			}
			sy := net.Synapse(si)
			sy.Cls = sd.Class
			sy.Record = sd.Record
			hs.synapses[mn] = si
			for _, post := range sd.Post {
				tsym, _ := ci.lookup(post, neuronSym, "")
				for _, tn := range tsym.members {
					if err := net.Project(si, hs.neurons[tn]); err != nil {
						return err
					}
				}
			}
		}
	}

	for _, nd := range ci.Neurons {
		if len(nd.Inputs) == 0 {
			continue
		}
		sym, _ := ci.lookup(nd.Name, neuronSym, "")
		var syns []spike.SynapseIndex
		for _, in := range nd.Inputs {
			isym, _ := ci.lookup(in, synapseSym, "")
			for _, smn := range isym.members {
				syns = append(syns, hs.synapses[smn])
			}
		}
		for _, mn := range sym.members {
			if err := net.AddInputs(hs.neurons[mn], syns...); err != nil {
				return err
			}
		}
	}

	for _, pd := range ci.Project {
		ssym, _ := ci.lookup(pd.Syn, synapseSym, "")
		for _, post := range pd.Post {
			tsym, _ := ci.lookup(post, neuronSym, "")
			for _, smn := range ssym.members {
				for _, tn := range tsym.members {
					if err := net.Project(hs.synapses[smn], hs.neurons[tn]); err != nil {
						return err
					}
				}
			}
		}
	}

	for _, nm := range ci.Nodes {
		sym, _ := ci.lookup(nm, neuronSym, "")
		for _, mn := range sym.members {
			sc.AddNodes(hs.neurons[mn])
		}
	}
	for _, nm := range ci.Collect {
		sym, _ := ci.lookup(nm, synapseSym, "")
		for _, mn := range sym.members {
			sc.AddSynapses(hs.synapses[mn])
		}
	}
	for _, nm := range ci.Record {
		sym := ci.syms.Order[ci.syms.Map[nm]].Val
		for _, mn := range sym.members {
			if sym.kind == neuronSym {
				net.Neuron(hs.neurons[mn]).Record = true
			} else {
				net.Synapse(hs.synapses[mn]).Record = true
			}
		}
	}
	if len(ci.Params) > 0 {
		sc.AddSheet(ci.Sheet())
	}
	return nil
}

// newSynapse creates the i-th synapse of a declaration
func (ci *Circuit) newSynapse(net *spike.Network, sd *SynapseDecl, kind spike.SynapseKinds, label string, pres []string, i int, hs *handles) (spike.SynapseIndex, error) {
	w := float32(0.1)
	if sd.W != nil {
		w = *sd.W
	}
	var si spike.SynapseIndex
	switch kind {
	case spike.Continuous:
		si = net.NewContinuous(label, w, sd.Onset)
	case spike.Poisson:
		rate := float32(0.5)
		if sd.Rate != nil {
			rate = *sd.Rate
		}
		si = net.NewPoisson(label, rate, w, sd.Onset)
	case spike.Neuronal:
		var err error
		si, err = net.NewNeuronal(label, w, hs.neurons[pres[i]])
		if err != nil {
			return -1, err
		}
	}
	if sd.Offset != nil {
		net.Synapse(si).Win.SetOffset(*sd.Offset)
	}
	return si, nil
}

// displayName is the label of a declared entity, or the symbol itself.
// Group members get their index appended to a label.
func displayName(label, member string, i int, group bool) string {
	if label == "" {
		return member
	}
	if group {
		return fmt.Sprintf("%s[%d]", label, i)
	}
	return label
}
