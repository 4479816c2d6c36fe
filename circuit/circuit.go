// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package circuit reads declarative circuit descriptions that extend the
fixed scaffold of a trial (inputs in0, in1 and outputs out0, out1).

A description is YAML data, never code: it declares neurons and synapses,
wires them together by symbol, and lists which neurons join the stepped
node set and which synapses join the declared synapse collection.  A
neuron declaration with a count makes a group name[0] .. name[count-1],
and a Neuronal synapse whose pre is a group makes one synapse per member.

All symbols and references are checked by Parse, so a Circuit that parsed
without error builds without error into any trial.
*/
package circuit

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/emer/emergent/params"
	"github.com/emer/spikedec/izhi"
	"github.com/emer/spikedec/spike"
	"github.com/goki/kigen/ordmap"
	"gopkg.in/yaml.v3"
)

// NeuronDecl declares one neuron, or a group of Count neurons
type NeuronDecl struct {
	Name   string   `yaml:"name"`
	Model  string   `yaml:"model"`
	Type   string   `yaml:"type,omitempty"`
	Count  int      `yaml:"count,omitempty"`
	Inputs []string `yaml:"inputs,omitempty"`
	Label  string   `yaml:"label,omitempty"`
	Class  string   `yaml:"class,omitempty"`
	Record bool     `yaml:"record,omitempty"`
}

// SynapseDecl declares one synapse, or one per member of a pre group
type SynapseDecl struct {
	Name   string   `yaml:"name"`
	Kind   string   `yaml:"kind"`
	W      *float32 `yaml:"w,omitempty"`
	Rate   *float32 `yaml:"rate,omitempty"`
	Onset  float32  `yaml:"onset,omitempty"`
	Offset *float32 `yaml:"offset,omitempty"`
	Pre    string   `yaml:"pre,omitempty"`
	Post   []string `yaml:"post,omitempty"`
	Label  string   `yaml:"label,omitempty"`
	Class  string   `yaml:"class,omitempty"`
	Record bool     `yaml:"record,omitempty"`
}

// ProjectDecl projects an already declared synapse onto more neurons,
// e.g., a scaffold input onto an output
type ProjectDecl struct {
	Syn  string   `yaml:"syn"`
	Post []string `yaml:"post"`
}

// SelDecl is one params selector applied to the built neurons and synapses
type SelDecl struct {
	Sel    string            `yaml:"sel"`
	Desc   string            `yaml:"desc,omitempty"`
	Params map[string]string `yaml:"params"`
}

// Circuit is a parsed and checked circuit description.  It is read-only
// after Parse and may be built into any number of trials concurrently.
type Circuit struct {
	Name     string        `yaml:"name,omitempty"`
	Desc     string        `yaml:"desc,omitempty"`
	Neurons  []NeuronDecl  `yaml:"neurons,omitempty"`
	Synapses []SynapseDecl `yaml:"synapses,omitempty"`
	Project  []ProjectDecl `yaml:"project,omitempty"`
	Nodes    []string      `yaml:"nodes,omitempty"`
	Collect  []string      `yaml:"collect,omitempty"`
	Record   []string      `yaml:"record,omitempty"`
	Params   []SelDecl     `yaml:"params,omitempty"`

	syms *ordmap.Map[string, *symbol]
}

// symKinds distinguishes neuron and synapse symbols
type symKinds int

const (
	neuronSym symKinds = iota
	synapseSym
)

// symbol is one entry of the symbol table: a single entity or a group
type symbol struct {
	kind    symKinds
	model   spike.NeuronKinds
	syn     spike.SynapseKinds
	typ     izhi.Types
	members []string
	decl    int
}

// Scaffold symbols, defined in every circuit
var predeclared = []struct {
	name string
	kind symKinds
}{
	{"in0", synapseSym},
	{"in1", synapseSym},
	{"out0", neuronSym},
	{"out1", neuronSym},
}

// Load reads and parses a circuit description file
func Load(filename string) (*Circuit, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ci, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("circuit %s: %w", filename, err)
	}
	if ci.Name == "" {
		ci.Name = filename
	}
	return ci, nil
}

// ParseString parses a circuit description held in a string
func ParseString(s string) (*Circuit, error) {
	return Parse(bytes.NewBufferString(s))
}

// Parse decodes a circuit description and checks every declaration and
// reference.  Problems are reported as *spike.SpecError.
func Parse(r io.Reader) (*Circuit, error) {
	ci := &Circuit{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(ci); err != nil && !errors.Is(err, io.EOF) {
		return nil, &spike.SpecError{Op: "circuit.Parse", Msg: "invalid description", Err: err}
	}
	if err := ci.check(); err != nil {
		return nil, err
	}
	return ci, nil
}

func specf(format string, args ...any) error {
	return spike.Specf("circuit.Parse", format, args...)
}

// check builds the symbol table and verifies every reference
func (ci *Circuit) check() error {
	ci.syms = ordmap.New[string, *symbol]()
	for _, pd := range predeclared {
		ci.syms.Add(pd.name, &symbol{kind: pd.kind, members: []string{pd.name}, decl: -1})
	}
	addSym := func(name string, sym *symbol) error {
		if name == "" {
			return specf("declaration without a name")
		}
		if _, has := ci.syms.Map[name]; has {
			return specf("symbol %q is declared more than once", name)
		}
		ci.syms.Add(name, sym)
		return nil
	}

	for di := range ci.Neurons {
		nd := &ci.Neurons[di]
		sym := &symbol{kind: neuronSym, decl: di}
		if err := sym.model.FromString(nd.Model); err != nil {
			return specf("neuron %q: unknown model %q", nd.Name, nd.Model)
		}
		if sym.model == spike.Izhikevich {
			typ := nd.Type
			if typ == "" {
				typ = "A"
			}
			if err := sym.typ.FromString(typ); err != nil {
				return specf("neuron %q: unknown Izhikevich type %q", nd.Name, nd.Type)
			}
		} else if nd.Type != "" {
			return specf("neuron %q: type only applies to Izhikevich neurons", nd.Name)
		}
		if nd.Count < 0 {
			return specf("neuron %q: negative count %d", nd.Name, nd.Count)
		}
		sym.members = memberNames(nd.Name, nd.Count)
		if err := addSym(nd.Name, sym); err != nil {
			return err
		}
		if nd.Count > 0 {
			for _, mn := range sym.members {
				if err := addSym(mn, &symbol{kind: neuronSym, model: sym.model, typ: sym.typ, members: []string{mn}, decl: di}); err != nil {
					return err
				}
			}
		}
	}

	for di := range ci.Synapses {
		sd := &ci.Synapses[di]
		sym := &symbol{kind: synapseSym, decl: di}
		if err := sym.syn.FromString(sd.Kind); err != nil {
			return specf("synapse %q: unknown kind %q", sd.Name, sd.Kind)
		}
		if sd.Offset != nil && *sd.Offset < sd.Onset {
			return specf("synapse %q: offset %g is before onset %g", sd.Name, *sd.Offset, sd.Onset)
		}
		switch sym.syn {
		case spike.Neuronal:
			if sd.Pre == "" {
				return specf("neuronal synapse %q has no pre neuron", sd.Name)
			}
			pre, err := ci.lookup(sd.Pre, neuronSym, "pre of synapse "+sd.Name)
			if err != nil {
				return err
			}
			if len(pre.members) > 1 || pre.members[0] != sd.Pre {
				sym.members = memberNames(sd.Name, len(pre.members))
			}
		default:
			if sd.Pre != "" {
				return specf("synapse %q: pre only applies to Neuronal synapses", sd.Name)
			}
			if sd.Rate != nil && sym.syn != spike.Poisson {
				return specf("synapse %q: rate only applies to Poisson synapses", sd.Name)
			}
		}
		if len(sym.members) == 0 {
			sym.members = []string{sd.Name}
		}
		if err := addSym(sd.Name, sym); err != nil {
			return err
		}
		if len(sym.members) > 1 || sym.members[0] != sd.Name {
			for _, mn := range sym.members {
				if err := addSym(mn, &symbol{kind: synapseSym, syn: sym.syn, members: []string{mn}, decl: di}); err != nil {
					return err
				}
			}
		}
	}

	// references, now that all symbols are known
	for _, nd := range ci.Neurons {
		for _, in := range nd.Inputs {
			if _, err := ci.lookup(in, synapseSym, "inputs of neuron "+nd.Name); err != nil {
				return err
			}
		}
	}
	for _, sd := range ci.Synapses {
		for _, post := range sd.Post {
			if _, err := ci.lookup(post, neuronSym, "post of synapse "+sd.Name); err != nil {
				return err
			}
		}
	}
	for _, pd := range ci.Project {
		if _, err := ci.lookup(pd.Syn, synapseSym, "project"); err != nil {
			return err
		}
		for _, post := range pd.Post {
			if _, err := ci.lookup(post, neuronSym, "project of "+pd.Syn); err != nil {
				return err
			}
		}
	}
	nodes := map[string]bool{"out0": true, "out1": true}
	for _, nm := range ci.Nodes {
		sym, err := ci.lookup(nm, neuronSym, "nodes")
		if err != nil {
			return err
		}
		for _, mn := range sym.members {
			nodes[mn] = true
		}
	}
	for _, nm := range ci.Collect {
		if _, err := ci.lookup(nm, synapseSym, "collect"); err != nil {
			return err
		}
	}
	for _, nm := range ci.Record {
		if _, has := ci.syms.Map[nm]; !has {
			return specf("record: unknown symbol %q", nm)
		}
	}
	for _, sd := range ci.Synapses {
		if sd.Pre == "" {
			continue
		}
		pre, _ := ci.lookup(sd.Pre, neuronSym, "")
		for _, mn := range pre.members {
			if !nodes[mn] {
				log.Printf("circuit: pre neuron %q of synapse %q is not in nodes and will never spike\n", mn, sd.Name)
			}
		}
	}

	for _, sl := range ci.Params {
		if sl.Sel == "" || len(sl.Params) == 0 {
			return specf("params selector without sel or params")
		}
	}
	return nil
}

// lookup returns the symbol for name, which must be of the given kind
func (ci *Circuit) lookup(name string, kind symKinds, ctxt string) (*symbol, error) {
	idx, has := ci.syms.Map[name]
	if !has {
		return nil, specf("%s: unknown symbol %q", ctxt, name)
	}
	sym := ci.syms.Order[idx].Val
	if sym.kind != kind {
		want := "neuron"
		if kind == synapseSym {
			want = "synapse"
		}
		return nil, specf("%s: %q is not a %s", ctxt, name, want)
	}
	return sym, nil
}

// memberNames returns name[0] .. name[n-1], or just name for n == 0
func memberNames(name string, n int) []string {
	if n == 0 {
		return []string{name}
	}
	mns := make([]string, n)
	for i := range mns {
		mns[i] = fmt.Sprintf("%s[%d]", name, i)
	}
	return mns
}

// Sheet returns a new params sheet made from the circuit params, empty if
// there are none.  Applying a sheet counts matches in its selectors, so
// every trial gets its own.
func (ci *Circuit) Sheet() *params.Sheet {
	sh := make(params.Sheet, 0, len(ci.Params))
	for _, sl := range ci.Params {
		ps := make(params.Params, len(sl.Params))
		for k, v := range sl.Params {
			ps[k] = v
		}
		sh = append(sh, &params.Sel{Sel: sl.Sel, Desc: sl.Desc, Params: ps})
	}
	return &sh
}

// Symbols returns all symbol names in declaration order, including the
// scaffold symbols and group members.
func (ci *Circuit) Symbols() []string {
	nms := make([]string, len(ci.syms.Order))
	for i, kv := range ci.syms.Order {
		nms[i] = kv.Key
	}
	return nms
}
