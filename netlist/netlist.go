// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package netlist loads network descriptions from YAML and builds them into a
// moore.Network.
//
// A netlist lists machines from the mlib library and the wires between them:
//
//	workers: 2
//	machines:
//	  - name: osc
//	    kind: not
//	  - name: cnt
//	    kind: counter
//	    width: 4
//	wires:
//	  - osc.in[0] = osc.out[0]
//	  - cnt.in = osc.out
//	watch: [osc, cnt]
//
// See ParseWire for the wire syntax.
//
package netlist

import (
	"io"
	"os"

	"github.com/db47h/moore"
	"github.com/db47h/moore/mlib"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Machine describes a machine instance.
//
type Machine struct {
	// Instance name. Must be unique within a netlist.
	Name string `yaml:"name"`
	// Machine kind, see mlib.Kinds.
	Kind string `yaml:"kind"`
	// Bit width. Defaults to 1.
	Width int `yaml:"width,omitempty"`
	// Initial state.
	Init uint64 `yaml:"init,omitempty"`
	// Initial value of the input vector (64 first bits). Only relevant for
	// unwired inputs.
	Input uint64 `yaml:"input,omitempty"`
}

// Netlist is a network description.
//
type Netlist struct {
	// Worker goroutines used to step the network. See moore.WithWorkers.
	Workers int `yaml:"workers,omitempty"`
	// Memory budget in words. See moore.WithMaxWords.
	MaxWords int       `yaml:"max_words,omitempty"`
	Machines []Machine `yaml:"machines"`
	Wires    []string  `yaml:"wires,omitempty"`
	// Names of the machines whose output should be traced.
	// If empty, all machines are traced.
	Watch []string `yaml:"watch,omitempty"`
}

// Load reads a YAML netlist from r and validates it.
//
func Load(r io.Reader) (*Netlist, error) {
	var nl Netlist
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&nl); err != nil {
		return nil, errors.Wrap(err, "decode netlist")
	}
	if err := nl.Validate(); err != nil {
		return nil, err
	}
	return &nl, nil
}

// LoadFile reads a YAML netlist from the named file.
//
func LoadFile(name string) (*Netlist, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	nl, err := Load(f)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return nl, nil
}

// Validate checks machine names and kinds, wire syntax and watch names. It
// does not check wire bit ranges against machine widths; Build does.
//
func (nl *Netlist) Validate() error {
	if len(nl.Machines) == 0 {
		return errors.New("empty machine list")
	}
	if nl.Workers < 0 {
		return errors.Errorf("invalid worker count %d", nl.Workers)
	}
	if nl.MaxWords < 0 {
		return errors.Errorf("invalid memory budget %d", nl.MaxWords)
	}
	names := make(map[string]bool, len(nl.Machines))
	for i, m := range nl.Machines {
		if m.Name == "" {
			return errors.Errorf("machine #%d: missing name", i)
		}
		if names[m.Name] {
			return errors.Errorf("duplicate machine name %q", m.Name)
		}
		names[m.Name] = true
		if _, err := mlib.Lookup(m.Kind, m.Width, m.Init); err != nil {
			return errors.Wrapf(err, "machine %q", m.Name)
		}
	}
	for _, ws := range nl.Wires {
		w, err := ParseWire(ws)
		if err != nil {
			return err
		}
		for _, e := range []Endpoint{w.Sink, w.Source} {
			if !names[e.Machine] {
				return errors.Errorf("wire %q: unknown machine %q", ws, e.Machine)
			}
		}
	}
	for _, n := range nl.Watch {
		if !names[n] {
			return errors.Errorf("watch: unknown machine %q", n)
		}
	}
	return nil
}

// Options returns the network options set in the netlist.
//
func (nl *Netlist) Options() []moore.Option {
	var opts []moore.Option
	if nl.Workers > 0 {
		opts = append(opts, moore.WithWorkers(nl.Workers))
	}
	if nl.MaxWords > 0 {
		opts = append(opts, moore.WithMaxWords(nl.MaxWords))
	}
	return opts
}
