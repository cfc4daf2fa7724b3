// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package mlib

import (
	"sort"
	"strings"

	"github.com/db47h/moore"
	"github.com/pkg/errors"
)

// A NewSpecFn returns a new spec for the given bit width.
//
type NewSpecFn func(bits int) *moore.Spec

func single(f func() *moore.Spec) NewSpecFn {
	return func(bits int) *moore.Spec {
		if bits != 1 {
			return nil
		}
		return f()
	}
}

func gateFn(name string, g gate) NewSpecFn {
	return func(bits int) *moore.Spec { return g.spec(name, bits) }
}

var registry = map[string]NewSpecFn{
	"not":      NotN,
	"and":      gateFn("AND", and),
	"nand":     gateFn("NAND", nand),
	"or":       gateFn("OR", or),
	"nor":      gateFn("NOR", nor),
	"xor":      gateFn("XOR", xor),
	"xnor":     gateFn("XNOR", xnor),
	"mux":      Mux,
	"dff":      single(DFF),
	"delay":    Delay,
	"register": Register,
	"counter":  Counter,
	"toggle":   single(Toggle),
	"adder":    Adder,
	"const":    func(bits int) *moore.Spec { return Const(bits, 0) },
}

// Kinds returns the sorted list of machine kinds known to Lookup.
//
func Kinds() []string {
	ks := make([]string, 0, len(registry))
	for k := range registry {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

// Lookup returns a new spec for the given machine kind (case insensitive) and
// bit width. If bits is 0, it defaults to 1.
//
// init sets the initial state of the machine (state bits beyond 64 are set
// to 0). For a "const" machine, this is its output value.
//
func Lookup(kind string, bits int, init uint64) (*moore.Spec, error) {
	f, ok := registry[strings.ToLower(kind)]
	if !ok {
		return nil, errors.Errorf("unknown machine kind %q", kind)
	}
	if bits == 0 {
		bits = 1
	}
	if bits < 0 {
		return nil, errors.Errorf("invalid bit width %d for %s", bits, kind)
	}
	sp := f(bits)
	if sp == nil {
		return nil, errors.Errorf("machine kind %s does not support a bit width of %d", kind, bits)
	}
	if init != 0 {
		q := moore.NewBits(sp.State)
		q.SetUint64(0, min(sp.State, 64), init)
		sp.Initial = q
	}
	return sp, nil
}
