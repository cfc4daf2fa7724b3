// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package moore

import "github.com/pkg/errors"

// A Spec wraps a machine specification (its blueprint). The same Spec can be
// mounted any number of times into one or more networks.
//
// For example, a one bit toggle that flips its state whenever its input is
// set can be defined like this:
//
//	toggle := &moore.Spec{
//		Name:   "TOGGLE",
//		Inputs: 1,
//		State:  1,
//		Transition: func(next, in, state moore.Bits, n, s int) {
//			next.Set(0, state.Get(0) != in.Get(0))
//		},
//	}
//
// Then mounted into a network:
//
//	h, err := nw.Mount(toggle)
//
type Spec struct {
	// Machine name.
	Name string
	// Input, output and state widths in bits.
	// If Output is nil, Outputs may be left to 0 and will default to State.
	Inputs  int
	Outputs int
	State   int
	// Transition function. Required.
	Transition TransitionFn
	// Output function. If nil, Identity is used.
	Output OutputFn
	// Initial state. If nil, the initial state is 0.
	Initial Bits
}

// Mount creates a new machine in nw from sp.
//
func (nw *Network) Mount(sp *Spec) (Handle, error) {
	if sp == nil {
		return Handle{}, invalidf("mount: nil spec")
	}
	m, y := sp.Outputs, sp.Output
	if y == nil {
		y = Identity
		if m == 0 {
			m = sp.State
		}
	}
	q := sp.Initial
	if q == nil {
		q = NewBits(sp.State)
	}
	h, err := nw.create(sp.Name, sp.Inputs, m, sp.State, sp.Transition, y, q)
	if err != nil {
		return Handle{}, errors.Wrap(err, "mount "+sp.Name)
	}
	return h, nil
}
