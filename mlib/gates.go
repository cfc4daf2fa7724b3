// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package mlib

import (
	"strconv"

	"github.com/db47h/moore"
)

// Not returns a NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out(t) = !in(t-1)
//
func Not() *moore.Spec { return NotN(1) }

// NotN returns a N-bits NOT gate.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i](t) = !in[i](t-1) }
//
func NotN(bits int) *moore.Spec {
	name := "NOT"
	if bits > 1 {
		name += strconv.Itoa(bits)
	}
	return &moore.Spec{
		Name:   name,
		Inputs: bits,
		State:  bits,
		Transition: func(next, in, state moore.Bits, n, s int) {
			for i := range next {
				next[i] = ^in[i]
			}
			if r := s & 63; r != 0 {
				next[len(next)-1] &= mask(r)
			}
		},
	}
}

type gate func(a, b bool) bool

func (g gate) spec(name string, bits int) *moore.Spec {
	if bits > 1 {
		name += strconv.Itoa(bits)
	}
	return &moore.Spec{
		Name:   name,
		Inputs: 2 * bits,
		State:  bits,
		Transition: func(next, in, state moore.Bits, n, s int) {
			for i := 0; i < s; i++ {
				next.Set(i, g(in.Get(i), in.Get(s+i)))
			}
		},
	}
}

var (
	and  = gate(func(a, b bool) bool { return a && b })
	nand = gate(func(a, b bool) bool { return !(a && b) })
	or   = gate(func(a, b bool) bool { return a || b })
	nor  = gate(func(a, b bool) bool { return !(a || b) })
	xor  = gate(func(a, b bool) bool { return a != b })
	xnor = gate(func(a, b bool) bool { return a == b })
)

// GateN returns a N-bits logic gate.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i](t) = f(a[i](t-1), b[i](t-1)) }
//
func GateN(name string, bits int, f func(a, b bool) bool) *moore.Spec {
	return gate(f).spec(name, bits)
}

// And returns a AND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out(t) = a(t-1) && b(t-1)
//
func And() *moore.Spec { return and.spec("AND", 1) }

// Nand returns a NAND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out(t) = !(a(t-1) && b(t-1))
//
func Nand() *moore.Spec { return nand.spec("NAND", 1) }

// Or returns a OR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out(t) = a(t-1) || b(t-1)
//
func Or() *moore.Spec { return or.spec("OR", 1) }

// Nor returns a NOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out(t) = !(a(t-1) || b(t-1))
//
func Nor() *moore.Spec { return nor.spec("NOR", 1) }

// Xor returns a XOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out(t) = a(t-1) != b(t-1)
//
func Xor() *moore.Spec { return xor.spec("XOR", 1) }

// Xnor returns a XNOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out(t) = a(t-1) == b(t-1)
//
func Xnor() *moore.Spec { return xnor.spec("XNOR", 1) }

// Mux returns a N-bits multiplexer.
//
//	Inputs: a[bits], b[bits], sel
//	Outputs: out[bits]
//	Function: if sel == 0 { out = a } else { out = b }
//
func Mux(bits int) *moore.Spec {
	return &moore.Spec{
		Name:   "MUX" + strconv.Itoa(bits),
		Inputs: 2*bits + 1,
		State:  bits,
		Transition: func(next, in, state moore.Bits, n, s int) {
			off := 0
			if in.Get(2 * s) {
				off = s
			}
			for i := 0; i < s; i++ {
				next.Set(i, in.Get(off+i))
			}
		},
	}
}
