// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package mlib

import (
	"strconv"

	"github.com/db47h/moore"
)

func load(next, in, state moore.Bits, n, s int) {
	copy(next, in)
}

// DFF returns a data flip flop.
//
//	Inputs: in
//	Outputs: out
//	Function: out(t) = in(t-1)
//
func DFF() *moore.Spec { return Delay(1) }

// Delay returns a N-bits delay line of depth 1.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: out(t) = in(t-1)
//
func Delay(bits int) *moore.Spec {
	return &moore.Spec{
		Name:       "DELAY" + strconv.Itoa(bits),
		Inputs:     bits,
		State:      bits,
		Transition: load,
	}
}

// Register returns a N-bits register.
//
//	Inputs: in[bits], load
//	Outputs: out[bits]
//	Function: if load(t-1) { out(t) = in(t-1) } else { out(t) = out(t-1) }
//
func Register(bits int) *moore.Spec {
	return &moore.Spec{
		Name:   "REGISTER" + strconv.Itoa(bits),
		Inputs: bits + 1,
		State:  bits,
		Transition: func(next, in, state moore.Bits, n, s int) {
			if !in.Get(s) {
				return
			}
			for i := 0; i < s; i++ {
				next.Set(i, in.Get(i))
			}
		},
	}
}

// Counter returns a N-bits counter. The counter wraps around to 0.
//
//	Inputs: inc
//	Outputs: out[bits]
//	Function: if inc(t-1) { out(t) = out(t-1) + 1 } else { out(t) = out(t-1) }
//
func Counter(bits int) *moore.Spec {
	return &moore.Spec{
		Name:   "COUNTER" + strconv.Itoa(bits),
		Inputs: 1,
		State:  bits,
		Transition: func(next, in, state moore.Bits, n, s int) {
			if !in.Get(0) {
				return
			}
			// ripple carry
			for i := 0; i < s; i++ {
				if !state.Get(i) {
					next.Set(i, true)
					return
				}
				next.Set(i, false)
			}
		},
	}
}

// Toggle returns a T flip flop.
//
//	Inputs: t
//	Outputs: out
//	Function: out(t) = out(t-1) != t(t-1)
//
func Toggle() *moore.Spec {
	return &moore.Spec{
		Name:   "TOGGLE",
		Inputs: 1,
		State:  1,
		Transition: func(next, in, state moore.Bits, n, s int) {
			next.Set(0, state.Get(0) != in.Get(0))
		},
	}
}

// Adder returns a N-bits adder with carry out.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits], carry
//	Function: out(t), carry(t) = a(t-1) + b(t-1)
//
func Adder(bits int) *moore.Spec {
	return &moore.Spec{
		Name:   "ADDER" + strconv.Itoa(bits),
		Inputs: 2 * bits,
		State:  bits + 1,
		Transition: func(next, in, state moore.Bits, n, s int) {
			bits := s - 1
			var c bool
			for i := 0; i < bits; i++ {
				a, b := in.Get(i), in.Get(bits+i)
				next.Set(i, a != b != c)
				c = a && b || c && (a != b)
			}
			next.Set(bits, c)
		},
	}
}
