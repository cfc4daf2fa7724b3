// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package mlib provides a library of reusable machine specs for moore.
//
// All machines are registered: their output reflects the inputs seen at the
// previous tick. Multi-bit inputs are laid out contiguously in the input
// vector, in the order given in each function's documentation.
//
// Copyright 2018 Denis Bernard <db047h@gmail.com>
//
// This package is licensed under the MIT license. See license text in the LICENSE file.
//
package mlib

import (
	"github.com/db47h/moore"
)

// mask returns a mask for the bits low bits of a word.
func mask(bits int) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(bits) - 1
}

// hold is a transition function that keeps the current state.
func hold(next, in, state moore.Bits, n, s int) {}

// Const returns a machine with no inputs and a constant output of the given
// width.
//
//	Outputs: out[bits]
//	Function: out = v
//
func Const(bits int, v uint64) *moore.Spec {
	q := moore.NewBits(bits)
	q.SetUint64(0, min(bits, 64), v)
	return &moore.Spec{
		Name:       "CONST",
		State:      bits,
		Transition: hold,
		Initial:    q,
	}
}
