// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package mlib_test

import (
	"testing"

	"github.com/db47h/moore"
	"github.com/db47h/moore/mlib"
	"github.com/db47h/moore/mtest"
	"github.com/stretchr/testify/require"
)

func TestGates(t *testing.T) {
	td := []struct {
		name   string
		spec   *moore.Spec
		result []uint64 // for inputs b:a = 00, 01, 10, 11
	}{
		{"AND", mlib.And(), []uint64{0, 0, 0, 1}},
		{"NAND", mlib.Nand(), []uint64{1, 1, 1, 0}},
		{"OR", mlib.Or(), []uint64{0, 1, 1, 1}},
		{"NOR", mlib.Nor(), []uint64{1, 0, 0, 0}},
		{"XOR", mlib.Xor(), []uint64{0, 1, 1, 0}},
		{"XNOR", mlib.Xnor(), []uint64{1, 0, 0, 1}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			require.Equal(t, d.name, d.spec.Name)
			require.Equal(t, d.result, mtest.Run(t, d.spec, 0, 1, 2, 3))
		})
	}
}

func TestNot(t *testing.T) {
	require.Equal(t, []uint64{1, 0, 1}, mtest.Run(t, mlib.Not(), 0, 1, 0))
	require.Equal(t, []uint64{0xfff0, 0x0f0f, 0}, mtest.Run(t, mlib.NotN(16), 0x000f, 0xf0f0, 0xffff))
	// wider than a word: upper bits must stay masked.
	outs := mtest.Run(t, mlib.NotN(70), 0)
	require.Equal(t, []uint64{^uint64(0)}, outs)
}

func TestGateN(t *testing.T) {
	and8 := mlib.GateN("AND", 8, func(a, b bool) bool { return a && b })
	require.Equal(t, "AND8", and8.Name)
	// a = low byte, b = high byte
	require.Equal(t, []uint64{0x0f & 0x3c, 0}, mtest.Run(t, and8, 0x3c0f, 0x00ff))
	mtest.CompareSpecs(t, 128, and8, mlib.GateN("and", 8, func(a, b bool) bool { return !(!a || !b) }))
}

func TestMux(t *testing.T) {
	// a = 5, b = 10, sel
	outs := mtest.Run(t, mlib.Mux(4), 10<<4|5, 1<<8|10<<4|5)
	require.Equal(t, []uint64{5, 10}, outs)
}

func TestSequential(t *testing.T) {
	require.Equal(t, []uint64{1, 0, 1, 1}, mtest.Run(t, mlib.DFF(), 1, 0, 1, 1))
	require.Equal(t, []uint64{0xab, 0xcd}, mtest.Run(t, mlib.Delay(8), 0xab, 0xcd))

	// in[4], load
	reg := mlib.Register(4)
	require.Equal(t, []uint64{0, 7, 7, 7, 2}, mtest.Run(t, reg, 3, 1<<4|7, 9, 0, 1<<4|2))

	require.Equal(t, []uint64{1, 1, 0, 1, 0}, mtest.Run(t, mlib.Toggle(), 1, 0, 1, 1, 1))

	cnt := mlib.Counter(3)
	outs := mtest.Run(t, cnt, 1, 1, 1, 1, 1, 1, 1, 1, 1)
	require.Equal(t, []uint64{1, 2, 3, 4, 5, 6, 7, 0, 1}, outs)
}

func TestAdder(t *testing.T) {
	add := mlib.Adder(4)
	outs := mtest.Run(t, add, 3<<4|4, 15<<4|1, 15<<4|15)
	require.Equal(t, []uint64{7, 16, 30}, outs)

	// compare with a plain arithmetic implementation.
	ref := &moore.Spec{
		Name:   "REF",
		Inputs: 16,
		State:  9,
		Transition: func(next, in, state moore.Bits, n, s int) {
			next.SetUint64(0, 9, in.Uint64(0, 8)+in.Uint64(8, 8))
		},
	}
	mtest.CompareSpecs(t, 512, mlib.Adder(8), ref)
}

func TestConst(t *testing.T) {
	require.Equal(t, []uint64{42, 42}, mtest.Run(t, mlib.Const(8, 42), 0, 0))
	require.Equal(t, []uint64{0xf}, mtest.Run(t, mlib.Const(4, 0xff), 0))
}

func TestLookup(t *testing.T) {
	for _, k := range mlib.Kinds() {
		sp, err := mlib.Lookup(k, 0, 0)
		if k == "dff" || k == "toggle" {
			require.NoError(t, err, k)
		}
		if err == nil {
			require.NotNil(t, sp.Transition, k)
		}
	}

	sp, err := mlib.Lookup("Counter", 4, 14)
	require.NoError(t, err)
	require.Equal(t, []uint64{15, 0}, mtest.Run(t, sp, 1, 1))

	sp, err = mlib.Lookup("const", 8, 0x5a)
	require.NoError(t, err)
	require.Equal(t, []uint64{0x5a}, mtest.Run(t, sp, 0))

	_, err = mlib.Lookup("flux_capacitor", 1, 0)
	require.EqualError(t, err, `unknown machine kind "flux_capacitor"`)
	_, err = mlib.Lookup("dff", 2, 0)
	require.Error(t, err)
	_, err = mlib.Lookup("and", -1, 0)
	require.Error(t, err)
}
