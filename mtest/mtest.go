// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package mtest provides utility functions for testing machines and networks.
//
package mtest

import (
	"math/rand"
	"testing"
	"time"

	"github.com/db47h/moore"
	"github.com/pkg/errors"
)

// Seed, when non-zero, seeds the random number generators of CompareSpecs and
// CheckOrderIndependence. Otherwise they are seeded from the current time. The
// seed in use is logged so that a failing run can be replayed.
//
var Seed int64

func newRand(t testing.TB) *rand.Rand {
	t.Helper()
	seed := Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	t.Logf("random seed %d", seed)
	return rand.New(rand.NewSource(seed))
}

func randBits(rnd *rand.Rand, width int) moore.Bits {
	b := moore.NewBits(width)
	for i := range b {
		b[i] = rnd.Uint64()
	}
	if r := width & 63; r != 0 {
		b[len(b)-1] &= 1<<uint(r) - 1
	}
	return b
}

func equal(a, b moore.Bits) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Run mounts sp into a new network and feeds it with the given inputs, one
// per tick. It returns the machine's output after each tick as an uint64
// (only the 64 first output bits are returned).
//
func Run(t testing.TB, sp *moore.Spec, inputs ...uint64) []uint64 {
	t.Helper()
	nw := moore.NewNetwork()
	defer nw.Close()

	h, err := nw.Mount(sp)
	if err != nil {
		t.Fatal(err)
	}
	n, m, _, _ := nw.Widths(h)
	in := moore.NewBits(n)
	outs := make([]uint64, 0, len(inputs))
	for _, v := range inputs {
		if n > 0 {
			in.Clear()
			in.SetUint64(0, min(n, 64), v)
			if err = nw.SetInput(h, in); err != nil {
				t.Fatal(err)
			}
		}
		if err = nw.Step(h); err != nil {
			t.Fatal(err)
		}
		out, _ := nw.Output(h)
		outs = append(outs, out.Uint64(0, min(m, 64)))
	}
	return outs
}

// CompareSpecs takes two specs and compares their outputs given the same
// random inputs over the given number of ticks. Both specs must have the same
// input and output widths.
//
func CompareSpecs(t testing.TB, ticks int, sp1, sp2 *moore.Spec) {
	t.Helper()

	nw := moore.NewNetwork()
	defer nw.Close()

	h1, err := nw.Mount(sp1)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := nw.Mount(sp2)
	if err != nil {
		t.Fatal(err)
	}
	n1, m1, _, _ := nw.Widths(h1)
	n2, m2, _, _ := nw.Widths(h2)
	if n1 != n2 {
		t.Fatalf("%s has %d inputs, %s has %d", sp1.Name, n1, sp2.Name, n2)
	}
	if m1 != m2 {
		t.Fatalf("%s has %d outputs, %s has %d", sp1.Name, m1, sp2.Name, m2)
	}

	rnd := newRand(t)
	start := time.Now()
	for i := 0; i < ticks; i++ {
		if n1 > 0 {
			in := randBits(rnd, n1)
			if err = nw.SetInput(h1, in); err != nil {
				t.Fatal(err)
			}
			if err = nw.SetInput(h2, in); err != nil {
				t.Fatal(err)
			}
		}
		if err = nw.Step(h1, h2); err != nil {
			t.Fatal(err)
		}
		o1, _ := nw.Output(h1)
		o2, _ := nw.Output(h2)
		if !equal(o1, o2) {
			in, _ := nw.Input(h1)
			t.Fatalf("\ntick %d, input %x\n%s => %x\n%s => %x", i, in, sp1.Name, o1, sp2.Name, o2)
		}
	}
	elapsed := time.Since(start)
	t.Logf("%d ticks in %v => %.2f Hz", ticks, elapsed, float64(ticks)/(float64(elapsed)/float64(time.Second)))
}

// A BuildFn builds a network and returns the machines to step.
//
type BuildFn func(nw *moore.Network) ([]moore.Handle, error)

// CheckOrderIndependence builds two identical networks using build, then
// steps them for the given number of ticks, the first one in the order
// returned by build and the second one in a random order that changes on
// every tick. The state and output of every machine must be the same in both
// networks after each tick.
//
func CheckOrderIndependence(t testing.TB, ticks int, build BuildFn, opts ...moore.Option) {
	t.Helper()

	nw1 := moore.NewNetwork(opts...)
	defer nw1.Close()
	nw2 := moore.NewNetwork(opts...)
	defer nw2.Close()

	hs1, err := build(nw1)
	if err != nil {
		t.Fatal(err)
	}
	hs2, err := build(nw2)
	if err != nil {
		t.Fatal(err)
	}
	if len(hs1) != len(hs2) {
		t.Fatalf("build returned %d then %d machines", len(hs1), len(hs2))
	}

	rnd := newRand(t)
	batch := make([]moore.Handle, len(hs2))
	for tick := 0; tick < ticks; tick++ {
		for i, p := range rnd.Perm(len(hs2)) {
			batch[i] = hs2[p]
		}
		if err = nw1.Step(hs1...); err != nil {
			t.Fatal(err)
		}
		if err = nw2.Step(batch...); err != nil {
			t.Fatal(err)
		}
		for i := range hs1 {
			if err = same(nw1, hs1[i], nw2, hs2[i]); err != nil {
				t.Fatalf("tick %d, machine %d: %v", tick, i, err)
			}
		}
	}
}

func same(nw1 *moore.Network, h1 moore.Handle, nw2 *moore.Network, h2 moore.Handle) error {
	s1, err := nw1.State(h1)
	if err != nil {
		return err
	}
	s2, err := nw2.State(h2)
	if err != nil {
		return err
	}
	if !equal(s1, s2) {
		return errors.Errorf("state %x != %x", s1, s2)
	}
	o1, _ := nw1.Output(h1)
	o2, _ := nw2.Output(h2)
	if !equal(o1, o2) {
		return errors.Errorf("output %x != %x", o1, o2)
	}
	return nil
}
