// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package moore

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Step advances the machines in batch by one clock tick.
//
// The update runs in three phases over the whole batch:
//
//	1. the wired input bits of every machine are refreshed from the current
//	   output of their source machine.
//	2. the next state of every machine is computed into a scratch buffer.
//	3. every machine commits its next state and recomputes its output.
//
// No output changes before all inputs have been refreshed, so the result does
// not depend on the order of the machines in batch. Machines not in batch do
// not advance, but their current output is still visible to the machines they
// feed.
//
// batch must not be empty and must not contain stale or duplicate handles.
// If an error is returned, no machine has been updated.
//
func (nw *Network) Step(batch ...Handle) error {
	if len(batch) == 0 {
		return invalidf("step: empty batch")
	}
	ms := make([]*machine, len(batch))
	seen := make(map[Handle]struct{}, len(batch))
	for i, h := range batch {
		ma, ok := nw.get(h)
		if !ok {
			return staleHandle("step", h)
		}
		if _, dup := seen[h]; dup {
			return invalidf("step: duplicate machine %v in batch", h)
		}
		seen[h] = struct{}{}
		ms[i] = ma
	}

	// scratch buffers
	reserved := 0
	for i, ma := range ms {
		w := Words(ma.s)
		if err := nw.reserve(w); err != nil {
			for _, ma := range ms[:i] {
				ma.next = nil
			}
			nw.release(reserved)
			return errors.Wrap(err, "step")
		}
		reserved += w
		ma.next = make(Bits, w)
	}

	nw.pool.run(len(ms), func(lo, hi int) {
		for _, ma := range ms[lo:hi] {
			nw.refresh(ma)
		}
	})
	nw.pool.run(len(ms), func(lo, hi int) {
		for _, ma := range ms[lo:hi] {
			copy(ma.next, ma.state)
			ma.t(ma.next, ma.input, ma.state, ma.n, ma.s)
		}
	})
	nw.pool.run(len(ms), func(lo, hi int) {
		for _, ma := range ms[lo:hi] {
			copy(ma.state, ma.next)
			ma.y(ma.output, ma.state, ma.m, ma.s)
			ma.next = nil
		}
	})

	nw.release(reserved)
	nw.ticks++
	nw.log.Debug("step", zap.Int("machines", len(ms)), zap.Uint64("tick", nw.ticks))
	return nil
}

// StepAll advances all machines in the network by one clock tick.
//
func (nw *Network) StepAll() error {
	return nw.Step(nw.Machines()...)
}

// refresh copies wired output bits into the input vector of ma. It only reads
// other machines' outputs.
//
func (nw *Network) refresh(ma *machine) {
	for i, w := range ma.wiring {
		if w.src.IsZero() {
			continue
		}
		src := nw.slots[w.src.index].m
		ma.input.Set(i, src.output.Get(w.bit))
	}
}
