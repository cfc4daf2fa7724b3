// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package moore

import "go.uber.org/zap"

// Connect wires count input bits of sink, starting at bit sinkOff, to count
// output bits of source, starting at bit sourceOff.
//
// Previous wiring of these input bits is replaced. source and sink may be the
// same machine, in which case the machine reads its own output from the
// previous tick.
//
// The network is left untouched if an error is returned.
//
func (nw *Network) Connect(sink Handle, sinkOff int, source Handle, sourceOff int, count int) error {
	in, ok := nw.get(sink)
	if !ok {
		return staleHandle("connect", sink)
	}
	out, ok := nw.get(source)
	if !ok {
		return staleHandle("connect", source)
	}
	switch {
	case count < 1:
		return invalidf("connect: bit count %d", count)
	case sinkOff < 0 || count > in.n || sinkOff > in.n-count:
		return invalidf("connect: %d input bits at offset %d out of bounds for %d inputs", count, sinkOff, in.n)
	case sourceOff < 0 || count > out.m || sourceOff > out.m-count:
		return invalidf("connect: %d output bits at offset %d out of bounds for %d outputs", count, sourceOff, out.m)
	}

	for i := 0; i < count; i++ {
		w := &in.wiring[sinkOff+i]
		if !w.src.IsZero() {
			nw.unlink(sink, in, w.src)
		}
		w.src = source
		w.bit = sourceOff + i
		nw.link(sink, in, source, out)
	}

	nw.log.Debug("connect",
		zap.Stringer("sink", sink), zap.Int("sinkOff", sinkOff),
		zap.Stringer("source", source), zap.Int("sourceOff", sourceOff),
		zap.Int("count", count))
	return nil
}

// Disconnect clears the wiring of count input bits of sink, starting at bit
// off. The input bits keep their current value.
//
func (nw *Network) Disconnect(sink Handle, off int, count int) error {
	in, ok := nw.get(sink)
	if !ok {
		return staleHandle("disconnect", sink)
	}
	switch {
	case count < 1:
		return invalidf("disconnect: bit count %d", count)
	case off < 0 || count > in.n || off > in.n-count:
		return invalidf("disconnect: %d input bits at offset %d out of bounds for %d inputs", count, off, in.n)
	}

	for i := 0; i < count; i++ {
		w := &in.wiring[off+i]
		if !w.src.IsZero() {
			nw.unlink(sink, in, w.src)
		}
		*w = wire{}
	}

	nw.log.Debug("disconnect",
		zap.Stringer("sink", sink), zap.Int("off", off), zap.Int("count", count))
	return nil
}

// Source returns the machine and output bit feeding input bit of sink. ok is
// false if the input bit is not connected, or if sink or bit are invalid.
//
func (nw *Network) Source(sink Handle, bit int) (source Handle, sourceBit int, ok bool) {
	in, valid := nw.get(sink)
	if !valid || bit < 0 || bit >= in.n {
		return Handle{}, 0, false
	}
	w := in.wiring[bit]
	if w.src.IsZero() {
		return Handle{}, 0, false
	}
	return w.src, w.bit, true
}
