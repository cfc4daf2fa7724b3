// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlist

import (
	"github.com/db47h/moore"
	"github.com/db47h/moore/mlib"
	"github.com/pkg/errors"
)

// A Board is a netlist built into a network.
//
type Board struct {
	nw      *moore.Network
	names   []string
	handles map[string]moore.Handle
	watch   []string
}

// Build mounts all machines of the netlist into nw and wires them.
//
// If an error is returned, all machines mounted by Build are destroyed.
//
func (nl *Netlist) Build(nw *moore.Network) (_ *Board, err error) {
	b := &Board{
		nw:      nw,
		handles: make(map[string]moore.Handle, len(nl.Machines)),
	}
	defer func() {
		if err != nil {
			for _, h := range b.handles {
				nw.Destroy(h)
			}
		}
	}()

	for _, m := range nl.Machines {
		if _, dup := b.handles[m.Name]; dup {
			return nil, errors.Errorf("duplicate machine name %q", m.Name)
		}
		sp, err := mlib.Lookup(m.Kind, m.Width, m.Init)
		if err != nil {
			return nil, errors.Wrapf(err, "machine %q", m.Name)
		}
		h, err := nw.Mount(sp)
		if err != nil {
			return nil, errors.Wrapf(err, "machine %q", m.Name)
		}
		b.handles[m.Name] = h
		b.names = append(b.names, m.Name)
		if m.Input != 0 {
			n, _, _, _ := nw.Widths(h)
			in := moore.NewBits(n)
			in.SetUint64(0, min(n, 64), m.Input)
			if err = nw.SetInput(h, in); err != nil {
				return nil, errors.Wrapf(err, "machine %q", m.Name)
			}
		}
	}
	for _, ws := range nl.Wires {
		w, err := ParseWire(ws)
		if err != nil {
			return nil, err
		}
		if err = b.connect(w); err != nil {
			return nil, errors.Wrapf(err, "wire %q", ws)
		}
	}
	b.watch = append([]string(nil), nl.Watch...)
	if len(b.watch) == 0 {
		b.watch = append(b.watch, b.names...)
	}
	return b, nil
}

func (b *Board) connect(w Wire) error {
	sink, ok := b.handles[w.Sink.Machine]
	if !ok {
		return errors.Errorf("unknown machine %q", w.Sink.Machine)
	}
	src, ok := b.handles[w.Source.Machine]
	if !ok {
		return errors.Errorf("unknown machine %q", w.Source.Machine)
	}
	n, _, _, _ := b.nw.Widths(sink)
	_, m, _, _ := b.nw.Widths(src)
	sinkOff, sinkCnt := w.Sink.span(n)
	srcOff, srcCnt := w.Source.span(m)
	if sinkCnt != srcCnt {
		return errors.Errorf("bit count mismatch: %d inputs, %d outputs", sinkCnt, srcCnt)
	}
	return b.nw.Connect(sink, sinkOff, src, srcOff, sinkCnt)
}

// Network returns the network the board was built into.
//
func (b *Board) Network() *moore.Network { return b.nw }

// Names returns the machine names in declaration order.
//
func (b *Board) Names() []string { return b.names }

// Watch returns the names of the machines to trace.
//
func (b *Board) Watch() []string { return b.watch }

// Handle returns the handle of the named machine.
//
func (b *Board) Handle(name string) (moore.Handle, bool) {
	h, ok := b.handles[name]
	return h, ok && b.nw.Valid(h)
}

// Step advances all the board's machines by one tick.
//
func (b *Board) Step() error {
	hs := make([]moore.Handle, 0, len(b.names))
	for _, n := range b.names {
		if h, ok := b.Handle(n); ok {
			hs = append(hs, h)
		}
	}
	return b.nw.Step(hs...)
}

// Output returns the output and output width of the named machine.
//
func (b *Board) Output(name string) (moore.Bits, int, error) {
	h, ok := b.Handle(name)
	if !ok {
		return nil, 0, errors.Errorf("unknown machine %q", name)
	}
	_, m, _, err := b.nw.Widths(h)
	if err != nil {
		return nil, 0, err
	}
	out, err := b.nw.Output(h)
	return out, m, err
}

// Remove destroys the named machine. Its inputs and outputs are disconnected
// from the rest of the board.
//
func (b *Board) Remove(name string) {
	h, ok := b.handles[name]
	if !ok {
		return
	}
	b.nw.Destroy(h)
	delete(b.handles, name)
	for i, n := range b.names {
		if n == name {
			b.names = append(b.names[:i], b.names[i+1:]...)
			break
		}
	}
	for i, n := range b.watch {
		if n == name {
			b.watch = append(b.watch[:i], b.watch[i+1:]...)
			break
		}
	}
}
