// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package moore

import (
	"math"
	"sort"

	"go.uber.org/zap"
)

// Adjacency invariant: for any two live machines a and b,
//
//	b.parents[a] == a.children[b] == number of input bits of b wired to a
//
// and edges with a zero count are not stored.

// link records one more input bit of sink sourcing from src.
//
func (nw *Network) link(sink Handle, in *machine, src Handle, out *machine) {
	in.parents[src]++
	out.children[sink]++
}

// unlink retires one input bit of sink sourcing from src.
//
func (nw *Network) unlink(sink Handle, in *machine, src Handle) {
	out, ok := nw.get(src)
	if !ok {
		panic("wiring table references stale machine " + src.String())
	}
	if in.parents[src]--; in.parents[src] <= 0 {
		delete(in.parents, src)
	}
	if out.children[sink]--; out.children[sink] <= 0 {
		delete(out.children, sink)
	}
}

// Destroy removes machine h from the network.
//
// All input bits of other machines that were wired to h are disconnected (they
// keep their last value), and h is removed from the adjacency sets of all the
// machines it was connected to. Destroy is a no-op if h is stale or zero.
//
func (nw *Network) Destroy(h Handle) {
	ma, ok := nw.get(h)
	if !ok {
		return
	}

	// children: scrub wiring and parent entries.
	for ch := range ma.children {
		if ch == h {
			continue
		}
		c, ok := nw.get(ch)
		if !ok {
			panic("adjacency references stale machine " + ch.String())
		}
		cleared := 0
		for i := range c.wiring {
			if c.wiring[i].src == h {
				c.wiring[i] = wire{}
				cleared++
			}
		}
		delete(c.parents, h)
		nw.log.Debug("destroy: disconnect child",
			zap.Stringer("machine", h), zap.Stringer("child", ch), zap.Int("bits", cleared))
	}
	// parents: drop child entries.
	for p := range ma.parents {
		if p == h {
			continue
		}
		pm, ok := nw.get(p)
		if !ok {
			panic("adjacency references stale machine " + p.String())
		}
		delete(pm.children, h)
	}

	nw.release(ma.cost())
	s := &nw.slots[h.index]
	s.m = nil
	// a slot whose generation is exhausted is never reused.
	if s.gen < math.MaxUint32 {
		s.gen++
		nw.free = append(nw.free, h.index)
	} else {
		nw.log.Debug("slot retired", zap.Uint32("index", h.index))
	}
	nw.live--

	nw.log.Debug("machine destroyed", zap.Stringer("handle", h),
		zap.Int("parents", len(ma.parents)), zap.Int("children", len(ma.children)))
}

// Parents returns the machines feeding at least one input bit of h, sorted by
// handle index. It returns nil if h is stale.
//
func (nw *Network) Parents(h Handle) []Handle {
	ma, ok := nw.get(h)
	if !ok {
		return nil
	}
	return sortedHandles(ma.parents)
}

// Children returns the machines having at least one input bit wired to an
// output bit of h, sorted by handle index. It returns nil if h is stale.
//
func (nw *Network) Children(h Handle) []Handle {
	ma, ok := nw.get(h)
	if !ok {
		return nil
	}
	return sortedHandles(ma.children)
}

// EdgeWeight returns the number of input bits of child wired to parent.
//
func (nw *Network) EdgeWeight(parent, child Handle) int {
	ma, ok := nw.get(child)
	if !ok {
		return 0
	}
	return ma.parents[parent]
}

func sortedHandles(m map[Handle]int) []Handle {
	hs := make([]Handle, 0, len(m))
	for h := range m {
		hs = append(hs, h)
	}
	sort.Slice(hs, func(i, j int) bool { return hs[i].index < hs[j].index })
	return hs
}
