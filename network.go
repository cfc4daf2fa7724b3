// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package moore

import (
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// A TransitionFn computes the next state of a machine. It must write the next
// state (s bits) into next, given the current input (n bits) and state (s
// bits). next is initialized with a copy of state. input and state must not be
// modified.
//
type TransitionFn func(next, input, state Bits, n, s int)

// An OutputFn computes the output of a machine (m bits) from its state (s bits).
// state must not be modified.
//
type OutputFn func(output, state Bits, m, s int)

// Identity is an OutputFn that copies state to output. If m > s, the extra
// output bits are set to 0.
//
func Identity(output, state Bits, m, s int) {
	k := copy(output, state)
	for i := k; i < len(output); i++ {
		output[i] = 0
	}
	for i := s; i < m && i < len(output)*64; i++ {
		output.Set(i, false)
	}
	if r := m & 63; r != 0 && len(output) > 0 {
		output[len(output)-1] &= 1<<uint(r) - 1
	}
}

// A Handle identifies a machine in a Network. The zero Handle never refers to
// a machine.
//
// Handles are generation checked: once a machine is destroyed, its handle
// becomes stale and any operation using it fails. A slot is retired after
// 2^32-1 generations, so a stale handle never becomes valid again.
//
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero returns true if h is the zero Handle.
//
func (h Handle) IsZero() bool { return h.gen == 0 }

func (h Handle) String() string {
	return "#" + strconv.FormatUint(uint64(h.index), 10) + "." + strconv.FormatUint(uint64(h.gen), 10)
}

// a wire is a wiring table entry: input bit <- src.output[bit].
// A zero src means unconnected.
type wire struct {
	src Handle
	bit int
}

type machine struct {
	name    string
	n, m, s int
	t       TransitionFn
	y       OutputFn

	input  Bits
	state  Bits
	output Bits
	next   Bits // scratch next state, only allocated during Step

	wiring []wire // one entry per input bit

	// adjacency. Values are the number of input bits backing the edge.
	parents  map[Handle]int
	children map[Handle]int
}

// cost is the number of words accounted against the network budget.
func (m *machine) cost() int {
	return len(m.input) + len(m.state) + len(m.output) + len(m.wiring)
}

type slot struct {
	gen uint32
	m   *machine
}

// Network is an arena of Moore machines.
//
// A Network is not safe for concurrent use.
//
type Network struct {
	slots []slot
	free  []uint32
	live  int

	used     int // words in use
	maxWords int // 0 = unlimited

	ticks uint64

	log     *zap.Logger
	workers int
	pool    *pool
}

// An Option configures a Network.
//
type Option func(nw *Network)

// WithWorkers sets the number of goroutines used to run each phase of Step.
// With workers <= 1 (the default), Step runs on the caller's goroutine.
//
// When using more than one worker, transition and output functions will be
// called concurrently for distinct machines.
//
func WithWorkers(workers int) Option {
	return func(nw *Network) { nw.workers = workers }
}

// WithMaxWords limits the amount of 64 bits words that the network may
// allocate for machine buffers, wiring tables and step scratch buffers.
// Operations that would exceed the limit fail with ErrOutOfMemory. 0 means
// no limit.
//
func WithMaxWords(words int) Option {
	return func(nw *Network) { nw.maxWords = words }
}

// WithLogger sets the network logger. The default is a no-op logger.
//
func WithLogger(l *zap.Logger) Option {
	return func(nw *Network) { nw.log = l }
}

// NewNetwork returns a new empty network.
//
// Callers must make sure to call Close() once the network is no longer needed
// in order to stop worker goroutines.
//
func NewNetwork(opts ...Option) *Network {
	nw := &Network{}
	for _, o := range opts {
		o(nw)
	}
	if nw.log == nil {
		nw.log = zap.NewNop()
	}
	if nw.workers > 1 {
		nw.pool = newPool(nw.workers)
	}
	return nw
}

// Close stops worker goroutines. The network must not be stepped afterwards.
//
func (nw *Network) Close() {
	if nw.pool != nil {
		nw.pool.close()
		nw.pool = nil
	}
}

func (nw *Network) get(h Handle) (*machine, bool) {
	if h.gen == 0 || int(h.index) >= len(nw.slots) {
		return nil, false
	}
	s := &nw.slots[h.index]
	if s.gen != h.gen || s.m == nil {
		return nil, false
	}
	return s.m, true
}

func (nw *Network) reserve(words int) error {
	if nw.maxWords > 0 && nw.used+words > nw.maxWords {
		return errors.Wrapf(ErrOutOfMemory, "%d words requested, %d of %d in use", words, nw.used, nw.maxWords)
	}
	nw.used += words
	return nil
}

func (nw *Network) release(words int) {
	nw.used -= words
}

// Create creates a new machine with n inputs, m outputs and s state bits,
// transition function t, output function y and initial state q.
//
// n may be 0. m and s must be at least 1 and q must hold at least Words(s)
// words. The initial output is computed immediately.
//
func (nw *Network) Create(n, m, s int, t TransitionFn, y OutputFn, q Bits) (Handle, error) {
	return nw.create("", n, m, s, t, y, q)
}

// CreateSimple creates a machine whose output is its state (m = s) with a
// zero initial state.
//
func (nw *Network) CreateSimple(n, s int, t TransitionFn) (Handle, error) {
	if s <= 0 {
		return Handle{}, invalidf("create: state width %d", s)
	}
	return nw.Create(n, s, s, t, Identity, NewBits(s))
}

func (nw *Network) create(name string, n, m, s int, t TransitionFn, y OutputFn, q Bits) (Handle, error) {
	switch {
	case t == nil:
		return Handle{}, invalidf("create: nil transition function")
	case y == nil:
		return Handle{}, invalidf("create: nil output function")
	case n < 0:
		return Handle{}, invalidf("create: input width %d", n)
	case m <= 0:
		return Handle{}, invalidf("create: output width %d", m)
	case s <= 0:
		return Handle{}, invalidf("create: state width %d", s)
	case len(q) < Words(s):
		return Handle{}, invalidf("create: initial state has %d words, need %d", len(q), Words(s))
	}

	ma := &machine{
		name: name,
		n:    n, m: m, s: s,
		t: t, y: y,
	}
	cost := Words(n) + Words(s) + Words(m) + n
	if err := nw.reserve(cost); err != nil {
		return Handle{}, errors.Wrap(err, "create")
	}
	ma.input = NewBits(n)
	ma.state = NewBits(s)
	ma.output = NewBits(m)
	ma.wiring = make([]wire, n)
	ma.parents = make(map[Handle]int)
	ma.children = make(map[Handle]int)
	copy(ma.state, q)
	ma.y(ma.output, ma.state, m, s)

	var h Handle
	if l := len(nw.free); l > 0 {
		h.index = nw.free[l-1]
		nw.free = nw.free[:l-1]
	} else {
		h.index = uint32(len(nw.slots))
		nw.slots = append(nw.slots, slot{gen: 1})
	}
	sl := &nw.slots[h.index]
	sl.m = ma
	h.gen = sl.gen
	nw.live++

	nw.log.Debug("machine created",
		zap.Stringer("handle", h), zap.String("name", name),
		zap.Int("n", n), zap.Int("m", m), zap.Int("s", s))
	return h, nil
}

// SetState replaces the state of machine h and recomputes its output.
//
func (nw *Network) SetState(h Handle, q Bits) error {
	ma, ok := nw.get(h)
	if !ok {
		return staleHandle("set state", h)
	}
	if len(q) < Words(ma.s) {
		return invalidf("set state: state has %d words, need %d", len(q), Words(ma.s))
	}
	copy(ma.state, q)
	ma.y(ma.output, ma.state, ma.m, ma.s)
	return nil
}

// SetInput replaces the input vector of machine h.
//
// Input bits that are wired to another machine's output will be overwritten
// at the next Step, so this is only useful for unwired bits or to seed the
// first tick.
//
func (nw *Network) SetInput(h Handle, in Bits) error {
	ma, ok := nw.get(h)
	if !ok {
		return staleHandle("set input", h)
	}
	if ma.n == 0 {
		return invalidf("set input: machine %v has no inputs", h)
	}
	if len(in) < Words(ma.n) {
		return invalidf("set input: input has %d words, need %d", len(in), Words(ma.n))
	}
	copy(ma.input, in)
	return nil
}

// Output returns a copy of the output vector of machine h.
//
func (nw *Network) Output(h Handle) (Bits, error) {
	ma, ok := nw.get(h)
	if !ok {
		return nil, staleHandle("output", h)
	}
	return ma.output.Copy(), nil
}

// State returns a copy of the state vector of machine h.
//
func (nw *Network) State(h Handle) (Bits, error) {
	ma, ok := nw.get(h)
	if !ok {
		return nil, staleHandle("state", h)
	}
	return ma.state.Copy(), nil
}

// Input returns a copy of the input vector of machine h.
//
func (nw *Network) Input(h Handle) (Bits, error) {
	ma, ok := nw.get(h)
	if !ok {
		return nil, staleHandle("input", h)
	}
	return ma.input.Copy(), nil
}

// Widths returns the input, output and state widths of machine h.
//
func (nw *Network) Widths(h Handle) (n, m, s int, err error) {
	ma, ok := nw.get(h)
	if !ok {
		return 0, 0, 0, staleHandle("widths", h)
	}
	return ma.n, ma.m, ma.s, nil
}

// Name returns the name of the Spec machine h was mounted from, if any.
//
func (nw *Network) Name(h Handle) string {
	if ma, ok := nw.get(h); ok {
		return ma.name
	}
	return ""
}

// Valid returns true if h refers to a live machine.
//
func (nw *Network) Valid(h Handle) bool {
	_, ok := nw.get(h)
	return ok
}

// Len returns the number of live machines.
//
func (nw *Network) Len() int { return nw.live }

// Machines returns the handles of all live machines.
//
func (nw *Network) Machines() []Handle {
	hs := make([]Handle, 0, nw.live)
	for i := range nw.slots {
		if s := &nw.slots[i]; s.m != nil {
			hs = append(hs, Handle{uint32(i), s.gen})
		}
	}
	return hs
}

// Ticks returns the number of successful calls to Step.
//
func (nw *Network) Ticks() uint64 { return nw.ticks }

// WordsInUse returns the number of words currently accounted against the
// network's memory budget.
//
func (nw *Network) WordsInUse() int { return nw.used }
