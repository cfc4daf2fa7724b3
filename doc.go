/*
Package moore simulates networks of synchronous Moore machines.

A Moore machine has an input vector of n bits, a state of s bits and an output
of m bits. Its output depends only on its state, and its next state depends on
its current state and input. Machines live in a Network and are referred to by
Handle. Output bits of one machine can be wired to input bits of another (or
the same) machine with Connect, the same way wires connect the pins of chips
on a board:

	nw := moore.NewNetwork()
	defer nw.Close()

	// a one bit oscillator: next = !in, in = out.
	osc, _ := nw.CreateSimple(1, 1, func(next, in, state moore.Bits, n, s int) {
		next.Set(0, !in.Get(0))
	})
	_ = nw.Connect(osc, 0, osc, 0, 1)
	for i := 0; i < 4; i++ {
		_ = nw.Step(osc)
	}

Step advances a batch of machines by exactly one clock tick. All inputs are
refreshed from the current outputs before any state changes, so the result
does not depend on the order of the machines in the batch, even with feedback
loops.

Destroying a machine removes every reference to it from the wiring and
adjacency sets of the machines it was connected to. Handles are generation
checked: using the handle of a destroyed machine fails with an error wrapping
ErrInvalidArgument.

*/
package moore
