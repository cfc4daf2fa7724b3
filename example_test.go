// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package moore_test

import (
	"fmt"

	"github.com/db47h/moore"
)

// A 2 bits counter feeding a machine that latches its input whenever the
// counter's output is odd.
//
func ExampleNetwork_Connect() {
	nw := moore.NewNetwork()
	defer nw.Close()

	cnt, _ := nw.CreateSimple(0, 2, func(next, in, state moore.Bits, n, s int) {
		next.SetUint64(0, 2, state.Uint64(0, 2)+1)
	})
	latch, _ := nw.CreateSimple(2, 2, func(next, in, state moore.Bits, n, s int) {
		if in.Get(0) {
			next.SetUint64(0, 2, in.Uint64(0, 2))
		}
	})
	if err := nw.Connect(latch, 0, cnt, 0, 2); err != nil {
		panic(err)
	}

	for i := 0; i < 6; i++ {
		if err := nw.Step(latch, cnt); err != nil {
			panic(err)
		}
		c, _ := nw.Output(cnt)
		l, _ := nw.Output(latch)
		fmt.Println(c[0], l[0])
	}

	// Output:
	// 1 0
	// 2 1
	// 3 1
	// 0 3
	// 1 3
	// 2 1
}
