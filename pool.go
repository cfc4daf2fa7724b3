// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package moore

import "sync"

type task struct {
	fn     func(lo, hi int)
	lo, hi int
}

// pool is a set of persistent worker goroutines. Each call to run splits
// [0, n) into one chunk per worker and returns once all chunks are done.
//
type pool struct {
	wc []chan task
	wg sync.WaitGroup
}

func newPool(workers int) *pool {
	p := &pool{wc: make([]chan task, workers)}
	for i := range p.wc {
		wc := make(chan task, 1)
		p.wc[i] = wc
		go p.worker(wc)
	}
	return p
}

func (p *pool) worker(wc <-chan task) {
	for {
		t, ok := <-wc
		if !ok {
			p.wg.Done()
			return
		}
		t.fn(t.lo, t.hi)
		p.wg.Done()
	}
}

// run calls fn over [0, n). A nil pool runs fn on the calling goroutine.
//
func (p *pool) run(n int, fn func(lo, hi int)) {
	if p == nil || n < 2 {
		fn(0, n)
		return
	}
	workers := len(p.wc)
	size := n / workers
	if size*workers < n {
		size++
	}
	for i, lo := 0, 0; lo < n; i, lo = i+1, lo+size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		p.wg.Add(1)
		p.wc[i] <- task{fn, lo, hi}
	}
	p.wg.Wait()
}

func (p *pool) close() {
	p.wg.Add(len(p.wc))
	for _, wc := range p.wc {
		close(wc)
	}
	p.wg.Wait()
}
