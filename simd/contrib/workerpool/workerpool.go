// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides the fixed-size pool of goroutines that the
// array kernels share. A Pool is created once per engine and reused by every
// parallel matrix multiply and transpose, so no goroutines are spawned per call.
//
// Every Parallel* method is a fork-join: it hands disjoint index ranges to the
// workers and returns only after all of them finished. Callers write to
// disjoint output regions and need no further synchronization.
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.ParallelForAtomic(numTiles, func(tile int) {
//	    computeTile(tile)
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool. The zero value is not usable; use New.
//
// A closed Pool still accepts work and runs it on the calling goroutine.
type Pool struct {
	numWorkers int
	workC      chan workItem

	// mu orders submissions against Close so a send never hits a closed channel.
	mu     sync.RWMutex
	closed atomic.Bool
}

type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with numWorkers goroutines, started immediately.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Closed reports whether Close has been called.
func (p *Pool) Closed() bool {
	return p.closed.Load()
}

// Close stops the workers after pending work completes.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed.Swap(true) {
		return
	}
	close(p.workC)
}

// run starts fn on `workers` goroutines and waits for all of them. It returns
// false without running anything if the pool is closed.
func (p *Pool) run(workers int, fn func(worker int)) bool {
	p.mu.RLock()
	if p.closed.Load() {
		p.mu.RUnlock()
		return false
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := range workers {
		p.workC <- workItem{
			fn:      func() { fn(w) },
			barrier: &wg,
		}
	}
	p.mu.RUnlock()

	wg.Wait()
	return true
}

// ParallelFor splits [0, n) into one contiguous range per worker and calls
// fn(start, end) for each. Blocks until all work completes.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers
	ok := p.run(workers, func(w int) {
		start := w * chunkSize
		if start >= n {
			return
		}
		fn(start, min(start+chunkSize, n))
	})
	if !ok {
		fn(0, n)
	}
}

// ParallelForAtomic calls fn(i) for every i in [0, n), handing out indices
// through an atomic counter so uneven items balance across workers.
// Blocks until all work completes.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	if n <= 0 {
		return
	}

	sequential := func() {
		for i := range n {
			fn(i)
		}
	}

	workers := min(p.numWorkers, n)
	if workers == 1 {
		sequential()
		return
	}

	var next atomic.Int64
	ok := p.run(workers, func(int) {
		for {
			idx := int(next.Add(1)) - 1
			if idx >= n {
				return
			}
			fn(idx)
		}
	})
	if !ok {
		sequential()
	}
}

// ParallelForAtomicBatched is ParallelForAtomic handing out batchSize
// consecutive indices per grab; fn receives [start, end).
func (p *Pool) ParallelForAtomicBatched(n int, batchSize int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if batchSize <= 0 {
		batchSize = 1
	}

	numBatches := (n + batchSize - 1) / batchSize
	workers := min(p.numWorkers, numBatches)
	if workers == 1 {
		fn(0, n)
		return
	}

	var next atomic.Int64
	ok := p.run(workers, func(int) {
		for {
			start := (int(next.Add(1)) - 1) * batchSize
			if start >= n {
				return
			}
			fn(start, min(start+batchSize, n))
		}
	})
	if !ok {
		fn(0, n)
	}
}
