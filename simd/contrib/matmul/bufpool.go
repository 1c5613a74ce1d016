// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"sync"

	"github.com/kashifulhaque/tinyndarray/simd"
)

// packPools holds one *sync.Pool per element type, keyed by the zero value
// of the type.
var packPools sync.Map

type packBuffers[T simd.Floats] struct {
	a, b []T
}

func packPool[T simd.Floats]() *sync.Pool {
	var zero T
	if p, ok := packPools.Load(any(zero)); ok {
		return p.(*sync.Pool)
	}
	p, _ := packPools.LoadOrStore(any(zero), &sync.Pool{})
	return p.(*sync.Pool)
}

// getPackBuffers returns packing buffers large enough for params. Buffers are
// recycled across calls and workers; their contents are garbage.
func getPackBuffers[T simd.Floats](params CacheParams) *packBuffers[T] {
	sizeA, sizeB := params.PackedASize(), params.PackedBSize()
	if v := packPool[T]().Get(); v != nil {
		bufs := v.(*packBuffers[T])
		if cap(bufs.a) >= sizeA && cap(bufs.b) >= sizeB {
			bufs.a = bufs.a[:sizeA]
			bufs.b = bufs.b[:sizeB]
			return bufs
		}
	}
	return &packBuffers[T]{a: make([]T, sizeA), b: make([]T, sizeB)}
}

func putPackBuffers[T simd.Floats](bufs *packBuffers[T]) {
	packPool[T]().Put(bufs)
}
