// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import (
	"github.com/kashifulhaque/tinyndarray/simd"
	"github.com/kashifulhaque/tinyndarray/simd/contrib/workerpool"
)

// Transpose tuning parameters
const (
	// MinTransposeParallelOps is the minimum elements before parallelizing transpose
	MinTransposeParallelOps = 256 * 256

	// TransposeRowsPerStrip defines how many rows each worker processes
	TransposeRowsPerStrip = 64
)

// ParallelTranspose2D transposes an M x K row-major matrix to K x M using the
// worker pool. Transpose is bandwidth bound; several cores saturate memory
// where one cannot.
func ParallelTranspose2D[T simd.Floats](pool *workerpool.Pool, src []T, m, k int, dst []T) {
	if len(src) < m*k || len(dst) < k*m {
		panic("transpose: slice too short")
	}
	if pool == nil {
		Transpose2D(src, m, k, dst)
		return
	}

	pool.ParallelForAtomicBatched(m, TransposeRowsPerStrip, func(rowStart, rowEnd int) {
		Transpose2DStrided(src, rowStart, rowEnd, k, m, dst)
	})
}

// TransposeAuto transposes serially below MinTransposeParallelOps elements
// and on the pool above it.
func TransposeAuto[T simd.Floats](pool *workerpool.Pool, src []T, m, k int, dst []T) {
	if pool == nil || m*k < MinTransposeParallelOps {
		Transpose2D(src, m, k, dst)
		return
	}
	ParallelTranspose2D(pool, src, m, k, dst)
}

// TransposeAutoFloat32 is the non-generic version for float32.
func TransposeAutoFloat32(pool *workerpool.Pool, src []float32, m, k int, dst []float32) {
	TransposeAuto(pool, src, m, k, dst)
}

// TransposeAutoFloat64 is the non-generic version for float64.
func TransposeAutoFloat64(pool *workerpool.Pool, src []float64, m, k int, dst []float64) {
	TransposeAuto(pool, src, m, k, dst)
}
