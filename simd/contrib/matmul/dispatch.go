// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package matmul

import (
	"github.com/kashifulhaque/tinyndarray/simd"
	"github.com/kashifulhaque/tinyndarray/simd/contrib/workerpool"
)

// Size-based dispatch thresholds, in total multiply-adds (M * N * K).
const (
	// Below this, the streaming loop beats anything with setup cost.
	SmallMatrixThreshold = 32 * 32 * 32

	// From here on, packing A and B pays for itself.
	PackedMatrixThreshold = 128 * 128 * 128

	// From here on, a worker pool is used when one is available.
	MinParallelOps = 64 * 64 * 64
)

// Path identifies the algorithm MatMulAuto runs.
type Path int

const (
	// PathEmpty means the output has no elements or K is zero.
	PathEmpty Path = iota
	PathStreaming
	PathBlocked
	PathPacked
	PathParallelPacked
)

// String returns a human-readable name for the path.
func (p Path) String() string {
	switch p {
	case PathEmpty:
		return "empty"
	case PathStreaming:
		return "streaming"
	case PathBlocked:
		return "blocked"
	case PathPacked:
		return "packed"
	case PathParallelPacked:
		return "parallel-packed"
	default:
		return "unknown"
	}
}

// Config tunes MatMulAuto. Start from DefaultConfig and override fields.
type Config struct {
	// Params are the cache blocking parameters for the packed paths.
	Params CacheParams

	// SmallThreshold, PackedThreshold and ParallelThreshold are op counts;
	// see the package level constants of the same role.
	SmallThreshold    int
	PackedThreshold   int
	ParallelThreshold int

	// TileRows and TileCols fix the parallel output tile size.
	// Zero picks a size from the worker count.
	TileRows int
	TileCols int
}

// DefaultConfig returns the configuration for element type T at the current
// dispatch level.
func DefaultConfig[T simd.Floats]() Config {
	return Config{
		Params:            getCacheParams[T](),
		SmallThreshold:    SmallMatrixThreshold,
		PackedThreshold:   PackedMatrixThreshold,
		ParallelThreshold: MinParallelOps,
	}
}

// SelectPath reports which algorithm MatMulAuto would run for an
// (m x k) * (k x n) product.
func SelectPath(pool *workerpool.Pool, cfg Config, m, n, k int) Path {
	if m == 0 || n == 0 || k == 0 {
		return PathEmpty
	}

	ops := m * n * k
	parallel := pool != nil && !pool.Closed() && pool.NumWorkers() > 1
	switch {
	case ops < cfg.SmallThreshold:
		return PathStreaming
	case parallel && ops >= cfg.ParallelThreshold:
		return PathParallelPacked
	case ops < cfg.PackedThreshold:
		return PathBlocked
	default:
		return PathPacked
	}
}

// MatMulAuto computes C = A * B with the algorithm SelectPath picks.
// C is fully overwritten; when K is zero it is zero-filled.
//
// pool may be nil, in which case everything runs on the calling goroutine.
func MatMulAuto[T simd.Floats](pool *workerpool.Pool, cfg Config, a, b, c []T, m, n, k int) {
	checkDims(a, b, c, m, n, k)

	switch SelectPath(pool, cfg, m, n, k) {
	case PathEmpty:
		clear(c[:m*n])
	case PathStreaming:
		MatMul(a, b, c, m, n, k)
	case PathBlocked:
		BlockedMatMul(a, b, c, m, n, k)
	case PathPacked:
		PackedMatMulWithParams(cfg.Params, a, b, c, m, n, k)
	case PathParallelPacked:
		ParallelPackedMatMul(pool, cfg, a, b, c, m, n, k)
	}
}

// MatMulAutoFloat32 is the non-generic version for float32.
func MatMulAutoFloat32(pool *workerpool.Pool, a, b, c []float32, m, n, k int) {
	MatMulAuto(pool, DefaultConfig[float32](), a, b, c, m, n, k)
}

// MatMulAutoFloat64 is the non-generic version for float64.
func MatMulAutoFloat64(pool *workerpool.Pool, a, b, c []float64, m, n, k int) {
	MatMulAuto(pool, DefaultConfig[float64](), a, b, c, m, n, k)
}
