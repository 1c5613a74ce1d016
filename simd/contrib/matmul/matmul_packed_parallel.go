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

// minTileCols keeps column splits wide enough that packing B stays amortized.
const minTileCols = 64

// ParallelPackedMatMul computes C = A * B on a worker pool.
//
// C is partitioned into disjoint tiles. Row strips come first; when there are
// fewer strips than workers (short, wide products) the columns are split as
// well. Workers pull tiles through an atomic counter and run the packed
// five-loop algorithm on each, with packing buffers taken from a per-type
// sync.Pool, so no output element is written by two workers and no locks are
// needed. The call returns once every tile is done.
//
// A nil, closed or single-worker pool runs the single-threaded packed path.
func ParallelPackedMatMul[T simd.Floats](pool *workerpool.Pool, cfg Config, a, b, c []T, m, n, k int) {
	checkDims(a, b, c, m, n, k)
	if !cfg.Params.Valid() {
		panic("matmul: invalid cache params")
	}
	if m == 0 || n == 0 {
		return
	}
	if pool == nil || pool.Closed() || pool.NumWorkers() == 1 {
		PackedMatMulWithParams(cfg.Params, a, b, c, m, n, k)
		return
	}

	tiles := planTiles(m, n, pool.NumWorkers(), cfg)
	pool.ParallelForAtomic(len(tiles), func(i int) {
		bufs := getPackBuffers[T](cfg.Params)
		packedTile(a, b, c, m, n, k, tiles[i], bufs.a, bufs.b, cfg.Params)
		putPackBuffers(bufs)
	})
}

// ParallelPackedMatMulFloat32 is the non-generic version for float32.
func ParallelPackedMatMulFloat32(pool *workerpool.Pool, cfg Config, a, b, c []float32, m, n, k int) {
	ParallelPackedMatMul(pool, cfg, a, b, c, m, n, k)
}

// ParallelPackedMatMulFloat64 is the non-generic version for float64.
func ParallelPackedMatMulFloat64(pool *workerpool.Pool, cfg Config, a, b, c []float64, m, n, k int) {
	ParallelPackedMatMul(pool, cfg, a, b, c, m, n, k)
}

// planTiles partitions the m x n output for the given number of workers.
// Tile heights are multiples of Mr and widths multiples of Nr, except at
// the bottom and right edges.
func planTiles(m, n, workers int, cfg Config) []tile {
	p := cfg.Params

	rows := cfg.TileRows
	if rows <= 0 {
		rows = roundUp(ceilDiv(m, workers), p.Mr)
		rows = min(rows, p.Mc)
	}
	rowTiles := ceilDiv(m, rows)

	cols := cfg.TileCols
	if cols <= 0 {
		cols = n
		if rowTiles < workers {
			splits := ceilDiv(workers, rowTiles)
			cols = max(roundUp(ceilDiv(n, splits), p.Nr), minTileCols)
		}
	}
	colTiles := ceilDiv(n, cols)

	tiles := make([]tile, 0, rowTiles*colTiles)
	for i := 0; i < m; i += rows {
		for j := 0; j < n; j += cols {
			tiles = append(tiles, tile{
				rowStart: i, rowEnd: min(i+rows, m),
				colStart: j, colEnd: min(j+cols, n),
			})
		}
	}
	return tiles
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func roundUp(a, multiple int) int {
	return ceilDiv(a, multiple) * multiple
}
