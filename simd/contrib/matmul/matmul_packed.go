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

import "github.com/kashifulhaque/tinyndarray/simd"

// PackedMatMul computes C = A * B single-threaded with the GotoBLAS five-loop
// algorithm, using the cache parameters of the current dispatch level.
func PackedMatMul[T simd.Floats](a, b, c []T, m, n, k int) {
	PackedMatMulWithParams(getCacheParams[T](), a, b, c, m, n, k)
}

// PackedMatMulWithParams is PackedMatMul with explicit blocking parameters.
// It panics if params is not Valid.
func PackedMatMulWithParams[T simd.Floats](params CacheParams, a, b, c []T, m, n, k int) {
	checkDims(a, b, c, m, n, k)
	if !params.Valid() {
		panic("matmul: invalid cache params")
	}

	bufs := getPackBuffers[T](params)
	defer putPackBuffers(bufs)

	packedTile(a, b, c, m, n, k, tile{rowEnd: m, colEnd: n}, bufs.a, bufs.b, params)
}

// PackedMatMulFloat32 is the non-generic version for float32.
func PackedMatMulFloat32(a, b, c []float32, m, n, k int) {
	PackedMatMul(a, b, c, m, n, k)
}

// PackedMatMulFloat64 is the non-generic version for float64.
func PackedMatMulFloat64(a, b, c []float64, m, n, k int) {
	PackedMatMul(a, b, c, m, n, k)
}

// tile is a rectangle [rowStart, rowEnd) x [colStart, colEnd) of C.
type tile struct {
	rowStart, rowEnd int
	colStart, colEnd int
}

// packedTile overwrites one tile of C with the matching block of A * B.
// Tiles of C are disjoint, so concurrent calls on different tiles never
// touch the same output element.
func packedTile[T simd.Floats](a, b, c []T, m, n, k int, t tile, packedA, packedB []T, params CacheParams) {
	mr, nr := params.Mr, params.Nr
	kc, mc, nc := params.Kc, params.Mc, params.Nc

	for i := t.rowStart; i < t.rowEnd; i++ {
		clear(c[i*n+t.colStart : i*n+t.colEnd])
	}

	// Loop 5: B panels (L3 blocking)
	for jc := t.colStart; jc < t.colEnd; jc += nc {
		panelCols := min(jc+nc, t.colEnd) - jc

		// Loop 4: K blocking (L1)
		for pc := 0; pc < k; pc += kc {
			panelK := min(pc+kc, k) - pc

			PackRHS(b, packedB, k, n, pc, jc, panelK, panelCols, nr)

			// Loop 3: A panels (L2 blocking)
			for ic := t.rowStart; ic < t.rowEnd; ic += mc {
				panelRows := min(ic+mc, t.rowEnd) - ic

				activeRowsLast := PackLHS(a, packedA, m, k, ic, pc, panelRows, panelK, mr)
				gebp(packedA, packedB, c, n, ic, jc, panelRows, panelCols, panelK, mr, nr, activeRowsLast)
			}
		}
	}
}

// gebp runs loops 2 and 1 over the packed panels: every nr-wide B
// micro-panel against every mr-tall A micro-panel.
func gebp[T simd.Floats](packedA, packedB []T, c []T, n, ic, jc, panelRows, panelCols, panelK, mr, nr, activeRowsLast int) {
	numMicroPanelsA := (panelRows + mr - 1) / mr
	numMicroPanelsB := (panelCols + nr - 1) / nr
	activeColsLast := panelCols - (numMicroPanelsB-1)*nr

	for jPanel := range numMicroPanelsB {
		jr := jc + jPanel*nr
		bPanel := packedB[jPanel*panelK*nr:]

		activeCols := nr
		if jPanel == numMicroPanelsB-1 {
			activeCols = activeColsLast
		}

		for iPanel := range numMicroPanelsA {
			ir := ic + iPanel*mr
			aPanel := packedA[iPanel*panelK*mr:]

			activeRows := mr
			if iPanel == numMicroPanelsA-1 {
				activeRows = activeRowsLast
			}

			if activeRows == mr && activeCols == nr {
				PackedMicroKernel(aPanel, bPanel, c, n, ir, jr, panelK, mr, nr)
			} else {
				PackedMicroKernelPartial(aPanel, bPanel, c, n, ir, jr, panelK, mr, nr, activeRows, activeCols)
			}
		}
	}
}
