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

// transposeBlock is the tile edge for cache-friendly transpose. 16x16 float64
// tiles of source and destination together fit in 4KB.
const transposeBlock = 16

// Transpose2D transposes an M x K row-major matrix into the K x M row-major dst.
func Transpose2D[T simd.Floats](src []T, m, k int, dst []T) {
	if len(src) < m*k || len(dst) < k*m {
		panic("transpose: slice too short")
	}
	Transpose2DStrided(src, 0, m, k, m, dst)
}

// Transpose2DStrided transposes rows [rowStart, rowEnd) of an M x K matrix
// into columns [rowStart, rowEnd) of the destination, whose rows are dstM
// elements long. Disjoint row ranges write disjoint destination columns,
// which lets strips run concurrently.
//
//	dst[j*dstM + i] = src[i*k + j]
func Transpose2DStrided[T simd.Floats](src []T, rowStart, rowEnd, k, dstM int, dst []T) {
	for i0 := rowStart; i0 < rowEnd; i0 += transposeBlock {
		iEnd := min(i0+transposeBlock, rowEnd)
		for j0 := 0; j0 < k; j0 += transposeBlock {
			jEnd := min(j0+transposeBlock, k)
			for i := i0; i < iEnd; i++ {
				row := src[i*k+j0 : i*k+jEnd]
				for jj, v := range row {
					dst[(j0+jj)*dstM+i] = v
				}
			}
		}
	}
}

// Transpose2DFloat32 is the non-generic version for float32.
func Transpose2DFloat32(src []float32, m, k int, dst []float32) {
	Transpose2D(src, m, k, dst)
}

// Transpose2DFloat64 is the non-generic version for float64.
func Transpose2DFloat64(src []float64, m, k int, dst []float64) {
	Transpose2D(src, m, k, dst)
}
