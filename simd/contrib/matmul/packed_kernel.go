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

// PackedMicroKernel computes one mr x nr tile of C from a packed A
// micro-panel and a packed B micro-panel:
//
//	C[ir:ir+mr, jr:jr+nr] += packedA(mr x kc) * packedB(kc x nr)
//
// The 4x4 case keeps all sixteen accumulators in locals; other shapes use
// the general loop.
func PackedMicroKernel[T simd.Floats](packedA, packedB []T, c []T, n, ir, jr, kc, mr, nr int) {
	if mr != 4 || nr != 4 {
		PackedMicroKernelPartial(packedA, packedB, c, n, ir, jr, kc, mr, nr, mr, nr)
		return
	}

	var c00, c01, c02, c03 T
	var c10, c11, c12, c13 T
	var c20, c21, c22, c23 T
	var c30, c31, c32, c33 T

	pa := packedA[:kc*4]
	pb := packedB[:kc*4]
	for p := 0; p < len(pa); p += 4 {
		av := pa[p : p+4 : p+4]
		bv := pb[p : p+4 : p+4]
		a0, a1, a2, a3 := av[0], av[1], av[2], av[3]
		b0, b1, b2, b3 := bv[0], bv[1], bv[2], bv[3]

		c00 += a0 * b0
		c01 += a0 * b1
		c02 += a0 * b2
		c03 += a0 * b3
		c10 += a1 * b0
		c11 += a1 * b1
		c12 += a1 * b2
		c13 += a1 * b3
		c20 += a2 * b0
		c21 += a2 * b1
		c22 += a2 * b2
		c23 += a2 * b3
		c30 += a3 * b0
		c31 += a3 * b1
		c32 += a3 * b2
		c33 += a3 * b3
	}

	row := c[ir*n+jr : ir*n+jr+4]
	row[0] += c00
	row[1] += c01
	row[2] += c02
	row[3] += c03
	row = c[(ir+1)*n+jr : (ir+1)*n+jr+4]
	row[0] += c10
	row[1] += c11
	row[2] += c12
	row[3] += c13
	row = c[(ir+2)*n+jr : (ir+2)*n+jr+4]
	row[0] += c20
	row[1] += c21
	row[2] += c22
	row[3] += c23
	row = c[(ir+3)*n+jr : (ir+3)*n+jr+4]
	row[0] += c30
	row[1] += c31
	row[2] += c32
	row[3] += c33
}

// PackedMicroKernelPartial handles edge tiles where only activeRows x
// activeCols of the mr x nr tile lie inside C. The packed panels still have
// the full padded layout.
func PackedMicroKernelPartial[T simd.Floats](packedA, packedB []T, c []T, n, ir, jr, kc, mr, nr, activeRows, activeCols int) {
	for r := range activeRows {
		cRow := c[(ir+r)*n+jr : (ir+r)*n+jr+activeCols]
		for col := range activeCols {
			var sum T
			for p := range kc {
				sum += packedA[p*mr+r] * packedB[p*nr+col]
			}
			cRow[col] += sum
		}
	}
}
