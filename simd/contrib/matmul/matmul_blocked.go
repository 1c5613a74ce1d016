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

// BlockSize is the output tile edge used by BlockedMatMul. A 48x48 tile of
// float32 C plus the matching strips of A and B stays L2 resident for the
// moderate K this path is chosen for.
const BlockSize = 48

// BlockedMatMul computes C = A * B over 48x48 output tiles. Inside a tile,
// 4x4 blocks of C are accumulated in registers across the whole K range and
// stored once; leftover rows and columns fall back to dot products.
func BlockedMatMul[T simd.Floats](a, b, c []T, m, n, k int) {
	checkDims(a, b, c, m, n, k)

	for i0 := 0; i0 < m; i0 += BlockSize {
		iEnd := min(i0+BlockSize, m)
		for j0 := 0; j0 < n; j0 += BlockSize {
			jEnd := min(j0+BlockSize, n)

			i := i0
			for ; i+4 <= iEnd; i += 4 {
				j := j0
				for ; j+4 <= jEnd; j += 4 {
					blockKernel4x4(a, b, c, n, k, i, j)
				}
				for ; j < jEnd; j++ {
					var sum0, sum1, sum2, sum3 T
					for p := range k {
						bpj := b[p*n+j]
						sum0 += a[i*k+p] * bpj
						sum1 += a[(i+1)*k+p] * bpj
						sum2 += a[(i+2)*k+p] * bpj
						sum3 += a[(i+3)*k+p] * bpj
					}
					c[i*n+j] = sum0
					c[(i+1)*n+j] = sum1
					c[(i+2)*n+j] = sum2
					c[(i+3)*n+j] = sum3
				}
			}

			for ; i < iEnd; i++ {
				aRow := a[i*k : (i+1)*k]
				for j := j0; j < jEnd; j++ {
					var sum T
					for p, aip := range aRow {
						sum += aip * b[p*n+j]
					}
					c[i*n+j] = sum
				}
			}
		}
	}
}

// blockKernel4x4 writes C[i:i+4, j:j+4] = A[i:i+4, :] * B[:, j:j+4].
func blockKernel4x4[T simd.Floats](a, b, c []T, n, k, i, j int) {
	var c00, c01, c02, c03 T
	var c10, c11, c12, c13 T
	var c20, c21, c22, c23 T
	var c30, c31, c32, c33 T

	a0 := a[i*k : (i+1)*k]
	a1 := a[(i+1)*k : (i+2)*k]
	a2 := a[(i+2)*k : (i+3)*k]
	a3 := a[(i+3)*k : (i+4)*k]
	for p := range k {
		bv := b[p*n+j : p*n+j+4 : p*n+j+4]
		b0, b1, b2, b3 := bv[0], bv[1], bv[2], bv[3]

		x := a0[p]
		c00 += x * b0
		c01 += x * b1
		c02 += x * b2
		c03 += x * b3
		x = a1[p]
		c10 += x * b0
		c11 += x * b1
		c12 += x * b2
		c13 += x * b3
		x = a2[p]
		c20 += x * b0
		c21 += x * b1
		c22 += x * b2
		c23 += x * b3
		x = a3[p]
		c30 += x * b0
		c31 += x * b1
		c32 += x * b2
		c33 += x * b3
	}

	row := c[i*n+j : i*n+j+4]
	row[0], row[1], row[2], row[3] = c00, c01, c02, c03
	row = c[(i+1)*n+j : (i+1)*n+j+4]
	row[0], row[1], row[2], row[3] = c10, c11, c12, c13
	row = c[(i+2)*n+j : (i+2)*n+j+4]
	row[0], row[1], row[2], row[3] = c20, c21, c22, c23
	row = c[(i+3)*n+j : (i+3)*n+j+4]
	row[0], row[1], row[2], row[3] = c30, c31, c32, c33
}

// BlockedMatMulFloat32 is the non-generic version for float32.
func BlockedMatMulFloat32(a, b, c []float32, m, n, k int) {
	BlockedMatMul(a, b, c, m, n, k)
}

// BlockedMatMulFloat64 is the non-generic version for float64.
func BlockedMatMulFloat64(a, b, c []float64, m, n, k int) {
	BlockedMatMul(a, b, c, m, n, k)
}
