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

// MatMulReference computes C = A * B with the textbook triple loop, one dot
// product per output element. It is the correctness oracle for the faster
// paths.
func MatMulReference[T simd.Floats](a, b, c []T, m, n, k int) {
	checkDims(a, b, c, m, n, k)
	for i := range m {
		for j := range n {
			var sum T
			for p := range k {
				sum += a[i*k+p] * b[p*n+j]
			}
			c[i*n+j] = sum
		}
	}
}

// MatMul computes C = A * B with a streaming i-p-j loop: each A element is
// broadcast against a contiguous row of B and accumulated into a row of C.
// It has no setup cost and is the fastest path for small products.
func MatMul[T simd.Floats](a, b, c []T, m, n, k int) {
	checkDims(a, b, c, m, n, k)
	clear(c[:m*n])

	for i := range m {
		cRow := c[i*n : (i+1)*n]
		for p := range k {
			aip := a[i*k+p]
			bRow := b[p*n : (p+1)*n]
			for j := range cRow {
				cRow[j] += aip * bRow[j]
			}
		}
	}
}

// MatMulFloat32 is the non-generic version for float32.
func MatMulFloat32(a, b, c []float32, m, n, k int) {
	MatMul(a, b, c, m, n, k)
}

// MatMulFloat64 is the non-generic version for float64.
func MatMulFloat64(a, b, c []float64, m, n, k int) {
	MatMul(a, b, c, m, n, k)
}

func checkDims[T simd.Floats](a, b, c []T, m, n, k int) {
	if len(a) < m*k {
		panic("matmul: A slice too short")
	}
	if len(b) < k*n {
		panic("matmul: B slice too short")
	}
	if len(c) < m*n {
		panic("matmul: C slice too short")
	}
}
