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

// Package matmul provides the dense matrix multiplication and 2-D transpose
// kernels behind ndarray.
//
// All matrices are row-major flat slices:
//
//	// C = A * B where A is MxK, B is KxN, C is MxN
//	a := make([]float32, M*K)
//	b := make([]float32, K*N)
//	c := make([]float32, M*N)
//
//	matmul.MatMulAuto(pool, matmul.DefaultConfig[float32](), a, b, c, M, N, K)
//
// MatMulAuto picks a path from the total operation count M*N*K:
//   - tiny products use a streaming i-p-j loop
//   - medium products use a 48x48 tiled kernel with 4x4 register blocking
//   - large products use the GotoBLAS five-loop algorithm: panels of B and A
//     are packed into K-major micro-panels sized for the L3, L2 and L1 caches
//     and fed to a 4x4 micro-kernel whose inner loop walks K contiguously
//   - with a worker pool, large products are split into disjoint output tiles
//     that run concurrently, each with its own packing buffers
//
// Block sizes come from CacheParams, chosen per simd.DispatchLevel and
// element size.
//
// Kernels panic when a slice is shorter than its dimensions require; callers
// validate user input before reaching this package.
package matmul
