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

package ndarray

import (
	"github.com/kashifulhaque/tinyndarray/simd"
	"github.com/kashifulhaque/tinyndarray/simd/contrib/matmul"
)

// Transpose returns a new array with the axes of a reversed:
// out[i0, ..., in-1] = a[in-1, ..., i0]. A 1-D array is copied unchanged.
// Matrices are transposed with the tiled kernel, on the engine's pool when
// large.
func Transpose[T simd.Floats](e *Engine, a *Array[T]) *Array[T] {
	nd := a.Ndim()
	shape := make(Shape, nd)
	for i, d := range a.shape {
		shape[nd-1-i] = d
	}
	out := newArray[T](shape)
	if out.Size() == 0 {
		return out
	}

	switch nd {
	case 1:
		copy(out.buf.data, a.buf.data)
	case 2:
		matmul.TransposeAuto(e.pool, a.buf.data, a.shape[0], a.shape[1], out.buf.data)
	default:
		srcStrides := make([]int, nd)
		for i, s := range a.strides {
			srcStrides[nd-1-i] = s
		}
		if e.pool == nil || out.Size() < matmul.MinTransposeParallelOps {
			gatherStrided(out.buf.data, a.buf.data, shape, srcStrides)
			break
		}
		// Each slab along the outermost output axis is independent.
		slab := shape[1:].NumElements()
		e.pool.ParallelFor(shape[0], func(start, end int) {
			for i := start; i < end; i++ {
				gatherStrided(out.buf.data[i*slab:(i+1)*slab], a.buf.data[i*srcStrides[0]:], shape[1:], srcStrides[1:])
			}
		})
	}
	return out
}

// Transpose returns a with its axes reversed, as a new array.
func (a *Array[T]) Transpose() *Array[T] {
	return Transpose(DefaultEngine(), a)
}
