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

package interop

import (
	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/apache/arrow/go/v14/arrow/tensor"
	"github.com/pkg/errors"

	"github.com/kashifulhaque/tinyndarray/ndarray"
	"github.com/kashifulhaque/tinyndarray/simd"
)

// FromArrow copies a FLOAT32 or FLOAT64 Arrow tensor into a new array.
// Row-major tensors are copied in one pass; any other stride layout is
// gathered element by element.
func FromArrow[T simd.Floats](t tensor.Interface) (*ndarray.Array[T], error) {
	if t == nil {
		return nil, errors.Wrap(ndarray.ErrConversion, "nil arrow tensor")
	}
	shape, err := arrowShape(t.Shape())
	if err != nil {
		return nil, err
	}

	var data []T
	switch tt := t.(type) {
	case *tensor.Float32:
		data = gatherArrow[T](tt.Float32Values(), tt.IsRowMajor(), t.Shape(), tt.Value)
	case *tensor.Float64:
		data = gatherArrow[T](tt.Float64Values(), tt.IsRowMajor(), t.Shape(), tt.Value)
	default:
		return nil, errors.Wrapf(ndarray.ErrConversion, "arrow tensor of type %s", t.DataType())
	}
	return ndarray.FromSlice(data, shape...)
}

// ToArrow copies a into a new Arrow tensor of the given element type. Only
// ndarray.Float32 and ndarray.Float64 have Arrow tensor counterparts. The
// caller owns the result and must Release it.
func ToArrow[T simd.Floats](a *ndarray.Array[T], dtype ndarray.DType) (tensor.Interface, error) {
	shape := make([]int64, a.Ndim())
	for i, d := range a.Shape() {
		shape[i] = int64(d)
	}
	src := a.Data()

	switch dtype {
	case ndarray.Float32:
		vals := make([]float32, len(src))
		for i, v := range src {
			vals[i] = float32(v)
		}
		data := arrowData(arrow.PrimitiveTypes.Float32, len(vals), arrow.Float32Traits.CastToBytes(vals))
		defer data.Release()
		return tensor.NewFloat32(data, shape, nil, nil), nil
	case ndarray.Float64:
		vals := make([]float64, len(src))
		for i, v := range src {
			vals[i] = float64(v)
		}
		data := arrowData(arrow.PrimitiveTypes.Float64, len(vals), arrow.Float64Traits.CastToBytes(vals))
		defer data.Release()
		return tensor.NewFloat64(data, shape, nil, nil), nil
	}
	return nil, errors.Wrapf(ndarray.ErrConversion, "no arrow tensor type for %s", dtype)
}

func arrowData(dtype arrow.DataType, n int, raw []byte) arrow.ArrayData {
	return array.NewData(dtype, n, []*memory.Buffer{nil, memory.NewBufferBytes(raw)}, nil, 0, 0)
}

func arrowShape(dims []int64) (ndarray.Shape, error) {
	if len(dims) == 0 {
		return nil, errors.Wrap(ndarray.ErrConversion, "arrow tensor has no dimensions")
	}
	shape := make(ndarray.Shape, len(dims))
	for i, d := range dims {
		if d < 0 {
			return nil, errors.Wrapf(ndarray.ErrConversion, "arrow tensor has negative extent %d on axis %d", d, i)
		}
		shape[i] = int(d)
	}
	if err := shape.Validate(); err != nil {
		return nil, errors.Wrapf(ndarray.ErrConversion, "arrow tensor shape %v: %v", dims, err)
	}
	return shape, nil
}

// gatherArrow returns the tensor elements in row-major order converted to T.
func gatherArrow[T, S simd.Floats](values []S, rowMajor bool, dims []int64, at func([]int64) S) []T {
	n := 1
	for _, d := range dims {
		n *= int(d)
	}
	out := make([]T, n)
	if n == 0 {
		return out
	}
	if rowMajor {
		for i, v := range values[:n] {
			out[i] = T(v)
		}
		return out
	}

	idx := make([]int64, len(dims))
	for i := range out {
		out[i] = T(at(idx))
		for ax := len(idx) - 1; ax >= 0; ax-- {
			idx[ax]++
			if idx[ax] < dims[ax] {
				break
			}
			idx[ax] = 0
		}
	}
	return out
}
