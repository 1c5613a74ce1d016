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
	"encoding/binary"
	"math"
	"math/bits"

	"github.com/nlpodyssey/safetensors"
	"github.com/pkg/errors"
	"github.com/x448/float16"

	"github.com/kashifulhaque/tinyndarray/ndarray"
	"github.com/kashifulhaque/tinyndarray/simd"
)

// FromTensorView decodes a little-endian F16, F32 or F64 tensor view into a
// new array. Half precision values are widened exactly.
func FromTensorView[T simd.Floats](tv safetensors.TensorView) (*ndarray.Array[T], error) {
	dims := tv.Shape()
	if len(dims) == 0 {
		return nil, errors.Wrap(ndarray.ErrConversion, "tensor view has no dimensions")
	}
	shape := make(ndarray.Shape, len(dims))
	for i, d := range dims {
		if d > math.MaxInt {
			return nil, errors.Wrapf(ndarray.ErrConversion, "tensor view extent %d on axis %d is too large", d, i)
		}
		shape[i] = int(d)
	}
	// NewTensorView checks the byte length with wrapping arithmetic, so an
	// overflowing shape can arrive with an empty payload.
	if err := shape.Validate(); err != nil {
		return nil, errors.Wrapf(ndarray.ErrConversion, "tensor view shape %v: %v", dims, err)
	}
	n := uint64(shape.NumElements())

	raw := tv.Data()
	size := tv.DType().Size()
	hi, want := bits.Mul64(n, size)
	if hi != 0 || uint64(len(raw)) != want {
		return nil, errors.Wrapf(ndarray.ErrConversion, "tensor view of shape %v holds %d bytes, want %d elements of %d bytes", dims, len(raw), n, size)
	}

	data := make([]T, n)
	switch tv.DType() {
	case safetensors.F16:
		for i := range data {
			data[i] = T(float16.Frombits(binary.LittleEndian.Uint16(raw[2*i:])).Float32())
		}
	case safetensors.F32:
		for i := range data {
			data[i] = T(math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:])))
		}
	case safetensors.F64:
		for i := range data {
			data[i] = T(math.Float64frombits(binary.LittleEndian.Uint64(raw[8*i:])))
		}
	default:
		return nil, errors.Wrapf(ndarray.ErrConversion, "tensor view dtype %v", tv.DType())
	}
	return ndarray.FromSlice(data, shape...)
}

// ToTensorView encodes a as little-endian bytes of the given element type.
// Narrowing to ndarray.Float16 rounds to nearest even; values beyond its
// range become infinities.
func ToTensorView[T simd.Floats](a *ndarray.Array[T], dtype ndarray.DType) (safetensors.TensorView, error) {
	shape := make([]uint64, a.Ndim())
	for i, d := range a.Shape() {
		shape[i] = uint64(d)
	}
	src := a.Data()

	var (
		st  safetensors.DType
		raw []byte
	)
	switch dtype {
	case ndarray.Float16:
		st, raw = safetensors.F16, make([]byte, 2*len(src))
		for i, v := range src {
			binary.LittleEndian.PutUint16(raw[2*i:], float16.Fromfloat32(float32(v)).Bits())
		}
	case ndarray.Float32:
		st, raw = safetensors.F32, make([]byte, 4*len(src))
		for i, v := range src {
			binary.LittleEndian.PutUint32(raw[4*i:], math.Float32bits(float32(v)))
		}
	case ndarray.Float64:
		st, raw = safetensors.F64, make([]byte, 8*len(src))
		for i, v := range src {
			binary.LittleEndian.PutUint64(raw[8*i:], math.Float64bits(float64(v)))
		}
	default:
		return safetensors.TensorView{}, errors.Wrapf(ndarray.ErrConversion, "no tensor view dtype for %s", dtype)
	}

	tv, err := safetensors.NewTensorView(st, shape, raw)
	if err != nil {
		return safetensors.TensorView{}, errors.Wrap(ndarray.ErrConversion, err.Error())
	}
	return tv, nil
}
