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
	"github.com/pkg/errors"

	"github.com/kashifulhaque/tinyndarray/simd"
)

type binaryOp int

const (
	opAdd binaryOp = iota
	opSub
	opMul
	opDiv
)

func (op binaryOp) String() string {
	switch op {
	case opAdd:
		return "add"
	case opSub:
		return "sub"
	case opMul:
		return "mul"
	default:
		return "div"
	}
}

// rowKernel computes dst[i] = x[i*xs] op y[i*ys] for a row. Strides are 1
// for an operand that advances along the row and 0 for one broadcast across
// it.
type rowKernel[T simd.Floats] func(dst, x []T, xs int, y []T, ys int)

func kernelFor[T simd.Floats](op binaryOp) rowKernel[T] {
	switch op {
	case opAdd:
		return addRow[T]
	case opSub:
		return subRow[T]
	case opMul:
		return mulRow[T]
	default:
		return divRow[T]
	}
}

func addRow[T simd.Floats](dst, x []T, xs int, y []T, ys int) {
	n := len(dst)
	switch {
	case xs == 1 && ys == 1:
		x, y = x[:n], y[:n]
		for i := range dst {
			dst[i] = x[i] + y[i]
		}
	case xs == 1:
		x, s := x[:n], y[0]
		for i := range dst {
			dst[i] = x[i] + s
		}
	case ys == 1:
		s, y := x[0], y[:n]
		for i := range dst {
			dst[i] = s + y[i]
		}
	default:
		fill(dst, x[0]+y[0])
	}
}

func subRow[T simd.Floats](dst, x []T, xs int, y []T, ys int) {
	n := len(dst)
	switch {
	case xs == 1 && ys == 1:
		x, y = x[:n], y[:n]
		for i := range dst {
			dst[i] = x[i] - y[i]
		}
	case xs == 1:
		x, s := x[:n], y[0]
		for i := range dst {
			dst[i] = x[i] - s
		}
	case ys == 1:
		s, y := x[0], y[:n]
		for i := range dst {
			dst[i] = s - y[i]
		}
	default:
		fill(dst, x[0]-y[0])
	}
}

func mulRow[T simd.Floats](dst, x []T, xs int, y []T, ys int) {
	n := len(dst)
	switch {
	case xs == 1 && ys == 1:
		x, y = x[:n], y[:n]
		for i := range dst {
			dst[i] = x[i] * y[i]
		}
	case xs == 1:
		x, s := x[:n], y[0]
		for i := range dst {
			dst[i] = x[i] * s
		}
	case ys == 1:
		s, y := x[0], y[:n]
		for i := range dst {
			dst[i] = s * y[i]
		}
	default:
		fill(dst, x[0]*y[0])
	}
}

func divRow[T simd.Floats](dst, x []T, xs int, y []T, ys int) {
	n := len(dst)
	switch {
	case xs == 1 && ys == 1:
		x, y = x[:n], y[:n]
		for i := range dst {
			dst[i] = x[i] / y[i]
		}
	case xs == 1:
		x, s := x[:n], y[0]
		for i := range dst {
			dst[i] = x[i] / s
		}
	case ys == 1:
		s, y := x[0], y[:n]
		for i := range dst {
			dst[i] = s / y[i]
		}
	default:
		fill(dst, x[0]/y[0])
	}
}

func fill[T simd.Floats](dst []T, v T) {
	for i := range dst {
		dst[i] = v
	}
}

// binary applies op elementwise, broadcasting the operands against each
// other. Neither operand is modified.
func binary[T simd.Floats](op binaryOp, a, b *Array[T]) (*Array[T], error) {
	kernel := kernelFor[T](op)

	if a.shape.Equal(b.shape) {
		out := newArray[T](a.shape.Clone())
		kernel(out.buf.data, a.buf.data, 1, b.buf.data, 1)
		return out, nil
	}

	plan, err := planBroadcast(a.shape, b.shape)
	if err != nil {
		return nil, errors.WithMessage(err, op.String())
	}
	out := newArray[T](plan.shape)
	if out.Size() == 0 {
		return out, nil
	}

	last := len(plan.shape) - 1
	rowLen := plan.shape[last]
	xs, ys := plan.left[last], plan.right[last]
	dst, x, y := out.buf.data, a.buf.data, b.buf.data
	plan.forEachRow(func(o, l, r int) {
		kernel(dst[o:o+rowLen], x[l:], xs, y[r:], ys)
	})
	return out, nil
}

// scalar applies op between every element of a and s.
func scalar[T simd.Floats](op binaryOp, a *Array[T], s T) *Array[T] {
	out := newArray[T](a.shape.Clone())
	if out.Size() > 0 {
		kernelFor[T](op)(out.buf.data, a.buf.data, 1, []T{s}, 0)
	}
	return out
}

// Add returns a + b with broadcasting.
func Add[T simd.Floats](a, b *Array[T]) (*Array[T], error) { return binary(opAdd, a, b) }

// Sub returns a - b with broadcasting.
func Sub[T simd.Floats](a, b *Array[T]) (*Array[T], error) { return binary(opSub, a, b) }

// Mul returns the elementwise product a * b with broadcasting.
func Mul[T simd.Floats](a, b *Array[T]) (*Array[T], error) { return binary(opMul, a, b) }

// Div returns the elementwise quotient a / b with broadcasting.
func Div[T simd.Floats](a, b *Array[T]) (*Array[T], error) { return binary(opDiv, a, b) }

// Add returns a + other with broadcasting.
func (a *Array[T]) Add(other *Array[T]) (*Array[T], error) { return binary(opAdd, a, other) }

// Sub returns a - other with broadcasting.
func (a *Array[T]) Sub(other *Array[T]) (*Array[T], error) { return binary(opSub, a, other) }

// Mul returns a * other elementwise with broadcasting.
func (a *Array[T]) Mul(other *Array[T]) (*Array[T], error) { return binary(opMul, a, other) }

// Div returns a / other elementwise with broadcasting.
func (a *Array[T]) Div(other *Array[T]) (*Array[T], error) { return binary(opDiv, a, other) }

// AddScalar returns a + s.
func (a *Array[T]) AddScalar(s T) *Array[T] { return scalar(opAdd, a, s) }

// SubScalar returns a - s.
func (a *Array[T]) SubScalar(s T) *Array[T] { return scalar(opSub, a, s) }

// MulScalar returns a * s.
func (a *Array[T]) MulScalar(s T) *Array[T] { return scalar(opMul, a, s) }

// DivScalar returns a / s. Division by zero follows IEEE 754.
func (a *Array[T]) DivScalar(s T) *Array[T] { return scalar(opDiv, a, s) }
