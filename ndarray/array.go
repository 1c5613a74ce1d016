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

// Array is a dense N-dimensional array of T stored in row-major order.
//
// The invariant len(storage) == shape.NumElements() holds for the lifetime
// of the value. Arrays returned by this package own fresh storage unless
// they come from View.
type Array[T simd.Floats] struct {
	shape   Shape
	strides []int
	buf     *storage[T]
}

// newArray allocates a zero-filled array; shape must already be valid.
func newArray[T simd.Floats](shape Shape) *Array[T] {
	return &Array[T]{
		shape:   shape,
		strides: shape.Strides(),
		buf:     newStorage[T](shape.NumElements()),
	}
}

// New returns a zero-filled array of the given shape.
func New[T simd.Floats](shape ...int) (*Array[T], error) {
	s := Shape(shape).Clone()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return newArray[T](s), nil
}

// Zeros is an alias of New.
func Zeros[T simd.Floats](shape ...int) (*Array[T], error) {
	return New[T](shape...)
}

// Ones returns an array of the given shape filled with 1.
func Ones[T simd.Floats](shape ...int) (*Array[T], error) {
	return Full[T](1, shape...)
}

// Full returns an array of the given shape filled with value.
func Full[T simd.Floats](value T, shape ...int) (*Array[T], error) {
	a, err := New[T](shape...)
	if err != nil {
		return nil, err
	}
	if value != 0 {
		data := a.buf.data
		for i := range data {
			data[i] = value
		}
	}
	return a, nil
}

// FromSlice returns an array of the given shape holding a copy of data.
// len(data) must equal the shape's element count.
func FromSlice[T simd.Floats](data []T, shape ...int) (*Array[T], error) {
	a, err := New[T](shape...)
	if err != nil {
		return nil, err
	}
	if len(data) != len(a.buf.data) {
		return nil, errors.Wrapf(ErrShapeMismatch, "%d values cannot fill shape %s (%d elements)",
			len(data), a.shape, len(a.buf.data))
	}
	copy(a.buf.data, data)
	return a, nil
}

// Must returns a or panics with err. It is meant for literals in tests and
// examples whose shapes are known to be valid.
func Must[T simd.Floats](a *Array[T], err error) *Array[T] {
	if err != nil {
		panic(err)
	}
	return a
}

// Shape returns a copy of the array's shape.
func (a *Array[T]) Shape() Shape {
	return a.shape.Clone()
}

// Strides returns a copy of the array's row-major strides, in elements.
func (a *Array[T]) Strides() []int {
	return append([]int(nil), a.strides...)
}

// Ndim returns the number of axes.
func (a *Array[T]) Ndim() int {
	return len(a.shape)
}

// Size returns the number of elements.
func (a *Array[T]) Size() int {
	return len(a.buf.data)
}

// DType returns the element type.
func (a *Array[T]) DType() DType {
	return DTypeOf[T]()
}

// Data returns a copy of the elements in row-major order.
func (a *Array[T]) Data() []T {
	return append([]T(nil), a.buf.data...)
}

// Reshape changes the shape in place. The new shape must have the same
// number of elements; otherwise the array is left untouched and the error
// wraps ErrShapeMismatch. The data is not moved.
func (a *Array[T]) Reshape(shape ...int) error {
	s := Shape(shape).Clone()
	if err := s.Validate(); err != nil {
		return err
	}
	if s.NumElements() != len(a.buf.data) {
		return errors.Wrapf(ErrShapeMismatch, "cannot reshape array of shape %s (%d elements) into shape %s (%d elements)",
			a.shape, len(a.buf.data), s, s.NumElements())
	}
	a.shape = s
	a.strides = s.Strides()
	return nil
}

// Clone returns a deep copy with its own storage.
func (a *Array[T]) Clone() *Array[T] {
	return &Array[T]{
		shape:   a.shape.Clone(),
		strides: append([]int(nil), a.strides...),
		buf:     a.buf.clone(),
	}
}

// View returns an array sharing a's storage. Reshaping either one does not
// affect the other. The first write through either one copies the storage,
// so writes are never visible through the other.
func (a *Array[T]) View() *Array[T] {
	return &Array[T]{
		shape:   a.shape.Clone(),
		strides: append([]int(nil), a.strides...),
		buf:     a.buf.retain(),
	}
}

// Release drops a's claim on its storage, letting the remaining views write
// without copying. Afterwards a is an empty array of shape [0].
func (a *Array[T]) Release() {
	a.buf.release()
	a.shape = Shape{0}
	a.strides = []int{1}
	a.buf = newStorage[T](0)
}

// mutableData returns the buffer for writing, detaching from shared storage
// first.
func (a *Array[T]) mutableData() []T {
	if a.buf.shared() {
		fresh := a.buf.clone()
		a.buf.release()
		a.buf = fresh
	}
	return a.buf.data
}

// Convert returns a copy of a with elements converted to U. Narrowing from
// float64 to float32 rounds to nearest; values beyond float32 range become
// infinities.
func Convert[U, T simd.Floats](a *Array[T]) *Array[U] {
	out := newArray[U](a.shape.Clone())
	dst := out.buf.data
	for i, v := range a.buf.data {
		dst[i] = U(v)
	}
	return out
}
