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

import "github.com/pkg/errors"

// offset maps an index tuple to a position in the flat buffer.
func (a *Array[T]) offset(index []int) (int, error) {
	if len(index) != len(a.shape) {
		return 0, errors.Wrapf(ErrIndex, "expected %d indices for shape %s, got %d", len(a.shape), a.shape, len(index))
	}
	off := 0
	for axis, i := range index {
		if i < 0 || i >= a.shape[axis] {
			return 0, errors.Wrapf(ErrIndex, "index %d is out of bounds for axis %d with size %d", i, axis, a.shape[axis])
		}
		off += i * a.strides[axis]
	}
	return off, nil
}

// Get returns the element at index, one component per axis.
func (a *Array[T]) Get(index []int) (T, error) {
	off, err := a.offset(index)
	if err != nil {
		return 0, err
	}
	return a.buf.data[off], nil
}

// Set stores value at index. On error the array is unchanged.
func (a *Array[T]) Set(index []int, value T) error {
	off, err := a.offset(index)
	if err != nil {
		return err
	}
	a.mutableData()[off] = value
	return nil
}

// At is Get with the index spelled as arguments: a.At(1, 2).
func (a *Array[T]) At(index ...int) (T, error) {
	return a.Get(index)
}

// SetAt is Set with the index spelled as trailing arguments: a.SetAt(v, 1, 2).
func (a *Array[T]) SetAt(value T, index ...int) error {
	return a.Set(index, value)
}
