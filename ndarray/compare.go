// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package ndarray

import "math"

// Equal reports whether both arrays have the same shape and elements.
// NaN is never equal to anything, as with ==.
func (a *Array[T]) Equal(other *Array[T]) bool {
	if !a.shape.Equal(other.shape) {
		return false
	}
	for i, v := range a.buf.data {
		if v != other.buf.data[i] {
			return false
		}
	}
	return true
}

// AllClose reports whether both arrays have the same shape and every pair
// of elements satisfies |a - b| <= atol + rtol*|b|. Infinities match only
// themselves and NaN matches nothing.
func (a *Array[T]) AllClose(other *Array[T], rtol, atol float64) bool {
	if !a.shape.Equal(other.shape) {
		return false
	}
	for i, v := range a.buf.data {
		x, y := float64(v), float64(other.buf.data[i])
		if x == y {
			continue
		}
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			return false
		}
		if math.Abs(x-y) > atol+rtol*math.Abs(y) {
			return false
		}
	}
	return true
}
