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
	"math"
	"math/bits"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Shape holds the extent of each axis, outermost first.
type Shape []int

// Rank returns the number of axes.
func (s Shape) Rank() int {
	return len(s)
}

// NumElements returns the product of the extents.
func (s Shape) NumElements() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Strides returns row-major strides in elements: the last axis has stride 1
// and each earlier axis strides over the product of the later extents.
func (s Shape) Strides() []int {
	strides := make([]int, len(s))
	acc := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= s[i]
	}
	return strides
}

// Clone returns a copy of s.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	return append(Shape(nil), s...)
}

// Equal reports whether both shapes have the same extents.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Validate checks that s has at least one axis, no negative extent, and an
// element count that fits in an int.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return errors.Wrap(ErrInvalidShape, "shape must have at least one axis")
	}
	for axis, d := range s {
		if d < 0 {
			return errors.Wrapf(ErrInvalidShape, "shape %s has negative extent on axis %d", s, axis)
		}
	}
	if _, ok := checkedProduct(s); !ok {
		return errors.Wrapf(ErrInvalidShape, "shape %s has more than %d elements", s, math.MaxInt)
	}
	return nil
}

// checkedProduct multiplies non-negative extents, reporting false when the
// product does not fit in an int. A zero extent makes the product zero no
// matter how large the others are.
func checkedProduct(s Shape) (int, bool) {
	if slices.Contains(s, 0) {
		return 0, true
	}
	n := 1
	for _, d := range s {
		hi, lo := bits.Mul64(uint64(n), uint64(d))
		if hi != 0 || lo > math.MaxInt {
			return 0, false
		}
		n = int(lo)
	}
	return n, true
}

// String formats the shape as "[2, 3]".
func (s Shape) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, d := range s {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(d))
	}
	sb.WriteByte(']')
	return sb.String()
}
