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

// BroadcastShapes returns the shape two operands broadcast to.
//
// Shapes are aligned on their trailing axes and missing leading axes count
// as extent 1. Two extents are compatible when they are equal or one of them
// is 1; the result takes the larger. The returned error wraps a
// *BroadcastError naming the first incompatible axis seen from the right.
func BroadcastShapes(left, right Shape) (Shape, error) {
	plan, err := planBroadcast(left, right)
	if err != nil {
		return nil, err
	}
	return plan.shape, nil
}

// broadcastPlan describes how both operands map onto the result. The stride
// slices have one entry per result axis, in elements of the operand's own
// buffer; broadcast axes have stride 0 so every step reads index 0.
type broadcastPlan struct {
	shape Shape
	left  []int
	right []int
}

func planBroadcast(left, right Shape) (broadcastPlan, error) {
	nd := max(len(left), len(right))
	plan := broadcastPlan{
		shape: make(Shape, nd),
		left:  make([]int, nd),
		right: make([]int, nd),
	}
	ls, rs := left.Strides(), right.Strides()

	for axis := nd - 1; axis >= 0; axis-- {
		li := axis - (nd - len(left))
		ri := axis - (nd - len(right))
		ld, rd := 1, 1
		if li >= 0 {
			ld = left[li]
		}
		if ri >= 0 {
			rd = right[ri]
		}

		switch {
		case ld == rd:
			plan.shape[axis] = ld
		case ld == 1:
			plan.shape[axis] = rd
		case rd == 1:
			plan.shape[axis] = ld
		default:
			return broadcastPlan{}, errors.WithStack(&BroadcastError{
				Axis:        axis,
				Left:        left.Clone(),
				Right:       right.Clone(),
				LeftExtent:  ld,
				RightExtent: rd,
			})
		}

		// Size-1 axes never advance, whether or not they are broadcast.
		if li >= 0 && ld != 1 {
			plan.left[axis] = ls[li]
		}
		if ri >= 0 && rd != 1 {
			plan.right[axis] = rs[ri]
		}
	}
	return plan, nil
}

// forEachRow calls fn once per row of the result (a run along the last
// axis), with the starting offsets into the result and both operands.
// The odometer advances the operand offsets incrementally, so no index is
// ever unraveled.
func (p broadcastPlan) forEachRow(fn func(out, left, right int)) {
	nd := len(p.shape)
	if p.shape.NumElements() == 0 {
		return
	}
	rowLen := p.shape[nd-1]
	idx := make([]int, nd)
	lOff, rOff := 0, 0

	for out := 0; ; out += rowLen {
		fn(out, lOff, rOff)

		axis := nd - 2
		for ; axis >= 0; axis-- {
			idx[axis]++
			lOff += p.left[axis]
			rOff += p.right[axis]
			if idx[axis] < p.shape[axis] {
				break
			}
			lOff -= p.left[axis] * p.shape[axis]
			rOff -= p.right[axis] * p.shape[axis]
			idx[axis] = 0
		}
		if axis < 0 {
			return
		}
	}
}

// gatherStrided copies the elements of src addressed by shape and srcStrides
// into dst in row-major order of shape.
func gatherStrided[T any](dst, src []T, shape Shape, srcStrides []int) {
	nd := len(shape)
	plan := broadcastPlan{shape: shape, left: srcStrides, right: make([]int, nd)}
	rowLen := shape[nd-1]
	inner := srcStrides[nd-1]
	plan.forEachRow(func(out, off, _ int) {
		row := dst[out : out+rowLen]
		for i := range row {
			row[i] = src[off+i*inner]
		}
	})
}
