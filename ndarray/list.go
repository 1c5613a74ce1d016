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
	"reflect"

	"github.com/pkg/errors"

	"github.com/kashifulhaque/tinyndarray/simd"
)

// FromList builds an array from nested Go slices or arrays, such as
// [][]float64{{1, 2}, {3, 4}} or []any{[]any{1, 2.5}, []int{3, 4}}.
//
// Leaves may be any Go integer or float kind and are converted to T. The
// nesting depth becomes the rank and the lengths become the extents, so
// every sibling must have the same length and depth: ragged input wraps
// ErrShapeMismatch. Non-numeric leaves wrap ErrConversion. A bare number
// wraps ErrInvalidShape because arrays need at least one axis.
func FromList[T simd.Floats](nested any) (*Array[T], error) {
	switch v := nested.(type) {
	case []T:
		return FromSlice(v, len(v))
	case *Array[T]:
		return v.Clone(), nil
	}

	rv := reflect.ValueOf(nested)
	if !isSequence(rv) {
		return nil, errors.Wrapf(ErrInvalidShape, "expected a nested slice, got %T", nested)
	}

	p := listParser[T]{leafDepth: -1}
	if err := p.walk(rv, 0); err != nil {
		return nil, err
	}
	a := newArray[T](p.shape)
	copy(a.buf.data, p.data)
	return a, nil
}

type listParser[T simd.Floats] struct {
	shape     Shape
	data      []T
	leafDepth int
}

// walk visits a sequence found at the given depth.
func (p *listParser[T]) walk(seq reflect.Value, depth int) error {
	n := seq.Len()
	switch {
	case depth == len(p.shape):
		if p.leafDepth >= 0 && depth >= p.leafDepth {
			return p.ragged(depth)
		}
		p.shape = append(p.shape, n)
	case p.shape[depth] != n:
		return p.ragged(depth)
	}

	for i := range n {
		elem := seq.Index(i)
		for elem.Kind() == reflect.Interface || elem.Kind() == reflect.Pointer {
			if elem.IsNil() {
				return errors.Wrapf(ErrConversion, "nil element at depth %d", depth+1)
			}
			elem = elem.Elem()
		}

		if isSequence(elem) {
			if p.leafDepth == depth+1 {
				return p.ragged(depth + 1)
			}
			if err := p.walk(elem, depth+1); err != nil {
				return err
			}
			continue
		}

		v, ok := numericValue(elem)
		if !ok {
			return errors.Wrapf(ErrConversion, "element of type %s is not a number", elem.Type())
		}
		switch {
		case p.leafDepth < 0:
			if len(p.shape) > depth+1 {
				return p.ragged(depth + 1)
			}
			p.leafDepth = depth + 1
		case p.leafDepth != depth+1:
			return p.ragged(depth + 1)
		}
		p.data = append(p.data, T(v))
	}
	return nil
}

func (p *listParser[T]) ragged(depth int) error {
	return errors.Wrapf(ErrShapeMismatch, "ragged nested sequence: inconsistent lengths or depths at depth %d", depth)
}

func isSequence(v reflect.Value) bool {
	k := v.Kind()
	return k == reflect.Slice || k == reflect.Array
}

func numericValue(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint()), true
	default:
		return 0, false
	}
}

// ToList returns the elements as nested []any slices, one level per axis,
// with T leaves. FromList inverts it exactly unless an axis has extent 0:
// an empty slice carries no information about the axes below it, so
// Zeros(2, 0, 3) comes back from FromList with shape [2, 0]. Use Data and
// Shape, or Reshape after FromList, to keep such shapes.
func (a *Array[T]) ToList() []any {
	return buildList(a.buf.data, a.shape)
}

func buildList[T simd.Floats](data []T, shape Shape) []any {
	out := make([]any, shape[0])
	if len(shape) == 1 {
		for i := range out {
			out[i] = data[i]
		}
		return out
	}
	stride := shape[1:].NumElements()
	for i := range out {
		out[i] = buildList(data[i*stride:(i+1)*stride], shape[1:])
	}
	return out
}
