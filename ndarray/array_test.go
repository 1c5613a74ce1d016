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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerosIndexing(t *testing.T) {
	a, err := Zeros[float32](3, 4)
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 4}, a.Shape())
	assert.Equal(t, []int{4, 1}, a.Strides())
	assert.Equal(t, 2, a.Ndim())
	assert.Equal(t, 12, a.Size())
	assert.Equal(t, Float32, a.DType())

	v, err := a.Get([]int{2, 3})
	require.NoError(t, err)
	assert.Equal(t, float32(0), v)

	require.NoError(t, a.Set([]int{2, 3}, 7.5))
	v, err = a.At(2, 3)
	require.NoError(t, err)
	assert.Equal(t, float32(7.5), v)
	assert.Equal(t, float32(7.5), a.Data()[11])

	_, err = a.Get([]int{3, 0})
	require.ErrorIs(t, err, ErrIndex)
	_, err = a.Get([]int{0, -1})
	require.ErrorIs(t, err, ErrIndex)
	_, err = a.Get([]int{1})
	require.ErrorIs(t, err, ErrIndex)
	_, err = a.At(1, 2, 3)
	require.ErrorIs(t, err, ErrIndex)

	require.ErrorIs(t, a.SetAt(1, 0, 4), ErrIndex)
	assert.Equal(t, float32(7.5), a.Data()[11], "failed Set leaves the array unchanged")
}

func TestConstructors(t *testing.T) {
	ones := Must(Ones[float64](2, 2))
	assert.Equal(t, []float64{1, 1, 1, 1}, ones.Data())

	full := Must(Full[float32](-2.5, 3))
	assert.Equal(t, []float32{-2.5, -2.5, -2.5}, full.Data())

	a, err := FromSlice([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)
	v, err := a.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)

	_, err = FromSlice([]float64{1, 2, 3}, 2, 2)
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, err = New[float32]()
	require.ErrorIs(t, err, ErrInvalidShape)
	_, err = Ones[float32](2, -3)
	require.ErrorIs(t, err, ErrInvalidShape)

	empty := Must(Zeros[float64](0, 5))
	assert.Equal(t, 0, empty.Size())
	assert.Equal(t, Shape{0, 5}, empty.Shape())

	assert.Panics(t, func() { Must(New[float32](-1)) })
}

func TestFromSliceCopies(t *testing.T) {
	src := []float32{1, 2, 3}
	a := Must(FromSlice(src, 3))
	src[0] = 100
	assert.Equal(t, []float32{1, 2, 3}, a.Data())

	data := a.Data()
	data[1] = 100
	assert.Equal(t, []float32{1, 2, 3}, a.Data(), "Data returns a copy")
}

func TestShapeAccessorsReturnCopies(t *testing.T) {
	a := Must(Zeros[float32](2, 3))
	s := a.Shape()
	s[0] = 9
	st := a.Strides()
	st[0] = 9
	assert.Equal(t, Shape{2, 3}, a.Shape())
	assert.Equal(t, []int{3, 1}, a.Strides())
}

func TestNewRejectsOverflowingShape(t *testing.T) {
	_, err := New[float32](math.MaxInt/2+1, 3)
	require.ErrorIs(t, err, ErrInvalidShape)

	a := Must(Zeros[float32](2, 3))
	err = a.Reshape(math.MaxInt/2+1, 2)
	require.ErrorIs(t, err, ErrInvalidShape)
	assert.Equal(t, Shape{2, 3}, a.Shape(), "failed reshape leaves the array untouched")
}

func TestReshape(t *testing.T) {
	a := Must(FromSlice([]float64{1, 2, 3, 4, 5, 6}, 2, 3))

	require.NoError(t, a.Reshape(3, 2))
	assert.Equal(t, Shape{3, 2}, a.Shape())
	assert.Equal(t, []int{2, 1}, a.Strides())
	v, err := a.At(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	require.NoError(t, a.Reshape(6))
	require.NoError(t, a.Reshape(1, 2, 3))
	require.NoError(t, a.Reshape(2, 3))
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, a.Data(), "reshape never moves data")

	err = a.Reshape(4, 2)
	require.ErrorIs(t, err, ErrShapeMismatch)
	assert.Equal(t, Shape{2, 3}, a.Shape(), "failed reshape leaves the array untouched")
	assert.Equal(t, []int{3, 1}, a.Strides())

	require.ErrorIs(t, a.Reshape(), ErrInvalidShape)

	empty := Must(Zeros[float32](0, 4))
	require.NoError(t, empty.Reshape(4, 0, 7))
}

func TestViewCopyOnWrite(t *testing.T) {
	a := Must(FromSlice([]float32{1, 2, 3, 4}, 2, 2))
	v := a.View()

	require.NoError(t, v.Reshape(4))
	assert.Equal(t, Shape{2, 2}, a.Shape(), "views reshape independently")

	require.NoError(t, v.SetAt(10, 0))
	assert.Equal(t, []float32{10, 2, 3, 4}, v.Data())
	assert.Equal(t, []float32{1, 2, 3, 4}, a.Data(), "write through a view does not leak")

	require.NoError(t, a.SetAt(20, 1, 1))
	assert.Equal(t, []float32{1, 2, 3, 20}, a.Data())
	assert.Equal(t, []float32{10, 2, 3, 4}, v.Data())
}

func TestViewRelease(t *testing.T) {
	a := Must(FromSlice([]float64{1, 2, 3}, 3))
	v := a.View()
	assert.True(t, a.buf.shared())

	v.Release()
	assert.Equal(t, Shape{0}, v.Shape())
	assert.Equal(t, 0, v.Size())
	assert.False(t, a.buf.shared())

	before := &a.buf.data[0]
	require.NoError(t, a.SetAt(5, 0))
	assert.Same(t, before, &a.buf.data[0], "sole owner writes in place")
}

func TestClone(t *testing.T) {
	a := Must(FromSlice([]float32{1, 2}, 2))
	c := a.Clone()
	require.NoError(t, c.SetAt(9, 0))
	assert.Equal(t, []float32{1, 2}, a.Data())
	assert.False(t, a.buf.shared())
}

func TestConvert(t *testing.T) {
	a := Must(FromSlice([]float64{0.1, 1e300, -2}, 3))
	b := Convert[float32](a)
	assert.Equal(t, Float32, b.DType())
	assert.Equal(t, float32(0.1), b.Data()[0])
	assert.True(t, math.IsInf(float64(b.Data()[1]), 1), "values beyond float32 range become +Inf")

	c := Convert[float64](b)
	assert.Equal(t, a.Shape(), c.Shape())
	assert.Equal(t, -2.0, c.Data()[2])
}

func TestEqualAllClose(t *testing.T) {
	a := Must(FromSlice([]float64{1, 2, math.Inf(1)}, 3))
	b := Must(FromSlice([]float64{1, 2 + 1e-9, math.Inf(1)}, 3))

	assert.True(t, a.Equal(a.Clone()))
	assert.False(t, a.Equal(b))
	assert.True(t, a.AllClose(b, 1e-5, 1e-8))
	assert.False(t, a.AllClose(Must(FromSlice([]float64{1, 2.1, math.Inf(1)}, 3)), 1e-5, 1e-8))

	nan := Must(FromSlice([]float64{math.NaN()}, 1))
	assert.False(t, nan.Equal(nan))
	assert.False(t, nan.AllClose(nan, 1, 1))
	one := Must(Ones[float64](1))
	assert.False(t, nan.AllClose(one, 1e-5, 1e-8))
	assert.False(t, one.AllClose(nan, 1e-5, 1e-8))

	reshaped := a.Clone()
	require.NoError(t, reshaped.Reshape(3, 1))
	assert.False(t, a.Equal(reshaped), "shapes must match")
}
