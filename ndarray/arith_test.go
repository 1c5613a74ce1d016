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
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBroadcastRow(t *testing.T) {
	a := Must(Ones[float32](2, 3))
	b := Must(Ones[float32](1, 3))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, sum.Shape())
	assert.Equal(t, []float32{2, 2, 2, 2, 2, 2}, sum.Data())

	// Operands are untouched.
	assert.Equal(t, []float32{1, 1, 1, 1, 1, 1}, a.Data())
	assert.Equal(t, []float32{1, 1, 1}, b.Data())
}

func TestBinaryOpsSameShape(t *testing.T) {
	a := Must(FromSlice([]float64{1, 2, 3, 4}, 2, 2))
	b := Must(FromSlice([]float64{5, 6, 7, 8}, 2, 2))

	tests := []struct {
		name string
		fn   func(a, b *Array[float64]) (*Array[float64], error)
		want []float64
	}{
		{"add", Add[float64], []float64{6, 8, 10, 12}},
		{"sub", Sub[float64], []float64{-4, -4, -4, -4}},
		{"mul", Mul[float64], []float64{5, 12, 21, 32}},
		{"div", Div[float64], []float64{0.2, 2.0 / 6, 3.0 / 7, 0.5}},
	}
	for _, tc := range tests {
		got, err := tc.fn(a, b)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, got.Data(), tc.name)
	}
}

func TestBroadcastGeneral(t *testing.T) {
	col := Must(FromSlice([]float64{10, 20, 30}, 3, 1))
	row := Must(FromSlice([]float64{1, 2, 3, 4}, 4))

	sum, err := col.Add(row)
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 4}, sum.Shape())
	assert.Equal(t, []float64{
		11, 12, 13, 14,
		21, 22, 23, 24,
		31, 32, 33, 34,
	}, sum.Data())

	// Broadcast on the left operand keeps operand order for sub and div.
	diff, err := row.Sub(col)
	require.NoError(t, err)
	v, err := diff.At(2, 0)
	require.NoError(t, err)
	assert.Equal(t, -29.0, v)

	quot, err := Div(row, col)
	require.NoError(t, err)
	v, err = quot.At(0, 3)
	require.NoError(t, err)
	assert.Equal(t, 0.4, v)
}

func TestBroadcastRank3(t *testing.T) {
	data := make([]float32, 24)
	for i := range data {
		data[i] = float32(i)
	}
	a := Must(FromSlice(data, 2, 3, 4))
	mid := Must(FromSlice([]float32{100, 200, 300}, 3, 1))

	out, err := a.Mul(mid)
	require.NoError(t, err)
	require.Equal(t, Shape{2, 3, 4}, out.Shape())
	for i := range 2 {
		for j := range 3 {
			for k := range 4 {
				got, err := out.At(i, j, k)
				require.NoError(t, err)
				want := float32(i*12+j*4+k) * float32(100*(j+1))
				assert.Equal(t, want, got, "[%d,%d,%d]", i, j, k)
			}
		}
	}

	// Size-1 axes on both sides.
	x := Must(Full[float32](2, 1, 3, 1))
	y := Must(Full[float32](5, 2, 1, 4))
	z, err := x.Sub(y)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3, 4}, z.Shape())
	for _, v := range z.Data() {
		assert.Equal(t, float32(-3), v)
	}
}

func TestBroadcastErrorNamesAxis(t *testing.T) {
	a := Must(Zeros[float32](2, 3))
	b := Must(Zeros[float32](3, 2))

	_, err := a.Add(b)
	require.ErrorIs(t, err, ErrBroadcast)
	var be *BroadcastError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 1, be.Axis)
	assert.Equal(t, 3, be.LeftExtent)
	assert.Equal(t, 2, be.RightExtent)
}

func TestBroadcastZeroExtent(t *testing.T) {
	a := Must(Zeros[float64](0, 3))
	b := Must(Ones[float64](1, 3))
	out, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, Shape{0, 3}, out.Shape())
	assert.Equal(t, 0, out.Size())
}

func TestScalarOps(t *testing.T) {
	a := Must(FromSlice([]float32{1, 2, 3, 4}, 2, 2))

	assert.Equal(t, []float32{3, 4, 5, 6}, a.AddScalar(2).Data())
	assert.Equal(t, []float32{-1, 0, 1, 2}, a.SubScalar(2).Data())
	assert.Equal(t, []float32{2, 4, 6, 8}, a.MulScalar(2).Data())
	assert.Equal(t, []float32{0.5, 1, 1.5, 2}, a.DivScalar(2).Data())
	assert.Equal(t, Shape{2, 2}, a.MulScalar(2).Shape())
	assert.Equal(t, []float32{1, 2, 3, 4}, a.Data(), "scalar ops leave the operand unchanged")

	empty := Must(Zeros[float32](0))
	assert.Equal(t, 0, empty.AddScalar(1).Size())
}

func TestDivisionByZeroIsNotAnError(t *testing.T) {
	a := Must(FromSlice([]float64{1, -1, 0}, 3))
	zero := Must(Zeros[float64](3))

	q, err := a.Div(zero)
	require.NoError(t, err)
	d := q.Data()
	assert.True(t, math.IsInf(d[0], 1))
	assert.True(t, math.IsInf(d[1], -1))
	assert.True(t, math.IsNaN(d[2]))

	s := a.DivScalar(0).Data()
	assert.True(t, math.IsInf(s[0], 1))
	assert.True(t, math.IsNaN(s[2]))
}

func TestArithmeticKeepsElementPrecision(t *testing.T) {
	x, y := 0.1, 0.2
	a := Must(FromSlice([]float64{x}, 1))
	b := Must(FromSlice([]float64{y}, 1))
	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, x+y, sum.Data()[0])

	x32, y32 := float32(x), float32(y)
	a32 := Must(FromSlice([]float32{x32}, 1))
	sum32, err := a32.Add(Must(FromSlice([]float32{y32}, 1)))
	require.NoError(t, err)
	assert.Equal(t, x32+y32, sum32.Data()[0])
}
