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
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name string
		got  fmt.Stringer
		want string
	}{
		{
			"matrix",
			Must(FromSlice([]float32{1, 2.5, 3, 4, 5, 6}, 2, 3)),
			"NdArray(shape=[2, 3], ndim=2, dtype=float32, data=[[1, 2.5, 3], [4, 5, 6]])",
		},
		{
			"vector float64",
			Must(FromSlice([]float64{0.1, -2, math.Inf(1), math.NaN()}, 4)),
			"NdArray(shape=[4], ndim=1, dtype=float64, data=[0.1, -2, +Inf, NaN])",
		},
		{
			"float32 shortest form",
			Must(FromSlice([]float32{0.1}, 1, 1)),
			"NdArray(shape=[1, 1], ndim=2, dtype=float32, data=[[0.1]])",
		},
		{
			"empty",
			Must(Zeros[float64](2, 0)),
			"NdArray(shape=[2, 0], ndim=2, dtype=float64, data=[[], []])",
		},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.got.String(), tc.name)
	}
}

func TestStringIsDeterministic(t *testing.T) {
	a := Must(Ones[float32](2, 2, 2))
	assert.Equal(t, a.String(), a.Clone().String())
	assert.Equal(t, "NdArray(shape=[2, 2, 2], ndim=3, dtype=float32, data=[[[1, 1], [1, 1]], [[1, 1], [1, 1]]])", fmt.Sprint(a))
}
