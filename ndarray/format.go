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
	"strconv"
	"strings"

	"github.com/kashifulhaque/tinyndarray/simd"
)

// String renders the array deterministically:
//
//	NdArray(shape=[2, 2], ndim=2, dtype=float32, data=[[1, 2], [3, 4]])
//
// Values use the shortest representation that parses back to the same T.
func (a *Array[T]) String() string {
	var sb strings.Builder
	sb.WriteString("NdArray(shape=")
	sb.WriteString(a.shape.String())
	sb.WriteString(", ndim=")
	sb.WriteString(strconv.Itoa(a.Ndim()))
	sb.WriteString(", dtype=")
	sb.WriteString(a.DType().String())
	sb.WriteString(", data=")
	writeNested(&sb, a.buf.data, a.shape, a.DType().Size()*8)
	sb.WriteByte(')')
	return sb.String()
}

func writeNested[T simd.Floats](sb *strings.Builder, data []T, shape Shape, bits int) {
	sb.WriteByte('[')
	if len(shape) == 1 {
		for i, v := range data[:shape[0]] {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.FormatFloat(float64(v), 'g', -1, bits))
		}
	} else {
		stride := shape[1:].NumElements()
		for i := range shape[0] {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeNested(sb, data[i*stride:(i+1)*stride], shape[1:], bits)
		}
	}
	sb.WriteByte(']')
}
