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
	"k8s.io/klog/v2"

	"github.com/kashifulhaque/tinyndarray/simd"
	"github.com/kashifulhaque/tinyndarray/simd/contrib/matmul"
)

// Matmul returns the matrix product a @ b computed on engine e.
//
// Both operands must be exactly 2-D and a's column count must equal b's row
// count; otherwise the error wraps ErrShapeMismatch and nothing is computed.
// Zero-sized dimensions are allowed: an (m x 0) @ (0 x n) product is an
// m x n zero matrix.
func Matmul[T simd.Floats](e *Engine, a, b *Array[T]) (*Array[T], error) {
	if a.Ndim() != 2 || b.Ndim() != 2 {
		return nil, errors.Wrapf(ErrShapeMismatch, "matmul requires 2-D operands, got shapes %s and %s", a.shape, b.shape)
	}
	m, k := a.shape[0], a.shape[1]
	if b.shape[0] != k {
		return nil, errors.Wrapf(ErrShapeMismatch, "matmul: shapes %s and %s are not aligned: expected %d rows in right operand, got %d",
			a.shape, b.shape, k, b.shape[0])
	}
	n := b.shape[1]

	cfg := matmulConfig[T](e)
	if v := klog.V(2); v.Enabled() {
		v.Infof("ndarray: matmul %dx%d @ %dx%d via %s", m, k, k, n, matmul.SelectPath(e.pool, cfg, m, n, k))
	}

	out := newArray[T](Shape{m, n})
	matmul.MatMulAuto(e.pool, cfg, a.buf.data, b.buf.data, out.buf.data, m, n, k)
	return out, nil
}

// Matmul returns a @ other on the default engine.
func (a *Array[T]) Matmul(other *Array[T]) (*Array[T], error) {
	return Matmul(DefaultEngine(), a, other)
}
