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

// Package ndarray implements a dense N-dimensional array of float32 or
// float64 values with NumPy-like semantics.
//
// An Array is a shape, row-major strides and a flat buffer. Element access,
// reshape, transpose, broadcasting elementwise arithmetic and 2-D matrix
// multiplication are provided, along with conversion to and from nested Go
// slices. Conversion to foreign tensor formats lives in ndarray/interop.
//
//	a := ndarray.Must(ndarray.Ones[float32](2, 3))
//	b := ndarray.Must(ndarray.Ones[float32](1, 3))
//	sum, err := a.Add(b) // shape [2, 3], all 2
//
//	x := ndarray.Must(ndarray.FromList[float64]([][]float64{{1, 2}, {3, 4}}))
//	y, err := x.Matmul(x.Transpose())
//
// Operator mapping: + Add, - Sub, * Mul, / Div, @ Matmul, [] At and SetAt.
//
// Errors returned by this package wrap one of ErrShapeMismatch, ErrBroadcast,
// ErrIndex, ErrConversion or ErrInvalidShape; test for them with errors.Is.
// Floating point exceptions are not errors: dividing by zero yields Inf or
// NaN as IEEE 754 prescribes.
//
// Arrays are not safe for concurrent mutation. Matrix multiplication and
// large transposes run on the worker pool of an Engine; the package level
// functions use DefaultEngine.
package ndarray
