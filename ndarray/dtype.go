// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package ndarray

import "github.com/kashifulhaque/tinyndarray/simd"

// DType names an element encoding. Arrays hold Float32 or Float64; Float16
// only appears in foreign buffers.
type DType uint8

const (
	InvalidDType DType = iota
	Float16
	Float32
	Float64
)

// String returns the lowercase NumPy name of the type.
func (d DType) String() string {
	switch d {
	case Float16:
		return "float16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "invalid"
	}
}

// Size returns the encoded size of one element in bytes.
func (d DType) Size() int {
	switch d {
	case Float16:
		return 2
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		return 0
	}
}

// DTypeOf returns the DType matching T.
func DTypeOf[T simd.Floats]() DType {
	if simd.SizeOf[T]() == 8 {
		return Float64
	}
	return Float32
}
