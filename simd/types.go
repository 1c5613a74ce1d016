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

// Package simd describes the host the numeric kernels run on: the element
// types they accept and the vector instruction set detected at startup.
//
// The kernels in simd/contrib are written in portable Go. The detected
// dispatch level selects their blocking parameters (register tile width and
// cache block sizes), so the same code adapts to a 16, 32 or 64 byte vector
// unit and the matching cache hierarchy.
//
//	level := simd.CurrentLevel()
//	width := simd.CurrentWidth() // 32 on AVX2
package simd

import "unsafe"

// Floats is a constraint for the element types an array can hold.
type Floats interface {
	~float32 | ~float64
}

// SizeOf returns the size in bytes of one element of type T.
func SizeOf[T Floats]() int {
	var dummy T
	return int(unsafe.Sizeof(dummy))
}
