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
	"sync/atomic"

	"github.com/kashifulhaque/tinyndarray/simd"
)

// storage is the flat element buffer behind one or more arrays. refs counts
// the arrays sharing it; an array may write in place only while refs is 1.
type storage[T simd.Floats] struct {
	data []T
	refs atomic.Int32
}

func newStorage[T simd.Floats](n int) *storage[T] {
	s := &storage[T]{data: make([]T, n)}
	s.refs.Store(1)
	return s
}

func (s *storage[T]) retain() *storage[T] {
	s.refs.Add(1)
	return s
}

func (s *storage[T]) release() {
	s.refs.Add(-1)
}

func (s *storage[T]) shared() bool {
	return s.refs.Load() > 1
}

// clone returns an unshared copy of the buffer.
func (s *storage[T]) clone() *storage[T] {
	c := newStorage[T](len(s.data))
	copy(c.data, s.data)
	return c
}
