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

	"github.com/pkg/errors"
)

// Sentinel errors. Every error returned by this package wraps one of them.
var (
	// ErrShapeMismatch: element counts differ on reshape, ragged nested
	// input, or incompatible matmul operands.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrBroadcast: operand shapes are not broadcast compatible. The wrapped
	// *BroadcastError names the axis.
	ErrBroadcast = errors.New("shapes cannot be broadcast")

	// ErrIndex: wrong number of indices or an index out of range.
	ErrIndex = errors.New("index error")

	// ErrConversion: a foreign value cannot be represented as an array.
	ErrConversion = errors.New("conversion error")

	// ErrInvalidShape: a shape with no axes or a negative extent.
	ErrInvalidShape = errors.New("invalid shape")
)

// BroadcastError reports the first axis, counted from the trailing end,
// where two shapes are incompatible. Axis is the position of that axis in
// the broadcast result.
type BroadcastError struct {
	Axis        int
	Left        Shape
	Right       Shape
	LeftExtent  int
	RightExtent int
}

// Error implements error.
func (e *BroadcastError) Error() string {
	return fmt.Sprintf("operands could not be broadcast together with shapes %s and %s: axis %d has extents %d and %d",
		e.Left, e.Right, e.Axis, e.LeftExtent, e.RightExtent)
}

// Unwrap returns ErrBroadcast.
func (e *BroadcastError) Unwrap() error {
	return ErrBroadcast
}
