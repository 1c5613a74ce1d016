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

// Package interop converts arrays to and from foreign tensor buffers:
// Apache Arrow tensors and safetensors tensor views.
//
// Every conversion copies. Arrays never alias foreign memory, so the source
// may be released or mutated after a call returns. Failures wrap
// ndarray.ErrConversion.
//
//	t, err := interop.ToArrow(a, ndarray.Float32)
//	defer t.Release()
//	back, err := interop.FromArrow[float32](t)
package interop
