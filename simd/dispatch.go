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

package simd

import "sync/atomic"

// DispatchLevel represents the vector instruction set the kernels are tuned for.
type DispatchLevel int

const (
	// DispatchScalar indicates no usable vector unit.
	DispatchScalar DispatchLevel = iota

	// DispatchSSE2 indicates SSE2 instructions (x86-64 baseline, 128-bit).
	DispatchSSE2

	// DispatchAVX2 indicates AVX2+FMA instructions (256-bit).
	DispatchAVX2

	// DispatchAVX512 indicates AVX-512F instructions (512-bit).
	DispatchAVX512

	// DispatchNEON indicates ARM NEON instructions (128-bit).
	DispatchNEON

	// DispatchSVE indicates ARM SVE instructions (scalable vector).
	DispatchSVE
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchSSE2:
		return "sse2"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	case DispatchSVE:
		return "sve"
	default:
		return "unknown"
	}
}

// Width returns the vector register width in bytes for the level.
func (d DispatchLevel) Width() int {
	switch d {
	case DispatchAVX2:
		return 32
	case DispatchAVX512:
		return 64
	default:
		// Scalar mode still reports 16 bytes so lane math stays consistent.
		return 16
	}
}

// ParseLevel maps a name produced by String back to its level.
func ParseLevel(name string) (DispatchLevel, bool) {
	for l := DispatchScalar; l <= DispatchSVE; l++ {
		if l.String() == name {
			return l, true
		}
	}
	return DispatchScalar, false
}

// detectedLevel is set by init() in dispatch_*.go files.
var detectedLevel DispatchLevel

// currentLevel holds the level in effect; it differs from detectedLevel
// only after SetLevel.
var currentLevel atomic.Int32

// CurrentLevel returns the dispatch level in effect.
func CurrentLevel() DispatchLevel {
	return DispatchLevel(currentLevel.Load())
}

// DetectedLevel returns the level found by CPU feature detection,
// ignoring any SetLevel override.
func DetectedLevel() DispatchLevel {
	return detectedLevel
}

// CurrentWidth returns the vector register width in bytes.
// For example: 16 for SSE2/NEON, 32 for AVX2, 64 for AVX-512.
func CurrentWidth() int {
	return CurrentLevel().Width()
}

// CurrentName returns a human-readable name for the current level.
func CurrentName() string {
	return CurrentLevel().String()
}

// SetLevel overrides the detected level and returns the previous one.
// Levels above the detected one are clamped to it, so a caller can only
// ever ask for less than the hardware provides.
func SetLevel(level DispatchLevel) (previous DispatchLevel) {
	if !levelSupported(level) {
		level = detectedLevel
	}
	return DispatchLevel(currentLevel.Swap(int32(level)))
}

// ResetLevel restores the detected level.
func ResetLevel() {
	currentLevel.Store(int32(detectedLevel))
}

func setDetected(level DispatchLevel) {
	detectedLevel = level
	currentLevel.Store(int32(level))
}
