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

package matmul

import "github.com/kashifulhaque/tinyndarray/simd"

// CacheParams defines cache blocking parameters for the packed GEBP algorithm.
//
// The GotoBLAS five-loop structure:
//
//	for jc := 0; jc < n; jc += Nc {     // Loop 5: B panel (L3)
//	  for pc := 0; pc < k; pc += Kc {   // Loop 4: K blocking (L1)
//	    pack B[pc:pc+Kc, jc:jc+Nc]
//	    for ic := 0; ic < m; ic += Mc { // Loop 3: A panel (L2)
//	      pack A[ic:ic+Mc, pc:pc+Kc]
//	      for jr, ir ...                // Loops 2, 1: micro-tiles
//	        PackedMicroKernel(...)
type CacheParams struct {
	Mr int // Micro-tile rows (register blocking)
	Nr int // Micro-tile columns (register blocking)
	Kc int // K-blocking (L1 cache)
	Mc int // M-blocking (L2 cache)
	Nc int // N-blocking (L3 cache)
}

// CacheParamsAVX512 returns float32 parameters for AVX-512 class cores
// (1MB+ L2 per core).
func CacheParamsAVX512() CacheParams {
	return CacheParams{
		Mr: 4,
		Nr: 4,
		Kc: 512,  // 4 * 512 * 4 bytes = 8KB packed B micro-panel
		Mc: 256,  // 256 * 512 * 4 bytes = 512KB packed A panel
		Nc: 4096, // 512 * 4096 * 4 bytes = 8MB packed B panel
	}
}

// CacheParamsAVX2 returns float32 parameters for AVX2 class cores.
func CacheParamsAVX2() CacheParams {
	return CacheParams{
		Mr: 4,
		Nr: 4,
		Kc: 256,  // 4KB packed B micro-panel
		Mc: 128,  // 128KB packed A panel
		Nc: 2048, // 2MB packed B panel
	}
}

// CacheParamsNEON returns float32 parameters for ARM64 cores.
func CacheParamsNEON() CacheParams {
	return CacheParams{
		Mr: 4,
		Nr: 4,
		Kc: 256,
		Mc: 128,
		Nc: 1024,
	}
}

// CacheParamsFallback returns conservative parameters for unknown hosts.
func CacheParamsFallback() CacheParams {
	return CacheParams{
		Mr: 4,
		Nr: 4,
		Kc: 128,
		Mc: 64,
		Nc: 512,
	}
}

// CacheParamsFloat64AVX512 halves Kc so float64 panels occupy the same bytes.
func CacheParamsFloat64AVX512() CacheParams {
	return CacheParams{Mr: 4, Nr: 4, Kc: 256, Mc: 256, Nc: 2048}
}

// CacheParamsFloat64AVX2 returns float64 parameters for AVX2 class cores.
func CacheParamsFloat64AVX2() CacheParams {
	return CacheParams{Mr: 4, Nr: 4, Kc: 128, Mc: 128, Nc: 1024}
}

// CacheParamsFloat64NEON returns float64 parameters for ARM64 cores.
func CacheParamsFloat64NEON() CacheParams {
	return CacheParams{Mr: 4, Nr: 4, Kc: 128, Mc: 128, Nc: 512}
}

// CacheParamsFor returns the blocking parameters for element type T at the
// given dispatch level.
func CacheParamsFor[T simd.Floats](level simd.DispatchLevel) CacheParams {
	wide := simd.SizeOf[T]() == 8
	switch level {
	case simd.DispatchAVX512:
		if wide {
			return CacheParamsFloat64AVX512()
		}
		return CacheParamsAVX512()
	case simd.DispatchAVX2:
		if wide {
			return CacheParamsFloat64AVX2()
		}
		return CacheParamsAVX2()
	case simd.DispatchNEON, simd.DispatchSVE:
		if wide {
			return CacheParamsFloat64NEON()
		}
		return CacheParamsNEON()
	default:
		return CacheParamsFallback()
	}
}

func getCacheParams[T simd.Floats]() CacheParams {
	return CacheParamsFor[T](simd.CurrentLevel())
}

// Valid reports whether every block size is positive and Mc, Nc are
// multiples of Mr, Nr.
func (p CacheParams) Valid() bool {
	return p.Mr > 0 && p.Nr > 0 && p.Kc > 0 && p.Mc >= p.Mr && p.Nc >= p.Nr &&
		p.Mc%p.Mr == 0 && p.Nc%p.Nr == 0
}

// PackedASize returns the buffer size needed for one packed A panel.
// Layout: ceil(Mc/Mr) micro-panels, each Mr x Kc.
func (p CacheParams) PackedASize() int {
	numPanels := (p.Mc + p.Mr - 1) / p.Mr
	return numPanels * p.Mr * p.Kc
}

// PackedBSize returns the buffer size needed for one packed B panel.
// Layout: ceil(Nc/Nr) micro-panels, each Kc x Nr.
func (p CacheParams) PackedBSize() int {
	numPanels := (p.Nc + p.Nr - 1) / p.Nr
	return numPanels * p.Kc * p.Nr
}
