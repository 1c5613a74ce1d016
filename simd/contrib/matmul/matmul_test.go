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

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/kashifulhaque/tinyndarray/simd"
	"github.com/kashifulhaque/tinyndarray/simd/contrib/workerpool"
)

// closeEnough applies the per-element acceptance rule used throughout:
// |x-y| <= max(1e-5*max(|x|,|y|), 1e-6).
func closeEnough(x, y float64) bool {
	tol := max(1e-5*max(math.Abs(x), math.Abs(y)), 1e-6)
	return math.Abs(x-y) <= tol
}

// quantized fills a slice with multiples of 0.5 in [-2, 2]. Products and
// sums of such values are exact in float32 for every K used here, so any
// summation order yields the same bits.
func quantized(rng *rand.Rand, n int) []float32 {
	s := make([]float32, n)
	for i := range s {
		s[i] = float32(rng.Intn(9)-4) * 0.5
	}
	return s
}

func randomFloat64(rng *rand.Rand, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = rng.Float64()*2 - 1
	}
	return s
}

func checkAgainstReference[T simd.Floats](t *testing.T, name string, got []T, a, b []T, m, n, k int) {
	t.Helper()
	want := make([]T, m*n)
	MatMulReference(a, b, want, m, n, k)
	for i := range want {
		if !closeEnough(float64(got[i]), float64(want[i])) {
			t.Fatalf("%s %dx%dx%d: c[%d,%d] = %v, want %v", name, m, n, k, i/n, i%n, got[i], want[i])
		}
	}
}

func TestMatMulSmall(t *testing.T) {
	// 2x3 * 3x2 = 2x2
	a := []float32{1, 2, 3, 4, 5, 6}
	b := []float32{7, 8, 9, 10, 11, 12}
	want := []float32{58, 64, 139, 154}

	for name, fn := range map[string]func(a, b, c []float32, m, n, k int){
		"streaming": MatMulFloat32,
		"blocked":   BlockedMatMulFloat32,
		"packed":    PackedMatMulFloat32,
	} {
		c := make([]float32, 4)
		fn(a, b, c, 2, 2, 3)
		for i := range c {
			if c[i] != want[i] {
				t.Errorf("%s: c[%d] = %f, want %f", name, i, c[i], want[i])
			}
		}
	}
}

func TestMatMulIdentity(t *testing.T) {
	n := 37
	rng := rand.New(rand.NewSource(1))
	a := randomFloat64(rng, n*n)
	identity := make([]float64, n*n)
	for i := range n {
		identity[i*n+i] = 1
	}

	c := make([]float64, n*n)
	PackedMatMul(a, identity, c, n, n, n)
	for i := range c {
		if c[i] != a[i] {
			t.Fatalf("c[%d] = %f, want %f", i, c[i], a[i])
		}
	}
}

func TestAllPathsOddSizes(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	rng := rand.New(rand.NewSource(42))
	dims := []int{1, 2, 3, 4, 5, 7, 17, 48, 49, 65}
	cfg := DefaultConfig[float32]()
	for _, m := range dims {
		for _, n := range dims {
			for _, k := range dims {
				a := quantized(rng, m*k)
				b := quantized(rng, k*n)
				c := make([]float32, m*n)

				MatMul(a, b, c, m, n, k)
				checkAgainstReference(t, "streaming", c, a, b, m, n, k)
				BlockedMatMul(a, b, c, m, n, k)
				checkAgainstReference(t, "blocked", c, a, b, m, n, k)
				PackedMatMul(a, b, c, m, n, k)
				checkAgainstReference(t, "packed", c, a, b, m, n, k)
				ParallelPackedMatMul(pool, cfg, a, b, c, m, n, k)
				checkAgainstReference(t, "parallel", c, a, b, m, n, k)
			}
		}
	}
}

func TestMatMulAutoLarge(t *testing.T) {
	pool := workerpool.New(0)
	defer pool.Close()

	rng := rand.New(rand.NewSource(7))
	sizes := [][3]int{
		{200, 400, 300}, // 200x300 @ 300x400
		{64, 64, 64},
		{1, 1024, 1024},
		{1024, 2, 64},
		{300, 7, 513},
	}
	for _, s := range sizes {
		m, n, k := s[0], s[1], s[2]
		t.Run(fmt.Sprintf("%dx%dx%d", m, n, k), func(t *testing.T) {
			a32, b32 := quantized(rng, m*k), quantized(rng, k*n)
			c32 := make([]float32, m*n)
			MatMulAuto(pool, DefaultConfig[float32](), a32, b32, c32, m, n, k)
			checkAgainstReference(t, "auto/f32", c32, a32, b32, m, n, k)

			a64, b64 := randomFloat64(rng, m*k), randomFloat64(rng, k*n)
			c64 := make([]float64, m*n)
			MatMulAuto(pool, DefaultConfig[float64](), a64, b64, c64, m, n, k)
			checkAgainstReference(t, "auto/f64", c64, a64, b64, m, n, k)
		})
	}
}

func TestZeroSizedDimensions(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Close()
	cfg := DefaultConfig[float32]()

	// K == 0: the result is a zero matrix of the right size.
	c := []float32{1, 2, 3, 4, 5, 6}
	MatMulAuto(pool, cfg, nil, nil, c, 2, 3, 0)
	for i, v := range c {
		if v != 0 {
			t.Errorf("k=0: c[%d] = %f, want 0", i, v)
		}
	}

	// M == 0 and N == 0 touch nothing.
	MatMulAuto(pool, cfg, nil, make([]float32, 6), nil, 0, 3, 2)
	MatMulAuto(pool, cfg, make([]float32, 6), nil, nil, 3, 0, 2)
	PackedMatMul[float32](nil, nil, nil, 0, 0, 0)
	ParallelPackedMatMul[float32](pool, cfg, nil, nil, nil, 0, 5, 5)
}

func TestCustomCacheParams(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	params := CacheParams{Mr: 3, Nr: 5, Kc: 7, Mc: 9, Nc: 10}
	if !params.Valid() {
		t.Fatal("params should be valid")
	}

	m, n, k := 31, 23, 29
	a, b := quantized(rng, m*k), quantized(rng, k*n)
	c := make([]float32, m*n)
	PackedMatMulWithParams(params, a, b, c, m, n, k)
	checkAgainstReference(t, "packed/custom", c, a, b, m, n, k)

	pool := workerpool.New(3)
	defer pool.Close()
	cfg := DefaultConfig[float32]()
	cfg.Params = params
	cfg.TileRows, cfg.TileCols = 6, 10
	ParallelPackedMatMul(pool, cfg, a, b, c, m, n, k)
	checkAgainstReference(t, "parallel/custom", c, a, b, m, n, k)
}

func TestInvalidCacheParamsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid params")
		}
	}()
	PackedMatMulWithParams(CacheParams{Mr: 4, Nr: 4, Kc: 0, Mc: 4, Nc: 4}, make([]float32, 4), make([]float32, 4), make([]float32, 4), 2, 2, 2)
}

func TestShortSlicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for short C")
		}
	}()
	MatMul(make([]float64, 4), make([]float64, 4), make([]float64, 3), 2, 2, 2)
}

func TestPackLHSPadding(t *testing.T) {
	// A is 5x3; pack all rows with mr=4: second micro-panel has 1 live row.
	a := []float32{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
		10, 11, 12,
		13, 14, 15,
	}
	packed := make([]float32, 2*4*3)
	active := PackLHS(a, packed, 5, 3, 0, 0, 5, 3, 4)
	if active != 1 {
		t.Errorf("active rows = %d, want 1", active)
	}
	want := []float32{
		1, 4, 7, 10, 2, 5, 8, 11, 3, 6, 9, 12,
		13, 0, 0, 0, 14, 0, 0, 0, 15, 0, 0, 0,
	}
	for i := range want {
		if packed[i] != want[i] {
			t.Fatalf("packed[%d] = %f, want %f", i, packed[i], want[i])
		}
	}
}

func TestPackRHSPadding(t *testing.T) {
	// B is 2x6; pack columns [1, 6) with nr=4.
	b := []float32{
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12,
	}
	packed := make([]float32, 2*2*4)
	for i := range packed {
		packed[i] = -1
	}
	active := PackRHS(b, packed, 2, 6, 0, 1, 2, 5, 4)
	if active != 1 {
		t.Errorf("active cols = %d, want 1", active)
	}
	want := []float32{2, 3, 4, 5, 8, 9, 10, 11, 6, 0, 0, 0, 12, 0, 0, 0}
	for i := range want {
		if packed[i] != want[i] {
			t.Fatalf("packed[%d] = %f, want %f", i, packed[i], want[i])
		}
	}
}

func TestPlanTilesCoverDisjoint(t *testing.T) {
	cfg := DefaultConfig[float32]()
	for _, c := range []struct{ m, n, workers int }{
		{1, 1, 8}, {4, 4096, 8}, {1024, 1024, 16}, {1000, 3, 3}, {513, 777, 5},
	} {
		hits := make([]int, c.m*c.n)
		for _, tl := range planTiles(c.m, c.n, c.workers, cfg) {
			for i := tl.rowStart; i < tl.rowEnd; i++ {
				for j := tl.colStart; j < tl.colEnd; j++ {
					hits[i*c.n+j]++
				}
			}
		}
		for i, h := range hits {
			if h != 1 {
				t.Fatalf("m=%d n=%d workers=%d: element %d covered %d times", c.m, c.n, c.workers, i, h)
			}
		}
	}
}

func TestPlanTilesSplitsWideProducts(t *testing.T) {
	cfg := DefaultConfig[float32]()
	tiles := planTiles(4, 4096, 8, cfg)
	if len(tiles) < 8 {
		t.Errorf("4x4096 over 8 workers gave %d tiles, want at least 8", len(tiles))
	}
}

func TestSelectPath(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()
	cfg := DefaultConfig[float32]()

	cases := []struct {
		pool    *workerpool.Pool
		m, n, k int
		want    Path
	}{
		{pool, 0, 4, 4, PathEmpty},
		{pool, 4, 4, 0, PathEmpty},
		{pool, 2, 2, 2, PathStreaming},
		{nil, 64, 64, 64, PathBlocked},
		{pool, 64, 64, 64, PathParallelPacked},
		{nil, 256, 256, 256, PathPacked},
		{pool, 256, 256, 256, PathParallelPacked},
	}
	for _, c := range cases {
		if got := SelectPath(c.pool, cfg, c.m, c.n, c.k); got != c.want {
			t.Errorf("SelectPath(%dx%dx%d, pool=%v) = %s, want %s", c.m, c.n, c.k, c.pool != nil, got, c.want)
		}
	}

	closed := workerpool.New(4)
	closed.Close()
	if got := SelectPath(closed, cfg, 256, 256, 256); got != PathPacked {
		t.Errorf("closed pool: got %s, want packed", got)
	}
}

func TestCacheParamsForLevels(t *testing.T) {
	levels := []simd.DispatchLevel{
		simd.DispatchScalar, simd.DispatchSSE2, simd.DispatchAVX2,
		simd.DispatchAVX512, simd.DispatchNEON, simd.DispatchSVE,
	}
	for _, l := range levels {
		if p := CacheParamsFor[float32](l); !p.Valid() {
			t.Errorf("float32 params for %s invalid: %+v", l, p)
		}
		if p := CacheParamsFor[float64](l); !p.Valid() {
			t.Errorf("float64 params for %s invalid: %+v", l, p)
		}
	}
}

func BenchmarkMatMulAuto(b *testing.B) {
	pool := workerpool.New(0)
	defer pool.Close()
	rng := rand.New(rand.NewSource(1))

	for _, size := range []int{64, 256, 512, 1024} {
		a := quantized(rng, size*size)
		bm := quantized(rng, size*size)
		c := make([]float32, size*size)
		cfg := DefaultConfig[float32]()

		b.Run(fmt.Sprintf("%d", size), func(b *testing.B) {
			b.SetBytes(int64(3 * size * size * 4))
			for range b.N {
				MatMulAuto(pool, cfg, a, bm, c, size, size, size)
			}
			flops := 2 * float64(size) * float64(size) * float64(size) * float64(b.N)
			b.ReportMetric(flops/b.Elapsed().Seconds()/1e9, "GFLOPS")
		})
	}
}

func BenchmarkPaths(b *testing.B) {
	const size = 256
	rng := rand.New(rand.NewSource(1))
	a := quantized(rng, size*size)
	bm := quantized(rng, size*size)
	c := make([]float32, size*size)

	b.Run("streaming", func(b *testing.B) {
		for range b.N {
			MatMul(a, bm, c, size, size, size)
		}
	})
	b.Run("blocked", func(b *testing.B) {
		for range b.N {
			BlockedMatMul(a, bm, c, size, size, size)
		}
	})
	b.Run("packed", func(b *testing.B) {
		for range b.N {
			PackedMatMul(a, bm, c, size, size, size)
		}
	})
}
