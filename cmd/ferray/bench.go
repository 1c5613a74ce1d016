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

package main

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/kashifulhaque/tinyndarray/ndarray"
	"github.com/kashifulhaque/tinyndarray/simd"
)

// Tolerances of the correctness check: |x-y| <= max(relTol*max(|x|,|y|), absTol).
const (
	relTol = 1e-5
	absTol = 1e-6
)

type benchOptions struct {
	m, k, n int
	shape   string
	seed    int64
	dtype   string
}

func newBenchCmd(global *globalOptions) *cobra.Command {
	opts := &benchOptions{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Multiply random matrices, check against gonum BLAS and compare timings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("shape") {
				dims, err := parseShape(opts.shape)
				if err != nil {
					return err
				}
				opts.m, opts.k, opts.n = dims[0], dims[1], dims[2]
			}
			if opts.m < 1 || opts.k < 1 || opts.n < 1 {
				return errors.Errorf("matrix dimensions must be positive, got %dx%d @ %dx%d", opts.m, opts.k, opts.k, opts.n)
			}

			e, err := global.newEngine()
			if err != nil {
				return err
			}
			defer e.Close()

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Using %s\n", global.describe())
			rng := rand.New(rand.NewSource(opts.seed))
			switch opts.dtype {
			case "float32":
				_, err = runBench[float32](w, e, rng, opts.m, opts.k, opts.n)
			case "float64":
				_, err = runBench[float64](w, e, rng, opts.m, opts.k, opts.n)
			default:
				err = errors.Errorf("unsupported --dtype %q (want float32 or float64)", opts.dtype)
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.m, "m", 2048, "Rows of A")
	flags.IntVar(&opts.k, "k", 2048, "Columns of A and rows of B")
	flags.IntVar(&opts.n, "n", 2048, "Columns of B")
	flags.StringVar(&opts.shape, "shape", "", "Shape as MxKxN, overrides --m, --k and --n")
	flags.Int64Var(&opts.seed, "seed", 1, "Random seed")
	flags.StringVar(&opts.dtype, "dtype", "float64", "Element type: float32 or float64")
	return cmd
}

// benchResult holds the outcome of one benchmark run.
type benchResult struct {
	oracle  time.Duration
	ferray  time.Duration
	speedup float64
}

// runBench multiplies random m x k and k x n matrices with the engine and
// with gonum, reports the first mismatch if any, and prints both timings.
func runBench[T simd.Floats](w io.Writer, e *ndarray.Engine, rng *rand.Rand, m, k, n int) (benchResult, error) {
	fmt.Fprintf(w, "Running benchmark for shape: %dx%d @ %dx%d (%s)\n", m, k, k, n, ndarray.DTypeOf[T]())

	a, err := ndarray.FromList[T](randomMatrix(rng, m, k))
	if err != nil {
		return benchResult{}, err
	}
	b, err := ndarray.FromList[T](randomMatrix(rng, k, n))
	if err != nil {
		return benchResult{}, err
	}

	fmt.Fprint(w, "Checking correctness... ")
	start := time.Now()
	want := gemm(a.Data(), b.Data(), m, k, n)
	oracleTime := time.Since(start)

	start = time.Now()
	c, err := ndarray.Matmul(e, a, b)
	ferrayTime := time.Since(start)
	if err != nil {
		fmt.Fprintln(w, "Failed")
		return benchResult{}, err
	}

	if i, ok := firstMismatch(want, c.Data()); !ok {
		fmt.Fprintln(w, "Failed")
		got := c.Data()
		fmt.Fprintf(w, "Mismatch at (%d,%d): gonum=%.5f, ferray=%.5f\n", i/n, i%n, want[i], got[i])
		return benchResult{}, errors.Errorf("correctness check failed at (%d,%d)", i/n, i%n)
	}
	fmt.Fprintln(w, "Passed")

	res := benchResult{oracle: oracleTime, ferray: ferrayTime}
	if ferrayTime > 0 {
		res.speedup = oracleTime.Seconds() / ferrayTime.Seconds()
	}
	fmt.Fprintf(w, "gonum time: %.4fs\n", oracleTime.Seconds())
	fmt.Fprintf(w, "ferray time: %.4fs\n", ferrayTime.Seconds())
	fmt.Fprintf(w, "Speedup (ferray vs gonum): %.2fx\n", res.speedup)
	return res, nil
}

// randomMatrix returns rows x cols values in [0, 1) as nested slices.
func randomMatrix(rng *rand.Rand, rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		row := make([]float64, cols)
		for j := range row {
			row[j] = rng.Float64()
		}
		out[i] = row
	}
	return out
}

// gemm computes a (m x k) times b (k x n) with gonum BLAS.
func gemm[T simd.Floats](a, b []T, m, k, n int) []T {
	c := make([]T, m*n)
	switch av := any(a).(type) {
	case []float32:
		blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
			blas32.General{Rows: m, Cols: k, Stride: k, Data: av},
			blas32.General{Rows: k, Cols: n, Stride: n, Data: any(b).([]float32)},
			0, blas32.General{Rows: m, Cols: n, Stride: n, Data: any(c).([]float32)})
	case []float64:
		blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
			blas64.General{Rows: m, Cols: k, Stride: k, Data: av},
			blas64.General{Rows: k, Cols: n, Stride: n, Data: any(b).([]float64)},
			0, blas64.General{Rows: m, Cols: n, Stride: n, Data: any(c).([]float64)})
	default:
		panic(fmt.Sprintf("gemm: unsupported element type %T", a))
	}
	return c
}

// withinTolerance reports whether x and y agree to a relative tolerance of
// relTol, with absTol as the floor near zero.
func withinTolerance(x, y float64) bool {
	return math.Abs(x-y) <= max(relTol*max(math.Abs(x), math.Abs(y)), absTol)
}

// firstMismatch returns the index of the first pair outside tolerance.
func firstMismatch[T simd.Floats](want, got []T) (int, bool) {
	if len(want) != len(got) {
		return min(len(want), len(got)), false
	}
	_, i, found := lo.FindIndexOf(lo.Range(len(want)), func(i int) bool {
		return !withinTolerance(float64(want[i]), float64(got[i]))
	})
	return i, !found
}

// parseShape parses "MxKxN" (also "M,K,N") into three positive extents.
func parseShape(s string) ([3]int, error) {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == 'x' || r == ','
	})
	if len(fields) != 3 {
		return [3]int{}, errors.Errorf("shape %q: want MxKxN", s)
	}

	var bad []string
	dims := lo.Map(fields, func(f string, _ int) int {
		d, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || d < 1 {
			bad = append(bad, f)
			return 0
		}
		return d
	})
	if len(bad) > 0 {
		return [3]int{}, errors.Errorf("shape %q: invalid extents %s", s, strings.Join(bad, ", "))
	}
	return [3]int(dims), nil
}
