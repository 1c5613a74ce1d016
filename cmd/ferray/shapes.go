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
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/kashifulhaque/tinyndarray/ndarray"
)

type shapesOptions struct {
	square int
	rect   string
	seed   int64
}

func newShapesCmd(global *globalOptions) *cobra.Command {
	opts := &shapesOptions{}
	cmd := &cobra.Command{
		Use:   "shapes",
		Short: "Time float32 matmul on a square and a non-square problem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.square < 1 {
				return errors.Errorf("--square must be positive, got %d", opts.square)
			}
			rect, err := parseShape(opts.rect)
			if err != nil {
				return err
			}
			e, err := global.newEngine()
			if err != nil {
				return err
			}
			defer e.Close()

			w := cmd.OutOrStdout()
			rng := rand.New(rand.NewSource(opts.seed))
			fmt.Fprintf(w, "=== Square Matrices (%dx%d) ===\n", opts.square, opts.square)
			if err := timeShape(w, e, rng, opts.square, opts.square, opts.square); err != nil {
				return err
			}
			fmt.Fprintf(w, "\n=== Non-Square Matrices (%dx%d @ %dx%d) ===\n", rect[0], rect[1], rect[1], rect[2])
			return timeShape(w, e, rng, rect[0], rect[1], rect[2])
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.square, "square", 1024, "Extent of the square problem")
	flags.StringVar(&opts.rect, "rect", "512x2048x512", "Non-square problem as MxKxN")
	flags.Int64Var(&opts.seed, "seed", 1, "Random seed")
	return cmd
}

// timeShape times gonum and the engine on the same random float32 operands.
func timeShape(w io.Writer, e *ndarray.Engine, rng *rand.Rand, m, k, n int) error {
	a, err := ndarray.FromList[float32](randomMatrix(rng, m, k))
	if err != nil {
		return err
	}
	b, err := ndarray.FromList[float32](randomMatrix(rng, k, n))
	if err != nil {
		return err
	}

	start := time.Now()
	gemm(a.Data(), b.Data(), m, k, n)
	oracle := time.Since(start)
	fmt.Fprintf(w, "gonum: %.4fs\n", oracle.Seconds())

	start = time.Now()
	if _, err := ndarray.Matmul(e, a, b); err != nil {
		return err
	}
	ferray := time.Since(start)
	fmt.Fprintf(w, "ferray: %.4fs\n", ferray.Seconds())
	if oracle > 0 {
		fmt.Fprintf(w, "Ratio (ferray/gonum): %.2fx\n", ferray.Seconds()/oracle.Seconds())
	}
	return nil
}
