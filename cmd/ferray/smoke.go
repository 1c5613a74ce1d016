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

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/kashifulhaque/tinyndarray/ndarray"
	"github.com/kashifulhaque/tinyndarray/ndarray/interop"
)

const separator = "----- ----- ----- -----"

func newSmokeCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "smoke",
		Short: "Walk through the array API and print every intermediate result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := global.newEngine()
			if err != nil {
				return err
			}
			defer e.Close()
			return runSmoke(cmd.OutOrStdout(), e)
		},
	}
}

// runSmoke exercises construction, indexing, reshape, broadcasting
// arithmetic, transpose, matmul, nested lists and Arrow interchange.
func runSmoke(w io.Writer, e *ndarray.Engine) error {
	a, err := ndarray.New[float32](2, 3)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "ndim:", a.Ndim())
	fmt.Fprintln(w, "shape:", a.Shape())
	v, err := a.Get([]int{0, 1})
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "before", v)
	if err := a.Set([]int{0, 1}, 42); err != nil {
		return err
	}
	if v, err = a.Get([]int{0, 1}); err != nil {
		return err
	}
	fmt.Fprintln(w, "after:", v)
	fmt.Fprintln(w, a)

	fmt.Fprintln(w, separator)
	z := ndarray.Must(ndarray.Zeros[float32](3, 4))
	if err := z.SetAt(99, 0, 2); err != nil {
		return err
	}
	v, _ = z.At(0, 2)
	fmt.Fprintln(w, "a[0, 2] =", v)
	fmt.Fprintln(w, z)
	if _, err := z.Get([]int{3, 0}); err != nil {
		fmt.Fprintln(w, "a[3, 0] fails:", err)
	}

	fmt.Fprintln(w, separator)
	ones := ndarray.Must(ndarray.Ones[float32](2, 3))
	fmt.Fprintln(w, ones.Shape())
	if err := ones.Reshape(3, 2); err != nil {
		return err
	}
	fmt.Fprintln(w, ones.Shape())
	if err := ones.Reshape(4, 2); err != nil {
		fmt.Fprintln(w, "reshape to [4, 2] fails:", err)
	}

	fmt.Fprintln(w, separator)
	x := ndarray.Must(ndarray.Ones[float32](2, 3))
	y := ndarray.Must(ndarray.Ones[float32](1, 3)).MulScalar(2)
	for _, op := range []struct {
		name string
		fn   func(*ndarray.Array[float32]) (*ndarray.Array[float32], error)
	}{
		{"+", x.Add}, {"-", x.Sub}, {"*", x.Mul}, {"/", x.Div},
	} {
		r, err := op.fn(y)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "a %s b = %v\n", op.name, r)
	}
	fmt.Fprintln(w, x.AddScalar(2))
	fmt.Fprintln(w, x.MulScalar(5))
	fmt.Fprintln(w, x.DivScalar(2))
	fmt.Fprintln(w, x.SubScalar(1))
	bad := ndarray.Must(ndarray.Ones[float32](2, 4))
	if _, err := x.Add(bad); err != nil {
		var be *ndarray.BroadcastError
		if errors.As(err, &be) {
			fmt.Fprintf(w, "[2, 3] + [2, 4] fails on axis %d\n", be.Axis)
		}
	}

	fmt.Fprintln(w, separator)
	m, err := ndarray.FromList[float32]([][]float64{{1, 2, 3}, {4, 5, 6}})
	if err != nil {
		return err
	}
	t := ndarray.Transpose(e, m)
	fmt.Fprintln(w, "Original:", m)
	fmt.Fprintln(w, "Transposed:", t)
	fmt.Fprintln(w, "As list:", m.ToList())
	fmt.Fprintln(w, "Transposed list:", t.ToList())
	p, err := ndarray.Matmul(e, m, t)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "a @ a.T =", p)

	fmt.Fprintln(w, separator)
	src := ndarray.Must(ndarray.FromList[float32]([][]float32{{1, 2}, {3, 4}}))
	tt, err := interop.ToArrow(src, ndarray.Float32)
	if err != nil {
		return err
	}
	defer tt.Release()
	back, err := interop.FromArrow[float32](tt)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Back from Arrow:", back)
	fmt.Fprintln(w, "Equal?", src.AllClose(back, 1e-5, 1e-8))
	fmt.Fprintln(w, separator)
	return nil
}
