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

// Command ferray exercises the ndarray engine from the command line.
//
// Usage:
//
//	ferray bench --shape 2048x2048x2048         # matmul vs gonum BLAS, correctness + timing
//	ferray bench --m 512 --k 64 --n 256 --dtype float32
//	ferray shapes                               # square and non-square timings
//	ferray smoke                                # walk through the array API
//
// Global flags select the worker count (--workers) and force the scalar
// blocking parameters (--no-simd). klog flags such as -v=2 print the matmul
// path chosen for every call.
package main

import (
	goflag "flag"
	"fmt"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/kashifulhaque/tinyndarray/ndarray"
	"github.com/kashifulhaque/tinyndarray/simd"
)

// globalOptions are shared by every subcommand.
type globalOptions struct {
	workers int
	noSIMD  bool
	level   string
}

func main() {
	err := newRootCmd().Execute()
	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:          "ferray",
		Short:        "Benchmark and smoke-test the ndarray engine",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return opts.applyLevel()
		},
	}

	flags := root.PersistentFlags()
	flags.IntVar(&opts.workers, "workers", runtime.GOMAXPROCS(0), "Number of matmul workers (1 disables parallelism)")
	flags.BoolVar(&opts.noSIMD, "no-simd", false, "Use the scalar blocking parameters regardless of the CPU")
	flags.StringVar(&opts.level, "level", "", "Force a dispatch level (scalar, sse2, avx2, avx512, neon, sve)")

	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	flags.AddGoFlagSet(klogFlags)

	root.AddCommand(newBenchCmd(opts), newShapesCmd(opts), newSmokeCmd(opts))
	return root
}

// applyLevel overrides the dispatch level before any engine is built.
func (o *globalOptions) applyLevel() error {
	switch {
	case o.noSIMD:
		simd.SetLevel(simd.DispatchScalar)
	case o.level != "":
		level, ok := simd.ParseLevel(o.level)
		if !ok {
			return errors.Errorf("unknown dispatch level %q", o.level)
		}
		simd.SetLevel(level)
		if simd.CurrentLevel() != level {
			klog.Warningf("dispatch level %s is not supported here, using %s", level, simd.CurrentLevel())
		}
	}
	return nil
}

func (o *globalOptions) newEngine() (*ndarray.Engine, error) {
	if o.workers < 1 {
		return nil, errors.Errorf("--workers must be at least 1, got %d", o.workers)
	}
	return ndarray.NewEngine(ndarray.WithWorkers(o.workers)), nil
}

func (o *globalOptions) describe() string {
	return fmt.Sprintf("dispatch level %s (detected %s, %d-byte vectors), %d workers",
		simd.CurrentName(), simd.DetectedLevel(), simd.CurrentWidth(), o.workers)
}
