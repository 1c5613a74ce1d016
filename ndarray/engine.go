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
	"runtime"
	"sync"

	"k8s.io/klog/v2"

	"github.com/kashifulhaque/tinyndarray/simd"
	"github.com/kashifulhaque/tinyndarray/simd/contrib/matmul"
	"github.com/kashifulhaque/tinyndarray/simd/contrib/workerpool"
)

// Engine owns the worker pool used by matrix multiplication and large
// transposes, plus the tuning that goes with it. An Engine is safe for
// concurrent use; each call fans out over the shared pool and waits for its
// own work.
type Engine struct {
	pool *workerpool.Pool
	opts engineOptions
}

// NewEngine starts an engine. Without options it uses GOMAXPROCS workers and
// the blocking parameters of the detected dispatch level.
func NewEngine(opts ...Option) *Engine {
	o := defaultEngineOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{opts: o}
	if o.workers > 1 {
		e.pool = workerpool.New(o.workers)
	}
	klog.V(1).Infof("ndarray: engine started with %d workers, dispatch level %s", o.workers, o.levelOrCurrent())
	return e
}

// Workers returns the number of workers matmul may use.
func (e *Engine) Workers() int {
	if e.pool == nil {
		return 1
	}
	return e.pool.NumWorkers()
}

// Close stops the worker pool. A closed engine keeps working on the calling
// goroutine. Calling Close more than once is safe.
func (e *Engine) Close() {
	if e.pool != nil && !e.pool.Closed() {
		e.pool.Close()
		klog.V(1).Info("ndarray: engine closed")
	}
}

var defaultEngine = sync.OnceValue(func() *Engine {
	return NewEngine()
})

// DefaultEngine returns the process-wide engine used by Array.Matmul and
// Array.Transpose. It is created on first use and never closed.
func DefaultEngine() *Engine {
	return defaultEngine()
}

// matmulConfig resolves the engine's options for element type T.
func matmulConfig[T simd.Floats](e *Engine) matmul.Config {
	o := e.opts
	cfg := matmul.DefaultConfig[T]()
	if o.levelSet {
		cfg.Params = matmul.CacheParamsFor[T](o.level)
	}
	if o.params != nil {
		cfg.Params = *o.params
	}
	if o.smallThreshold >= 0 {
		cfg.SmallThreshold = o.smallThreshold
	}
	if o.parallelThreshold >= 0 {
		cfg.ParallelThreshold = o.parallelThreshold
	}
	cfg.TileRows, cfg.TileCols = o.tileRows, o.tileCols
	return cfg
}

type engineOptions struct {
	workers           int
	level             simd.DispatchLevel
	levelSet          bool
	params            *matmul.CacheParams
	smallThreshold    int // -1: package default
	parallelThreshold int // -1: package default
	tileRows          int
	tileCols          int
}

func defaultEngineOptions() engineOptions {
	return engineOptions{
		workers:           runtime.GOMAXPROCS(0),
		smallThreshold:    -1,
		parallelThreshold: -1,
	}
}

func (o engineOptions) levelOrCurrent() simd.DispatchLevel {
	if o.levelSet {
		return o.level
	}
	return simd.CurrentLevel()
}

// Option configures an Engine. Options panic on nonsensical values, which
// are programmer errors.
type Option func(*engineOptions)

// WithWorkers sets the pool size. One worker disables parallelism.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("ndarray: WithWorkers: n must be at least 1")
	}
	return func(o *engineOptions) { o.workers = n }
}

// WithParallelThreshold sets the M*N*K operation count from which matmul
// uses the pool.
func WithParallelThreshold(ops int) Option {
	if ops < 0 {
		panic("ndarray: WithParallelThreshold: ops must be non-negative")
	}
	return func(o *engineOptions) { o.parallelThreshold = ops }
}

// WithSmallThreshold sets the M*N*K operation count below which matmul uses
// the streaming loop.
func WithSmallThreshold(ops int) Option {
	if ops < 0 {
		panic("ndarray: WithSmallThreshold: ops must be non-negative")
	}
	return func(o *engineOptions) { o.smallThreshold = ops }
}

// WithTileSize fixes the output tile processed by one parallel work item.
// Zero lets the engine choose.
func WithTileSize(rows, cols int) Option {
	if rows < 0 || cols < 0 {
		panic("ndarray: WithTileSize: sizes must be non-negative")
	}
	return func(o *engineOptions) { o.tileRows, o.tileCols = rows, cols }
}

// WithLevel picks the cache blocking parameters of a dispatch level instead
// of the current one.
func WithLevel(level simd.DispatchLevel) Option {
	return func(o *engineOptions) { o.level, o.levelSet = level, true }
}

// WithCacheParams overrides the cache blocking parameters for both element
// types. It takes precedence over WithLevel.
func WithCacheParams(p matmul.CacheParams) Option {
	if !p.Valid() {
		panic("ndarray: WithCacheParams: invalid cache params")
	}
	return func(o *engineOptions) { o.params = &p }
}
