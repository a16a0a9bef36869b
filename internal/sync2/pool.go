// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sync2 provides strongly-typed wrappers over the standard
// concurrency primitives, used to pool the scratch buffers the connection
// read/write path needs without allocating on every call.
package sync2

import "sync"

// Pool recycles scratch values of type T, calling reset on each one before
// it's handed back out. Unlike sync.Pool, Get returns a single drop closure
// instead of requiring the caller to remember a separate Put call.
type Pool[T any] struct {
	reset func(*T)
	impl  sync.Pool
}

// NewPool builds a Pool whose values are reset by reset before each reuse.
func NewPool[T any](reset func(*T)) *Pool[T] {
	return &Pool[T]{reset: reset}
}

// Get returns a pooled value of type T, allocating a fresh one if the pool
// is empty, and a drop func to call once the caller is done with it:
//
//	v, drop := pool.Get()
//	defer drop()
func (p *Pool[T]) Get() (v *T, drop func()) {
	cached, ok := p.impl.Get().(*T)
	if !ok {
		cached = new(T)
	}
	return cached, func() {
		p.reset(cached)
		p.impl.Put(cached)
	}
}
