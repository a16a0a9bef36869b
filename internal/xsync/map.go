// Copyright 2025 Buf Technologies, Inc.
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

// Package xsync provides the tape parser's insert-once cache: a tape index,
// once populated, never changes value, so concurrent readers racing on the
// same index converge on the same materialized string, list, or compound.
package xsync

import "sync"

// Map is a strongly-typed, insert-once cache keyed by K (a tape index in
// every caller this repo has). It exposes only LoadOrStore, the one
// operation the nbt package's six caches actually perform.
type Map[K comparable, V any] struct {
	impl sync.Map
}

// LoadOrStore returns the value already stored for k, if any; otherwise it
// calls make, stores the result, and returns that. Under a race, make may
// run on more than one goroutine for the same k, but only one of the
// results is ever kept — every caller, winning or losing the race,
// observes the same final value for k from then on.
func (m *Map[K, V]) LoadOrStore(k K, make func() V) (actual V, loaded bool) {
	if v, ok := m.impl.Load(k); ok {
		return v.(V), true //nolint:errcheck
	}
	v, loaded := m.impl.LoadOrStore(k, make())
	return v.(V), loaded //nolint:errcheck
}
