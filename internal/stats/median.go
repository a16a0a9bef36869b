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

package stats

import (
	"slices"
	"sync"
)

// Median tracks the running median of a connection's handler-dispatch
// latency over its most recent window samples, as a plain mutex-guarded
// ring buffer rather than a lock-free one: every call site that records a
// sample already holds the handler chain's own mutex while doing so (see
// conn.Chain.Dispatch), so there is no contended-writer case here to
// optimize away.
//
// Must be constructed with [NewMedian]. Record and Get may both be called
// concurrently with each other.
type Median struct {
	mu      sync.Mutex
	samples []float64
	next    int
	count   int
}

// NewMedian returns a Median remembering the most recent window samples.
// window should be large enough to smooth out single-packet latency spikes;
// a few hundred is reasonable for a busy connection.
func NewMedian(window int) *Median {
	return &Median{samples: make([]float64, window)}
}

// Record stores one latency sample, overwriting the oldest sample once the
// window has filled.
func (m *Median) Record(sample float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.samples[m.next] = sample
	m.next++
	if m.next == len(m.samples) {
		m.next = 0
	}
	m.count++
}

// Get returns the median of the samples currently held in the window, or 0
// if none have been recorded yet.
func (m *Median) Get() float64 {
	m.mu.Lock()
	n := m.count
	if n > len(m.samples) {
		n = len(m.samples)
	}
	sorted := slices.Clone(m.samples[:n])
	m.mu.Unlock()

	slices.Sort(sorted)
	switch {
	case len(sorted) == 0:
		return 0
	case len(sorted)%2 == 0:
		a, b := sorted[len(sorted)/2-1], sorted[len(sorted)/2]
		return (a + b) / 2
	default:
		return sorted[len(sorted)/2]
	}
}
