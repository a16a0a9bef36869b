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

// Package stats provides running-statistic primitives used to track frame
// sizes (a lock-free [Mean]) and handler latencies (a mutex-guarded [Median])
// per connection.
package stats

import "github.com/mcserver-go/mcserver/internal/sync2"

// Mean is a running average. Connection uses one to track its inbound frame
// size in bytes over the connection's lifetime.
//
// The zero value is ready to use. Record is safe under concurrent calls;
// calling Get concurrently with Record may observe a torn sum/count pair
// and so an occasionally-stale average, which is fine for a diagnostic
// statistic nobody blocks on.
type Mean struct {
	sum, count sync2.AtomicFloat64
}

// Record folds one more sample into the running average.
func (m *Mean) Record(sample float64) {
	m.sum.Add(sample)
	m.count.Add(1)
}

// Get returns the current average, or 0 if no sample has been recorded yet.
func (m *Mean) Get() float64 {
	if count := m.count.Load(); count != 0 {
		return m.sum.Load() / count
	}
	return 0
}
