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

// Package zc provides a packed zero-copy range over a source buffer.
//
// A Range is the offset and length of a borrowed slice, packed into a single
// uint64 so that it can be carried by value instead of as a (start, end)
// pair of ints; conn's frame-received trace line uses one for a frame's byte
// extent. Unlike the pointer-reinterpreting
// ranges this is modeled on, Range.Bytes and Range.String reslice the source
// buffer directly: the wire format is big-endian and multi-byte scalars are
// decoded by explicit byte-shifting elsewhere, so there is never a reason to
// reinterpret raw memory as a typed slice, and doing so would be wrong on
// little-endian hosts.
package zc

import (
	"fmt"
	"math"
)

// Range is a (offset, length) pair into some larger byte buffer, packed as
//
//	struct { offset, len uint32 }
//
// The zero value faithfully represents an empty slice at offset 0.
type Range uint64

// New constructs a Range with the given start offset and length.
func New(offset, length int) Range {
	if offset < 0 || length < 0 || offset > math.MaxUint32 || length > math.MaxUint32 {
		panic(fmt.Sprintf("zc: range out of bounds: [%d:%d]", offset, length))
	}
	return Range(uint32(offset)) | Range(uint32(length))<<32
}

// Start returns the start offset of this range within its source.
func (r Range) Start() int { return int(uint32(r)) }

// Len returns the length of this range.
func (r Range) Len() int { return int(r >> 32) }

// End returns the end offset of this range within its source.
func (r Range) End() int { return r.Start() + r.Len() }

// Bytes reslices src to the region described by this range.
func (r Range) Bytes(src []byte) []byte {
	if r.Len() == 0 {
		return nil
	}
	return src[r.Start():r.End():r.End()]
}

// String reslices src to the region described by this range and converts it
// to a string, copying the bytes (strings are immutable; the copy keeps the
// cached string valid even if the caller mutates an owned source buffer).
func (r Range) String(src []byte) string {
	if r.Len() == 0 {
		return ""
	}
	return string(r.Bytes(src))
}

// Format implements fmt.Formatter for trace logging.
func (r Range) Format(s fmt.State, verb rune) {
	if verb != 'v' {
		fmt.Fprintf(s, "%%%c(zc.Range)", verb)
		return
	}
	fmt.Fprintf(s, "[%d:%d]", r.Start(), r.End())
}
