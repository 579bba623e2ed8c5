// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package ints

// Random is a deterministic xorshift32 generator (Marsaglia) used to
// build reproducible benchmark inputs. It is not a cryptographically
// strong source.
type Random struct {
	state uint32
}

// NewRandom returns a generator seeded with seed. The all-zero state is
// a fixed point of xorshift, so a zero seed is rejected with a panic.
func NewRandom(seed uint32) *Random {
	if seed == 0 {
		panic("ints: xorshift seed must be non-zero")
	}
	return &Random{state: seed}
}

// Next returns the next 32-bit value of the stream.
func (r *Random) Next() uint32 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 17
	r.state ^= r.state << 5
	return r.state
}

// NextInRange returns the next value reduced into [from, to).
// It requires from < to.
func (r *Random) NextInRange(from, to int32) int32 {
	return int32(int64(r.Next())%(int64(to)-int64(from)) + int64(from))
}

// Slice returns the next n values of the stream, reinterpreted as
// signed integers.
func (r *Random) Slice(n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(r.Next())
	}
	return out
}

// SliceInRange returns the next n values reduced into [from, to).
func (r *Random) SliceInRange(n int, from, to int32) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = r.NextInRange(from, to)
	}
	return out
}
