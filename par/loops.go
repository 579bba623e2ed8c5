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

package par

import (
	"github.com/SnellerInc/parallel/ints"
)

// For applies action to every element of s. action receives the
// element's index in s and a pointer to the element itself, so it may
// mutate it in place. Within one sequential leaf elements are visited
// in index order; across leaves there is no ordering guarantee. Span is
// logarithmic in len(s), work is linear.
func For[T any](t *Tuning, s []T, action func(i int, v *T)) {
	if len(s) == 0 {
		return
	}
	forRange(t, s, 0, action)
}

func forRange[T any](t *Tuning, s []T, base int, action func(i int, v *T)) {
	if len(s) <= t.seqThreshold() {
		for i := range s {
			action(base+i, &s[i])
		}
		return
	}
	m := len(s) / 2
	// ownership of the two halves transfers to the two branches here;
	// neither touches the other's range
	left, right := s[:m], s[m:]
	t.Join(
		func() { forRange(t, left, base, action) },
		func() { forRange(t, right, base+m, action) },
	)
}

// BlockedFor applies action once per contiguous block of blockSize
// elements. action receives the block's index and the block's elements;
// only the final block may be shorter than blockSize. Blocks are
// processed with the same halving recursion as For, but over the
// block-index range rather than element indices. If blockSize <= 0 the
// Tuning's ScanBlock (or its default) is used.
func BlockedFor[T any](t *Tuning, s []T, blockSize int, action func(block int, chunk []T)) {
	if len(s) == 0 {
		return
	}
	if blockSize <= 0 {
		blockSize = t.scanBlock()
	}
	blocks := int(ints.ChunkCount(uint(len(s)), uint(blockSize)))
	blockedRange(t, s, blockSize, 0, blocks, action)
}

func blockedRange[T any](t *Tuning, s []T, blockSize, lo, hi int, action func(block int, chunk []T)) {
	if len(s) <= blockSize {
		action(lo, s)
		return
	}
	m := (lo + hi) / 2
	split := (m - lo) * blockSize
	left, right := s[:split], s[split:]
	t.Join(
		func() { blockedRange(t, left, blockSize, lo, m, action) },
		func() { blockedRange(t, right, blockSize, m, hi, action) },
	)
}
