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
	"golang.org/x/exp/constraints"

	"github.com/SnellerInc/parallel/ints"
)

// Number constrains the element types PrefixSums accepts to those with
// native addition and a zero value as the additive identity.
type Number interface {
	constraints.Integer | constraints.Float
}

// PrefixSums replaces every element of s with the sum of all elements
// strictly before it (an exclusive scan) and returns the sum of the
// whole slice. Overflow follows the native behavior of T.
//
// Slices no longer than the ScanBlock constant are scanned in a single
// sequential pass. Longer slices are scanned block-wise: local scans
// within each block run in parallel while recording every block's total
// into a shared totals array through a Disjoint view, the totals array
// is itself scanned, and a second parallel block pass adds each block's
// carry-in. The three phases are ordered by plain sequential
// composition; Join only ever runs independent computations.
//
// The totals scan recurses into PrefixSums by default, for a span of
// O(log² n). With Tuning.TreeScan set it uses an explicit
// up-sweep/down-sweep tree instead, which reaches O(log n) span at the
// cost of a 4n auxiliary array.
func PrefixSums[T Number](t *Tuning, s []T) T {
	if len(s) == 0 {
		var zero T
		return zero
	}
	block := t.scanBlock()
	if len(s) <= block {
		return prefixSums(s)
	}
	last := s[len(s)-1]

	blocks := int(ints.ChunkCount(uint(len(s)), uint(block)))
	totals := make([]T, blocks)

	// phase 1: local scans, each block writing its own total
	view := DisjointOf(totals)
	BlockedFor(t, s, block, func(b int, chunk []T) {
		view.Write(b, prefixSums(chunk))
	})

	// phase 2: exclusive scan over the block totals
	if t.treeScan() {
		treePrefixSums(t, totals)
	} else {
		PrefixSums(t, totals)
	}

	// phase 3: distribute each block's carry-in
	BlockedFor(t, s, block, func(b int, chunk []T) {
		carry := totals[b]
		for i := range chunk {
			chunk[i] += carry
		}
	})

	return s[len(s)-1] + last
}

// prefixSums computes exclusive prefix sums sequentially, carrying a
// running sum left to right, and returns the total.
func prefixSums[T Number](s []T) T {
	var sum T
	for i := range s {
		v := s[i]
		s[i] = sum
		sum += v
	}
	return sum
}

// treePrefixSums scans s with an explicit binary tree: partial sums are
// collected on the way up and carry-ins distributed on the way down.
func treePrefixSums[T Number](t *Tuning, s []T) {
	if len(s) <= t.scanBlock() {
		prefixSums(s)
		return
	}
	// 4n is a safe bound on heap-style node ids for arbitrary n
	partial := make([]T, 4*len(s))
	view := DisjointOf(partial)
	sweepUp(t, s, view, 0)
	var zero T
	sweepDown(t, s, partial, zero, 0)
}

// sweepUp stores the sum of every subtree at its node id and returns
// the sum of s. Sibling subtrees write disjoint node ids.
func sweepUp[T Number](t *Tuning, s []T, partial Disjoint[T], id int) T {
	if len(s) == 1 {
		partial.Write(id, s[0])
		return s[0]
	}
	m := len(s) / 2
	var leftSum, rightSum T
	t.Join(
		func() { leftSum = sweepUp(t, s[:m], partial, 2*id+1) },
		func() { rightSum = sweepUp(t, s[m:], partial, 2*id+2) },
	)
	sum := leftSum + rightSum
	partial.Write(id, sum)
	return sum
}

// sweepDown replaces every element with the sum of everything to its
// left, threading the left-context sum down the tree. The partial sums
// are read-only at this point.
func sweepDown[T Number](t *Tuning, s []T, partial []T, carry T, id int) {
	if len(s) == 1 {
		s[0] = carry
		return
	}
	m := len(s) / 2
	rightCarry := carry + partial[2*id+1]
	t.Join(
		func() { sweepDown(t, s[:m], partial, carry, 2*id+1) },
		func() { sweepDown(t, s[m:], partial, rightCarry, 2*id+2) },
	)
}
