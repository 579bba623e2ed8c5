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

package sorting

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/SnellerInc/parallel/par"
)

// CopyStrategy selects how Parallel writes the three partition groups
// back into the input buffer. The strategies copy the same bytes and
// differ only in the span of the recombination phase.
type CopyStrategy int

const (
	// CopySequential performs the three group copies one after another.
	CopySequential CopyStrategy = iota
	// CopyForked runs the three group copies under two nested joins,
	// so all three proceed concurrently.
	CopyForked
	// CopyBlocked additionally splits every group copy into parallel
	// block copies, so even a single large group uses many tasks.
	CopyBlocked
)

// Default cutoffs below which the parallel sorts fall back to the
// sequential baseline. Like the par tuning constants these are
// hand-tuned starting points, not derived values.
const (
	DefaultSimpleThreshold = 1024
	DefaultFilterThreshold = 4096
)

// RuntimeParameters carries the scheduler and tuning knobs for the
// parallel sorts. A nil *RuntimeParameters (or the zero value) sorts
// sequentially with the default cutoffs and sequential recombination.
type RuntimeParameters struct {
	// Tuning configures the par primitives, including the pool that
	// forked recursions run on.
	Tuning *par.Tuning

	// SimpleThreshold is the cutoff below which SimpleParallel runs
	// the sequential baseline.
	SimpleThreshold int

	// FilterThreshold is the cutoff below which the filter-based
	// variants run the sequential baseline.
	FilterThreshold int

	// Copy selects the recombination strategy used by Parallel.
	Copy CopyStrategy
}

func (rp *RuntimeParameters) tuning() *par.Tuning {
	if rp == nil {
		return nil
	}
	return rp.Tuning
}

func (rp *RuntimeParameters) simpleThreshold() int {
	if rp == nil || rp.SimpleThreshold <= 0 {
		return DefaultSimpleThreshold
	}
	return rp.SimpleThreshold
}

func (rp *RuntimeParameters) filterThreshold() int {
	if rp == nil || rp.FilterThreshold <= 0 {
		return DefaultFilterThreshold
	}
	return rp.FilterThreshold
}

func (rp *RuntimeParameters) copyStrategy() CopyStrategy {
	if rp == nil {
		return CopySequential
	}
	return rp.Copy
}

// SimpleParallel sorts s in place, forking the recursion on the two
// sides of an ordinary in-place partition. The partition of each level
// is inherently sequential (a single scan with data-dependent swaps),
// so the span is O(n log n); the work matches the sequential baseline
// up to fork-join overhead.
func SimpleParallel[T constraints.Ordered](rp *RuntimeParameters, s []T) {
	if len(s) == 0 {
		return
	}
	if len(s) <= rp.simpleThreshold() {
		Quicksort(s)
		return
	}
	m := partition(s)
	left, right := s[:m], s[m+1:]
	rp.tuning().Join(
		func() { SimpleParallel(rp, left) },
		func() { SimpleParallel(rp, right) },
	)
}

// Parallel sorts s in place with polylogarithmic span. Each level
// splits the buffer into less/equal/greater groups with three
// independent par.Filter calls, sorts the outer groups concurrently,
// and then copies the three groups back per the configured
// CopyStrategy.
func Parallel[T constraints.Ordered](rp *RuntimeParameters, s []T) {
	if len(s) == 0 {
		return
	}
	if len(s) <= rp.filterThreshold() {
		Quicksort(s)
		return
	}
	t := rp.tuning()
	pivot := s[len(s)-1]

	less := par.Filter(t, s, func(v T) bool { return v < pivot })
	equal := par.Filter(t, s, func(v T) bool { return v == pivot })
	greater := par.Filter(t, s, func(v T) bool { return v > pivot })

	t.Join(
		func() { Parallel(rp, less) },
		func() { Parallel(rp, greater) },
	)

	recombine(rp, s, less, equal, greater)
}

// recombine writes less, equal, and greater back into s in that order.
func recombine[T any](rp *RuntimeParameters, s, less, equal, greater []T) {
	if len(less)+len(equal)+len(greater) != len(s) {
		panic(fmt.Sprintf("sorting: groups of %d+%d+%d elements do not recombine into %d",
			len(less), len(equal), len(greater), len(s)))
	}
	a := s[:len(less)]
	b := s[len(less) : len(less)+len(equal)]
	c := s[len(less)+len(equal):]

	t := rp.tuning()
	switch rp.copyStrategy() {
	case CopyForked:
		t.Join(
			func() { copy(a, less) },
			func() {
				t.Join(
					func() { copy(b, equal) },
					func() { copy(c, greater) },
				)
			},
		)
	case CopyBlocked:
		t.Join(
			func() { blockCopy(t, a, less) },
			func() {
				t.Join(
					func() { blockCopy(t, b, equal) },
					func() { blockCopy(t, c, greater) },
				)
			},
		)
	default:
		copy(a, less)
		copy(b, equal)
		copy(c, greater)
	}
}

// blockCopy copies src into dst block by block, in parallel. The block
// action receives contiguous chunks of dst, so concurrent writes are
// structurally disjoint.
func blockCopy[T any](t *par.Tuning, dst, src []T) {
	block := par.DefaultScanBlock
	if t != nil && t.ScanBlock > 0 {
		block = t.ScanBlock
	}
	par.BlockedFor(t, dst, block, func(b int, chunk []T) {
		copy(chunk, src[b*block:])
	})
}
