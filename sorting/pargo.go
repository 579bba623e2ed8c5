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
	"github.com/exascience/pargo/parallel"
	"golang.org/x/exp/constraints"
)

// PargoParallel sorts s in place with the same structure as Parallel —
// filter into three groups, sort the outer two concurrently, copy back
// sequentially — but built on pargo's bulk primitives instead of the
// hand-rolled ones in package par. It is retained purely as a
// correctness and performance cross-check; pargo schedules on its own
// GOMAXPROCS-sized machinery, so RuntimeParameters only contributes the
// sequential cutoff here.
func PargoParallel[T constraints.Ordered](rp *RuntimeParameters, s []T) {
	if len(s) == 0 {
		return
	}
	if len(s) <= rp.filterThreshold() {
		Quicksort(s)
		return
	}
	pivot := s[len(s)-1]

	less := pargoFilter(s, func(v T) bool { return v < pivot })
	equal := pargoFilter(s, func(v T) bool { return v == pivot })
	greater := pargoFilter(s, func(v T) bool { return v > pivot })

	parallel.Do(
		func() { PargoParallel(rp, less) },
		func() { PargoParallel(rp, greater) },
	)

	if len(less)+len(equal)+len(greater) != len(s) {
		panic("sorting: pargo groups do not recombine into the input")
	}
	n := copy(s, less)
	n += copy(s[n:], equal)
	copy(s[n:], greater)
}

// pargoFilter collects the matching elements of s in order using
// pargo's parallel range reduction: each leaf range collects its own
// matches and adjacent partial results are concatenated left to right,
// which preserves the relative order of matches.
func pargoFilter[T any](s []T, pred func(v T) bool) []T {
	res := parallel.RangeReduce(0, len(s), 0,
		func(low, high int) interface{} {
			var out []T
			for _, v := range s[low:high] {
				if pred(v) {
					out = append(out, v)
				}
			}
			return out
		},
		func(left, right interface{}) interface{} {
			return append(left.([]T), right.([]T)...)
		},
	)
	return res.([]T)
}
