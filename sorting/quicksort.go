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

// Package sorting implements a family of quicksorts built on the
// fork-join primitives in package par: a sequential baseline, a simple
// parallel variant that forks after an in-place partition, a
// filter-based variant with polylogarithmic span and a configurable
// recombination strategy, and a baseline on pargo's bulk operations
// kept as a cross-check.
//
// Every sort is in place, synchronous, and leaves the buffer a sorted
// permutation of its input. Stability is not guaranteed.
package sorting

import (
	"golang.org/x/exp/constraints"
)

// Quicksort sorts s in place with the sequential baseline algorithm:
// a Lomuto-style partition around the last element, then recursion on
// the two sides of the pivot.
func Quicksort[T constraints.Ordered](s []T) {
	if len(s) == 0 {
		return
	}
	m := partition(s)
	Quicksort(s[:m])
	Quicksort(s[m+1:])
}

// partition swaps every element smaller than the last element (the
// pivot) to the front in a single left-to-right scan, places the pivot
// at the boundary, and returns the pivot's final index.
func partition[T constraints.Ordered](s []T) int {
	m := 0
	last := len(s) - 1
	for i := 0; i < last; i++ {
		if s[i] < s[last] {
			s[i], s[m] = s[m], s[i]
			m++
		}
	}
	s[m], s[last] = s[last], s[m]
	return m
}
