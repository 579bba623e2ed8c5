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

// Disjoint is a non-owning view over a slice that permits writes to
// distinct indices from concurrently running tasks. The view is
// copyable and goroutine-shareable.
//
// The caller must guarantee that, across all writes active at the same
// time through any view over the same slice, the target indices are
// pairwise disjoint. Write performs no locking and, in normal builds,
// no overlap detection: the invariant has to be established before the
// parallel phase begins, either by an injective destination-index map
// (as the prefix-sum destinations in Filter) or by a partition of the
// index space (as the per-block totals in PrefixSums). Builds with the
// parguard tag detect overlapping writes and panic.
type Disjoint[T any] struct {
	s     []T
	guard guard
}

// DisjointOf wraps s in a Disjoint view.
func DisjointOf[T any](s []T) Disjoint[T] {
	return Disjoint[T]{s: s, guard: newGuard(len(s))}
}

// Write stores v at index i.
func (d Disjoint[T]) Write(i int, v T) {
	d.guard.claim(i)
	d.s[i] = v
}

// Len returns the length of the underlying slice.
func (d Disjoint[T]) Len() int {
	return len(d.s)
}
