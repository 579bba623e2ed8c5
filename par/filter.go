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

// Filter returns the elements of s matching pred, preserving their
// relative order. pred must be pure: it is invoked more than once per
// element and from concurrently running tasks.
//
// The output position of each match is computed up front: the match
// mask is mapped to 0/1 and scanned, so the exclusive prefix sum at a
// matching index is exactly that element's destination. The destination
// map is injective, which is what lets all output writes go through one
// Disjoint view concurrently. The output is allocated at its exact
// final size before the scatter begins.
func Filter[T any](t *Tuning, s []T, pred func(v T) bool) []T {
	if len(s) == 0 {
		return nil
	}

	mask := Map(t, s, func(v T) int32 {
		if pred(v) {
			return 1
		}
		return 0
	})
	PrefixSums(t, mask)

	matched := int(mask[len(mask)-1])
	if pred(s[len(s)-1]) {
		matched++
	}
	res := make([]T, matched)

	view := DisjointOf(res)
	For(t, mask, func(i int, dst *int32) {
		if pred(s[i]) {
			view.Write(int(*dst), s[i])
		}
	})
	return res
}
