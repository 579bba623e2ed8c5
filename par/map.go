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

// Map returns a freshly allocated slice holding f applied to every
// element of s. f must be pure: it may run concurrently and in any
// order. Span is logarithmic in len(s), work is linear.
func Map[T, R any](t *Tuning, s []T, f func(v T) R) []R {
	if len(s) == 0 {
		return nil
	}
	res := make([]R, len(s))
	mapRange(t, s, res, f)
	return res
}

func mapRange[T, R any](t *Tuning, src []T, dst []R, f func(v T) R) {
	if len(src) <= t.seqThreshold() {
		for i := range src {
			dst[i] = f(src[i])
		}
		return
	}
	// source and destination split at the same midpoint, so every
	// branch writes a destination range it owns exclusively
	m := len(src) / 2
	t.Join(
		func() { mapRange(t, src[:m], dst[:m], f) },
		func() { mapRange(t, src[m:], dst[m:], f) },
	)
}
