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
	"strconv"
	"testing"

	"golang.org/x/exp/slices"
)

func TestMap(t *testing.T) {
	for _, tune := range testTunings() {
		arr := []int{1, 2, 3, 4, 5}
		got := Map(tune, arr, func(v int) int { return 2 * v })
		if !slices.Equal(got, []int{2, 4, 6, 8, 10}) {
			t.Fatalf("got %v", got)
		}
		// the input is untouched
		if !slices.Equal(arr, []int{1, 2, 3, 4, 5}) {
			t.Fatalf("input mutated: %v", arr)
		}
	}
}

func TestMapTypeChange(t *testing.T) {
	tune := &Tuning{SeqThreshold: 2}
	got := Map(tune, []int{10, 20, 30}, strconv.Itoa)
	if !slices.Equal(got, []string{"10", "20", "30"}) {
		t.Fatalf("got %v", got)
	}
}

func TestMapMatchesSequential(t *testing.T) {
	const threshold = 32
	tunes := []*Tuning{
		nil,
		{SeqThreshold: threshold},
		{Pool: testPool(), SeqThreshold: threshold},
	}
	f := func(v int32) int64 { return int64(v)*3 - 7 }
	for _, n := range []int{0, 1, threshold - 1, threshold, threshold + 1, 10 * threshold} {
		arr := make([]int32, n)
		for i := range arr {
			arr[i] = int32(i - n/2)
		}
		want := make([]int64, n)
		for i, v := range arr {
			want[i] = f(v)
		}
		for _, tune := range tunes {
			got := Map(tune, arr, f)
			if len(got) != n {
				t.Fatalf("n=%d: output length %d", n, len(got))
			}
			if !slices.Equal(got, want) && n > 0 {
				t.Fatalf("n=%d: mismatch vs sequential application", n)
			}
		}
	}
}
