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
	"testing"

	"golang.org/x/exp/slices"

	"github.com/SnellerInc/parallel/ints"
)

func TestFilter(t *testing.T) {
	for _, tune := range testTunings() {
		got := Filter(tune, []int{-1, 2, -3, 4}, func(v int) bool { return v > 0 })
		if !slices.Equal(got, []int{2, 4}) {
			t.Fatalf("got %v", got)
		}
	}
}

func TestFilterEmpty(t *testing.T) {
	got := Filter(nil, []int{}, func(v int) bool {
		t.Fatal("predicate invoked on empty input")
		return false
	})
	if len(got) != 0 {
		t.Fatalf("got %v", got)
	}
}

func TestFilterDegenerate(t *testing.T) {
	tune := &Tuning{Pool: testPool(), SeqThreshold: 4, ScanBlock: 4}
	arr := []int32{5, 1, 4, 2, 3, 9, 8, 7, 6, 0}

	if got := Filter(tune, arr, func(int32) bool { return false }); len(got) != 0 {
		t.Fatalf("match-none returned %v", got)
	}
	if got := Filter(tune, arr, func(int32) bool { return true }); !slices.Equal(got, arr) {
		t.Fatalf("match-all returned %v", got)
	}
}

func TestFilterMatchesSequential(t *testing.T) {
	tunes := []*Tuning{
		nil,
		{SeqThreshold: 8, ScanBlock: 8},
		{Pool: testPool(), SeqThreshold: 8, ScanBlock: 8},
		{Pool: testPool(), SeqThreshold: 8, ScanBlock: 8, TreeScan: true},
	}
	pred := func(v int32) bool { return v > 0 }
	rnd := ints.NewRandom(3)
	for _, n := range []int{0, 1, 10, 257, 8*8*3 + 5, 20000} {
		arr := rnd.SliceInRange(n, -100, 100)

		var want []int32
		for _, v := range arr {
			if pred(v) {
				want = append(want, v)
			}
		}

		for _, tune := range tunes {
			got := Filter(tune, arr, pred)
			if len(got) != len(want) {
				t.Fatalf("n=%d: %d matches, want %d", n, len(got), len(want))
			}
			// matches appear in their original relative order
			if !slices.Equal(got, want) {
				t.Fatalf("n=%d: filter mismatch vs sequential", n)
			}
		}
	}
}

func BenchmarkFilter(b *testing.B) {
	tune := &Tuning{Pool: testPool()}
	arr := ints.NewRandom(3).Slice(1 << 20)
	pred := func(v int32) bool { return v > 0 }
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		Filter(tune, arr, pred)
	}
}
