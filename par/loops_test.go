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
	"sync/atomic"
	"testing"

	"golang.org/x/exp/slices"

	"github.com/SnellerInc/parallel/fork"
)

func testPool() *fork.Pool { return fork.NewPool(4) }

// testTunings returns configurations spanning sequential execution,
// tiny thresholds that force deep recursion, and realistic pools.
func testTunings() []*Tuning {
	return []*Tuning{
		nil,
		{},
		{SeqThreshold: 4, ScanBlock: 4},
		{Pool: fork.NewPool(1), SeqThreshold: 4, ScanBlock: 4},
		{Pool: fork.NewPool(4), SeqThreshold: 4, ScanBlock: 4},
		{Pool: fork.NewPool(4), SeqThreshold: 4, ScanBlock: 4, TreeScan: true},
		{Pool: fork.NewPool(0)},
	}
}

func TestFor(t *testing.T) {
	for _, tune := range testTunings() {
		arr := []int{1, 2, 3, 4, 5}
		For(tune, arr, func(i int, v *int) { *v += 2 * i })
		want := []int{1, 4, 7, 10, 13}
		if !slices.Equal(arr, want) {
			t.Fatalf("got %v, want %v", arr, want)
		}
	}
}

func TestForThresholdBoundaries(t *testing.T) {
	// one below, at, and one above the split threshold
	const threshold = 64
	tune := &Tuning{Pool: fork.NewPool(4), SeqThreshold: threshold}
	for _, n := range []int{0, 1, threshold - 1, threshold, threshold + 1, 4 * threshold} {
		arr := make([]int64, n)
		For(tune, arr, func(i int, v *int64) { *v = int64(i * i) })
		for i, v := range arr {
			if v != int64(i*i) {
				t.Fatalf("n=%d: index %d got %d, want %d", n, i, v, i*i)
			}
		}
	}
}

func TestForEachIndexOnce(t *testing.T) {
	tune := &Tuning{Pool: fork.NewPool(8), SeqThreshold: 16}
	counts := make([]int64, 10000)
	For(tune, counts, func(i int, v *int64) { atomic.AddInt64(&counts[i], 1) })
	for i, c := range counts {
		if c != 1 {
			t.Fatalf("index %d visited %d times", i, c)
		}
	}
}

func TestBlockedFor(t *testing.T) {
	const blockSize = 8
	for _, n := range []int{1, blockSize - 1, blockSize, blockSize + 1, 5*blockSize + 3} {
		for _, tune := range testTunings() {
			arr := make([]int, n)
			for i := range arr {
				arr[i] = i
			}
			var visited int64
			BlockedFor(tune, arr, blockSize, func(block int, chunk []int) {
				atomic.AddInt64(&visited, int64(len(chunk)))
				if len(chunk) > blockSize {
					t.Errorf("n=%d: block %d has %d elements", n, block, len(chunk))
				}
				// the chunk must start at its block's global offset
				if chunk[0] != block*blockSize {
					t.Errorf("n=%d: block %d starts with %d", n, block, chunk[0])
				}
				// only the final block may be partial
				if len(chunk) < blockSize && block*blockSize+len(chunk) != n {
					t.Errorf("n=%d: interior block %d is partial", n, block)
				}
			})
			if visited != int64(n) {
				t.Fatalf("n=%d: visited %d elements", n, visited)
			}
		}
	}
}

func TestBlockedForEmpty(t *testing.T) {
	BlockedFor(nil, []int{}, 8, func(block int, chunk []int) {
		t.Fatal("action invoked on empty input")
	})
}
