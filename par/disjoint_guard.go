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

//go:build parguard

package par

import (
	"fmt"
	"sync/atomic"
)

// guard tracks which indices of a view have been written. Each index
// may be claimed at most once over the lifetime of the view, which is
// stricter than the disjointness contract but matches how all callers
// in this module use views: one write per destination per parallel
// phase, with a fresh view per phase.
type guard struct {
	claimed []uint32
}

func newGuard(n int) guard {
	return guard{claimed: make([]uint32, n)}
}

func (g guard) claim(i int) {
	if !atomic.CompareAndSwapUint32(&g.claimed[i], 0, 1) {
		panic(fmt.Sprintf("par: overlapping write at index %d", i))
	}
}
