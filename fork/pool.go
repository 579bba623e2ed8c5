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

// Package fork implements the fork-join scheduler used by the parallel
// primitives: a worker pool of fixed size exposing a single blocking
// pairwise Join operation.
package fork

import (
	"runtime"
)

// Pool is a fixed-size fork-join worker pool.
//
// The pool size is chosen once at construction and caps how many forked
// computations may run beyond the calling goroutines themselves. Pool
// does no scheduling of its own: when no capacity is free, Join runs
// both computations inline on the caller. A nil *Pool is valid and
// makes every Join purely sequential, which is convenient for tests
// that want deterministic execution.
type Pool struct {
	sem chan struct{}
}

// NewPool returns a pool that runs at most threads forked computations
// concurrently. If threads <= 0, GOMAXPROCS is used.
func NewPool(threads int) *Pool {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	return &Pool{sem: make(chan struct{}, threads)}
}

// Join runs left and right, possibly concurrently, and returns only
// once both have finished. The two computations must be independent:
// Join guarantees no ordering between them, only their joint
// completion. A panic in either computation aborts the process, as
// there is no way to unwind a half-finished parallel phase.
func (p *Pool) Join(left, right func()) {
	if p == nil {
		left()
		right()
		return
	}
	select {
	case p.sem <- struct{}{}:
		done := make(chan struct{})
		go func() {
			defer func() {
				<-p.sem
				close(done)
			}()
			right()
		}()
		left()
		<-done
	default:
		// no free capacity; run inline
		left()
		right()
	}
}
