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

// Package par implements generic fork-join parallel primitives over
// slices: elementwise apply, map, exclusive prefix sums, and filter.
//
// Every primitive is synchronous: it returns only once the whole
// parallel computation has completed. Concurrent mutation is confined
// to two disciplines: contiguous sub-ranges whose ownership transfers
// at each fork point, and scattered writes through a Disjoint view
// whose index-disjointness is established before the parallel phase
// begins. There are no locks.
package par

// A Joiner runs two independent computations, possibly concurrently,
// and returns once both are done. *fork.Pool implements Joiner.
type Joiner interface {
	Join(left, right func())
}

// Default values of the tuning constants. They balance per-task
// overhead against cache-friendly leaf sizes; optimal values depend on
// hardware and workload.
const (
	DefaultSeqThreshold = 4096
	DefaultScanBlock    = 4096
)

// Tuning carries the scheduler and the tuning constants used by the
// primitives. A nil *Tuning (or the zero value) runs everything
// sequentially with the default constants, so callers can thread one
// explicit configuration value through an entire computation instead
// of relying on process-global state.
type Tuning struct {
	// Pool runs forked halves. A nil Pool makes every join inline.
	Pool Joiner

	// SeqThreshold is the largest range a single sequential leaf
	// processes before the recursion stops splitting.
	SeqThreshold int

	// ScanBlock is the block size used by PrefixSums and by
	// BlockedFor callers that do not specify their own.
	ScanBlock int

	// TreeScan selects the up-sweep/down-sweep block-totals pass in
	// PrefixSums (logarithmic span) instead of the recursive one
	// (log-squared span, but less auxiliary memory).
	TreeScan bool
}

// Join runs left and right on the configured pool and returns once
// both are done. With a nil Tuning or nil pool both run inline.
func (t *Tuning) Join(left, right func()) {
	if t == nil || t.Pool == nil {
		left()
		right()
		return
	}
	t.Pool.Join(left, right)
}

func (t *Tuning) seqThreshold() int {
	if t == nil || t.SeqThreshold <= 0 {
		return DefaultSeqThreshold
	}
	return t.SeqThreshold
}

func (t *Tuning) scanBlock() int {
	if t == nil || t.ScanBlock <= 0 {
		return DefaultScanBlock
	}
	return t.ScanBlock
}

func (t *Tuning) treeScan() bool {
	return t != nil && t.TreeScan
}
