// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package replica

import (
	"sync"

	"cogentcore.org/replica/interp"
)

// Stats are cumulative counts of notable events on a [Track].
type Stats struct {

	// Observed is the total number of snapshots passed to Observe,
	// including stale ones.
	Observed int

	// Stale is the number of observed snapshots that arrived out of
	// order (older than the newest buffered sample) and were dropped.
	Stale int

	// ClampedEarly is the number of queries that fell before the
	// oldest buffered sample and were clamped to it. Persistent
	// early clamping means Delay or Retention is too small.
	ClampedEarly int

	// ClampedLate is the number of queries that fell past the newest
	// buffered sample and were clamped to it. Persistent late
	// clamping means snapshots are arriving slower than Delay covers.
	ClampedLate int
}

// Track smooths one remotely simulated quantity. Snapshots go in
// through [Track.Observe] as they arrive, in whatever irregular
// rhythm the network delivers them; [Track.State] reads the state
// at any time, rendered [Params.Delay] behind the newest known
// sample so reads blend between real samples.
//
// Track is safe for the standard deployment of one goroutine
// feeding it while another queries it. Use [NewTrack] to make one.
type Track[T any] struct {
	mu     sync.Mutex
	params Params
	buf    *interp.Buffer[T]
	stats  Stats
}

// NewTrack returns a new [Track] blending with the given strategy,
// tuned by the given parameters ([Params.Defaults] is applied).
func NewTrack[T any](ip interp.Interpolator[T], pr Params) *Track[T] {
	pr.Defaults()
	return &Track[T]{params: pr, buf: interp.NewBuffer(ip)}
}

// Observe records a snapshot of the tracked quantity captured at
// the given time, in seconds of the producer's time base. Snapshots
// older than the newest one recorded are dropped (counted in
// [Stats.Stale]); a snapshot at the same time as the newest one
// replaces it. Old samples beyond [Params.Retention] behind the
// newest are culled.
func (tr *Track[T]) Observe(state T, at float64) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.stats.Observed++
	if !tr.buf.IsEmpty() && at < tr.buf.Last().Time {
		tr.stats.Stale++
		return
	}
	tr.buf.Add(state, at)
	tr.buf.CullOlderThan(tr.buf.Last().Time - tr.params.Retention)
}

// State returns the tracked state at the given time, blending
// between the samples that bracket the delayed query time
// (now - [Params.Delay]). Queries outside the buffered span clamp
// to the nearest sample and are counted in [Stats]. A track that
// has never been observed (or was [Track.Reset]) returns
// [interp.ErrNoSamples].
func (tr *Track[T]) State(now float64) (T, error) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	at := now - tr.params.Delay
	state, err := tr.buf.Query(at)
	if err != nil {
		return state, err
	}
	if at < tr.buf.First().Time {
		tr.stats.ClampedEarly++
	} else if at > tr.buf.Last().Time {
		tr.stats.ClampedLate++
	}
	return state, nil
}

// Latest returns the newest raw snapshot and true, or the zero
// sample and false if nothing has been observed.
func (tr *Track[T]) Latest() (interp.Sample[T], bool) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if tr.buf.IsEmpty() {
		return interp.Sample[T]{}, false
	}
	return tr.buf.Last(), true
}

// Reset drops all buffered samples, for discontinuities such as
// teleports or respawns, where blending across the gap would render
// motion that never happened. The next Observe starts fresh.
func (tr *Track[T]) Reset() {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.buf.Clear()
}

// Stats returns a copy of the cumulative event counts.
func (tr *Track[T]) Stats() Stats {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.stats
}

// Params returns the current tuning parameters.
func (tr *Track[T]) Params() Params {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.params
}

// SetParams updates the tuning parameters of a live track
// ([Params.Defaults] is applied). The new retention takes effect
// at the next Observe.
func (tr *Track[T]) SetParams(pr Params) {
	pr.Defaults()
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.params = pr
}
