// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import "cogentcore.org/core/math32/minmax"

// Buffer is a time-based interpolation buffer: an ordered store of
// [Sample] values with strictly increasing times, queryable at any
// point in time via [Buffer.Query]. Use [NewBuffer] to make one with
// its [Interpolator] strategy, which is fixed for the buffer's life.
//
// Buffer is not synchronized: it is designed for a single logical
// owner, with insertions and queries typically on one goroutine
// (e.g., a client main loop). For the common case of a network
// receive goroutine feeding while a render loop queries, wrap it
// with external locking, as the replica package does.
type Buffer[T any] struct {

	// samples is the time-ordered store. Add maintains strictly
	// increasing times, so at most one sample exists per time.
	samples []Sample[T]

	// interp is the blending strategy for queries between samples.
	interp Interpolator[T]
}

// NewBuffer returns a new [Buffer] using the given [Interpolator]
// to blend between bracketing samples.
func NewBuffer[T any](interp Interpolator[T]) *Buffer[T] {
	return &Buffer[T]{interp: interp}
}

// Add records the given state at the given time.
// A state older than the newest sample (time strictly less than the
// last sample's time) is silently ignored: late, out-of-order network
// packets are expected and carry information already superseded.
// A state at exactly the newest sample's time replaces it, so the
// most recent arrival wins for a given timestamp and no duplicate
// times are retained.
func (b *Buffer[T]) Add(state T, time float64) {
	n := len(b.samples)
	if n > 0 && time < b.samples[n-1].Time {
		return
	}
	for n > 0 && b.samples[n-1].Time >= time {
		n--
	}
	clear(b.samples[n:])
	b.samples = append(b.samples[:n], Sample[T]{State: state, Time: time})
}

// Query returns the state at the given time, blending between the
// two samples that bracket it using the buffer's [Interpolator].
// Times at or before the first sample return the first state, and
// times at or after the last sample return the last state, so a
// query never extrapolates. A query on an empty buffer returns
// [ErrNoSamples]. Queries do not modify the buffer and need not be
// monotonic across calls.
func (b *Buffer[T]) Query(now float64) (T, error) {
	n := len(b.samples)
	if n == 0 {
		var zero T
		return zero, ErrNoSamples
	}
	if now <= b.samples[0].Time {
		return b.samples[0].State, nil
	}
	if now >= b.samples[n-1].Time {
		return b.samples[n-1].State, nil
	}
	i := 1
	for b.samples[i].Time <= now {
		i++
	}
	from, to := b.samples[i-1], b.samples[i]
	dt := to.Time - from.Time
	if dt <= 0 {
		return to.State, nil
	}
	factor := float32((now - from.Time) / dt)
	return b.interp.Blend(from.State, to.State, factor), nil
}

// CullOlderThan removes all samples with times strictly less than
// the given time, preserving the order of the rest. Samples at
// exactly the given time are kept. This bounds memory when feeding
// a buffer indefinitely: callers typically cull to a fixed window
// behind the newest sample or the current query time.
func (b *Buffer[T]) CullOlderThan(time float64) {
	cut := 0
	for cut < len(b.samples) && b.samples[cut].Time < time {
		cut++
	}
	if cut == 0 {
		return
	}
	keep := copy(b.samples, b.samples[cut:])
	clear(b.samples[keep:])
	b.samples = b.samples[:keep]
}

// Clear removes all samples, for discontinuities such as an entity
// teleporting or a reconnect, where blending across the gap would
// produce meaningless motion.
func (b *Buffer[T]) Clear() {
	b.samples = nil
}

// IsEmpty reports whether the buffer has no samples.
func (b *Buffer[T]) IsEmpty() bool {
	return len(b.samples) == 0
}

// Count returns the number of samples currently held.
func (b *Buffer[T]) Count() int {
	return len(b.samples)
}

// First returns the oldest sample, or the zero [Sample] if the
// buffer is empty (check [Buffer.IsEmpty] first where it matters).
func (b *Buffer[T]) First() Sample[T] {
	if len(b.samples) == 0 {
		var zero Sample[T]
		return zero
	}
	return b.samples[0]
}

// Last returns the newest sample, or the zero [Sample] if the
// buffer is empty (check [Buffer.IsEmpty] first where it matters).
func (b *Buffer[T]) Last() Sample[T] {
	if len(b.samples) == 0 {
		var zero Sample[T]
		return zero
	}
	return b.samples[len(b.samples)-1]
}

// TimeRange returns the span of sample times currently held,
// as a [minmax.F64] range. The range is zero if the buffer is empty.
func (b *Buffer[T]) TimeRange() minmax.F64 {
	var r minmax.F64
	if len(b.samples) > 0 {
		r.Set(b.samples[0].Time, b.samples[len(b.samples)-1].Time)
	}
	return r
}
