// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package interp implements a time-based interpolation buffer:
an ordered, time-indexed store of state samples that reconstructs
a smooth, continuously-queryable signal from sparse, irregularly
timed updates, such as object transforms received over a network.

The central type is [Buffer], which holds [Sample] values in
strictly increasing time order and answers point-in-time queries
by blending the two samples that bracket the query time, using a
pluggable [Interpolator] strategy. See [Linear] and [Discrete]
here for scalar strategies, and the blend package for spatial
types (vectors, quaternions, poses).
*/
package interp

import (
	"cogentcore.org/core/base/errors"
	"golang.org/x/exp/constraints"
)

// ErrNoSamples is returned by [Buffer.Query] when the buffer
// contains no samples, so there is no state to return.
var ErrNoSamples = errors.New("interp: buffer has no samples")

// Sample is one recorded state with the time it was captured.
// Times are in seconds, in whatever time base the producer uses
// (server simulation time, for networked state); the buffer only
// compares them to each other and to query times.
type Sample[T any] struct {

	// State is the recorded value.
	State T

	// Time is the capture time of State, in seconds.
	Time float64
}

// Interpolator blends between two states of type T.
// A single Interpolator is fixed per [Buffer] at construction,
// so all samples in one buffer blend consistently.
type Interpolator[T any] interface {

	// Blend returns the state at the given fractional position
	// between from (factor = 0) and to (factor = 1).
	// Implementations must tolerate factors slightly outside
	// [0, 1] from floating point error in the caller, without
	// returning NaN or panicking.
	Blend(from, to T, factor float32) T
}

// InterpolatorFunc is a function adapter for [Interpolator],
// for strategies that need no state of their own.
type InterpolatorFunc[T any] func(from, to T, factor float32) T

// Blend calls the function.
func (f InterpolatorFunc[T]) Blend(from, to T, factor float32) T {
	return f(from, to, factor)
}

// Linear is the standard linear [Interpolator] for float types:
// from + (to - from) * factor.
type Linear[T constraints.Float] struct{}

// Blend returns the linear interpolation between from and to.
func (Linear[T]) Blend(from, to T, factor float32) T {
	return from + (to-from)*T(factor)
}

// Discrete is a sample-and-hold [Interpolator] for states that
// cannot meaningfully blend (enums, flags, ids): it returns from
// until the factor reaches 1, and to at or beyond it.
type Discrete[T any] struct{}

// Blend returns from for factor < 1, and to otherwise.
func (Discrete[T]) Blend(from, to T, factor float32) T {
	if factor < 1 {
		return from
	}
	return to
}
