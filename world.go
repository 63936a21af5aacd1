// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package replica

import (
	"slices"
	"sync"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/logx"
	"cogentcore.org/replica/interp"
	"github.com/patrickmn/go-cache"
)

// ErrNoEntity is returned by [World.State] and [World.Stats] for an
// entity id with no live track: never observed, explicitly dropped,
// or expired after [Params.MaxIdle] without snapshots.
var ErrNoEntity = errors.New("replica: no such entity")

// World tracks every entity in a networked scene, one [Track] per
// entity id. Tracks are created on first observation and dropped
// after [Params.MaxIdle] of wall clock time without snapshots, so a
// world fed from a live connection needs no explicit cleanup when
// entities despawn or their updates stop.
//
// All methods are safe for concurrent use. Use [NewWorld] to make
// one; every track blends with the same strategy.
type World[T any] struct {
	mu     sync.Mutex
	interp interp.Interpolator[T]
	params Params
	tracks *cache.Cache
}

// NewWorld returns a new [World] whose tracks blend with the given
// strategy, tuned by the given parameters ([Params.Defaults] is
// applied).
func NewWorld[T any](ip interp.Interpolator[T], pr Params) *World[T] {
	pr.Defaults()
	tracks := cache.New(pr.MaxIdle, pr.MaxIdle)
	tracks.OnEvicted(func(id string, _ any) {
		logx.PrintlnDebug("replica: dropped idle entity:", id)
	})
	return &World[T]{interp: ip, params: pr, tracks: tracks}
}

// Observe records a snapshot for the given entity, creating its
// track on first sight and refreshing its idle expiry. See
// [Track.Observe] for the snapshot ordering rules.
func (w *World[T]) Observe(id string, state T, at float64) {
	w.mu.Lock()
	tr := w.track(id)
	if tr == nil {
		tr = NewTrack(w.interp, w.params)
	}
	w.tracks.Set(id, tr, w.params.MaxIdle)
	w.mu.Unlock()
	tr.Observe(state, at)
}

// State returns the state of the given entity at the given time,
// per [Track.State]. It returns [ErrNoEntity] if the entity has no
// live track, and [interp.ErrNoSamples] if the track was reset and
// not yet re-observed.
func (w *World[T]) State(id string, now float64) (T, error) {
	w.mu.Lock()
	tr := w.track(id)
	w.mu.Unlock()
	if tr == nil {
		var zero T
		return zero, ErrNoEntity
	}
	return tr.State(now)
}

// Teleport marks a discontinuity for the given entity, resetting
// its track so that no blending happens across the jump. Unknown
// ids are a no-op.
func (w *World[T]) Teleport(id string) {
	w.mu.Lock()
	tr := w.track(id)
	w.mu.Unlock()
	if tr != nil {
		tr.Reset()
	}
}

// Drop removes the given entity's track immediately, for explicit
// despawns. Unknown ids are a no-op.
func (w *World[T]) Drop(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tracks.Delete(id)
}

// Stats returns the cumulative event counts for the given entity,
// or [ErrNoEntity] if it has no live track.
func (w *World[T]) Stats(id string) (Stats, error) {
	w.mu.Lock()
	tr := w.track(id)
	w.mu.Unlock()
	if tr == nil {
		return Stats{}, ErrNoEntity
	}
	return tr.Stats(), nil
}

// Len returns the number of live tracks. It can transiently include
// entities past their idle expiry but not yet swept.
func (w *World[T]) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tracks.ItemCount()
}

// IDs returns the ids of all live entities, sorted.
func (w *World[T]) IDs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	items := w.tracks.Items()
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Params returns the current tuning parameters.
func (w *World[T]) Params() Params {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.params
}

// SetParams updates the tuning parameters ([Params.Defaults] is
// applied), fanning the change out to all live tracks. A changed
// MaxIdle applies to expiries refreshed from the next Observe on.
func (w *World[T]) SetParams(pr Params) {
	pr.Defaults()
	w.mu.Lock()
	w.params = pr
	items := w.tracks.Items()
	w.mu.Unlock()
	for _, it := range items {
		if tr, ok := it.Object.(*Track[T]); ok {
			tr.SetParams(pr)
		}
	}
}

// track returns the live track for the given id, or nil.
// The caller must hold w.mu.
func (w *World[T]) track(id string) *Track[T] {
	if it, ok := w.tracks.Get(id); ok {
		if tr, ok := it.(*Track[T]); ok {
			return tr
		}
	}
	return nil
}
