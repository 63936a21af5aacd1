// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package replica reconstructs smooth local replicas of remotely
simulated entities from sparse, irregularly timed state snapshots,
such as object transforms received over a network.

A [Track] smooths one quantity through a time-based interpolation
buffer ([interp.Buffer]), rendering a fixed [Params.Delay] behind
the newest known state so queries blend between real samples
instead of extrapolating. A [World] manages a track per entity,
creating them on first observation and expiring them after
[Params.MaxIdle] without updates.

The blend package provides interpolation strategies for spatial
state ([blend.Pose], vectors, rotations), the netwire package
feeds worlds from WebSocket snapshot streams, and the trace
package records and replays snapshot traces.
*/
package replica

import (
	"path/filepath"
	"time"

	"cogentcore.org/core/base/iox/tomlx"
	"cogentcore.org/core/base/logx"
	"github.com/fsnotify/fsnotify"
)

// Params are the tuning parameters for replica tracking.
// The zero value is usable after [Params.Defaults].
type Params struct {

	// Delay is how far behind the newest known state queries are
	// answered, in seconds of the snapshot time base. It buys time
	// for late snapshots to arrive, keeping queries between real
	// samples: larger values smooth over worse networks at the cost
	// of added latency. Default is 0.1.
	Delay float64

	// Retention is how long samples are kept behind the newest
	// sample, in seconds. It must comfortably exceed Delay so the
	// delayed query time always has samples around it. Default is 1.
	Retention float64

	// MaxIdle is how long an entity in a [World] may go without new
	// snapshots before its track is dropped. This is wall clock
	// time, not snapshot time. Default is 5 seconds.
	MaxIdle time.Duration
}

// Defaults sets default values for any unset parameters.
func (pr *Params) Defaults() {
	if pr.Delay <= 0 {
		pr.Delay = 0.1
	}
	if pr.Retention <= 0 {
		pr.Retention = 1
	}
	if pr.MaxIdle <= 0 {
		pr.MaxIdle = 5 * time.Second
	}
}

// OpenParams opens parameters from the given TOML file, applying
// [Params.Defaults] for anything the file leaves unset.
func OpenParams(filename string) (Params, error) {
	var pr Params
	err := tomlx.Open(&pr, filename)
	pr.Defaults()
	return pr, err
}

// watchLag is the window within which a burst of file events from
// one save is collapsed into a single reload.
const watchLag = 100 * time.Millisecond

// WatchParams watches the given TOML parameter file and calls
// onChange with freshly loaded parameters whenever it is written,
// for tuning delay and retention on a live system. The enclosing
// directory is watched, so editors that replace the file on save
// are handled. It returns a stop function that ends the watch.
func WatchParams(filename string, onChange func(pr Params)) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	filename = filepath.Clean(filename)
	if err := watcher.Add(filepath.Dir(filename)); err != nil {
		watcher.Close()
		return nil, err
	}
	done := make(chan bool)
	go func() {
		var last time.Time
		for {
			select {
			case <-done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filename {
					continue
				}
				switch {
				case event.Op&fsnotify.Write == fsnotify.Write ||
					event.Op&fsnotify.Create == fsnotify.Create ||
					event.Op&fsnotify.Rename == fsnotify.Rename:
					if time.Since(last) < watchLag {
						continue
					}
					last = time.Now()
					pr, err := OpenParams(filename)
					if err != nil {
						logx.PrintlnWarn("replica.WatchParams:", err)
						continue
					}
					onChange(pr)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logx.PrintlnWarn("replica.WatchParams:", err)
			}
		}
	}()
	stop := func() {
		close(done)
		watcher.Close()
	}
	return stop, nil
}
