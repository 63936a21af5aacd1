// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import "sync"

// Recorder collects frames from a live feed, in arrival order, for
// later [Recorder.Save]. The zero value is ready to use, and it is
// safe to record from one goroutine while another reads.
type Recorder struct {
	mu     sync.Mutex
	frames []Frame
}

// Record appends one frame.
func (rc *Recorder) Record(fr Frame) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.frames = append(rc.frames, fr)
}

// Len returns the number of frames recorded so far.
func (rc *Recorder) Len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.frames)
}

// Frames returns a copy of the frames recorded so far.
func (rc *Recorder) Frames() []Frame {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	frames := make([]Frame, len(rc.frames))
	copy(frames, rc.frames)
	return frames
}

// Save writes the frames recorded so far to the given YAML trace
// file, per [Save].
func (rc *Recorder) Save(filename string) error {
	return Save(filename, rc.Frames())
}
