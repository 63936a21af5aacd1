// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package trace records and replays entity snapshot traces as YAML
files, for offline analysis, regression tests, and demos that need
deterministic network input. A trace is a flat list of [Frame]
values in arrival order: replaying one through [Replay] reproduces
exactly what a live [netwire] feed would have done to a world,
including the effects of late and duplicate frames.
*/
package trace

import (
	"os"
	"path/filepath"

	"cogentcore.org/core/base/keylist"
	"cogentcore.org/replica"
	"cogentcore.org/replica/blend"
	"gopkg.in/yaml.v3"
)

// Frame is one recorded snapshot: the pose of one entity at one
// capture time, in arrival order within its trace.
type Frame struct {

	// At is the capture time in seconds of the producer's time base.
	At float64 `yaml:"at"`

	// ID identifies the entity within its world.
	ID string `yaml:"id"`

	// Pose is the entity's transform at At.
	Pose blend.Pose `yaml:"pose"`

	// Teleport marks a discontinuity at this frame.
	Teleport bool `yaml:"teleport,omitempty"`
}

// Save writes the given frames to the given YAML file, creating
// enclosing directories as needed.
func Save(filename string, frames []Frame) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0700); err != nil {
		return err
	}
	d, err := yaml.Marshal(frames)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, d, 0600)
}

// Load reads frames from the given YAML trace file.
func Load(filename string) ([]Frame, error) {
	d, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var frames []Frame
	err = yaml.Unmarshal(d, &frames)
	return frames, err
}

// ByEntity groups frames by entity id, keeping entities in first
// seen order and each entity's frames in trace order.
func ByEntity(frames []Frame) *keylist.List[string, []Frame] {
	ents := keylist.New[string, []Frame]()
	for _, fr := range frames {
		ents.Set(fr.ID, append(ents.At(fr.ID), fr))
	}
	return ents
}

// Replay feeds the frames into the given world in trace order,
// reproducing what the live feed did: teleport frames reset the
// entity's track first, and frames that arrived out of order are
// dropped by the track just as they originally were.
func Replay(frames []Frame, w *replica.World[blend.Pose]) {
	for _, fr := range frames {
		if fr.Teleport {
			w.Teleport(fr.ID)
		}
		w.Observe(fr.ID, fr.Pose, fr.At)
	}
}
