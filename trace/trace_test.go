// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trace

import (
	"path/filepath"
	"sync"
	"testing"

	"cogentcore.org/core/math32"
	"cogentcore.org/replica"
	"cogentcore.org/replica/blend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func poseAt(x float32) blend.Pose {
	var p blend.Pose
	p.Defaults()
	p.Pos = math32.Vec3(x, 0, 0)
	return p
}

func TestSaveLoad(t *testing.T) {
	frames := []Frame{
		{At: 0, ID: "a", Pose: poseAt(0)},
		{At: 0.5, ID: "b", Pose: poseAt(3)},
		{At: 2, ID: "a", Pose: poseAt(10), Teleport: true},
	}

	fn := filepath.Join(t.TempDir(), "traces", "session.yaml")
	require.NoError(t, Save(fn, frames))

	got, err := Load(fn)
	require.NoError(t, err)
	assert.Equal(t, frames, got)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestByEntity(t *testing.T) {
	frames := []Frame{
		{At: 0, ID: "a"},
		{At: 0.1, ID: "b"},
		{At: 1, ID: "a"},
	}

	ents := ByEntity(frames)
	assert.Equal(t, []string{"a", "b"}, ents.Keys)
	assert.Equal(t, 2, len(ents.At("a")))
	assert.Equal(t, 1, len(ents.At("b")))
	assert.Equal(t, 0.0, ents.At("a")[0].At)
	assert.Equal(t, 1.0, ents.At("a")[1].At)
}

func TestReplay(t *testing.T) {
	w := replica.NewWorld[blend.Pose](blend.Poses{}, replica.Params{Delay: 1, Retention: 100})

	frames := []Frame{
		{At: 0, ID: "a", Pose: poseAt(0)},
		{At: 2, ID: "a", Pose: poseAt(10)},
		{At: 1, ID: "a", Pose: poseAt(-99)}, // arrived late, must be dropped
		{At: 0, ID: "b", Pose: poseAt(0)},
		{At: 3, ID: "b", Pose: poseAt(500), Teleport: true},
	}
	Replay(frames, w)

	pose, err := w.State("a", 2)
	require.NoError(t, err)
	assert.Equal(t, float32(5), pose.Pos.X)

	st, err := w.Stats("a")
	require.NoError(t, err)
	assert.Equal(t, 3, st.Observed)
	assert.Equal(t, 1, st.Stale)

	// the teleport reset means b holds its new pose, not a blend
	pose, err = w.State("b", 3.5)
	require.NoError(t, err)
	assert.Equal(t, float32(500), pose.Pos.X)
}

func TestRecorder(t *testing.T) {
	var rc Recorder
	var wg sync.WaitGroup
	wg.Add(2)
	for g := range 2 {
		go func() {
			defer wg.Done()
			for i := range 100 {
				rc.Record(Frame{At: float64(i), ID: string(rune('a' + g))})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 200, rc.Len())

	fn := filepath.Join(t.TempDir(), "rec.yaml")
	require.NoError(t, rc.Save(fn))
	got, err := Load(fn)
	require.NoError(t, err)
	assert.Equal(t, 200, len(got))
}
