// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package netwire streams entity state snapshots over WebSockets:
a [Broadcaster] on the simulation side fans [Snapshot] messages
out to every connected client, and a [Client] on the display side
decodes them and feeds a [replica.World] via [Client.Feed].

The wire format is one JSON object per WebSocket text message.
Snapshots carry the producer's capture time, so irregular network
delivery does not disturb the receiver's interpolation: ordering
and timing are reconstructed from [Snapshot.Time], not arrival.
*/
package netwire

import (
	"bytes"

	"cogentcore.org/core/base/iox/jsonx"
	"cogentcore.org/replica/blend"
)

// Snapshot is one wire message: the pose of one entity at one
// capture time.
type Snapshot struct {

	// ID identifies the entity within its world.
	ID string `json:"id"`

	// Time is the capture time in seconds of the producer's time
	// base (typically server simulation time).
	Time float64 `json:"time"`

	// Pose is the entity's transform at Time.
	Pose blend.Pose `json:"pose"`

	// Teleport marks a discontinuity: the entity jumped here rather
	// than moving here, so receivers must not blend across the gap.
	Teleport bool `json:"teleport,omitempty"`
}

// Encode returns the snapshot as JSON.
func (sn *Snapshot) Encode() ([]byte, error) {
	return jsonx.WriteBytes(sn)
}

// Decode sets the snapshot from JSON bytes.
func (sn *Snapshot) Decode(b []byte) error {
	return jsonx.Read(sn, bytes.NewReader(b))
}
