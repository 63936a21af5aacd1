// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blend

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/replica/interp"
)

var _ interp.Interpolator[Pose] = Poses{}

// Pose is the transform state of one object in a networked world:
// position, rotation, and scale. It is the standard state type for
// interpolation buffers fed by transform snapshots, blending each
// part with the appropriate strategy via [Pose.Blend].
type Pose struct {

	// position of the object
	Pos math32.Vector3

	// rotation specified as a Quat
	Quat math32.Quat

	// per axis scale, 1 = natural size
	Scale math32.Vector3
}

// Defaults sets an identity rotation and unit scale if unset.
func (p *Pose) Defaults() {
	if p.Quat.IsNil() {
		p.Quat.SetIdentity()
	}
	if p.Scale == (math32.Vector3{}) {
		p.Scale = math32.Vec3(1, 1, 1)
	}
}

// Blend returns the pose at the given fractional position between
// this pose (factor = 0) and to (factor = 1): position and scale
// interpolate linearly, rotation slerps along the shortest path.
func (p Pose) Blend(to Pose, factor float32) Pose {
	p.Pos = p.Pos.Lerp(to.Pos, factor)
	p.Quat.Slerp(to.Quat, factor)
	p.Scale = p.Scale.Lerp(to.Scale, factor)
	return p
}

// Poses is the [interp.Interpolator] for [Pose] states,
// delegating to [Pose.Blend].
type Poses struct{}

// Blend returns from.Blend(to, factor).
func (Poses) Blend(from, to Pose, factor float32) Pose {
	return from.Blend(to, factor)
}
