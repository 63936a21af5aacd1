// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package blend provides [interp.Interpolator] strategies for the
spatial types of networked virtual worlds: vectors, rotations,
angles, and whole object transforms ([Pose]).

Positions, scales, and other magnitudes blend linearly ([Vector2],
[Vector3]); rotations blend spherically along the shortest path
([Quat], [Angle]), because componentwise blending of rotations
produces shrinking, wobbling motion.
*/
package blend

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/replica/interp"
)

var (
	_ interp.Interpolator[math32.Vector2] = Vector2{}
	_ interp.Interpolator[math32.Vector3] = Vector3{}
)

// Vector2 is the linear [interp.Interpolator] for [math32.Vector2]
// values such as 2D positions and velocities.
type Vector2 struct{}

// Blend returns the componentwise linear interpolation between
// from and to.
func (Vector2) Blend(from, to math32.Vector2, factor float32) math32.Vector2 {
	return from.Lerp(to, factor)
}

// Vector3 is the linear [interp.Interpolator] for [math32.Vector3]
// values such as positions, velocities, and scales.
type Vector3 struct{}

// Blend returns the componentwise linear interpolation between
// from and to.
func (Vector3) Blend(from, to math32.Vector3, factor float32) math32.Vector3 {
	return from.Lerp(to, factor)
}
