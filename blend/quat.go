// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blend

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/replica/interp"
)

var _ interp.Interpolator[math32.Quat] = Quat{}

// Quat is the spherical [interp.Interpolator] for [math32.Quat]
// rotations. It slerps along the shortest path, so blending between
// quaternions on opposite hemispheres (q and -q represent the same
// rotation) never sweeps the long way around, and nearly identical
// rotations fall back to normalized linear blending for stability.
type Quat struct{}

// Blend returns the shortest path spherical interpolation between
// from and to.
func (Quat) Blend(from, to math32.Quat, factor float32) math32.Quat {
	from.Slerp(to, factor)
	return from
}
