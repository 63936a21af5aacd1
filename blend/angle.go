// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blend

import (
	"github.com/chewxy/math32"

	"cogentcore.org/replica/interp"
)

var _ interp.Interpolator[float32] = Angle{}

// Angle is the shortest arc [interp.Interpolator] for single angles
// in radians (headings, turret yaw): blending from +3 to -3 radians
// crosses Pi instead of sweeping nearly a full turn through zero.
type Angle struct{}

// Blend returns the shortest arc interpolation between from and to,
// wrapped to (-Pi, Pi].
func (Angle) Blend(from, to, factor float32) float32 {
	return Normalize(from + Normalize(to-from)*factor)
}

// Normalize returns the given angle in radians wrapped to
// (-Pi, Pi], the atan2 range.
func Normalize(angle float32) float32 {
	a := math32.Mod(angle+math32.Pi, 2*math32.Pi)
	if a <= 0 {
		a += 2 * math32.Pi
	}
	return a - math32.Pi
}
