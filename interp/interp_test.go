// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"math"
	"testing"

	"cogentcore.org/core/base/tolassert"
	"github.com/stretchr/testify/assert"
)

func TestLinear(t *testing.T) {
	li := Linear[float64]{}
	assert.Equal(t, 0.0, li.Blend(0, 10, 0))
	assert.Equal(t, 5.0, li.Blend(0, 10, 0.5))
	assert.Equal(t, 10.0, li.Blend(0, 10, 1))
	assert.Equal(t, -2.5, li.Blend(0, -10, 0.25))

	lf := Linear[float32]{}
	assert.Equal(t, float32(7.5), lf.Blend(5, 10, 0.5))
}

// factors just outside [0, 1] come from floating point error in
// callers and must not blow up
func TestLinearOvershoot(t *testing.T) {
	li := Linear[float64]{}
	v := li.Blend(0, 10, 1.0000001)
	assert.False(t, math.IsNaN(v))
	tolassert.EqualTol(t, 10.0, v, 1.0e-5)

	v = li.Blend(0, 10, -0.0000001)
	assert.False(t, math.IsNaN(v))
	tolassert.EqualTol(t, 0.0, v, 1.0e-5)
}

func TestDiscrete(t *testing.T) {
	d := Discrete[string]{}
	assert.Equal(t, "walk", d.Blend("walk", "run", 0))
	assert.Equal(t, "walk", d.Blend("walk", "run", 0.99))
	assert.Equal(t, "run", d.Blend("walk", "run", 1))
	assert.Equal(t, "run", d.Blend("walk", "run", 1.0000001))
}

func TestInterpolatorFunc(t *testing.T) {
	step := InterpolatorFunc[int](func(from, to int, factor float32) int {
		if factor < 0.5 {
			return from
		}
		return to
	})
	b := NewBuffer[int](step)
	b.Add(1, 0)
	b.Add(2, 10)

	v, err := b.Query(2)
	assert.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = b.Query(8)
	assert.NoError(t, err)
	assert.Equal(t, 2, v)
}
