// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gm implements small numeric primitives shared by the NURBS
// kernel: a parameter interval and fixed 2/3-component vector math.
package gm

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Interval represents a closed parameter range [T0, T1] with T0 <= T1.
type Interval struct {
	T0, T1 float64
}

// NewInterval validates and returns a new Interval.
func NewInterval(t0, t1 float64) (Interval, error) {
	if t0 > t1 {
		return Interval{}, chk.Err("interval bounds out of order: t0=%v > t1=%v", t0, t1)
	}
	return Interval{T0: t0, T1: t1}, nil
}

// Length returns T1 - T0.
func (iv Interval) Length() float64 { return iv.T1 - iv.T0 }

// Contains reports whether t lies within [T0, T1].
func (iv Interval) Contains(t float64) bool { return t >= iv.T0 && t <= iv.T1 }

// Clamp restricts t to [T0, T1].
func (iv Interval) Clamp(t float64) float64 {
	if t < iv.T0 {
		return iv.T0
	}
	if t > iv.T1 {
		return iv.T1
	}
	return t
}

// Normalize maps t in [T0,T1] to u in [0,1]. Degenerate intervals return 0.
func (iv Interval) Normalize(t float64) float64 {
	L := iv.Length()
	if L == 0 {
		return 0
	}
	return (t - iv.T0) / L
}

// Denormalize maps u in [0,1] back to [T0, T1].
func (iv Interval) Denormalize(u float64) float64 {
	return iv.T0 + u*iv.Length()
}

// Add returns a+b for equal-length vectors.
func Add(a, b []float64) []float64 {
	c := make([]float64, len(a))
	for i := range a {
		c[i] = a[i] + b[i]
	}
	return c
}

// Sub returns a-b for equal-length vectors.
func Sub(a, b []float64) []float64 {
	c := make([]float64, len(a))
	for i := range a {
		c[i] = a[i] - b[i]
	}
	return c
}

// Scale returns s*a.
func Scale(s float64, a []float64) []float64 {
	c := make([]float64, len(a))
	for i := range a {
		c[i] = s * a[i]
	}
	return c
}

// Dot returns the inner product of a and b.
func Dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// Norm returns the Euclidean length of a.
func Norm(a []float64) float64 {
	return math.Sqrt(Dot(a, a))
}

// Normalize returns a unit vector in the direction of a, or a zero vector
// if a is (numerically) the zero vector.
func Normalize(a []float64) []float64 {
	n := Norm(a)
	if n < 1e-300 {
		return make([]float64, len(a))
	}
	return Scale(1.0/n, a)
}

// Cross2 returns the scalar (z-component) cross product of two 2D vectors.
func Cross2(a, b []float64) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// Cross3 returns the 3D cross product a x b.
func Cross3(a, b []float64) []float64 {
	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Lerp returns the affine interpolation (1-t)*a + t*b.
func Lerp(a, b []float64, t float64) []float64 {
	c := make([]float64, len(a))
	for i := range a {
		c[i] = (1-t)*a[i] + t*b[i]
	}
	return c
}

// DistPointToSegment returns the perpendicular distance from p to the
// segment a->b, together with the local parameter t in [0,1] of the foot
// of the perpendicular, clamped to the segment.
func DistPointToSegment(p, a, b []float64) (dist, t float64) {
	ab := Sub(b, a)
	L2 := Dot(ab, ab)
	if L2 < 1e-300 {
		return Norm(Sub(p, a)), 0
	}
	ap := Sub(p, a)
	t = Dot(ap, ab) / L2
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	foot := Add(a, Scale(t, ab))
	dist = Norm(Sub(p, foot))
	return
}
