// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package knot implements knot-vector span lookup and the degree/nb_poles/
// nb_knots arithmetic shared by curve and surface geometries.
package knot

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gonurbs/gm"
)

// Vector is a non-decreasing sequence of knot values.
type Vector []float64

// NbKnots returns the knot-vector length implied by degree and nb_poles.
func NbKnots(degree, nbPoles int) int {
	return degree + nbPoles - 1
}

// NbPoles returns the number of poles implied by degree and nb_knots.
func NbPoles(degree, nbKnots int) int {
	return nbKnots - degree + 1
}

// NbSpans returns the number of non-empty spans implied by degree and nb_knots.
func NbSpans(degree, nbKnots int) int {
	return nbKnots - 2*(degree-1) - 1
}

// Validate checks degree and the knots/poles/weights length relationships
// of spec.md §6's construction contract. nbWeights == 0 means unweighted.
func Validate(degree int, knots Vector, nbPoles, nbWeights int) error {
	if degree < 1 {
		return chk.Err("degree must be >= 1; got %d", degree)
	}
	if len(knots) != NbKnots(degree, nbPoles) {
		return chk.Err("len(knots)=%d inconsistent with degree=%d and nb_poles=%d (want %d)",
			len(knots), degree, nbPoles, NbKnots(degree, nbPoles))
	}
	if nbWeights != 0 && nbWeights != nbPoles {
		return chk.Err("len(weights)=%d must be 0 or nb_poles=%d", nbWeights, nbPoles)
	}
	for i := 1; i < len(knots); i++ {
		if knots[i] < knots[i-1] {
			return chk.Err("knots must be non-decreasing: knots[%d]=%v < knots[%d]=%v", i, knots[i], i-1, knots[i-1])
		}
	}
	return nil
}

// Domain returns the parametric domain [knots[degree-1], knots[nb_knots-degree]].
func Domain(degree int, knots Vector) (t0, t1 float64) {
	n := len(knots)
	return knots[degree-1], knots[n-degree]
}

// UpperSpan returns the largest index i with knots[i] <= t, clamped to
// [degree-1, len(knots)-degree-1].
func UpperSpan(degree int, knots Vector, t float64) int {
	lo, hi := degree-1, len(knots)-degree-1
	if t >= knots[hi] {
		return hi
	}
	// binary search for the largest i in [lo,hi] with knots[i] <= t
	i, j := lo, hi
	for i < j {
		m := (i + j + 1) / 2
		if knots[m] <= t {
			i = m
		} else {
			j = m - 1
		}
	}
	if i < lo {
		i = lo
	}
	if i > hi {
		i = hi
	}
	return i
}

// LowerSpan returns the smallest index i with t <= knots[i], clamped to
// [degree-1, len(knots)-degree-1].
func LowerSpan(degree int, knots Vector, t float64) int {
	lo, hi := degree-1, len(knots)-degree-1
	if t <= knots[lo] {
		return lo
	}
	i, j := lo, hi
	for i < j {
		m := (i + j) / 2
		if knots[m] >= t {
			j = m
		} else {
			i = m + 1
		}
	}
	if i < lo {
		i = lo
	}
	if i > hi {
		i = hi
	}
	return i
}

// Breakpoints returns the strictly-interior distinct knot values of the
// domain, i.e. the knots strictly between the domain endpoints.
func Breakpoints(degree int, knots Vector) []float64 {
	t0, t1 := Domain(degree, knots)
	var out []float64
	for i := 0; i < len(knots); i++ {
		k := knots[i]
		if k <= t0 || k >= t1 {
			continue
		}
		if len(out) == 0 || out[len(out)-1] != k {
			out = append(out, k)
		}
	}
	return out
}

// Spans returns the non-empty spans of the domain, in ascending order,
// i.e. the sub-intervals delimited by the domain endpoints and the
// interior breakpoints.
func Spans(degree int, knots Vector) []gm.Interval {
	t0, t1 := Domain(degree, knots)
	bounds := append([]float64{t0}, Breakpoints(degree, knots)...)
	bounds = append(bounds, t1)
	out := make([]gm.Interval, 0, len(bounds)-1)
	for i := 0; i < len(bounds)-1; i++ {
		out = append(out, gm.Interval{T0: bounds[i], T1: bounds[i+1]})
	}
	return out
}
