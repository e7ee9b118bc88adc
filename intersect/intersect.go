// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package intersect implements CurveSpanIntersection: the parameters at
// which a 2D NURBS curve crosses a family of axis-aligned knot lines.
package intersect

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gonurbs/curve"
	"github.com/cpmech/gonurbs/gm"
	"github.com/cpmech/gonurbs/knot"
)

const (
	newtonTol = 1e-10 // derivative-zero guard, independent of the caller's ε
	newtonNit = 50
)

// Curve returns the sorted, deduplicated (within tol) curve parameters at
// which the 2D curve g crosses a horizontal or vertical line through one
// of the values in knotsU (x-coordinate targets) or knotsV (y-coordinate
// targets). knotsU and knotsV need not be sorted or deduplicated.
// includeCurveKnots additionally emits g's own interior knot values.
// tol must be > 0.
func Curve(g *curve.Geometry, knotsU, knotsV []float64, tol float64, includeCurveKnots bool) ([]float64, error) {
	if g.Dim != 2 {
		return nil, chk.Err("curve span intersection requires a 2D curve; got Dim=%d", g.Dim)
	}
	if tol <= 0 {
		return nil, chk.Err("intersection tolerance must be > 0; got %v", tol)
	}

	targetsU := uniqueSorted(knotsU)
	targetsV := uniqueSorted(knotsV)

	var out []float64
	for _, span := range knot.Spans(g.Degree, g.Knots) {
		out = append(out, spanIntersections(g, span, targetsU, 0, tol)...)
		out = append(out, spanIntersections(g, span, targetsV, 1, tol)...)
	}
	if includeCurveKnots {
		out = append(out, knot.Breakpoints(g.Degree, g.Knots)...)
	}
	sort.Float64s(out)
	return dedupe(out, tol), nil
}

// spanIntersections brackets and refines, within [ta,tb], the roots of
// coord_axis(t) - target for every target in targets that lies between the
// span's corner/midpoint extremes on that axis.
func spanIntersections(g *curve.Geometry, span gm.Interval, targets []float64, axis int, tol float64) []float64 {
	ta, tb := span.T0, span.T1
	tm := 0.5 * (ta + tb)
	pa := g.PointAt(ta)
	pm := g.PointAt(tm)
	pb := g.PointAt(tb)

	lo := math.Min(pa[axis], math.Min(pm[axis], pb[axis]))
	hi := math.Max(pa[axis], math.Max(pm[axis], pb[axis]))

	var out []float64
	for _, target := range targets {
		if target < lo-tol || target > hi+tol {
			continue
		}
		if t, ok := newtonBracketed(g, ta, tb, axis, target, tol); ok {
			out = append(out, t)
		}
	}
	return out
}

// newtonBracketed runs Newton on coord_axis(t) - target starting from the
// span midpoint, bailing out after newtonNit iterations; roots landing
// outside [ta,tb] (beyond tol) are rejected.
func newtonBracketed(g *curve.Geometry, ta, tb float64, axis int, target, tol float64) (float64, bool) {
	t := 0.5 * (ta + tb)
	for it := 0; it < newtonNit; it++ {
		ders := g.DerivativesAt(t, 1)
		f := ders[0][axis] - target
		df := ders[1][axis]
		if math.Abs(f) <= tol {
			break
		}
		if math.Abs(df) < newtonTol {
			return 0, false
		}
		dt := f / df
		t -= dt
		if t < ta {
			t = ta
		}
		if t > tb {
			t = tb
		}
		if math.Abs(dt) <= tol {
			break
		}
	}
	if t < ta-tol || t > tb+tol {
		return 0, false
	}
	if t < ta {
		t = ta
	}
	if t > tb {
		t = tb
	}
	return t, true
}

func uniqueSorted(values []float64) []float64 {
	out := append([]float64{}, values...)
	sort.Float64s(out)
	return dedupe(out, 0)
}

func dedupe(sorted []float64, tol float64) []float64 {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v-out[len(out)-1] > tol {
			out = append(out, v)
		}
	}
	return out
}
