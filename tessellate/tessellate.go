// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tessellate implements adaptive chord-deviation tessellation of a
// NURBS curve into an ordered polyline approximation.
package tessellate

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gonurbs/curve"
	"github.com/cpmech/gonurbs/gm"
)

// Sample is one (t, point) pair of a tessellation result.
type Sample struct {
	T     float64
	Point []float64
}

// Curve adaptively tessellates g by chord-deviation refinement: starting
// from the domain endpoints (or the given sub-interval) and the curve's
// interior knot breakpoints, segments are recursively bisected until the
// perpendicular distance from the midpoint sample to the chord joining its
// segment's endpoints is within tol. tol must be > 0.
//
// interval, if non-nil, restricts tessellation to a sub-range of the
// curve's domain (recovered from original_source/tests/TestCurveTessellation.py;
// see SPEC_FULL.md).
func Curve(g *curve.Geometry, tol float64, interval *gm.Interval) ([]Sample, error) {

	if tol <= 0 {
		return nil, chk.Err("tessellation tolerance must be > 0; got %v", tol)
	}

	dom := g.Domain()
	if interval != nil {
		dom = *interval
	}

	breakpoints := interiorBreakpoints(g, dom)

	ts := append([]float64{dom.T0}, breakpoints...)
	ts = append(ts, dom.T1)

	var samples []Sample
	for i := 0; i < len(ts)-1; i++ {
		ta, tb := ts[i], ts[i+1]
		pa := g.PointAt(ta)
		if i == 0 {
			samples = append(samples, Sample{T: ta, Point: pa})
		}
		seg := refine(g, ta, tb, pa, g.PointAt(tb), tol, 0)
		samples = append(samples, seg...)
	}
	return samples, nil
}

const maxDepth = 48 // bounds worst-case recursion; chord length halves each level

// refine recursively bisects [ta,tb] and returns the accepted samples in
// increasing t, excluding ta (already emitted by the caller) and including
// tb.
func refine(g *curve.Geometry, ta, tb float64, pa, pb []float64, tol float64, depth int) []Sample {
	tm := 0.5 * (ta + tb)
	pm := g.PointAt(tm)
	dist, _ := gm.DistPointToSegment(pm, pa, pb)
	if dist <= tol || depth >= maxDepth {
		return []Sample{{T: tb, Point: pb}}
	}
	left := refine(g, ta, tm, pa, pm, tol, depth+1)
	right := refine(g, tm, tb, pm, pb, tol, depth+1)
	return append(left, right...)
}

// interiorBreakpoints returns the curve's interior knots that fall
// strictly inside dom, deduplicated and sorted ascending.
func interiorBreakpoints(g *curve.Geometry, dom gm.Interval) []float64 {
	var out []float64
	for _, k := range g.Knots {
		if k <= dom.T0 || k >= dom.T1 {
			continue
		}
		if len(out) == 0 || out[len(out)-1] != k {
			out = append(out, k)
		}
	}
	return out
}
