// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package project implements PointOnCurveProjection: closest-point
// projection of a query point onto a NURBS curve, accelerated by a
// pre-sampled R-tree of the curve's tessellation segments.
package project

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gonurbs/curve"
	"github.com/cpmech/gonurbs/gm"
	"github.com/cpmech/gonurbs/knot"
	"github.com/cpmech/gonurbs/rtree"
)

// samplesPerSpan sets the pre-sampling density: each knot span is cut
// into this many chords before being bulk-loaded into the R-tree.
const samplesPerSpan = 100

const newtonNit = 50

// Projector holds a curve's pre-sampled tessellation and R-tree, and the
// result of the most recent Compute call.
type Projector struct {
	g   *curve.Geometry
	tol float64

	ts     []float64
	points [][]float64
	tree   *rtree.Tree

	Parameter float64
	Point     []float64
}

// New pre-samples g (samplesPerSpan chords per knot span, evenly spaced in
// the parameter; the spacing does not adapt to chord length) and bulk-loads
// the resulting segments into an R-tree. tol is the Newton convergence
// tolerance used by Compute.
func New(g *curve.Geometry, tol float64) (*Projector, error) {
	if tol <= 0 {
		return nil, chk.Err("projection tolerance must be > 0; got %v", tol)
	}

	ts := sampleParameters(g)
	points := make([][]float64, len(ts))
	for i, t := range ts {
		points[i] = g.PointAt(t)
	}

	nbSegments := len(ts) - 1
	tree, err := rtree.New(g.Dim, nbSegments)
	if err != nil {
		return nil, err
	}
	for i := 0; i < nbSegments; i++ {
		min, max := segmentBox(points[i], points[i+1])
		if err := tree.Add(min, max); err != nil {
			return nil, err
		}
	}
	if err := tree.Finish(); err != nil {
		return nil, err
	}

	return &Projector{g: g, tol: tol, ts: ts, points: points, tree: tree}, nil
}

// sampleParameters lays out samplesPerSpan+1 parameter values across each
// knot span, sharing the boundary value between adjacent spans.
func sampleParameters(g *curve.Geometry) []float64 {
	spans := knot.Spans(g.Degree, g.Knots)
	var ts []float64
	for i, span := range spans {
		start := 0
		if i > 0 {
			start = 1
		}
		for k := start; k <= samplesPerSpan; k++ {
			u := float64(k) / float64(samplesPerSpan)
			ts = append(ts, span.Denormalize(u))
		}
	}
	return ts
}

// segmentBox returns the axis-aligned bounding box of the segment a-b.
func segmentBox(a, b []float64) (min, max []float64) {
	min = make([]float64, len(a))
	max = make([]float64, len(a))
	for d := range a {
		if a[d] <= b[d] {
			min[d], max[d] = a[d], b[d]
		} else {
			min[d], max[d] = b[d], a[d]
		}
	}
	return
}

// Compute finds the curve parameter closest to target and stores it in
// Parameter/Point, overwriting any previous result. maxDistance, if not
// nil, restricts the search to candidate segments within that distance of
// target; if no candidate within maxDistance converges close enough, the
// domain boundary endpoint nearest target is returned instead.
func (p *Projector) Compute(target []float64, maxDistance *float64) error {
	if len(target) != p.g.Dim {
		return chk.Err("target dimension %d does not match curve dimension %d", len(target), p.g.Dim)
	}

	dim := p.g.Dim
	qmin := make([]float64, dim)
	qmax := make([]float64, dim)
	for d := 0; d < dim; d++ {
		if maxDistance != nil {
			qmin[d] = target[d] - *maxDistance
			qmax[d] = target[d] + *maxDistance
		} else {
			qmin[d] = math.Inf(-1)
			qmax[d] = math.Inf(1)
		}
	}

	segments := p.tree.Search(qmin, qmax, nil)

	bestDist := math.Inf(1)
	var bestT float64
	var bestPoint []float64
	found := false

	for _, seg := range segments {
		t0, t1 := p.ts[seg], p.ts[seg+1]
		_, localT := gm.DistPointToSegment(target, p.points[seg], p.points[seg+1])
		seed := t0 + localT*(t1-t0)

		t, pt := p.newtonRefine(seed, target)
		dist := gm.Norm(gm.Sub(pt, target))
		if maxDistance != nil && dist > *maxDistance {
			continue
		}
		if dist < bestDist {
			bestDist, bestT, bestPoint = dist, t, pt
			found = true
		}
	}

	// the nearer domain endpoint is a candidate too: a closest point on the
	// boundary need not satisfy f(t) = 0, so Newton may never reach it
	tb, pb := p.nearestBoundary(target)
	if !found || gm.Norm(gm.Sub(pb, target)) < bestDist {
		p.Parameter, p.Point = tb, pb
		return nil
	}

	p.Parameter, p.Point = bestT, bestPoint
	return nil
}

// newtonRefine runs bounded Newton iteration in parameter space starting
// from seed, minimizing f(t) = (C(t)-target).C'(t).
func (p *Projector) newtonRefine(seed float64, target []float64) (float64, []float64) {
	dom := p.g.Domain()
	t := dom.Clamp(seed)

	ders := p.g.DerivativesAt(t, 2)
	prev := ders[0]

	for it := 0; it < newtonNit; it++ {
		c, cp, cpp := ders[0], ders[1], ders[2]
		diff := gm.Sub(c, target)

		f := gm.Dot(diff, cp)
		fp := gm.Dot(cp, cp) + gm.Dot(diff, cpp)

		cpNorm := gm.Norm(cp)
		if cpNorm > 0 && math.Abs(f) <= p.tol*cpNorm {
			break
		}
		if math.Abs(fp) < 1e-300 {
			break
		}

		tNew := dom.Clamp(t - f/fp)
		ders = p.g.DerivativesAt(tNew, 2)

		if gm.Norm(gm.Sub(ders[0], prev)) <= p.tol {
			t = tNew
			break
		}
		t, prev = tNew, ders[0]
	}

	return t, p.g.PointAt(t)
}

// nearestBoundary returns the domain endpoint whose point is closer to
// target.
func (p *Projector) nearestBoundary(target []float64) (float64, []float64) {
	dom := p.g.Domain()
	p0 := p.g.PointAt(dom.T0)
	p1 := p.g.PointAt(dom.T1)
	if gm.Norm(gm.Sub(p0, target)) <= gm.Norm(gm.Sub(p1, target)) {
		return dom.T0, p0
	}
	return dom.T1, p1
}
