// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package polyline projects a query point onto a 2D polyline, reporting
// the nearest and second-nearest segment parameters.
package polyline

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gonurbs/gm"
)

// Mapper holds an ordered sequence of 2D points defining a polyline.
type Mapper struct {
	Points [][]float64
}

// New validates and returns a Mapper over the given ordered points.
func New(points [][]float64) (*Mapper, error) {
	if len(points) < 1 {
		return nil, chk.Err("polyline needs at least one point; got %d", len(points))
	}
	for i, p := range points {
		if len(p) != 2 {
			return nil, chk.Err("point %d: expected 2 components, got %d", i, len(p))
		}
	}
	return &Mapper{Points: points}, nil
}

// Result holds the local parameters and segment indices of the nearest
// (T0, I0) and second-nearest distinct (T1, I1) segments to a query point.
type Result struct {
	T0, T1 float64
	I0, I1 int
}

// Map projects query onto the polyline, returning the nearest segment's
// local parameter and segment index, plus the second-nearest distinct
// segment within tolerance of the first (or a copy of the nearest one if
// none qualifies). A degenerate (single-point) polyline returns all zeros.
func (m *Mapper) Map(query []float64, tolerance float64) Result {
	n := len(m.Points)
	if n < 2 {
		return Result{}
	}

	type cand struct {
		dist, t float64
		seg     int
	}
	best := cand{dist: -1}
	for i := 0; i < n-1; i++ {
		d, t := gm.DistPointToSegment(query, m.Points[i], m.Points[i+1])
		if best.dist < 0 || d < best.dist {
			best = cand{dist: d, t: t, seg: i}
		}
	}

	second := cand{dist: -1}
	for i := 0; i < n-1; i++ {
		if i == best.seg {
			continue
		}
		d, t := gm.DistPointToSegment(query, m.Points[i], m.Points[i+1])
		if second.dist < 0 || d < second.dist {
			second = cand{dist: d, t: t, seg: i}
		}
	}

	if second.dist < 0 || second.dist-best.dist > tolerance {
		second = best
	}

	return Result{T0: best.t, I0: best.seg, T1: second.t, I1: second.seg}
}
