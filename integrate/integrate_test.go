// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gonurbs/curve"
	"github.com/cpmech/gonurbs/gm"
	"github.com/cpmech/gonurbs/knot"
	"github.com/cpmech/gonurbs/surface"
)

func Test_integrate01_gauss2(tst *testing.T) {

	chk.PrintTitle("integrate01 2-point rule on [0,1]")

	pts, err := Points1D(2, gm.Interval{T0: 0, T1: 1})
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	chk.IntAssert(len(pts), 2)
	chk.Scalar(tst, "t0", 1e-14, pts[0].T, 0.21132486540518713)
	chk.Scalar(tst, "w0", 1e-14, pts[0].W, 0.5)
	chk.Scalar(tst, "t1", 1e-14, pts[1].T, 0.78867513459481290)
	chk.Scalar(tst, "w1", 1e-14, pts[1].W, 0.5)
}

func Test_integrate02_weights_sum(tst *testing.T) {

	chk.PrintTitle("integrate02 weights sum to interval length")

	for n := 1; n <= 10; n++ {
		pts, err := Points1D(n, gm.Interval{T0: -2, T1: 3})
		if err != nil {
			tst.Errorf("unexpected error for n=%d: %v", n, err)
			continue
		}
		var sum float64
		for _, p := range pts {
			sum += p.W
		}
		chk.Scalar(tst, "sum", 1e-12, sum, 5)
	}
}

func Test_integrate03_invalid_degree(tst *testing.T) {

	chk.PrintTitle("integrate03 invalid degree")

	if _, _, err := GaussLegendre1D(0); err == nil {
		tst.Errorf("expected error for n=0")
	}
	if _, _, err := GaussLegendre1D(100); err == nil {
		tst.Errorf("expected error for n=100")
	}
}

func Test_integrate04_exact_polynomial(tst *testing.T) {

	chk.PrintTitle("integrate04 exact for polynomials up to degree 2n-1")

	// n=3 Gauss rule integrates exactly up to degree 5; check int_0^1 x^5 dx = 1/6
	pts, err := Points1D(3, gm.Interval{T0: 0, T1: 1})
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	var sum float64
	for _, p := range pts {
		sum += p.W * math.Pow(p.T, 5)
	}
	chk.Scalar(tst, "int x^5", 1e-13, sum, 1.0/6.0)
}

func Test_integrate05_curve_arc_length(tst *testing.T) {

	chk.PrintTitle("integrate05 curve arc length via integration points")

	// straight segment from (0,0) to (3,4), length 5
	ks := knot.Vector{0, 0, 1, 1}
	poles := [][]float64{{0, 0}, {1.5, 2}, {3, 4}}
	g, err := curve.NewByKnots(2, ks, poles, nil)
	if err != nil {
		tst.Fatal(err)
	}
	pts, err := CurvePoints(g)
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	var length float64
	for _, p := range pts {
		length += p.W
	}
	chk.Scalar(tst, "length", 1e-9, length, 5)
}

func Test_integrate06_surface_area(tst *testing.T) {

	chk.PrintTitle("integrate06 planar surface area via integration points")

	// flat bilinear patch over [0,2]x[0,3]: area = 6
	ksU := knot.Vector{0, 1}
	ksV := knot.Vector{0, 1}
	poles := [][]float64{
		{0, 0, 0}, {0, 3, 0},
		{2, 0, 0}, {2, 3, 0},
	}
	g, err := surface.NewByKnots(1, ksU, 1, ksV, poles, nil)
	if err != nil {
		tst.Fatal(err)
	}
	pts, err := SurfacePoints(g)
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	var area float64
	for _, p := range pts {
		area += p.W
	}
	chk.Scalar(tst, "area", 1e-9, area, 6)
}
