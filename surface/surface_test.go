// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"

	"github.com/cpmech/gonurbs/curve"
	"github.com/cpmech/gonurbs/knot"
	"github.com/cpmech/gonurbs/shpfun"
)

// s2surface reproduces spec.md §8 scenario S2's exact fixture (degrees
// (2,1), 4x3 poles), taken verbatim from TestSurface.py's test_bspline_3d.
func s2surface() *Geometry {
	ksU := knot.Vector{0, 0, 7.5, 15, 15}
	ksV := knot.Vector{0, 10, 20}
	poles := [][]float64{
		{-10.0, -5.0, -1.0},
		{-12.0, 3.0, 3.0},
		{-9.0, 11.0, -0.0701928417},
		{-5.0, -3.0, 1.0},
		{-6.0, 4.0, -2.0},
		{-5.0, 7.0, 0.9298071583},
		{0.0, -4.0, -1.0},
		{1.0, 6.0, 5.0},
		{0.0, 13.0, -0.2350184214},
		{4.0, -2.0, 0.0},
		{5.0, 4.0, -1.0},
		{5.0, 11.0, 0.7649815786},
	}
	g, err := NewByKnots(2, ksU, 1, ksV, poles, nil)
	if err != nil {
		panic(err)
	}
	return g
}

func Test_surface01(tst *testing.T) {

	chk.PrintTitle("surface01 domain and point==ders[0]")

	g := s2surface()
	du := g.DomainU()
	dv := g.DomainV()
	chk.Scalar(tst, "u0", 1e-12, du.T0, 0)
	chk.Scalar(tst, "u1", 1e-12, du.T1, 15)
	chk.Scalar(tst, "v0", 1e-12, dv.T0, 0)
	chk.Scalar(tst, "v1", 1e-12, dv.T1, 20)

	p := g.PointAt(12, 5)
	ders := g.DerivativesAt(12, 5, 2)
	chk.Vector(tst, "p==ders[0]", 1e-12, p, ders[0])
	chk.IntAssert(len(ders), 6)

	chk.Vector(tst, "p(12,5)", 1e-9, p, []float64{1.46, 0.96, 0.9})
}

func Test_surface01b_derivatives(tst *testing.T) {

	chk.PrintTitle("surface01b S2 derivatives at (12,5)")

	g := s2surface()
	ders := g.DerivativesAt(12, 5, 2)
	expected := [][]float64{
		{1.46, 0.96, 0.9},
		{0.084, 0.832, 0.276},
		{0.96, 0.0266666667, -0.2666666667},
		{0, 0, 0},
		{0.0106666667, -0.048, -0.064},
		{0.0355555556, -0.0088888889, -0.1333333333},
	}
	for k := range expected {
		chk.Vector(tst, "ders", 1e-7, ders[k], expected[k])
	}
}

func Test_surface01c_central_diff(tst *testing.T) {

	chk.PrintTitle("surface01c central-difference cross-check")

	g := s2surface()
	u, v := 12.0, 5.0
	// lex order by total degree s=du+dv, ascending du within s: ders[1]
	// is (du=0,dv=1) i.e. dP/dv, ders[2] is (du=1,dv=0) i.e. dP/du.
	ders := g.DerivativesAt(u, v, 1)
	for d := 0; d < 3; d++ {
		dNumU, _ := num.DerivCentral(func(x float64, args ...interface{}) float64 {
			return g.PointAt(x, v)[d]
		}, u, 1e-3)
		if diff := math.Abs(ders[2][d] - dNumU); diff > 1e-5 {
			tst.Errorf("dP%d/du @ (%v,%v): analytical=%v numerical=%v diff=%v", d, u, v, ders[2][d], dNumU, diff)
		}
		dNumV, _ := num.DerivCentral(func(x float64, args ...interface{}) float64 {
			return g.PointAt(u, x)[d]
		}, v, 1e-3)
		if diff := math.Abs(ders[1][d] - dNumV); diff > 1e-5 {
			tst.Errorf("dP%d/dv @ (%v,%v): analytical=%v numerical=%v diff=%v", d, u, v, ders[1][d], dNumV, diff)
		}
	}
}

func Test_surface02_partition_of_unity(tst *testing.T) {

	chk.PrintTitle("surface02 partition of unity")

	g := s2surface()
	for _, uv := range [][2]float64{{0, 0}, {7.5, 10}, {15, 20}, {3, 12}} {
		_, ders, err := shpfun.Surface(g.DegreeU, g.KnotsU, g.DegreeV, g.KnotsV, uv[0], uv[1], 0, nil)
		if err != nil {
			tst.Errorf("unexpected error: %v", err)
			continue
		}
		var sum float64
		for _, v := range ders[0] {
			sum += v
		}
		chk.Scalar(tst, "sum", 1e-11, sum, 1)
	}
}

func Test_surface03_normal(tst *testing.T) {

	chk.PrintTitle("surface03 normal is unit length")

	g := s2surface()
	n := g.NormalAt(12, 5)
	norm := n[0]*n[0] + n[1]*n[1] + n[2]*n[2]
	if norm > 1e-12 { // nonzero normal must be unit length
		chk.Scalar(tst, "|n|^2", 1e-9, norm, 1)
	}

	chk.Vector(tst, "n(12,5)", 1e-4, n, []float64{0.26131, -0.32758, 0.90797})
}

func Test_curveOnSurface01(tst *testing.T) {

	chk.PrintTitle("curveOnSurface01 point composition")

	s := s2surface()
	ksC := knot.Vector{0, 1}
	poles := [][]float64{{0, 0}, {15, 20}}
	cg, err := curve.NewByKnots(1, ksC, poles, nil)
	if err != nil {
		tst.Fatal(err)
	}
	cos := NewCurveOnSurface(cg, s)

	p0 := cos.PointAt(0)
	pS0 := s.PointAt(0, 0)
	chk.Vector(tst, "p(0)", 1e-12, p0, pS0)

	p1 := cos.PointAt(1)
	pS1 := s.PointAt(15, 20)
	chk.Vector(tst, "p(1)", 1e-12, p1, pS1)
}
