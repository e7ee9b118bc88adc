// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package project

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gonurbs/curve"
	"github.com/cpmech/gonurbs/knot"
)

// fixtureCurve reproduces the degree-4, 8-pole 3D space curve used to
// ground the closest-point projection scenarios.
func fixtureCurve() *curve.Geometry {
	ks := knot.Vector{3, 3, 3, 3, 6.5, 10, 13.5, 17, 17, 17, 17}
	poles := [][]float64{
		{0, -25, -5},
		{-15, -15, 0},
		{5, -5, -3},
		{15, -15, 3},
		{25, 0, 6},
		{15, 15, 6},
		{-5, -5, -3},
		{-25, 15, 4},
	}
	g, err := curve.NewByKnots(4, ks, poles, nil)
	if err != nil {
		panic(err)
	}
	return g
}

func Test_project01_closest_point(tst *testing.T) {

	chk.PrintTitle("project01 closest-point projection, unbounded")

	g := fixtureCurve()
	p, err := New(g, 1e-8)
	if err != nil {
		tst.Fatal(err)
	}

	cases := []struct {
		target []float64
		want   float64
	}{
		{[]float64{-25.1331415843, -38.9256022819, -3.2989320128}, 3.3983282912},
		{[]float64{35.6464813397, 27.3703996918, -41.1153099924}, 13.3339477287},
		{[]float64{-40.3995502695, 45.1689836547, -1.7412051334}, 17},
		{[]float64{39.2152096095, -39.0656723124, -28.995046196}, 3},
		{[]float64{48.969280533, 1.8857173398, -5.5880641358}, 11.4650237679},
		{[]float64{-44.3057219006, 33.0192715316, 47.8292196048}, 17},
		{[]float64{22.8517943401, -29.0174949817, 12.8639449658}, 8.9331640387},
		{[]float64{18.275234135, -3.5222361579, -22.7704009846}, 7.3009323651},
		{[]float64{-0.2169936664, 45.897933932, 7.9948189473}, 17},
		{[]float64{1.2162083533, -9.9415968917, 14.8779786028}, 5.8379685342},
	}

	for _, c := range cases {
		if err := p.Compute(c.target, nil); err != nil {
			tst.Errorf("target %v: unexpected error: %v", c.target, err)
			continue
		}
		chk.Scalar(tst, "parameter", 1e-4, p.Parameter, c.want)
	}
}

func Test_project02_with_max_distance(tst *testing.T) {

	chk.PrintTitle("project02 closest-point projection with max_distance")

	g := fixtureCurve()
	p, err := New(g, 1e-8)
	if err != nil {
		tst.Fatal(err)
	}
	maxDist := 1e-2

	cases := []struct {
		target []float64
		want   float64
	}{
		{[]float64{-5.04769521, -20.83092374, -3.18189858}, 3.3983282912},
		{[]float64{16.42347035, 6.21449644, 4.92331405}, 13.3339477287},
		{[]float64{-25, 15, 4}, 17},
		{[]float64{0, -25, -5}, 3},
		{[]float64{20.27116196, -0.37704838, 5.2027021}, 11.4650237679},
	}

	for _, c := range cases {
		if err := p.Compute(c.target, &maxDist); err != nil {
			tst.Errorf("target %v: unexpected error: %v", c.target, err)
			continue
		}
		chk.Scalar(tst, "parameter", 1e-4, p.Parameter, c.want)
	}
}

func Test_project03_invalid_tol(tst *testing.T) {

	chk.PrintTitle("project03 invalid tolerance")

	g := fixtureCurve()
	if _, err := New(g, 0); err == nil {
		tst.Errorf("expected error for tol <= 0")
	}
}

func Test_project04_dimension_mismatch(tst *testing.T) {

	chk.PrintTitle("project04 target dimension mismatch")

	g := fixtureCurve()
	p, err := New(g, 1e-8)
	if err != nil {
		tst.Fatal(err)
	}
	if err := p.Compute([]float64{0, 0}, nil); err == nil {
		tst.Errorf("expected error for 2D target against a 3D curve")
	}
}
