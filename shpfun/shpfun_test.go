// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shpfun

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"

	"github.com/cpmech/gonurbs/knot"
)

// verbose turns on diagnostic printing in the central-difference checks
// below, mirroring gofem's shp/testing.go CheckShape verbose flag.
const verbose = false

// Test_shpfun01 reproduces spec.md §8 scenario S3: rational quadratic
// shape functions and their first two derivatives.
func Test_shpfun01(tst *testing.T) {

	chk.PrintTitle("shpfun01 rational S3")

	degree := 2
	ks := knot.Vector{1, 1, 3, 3}
	weights := []float64{1, 1.5, 1}

	indices, values, err := Curve(degree, ks, 2, 2, weights)
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	chk.Ints(tst, "indices", indices, []int{0, 1, 2})
	chk.Vector(tst, "row0", 1e-14, values[0], []float64{0.20, 0.60, 0.20})
	chk.Vector(tst, "row1", 1e-14, values[1], []float64{-0.40, 0.0, 0.40})
	chk.Vector(tst, "row2", 1e-14, values[2], []float64{0.48, -0.96, 0.48})
}

// Test_shpfun02 checks partition of unity across the domain for a
// non-rational quartic knot vector (testable property #3 in spec.md §8).
func Test_shpfun02(tst *testing.T) {

	chk.PrintTitle("shpfun02 partition of unity")

	degree := 4
	ks := knot.Vector{0, 0, 0, 0, 32.9731425998736, 65.9462851997473, 98.9194277996209,
		131.892570399495, 131.892570399495, 131.892570399495, 131.892570399495}

	for _, t := range []float64{0, 10, 32.9731425998736, 50, 65.9462851997473, 100, 131.892570399495} {
		_, values, err := Curve(degree, ks, t, 0, nil)
		if err != nil {
			tst.Errorf("unexpected error at t=%v: %v", t, err)
			continue
		}
		var sum float64
		for _, v := range values[0] {
			sum += v
		}
		if diff := sum - 1.0; diff > 1e-12 || diff < -1e-12 {
			tst.Errorf("partition of unity failed at t=%v: sum=%v", t, sum)
		}
	}
}

// Test_shpfun03 checks that supplying uniform weights reproduces the
// non-rational basis values exactly (spec.md §8 property #2).
func Test_shpfun03(tst *testing.T) {

	chk.PrintTitle("shpfun03 uniform weights == non-rational")

	degree := 2
	ks := knot.Vector{1, 1, 3, 3}

	_, plain, err := Curve(degree, ks, 2, 2, nil)
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	_, rational, err := Curve(degree, ks, 2, 2, []float64{2, 2, 2})
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	for k := range plain {
		chk.Vector(tst, "row", 1e-13, rational[k], plain[k])
	}
}

// Test_shpfun04_central_diff cross-checks the analytical first derivatives
// against a central-difference approximation, mirroring the teacher's own
// check_nurbs_dSdR pattern (gofem's shp/t_nurbs_test.go).
func Test_shpfun04_central_diff(tst *testing.T) {

	chk.PrintTitle("shpfun04 central-difference cross-check")

	degree := 2
	ks := knot.Vector{1, 1, 3, 3}
	weights := []float64{1, 1.5, 1}

	for _, t := range []float64{1.2, 1.8, 2.0, 2.5, 2.9} {
		indices, values, err := Curve(degree, ks, t, 1, weights)
		if err != nil {
			tst.Errorf("unexpected error at t=%v: %v", t, err)
			continue
		}
		for r := range indices {
			dNum, _ := num.DerivCentral(func(x float64, args ...interface{}) float64 {
				_, v, err := Curve(degree, ks, x, 0, weights)
				if err != nil {
					return values[0][r]
				}
				return v[0][r]
			}, t, 1e-3)
			if verbose {
				io.Pf("dN%d/dt @ t=%v: analytical=%v numerical=%v\n", r, t, values[1][r], dNum)
			}
			if diff := math.Abs(values[1][r] - dNum); diff > 1e-6 {
				tst.Errorf("dN%d/dt @ t=%v: analytical=%v numerical=%v diff=%v", r, t, values[1][r], dNum, diff)
			}
		}
	}
}

func Test_shpfun_surface01(tst *testing.T) {

	chk.PrintTitle("shpfun surface partition of unity")

	degU, degV := 2, 1
	ksU := knot.Vector{0, 0, 7.5, 15, 15}
	ksV := knot.Vector{0, 10, 20}

	indices, ders, err := Surface(degU, ksU, degV, ksV, 12, 5, 0, nil)
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	chk.IntAssert(len(indices), (degU+1)*(degV+1))
	var sum float64
	for _, v := range ders[0] {
		sum += v
	}
	chk.Scalar(tst, "partition of unity", 1e-12, sum, 1)
}
