// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shpfun implements B-spline/NURBS shape-function evaluation:
// the nonzero basis functions at a parameter and their derivatives up to a
// given order, including the rational (NURBS) quotient-rule correction.
//
// The algorithm follows the standard de Boor-Cox triangular recurrence
// extended with the derivative recurrence (Piegl & Tiller's DersBasisFuns),
// adapted from cpmech/gofem's shp/nurbs.go span-relative evaluation style.
package shpfun

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gonurbs/knot"
)

// Curve computes the nonzero B-spline/NURBS basis functions of a univariate
// curve of the given degree at parameter t, and their derivatives up to
// order (inclusive).
//
// Returns indices[degree+1] (the pole indices the nonzero basis functions
// correspond to, ascending) and values[order+1][degree+1] (values[k][r] is
// the k-th derivative of the basis function for indices[r]).
//
// If weights is non-nil (len == nb_poles), the rational quotient-rule
// correction is applied and values holds NURBS (rational) basis derivatives
// instead of plain B-spline ones.
func Curve(degree int, knots knot.Vector, t float64, order int, weights []float64) (indices []int, values [][]float64, err error) {

	if degree < 1 {
		return nil, nil, chk.Err("degree must be >= 1; got %d", degree)
	}
	if order < 0 {
		return nil, nil, chk.Err("order must be >= 0; got %d", order)
	}

	nbPoles := knot.NbPoles(degree, len(knots))
	if weights != nil && len(weights) != nbPoles {
		return nil, nil, chk.Err("len(weights)=%d must equal nb_poles=%d", len(weights), nbPoles)
	}

	t0, t1 := knot.Domain(degree, knots)
	if t < t0 {
		t = t0
	}
	if t > t1 {
		t = t1
	}

	i := knot.UpperSpan(degree, knots, t)
	full := fullKnots(knots)
	iFull := i + 1

	indices = make([]int, degree+1)
	for r := 0; r <= degree; r++ {
		indices[r] = i - degree + 1 + r
	}

	ders := dersBasisFuns(iFull, t, degree, order, full)

	if weights == nil {
		values = ders
		return
	}

	// rational quotient-rule correction; see DESIGN.md (shpfun) for the
	// derivation cross-checked against spec.md §8 scenario S3.
	values = rationalize(ders, indices, weights, degree, order)
	return
}

// fullKnots returns the standard (Piegl & Tiller) clamped knot vector
// implied by the compact spec.md §3 representation, by duplicating the
// first and last knot once each.
func fullKnots(knots knot.Vector) []float64 {
	n := len(knots)
	full := make([]float64, n+2)
	full[0] = knots[0]
	copy(full[1:n+1], knots)
	full[n+1] = knots[n-1]
	return full
}

// dersBasisFuns implements Piegl & Tiller's Algorithm A2.3 (DersBasisFuns):
// the nonzero basis functions N_{i-p},...,N_i of degree p at parameter u
// and their derivatives up to order n, given the span index i (0-indexed,
// U[i] <= u < U[i+1]) into the full clamped knot vector U.
func dersBasisFuns(i int, u float64, p, n int, U []float64) [][]float64 {

	ndu := la.MatAlloc(p+1, p+1)
	left := make([]float64, p+1)
	right := make([]float64, p+1)
	ndu[0][0] = 1.0

	for j := 1; j <= p; j++ {
		left[j] = u - U[i+1-j]
		right[j] = U[i+j] - u
		saved := 0.0
		for r := 0; r < j; r++ {
			ndu[j][r] = right[r+1] + left[j-r]
			temp := ndu[r][j-1] / ndu[j][r]
			ndu[r][j] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		ndu[j][j] = saved
	}

	ders := la.MatAlloc(n+1, p+1)
	for j := 0; j <= p; j++ {
		ders[0][j] = ndu[j][p]
	}

	a := la.MatAlloc(2, p+1)
	for r := 0; r <= p; r++ {
		s1, s2 := 0, 1
		a[0][0] = 1.0
		for k := 1; k <= n; k++ {
			d := 0.0
			rk := r - k
			pk := p - k
			if r >= k {
				a[s2][0] = a[s1][0] / ndu[pk+1][rk]
				d = a[s2][0] * ndu[rk][pk]
			}
			var j1, j2 int
			if rk >= -1 {
				j1 = 1
			} else {
				j1 = -rk
			}
			if r-1 <= pk {
				j2 = k - 1
			} else {
				j2 = p - r
			}
			for j := j1; j <= j2; j++ {
				a[s2][j] = (a[s1][j] - a[s1][j-1]) / ndu[pk+1][rk+j]
				d += a[s2][j] * ndu[rk+j][pk]
			}
			if r <= pk {
				a[s2][k] = -a[s1][k-1] / ndu[pk+1][r]
				d += a[s2][k] * ndu[r][pk]
			}
			ders[k][r] = d
			s1, s2 = s2, s1
		}
	}

	rr := float64(p)
	for k := 1; k <= n; k++ {
		for j := 0; j <= p; j++ {
			ders[k][j] *= rr
		}
		rr *= float64(p - k)
	}
	return ders
}

// rationalize applies the NURBS derivative quotient rule to the plain
// B-spline basis derivatives ders[k][r], producing rational basis function
// derivatives R_r^{(k)} = N_r^{(k)} w_r / w(t), propagated via
//
//	R_r^{(k)} = ( N_r^{(k)} w_r - sum_{j=1}^{k} C(k,j) w^{(j)} R_r^{(k-j)} ) / w(t)
func rationalize(ders [][]float64, indices []int, weights []float64, degree, order int) [][]float64 {

	nloc := degree + 1
	w := make([]float64, order+1) // w^{(k)} = sum_r N_r^{(k)} * weight[indices[r]]
	for k := 0; k <= order; k++ {
		for r := 0; r < nloc; r++ {
			w[k] += ders[k][r] * weights[indices[r]]
		}
	}

	R := la.MatAlloc(order+1, nloc)
	binom := binomialTable(order)
	for r := 0; r < nloc; r++ {
		wr := weights[indices[r]]
		for k := 0; k <= order; k++ {
			v := ders[k][r] * wr
			for j := 1; j <= k; j++ {
				v -= float64(binom[k][j]) * w[j] * R[k-j][r]
			}
			R[k][r] = v / w[0]
		}
	}
	return R
}

func binomialTable(n int) [][]int {
	b := make([][]int, n+1)
	for i := range b {
		b[i] = make([]int, n+1)
		b[i][0] = 1
		for j := 1; j <= i; j++ {
			b[i][j] = b[i-1][j-1]
			if j <= i-1 {
				b[i][j] += b[i-1][j]
			}
		}
	}
	return b
}
