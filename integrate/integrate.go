// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package integrate provides Gauss-Legendre quadrature nodes/weights and
// samplers over curves and surfaces, affinely mapped onto their parameter
// domains (or geometric length/area, for the curve/surface variants).
//
// No quadrature-table library surfaced anywhere in the example corpus (see
// DESIGN.md); nodes are generated with a Newton refinement of the Legendre
// polynomial roots (the standard "gauleg" technique), in the bounded-
// iteration style of cpmech/gofem's shp/algos.go InvMap.
package integrate

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gonurbs/curve"
	"github.com/cpmech/gonurbs/gm"
	"github.com/cpmech/gonurbs/knot"
	"github.com/cpmech/gonurbs/surface"
)

// MaxDegree is the largest supported number of Gauss-Legendre points.
const MaxDegree = 99

const (
	glTol = 1e-15
	glNit = 100
)

// Point1D is a single 1D integration point: parameter T and weight W.
type Point1D struct {
	T, W float64
}

// Point2D is a single tensor-product 2D integration point.
type Point2D struct {
	U, V float64
	W    float64
}

// GaussLegendre1D returns the n nodes and weights of the n-point
// Gauss-Legendre quadrature rule on [-1,1], ascending by node value.
// n must be in [1, MaxDegree].
func GaussLegendre1D(n int) (nodes, weights []float64, err error) {
	if n <= 0 {
		return nil, nil, chk.Err("integration degree must be > 0; got %d", n)
	}
	if n > MaxDegree {
		return nil, nil, chk.Err("integration degree %d exceeds supported table (%d)", n, MaxDegree)
	}

	nodes = make([]float64, n)
	weights = make([]float64, n)

	if n == 1 {
		nodes[0], weights[0] = 0, 2
		return
	}

	m := (n + 1) / 2
	for i := 0; i < m; i++ {
		// initial guess (Francesco Tricomi's approximation of the i-th root)
		z := math.Cos(math.Pi * (float64(i+1) - 0.25) / (float64(n) + 0.5))
		var pp float64
		for it := 0; it < glNit; it++ {
			p0, p1 := 1.0, z
			for k := 2; k <= n; k++ {
				p2 := ((2*float64(k)-1)*z*p1 - (float64(k)-1)*p0) / float64(k)
				p0 = p1
				p1 = p2
			}
			pp = float64(n) * (z*p1 - p0) / (z*z - 1)
			z1 := z
			z -= p1 / pp
			if math.Abs(z-z1) < glTol {
				break
			}
		}
		// recompute pp, p1 at the converged root for the weight
		p0, p1 := 1.0, z
		for k := 2; k <= n; k++ {
			p2 := ((2*float64(k)-1)*z*p1 - (float64(k)-1)*p0) / float64(k)
			p0 = p1
			p1 = p2
		}
		pp = float64(n) * (z*p1 - p0) / (z*z - 1)
		w := 2.0 / ((1 - z*z) * pp * pp)

		nodes[i] = -z
		nodes[n-1-i] = z
		weights[i] = w
		weights[n-1-i] = w
	}
	return
}

// Points1D maps the n-point Gauss-Legendre rule onto domain, scaling
// weights by the domain's half-length.
func Points1D(n int, domain gm.Interval) ([]Point1D, error) {
	nodes, weights, err := GaussLegendre1D(n)
	if err != nil {
		return nil, err
	}
	half := domain.Length() / 2
	mid := (domain.T0 + domain.T1) / 2
	out := make([]Point1D, n)
	for i := range nodes {
		out[i] = Point1D{T: mid + half*nodes[i], W: half * weights[i]}
	}
	return out, nil
}

// Points2D returns the tensor product of the (degreeU, degreeV)-point
// Gauss-Legendre rules over a rectangular domain, ordered with u varying
// slowest.
func Points2D(degreeU int, domainU gm.Interval, degreeV int, domainV gm.Interval) ([]Point2D, error) {
	pu, err := Points1D(degreeU, domainU)
	if err != nil {
		return nil, err
	}
	pv, err := Points1D(degreeV, domainV)
	if err != nil {
		return nil, err
	}
	out := make([]Point2D, 0, len(pu)*len(pv))
	for _, a := range pu {
		for _, b := range pv {
			out = append(out, Point2D{U: a.T, V: b.T, W: a.W * b.W})
		}
	}
	return out, nil
}

// CurvePoints returns integration points covering g's full parameter
// domain: for each non-empty knot span, a (degree+1)-point rule is placed
// and weights are scaled by the geometric Jacobian |d/dt point(t)|, so
// that summing weights integrates arc length. Spans are in ascending
// knot order; nodes within a span are in ascending parameter order.
func CurvePoints(g *curve.Geometry) ([]Point1D, error) {
	n := g.Degree + 1
	var out []Point1D
	for _, span := range knot.Spans(g.Degree, g.Knots) {
		pts, err := Points1D(n, span)
		if err != nil {
			return nil, err
		}
		for _, p := range pts {
			ders := g.DerivativesAt(p.T, 1)
			jac := gm.Norm(ders[1])
			out = append(out, Point1D{T: p.T, W: p.W * jac})
		}
	}
	return out, nil
}

// SurfacePoints returns integration points covering g's full parameter
// domain, tensor-spanning each (u-span, v-span) pair, with weight scaled
// by |∂P/∂u x ∂P/∂v| so that summing weights integrates surface area.
func SurfacePoints(g *surface.Geometry) ([]Point2D, error) {
	nu := g.DegreeU + 1
	nv := g.DegreeV + 1
	var out []Point2D
	for _, su := range knot.Spans(g.DegreeU, g.KnotsU) {
		for _, sv := range knot.Spans(g.DegreeV, g.KnotsV) {
			pts, err := Points2D(nu, su, nv, sv)
			if err != nil {
				return nil, err
			}
			for _, p := range pts {
				ders := g.DerivativesAt(p.U, p.V, 1)
				// lex order s=1: (du=0,dv=1)=Sv row1, (du=1,dv=0)=Su row2
				Sv, Su := ders[1], ders[2]
				var jac float64
				if g.Dim == 3 {
					jac = gm.Norm(gm.Cross3(Su, Sv))
				} else {
					jac = math.Abs(gm.Cross2(Su, Sv))
				}
				out = append(out, Point2D{U: p.U, V: p.V, W: p.W * jac})
			}
		}
	}
	return out, nil
}
