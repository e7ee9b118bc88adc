// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"github.com/cpmech/gonurbs/curve"
	"github.com/cpmech/gonurbs/knot"
)

// CurveOnSurface composes a 2D NURBS curve C (in the surface's (u,v)
// parameter space) with a surface S: point_at(t) = S(C(t)).
type CurveOnSurface struct {
	Curve   *curve.Geometry
	Surface *Geometry
}

// NewCurveOnSurface wraps a 2D curve and a surface. The curve's dimension
// must be 2 (its coordinates are (u,v) parameters of the surface).
func NewCurveOnSurface(c *curve.Geometry, s *Geometry) *CurveOnSurface {
	return &CurveOnSurface{Curve: c, Surface: s}
}

// PointAt returns S(C(t)).
func (o *CurveOnSurface) PointAt(t float64) []float64 {
	uv := o.Curve.PointAt(t)
	return o.Surface.PointAt(uv[0], uv[1])
}

// DerivativesAt returns derivatives of S(C(t)) with respect to t up to
// order (0, 1 or 2), obtained by composing the curve and surface
// derivatives via Faa di Bruno's formula.
//
//	d/dt S(C(t))     = Su*u' + Sv*v'
//	d2/dt2 S(C(t))   = Suu*u'^2 + 2*Suv*u'*v' + Svv*v'^2 + Su*u'' + Sv*v''
func (o *CurveOnSurface) DerivativesAt(t float64, order int) [][]float64 {
	if order > 2 {
		order = 2 // composition is only implemented up to order 2, per spec.md §4.4
	}
	cDers := o.Curve.DerivativesAt(t, order)
	uv := cDers[0]
	sDers := o.Surface.DerivativesAt(uv[0], uv[1], order)

	out := make([][]float64, order+1)
	out[0] = sDers[0]
	if order == 0 {
		return out
	}

	up, vp := cDers[1][0], cDers[1][1]
	Su, Sv := sDers[2], sDers[1] // lex order s=1: (du=0,dv=1) then (du=1,dv=0)

	d1 := make([]float64, len(out[0]))
	for i := range d1 {
		d1[i] = Su[i]*up + Sv[i]*vp
	}
	out[1] = d1
	if order == 1 {
		return out
	}

	upp, vpp := cDers[2][0], cDers[2][1]
	// lex order s=2: (0,2),(1,1),(2,0)
	Svv, Suv, Suu := sDers[3], sDers[4], sDers[5]

	d2 := make([]float64, len(out[0]))
	for i := range d2 {
		d2[i] = Suu[i]*up*up + 2*Suv[i]*up*vp + Svv[i]*vp*vp + Su[i]*upp + Sv[i]*vpp
	}
	out[2] = d2
	return out
}

// SpanBreakpoints returns the strictly-interior knot breakpoints of the
// composing curve C.
func (o *CurveOnSurface) SpanBreakpoints() []float64 {
	return knot.Breakpoints(o.Curve.Degree, o.Curve.Knots)
}
