// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package surface implements NurbsSurfaceGeometry<D>: bivariate evaluation
// of position, derivatives and normals, and CurveOnSurface<D>, the
// composition of a 2D NURBS curve with a surface.
package surface

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gonurbs/curve"
	"github.com/cpmech/gonurbs/gm"
	"github.com/cpmech/gonurbs/knot"
	"github.com/cpmech/gonurbs/shpfun"
)

// Geometry is a NURBS surface: two degrees, two knot vectors, a row-major
// u-major pole grid (k = u*NbPolesV()+v) and optional weights.
type Geometry struct {
	DegreeU, DegreeV int
	KnotsU, KnotsV   knot.Vector
	Poles            [][]float64 // [Pu*Pv][Dim]
	Weights          []float64   // len 0 or Pu*Pv
	Dim              int
	nbPolesU         int
	nbPolesV         int
}

// NewByKnots constructs a surface from degrees, knot vectors, a flat
// u-major pole grid, and optional weights.
func NewByKnots(degreeU int, knotsU knot.Vector, degreeV int, knotsV knot.Vector,
	poles [][]float64, weights []float64) (*Geometry, error) {

	if len(poles) == 0 {
		return nil, chk.Err("poles must not be empty")
	}
	dim := len(poles[0])
	if dim != 2 && dim != 3 {
		return nil, chk.Err("pole dimension must be 2 or 3; got %d", dim)
	}

	nbPolesU := knot.NbPoles(degreeU, len(knotsU))
	nbPolesV := knot.NbPoles(degreeV, len(knotsV))
	if len(poles) != nbPolesU*nbPolesV {
		return nil, chk.Err("len(poles)=%d must equal nb_poles_u*nb_poles_v=%d*%d", len(poles), nbPolesU, nbPolesV)
	}
	if err := knot.Validate(degreeU, knotsU, nbPolesU, 0); err != nil {
		return nil, err
	}
	if err := knot.Validate(degreeV, knotsV, nbPolesV, 0); err != nil {
		return nil, err
	}
	if len(weights) != 0 && len(weights) != len(poles) {
		return nil, chk.Err("len(weights)=%d must be 0 or %d", len(weights), len(poles))
	}

	return &Geometry{
		DegreeU: degreeU, DegreeV: degreeV,
		KnotsU: append(knot.Vector{}, knotsU...), KnotsV: append(knot.Vector{}, knotsV...),
		Poles: poles, Weights: weights, Dim: dim,
		nbPolesU: nbPolesU, nbPolesV: nbPolesV,
	}, nil
}

// NbPolesU returns the number of poles in the u direction.
func (g *Geometry) NbPolesU() int { return g.nbPolesU }

// NbPolesV returns the number of poles in the v direction.
func (g *Geometry) NbPolesV() int { return g.nbPolesV }

// PoleIndex returns the flat index of pole (u,v) in the u-major layout.
func (g *Geometry) PoleIndex(u, v int) int { return u*g.nbPolesV + v }

// SetPole sets the (u,v) pole's coordinates.
func (g *Geometry) SetPole(u, v int, p []float64) error {
	k := g.PoleIndex(u, v)
	if k < 0 || k >= len(g.Poles) {
		return chk.Err("pole (%d,%d) out of range", u, v)
	}
	if len(p) != g.Dim {
		return chk.Err("pole dimension %d does not match surface dimension %d", len(p), g.Dim)
	}
	copy(g.Poles[k], p)
	return nil
}

// SetWeight sets the (u,v) pole weight, allocating the weights slice on
// first use.
func (g *Geometry) SetWeight(u, v int, w float64) error {
	k := g.PoleIndex(u, v)
	if k < 0 || k >= len(g.Poles) {
		return chk.Err("pole (%d,%d) out of range", u, v)
	}
	if g.Weights == nil {
		g.Weights = make([]float64, len(g.Poles))
		for i := range g.Weights {
			g.Weights[i] = 1
		}
	}
	g.Weights[k] = w
	return nil
}

// IsRational reports whether weights are present and not all equal.
func (g *Geometry) IsRational() bool {
	if len(g.Weights) == 0 {
		return false
	}
	w0 := g.Weights[0]
	for _, w := range g.Weights[1:] {
		if w != w0 {
			return true
		}
	}
	return false
}

// DomainU returns the u-parametric interval.
func (g *Geometry) DomainU() gm.Interval {
	t0, t1 := knot.Domain(g.DegreeU, g.KnotsU)
	return gm.Interval{T0: t0, T1: t1}
}

// DomainV returns the v-parametric interval.
func (g *Geometry) DomainV() gm.Interval {
	t0, t1 := knot.Domain(g.DegreeV, g.KnotsV)
	return gm.Interval{T0: t0, T1: t1}
}

// PointAt evaluates the surface position at (u,v), clamped into the domain.
func (g *Geometry) PointAt(u, v float64) []float64 {
	return g.DerivativesAt(u, v, 0)[0]
}

// DerivativesAt returns the tensor-product derivative list of length
// (order+1)(order+2)/2, in lex order of (du,dv) by ascending total order
// s=du+dv then ascending du (row 0 is the position).
func (g *Geometry) DerivativesAt(u, v float64, order int) [][]float64 {
	u = g.DomainU().Clamp(u)
	v = g.DomainV().Clamp(v)

	var poleWeight func(ru, rv int) float64
	if len(g.Weights) > 0 {
		iu := knot.UpperSpan(g.DegreeU, g.KnotsU, u)
		iv := knot.UpperSpan(g.DegreeV, g.KnotsV, v)
		poleWeight = func(ru, rv int) float64 {
			pu := iu - g.DegreeU + 1 + ru
			pv := iv - g.DegreeV + 1 + rv
			return g.Weights[pu*g.nbPolesV+pv]
		}
	}

	indices, ders, err := shpfun.Surface(g.DegreeU, g.KnotsU, g.DegreeV, g.KnotsV, u, v, order, poleWeight)
	if err != nil {
		chk.Panic("surface shape function evaluation failed: %v", err)
	}

	nd := (order + 1) * (order + 2) / 2
	out := make([][]float64, nd)
	for k := 0; k < nd; k++ {
		p := make([]float64, g.Dim)
		for r, idx := range indices {
			n := ders[k][r]
			pole := g.Poles[idx]
			for d := 0; d < g.Dim; d++ {
				p[d] += n * pole[d]
			}
		}
		out[k] = p
	}
	return out
}

// NormalAt returns the normalized cross product of the first u- and
// v-partial derivatives. Undefined (degenerate) parameterizations yield a
// zero vector. Only meaningful for Dim==3.
func (g *Geometry) NormalAt(u, v float64) []float64 {
	ders := g.DerivativesAt(u, v, 1)
	// lex order for order=1: s=0 -> (0,0); s=1 -> (0,1),(1,0)
	dU := ders[2]
	dV := ders[1]
	return gm.Normalize(gm.Cross3(dU, dV))
}

// Greville returns the Greville point of pole (u,v): the pair of
// univariate Greville abscissae in each direction.
func (g *Geometry) Greville(u, v int) (gu, gv float64) {
	cu := &curve.Geometry{Degree: g.DegreeU, Knots: g.KnotsU}
	cv := &curve.Geometry{Degree: g.DegreeV, Knots: g.KnotsV}
	return cu.Greville(u), cv.Greville(v)
}
