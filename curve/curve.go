// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package curve implements NurbsCurveGeometry<D>: construction, domain,
// point/derivative evaluation and Greville abscissae for a NURBS curve in
// 2 or 3 dimensions.
package curve

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gonurbs/gm"
	"github.com/cpmech/gonurbs/knot"
	"github.com/cpmech/gonurbs/shpfun"
)

// Geometry is a NURBS curve: degree, knot vector, poles and optional
// weights. Topology (degree, knot count, pole count) is fixed after
// construction; pole/weight/knot values may still be mutated in place
// through the Set* methods.
type Geometry struct {
	Degree  int
	Knots   knot.Vector
	Poles   [][]float64 // [nb_poles][Dim]
	Weights []float64   // len 0 or nb_poles
	Dim     int
}

// NewByKnots constructs a curve from degree, knots, poles and optional
// weights. Fails if len(knots) != degree + len(poles) - 1 or len(weights)
// is neither 0 nor len(poles).
func NewByKnots(degree int, knots knot.Vector, poles [][]float64, weights []float64) (*Geometry, error) {
	if len(poles) == 0 {
		return nil, chk.Err("poles must not be empty")
	}
	dim := len(poles[0])
	if dim != 2 && dim != 3 {
		return nil, chk.Err("pole dimension must be 2 or 3; got %d", dim)
	}
	for i, p := range poles {
		if len(p) != dim {
			return nil, chk.Err("pole %d has dimension %d, expected %d", i, len(p), dim)
		}
	}
	if err := knot.Validate(degree, knots, len(poles), len(weights)); err != nil {
		return nil, err
	}
	return &Geometry{
		Degree:  degree,
		Knots:   append(knot.Vector{}, knots...),
		Poles:   poles,
		Weights: weights,
		Dim:     dim,
	}, nil
}

// NewByCounts allocates an uninitialized curve of the given degree, pole
// count and dimension, to be filled in with SetKnot/SetPole/SetWeight.
func NewByCounts(degree, nbPoles int, isRational bool, dim int) (*Geometry, error) {
	if degree < 1 {
		return nil, chk.Err("degree must be >= 1; got %d", degree)
	}
	if nbPoles < degree+1 {
		return nil, chk.Err("nb_poles=%d too small for degree=%d", nbPoles, degree)
	}
	if dim != 2 && dim != 3 {
		return nil, chk.Err("dim must be 2 or 3; got %d", dim)
	}
	g := &Geometry{
		Degree: degree,
		Knots:  make(knot.Vector, knot.NbKnots(degree, nbPoles)),
		Poles:  make([][]float64, nbPoles),
		Dim:    dim,
	}
	for i := range g.Poles {
		g.Poles[i] = make([]float64, dim)
	}
	if isRational {
		g.Weights = make([]float64, nbPoles)
		for i := range g.Weights {
			g.Weights[i] = 1
		}
	}
	return g, nil
}

// NbPoles returns the number of poles.
func (g *Geometry) NbPoles() int { return len(g.Poles) }

// SetKnot sets the i-th knot value.
func (g *Geometry) SetKnot(i int, value float64) error {
	if i < 0 || i >= len(g.Knots) {
		return chk.Err("knot index %d out of range [0,%d)", i, len(g.Knots))
	}
	g.Knots[i] = value
	return nil
}

// SetPole sets the i-th pole's coordinates.
func (g *Geometry) SetPole(i int, p []float64) error {
	if i < 0 || i >= len(g.Poles) {
		return chk.Err("pole index %d out of range [0,%d)", i, len(g.Poles))
	}
	if len(p) != g.Dim {
		return chk.Err("pole dimension %d does not match curve dimension %d", len(p), g.Dim)
	}
	copy(g.Poles[i], p)
	return nil
}

// SetWeight sets the i-th pole weight, allocating the weights slice if
// this is the curve's first weighted pole.
func (g *Geometry) SetWeight(i int, w float64) error {
	if i < 0 || i >= len(g.Poles) {
		return chk.Err("weight index %d out of range [0,%d)", i, len(g.Poles))
	}
	if g.Weights == nil {
		g.Weights = make([]float64, len(g.Poles))
		for k := range g.Weights {
			g.Weights[k] = 1
		}
	}
	g.Weights[i] = w
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

// Domain returns the parametric interval implied by the knot vector.
func (g *Geometry) Domain() gm.Interval {
	t0, t1 := knot.Domain(g.Degree, g.Knots)
	return gm.Interval{T0: t0, T1: t1}
}

// PointAt evaluates the curve position at t, clamped into the domain.
func (g *Geometry) PointAt(t float64) []float64 {
	return g.DerivativesAt(t, 0)[0]
}

// DerivativesAt returns order+1 D-vectors: the 0-th is the position, the
// k-th is the k-th derivative with respect to t.
func (g *Geometry) DerivativesAt(t float64, order int) [][]float64 {
	dom := g.Domain()
	t = dom.Clamp(t)

	indices, values, err := shpfun.Curve(g.Degree, g.Knots, t, order, g.Weights)
	if err != nil {
		chk.Panic("curve shape function evaluation failed: %v", err)
	}

	out := make([][]float64, order+1)
	for k := 0; k <= order; k++ {
		p := make([]float64, g.Dim)
		for r, idx := range indices {
			n := values[k][r]
			pole := g.Poles[idx]
			for d := 0; d < g.Dim; d++ {
				p[d] += n * pole[d]
			}
		}
		out[k] = p
	}
	return out
}

// Greville returns the Greville abscissa of the index-th pole: the
// arithmetic mean of Degree consecutive knots starting at index (0-based
// into Knots), equivalent to spec.md §4.3's "degree consecutive interior
// knots starting at index+1" under the 1-based knot indexing classically
// used for this formula (see DESIGN.md, curve).
func (g *Geometry) Greville(index int) float64 {
	var sum float64
	for j := index; j < index+g.Degree; j++ {
		sum += g.Knots[j]
	}
	return sum / float64(g.Degree)
}
