// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shpfun

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gonurbs/knot"
)

// Surface computes the nonzero bivariate tensor-product B-spline/NURBS
// basis functions at (u,v) and their mixed partial derivatives up to total
// order (du+dv <= order).
//
// Returns indices[(pu+1)*(pv+1)] laid out u-major (local u-index outer,
// local v-index inner, matching the surface pole addressing k=u*Pv+v), and
// derivatives[Nd][(pu+1)*(pv+1)] where Nd = (order+1)(order+2)/2 and the
// derivative rows are in lex order of (du,dv) by ascending total order
// s=du+dv, then ascending du within each s (row 0 is (du,dv)=(0,0)).
//
// poleWeight, if non-nil, must return the pole weight for a given (local u
// index, local v index) pair and triggers the rational correction.
func Surface(degreeU int, knotsU knot.Vector, degreeV int, knotsV knot.Vector,
	u, v float64, order int, poleWeight func(ru, rv int) float64) (indices []int, derivatives [][]float64, err error) {

	if order < 0 {
		return nil, nil, chk.Err("order must be >= 0; got %d", order)
	}

	nbPolesV := knot.NbPoles(degreeV, len(knotsV))

	_, ndu, errU := Curve(degreeU, knotsU, u, order, nil)
	if errU != nil {
		return nil, nil, errU
	}
	_, ndv, errV := Curve(degreeV, knotsV, v, order, nil)
	if errV != nil {
		return nil, nil, errV
	}

	iu := knot.UpperSpan(degreeU, knotsU, clamp(u, knotsU, degreeU))
	iv := knot.UpperSpan(degreeV, knotsV, clamp(v, knotsV, degreeV))

	pu := degreeU
	pv := degreeV
	nlocu := pu + 1
	nlocv := pv + 1

	indices = make([]int, nlocu*nlocv)
	for ru := 0; ru <= pu; ru++ {
		for rv := 0; rv <= pv; rv++ {
			iu_ := iu - pu + 1 + ru
			iv_ := iv - pv + 1 + rv
			indices[ru*nlocv+rv] = iu_*nbPolesV + iv_
		}
	}

	// non-rational tensor derivatives A[du][dv][local]
	A := make([][][]float64, order+1)
	for du := 0; du <= order; du++ {
		A[du] = make([][]float64, order+1)
		for dv := 0; dv <= order; dv++ {
			A[du][dv] = make([]float64, nlocu*nlocv)
			for ru := 0; ru <= pu; ru++ {
				for rv := 0; rv <= pv; rv++ {
					A[du][dv][ru*nlocv+rv] = ndu[du][ru] * ndv[dv][rv]
				}
			}
		}
	}

	if poleWeight == nil {
		derivatives = collectLex(A, order)
		return
	}

	// weights of the local control net, indexed the same way as indices
	wloc := make([]float64, nlocu*nlocv)
	for ru := 0; ru <= pu; ru++ {
		for rv := 0; rv <= pv; rv++ {
			wloc[ru*nlocv+rv] = poleWeight(ru, rv)
		}
	}

	// denominator derivatives w[du][dv]
	w := make([][]float64, order+1)
	for du := 0; du <= order; du++ {
		w[du] = make([]float64, order+1)
		for dv := 0; dv <= order; dv++ {
			var s float64
			for k, wk := range wloc {
				s += A[du][dv][k] * wk
			}
			w[du][dv] = s
		}
	}

	binom := binomialTable(order)

	R := make([][][]float64, order+1)
	for du := 0; du <= order; du++ {
		R[du] = make([][]float64, order+1)
		for dv := 0; dv <= order; dv++ {
			R[du][dv] = make([]float64, nlocu*nlocv)
		}
	}
	for idx := range indices {
		wr := wloc[idx]
		for s := 0; s <= order; s++ {
			for du := 0; du <= s; du++ {
				dv := s - du
				val := A[du][dv][idx] * wr
				for k := 0; k <= du; k++ {
					for l := 0; l <= dv; l++ {
						if k == 0 && l == 0 {
							continue
						}
						val -= float64(binom[du][k]) * float64(binom[dv][l]) * w[k][l] * R[du-k][dv-l][idx]
					}
				}
				R[du][dv][idx] = val / w[0][0]
			}
		}
	}
	derivatives = collectLex(R, order)
	return
}

// collectLex flattens a [du][dv][local] cube into lex (s,du) row order.
func collectLex(M [][][]float64, order int) [][]float64 {
	nd := (order + 1) * (order + 2) / 2
	out := make([][]float64, nd)
	row := 0
	for s := 0; s <= order; s++ {
		for du := 0; du <= s; du++ {
			dv := s - du
			out[row] = M[du][dv]
			row++
		}
	}
	return out
}

func clamp(t float64, knots knot.Vector, degree int) float64 {
	t0, t1 := knot.Domain(degree, knots)
	if t < t0 {
		return t0
	}
	if t > t1 {
		return t1
	}
	return t
}
