// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hilbert implements the discrete Hilbert space-filling curve in
// 2 and 3 dimensions: the Compact Hilbert Index construction of Hamilton
// & Rau-Chaplin, specialized to the case where every dimension carries
// the same number of bits (order m).
package hilbert

import (
	"github.com/cpmech/gosl/chk"
)

// PointAt maps index h in [0, 2^(n*m)) to a grid point in [0, 2^m)^n.
// n must be 2 or 3.
func PointAt(n, m int, h uint64) ([]int, error) {
	if err := validate(n, m); err != nil {
		return nil, err
	}
	if m == 0 {
		return make([]int, n), nil
	}
	if h >= uint64(1)<<uint(n*m) {
		return nil, chk.Err("index %d out of range [0, 2^%d)", h, n*m)
	}

	p := make([]uint64, n)
	var e, d uint64
	mask := uint64(1)<<uint(n) - 1
	for i := m - 1; i >= 0; i-- {
		w := (h >> uint(i*n)) & mask
		l := grayCode(w)
		l = inverseTransform(e, d, l, n)
		for j := 0; j < n; j++ {
			bit := (l >> uint(j)) & 1
			p[j] |= bit << uint(i)
		}
		e = e ^ rol(entryPoint(w), d+1, n)
		d = (d + direction(w, n) + 1) % uint64(n)
	}

	out := make([]int, n)
	for j := range p {
		out[j] = int(p[j])
	}
	return out, nil
}

// IndexAt is the inverse of PointAt: it maps a grid point in [0, 2^m)^n
// back to its index h in [0, 2^(n*m)). n must be 2 or 3 and len(point)
// must equal n.
func IndexAt(n, m int, point []int) (uint64, error) {
	if err := validate(n, m); err != nil {
		return 0, err
	}
	if len(point) != n {
		return 0, chk.Err("point has %d components; expected %d", len(point), n)
	}
	if m == 0 {
		return 0, nil
	}
	p := make([]uint64, n)
	for j, v := range point {
		if v < 0 || v >= 1<<uint(m) {
			return 0, chk.Err("point[%d]=%d out of range [0, 2^%d)", j, v, m)
		}
		p[j] = uint64(v)
	}

	var h, e, d uint64
	for i := m - 1; i >= 0; i-- {
		var l uint64
		for j := 0; j < n; j++ {
			bit := (p[j] >> uint(i)) & 1
			l |= bit << uint(j)
		}
		l = transform(e, d, l, n)
		w := inverseGrayCode(l)
		h = (h << uint(n)) | w
		e = e ^ rol(entryPoint(w), d+1, n)
		d = (d + direction(w, n) + 1) % uint64(n)
	}
	return h, nil
}

func validate(n, m int) error {
	if n != 2 && n != 3 {
		return chk.Err("dimension must be 2 or 3; got %d", n)
	}
	if m < 0 {
		return chk.Err("order must be >= 0; got %d", m)
	}
	return nil
}

// grayCode returns the binary-reflected Gray code of i.
func grayCode(i uint64) uint64 { return i ^ (i >> 1) }

// inverseGrayCode recovers i from its Gray code g.
func inverseGrayCode(g uint64) uint64 {
	i := g
	for mask := g >> 1; mask != 0; mask >>= 1 {
		i ^= mask
	}
	return i
}

// trailingSetBits returns the number of trailing 1-bits of x.
func trailingSetBits(x uint64) int {
	n := 0
	for x&1 == 1 {
		n++
		x >>= 1
	}
	return n
}

// entryPoint returns the entry point of the i-th sub-hypercube.
func entryPoint(i uint64) uint64 {
	if i == 0 {
		return 0
	}
	return grayCode(2 * ((i - 1) / 2))
}

// direction returns the intra-subcube direction of the i-th sub-hypercube:
// 0 for i=0, trailingSetBits(i-1) for even i, trailingSetBits(i) for odd i,
// taken modulo n.
func direction(i uint64, n int) uint64 {
	if i == 0 {
		return 0
	}
	if i%2 == 0 {
		return uint64(trailingSetBits(i-1) % n)
	}
	return uint64(trailingSetBits(i) % n)
}

// rol rotates the low n bits of x left by k positions, k taken modulo n
// (k may be negative).
func rol(x uint64, k uint64, n int) uint64 {
	kk := ((int64(k) % int64(n)) + int64(n)) % int64(n)
	mask := uint64(1)<<uint(n) - 1
	return ((x << uint(kk)) | (x >> uint(n-int(kk)))) & mask
}

// ror rotates the low n bits of x right by k positions.
func ror(x uint64, k uint64, n int) uint64 {
	return rol(x, uint64(-int64(k)), n)
}

// transform is T_{e,d}: the map from a position within the enclosing cube
// into the sub-hypercube's canonical Gray code ordering (used by IndexAt).
func transform(e, d, b uint64, n int) uint64 {
	return ror(b^e, d+1, n)
}

// inverseTransform is T^{-1}_{e,d}: the map from the canonical Gray code
// ordering back into a position within the enclosing cube (used by PointAt).
func inverseTransform(e, d, b uint64, n int) uint64 {
	return rol(b, d+1, n) ^ e
}
