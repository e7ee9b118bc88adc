// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rtree implements a static, bulk-loaded axis-aligned
// bounding-box R-tree in 2 or 3 dimensions. Leaves are sorted by the
// Hilbert index of their center before being grouped bottom-up into
// fixed-size nodes, so the whole tree is built in a single Finish call
// rather than through incremental insertion.
package rtree

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/gonurbs/hilbert"
)

// NodeSize is the fixed branching factor of internal nodes.
const NodeSize = 16

// hilbertOrder is the fixed Hilbert curve order used to rank leaf
// centers (m=16, i.e. a 16-bit grid per axis).
const hilbertOrder = 16

// Tree is a bulk-loaded static AABB R-tree.
type Tree struct {
	Dim      int
	NbItems  int
	NodeSize int

	BoxesMin [][]float64
	BoxesMax [][]float64
	Indices  []int

	levelBounds []int // exclusive end offsets of each level, leaves first
	finished    bool
}

// New allocates a tree to receive nbItems leaves via Add.
func New(dim, nbItems int) (*Tree, error) {
	if dim != 2 && dim != 3 {
		return nil, chk.Err("dimension must be 2 or 3; got %d", dim)
	}
	if nbItems < 0 {
		return nil, chk.Err("nb_items must be >= 0; got %d", nbItems)
	}
	return &Tree{
		Dim:      dim,
		NodeSize: NodeSize,
		BoxesMin: make([][]float64, 0, nbItems),
		BoxesMax: make([][]float64, 0, nbItems),
	}, nil
}

// Add appends one leaf box. Must be called before Finish.
func (t *Tree) Add(min, max []float64) error {
	if t.finished {
		return chk.Err("cannot add after finish")
	}
	if len(min) != t.Dim || len(max) != t.Dim {
		return chk.Err("box dimension must be %d", t.Dim)
	}
	t.BoxesMin = append(t.BoxesMin, append([]float64{}, min...))
	t.BoxesMax = append(t.BoxesMax, append([]float64{}, max...))
	return nil
}

// Finish builds the internal node hierarchy over the added leaves.
// After Finish, Add must not be called again.
func (t *Tree) Finish() error {
	if t.finished {
		return chk.Err("finish already called")
	}
	n := len(t.BoxesMin)
	t.NbItems = n
	t.finished = true

	if n == 0 {
		t.Indices = nil
		t.levelBounds = []int{0}
		return nil
	}

	// global bounding box, for rescaling centers into the Hilbert grid
	gmin := append([]float64{}, t.BoxesMin[0]...)
	gmax := append([]float64{}, t.BoxesMax[0]...)
	for i := 1; i < n; i++ {
		for d := 0; d < t.Dim; d++ {
			if t.BoxesMin[i][d] < gmin[d] {
				gmin[d] = t.BoxesMin[i][d]
			}
			if t.BoxesMax[i][d] > gmax[d] {
				gmax[d] = t.BoxesMax[i][d]
			}
		}
	}

	side := float64(int(1)<<uint(hilbertOrder) - 1)
	keys := make([]uint64, n)
	for i := 0; i < n; i++ {
		point := make([]int, t.Dim)
		for d := 0; d < t.Dim; d++ {
			center := 0.5 * (t.BoxesMin[i][d] + t.BoxesMax[i][d])
			span := gmax[d] - gmin[d]
			var u float64
			if span > 0 {
				u = (center - gmin[d]) / span
			}
			v := utl.Imax(0, utl.Imin(int(side), int(u*side)))
			point[d] = v
		}
		h, err := hilbert.IndexAt(t.Dim, hilbertOrder, point)
		if err != nil {
			return err
		}
		keys[i] = h
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sortByKey(order, keys)

	boxesMin := make([][]float64, n, n*2)
	boxesMax := make([][]float64, n, n*2)
	indices := make([]int, n, n*2)
	for i, orig := range order {
		boxesMin[i] = t.BoxesMin[orig]
		boxesMax[i] = t.BoxesMax[orig]
		indices[i] = orig
	}

	levelBounds := []int{n}
	levelStart, levelCount := 0, n
	for levelCount > 1 {
		nextCount := (levelCount + t.NodeSize - 1) / t.NodeSize
		for g := 0; g < nextCount; g++ {
			childStart := levelStart + g*t.NodeSize
			childEnd := utl.Imin(childStart+t.NodeSize, levelStart+levelCount)
			pmin := append([]float64{}, boxesMin[childStart]...)
			pmax := append([]float64{}, boxesMax[childStart]...)
			for c := childStart + 1; c < childEnd; c++ {
				for d := 0; d < t.Dim; d++ {
					if boxesMin[c][d] < pmin[d] {
						pmin[d] = boxesMin[c][d]
					}
					if boxesMax[c][d] > pmax[d] {
						pmax[d] = boxesMax[c][d]
					}
				}
			}
			boxesMin = append(boxesMin, pmin)
			boxesMax = append(boxesMax, pmax)
			indices = append(indices, childStart)
		}
		levelStart += levelCount
		levelCount = nextCount
		levelBounds = append(levelBounds, levelStart+levelCount)
	}

	t.BoxesMin = boxesMin
	t.BoxesMax = boxesMax
	t.Indices = indices
	t.levelBounds = levelBounds
	return nil
}

func sortByKey(order []int, keys []uint64) {
	// insertion sort is adequate: called once per Finish, n bounded by
	// the number of tessellation segments/leaves of a single geometry
	for i := 1; i < len(order); i++ {
		j := i
		for j > 0 && keys[order[j-1]] > keys[order[j]] {
			order[j-1], order[j] = order[j], order[j-1]
			j--
		}
	}
}

// root returns the index of the root node (the last box), or -1 for an
// empty tree.
func (t *Tree) root() int { return len(t.BoxesMin) - 1 }

func (t *Tree) isLeaf(node int) bool { return node < t.NbItems }

// childRange returns the [start,end) range of node's children in the
// flat arrays.
func (t *Tree) childRange(node int) (start, end int) {
	start = t.Indices[node]
	end = start + t.NodeSize
	for _, bound := range t.levelBounds {
		if start < bound {
			if end > bound {
				end = bound
			}
			break
		}
	}
	return
}

func overlaps(aMin, aMax, bMin, bMax []float64) bool {
	for d := range aMin {
		if aMax[d] < bMin[d] || aMin[d] > bMax[d] {
			return false
		}
	}
	return true
}

// Search returns the original insertion indices of all leaves whose box
// overlaps [min,max], optionally restricted by filter (nil accepts all).
// Traversal order is unspecified.
func (t *Tree) Search(min, max []float64, filter func(int) bool) []int {
	if t.NbItems == 0 {
		return nil
	}
	var out []int
	stack := []int{t.root()}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !overlaps(min, max, t.BoxesMin[node], t.BoxesMax[node]) {
			continue
		}
		if t.isLeaf(node) {
			idx := t.Indices[node]
			if filter == nil || filter(idx) {
				out = append(out, idx)
			}
			continue
		}
		start, end := t.childRange(node)
		for c := start; c < end; c++ {
			stack = append(stack, c)
		}
	}
	return out
}

// SearchRayIntersection returns the original insertion indices of all
// leaves whose box is crossed by the ray from origin along direction
// (not required to be normalized; only the forward half-line t>=0 is
// considered). A zero component of direction is treated as parallel to
// that axis: the ray only intersects boxes whose slab on that axis
// contains origin. Traversal order is unspecified.
func (t *Tree) SearchRayIntersection(origin, direction []float64, filter func(int) bool) []int {
	if t.NbItems == 0 {
		return nil
	}
	var out []int
	stack := []int{t.root()}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !raySlabHit(origin, direction, t.BoxesMin[node], t.BoxesMax[node]) {
			continue
		}
		if t.isLeaf(node) {
			idx := t.Indices[node]
			if filter == nil || filter(idx) {
				out = append(out, idx)
			}
			continue
		}
		start, end := t.childRange(node)
		for c := start; c < end; c++ {
			stack = append(stack, c)
		}
	}
	return out
}

func raySlabHit(origin, direction, boxMin, boxMax []float64) bool {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	for d := range origin {
		if direction[d] == 0 {
			if origin[d] < boxMin[d] || origin[d] > boxMax[d] {
				return false
			}
			continue
		}
		invD := 1 / direction[d]
		t1 := (boxMin[d] - origin[d]) * invD
		t2 := (boxMax[d] - origin[d]) * invD
		if invD < 0 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return false
		}
	}
	return tmax >= 0 && tmax >= tmin
}
