// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"gonum.org/v1/gonum/mat"
)

// CTriplet is a sparse complex matrix in coordinate (COO) form, in the style
// of github.com/cpmech/gosl/la.Triplet: entries are pushed with Put and later
// consolidated into a dense matrix.
type CTriplet struct {
	m, n int
	i, j []int
	x    []complex128
}

// NewCTriplet allocates a complex triplet for an m x n matrix with room for max entries.
func NewCTriplet(m, n, max int) *CTriplet {
	return &CTriplet{m: m, n: n, i: make([]int, 0, max), j: make([]int, 0, max), x: make([]complex128, 0, max)}
}

// Put appends one entry.
func (t *CTriplet) Put(i, j int, x complex128) {
	t.i = append(t.i, i)
	t.j = append(t.j, j)
	t.x = append(t.x, x)
}

// PutBlock copies a dense Nx x Nx block into the triplet at block-row bi,
// block-column bj, where bi/bj index time slices and the block's own
// row/column a/b index spatial sites. nt is the number of time slices, so the
// entries land at the spacetime-interleaved flat positions a*nt+bi, b*nt+bj
// (the i*Nt+t layout used throughout mdl/hubbard), not at contiguous
// bi*Nx+a offsets.
func (t *CTriplet) PutBlock(bi, bj, nt int, block CDMat) {
	r, c := block.Dims()
	for a := 0; a < r; a++ {
		for b := 0; b < c; b++ {
			v := block.At(a, b)
			if v == 0 {
				continue
			}
			t.Put(a*nt+bi, b*nt+bj, v)
		}
	}
}

// ToDense consolidates the triplet into a dense complex matrix.
func (t *CTriplet) ToDense() CDMat {
	out := mat.NewCDense(t.m, t.n, nil)
	for k := range t.x {
		out.Set(t.i[k], t.j[k], out.At(t.i[k], t.j[k])+t.x[k])
	}
	return out
}
