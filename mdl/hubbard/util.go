// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hubbard

import (
	"github.com/cpmech/gosl/chk"

	"github.com/jl-wynen/isle/internal/linalg"
)

// LoopIdx implements periodicity: loopIdx(i, N) = i mod N, always
// non-negative.
func LoopIdx(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// spacetimeCoord maps the spatial site x and time slice t to the flat
// spacetime index used to lay out phi: i*Nt + t.
func spacetimeCoord(x, t, nt int) int {
	return x*nt + t
}

// spacevec extracts the length-Nx spatial slice of v at time t.
func spacevec(v linalg.CDVec, t, nx, nt int) linalg.CDVec {
	out := make(linalg.CDVec, nx)
	for x := 0; x < nx; x++ {
		out[x] = v[spacetimeCoord(x, t, nt)]
	}
	return out
}

// setSpacevec writes a length-Nx spatial slice into v at time t.
func setSpacevec(v linalg.CDVec, t, nx, nt int, s linalg.CDVec) {
	for x := 0; x < nx; x++ {
		v[spacetimeCoord(x, t, nt)] = s[x]
	}
}

// spacemat extracts the Nx x Nx block at block-row t1, block-column t2 of a
// (Nx*Nt) x (Nx*Nt) matrix M laid out with the same i*Nt+t convention.
func spacemat(m linalg.CDMat, t1, t2, nx, nt int) linalg.CDMat {
	out := linalg.NewCDMat(nx, nx)
	for a := 0; a < nx; a++ {
		for b := 0; b < nx; b++ {
			out.Set(a, b, m.At(spacetimeCoord(a, t1, nt), spacetimeCoord(b, t2, nt)))
		}
	}
	return out
}

// checkPhiShape validates that phi's length is an exact multiple of nx and
// returns the inferred number of time slices.
func checkPhiShape(nx, lenPhi int) (nt int, err error) {
	if nx <= 0 {
		return 0, chk.Err("hubbard: Nx must be positive; got %d", nx)
	}
	if lenPhi%nx != 0 {
		return 0, chk.Err("hubbard: len(phi)=%d is not a multiple of Nx=%d", lenPhi, nx)
	}
	return lenPhi / nx, nil
}

// diag extracts the diagonal of a square complex dense matrix into a CDVec.
func diag(m linalg.CDMat) linalg.CDVec {
	n, _ := m.Dims()
	out := make(linalg.CDVec, n)
	for i := 0; i < n; i++ {
		out[i] = m.At(i, i)
	}
	return out
}
