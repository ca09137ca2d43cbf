// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hubbard

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/cmplxs"

	"github.com/jl-wynen/isle/internal/linalg"
)

// QLU is a block LU decomposition of the block-cyclic Schur matrix Q,
// tailored to Q's structure: block-tridiagonal plus a wraparound block in
// the top-right and bottom-left corners. dinv holds the pivot blocks
// *inverted* (U's diagonal, stored pre-inverted so solves never refactor
// them); u/l are the usual off-diagonal blocks; v/h are the extra
// fill-in blocks carrying the periodic wrap. A QLU is consistent iff
// len(u)==len(l)==len(dinv)-1 and len(v)==len(h)==max(len(dinv)-2,0).
type QLU struct {
	nx, nt int
	dinv   []linalg.CDMat
	u, l   []linalg.CDMat
	v, h   []linalg.CDMat
}

// Nt is the number of time slices this decomposition was built for.
func (lu *QLU) Nt() int { return lu.nt }

// FactorizeQ computes the block LU decomposition of Q(phi) for hfm,
// following the three size-dependent code paths in the spec: Nt=1, Nt=2,
// and the general Nt>=3 recursion.
func FactorizeQ(hfm *FermiMatrix, phi linalg.CDVec) (*QLU, error) {
	nt, err := hfm.NtOf(phi)
	if err != nil {
		return nil, err
	}
	nx := hfm.Nx()
	pC := linalg.ToComplex(hfm.P())

	lu := &QLU{nx: nx, nt: nt}

	switch {
	case nt == 1:
		tp, err := hfm.Tplus(0, phi)
		if err != nil {
			return nil, err
		}
		tm, err := hfm.Tminus(0, phi)
		if err != nil {
			return nil, err
		}
		d0 := linalg.AddC(linalg.AddC(pC, tp), tm)
		dinv0, err := linalg.InverseC(d0)
		if err != nil {
			return nil, chk.Err("hubbard: QLU factorisation failed at Nt=1: %v", err)
		}
		lu.dinv = []linalg.CDMat{dinv0}

	case nt == 2:
		pInv, err := linalg.InverseC(pC)
		if err != nil {
			return nil, chk.Err("hubbard: QLU factorisation failed inverting P: %v", err)
		}
		tp0, err := hfm.Tplus(0, phi)
		if err != nil {
			return nil, err
		}
		tm0, err := hfm.Tminus(0, phi)
		if err != nil {
			return nil, err
		}
		tp1, err := hfm.Tplus(1, phi)
		if err != nil {
			return nil, err
		}
		tm1, err := hfm.Tminus(1, phi)
		if err != nil {
			return nil, err
		}
		u0 := linalg.AddC(tp0, tm0)
		l0 := linalg.MulC(linalg.AddC(tp1, tm1), pInv)
		d1 := linalg.SubC(pC, linalg.MulC(l0, u0))
		dinv1, err := linalg.InverseC(d1)
		if err != nil {
			return nil, chk.Err("hubbard: QLU factorisation failed at Nt=2: %v", err)
		}
		lu.dinv = []linalg.CDMat{pInv, dinv1}
		lu.u = []linalg.CDMat{u0}
		lu.l = []linalg.CDMat{l0}

	case nt >= 3:
		dinv := make([]linalg.CDMat, nt)
		u := make([]linalg.CDMat, nt-1)
		l := make([]linalg.CDMat, nt-1)
		v := make([]linalg.CDMat, nt-2)
		hh := make([]linalg.CDMat, nt-2)

		tplus := func(t int) (linalg.CDMat, error) { return hfm.Tplus(t, phi) }
		tminus := func(t int) (linalg.CDMat, error) { return hfm.Tminus(t, phi) }

		pInv, err := linalg.InverseC(pC)
		if err != nil {
			return nil, chk.Err("hubbard: QLU factorisation failed inverting P: %v", err)
		}
		dinv[0] = pInv
		if u[0], err = tminus(0); err != nil {
			return nil, err
		}
		tp1, err := tplus(1)
		if err != nil {
			return nil, err
		}
		l[0] = linalg.MulC(tp1, dinv[0])
		if v[0], err = tplus(0); err != nil {
			return nil, err
		}
		tmLast, err := tminus(nt - 1)
		if err != nil {
			return nil, err
		}
		hh[0] = linalg.MulC(tmLast, dinv[0])

		for i := 1; i <= nt-3; i++ {
			di := linalg.SubC(pC, linalg.MulC(l[i-1], u[i-1]))
			dinv[i], err = linalg.InverseC(di)
			if err != nil {
				return nil, chk.Err("hubbard: QLU factorisation failed at block %d: %v", i, err)
			}
			tpi1, err := tplus(i + 1)
			if err != nil {
				return nil, err
			}
			l[i] = linalg.MulC(tpi1, dinv[i])
			hh[i] = linalg.ScaleC(-1, linalg.MulC(linalg.MulC(hh[i-1], u[i-1]), dinv[i]))
			v[i] = linalg.ScaleC(-1, linalg.MulC(l[i-1], v[i-1]))
			if u[i], err = tminus(i); err != nil {
				return nil, err
			}
		}

		dNm2 := linalg.SubC(pC, linalg.MulC(l[nt-3], u[nt-3]))
		dinv[nt-2], err = linalg.InverseC(dNm2)
		if err != nil {
			return nil, chk.Err("hubbard: QLU factorisation failed at block %d: %v", nt-2, err)
		}
		tmNm2, err := tminus(nt - 2)
		if err != nil {
			return nil, err
		}
		u[nt-2] = linalg.SubC(tmNm2, linalg.MulC(l[nt-3], v[nt-3]))
		tpNm1, err := tplus(nt - 1)
		if err != nil {
			return nil, err
		}
		l[nt-2] = linalg.MulC(linalg.SubC(tpNm1, linalg.MulC(hh[nt-3], u[nt-3])), dinv[nt-2])

		dLast := linalg.SubC(pC, linalg.MulC(l[nt-2], u[nt-2]))
		for j := 0; j <= nt-3; j++ {
			dLast = linalg.SubC(dLast, linalg.MulC(hh[j], v[j]))
		}
		dinv[nt-1], err = linalg.InverseC(dLast)
		if err != nil {
			return nil, chk.Err("hubbard: QLU factorisation failed at final block: %v", err)
		}

		lu.dinv, lu.u, lu.l, lu.v, lu.h = dinv, u, l, v, hh
	}
	return lu, nil
}

// LogDetQ returns log det Q = firstLogBranch(-sum_i logdet(dinv_i)), the
// minus sign undoing the fact that dinv stores each pivot block inverted.
func LogDetQ(lu *QLU) (complex128, error) {
	var sum complex128
	for i, d := range lu.dinv {
		ld, err := linalg.LogDetC(d)
		if err != nil {
			return 0, chk.Err("hubbard: logdetQ failed at block %d: %v", i, err)
		}
		sum += ld
	}
	return linalg.FirstLogBranch(-sum), nil
}

// SolveQ solves Q*x = rhs via the two block sweeps (forward L, backward U).
func SolveQ(lu *QLU, rhs linalg.CDVec) (linalg.CDVec, error) {
	nx, nt := lu.nx, lu.nt
	if len(rhs) != nx*nt {
		return nil, chk.Err("hubbard: solveQ rhs has length %d, want %d", len(rhs), nx*nt)
	}
	b := make([]linalg.CDVec, nt)
	for t := 0; t < nt; t++ {
		b[t] = spacevec(rhs, t, nx, nt)
	}

	negMatVec := func(a linalg.CDMat, v linalg.CDVec) linalg.CDVec {
		r := linalg.MatVecC(a, v)
		cmplxs.Scale(-1, r)
		return r
	}

	y := make([]linalg.CDVec, nt)
	y[0] = b[0]
	for i := 1; i < nt-1; i++ {
		yi := make(linalg.CDVec, nx)
		cmplxs.AddTo(yi, b[i], negMatVec(lu.l[i-1], y[i-1]))
		y[i] = yi
	}
	if nt > 1 {
		acc := make(linalg.CDVec, nx)
		for j := 0; j <= nt-3; j++ {
			cmplxs.Add(acc, linalg.MatVecC(lu.h[j], y[j]))
		}
		cmplxs.Add(acc, linalg.MatVecC(lu.l[nt-2], y[nt-2]))
		cmplxs.Scale(-1, acc)
		last := make(linalg.CDVec, nx)
		cmplxs.AddTo(last, b[nt-1], acc)
		y[nt-1] = last
	}

	x := make([]linalg.CDVec, nt)
	x[nt-1] = linalg.MatVecC(lu.dinv[nt-1], y[nt-1])
	if nt > 1 {
		inner := make(linalg.CDVec, nx)
		cmplxs.AddTo(inner, y[nt-2], negMatVec(lu.u[nt-2], x[nt-1]))
		x[nt-2] = linalg.MatVecC(lu.dinv[nt-2], inner)
		for i := nt - 3; i >= 0; i-- {
			term := make(linalg.CDVec, nx)
			cmplxs.AddTo(term, y[i], negMatVec(lu.u[i], x[i+1]))
			cmplxs.Add(term, negMatVec(lu.v[i], x[nt-1]))
			x[i] = linalg.MatVecC(lu.dinv[i], term)
		}
	}

	out := make(linalg.CDVec, nx*nt)
	for t := 0; t < nt; t++ {
		setSpacevec(out, t, nx, nt, x[t])
	}
	return out, nil
}

// lEntries returns the (column, block) pairs where block-row p of L is
// nonzero: the unit diagonal, the l sub-diagonal, and (on the last row
// only) the h wraparound fill blocks.
func (lu *QLU) lEntries(p int) []struct {
	k     int
	block linalg.CDMat
} {
	nt := lu.nt
	entries := []struct {
		k     int
		block linalg.CDMat
	}{{p, linalg.EyeC(lu.nx)}}
	if p >= 1 {
		entries = append(entries, struct {
			k     int
			block linalg.CDMat
		}{p - 1, lu.l[p-1]})
	}
	if p == nt-1 {
		for j := 0; j <= nt-3; j++ {
			entries = append(entries, struct {
				k     int
				block linalg.CDMat
			}{j, lu.h[j]})
		}
	}
	return entries
}

// uEntries returns the (column, block) pairs where block-row k of U is
// nonzero: the (inverted-then-reinverted) diagonal, the u super-diagonal,
// and (for early rows) the v wraparound fill blocks.
func (lu *QLU) uEntries(k int) ([]struct {
	q     int
	block linalg.CDMat
}, error) {
	nt := lu.nt
	d, err := linalg.InverseC(lu.dinv[k])
	if err != nil {
		return nil, chk.Err("hubbard: reconstruct failed re-inverting dinv[%d]: %v", k, err)
	}
	entries := []struct {
		q     int
		block linalg.CDMat
	}{{k, d}}
	if k <= nt-2 {
		entries = append(entries, struct {
			q     int
			block linalg.CDMat
		}{k + 1, lu.u[k]})
	}
	if k <= nt-3 {
		entries = append(entries, struct {
			q     int
			block linalg.CDMat
		}{nt - 1, lu.v[k]})
	}
	return entries, nil
}

// Reconstruct assembles Q from its LU factors; an exact algebraic identity
// used for validation, not on the hot evaluation path.
func Reconstruct(lu *QLU) (linalg.CDMat, error) {
	if lu.nt < 1 {
		return nil, chk.Err("hubbard: reconstruct requires Nt>=1; got %d", lu.nt)
	}
	n := lu.nx * lu.nt
	out := linalg.NewCDMat(n, n)
	for p := 0; p < lu.nt; p++ {
		for _, le := range lu.lEntries(p) {
			ue, err := lu.uEntries(le.k)
			if err != nil {
				return nil, err
			}
			for _, u := range ue {
				prod := linalg.MulC(le.block, u.block)
				addBlock(out, p, u.q, lu.nt, prod)
			}
		}
	}
	return out, nil
}

// addBlock accumulates an Nx x Nx block into out at block-row bi, block-
// column bj (time-slice indices), placing entries at the spacetime-
// interleaved flat positions a*nt+bi, b*nt+bj to match PutBlock and the
// i*Nt+t layout used by spacetimeCoord/SolveQ.
func addBlock(out linalg.CDMat, bi, bj, nt int, block linalg.CDMat) {
	r, c := block.Dims()
	for a := 0; a < r; a++ {
		for b := 0; b < c; b++ {
			out.Set(a*nt+bi, b*nt+bj, out.At(a*nt+bi, b*nt+bj)+block.At(a, b))
		}
	}
}
