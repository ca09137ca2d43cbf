// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hubbard

import (
	"github.com/cpmech/gosl/chk"

	"github.com/jl-wynen/isle/internal/linalg"
)

// Warm primes the lazy K^-1 / log det K^-1 caches for both species. The
// contract with callers is to call Warm once after
// construction and treat the matrix as read-only for the rest of a
// Monte-Carlo run; concurrent Eval/Force calls are only safe once the
// caches are warm.
func (h *FermiMatrix) Warm() error {
	for _, s := range []Species{Particle, Hole} {
		if _, err := h.Kinv(s); err != nil {
			return err
		}
		if _, err := h.LogDetKinv(s); err != nil {
			return err
		}
	}
	return nil
}

// LogDetM computes log det M(phi; species) via the single-determinant
// route. It requires mu == 0; the fixed implementation used here is
// numerically unstable otherwise, so callers must pre-check (the spec's
// Non-goal: mu != 0 is not supported by this route).
func LogDetM(hfm *FermiMatrix, phi linalg.CDVec, species Species) (complex128, error) {
	if hfm.Mu() != 0 {
		return 0, chk.Err("hubbard: logdetM requires mu=0 (single-determinant route is unstable otherwise); got mu=%g", hfm.Mu())
	}
	nt, err := hfm.NtOf(phi)
	if err != nil {
		return 0, err
	}
	kinv, err := hfm.Kinv(species)
	if err != nil {
		return 0, err
	}
	logDetKinv, err := hfm.LogDetKinv(species)
	if err != nil {
		return 0, err
	}

	a := linalg.EyeC(hfm.Nx())
	for t := nt - 1; t >= 0; t-- {
		ft, ferr := hfm.F(t, phi, species, false)
		if ferr != nil {
			return 0, ferr
		}
		a = linalg.MulC(a, linalg.MulC(kinv, ft))
	}

	ldIA, err := linalg.LogDetC(linalg.AddC(linalg.EyeC(hfm.Nx()), a))
	if err != nil {
		return 0, chk.Err("hubbard: logdetM(%v) failed: %v", species, err)
	}
	return linalg.FirstLogBranch(-complex(float64(nt), 0)*logDetKinv + ldIA), nil
}

// SolveM solves M(phi; species)*x = rhs for each right-hand side in rhs,
// one dense complex LU factorisation of M shared across the batch. It
// requires mu == 0 for the same reason as LogDetM.
func SolveM(hfm *FermiMatrix, phi linalg.CDVec, species Species, rhs []linalg.CDVec) ([]linalg.CDVec, error) {
	if hfm.Mu() != 0 {
		return nil, chk.Err("hubbard: solveM requires mu=0 (single-determinant route is unstable otherwise); got mu=%g", hfm.Mu())
	}
	m, err := hfm.M(phi, species)
	if err != nil {
		return nil, err
	}
	lu, err := linalg.FactorizeC(m)
	if err != nil {
		return nil, chk.Err("hubbard: solveM failed to factorise M(%v): %v", species, err)
	}
	n, _ := m.Dims()
	b := linalg.NewCDMat(n, len(rhs))
	for k, r := range rhs {
		for i := 0; i < n; i++ {
			b.Set(i, k, r[i])
		}
	}
	x := lu.Solve(b)
	out := make([]linalg.CDVec, len(rhs))
	for k := range rhs {
		col := make(linalg.CDVec, n)
		for i := 0; i < n; i++ {
			col[i] = x.At(i, k)
		}
		out[k] = col
	}
	return out, nil
}

// ForceDirectSinglePart computes the DIRECT_SINGLE force contribution of
// one species, without the outer -i factor the caller applies. kSpecies is
// the dense complex embedding of hfm.K(species). Requires Nt >= 2 (the
// spec's DIRECT_SINGLE Non-goal).
func ForceDirectSinglePart(hfm *FermiMatrix, phi linalg.CDVec, kSpecies linalg.CDMat, species Species) (linalg.CDVec, error) {
	nx := hfm.Nx()
	nt, err := hfm.NtOf(phi)
	if err != nil {
		return nil, err
	}
	if nt < 2 {
		return nil, chk.Err("hubbard: forceDirectSinglePart requires Nt>=2; got %d", nt)
	}

	// inverse F blocks, so that the product below is the inverse of
	// LogDetM's A = prod K^-1 F(t).
	fAt := func(t int) (linalg.CDMat, error) { return hfm.F(t, phi, species, true) }

	l := make([]linalg.CDMat, nt-1)
	fLast, err := fAt(nt - 1)
	if err != nil {
		return nil, err
	}
	l[0] = linalg.MulC(fLast, kSpecies)
	for i := 1; i <= nt-2; i++ {
		fi, ferr := fAt(nt - 1 - i)
		if ferr != nil {
			return nil, ferr
		}
		l[i] = linalg.MulC(linalg.MulC(fi, kSpecies), l[i-1])
	}
	f0, err := fAt(0)
	if err != nil {
		return nil, err
	}
	aInv := linalg.MulC(linalg.MulC(f0, kSpecies), l[nt-2])

	lu, err := linalg.FactorizeC(linalg.AddC(linalg.EyeC(nx), aInv))
	if err != nil {
		return nil, chk.Err("hubbard: forceDirectSinglePart(%v) failed factorising I+Ainv: %v", species, err)
	}
	r := lu.Inverse()

	force := make(linalg.CDVec, nx*nt)
	setSpacevec(force, nt-1, nx, nt, diag(linalg.MulC(aInv, r)))

	for tau := 0; tau <= nt-2; tau++ {
		ftau, ferr := fAt(tau)
		if ferr != nil {
			return nil, ferr
		}
		r = linalg.MulC(linalg.MulC(r, ftau), kSpecies)
		setSpacevec(force, tau, nx, nt, diag(linalg.MulC(l[nt-2-tau], r)))
	}
	return force, nil
}

// ForceDirectSquare computes the DIRECT_SQUARE force via the Schur form Q,
// reusing the QLU block sweeps to build Q^-1 column by column rather than
// inverting the assembled dense Q.
func ForceDirectSquare(hfm *FermiMatrix, phi linalg.CDVec) (linalg.CDVec, error) {
	nx := hfm.Nx()
	nt, err := hfm.NtOf(phi)
	if err != nil {
		return nil, err
	}
	lu, err := FactorizeQ(hfm, phi)
	if err != nil {
		return nil, err
	}

	n := nx * nt
	qinv := linalg.NewCDMat(n, n)
	for k := 0; k < n; k++ {
		e := make(linalg.CDVec, n)
		e[k] = 1
		col, serr := SolveQ(lu, e)
		if serr != nil {
			return nil, serr
		}
		for row := 0; row < n; row++ {
			qinv.Set(row, k, col[row])
		}
	}

	force := make(linalg.CDVec, n)
	for tau := 0; tau < nt; tau++ {
		taup := LoopIdx(tau+1, nt)
		tplus, terr := hfm.Tplus(taup, phi)
		if terr != nil {
			return nil, terr
		}
		tminus, terr := hfm.Tminus(tau, phi)
		if terr != nil {
			return nil, terr
		}
		q1 := spacemat(qinv, tau, taup, nx, nt)
		q2 := spacemat(qinv, taup, tau, nx, nt)

		var term1, term2 linalg.CDMat
		if hfm.Hop() == Dia {
			term1 = linalg.MulC(tplus, q1)
			term2 = linalg.MulC(q2, tminus)
		} else {
			term1 = linalg.MulC(q1, tplus)
			term2 = linalg.MulC(tminus, q2)
		}

		d1, d2 := diag(term1), diag(term2)
		vals := make(linalg.CDVec, nx)
		for x := 0; x < nx; x++ {
			vals[x] = complex(0, 1)*d1[x] - complex(0, 1)*d2[x]
		}
		setSpacevec(force, tau, nx, nt, vals)
	}
	return force, nil
}
