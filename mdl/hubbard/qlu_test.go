// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hubbard

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/jl-wynen/isle/internal/linalg"
)

func randKappa(n int, seed int64) linalg.DMat {
	r := rand.New(rand.NewSource(seed))
	k := linalg.NewDMat(n, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := r.Float64() - 0.5
			k.Set(i, j, v)
			k.Set(j, i, v)
		}
	}
	return k
}

func randPhi(n int, seed int64) linalg.CDVec {
	r := rand.New(rand.NewSource(seed))
	phi := make(linalg.CDVec, n)
	for i := range phi {
		phi[i] = complex(r.NormFloat64()*0.3, r.NormFloat64()*0.3)
	}
	return phi
}

func matClose(a, b linalg.CDMat, tol float64) (bool, float64) {
	r, c := a.Dims()
	worst := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			d := cmplx.Abs(a.At(i, j) - b.At(i, j))
			if d > worst {
				worst = d
			}
		}
	}
	return worst <= tol, worst
}

func Test_qlu_reconstruct01(tst *testing.T) {

	chk.PrintTitle("qlu_reconstruct01")

	nx := 3
	for _, nt := range []int{1, 2, 3, 4, 5} {
		kappa := randKappa(nx, int64(100+nt))
		hfm, err := New(kappa, 0.1, 1, Dia)
		if err != nil {
			tst.Fatalf("Nt=%d: New failed: %v", nt, err)
		}
		phi := randPhi(nx*nt, int64(200+nt))

		lu, err := FactorizeQ(hfm, phi)
		if err != nil {
			tst.Fatalf("Nt=%d: FactorizeQ failed: %v", nt, err)
		}
		rec, err := Reconstruct(lu)
		if err != nil {
			tst.Fatalf("Nt=%d: Reconstruct failed: %v", nt, err)
		}
		want, err := hfm.Q(phi)
		if err != nil {
			tst.Fatalf("Nt=%d: Q failed: %v", nt, err)
		}
		if ok, worst := matClose(rec, want, 1e-9); !ok {
			tst.Errorf("Nt=%d: reconstruct(QLU) != Q, worst entry diff=%v", nt, worst)
		}
	}
}

func Test_qlu_solve01(tst *testing.T) {

	chk.PrintTitle("qlu_solve01")

	nx, nt := 3, 4
	kappa := randKappa(nx, 42)
	hfm, err := New(kappa, 0.05, -1, Exp)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	phi := randPhi(nx*nt, 7)

	lu, err := FactorizeQ(hfm, phi)
	if err != nil {
		tst.Fatalf("FactorizeQ failed: %v", err)
	}
	q, err := hfm.Q(phi)
	if err != nil {
		tst.Fatalf("Q failed: %v", err)
	}

	rhs := randPhi(nx*nt, 99)
	x, err := SolveQ(lu, rhs)
	if err != nil {
		tst.Fatalf("SolveQ failed: %v", err)
	}
	got := linalg.MatVecC(q, x)
	worst := 0.0
	for i := range rhs {
		d := cmplx.Abs(got[i] - rhs[i])
		if d > worst {
			worst = d
		}
	}
	if worst > 1e-8 {
		tst.Errorf("Q*solveQ(rhs) != rhs, worst component diff=%v", worst)
	}
}

func Test_logdetq_matches_logdetm01(tst *testing.T) {

	chk.PrintTitle("logdetq_matches_logdetm01")

	nx, nt := 2, 3
	kappa := linalg.NewDMat(nx, nx)
	kappa.Set(0, 1, 0.5)
	kappa.Set(1, 0, 0.5)

	hfm, err := New(kappa, 0, 1, Dia)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	phi := randPhi(nx*nt, 55)

	lu, err := FactorizeQ(hfm, phi)
	if err != nil {
		tst.Fatalf("FactorizeQ failed: %v", err)
	}
	ldQ, err := LogDetQ(lu)
	if err != nil {
		tst.Fatalf("LogDetQ failed: %v", err)
	}

	ldp, err := LogDetM(hfm, phi, Particle)
	if err != nil {
		tst.Fatalf("LogDetM(particle) failed: %v", err)
	}
	ldh, err := LogDetM(hfm, phi, Hole)
	if err != nil {
		tst.Fatalf("LogDetM(hole) failed: %v", err)
	}

	sum := linalg.FirstLogBranch(ldp + ldh)
	// both sides are projected onto (-pi,pi] independently, so compare modulo 2*pi*i.
	diff := ldQ - sum
	k := imag(diff) / (2 * math.Pi)
	if math.Abs(real(diff)) > 1e-7 || math.Abs(k-math.Round(k)) > 1e-6 {
		tst.Errorf("logdetQ=%v != logdetM(particle)+logdetM(hole)=%v mod 2*pi*i", ldQ, sum)
	}

	if !IsBipartite(kappa) {
		tst.Fatalf("2-site chain must be bipartite")
	}
	if cmplx.Abs(ldh-cmplx.Conj(ldp)) > 1e-7 {
		tst.Errorf("shortcut precondition met but logdetM(hole)=%v != conj(logdetM(particle))=%v", ldh, cmplx.Conj(ldp))
	}
}
