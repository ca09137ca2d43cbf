// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hubbard

import (
	"math/cmplx"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/jl-wynen/isle/internal/linalg"
)

func Test_solvem_matches_m01(tst *testing.T) {

	chk.PrintTitle("solvem_matches_m01")

	nx, nt := 3, 4
	kappa := randKappa(nx, 123)
	hfm, err := New(kappa, 0, 1, Dia)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	phi := randPhi(nx*nt, 456)

	m, err := hfm.M(phi, Particle)
	if err != nil {
		tst.Fatalf("M failed: %v", err)
	}

	rhs := []linalg.CDVec{randPhi(nx*nt, 1), randPhi(nx*nt, 2)}
	x, err := SolveM(hfm, phi, Particle, rhs)
	if err != nil {
		tst.Fatalf("SolveM failed: %v", err)
	}
	if len(x) != len(rhs) {
		tst.Fatalf("SolveM returned %d solutions, want %d", len(x), len(rhs))
	}

	for k := range rhs {
		got := linalg.MatVecC(m, x[k])
		worst := 0.0
		for i := range rhs[k] {
			d := cmplx.Abs(got[i] - rhs[k][i])
			if d > worst {
				worst = d
			}
		}
		if worst > 1e-8 {
			tst.Errorf("rhs %d: M*solveM(rhs) != rhs, worst component diff=%v", k, worst)
		}
	}
}

func Test_solvem_rejects_nonzero_mu01(tst *testing.T) {

	chk.PrintTitle("solvem_rejects_nonzero_mu01")

	kappa := twoSiteKappa()
	hfm, err := New(kappa, 0.3, 1, Dia)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	phi := randPhi(2*2, 9)
	if _, err := SolveM(hfm, phi, Particle, []linalg.CDVec{phi}); err == nil {
		tst.Errorf("SolveM should reject mu!=0")
	}
}

func twoSiteKappa() linalg.DMat {
	k := linalg.NewDMat(2, 2)
	k.Set(0, 1, 1)
	k.Set(1, 0, 1)
	return k
}
