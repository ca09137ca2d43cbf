// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package action

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/jl-wynen/isle/internal/linalg"
	"github.com/jl-wynen/isle/mdl/hubbard"
)

type fakeLattice struct {
	hopping linalg.DMat
	nt      int
}

func (l *fakeLattice) Hopping() linalg.DMat { return l.hopping }
func (l *fakeLattice) Nt() int              { return l.nt }

func Test_factory_all_eight_variants01(tst *testing.T) {

	chk.PrintTitle("factory_all_eight_variants01")

	kappa := twoSiteChain()
	for _, hop := range []hubbard.Hopping{hubbard.Dia, hubbard.Exp} {
		for _, basis := range []hubbard.Basis{hubbard.ParticleHole, hubbard.Spin} {
			for _, variant := range []hubbard.Variant{hubbard.DirectSingle, hubbard.DirectSquare} {
				a, err := MakeHubbardFermiAction(kappa, 0, 1, hop, basis, variant)
				if err != nil {
					tst.Errorf("MakeHubbardFermiAction(%v,%v,%v) failed: %v", hop, variant, basis, err)
					continue
				}
				if a == nil {
					tst.Errorf("MakeHubbardFermiAction(%v,%v,%v) returned nil", hop, variant, basis)
				}
			}
		}
	}
}

func Test_factory_from_lattice01(tst *testing.T) {

	chk.PrintTitle("factory_from_lattice01")

	lat := &fakeLattice{hopping: twoSiteChain(), nt: 4}
	beta := 2.0

	a, err := MakeHubbardFermiActionFromLattice(lat, beta, 0, 1, DefaultHop, DefaultBasis, DefaultVariant)
	if err != nil {
		tst.Fatalf("MakeHubbardFermiActionFromLattice failed: %v", err)
	}

	direct, err := NewHubbardFermiAction(scaledKappa(lat.hopping, beta/float64(lat.nt)), 0, 1, DefaultHop, DefaultBasis, DefaultVariant)
	if err != nil {
		tst.Fatalf("NewHubbardFermiAction failed: %v", err)
	}

	phi := smallPhi(2*lat.nt, 5, 0.1)
	s1, err := a.Eval(phi)
	if err != nil {
		tst.Fatalf("a.Eval failed: %v", err)
	}
	s2, err := direct.Eval(phi)
	if err != nil {
		tst.Fatalf("direct.Eval failed: %v", err)
	}
	if s1 != s2 {
		tst.Errorf("lattice factory S=%v != directly-scaled-kappa S=%v", s1, s2)
	}
}

func scaledKappa(kappa linalg.DMat, factor float64) linalg.DMat {
	r, c := kappa.Dims()
	out := linalg.NewDMat(r, c)
	out.Scale(factor, kappa)
	return out
}
