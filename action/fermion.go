// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package action

import (
	"log"

	"github.com/cpmech/gosl/chk"

	"github.com/jl-wynen/isle/internal/linalg"
	"github.com/jl-wynen/isle/mdl/hubbard"
)

// Lattice is the minimal geometry a driver supplies: a symmetric,
// zero-diagonal hopping matrix and a time-slice count.
type Lattice interface {
	Hopping() linalg.DMat
	Nt() int
}

// HubbardFermiAction is one of the eight (HOP, ALG, BASIS) instantiations of
// the fermion action. It owns a hubbard.FermiMatrix by value (in the sense
// that nothing outside this package can reach into it) and is effectively
// constant after construction: updateKappa/updateMu on the underlying
// matrix are deliberately not exposed here.
type HubbardFermiAction struct {
	hfm              *hubbard.FermiMatrix
	kp, kh           linalg.CDMat
	shortcutForHoles bool
	variant          hubbard.Variant
	basis            hubbard.Basis
}

// NewHubbardFermiAction builds the fermion action for kappaTilde (already
// scaled by beta/Nt), mu, sigmaKappa and the three selector enums.
func NewHubbardFermiAction(
	kappaTilde linalg.DMat,
	mu, sigmaKappa float64,
	hop hubbard.Hopping,
	basis hubbard.Basis,
	variant hubbard.Variant,
) (*HubbardFermiAction, error) {
	hfm, err := hubbard.New(kappaTilde, mu, sigmaKappa, hop)
	if err != nil {
		return nil, err
	}

	shortcut := basis == hubbard.ParticleHole &&
		mu == 0 &&
		sigmaKappa == 1 &&
		hubbard.IsBipartite(kappaTilde)

	if basis == hubbard.ParticleHole {
		reason := ""
		switch {
		case mu != 0:
			reason = "mu != 0"
		case sigmaKappa != 1:
			reason = "sigmaKappa != +1"
		case !hubbard.IsBipartite(kappaTilde):
			reason = "kappa is not bipartite"
		}
		if reason != "" {
			log.Printf("action: hole shortcut disabled (%s); using the full two-determinant route", reason)
		}
	}

	return &HubbardFermiAction{
		hfm:              hfm,
		kp:               linalg.ToComplex(hfm.K(hubbard.Particle)),
		kh:               linalg.ToComplex(hfm.K(hubbard.Hole)),
		shortcutForHoles: shortcut,
		variant:          variant,
		basis:            basis,
	}, nil
}

// NewHubbardFermiActionFromLattice computes kappaTilde = hopping(lattice) *
// beta/Nt(lattice) and delegates to NewHubbardFermiAction.
func NewHubbardFermiActionFromLattice(
	lat Lattice,
	beta, mu, sigmaKappa float64,
	hop hubbard.Hopping,
	basis hubbard.Basis,
	variant hubbard.Variant,
) (*HubbardFermiAction, error) {
	nt := lat.Nt()
	if nt <= 0 {
		return nil, chk.Err("action: lattice Nt must be positive; got %d", nt)
	}
	kappa := lat.Hopping()
	r, c := kappa.Dims()
	kappaTilde := linalg.NewDMat(r, c)
	kappaTilde.Scale(beta/float64(nt), kappa)
	return NewHubbardFermiAction(kappaTilde, mu, sigmaKappa, hop, basis, variant)
}

func scaleByMinusI(phi linalg.CDVec) linalg.CDVec {
	out := make(linalg.CDVec, len(phi))
	for i, p := range phi {
		out[i] = complex(0, -1) * p
	}
	return out
}

// Eval implements Action.
func (a *HubbardFermiAction) Eval(phi linalg.CDVec) (complex128, error) {
	switch {
	case a.variant == hubbard.DirectSingle && a.basis == hubbard.ParticleHole:
		ldp, err := hubbard.LogDetM(a.hfm, phi, hubbard.Particle)
		if err != nil {
			return 0, err
		}
		if a.shortcutForHoles {
			return -linalg.FirstLogBranch(ldp + complexConj(ldp)), nil
		}
		ldh, err := hubbard.LogDetM(a.hfm, phi, hubbard.Hole)
		if err != nil {
			return 0, err
		}
		return -linalg.FirstLogBranch(ldp + ldh), nil

	case a.variant == hubbard.DirectSingle && a.basis == hubbard.Spin:
		aux := scaleByMinusI(phi)
		ldp, err := hubbard.LogDetM(a.hfm, aux, hubbard.Particle)
		if err != nil {
			return 0, err
		}
		ldh, err := hubbard.LogDetM(a.hfm, aux, hubbard.Hole)
		if err != nil {
			return 0, err
		}
		return -linalg.FirstLogBranch(ldp + ldh), nil

	case a.variant == hubbard.DirectSquare && a.basis == hubbard.ParticleHole:
		lu, err := hubbard.FactorizeQ(a.hfm, phi)
		if err != nil {
			return 0, err
		}
		ld, err := hubbard.LogDetQ(lu)
		if err != nil {
			return 0, err
		}
		return -ld, nil

	case a.variant == hubbard.DirectSquare && a.basis == hubbard.Spin:
		aux := scaleByMinusI(phi)
		lu, err := hubbard.FactorizeQ(a.hfm, aux)
		if err != nil {
			return 0, err
		}
		ld, err := hubbard.LogDetQ(lu)
		if err != nil {
			return 0, err
		}
		return -ld, nil
	}
	return 0, chk.Err("action: unreachable HubbardFermiAction variant/basis combination")
}

// Force implements Action.
func (a *HubbardFermiAction) Force(phi linalg.CDVec) (linalg.CDVec, error) {
	switch {
	case a.variant == hubbard.DirectSingle && a.basis == hubbard.ParticleHole:
		fp, err := hubbard.ForceDirectSinglePart(a.hfm, phi, a.kp, hubbard.Particle)
		if err != nil {
			return nil, err
		}
		var diff linalg.CDVec
		if a.shortcutForHoles {
			diff = make(linalg.CDVec, len(fp))
			for i, v := range fp {
				diff[i] = v - complexConj(v)
			}
		} else {
			fh, ferr := hubbard.ForceDirectSinglePart(a.hfm, phi, a.kh, hubbard.Hole)
			if ferr != nil {
				return nil, ferr
			}
			diff = make(linalg.CDVec, len(fp))
			for i := range fp {
				diff[i] = fp[i] - fh[i]
			}
		}
		out := make(linalg.CDVec, len(diff))
		for i, v := range diff {
			out[i] = complex(0, -1) * v
		}
		return out, nil

	case a.variant == hubbard.DirectSingle && a.basis == hubbard.Spin:
		aux := scaleByMinusI(phi)
		fh, err := hubbard.ForceDirectSinglePart(a.hfm, aux, a.kh, hubbard.Hole)
		if err != nil {
			return nil, err
		}
		fp, err := hubbard.ForceDirectSinglePart(a.hfm, aux, a.kp, hubbard.Particle)
		if err != nil {
			return nil, err
		}
		out := make(linalg.CDVec, len(fh))
		for i := range fh {
			out[i] = fh[i] - fp[i]
		}
		return out, nil

	case a.variant == hubbard.DirectSquare && a.basis == hubbard.ParticleHole:
		return hubbard.ForceDirectSquare(a.hfm, phi)

	case a.variant == hubbard.DirectSquare && a.basis == hubbard.Spin:
		aux := scaleByMinusI(phi)
		f, err := hubbard.ForceDirectSquare(a.hfm, aux)
		if err != nil {
			return nil, err
		}
		out := make(linalg.CDVec, len(f))
		for i, v := range f {
			out[i] = complex(0, -1) * v
		}
		return out, nil
	}
	return nil, chk.Err("action: unreachable HubbardFermiAction variant/basis combination")
}

func complexConj(z complex128) complex128 {
	return complex(real(z), -imag(z))
}
