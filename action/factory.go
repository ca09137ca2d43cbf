// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package action

import (
	"github.com/cpmech/gosl/chk"

	"github.com/jl-wynen/isle/internal/linalg"
	"github.com/jl-wynen/isle/mdl/hubbard"
)

// fermionAllocatorType builds a HubbardFermiAction once the (HOP, BASIS,
// VAR) instantiation has been resolved. It mirrors the dispatch the
// fermion actions themselves use internally, exposed here only so the
// factory below stays a map lookup rather than a chain of if-statements.
type fermionAllocatorType func(kappaTilde linalg.DMat, mu, sigmaKappa float64) (*HubbardFermiAction, error)

var fermionAllocators = make(map[string]fermionAllocatorType)

func fermionKey(hop hubbard.Hopping, basis hubbard.Basis, variant hubbard.Variant) string {
	return hop.String() + "/" + variant.String() + "/" + basis.String()
}

func init() {
	for _, hop := range []hubbard.Hopping{hubbard.Dia, hubbard.Exp} {
		for _, basis := range []hubbard.Basis{hubbard.ParticleHole, hubbard.Spin} {
			for _, variant := range []hubbard.Variant{hubbard.DirectSingle, hubbard.DirectSquare} {
				hop, basis, variant := hop, basis, variant
				fermionAllocators[fermionKey(hop, basis, variant)] = func(kappaTilde linalg.DMat, mu, sigmaKappa float64) (*HubbardFermiAction, error) {
					return NewHubbardFermiAction(kappaTilde, mu, sigmaKappa, hop, basis, variant)
				}
			}
		}
	}
}

// MakeHubbardFermiAction is the factory named in the external interface: it
// resolves (hop, basis, variant) to one of the eight HubbardFermiAction
// instantiations and constructs it from kappaTilde, mu, sigmaKappa.
func MakeHubbardFermiAction(
	kappaTilde linalg.DMat,
	mu, sigmaKappa float64,
	hop hubbard.Hopping,
	basis hubbard.Basis,
	variant hubbard.Variant,
) (*HubbardFermiAction, error) {
	fcn, ok := fermionAllocators[fermionKey(hop, basis, variant)]
	if !ok {
		return nil, chk.Err("action: no fermion action allocator for hop=%v basis=%v variant=%v", hop, basis, variant)
	}
	return fcn(kappaTilde, mu, sigmaKappa)
}

// MakeHubbardFermiActionFromLattice computes kappaTilde = hopping(lattice) *
// beta/Nt(lattice) and delegates to MakeHubbardFermiAction.
func MakeHubbardFermiActionFromLattice(
	lat Lattice,
	beta, mu, sigmaKappa float64,
	hop hubbard.Hopping,
	basis hubbard.Basis,
	variant hubbard.Variant,
) (*HubbardFermiAction, error) {
	return NewHubbardFermiActionFromLattice(lat, beta, mu, sigmaKappa, hop, basis, variant)
}

// DefaultHop, DefaultBasis and DefaultVariant are the factory's defaults
// (hop=DIA, basis=PARTICLE_HOLE, variant=ONE) per the external interface.
const (
	DefaultHop     = hubbard.Dia
	DefaultBasis   = hubbard.ParticleHole
	DefaultVariant = hubbard.DirectSingle
)
