// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hubbard implements the numerical core of the Hubbard model
// fermion matrix family: the block-sparse matrix M(phi), its block-cyclic
// Schur form Q, and the bespoke block LU decomposition of Q used to
// evaluate log det M and its derivative without forming M densely.
package hubbard

// Species labels which of the two fermion Green's functions a matrix
// represents.
type Species int

const (
	// Particle selects K_particle = (1+mu)*I - kappa.
	Particle Species = iota
	// Hole selects K_hole = (1-mu)*I - sigmaKappa*kappa.
	Hole
)

func (s Species) String() string {
	switch s {
	case Particle:
		return "particle"
	case Hole:
		return "hole"
	default:
		return "unknown species"
	}
}

// Hopping selects the discretisation of the hopping kernel on a time slice.
type Hopping int

const (
	// Dia keeps the linear form of the hopping matrix.
	Dia Hopping = iota
	// Exp exponentiates the hopping matrix.
	Exp
)

func (h Hopping) String() string {
	switch h {
	case Dia:
		return "dia"
	case Exp:
		return "exp"
	default:
		return "unknown hopping"
	}
}

// Variant selects the determinant evaluation route.
type Variant int

const (
	// DirectSingle works on M directly (the "ONE" route).
	DirectSingle Variant = iota
	// DirectSquare uses the Schur identity det Mp*det Mh = det Q (the "TWO" route).
	DirectSquare
)

func (v Variant) String() string {
	switch v {
	case DirectSingle:
		return "direct_single"
	case DirectSquare:
		return "direct_square"
	default:
		return "unknown variant"
	}
}

// Basis selects the analytic rewriting of the auxiliary field.
type Basis int

const (
	// ParticleHole is the native basis.
	ParticleHole Basis = iota
	// Spin analytically continues phi by -i before calling M.
	Spin
)

func (b Basis) String() string {
	switch b {
	case ParticleHole:
		return "particle_hole"
	case Spin:
		return "spin"
	default:
		return "unknown basis"
	}
}
