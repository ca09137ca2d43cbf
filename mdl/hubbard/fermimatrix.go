// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hubbard

import (
	"math/cmplx"

	"github.com/cpmech/gosl/chk"

	"github.com/jl-wynen/isle/internal/linalg"
)

// FermiMatrix parameterises the Hubbard fermion matrix family M(phi; kappa,
// mu, sigmaKappa) for one hopping discretisation (Dia or Exp). It owns
// kappa/mu/sigmaKappa immutably and caches K^-1 and log det K^-1 per
// species lazily, invalidated by UpdateKappa/UpdateMu.
//
// Two parallel evaluations of the same FermiMatrix are only safe once the
// caches are warm (see Warm); UpdateKappa and
// UpdateMu are never safe concurrently with Eval/Force.
type FermiMatrix struct {
	nx         int
	kappa      linalg.DMat
	mu         float64
	sigmaKappa float64
	hop        Hopping

	kappaEffCache linalg.DMat // memoised expm(kappa) for the Exp discretisation

	kinv      [2]linalg.CDMat
	kinvOK    [2]bool
	logDetK   [2]complex128
	logDetKOK [2]bool
}

// New builds a FermiMatrix. kappa must be square; sigmaKappa must be +1 or -1.
func New(kappa linalg.DMat, mu, sigmaKappa float64, hop Hopping) (*FermiMatrix, error) {
	r, c := kappa.Dims()
	if r != c {
		return nil, chk.Err("hubbard: kappa must be square; got %dx%d", r, c)
	}
	if sigmaKappa != 1 && sigmaKappa != -1 {
		return nil, chk.Err("hubbard: sigmaKappa must be +1 or -1; got %g", sigmaKappa)
	}
	return &FermiMatrix{nx: r, kappa: kappa, mu: mu, sigmaKappa: sigmaKappa, hop: hop}, nil
}

// Nx returns the number of spatial sites.
func (h *FermiMatrix) Nx() int { return h.nx }

// Mu returns the chemical potential.
func (h *FermiMatrix) Mu() float64 { return h.mu }

// SigmaKappa returns the sign convention for the hole hopping term.
func (h *FermiMatrix) SigmaKappa() float64 { return h.sigmaKappa }

// Kappa returns the bare hopping matrix (not the Exp-discretised kernel).
func (h *FermiMatrix) Kappa() linalg.DMat { return h.kappa }

// Hop returns the hopping discretisation.
func (h *FermiMatrix) Hop() Hopping { return h.hop }

// UpdateKappa replaces kappa and invalidates all lazy caches.
func (h *FermiMatrix) UpdateKappa(kappa linalg.DMat) error {
	r, c := kappa.Dims()
	if r != c || r != h.nx {
		return chk.Err("hubbard: UpdateKappa requires a %dx%d matrix; got %dx%d", h.nx, h.nx, r, c)
	}
	h.kappa = kappa
	h.invalidate()
	return nil
}

// UpdateMu replaces mu and invalidates all lazy caches.
func (h *FermiMatrix) UpdateMu(mu float64) {
	h.mu = mu
	h.invalidate()
}

func (h *FermiMatrix) invalidate() {
	h.kappaEffCache = nil
	h.kinvOK[Particle], h.kinvOK[Hole] = false, false
	h.logDetKOK[Particle], h.logDetKOK[Hole] = false, false
}

// kappaEff is kappa itself for Dia, or its matrix exponential for Exp.
func (h *FermiMatrix) kappaEff() linalg.DMat {
	if h.hop == Dia {
		return h.kappa
	}
	if h.kappaEffCache == nil {
		h.kappaEffCache = linalg.ExpM(h.kappa)
	}
	return h.kappaEffCache
}

// hoppingFactorC is the extra right-hand factor F picks up in the Exp
// discretisation: identity for Dia, kappaEff (embedded in complex) for Exp.
func (h *FermiMatrix) hoppingFactorC() linalg.CDMat {
	if h.hop == Dia {
		return linalg.EyeC(h.nx)
	}
	return linalg.ToComplex(h.kappaEff())
}

// K returns K_particle or K_hole as a dense Nx x Nx real matrix (logically
// sparse in the originating lattice kappa, but Nx is small enough that
// dense storage is what every downstream Schur/LU computation wants).
func (h *FermiMatrix) K(species Species) linalg.DMat {
	keff := h.kappaEff()
	out := linalg.NewDMat(h.nx, h.nx)
	switch species {
	case Particle:
		out.Scale(-1, keff)
		for i := 0; i < h.nx; i++ {
			out.Set(i, i, out.At(i, i)+1+h.mu)
		}
	case Hole:
		out.Scale(-h.sigmaKappa, keff)
		for i := 0; i < h.nx; i++ {
			out.Set(i, i, out.At(i, i)+1-h.mu)
		}
	}
	return out
}

// Kinv returns K^-1 for the given species, lazily computed and cached.
func (h *FermiMatrix) Kinv(species Species) (linalg.CDMat, error) {
	if h.kinvOK[species] {
		return h.kinv[species], nil
	}
	inv, err := linalg.InverseR(h.K(species))
	if err != nil {
		return nil, chk.Err("hubbard: cannot invert K(%v): %v", species, err)
	}
	h.kinv[species] = linalg.ToComplex(inv)
	h.kinvOK[species] = true
	return h.kinv[species], nil
}

// LogDetKinv returns log det(K^-1) for the given species, lazily computed
// and cached.
func (h *FermiMatrix) LogDetKinv(species Species) (complex128, error) {
	if h.logDetKOK[species] {
		return h.logDetK[species], nil
	}
	ldk, err := linalg.LogDetR(h.K(species))
	if err != nil {
		return 0, chk.Err("hubbard: cannot compute log det K(%v): %v", species, err)
	}
	h.logDetK[species] = linalg.FirstLogBranch(-ldk)
	h.logDetKOK[species] = true
	return h.logDetK[species], nil
}

// F returns the (possibly non-diagonal, see the Exp discretisation) Nx x Nx
// complex block at time t for the given species. inv selects which of the
// two conjugate sign conventions F is built under; it matters only insofar
// as it flips the +i/-i sign, per the spec's literal truth table.
func (h *FermiMatrix) F(t int, phi linalg.CDVec, species Species, inv bool) (linalg.CDMat, error) {
	nt, err := checkPhiShape(h.nx, len(phi))
	if err != nil {
		return nil, err
	}
	tm1 := LoopIdx(t-1, nt)
	phase := spacevec(phi, tm1, h.nx, nt)

	negative := (inv && species == Particle) || (!inv && species == Hole)
	sign := complex(0, 1)
	if negative {
		sign = complex(0, -1)
	}

	d := make(linalg.CDVec, h.nx)
	for x := 0; x < h.nx; x++ {
		d[x] = cmplx.Exp(sign * phase[x])
	}
	fdiag := linalg.DiagC(d)
	if h.hop == Dia {
		return fdiag, nil
	}
	return linalg.MulC(fdiag, h.hoppingFactorC()), nil
}

// M assembles the full (Nx*Nt) x (Nx*Nt) sparse fermion matrix for the
// given species: K on the block diagonal, -F(t) on the (t,t-1) sub-
// diagonal, and +F(0) in the (0,Nt-1) corner (the anti-periodic boundary
// term; its sign is folded into the corner placement rather than F itself).
func (h *FermiMatrix) M(phi linalg.CDVec, species Species) (linalg.CDMat, error) {
	nt, err := checkPhiShape(h.nx, len(phi))
	if err != nil {
		return nil, err
	}
	n := h.nx * nt
	trip := linalg.NewCTriplet(n, n, n*h.nx*3)

	kC := linalg.ToComplex(h.K(species))
	for t := 0; t < nt; t++ {
		trip.PutBlock(t, t, nt, kC)
	}
	for t := 1; t < nt; t++ {
		f, ferr := h.F(t, phi, species, false)
		if ferr != nil {
			return nil, ferr
		}
		trip.PutBlock(t, t-1, nt, linalg.ScaleC(-1, f))
	}
	f0, err := h.F(0, phi, species, false)
	if err != nil {
		return nil, err
	}
	trip.PutBlock(0, nt-1, nt, f0)
	return trip.ToDense(), nil
}

// P is the Nx x Nx real matrix appearing on the block diagonal of the
// Schur form Q: P = (2-mu^2)*I - (sigmaKappa*(1+mu)+1-mu)*kappaEff + sigmaKappa*kappaEff^2.
func (h *FermiMatrix) P() linalg.DMat {
	keff := h.kappaEff()
	n := h.nx
	k2 := linalg.NewDMat(n, n)
	k2.Mul(keff, keff)

	out := linalg.NewDMat(n, n)
	coeff := h.sigmaKappa*(1+h.mu) + 1 - h.mu
	out.Scale(-coeff, keff)
	var tmp linalg.DMat = linalg.NewDMat(n, n)
	tmp.Scale(h.sigmaKappa, k2)
	out.Add(out, tmp)
	for i := 0; i < n; i++ {
		out.Set(i, i, out.At(i, i)+2-h.mu*h.mu)
	}
	return out
}

// Tplus is the (t, t-1 mod Nt) off-diagonal block of Q:
// T = sigmaKappa*kappaEff - (1-mu)*I, each row xp scaled by s*exp(+i*phi[xp,t-1])
// with s=-1 at t=0 (anti-periodic) and s=+1 otherwise.
func (h *FermiMatrix) Tplus(t int, phi linalg.CDVec) (linalg.CDMat, error) {
	nt, err := checkPhiShape(h.nx, len(phi))
	if err != nil {
		return nil, err
	}
	n := h.nx
	t0 := linalg.NewDMat(n, n)
	t0.Scale(h.sigmaKappa, h.kappaEff())
	for i := 0; i < n; i++ {
		t0.Set(i, i, t0.At(i, i)-(1-h.mu))
	}
	tC := linalg.ToComplex(t0)

	tm1 := LoopIdx(t-1, nt)
	phase := spacevec(phi, tm1, n, nt)
	s := 1.0
	if t == 0 {
		s = -1
	}
	d := make(linalg.CDVec, n)
	for x := 0; x < n; x++ {
		d[x] = complex(s, 0) * cmplx.Exp(complex(0, 1)*phase[x])
	}
	return linalg.MulC(linalg.DiagC(d), tC), nil
}

// Tminus is the (t, t+1 mod Nt) off-diagonal block of Q:
// T = kappaEff - (1+mu)*I, each column x scaled by s*exp(-i*phi[x,t])
// with s=-1 at t=Nt-1 (anti-periodic) and s=+1 otherwise.
func (h *FermiMatrix) Tminus(t int, phi linalg.CDVec) (linalg.CDMat, error) {
	nt, err := checkPhiShape(h.nx, len(phi))
	if err != nil {
		return nil, err
	}
	n := h.nx
	t0 := linalg.NewDMat(n, n)
	t0.Copy(h.kappaEff())
	for i := 0; i < n; i++ {
		t0.Set(i, i, t0.At(i, i)-(1+h.mu))
	}
	tC := linalg.ToComplex(t0)

	phase := spacevec(phi, t, n, nt)
	s := 1.0
	if t == nt-1 {
		s = -1
	}
	d := make(linalg.CDVec, n)
	for x := 0; x < n; x++ {
		d[x] = complex(s, 0) * cmplx.Exp(complex(0, -1)*phase[x])
	}
	return linalg.MulC(tC, linalg.DiagC(d)), nil
}

// Q assembles the block-cyclic tridiagonal Schur matrix for validation and
// testing; the QLU decomposition below never materialises it in the main
// S/F evaluation path.
func (h *FermiMatrix) Q(phi linalg.CDVec) (linalg.CDMat, error) {
	nt, err := checkPhiShape(h.nx, len(phi))
	if err != nil {
		return nil, err
	}
	n := h.nx * nt
	trip := linalg.NewCTriplet(n, n, n*h.nx*3)
	p := linalg.ToComplex(h.P())
	for t := 0; t < nt; t++ {
		trip.PutBlock(t, t, nt, p)
		tp, err := h.Tplus(t, phi)
		if err != nil {
			return nil, err
		}
		trip.PutBlock(t, LoopIdx(t-1, nt), nt, tp)
		tm, err := h.Tminus(t, phi)
		if err != nil {
			return nil, err
		}
		trip.PutBlock(t, LoopIdx(t+1, nt), nt, tm)
	}
	return trip.ToDense(), nil
}

// NtOf infers Nt from phi's length, checking the Nx divides it invariant.
func (h *FermiMatrix) NtOf(phi linalg.CDVec) (int, error) {
	return checkPhiShape(h.nx, len(phi))
}

// IsBipartite reports whether kappa's support graph admits a 2-colouring
// with no monochromatic edge (no intra-class hopping), a precondition for
// the hole shortcut.
func IsBipartite(kappa linalg.DMat) bool {
	n, _ := kappa.Dims()
	color := make([]int, n)
	for i := range color {
		color[i] = -1
	}
	for start := 0; start < n; start++ {
		if color[start] != -1 {
			continue
		}
		color[start] = 0
		queue := []int{start}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for v := 0; v < n; v++ {
				if v == u || kappa.At(u, v) == 0 {
					continue
				}
				if color[v] == -1 {
					color[v] = 1 - color[u]
					queue = append(queue, v)
				} else if color[v] == color[u] {
					return false
				}
			}
		}
	}
	return true
}
