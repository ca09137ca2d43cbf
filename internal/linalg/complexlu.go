// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"math"
	"math/cmplx"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// CLU is a partial-pivoting LU factorisation of a square complex128 matrix,
// A = P^T * L * U, stored compactly in a single n x n buffer (L below the
// diagonal, unit diagonal implied; U on and above the diagonal).
//
// gonum.org/v1/gonum/mat ships no complex counterpart to its real LU
// (CDense only implements Add/Sub/Mul/Scale/...), so this factorisation is
// hand-rolled, following the same partial-pivoting Doolittle scheme gonum
// uses for the real case.
type CLU struct {
	lu   CDMat
	perm []int // perm[i] is the original row now sitting at row i
	n    int
	sign float64
}

// FactorizeC computes the LU factorisation of a, which must be square.
func FactorizeC(a CDMat) (*CLU, error) {
	n, c := a.Dims()
	if n != c {
		return nil, chk.Err("linalg: FactorizeC requires a square matrix; got %dx%d", n, c)
	}
	lu := CloneC(a)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sign := 1.0
	for k := 0; k < n; k++ {
		p := k
		best := cmplx.Abs(lu.At(k, k))
		for i := k + 1; i < n; i++ {
			if v := cmplx.Abs(lu.At(i, k)); v > best {
				best = v
				p = i
			}
		}
		if best == 0 {
			return nil, chk.Err("linalg: singular matrix at pivot column %d", k)
		}
		if p != k {
			swapRowsC(lu, p, k)
			perm[p], perm[k] = perm[k], perm[p]
			sign = -sign
		}
		pivot := lu.At(k, k)
		for i := k + 1; i < n; i++ {
			factor := lu.At(i, k) / pivot
			lu.Set(i, k, factor)
			for j := k + 1; j < n; j++ {
				lu.Set(i, j, lu.At(i, j)-factor*lu.At(k, j))
			}
		}
	}
	return &CLU{lu: lu, perm: perm, n: n, sign: sign}, nil
}

func swapRowsC(a CDMat, i, j int) {
	n, _ := a.Dims()
	for k := 0; k < n; k++ {
		vi, vj := a.At(i, k), a.At(j, k)
		a.Set(i, k, vj)
		a.Set(j, k, vi)
	}
}

// LogDet returns the first-branch-projected log of det(A).
func (f *CLU) LogDet() complex128 {
	var sum complex128
	for i := 0; i < f.n; i++ {
		sum += cmplx.Log(f.lu.At(i, i))
	}
	if f.sign < 0 {
		sum += complex(0, math.Pi)
	}
	return FirstLogBranch(sum)
}

// Solve solves A*X = rhs for X, reusing the cached LU factors and pivots.
func (f *CLU) Solve(rhs CDMat) CDMat {
	n := f.n
	_, m := rhs.Dims()
	x := mat.NewCDense(n, m, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			x.Set(i, j, rhs.At(f.perm[i], j))
		}
	}
	// forward substitution: L is unit lower triangular
	for i := 1; i < n; i++ {
		for j := 0; j < m; j++ {
			var sum complex128
			for k := 0; k < i; k++ {
				sum += f.lu.At(i, k) * x.At(k, j)
			}
			x.Set(i, j, x.At(i, j)-sum)
		}
	}
	// back substitution: U is upper triangular
	for i := n - 1; i >= 0; i-- {
		for j := 0; j < m; j++ {
			var sum complex128
			for k := i + 1; k < n; k++ {
				sum += f.lu.At(i, k) * x.At(k, j)
			}
			x.Set(i, j, (x.At(i, j)-sum)/f.lu.At(i, i))
		}
	}
	return x
}

// Inverse returns A^-1 computed from the cached factors.
func (f *CLU) Inverse() CDMat {
	return f.Solve(EyeC(f.n))
}

// InverseC is a convenience wrapper factorising and inverting in one call.
func InverseC(a CDMat) (CDMat, error) {
	lu, err := FactorizeC(a)
	if err != nil {
		return nil, err
	}
	return lu.Inverse(), nil
}

// LogDetC is a convenience wrapper factorising and computing logdet in one call.
func LogDetC(a CDMat) (complex128, error) {
	lu, err := FactorizeC(a)
	if err != nil {
		return 0, err
	}
	return lu.LogDet(), nil
}

// LogDetR computes the first-branch-projected logdet of a real square
// matrix via gonum's real LU, returning a complex result (imaginary part
// carries the sign of a negative determinant).
func LogDetR(a DMat) (complex128, error) {
	n, c := a.Dims()
	if n != c {
		return 0, chk.Err("linalg: LogDetR requires a square matrix; got %dx%d", n, c)
	}
	var lu mat.LU
	lu.Factorize(a)
	logDet, sign := lu.LogDet()
	im := 0.0
	if sign < 0 {
		im = math.Pi
	}
	return FirstLogBranch(complex(logDet, im)), nil
}

// InverseR inverts a real square matrix via gonum's LU.
func InverseR(a DMat) (DMat, error) {
	n, c := a.Dims()
	if n != c {
		return nil, chk.Err("linalg: InverseR requires a square matrix; got %dx%d", n, c)
	}
	out := mat.NewDense(n, n, nil)
	if err := out.Inverse(a); err != nil {
		return nil, chk.Err("linalg: matrix inversion failed: %v", err)
	}
	return out, nil
}

// FirstLogBranch projects the imaginary part of z into (-pi, pi], the
// principal branch of the complex logarithm, leaving the real part
// untouched.
func FirstLogBranch(z complex128) complex128 {
	r := math.Mod(imag(z)+math.Pi, 2*math.Pi)
	if r <= 0 {
		r += 2 * math.Pi
	}
	return complex(real(z), r-math.Pi)
}
