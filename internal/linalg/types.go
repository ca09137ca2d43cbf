// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"gonum.org/v1/gonum/mat"
)

// DVec is a length-n real vector.
type DVec = []float64

// CDVec is a length-n complex vector.
type CDVec = []complex128

// DMat is a dense real matrix.
type DMat = *mat.Dense

// CDMat is a dense complex matrix.
type CDMat = *mat.CDense

// NewDMat allocates an r x c real dense matrix.
func NewDMat(r, c int) DMat {
	return mat.NewDense(r, c, nil)
}

// NewCDMat allocates an r x c complex dense matrix.
func NewCDMat(r, c int) CDMat {
	return mat.NewCDense(r, c, nil)
}

// Eye returns the n x n real identity matrix.
func Eye(n int) DMat {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// EyeC returns the n x n complex identity matrix.
func EyeC(n int) CDMat {
	m := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// ToComplex embeds a real dense matrix into a complex one.
func ToComplex(a DMat) CDMat {
	r, c := a.Dims()
	out := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, complex(a.At(i, j), 0))
		}
	}
	return out
}

// CloneC returns a copy of a complex dense matrix.
func CloneC(a CDMat) CDMat {
	r, c := a.Dims()
	out := mat.NewCDense(r, c, nil)
	out.Copy(a)
	return out
}

// ScaleC scales a complex dense matrix by a scalar, returning a new matrix.
func ScaleC(f complex128, a CDMat) CDMat {
	r, c := a.Dims()
	out := mat.NewCDense(r, c, nil)
	out.Scale(f, a)
	return out
}

// SubC returns a-b for complex dense matrices.
func SubC(a, b CDMat) CDMat {
	r, c := a.Dims()
	out := mat.NewCDense(r, c, nil)
	out.Sub(a, b)
	return out
}

// AddC returns a+b for complex dense matrices.
func AddC(a, b CDMat) CDMat {
	r, c := a.Dims()
	out := mat.NewCDense(r, c, nil)
	out.Add(a, b)
	return out
}

// MulC returns a*b for complex dense matrices.
func MulC(a, b CDMat) CDMat {
	ra, _ := a.Dims()
	_, cb := b.Dims()
	out := mat.NewCDense(ra, cb, nil)
	out.Mul(a, b)
	return out
}

// MatVecC returns a*v for a complex dense matrix and vector.
func MatVecC(a CDMat, v CDVec) CDVec {
	r, c := a.Dims()
	out := make(CDVec, r)
	for i := 0; i < r; i++ {
		var sum complex128
		for j := 0; j < c; j++ {
			sum += a.At(i, j) * v[j]
		}
		out[i] = sum
	}
	return out
}

// DiagC builds a diagonal complex matrix from a vector.
func DiagC(d CDVec) CDMat {
	n := len(d)
	out := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		out.Set(i, i, d[i])
	}
	return out
}
