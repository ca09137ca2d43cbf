// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_firstlogbranch01(tst *testing.T) {

	chk.PrintTitle("firstlogbranch01")

	cases := []complex128{
		complex(1, math.Pi),
		complex(1, -math.Pi),
		complex(2, 0),
		complex(-1, 3 * math.Pi),
		complex(0.5, 2.5 * math.Pi),
	}
	for _, z := range cases {
		r := FirstLogBranch(z)
		if imag(r) <= -math.Pi || imag(r) > math.Pi+1e-12 {
			tst.Errorf("Im(FirstLogBranch(%v))=%v not in (-pi,pi]", z, imag(r))
		}
		diff := r - z
		k := imag(diff) / (2 * math.Pi)
		if math.Abs(k-math.Round(k)) > 1e-9 {
			tst.Errorf("FirstLogBranch(%v)-z=%v is not a multiple of 2*pi*i", z, diff)
		}
		chk.Scalar(tst, "Re(z) preserved", 1e-13, real(r), real(z))
	}
}

func Test_logdet01(tst *testing.T) {

	chk.PrintTitle("logdet01")

	a := NewCDMat(3, 3)
	vals := [][]complex128{
		{2, 1, 0},
		{0, 3, 1},
		{1, 0, 4},
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			a.Set(i, j, vals[i][j])
		}
	}
	lu, err := FactorizeC(a)
	if err != nil {
		tst.Fatalf("FactorizeC failed: %v", err)
	}
	ld := lu.LogDet()
	got := cmplx.Exp(ld)

	// det of the matrix above, by cofactor expansion: 2*(12-0) - 1*(0-1) + 0 = 24+1 = 25
	want := complex(25, 0)
	if cmplx.Abs(got-want) > 1e-9 {
		tst.Errorf("exp(logdet)=%v, want %v", got, want)
	}
}

func Test_inverse01(tst *testing.T) {

	chk.PrintTitle("inverse01")

	a := NewCDMat(2, 2)
	a.Set(0, 0, complex(2, 0))
	a.Set(0, 1, complex(1, 1))
	a.Set(1, 0, complex(0, -1))
	a.Set(1, 1, complex(3, 0))

	inv, err := InverseC(a)
	if err != nil {
		tst.Fatalf("InverseC failed: %v", err)
	}
	prod := MulC(a, inv)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := complex(0.0, 0.0)
			if i == j {
				want = 1
			}
			if cmplx.Abs(prod.At(i, j)-want) > 1e-9 {
				tst.Errorf("(A*Ainv)[%d,%d]=%v, want %v", i, j, prod.At(i, j), want)
			}
		}
	}
}
