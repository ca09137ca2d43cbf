// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package linalg wraps the dense and sparse, real and complex matrix
// primitives needed by the Hubbard fermion core.
//
// It is intentionally thin: gonum.org/v1/gonum/mat supplies storage and
// BLAS-backed products for real (Dense) and complex (CDense) dense
// matrices; the triplet types here supply sparse assembly in the style of
// github.com/cpmech/gosl/la.Triplet. The one piece neither library ships is
// a general (non-triangular) complex128 LU factorisation, so FactorizeC
// below provides it directly, modelled on gonum's own partial-pivoting
// real LU.
package linalg
