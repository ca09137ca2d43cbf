// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ExpM computes the matrix exponential of a real square matrix by scaling
// and squaring combined with a truncated Taylor series. This is the
// standard algorithm behind gonum's mat.Dense.Exp; that method is not part
// of the retrieved gonum snapshot, so it is reproduced directly here.
func ExpM(a DMat) DMat {
	n, _ := a.Dims()

	norm := mat.Norm(a, 1)
	squarings := 0
	if norm > 0.5 {
		squarings = int(math.Ceil(math.Log2(norm / 0.5)))
		if squarings < 0 {
			squarings = 0
		}
	}

	scaled := mat.NewDense(n, n, nil)
	scaled.Scale(1/math.Pow(2, float64(squarings)), a)

	const terms = 18
	result := Eye(n)
	term := Eye(n)
	buf := mat.NewDense(n, n, nil)
	for k := 1; k <= terms; k++ {
		buf.Mul(term, scaled)
		buf.Scale(1/float64(k), buf)
		term = mat.DenseCopyOf(buf)
		result.Add(result, term)
	}

	for s := 0; s < squarings; s++ {
		sq := mat.NewDense(n, n, nil)
		sq.Mul(result, result)
		result = sq
	}
	return result
}
