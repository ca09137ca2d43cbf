// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package action implements the action terms evaluated during HMC: the
// Hubbard gauge action, the eight HubbardFermiAction variants, and the
// SumAction composition that adds them together.
package action

import (
	"github.com/jl-wynen/isle/internal/linalg"
)

// Action is the capability every action term implements: evaluate S(phi)
// and its force F(phi) = -dS/dphi.
type Action interface {
	Eval(phi linalg.CDVec) (complex128, error)
	Force(phi linalg.CDVec) (linalg.CDVec, error)
}

// Add combines two actions into a SumAction, flattening any operand that is
// already a SumAction so that Add(Add(a,b),c) and Add(a,Add(b,c)) both
// produce a 3-element sum in insertion order.
func Add(a, b Action) *SumAction {
	s := NewSumAction()
	s.Append(a)
	s.Append(b)
	return s
}
