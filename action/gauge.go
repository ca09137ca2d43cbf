// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package action

import (
	"github.com/cpmech/gosl/chk"

	"github.com/jl-wynen/isle/internal/linalg"
)

// HubbardGaugeAction is S(phi) = phi.phi/(2*Utilde) (the complex bilinear
// form, not a Hermitian inner product); F(phi) = -phi/Utilde.
type HubbardGaugeAction struct {
	utilde float64
}

// NewHubbardGaugeAction builds a gauge action for coupling Utilde > 0.
func NewHubbardGaugeAction(utilde float64) (*HubbardGaugeAction, error) {
	if utilde <= 0 {
		return nil, chk.Err("action: HubbardGaugeAction requires Utilde>0; got %g", utilde)
	}
	return &HubbardGaugeAction{utilde: utilde}, nil
}

// Eval returns phi.phi/(2*Utilde).
func (g *HubbardGaugeAction) Eval(phi linalg.CDVec) (complex128, error) {
	var dot complex128
	for _, p := range phi {
		dot += p * p
	}
	return dot / complex(2*g.utilde, 0), nil
}

// Force returns -phi/Utilde.
func (g *HubbardGaugeAction) Force(phi linalg.CDVec) (linalg.CDVec, error) {
	f := make(linalg.CDVec, len(phi))
	u := complex(g.utilde, 0)
	for i, p := range phi {
		f[i] = -p / u
	}
	return f, nil
}
