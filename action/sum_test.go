// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package action

import (
	"math/cmplx"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/jl-wynen/isle/internal/linalg"
)

func Test_sum_flattening01(tst *testing.T) {

	chk.PrintTitle("sum_flattening01")

	a, _ := NewHubbardGaugeAction(1.0)
	b, _ := NewHubbardGaugeAction(2.0)
	c, _ := NewHubbardGaugeAction(3.0)

	left := Add(a, Add(b, c))
	right := Add(Add(a, b), c)

	if left.Size() != 3 {
		tst.Errorf("a+(b+c) has size %d, want 3", left.Size())
	}
	if right.Size() != 3 {
		tst.Errorf("(a+b)+c has size %d, want 3", right.Size())
	}
	if left.At(0) != a || left.At(1) != b || left.At(2) != c {
		tst.Errorf("a+(b+c) members are not in insertion order")
	}
	if right.At(0) != a || right.At(1) != b || right.At(2) != c {
		tst.Errorf("(a+b)+c members are not in insertion order")
	}
}

func Test_sum_eval_matches_parts01(tst *testing.T) {

	chk.PrintTitle("sum_eval_matches_parts01")

	a, _ := NewHubbardGaugeAction(1.0)
	b, _ := NewHubbardGaugeAction(2.0)
	sum := Add(a, b)

	phi := linalg.CDVec{complex(1, 0.5), complex(-0.3, 0.2)}

	sa, err := a.Eval(phi)
	if err != nil {
		tst.Fatalf("a.Eval failed: %v", err)
	}
	sb, err := b.Eval(phi)
	if err != nil {
		tst.Fatalf("b.Eval failed: %v", err)
	}
	ssum, err := sum.Eval(phi)
	if err != nil {
		tst.Fatalf("sum.Eval failed: %v", err)
	}
	if ssum != sa+sb {
		tst.Errorf("(a+b).Eval=%v != a.Eval+b.Eval=%v", ssum, sa+sb)
	}

	fa, _ := a.Force(phi)
	fb, _ := b.Force(phi)
	fsum, err := sum.Force(phi)
	if err != nil {
		tst.Fatalf("sum.Force failed: %v", err)
	}
	for i := range phi {
		if cmplx.Abs(fsum[i]-(fa[i]+fb[i])) > 1e-12 {
			tst.Errorf("(a+b).Force[%d]=%v != a.Force+b.Force=%v", i, fsum[i], fa[i]+fb[i])
		}
	}
}

func Test_sum_clear01(tst *testing.T) {

	chk.PrintTitle("sum_clear01")

	a, _ := NewHubbardGaugeAction(1.0)
	sum := NewSumAction(a)
	if sum.Size() != 1 {
		tst.Fatalf("expected size 1, got %d", sum.Size())
	}
	sum.Clear()
	if sum.Size() != 0 {
		tst.Errorf("expected size 0 after Clear, got %d", sum.Size())
	}
}
