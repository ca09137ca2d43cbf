// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package action

import (
	"github.com/jl-wynen/isle/internal/linalg"
)

// SumAction composes a heterogeneous list of actions; Eval and Force are the
// sums of the members' Eval and Force. It stores non-owning references: the
// caller retains ownership of every member.
type SumAction struct {
	terms []Action
}

// NewSumAction builds a SumAction from zero or more initial members,
// flattening any member that is itself a SumAction.
func NewSumAction(terms ...Action) *SumAction {
	s := &SumAction{}
	for _, t := range terms {
		s.Append(t)
	}
	return s
}

// Append adds a to the sum. If a is itself a SumAction its members are
// appended individually (flattening), matching the spec's composition
// algebra for nested sums.
func (s *SumAction) Append(a Action) {
	if sub, ok := a.(*SumAction); ok {
		s.terms = append(s.terms, sub.terms...)
		return
	}
	s.terms = append(s.terms, a)
}

// Clear empties the list of members.
func (s *SumAction) Clear() {
	s.terms = nil
}

// Size returns the number of members.
func (s *SumAction) Size() int {
	return len(s.terms)
}

// At returns the i-th member.
func (s *SumAction) At(i int) Action {
	return s.terms[i]
}

// Eval sums the members' Eval.
func (s *SumAction) Eval(phi linalg.CDVec) (complex128, error) {
	var sum complex128
	for _, t := range s.terms {
		v, err := t.Eval(phi)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}

// Force sums the members' Force.
func (s *SumAction) Force(phi linalg.CDVec) (linalg.CDVec, error) {
	out := make(linalg.CDVec, len(phi))
	for _, t := range s.terms {
		f, err := t.Force(phi)
		if err != nil {
			return nil, err
		}
		for i, v := range f {
			out[i] += v
		}
	}
	return out, nil
}
